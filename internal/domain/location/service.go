package location

import "context"

// OfficeLocationService manages the office geofence (admin).
type OfficeLocationService interface {
	GetOfficeLocation(ctx context.Context) (OfficeLocationResponse, error)
	UpdateOfficeLocation(ctx context.Context, req UpdateOfficeLocationRequest) (OfficeLocationResponse, error)
}
