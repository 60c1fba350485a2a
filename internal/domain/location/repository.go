package location

import "context"

type OfficeLocationRepository interface {
	// Get returns nil without error when no office location has been configured.
	Get(ctx context.Context) (*OfficeLocation, error)

	Upsert(ctx context.Context, loc OfficeLocation) (OfficeLocation, error)
}
