package location

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
)

type OfficeLocationServiceImpl struct {
	location.OfficeLocationRepository
}

func NewOfficeLocationService(officeLocationRepo location.OfficeLocationRepository) location.OfficeLocationService {
	return &OfficeLocationServiceImpl{OfficeLocationRepository: officeLocationRepo}
}

// GetOfficeLocation implements location.OfficeLocationService.
func (s *OfficeLocationServiceImpl) GetOfficeLocation(ctx context.Context) (location.OfficeLocationResponse, error) {
	office, err := s.OfficeLocationRepository.Get(ctx)
	if err != nil {
		return location.OfficeLocationResponse{}, fmt.Errorf("failed to get office location: %w", err)
	}
	if office == nil {
		return location.OfficeLocationResponse{}, location.ErrOfficeLocationNotFound
	}
	return location.NewOfficeLocationResponse(*office), nil
}

// UpdateOfficeLocation implements location.OfficeLocationService.
func (s *OfficeLocationServiceImpl) UpdateOfficeLocation(ctx context.Context, req location.UpdateOfficeLocationRequest) (location.OfficeLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.OfficeLocationResponse{}, err
	}

	saved, err := s.OfficeLocationRepository.Upsert(ctx, location.OfficeLocation{
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		RadiusMeters: *req.RadiusMeters,
	})
	if err != nil {
		return location.OfficeLocationResponse{}, fmt.Errorf("failed to save office location: %w", err)
	}

	slog.Info("Office location updated", "latitude", saved.Latitude, "longitude", saved.Longitude, "radius", saved.RadiusMeters)

	return location.NewOfficeLocationResponse(saved), nil
}
