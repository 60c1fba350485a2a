package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeLocationRepository struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) location.OfficeLocationRepository {
	return &officeLocationRepository{db: db}
}

// Get implements location.OfficeLocationRepository.
func (r *officeLocationRepository) Get(ctx context.Context) (*location.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	var loc location.OfficeLocation
	err := q.QueryRow(ctx, `
		SELECT latitude, longitude, radius, updated_at
		FROM office_locations
		WHERE id = 1
	`).Scan(&loc.Latitude, &loc.Longitude, &loc.RadiusMeters, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get office location: %w", err)
	}

	return &loc, nil
}

// Upsert implements location.OfficeLocationRepository.
func (r *officeLocationRepository) Upsert(ctx context.Context, loc location.OfficeLocation) (location.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO office_locations (id, latitude, longitude, radius, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius = EXCLUDED.radius,
			updated_at = NOW()
		RETURNING latitude, longitude, radius, updated_at
	`

	var saved location.OfficeLocation
	err := q.QueryRow(ctx, query, loc.Latitude, loc.Longitude, loc.RadiusMeters).
		Scan(&saved.Latitude, &saved.Longitude, &saved.RadiusMeters, &saved.UpdatedAt)
	if err != nil {
		return location.OfficeLocation{}, fmt.Errorf("failed to upsert office location: %w", err)
	}

	return saved, nil
}
