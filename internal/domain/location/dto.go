package location

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type UpdateOfficeLocationRequest struct {
	Latitude     *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude    *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	RadiusMeters *int     `json:"radius" validate:"required,gt=0"`
}

func (r *UpdateOfficeLocationRequest) Validate() error {
	return validator.ValidateStruct(r)
}

type OfficeLocationResponse struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

func NewOfficeLocationResponse(o OfficeLocation) OfficeLocationResponse {
	resp := OfficeLocationResponse{
		Latitude:     o.Latitude,
		Longitude:    o.Longitude,
		RadiusMeters: o.RadiusMeters,
	}
	if !o.UpdatedAt.IsZero() {
		resp.UpdatedAt = o.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
