package location

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
)

// OfficeLocation is the single active office point and the radius around it
// inside which attendance may be recorded.
type OfficeLocation struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	UpdatedAt    time.Time
}

func (o OfficeLocation) Coordinate() utils.Coordinate {
	return utils.Coordinate{Latitude: o.Latitude, Longitude: o.Longitude}
}

// DistanceFrom returns the great-circle distance in meters from p to the office.
func (o OfficeLocation) DistanceFrom(p utils.Coordinate) float64 {
	return utils.HaversineDistance(p, o.Coordinate())
}

// boundaryToleranceMeters absorbs floating-point error so a point whose true
// distance equals the radius is still covered.
const boundaryToleranceMeters = 1e-6

// Covers reports whether p is within the radius. A point exactly on the boundary is covered.
func (o OfficeLocation) Covers(p utils.Coordinate) bool {
	return o.DistanceFrom(p) <= float64(o.RadiusMeters)+boundaryToleranceMeters
}
