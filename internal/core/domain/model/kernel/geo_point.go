package kernel

import (
	"errors"
	"fmt"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
)

// ErrGeoPointIsNotConstructed is returned when a zero-value GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is the last-known position of a shipment expressed in WGS84 degrees.
// It is an immutable value object; the zero value is invalid.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(3.3792, 6.5244) // Lagos
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(point) // GeoPoint(3.379200,6.524400)
type GeoPoint struct { //nolint:recvcheck //using for validation
	longitude float64
	latitude  float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint after checking both coordinates are within range.
// All violations are reported together.
func NewGeoPoint(longitude, latitude float64) (GeoPoint, error) {
	point := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(point.setLongitude(longitude), point.setLatitude(latitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate reports whether the point was built through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Longitude returns the east-west coordinate in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Latitude returns the north-south coordinate in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// IsEqual compares two constructed points coordinate by coordinate.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p == other, nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.longitude, p.latitude)
}

// setLongitude and setLatitude use pointer receivers so the constructor can
// validate in place; every other method works on values.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	p.longitude = longitude
	return nil
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	p.latitude = latitude
	return nil
}
