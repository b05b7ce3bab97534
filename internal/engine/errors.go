package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// ErrInvalidLocation matches every *InvalidLocationError via errors.Is.
var ErrInvalidLocation = errors.New("invalid location")

// InvalidLocationError reports a latitude or longitude outside its range.
type InvalidLocationError struct {
	Field string // "latitude" or "longitude"
	Value float64
}

func (e *InvalidLocationError) Error() string {
	limit := 90
	if e.Field == "longitude" {
		limit = 180
	}
	return fmt.Sprintf("invalid location: %s %v outside [-%d, %d]", e.Field, e.Value, limit, limit)
}

// Is reports whether target is ErrInvalidLocation.
func (e *InvalidLocationError) Is(target error) bool { return target == ErrInvalidLocation }

// ValidateLocation checks the observer's latitude and longitude.
func ValidateLocation(loc astro.Observer) error {
	if math.IsNaN(loc.LatDeg) || loc.LatDeg < -90 || loc.LatDeg > 90 {
		return &InvalidLocationError{Field: "latitude", Value: loc.LatDeg}
	}
	if math.IsNaN(loc.LonDeg) || loc.LonDeg < -180 || loc.LonDeg > 180 {
		return &InvalidLocationError{Field: "longitude", Value: loc.LonDeg}
	}
	return nil
}

// Kind names the failure class of an engine error, for metrics labels,
// HTTP status mapping and user messages.
type Kind string

const (
	KindOK              Kind = "ok"
	KindUnknownBody     Kind = "unknown_body"
	KindBodyUnavailable Kind = "body_unavailable"
	KindInvalidLocation Kind = "invalid_location"
	KindInvalidTime     Kind = "invalid_time"
	KindOutOfRange      Kind = "out_of_range"
	KindInternal        Kind = "internal"
)

// KindOf classifies err. A nil error is KindOK.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ephem.ErrUnknownBody):
		return KindUnknownBody
	case errors.Is(err, ephem.ErrBodyUnavailable):
		return KindBodyUnavailable
	case errors.Is(err, ErrInvalidLocation):
		return KindInvalidLocation
	case errors.Is(err, timescale.ErrInvalidTime):
		return KindInvalidTime
	case errors.Is(err, ephem.ErrOutOfRange):
		return KindOutOfRange
	default:
		return KindInternal
	}
}
