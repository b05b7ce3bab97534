package engine

import (
	"math"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// ApparentPosition is where a body appears for one observer at one instant.
// Right ascension, declination and distance are geocentric apparent values
// and do not depend on the observer's location.
type ApparentPosition struct {
	BodyName            string  `json:"body_name"`
	AzimuthDeg          float64 `json:"azimuth_deg"`           // [0,360), clockwise from north
	AltitudeDeg         float64 `json:"altitude_deg"`          // [-90,90], no refraction
	RightAscensionHours float64 `json:"right_ascension_hours"` // [0,24)
	DeclinationDeg      float64 `json:"declination_deg"`       // [-90,90]
	DistanceAU          float64 `json:"distance_au"`
}

// Visible reports whether the body is above the horizon. A body exactly on
// the horizon is not visible.
func (p ApparentPosition) Visible() bool {
	return p.AltitudeDeg > astro.Horizon
}

// Resolve observes body from frame at t: light-time and aberration are
// applied once from the geocentre for the equatorial coordinates and once
// from the site for the horizontal ones. Ephemeris errors are returned
// unchanged.
func Resolve(svc ephem.Service, body ephem.BodyIdentity, frame Frame, t timescale.Time) (ApparentPosition, error) {
	geo, err := ephem.Observe(svc, frame.Earth, body.EphemerisKey, t)
	if err != nil {
		return ApparentPosition{}, err
	}
	ra, dec, dist := geo.Apparent().RADec()

	az, alt, err := horizontal(svc, body, frame, t)
	if err != nil {
		return ApparentPosition{}, err
	}

	return ApparentPosition{
		BodyName:            body.DisplayName,
		AzimuthDeg:          az,
		AltitudeDeg:         alt,
		RightAscensionHours: ra,
		DeclinationDeg:      dec,
		DistanceAU:          dist,
	}, nil
}

// horizontal returns the topocentric azimuth and altitude in degrees.
func horizontal(svc ephem.Service, body ephem.BodyIdentity, frame Frame, t timescale.Time) (az, alt float64, err error) {
	topo, err := ephem.Observe(svc, frame.Observer, body.EphemerisKey, t)
	if err != nil {
		return 0, 0, err
	}
	enu := frame.Horizon.Apply(topo.Apparent().Position)
	az = astro.NormalizeDeg360(math.Atan2(enu.X, enu.Y) * 180 / math.Pi)
	alt = math.Atan2(enu.Z, math.Hypot(enu.X, enu.Y)) * 180 / math.Pi
	return az, alt, nil
}
