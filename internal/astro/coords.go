// Package astro provides vectors, rotations and sky-coordinate helpers shared
// by the position engine and the renderers.
package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// SkyCoord represents celestial coordinates with both equatorial (RA/Dec)
// and horizontal (Az/Alt) components.
type SkyCoord struct {
	// Equatorial coordinates
	RAHours float64 // Right ascension in hours [0,24)
	DecDeg  float64 // Declination in degrees [-90,90]

	// Horizontal coordinates (observer-relative)
	AzDeg  float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	AltDeg float64 // Altitude in degrees (0=horizon, 90=zenith)
}

// Observer represents a ground-based observer location on the reference
// ellipsoid (altitude 0 m).
type Observer struct {
	LatDeg float64 // Geodetic latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// EquatorialToHorizontal converts equatorial coordinates (RA/Dec) to
// horizontal coordinates (Az/Alt) for an observer at the UT1 Julian date jd.
// This is the fast spherical path used for background stars; solar-system
// bodies go through the engine's vector pipeline instead.
func EquatorialToHorizontal(eq SkyCoord, obs Observer, jd float64) SkyCoord {
	lat := degToRad(obs.LatDeg)
	dec := degToRad(eq.DecDeg)

	lst := localSiderealTime(jd, obs.LonDeg)
	ha := degToRad(lst - eq.RAHours*15)

	sinLat, cosLat := math.Sincos(lat)
	sinDec, cosDec := math.Sincos(dec)
	sinHA, cosHA := math.Sincos(ha)

	// east, north, up components of the unit vector
	e := -cosDec * sinHA
	n := sinDec*cosLat - cosDec*cosHA*sinLat
	u := sinDec*sinLat + cosDec*cosHA*cosLat

	return SkyCoord{
		RAHours: eq.RAHours,
		DecDeg:  eq.DecDeg,
		AzDeg:   NormalizeDeg360(radToDeg(math.Atan2(e, n))),
		AltDeg:  radToDeg(math.Atan2(u, math.Hypot(e, n))),
	}
}

// localSiderealTime returns the apparent local sidereal time in degrees.
func localSiderealTime(jd, lonDeg float64) float64 {
	gast := sidereal.Apparent(jd).Rad()
	return NormalizeDeg360(radToDeg(gast) + lonDeg)
}

// JulianDate returns the Julian date of t on its own (UTC) scale.
func JulianDate(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// NormalizeDeg360 maps an angle in degrees onto [0,360).
func NormalizeDeg360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// NormalizeHours maps an hour angle onto [0,24).
func NormalizeHours(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	if h >= 24 {
		h = 0
	}
	return h
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
