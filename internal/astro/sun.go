package astro

import (
	"math"

	"github.com/soniakeys/meeus/v3/solar"
)

// SunPosition returns the apparent geocentric right ascension (hours) and
// declination (degrees) of the Sun at the dynamical-time Julian date jde.
// Accuracy is about 0.01°, enough for elongation and glare warnings.
func SunPosition(jde float64) (raHours, decDeg float64) {
	α, δ := solar.ApparentEquatorial(jde)
	return NormalizeHours(α.Hour()), δ.Deg()
}

// Elongation returns the angular distance in degrees between the Sun and a
// target at (raHours, decDeg).
func Elongation(raHours, decDeg, jde float64) float64 {
	sunRA, sunDec := SunPosition(jde)
	return AngularSeparation(sunRA, sunDec, raHours, decDeg)
}

// AngularSeparation returns the great-circle distance in degrees between two
// equatorial directions. RA in hours, Dec in degrees.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	a := VecFromSpherical(ra1, dec1, 1)
	b := VecFromSpherical(ra2, dec2, 1)
	// atan2 form stays accurate near 0° and 180°
	return radToDeg(math.Atan2(a.Cross(b).Norm(), a.Dot(b)))
}

// GlareTier categorizes solar elongation for display.
type GlareTier int

const (
	GlareNone    GlareTier = iota // >= 20 degrees
	GlareTwilit                   // 10-20 degrees
	GlareBlinded                  // < 10 degrees
)

// GetGlareTier returns the tier for an elongation angle.
func GetGlareTier(elongDeg float64) GlareTier {
	switch {
	case elongDeg < 10:
		return GlareBlinded
	case elongDeg < 20:
		return GlareTwilit
	default:
		return GlareNone
	}
}
