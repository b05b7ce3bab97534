package engine

import (
	"math"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// earthRotationRate is the sidereal rotation rate in radians per day.
const earthRotationRate = 7.292115e-5 * 86400

const arcsec = math.Pi / (180 * 3600)

// Frame is everything needed to observe from one place at one instant.
type Frame struct {
	Location astro.Observer
	Time     timescale.Time

	// Earth is the state of the geocentre, Observer that of the site on the
	// ellipsoid. Both share the ephemeris service's origin.
	Earth    ephem.StateVector
	Observer ephem.StateVector

	// Terrestrial rotates celestial (ICRF) vectors onto the rotating Earth
	// frame: R3(GAST)·N·P.
	Terrestrial astro.Mat3
	// Horizon rotates celestial vectors onto local east, north, up.
	Horizon astro.Mat3
}

// BuildFrame validates loc and assembles the observer frame at t. It is
// rebuilt for every query; nothing is cached.
func BuildFrame(svc ephem.Service, loc astro.Observer, t timescale.Time) (Frame, error) {
	if err := ValidateLocation(loc); err != nil {
		return Frame{}, err
	}
	earth, err := svc.StateAt(ephem.KeyEarth, t)
	if err != nil {
		return Frame{}, err
	}

	terrestrial := earthRotation(t).Mul(nutationMatrix(t)).Mul(precessionMatrix(t))
	celestial := terrestrial.T()

	site := siteVector(loc)
	spin := astro.Vec3{Z: earthRotationRate}.Cross(site)

	return Frame{
		Location: loc,
		Time:     t,
		Earth:    earth,
		Observer: ephem.StateVector{
			Position: earth.Position.Add(celestial.Apply(site)),
			Velocity: earth.Velocity.Add(celestial.Apply(spin)),
		},
		Terrestrial: terrestrial,
		Horizon:     horizonMatrix(loc).Mul(terrestrial),
	}, nil
}

// siteVector returns the Earth-fixed position of a site at zero height on
// the IAU 1976 ellipsoid, in AU.
func siteVector(loc astro.Observer) astro.Vec3 {
	ρsφ, ρcφ := globe.Earth76.ParallaxConstants(unit.AngleFromDeg(loc.LatDeg), 0)
	sλ, cλ := math.Sincos(loc.LonDeg * math.Pi / 180)
	r := globe.Earth76.Er / astro.AU
	return astro.Vec3{X: r * ρcφ * cλ, Y: r * ρcφ * sλ, Z: r * ρsφ}
}

// precessionMatrix is the IAU 1976 precession from J2000 to the mean
// equator and equinox of date.
func precessionMatrix(t timescale.Time) astro.Mat3 {
	T := t.CenturiesTT()
	zeta := (2306.2181*T + 0.30188*T*T + 0.017998*T*T*T) * arcsec
	z := (2306.2181*T + 1.09468*T*T + 0.018203*T*T*T) * arcsec
	theta := (2004.3109*T - 0.42665*T*T - 0.041833*T*T*T) * arcsec
	return astro.RotZ(-z).Mul(astro.RotY(theta)).Mul(astro.RotZ(-zeta))
}

// nutationMatrix is the IAU 1980 nutation from mean to true equator of date.
func nutationMatrix(t timescale.Time) astro.Mat3 {
	Δψ, Δε := nutation.Nutation(t.TT)
	ε0 := nutation.MeanObliquity(t.TT).Rad()
	return astro.RotX(-(ε0 + Δε.Rad())).Mul(astro.RotZ(-Δψ.Rad())).Mul(astro.RotX(ε0))
}

// earthRotation turns the true equinox of date onto the Greenwich meridian.
func earthRotation(t timescale.Time) astro.Mat3 {
	return astro.RotZ(sidereal.Apparent(t.UT1).Rad())
}

// horizonMatrix rotates Earth-fixed vectors onto east, north, up at loc.
func horizonMatrix(loc astro.Observer) astro.Mat3 {
	sφ, cφ := math.Sincos(loc.LatDeg * math.Pi / 180)
	sλ, cλ := math.Sincos(loc.LonDeg * math.Pi / 180)
	return astro.Mat3{
		{-sλ, cλ, 0},
		{-sφ * cλ, -sφ * sλ, cφ},
		{cφ * cλ, cφ * sλ, sφ},
	}
}
