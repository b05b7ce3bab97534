package ephem

import (
	"fmt"

	"github.com/soniakeys/meeus/v3/julian"
	pp "github.com/soniakeys/meeus/v3/planetposition"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// vsopPlanets maps ephemeris keys to VSOP87 body indices.
var vsopPlanets = map[string]int{
	KeyMercury: pp.Mercury,
	KeyVenus:   pp.Venus,
	KeyEarth:   pp.Earth,
	KeyMars:    pp.Mars,
	KeyJupiter: pp.Jupiter,
	KeySaturn:  pp.Saturn,
	KeyUranus:  pp.Uranus,
	KeyNeptune: pp.Neptune,
}

// Step for the central-difference velocity, in days.
const vsopVelocityStep = 0.01

// vsopSpan is the interval over which the truncated series stay within an
// arcsecond for the inner planets.
var vsopSpan = Span{
	StartJD: julian.CalendarGregorianToJD(1000, 1, 1),
	EndJD:   julian.CalendarGregorianToJD(3000, 1, 1),
}

// VSOP87 serves heliocentric states from the VSOP87B series. It is
// read-only after loading and safe for concurrent use.
type VSOP87 struct {
	planets map[string]*pp.V87Planet
}

// LoadVSOP87 reads the VSOP87B files from dir, or from $VSOP87 when dir is
// empty.
func LoadVSOP87(dir string) (*VSOP87, error) {
	v := &VSOP87{planets: make(map[string]*pp.V87Planet, len(vsopPlanets))}
	for key, ibody := range vsopPlanets {
		var (
			p   *pp.V87Planet
			err error
		)
		if dir == "" {
			p, err = pp.LoadPlanet(ibody)
		} else {
			p, err = pp.LoadPlanetPath(ibody, dir)
		}
		if err != nil {
			return nil, fmt.Errorf("load VSOP87 %s: %w", key, err)
		}
		v.planets[key] = p
	}
	return v, nil
}

func (v *VSOP87) rangeError(key string, t timescale.Time, cause error) *RangeError {
	return &RangeError{Key: key, Source: v.Name(), TDB: t.TDB, UTC: t.UTCTime(), Span: vsopSpan, Err: cause}
}

// Name returns "VSOP87".
func (v *VSOP87) Name() string { return "VSOP87" }

// Span returns the covered TDB interval.
func (v *VSOP87) Span() Span { return vsopSpan }

// StateAt returns the heliocentric state of key at t.TDB. The Sun is the
// origin; the Moon is not part of the series.
func (v *VSOP87) StateAt(key string, t timescale.Time) (StateVector, error) {
	if !vsopSpan.Contains(t.TDB) {
		return StateVector{}, v.rangeError(key, t, nil)
	}
	if key == KeySun {
		return StateVector{}, nil
	}
	p, ok := v.planets[key]
	if !ok {
		return StateVector{}, v.rangeError(key, t, ErrNoData)
	}

	pos := heliocentric(p, t.TDB)
	ahead := heliocentric(p, t.TDB+vsopVelocityStep)
	behind := heliocentric(p, t.TDB-vsopVelocityStep)
	return StateVector{
		Position: pos,
		Velocity: ahead.Sub(behind).Scale(1 / (2 * vsopVelocityStep)),
	}, nil
}

// heliocentric returns the J2000 equatorial position in AU.
func heliocentric(p *pp.V87Planet, jde float64) astro.Vec3 {
	l, b, r := p.Position2000(jde)
	sl, cl := l.Sincos()
	sb, cb := b.Sincos()
	return astro.EclipticToEquatorial(astro.Vec3{X: r * cb * cl, Y: r * cb * sl, Z: r * sb})
}
