// Package ephemtest provides an analytic ephemeris for tests: planets on
// inclined circular heliocentric orbits with mean elements at J2000.
package ephemtest

import (
	"math"
	"sync"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/timescale"
)

type orbit struct {
	a    float64 // AU
	l0   float64 // mean longitude at J2000, degrees
	incl float64 // degrees
	node float64 // degrees
}

var orbits = map[string]orbit{
	ephem.KeyMercury: {0.38710, 252.2503, 7.005, 48.331},
	ephem.KeyVenus:   {0.72333, 181.9791, 3.395, 76.680},
	ephem.KeyEarth:   {1.00000, 100.4645, 0, 0},
	ephem.KeyMars:    {1.52368, 355.4330, 1.850, 49.558},
	ephem.KeyJupiter: {5.20260, 34.3515, 1.303, 100.464},
	ephem.KeySaturn:  {9.55491, 50.0774, 2.489, 113.666},
	ephem.KeyUranus:  {19.21845, 314.0550, 0.773, 74.006},
	ephem.KeyNeptune: {30.11039, 304.3487, 1.770, 131.784},
}

// Orrery is a deterministic ephemeris.Service for tests. The zero value is
// not usable; call New.
type Orrery struct {
	span ephem.Span

	mu    sync.Mutex
	fail  map[string]error
	calls map[string]int
}

// New returns an orrery covering 1900–2100.
func New() *Orrery {
	return &Orrery{
		span:  ephem.Span{StartJD: 2415020.5, EndJD: 2488069.5},
		fail:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// WithSpan replaces the covered interval.
func (o *Orrery) WithSpan(start, end float64) *Orrery {
	o.span = ephem.Span{StartJD: start, EndJD: end}
	return o
}

// Fail makes every query for key return err.
func (o *Orrery) Fail(key string, err error) {
	o.mu.Lock()
	o.fail[key] = err
	o.mu.Unlock()
}

// Calls returns how many times key was queried.
func (o *Orrery) Calls(key string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls[key]
}

// Name returns "orrery".
func (o *Orrery) Name() string { return "orrery" }

// Span returns the covered interval.
func (o *Orrery) Span() ephem.Span { return o.span }

// StateAt returns the heliocentric state of key.
func (o *Orrery) StateAt(key string, t timescale.Time) (ephem.StateVector, error) {
	o.mu.Lock()
	o.calls[key]++
	err := o.fail[key]
	o.mu.Unlock()
	if err != nil {
		return ephem.StateVector{}, err
	}
	if !o.span.Contains(t.TDB) {
		return ephem.StateVector{}, &ephem.RangeError{
			Key: key, Source: o.Name(), TDB: t.TDB, UTC: t.UTCTime(), Span: o.span,
		}
	}
	if key == ephem.KeySun {
		return ephem.StateVector{}, nil
	}
	orb, ok := orbits[key]
	if !ok {
		return ephem.StateVector{}, &ephem.RangeError{
			Key: key, Source: o.Name(), TDB: t.TDB, UTC: t.UTCTime(), Span: o.span, Err: ephem.ErrNoData,
		}
	}
	return orb.state(t.TDB), nil
}

// state evaluates the circular orbit at a TDB Julian date.
func (orb orbit) state(jd float64) ephem.StateVector {
	const k = 0.01720209895 // Gaussian gravitational constant
	n := k / math.Pow(orb.a, 1.5)
	node := orb.node * math.Pi / 180
	incl := orb.incl * math.Pi / 180
	u := orb.l0*math.Pi/180 - node + n*(jd-timescale.J2000)

	su, cu := math.Sincos(u)
	sn, cn := math.Sincos(node)
	si, ci := math.Sincos(incl)

	pos := astro.Vec3{
		X: orb.a * (cn*cu - sn*su*ci),
		Y: orb.a * (sn*cu + cn*su*ci),
		Z: orb.a * su * si,
	}
	vel := astro.Vec3{
		X: orb.a * n * (-cn*su - sn*cu*ci),
		Y: orb.a * n * (-sn*su + cn*cu*ci),
		Z: orb.a * n * cu * si,
	}
	return ephem.StateVector{
		Position: astro.EclipticToEquatorial(pos),
		Velocity: astro.EclipticToEquatorial(vel),
	}
}
