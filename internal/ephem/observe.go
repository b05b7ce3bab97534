package ephem

import (
	"math"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/timescale"
)

const (
	maxLightTimeIterations = 10
	lightTimeTolerance     = 1e-12 // days
)

// Astrometric is the position of a body relative to an observer, corrected
// for light travel time.
type Astrometric struct {
	Key      string
	Position astro.Vec3 // body at emission time minus observer at reception time, AU
	Observer StateVector
	// LightTime is the one-way light time in days.
	LightTime float64
}

// Observe computes the light-time corrected vector from observer to the
// body registered under key, with the observation received at t. The
// observer state must share the service's origin.
func Observe(svc Service, observer StateVector, key string, t timescale.Time) (Astrometric, error) {
	target, err := svc.StateAt(key, t)
	if err != nil {
		return Astrometric{}, err
	}
	vec := target.Position.Sub(observer.Position)
	lt := vec.Norm() / astro.LightSpeedAUPerDay

	for i := 0; i < maxLightTimeIterations; i++ {
		target, err = svc.StateAt(key, t.AddDays(-lt))
		if err != nil {
			return Astrometric{}, err
		}
		vec = target.Position.Sub(observer.Position)
		next := vec.Norm() / astro.LightSpeedAUPerDay
		converged := math.Abs(next-lt) < lightTimeTolerance
		lt = next
		if converged {
			break
		}
	}

	return Astrometric{Key: key, Position: vec, Observer: observer, LightTime: lt}, nil
}

// Apparent applies relativistic stellar aberration for the observer's
// barycentric velocity. Gravitational deflection is not modelled.
func (a Astrometric) Apparent() Apparent {
	pos := a.Position
	v := a.Observer.Velocity
	c := astro.LightSpeedAUPerDay

	pmag := pos.Norm()
	vmag := v.Norm()
	if pmag == 0 || vmag == 0 {
		return Apparent{Position: pos, LightTime: a.LightTime}
	}

	beta := vmag / c
	cosd := pos.Dot(v) / (pmag * vmag)
	gammai := math.Sqrt(1 - beta*beta)
	p := beta * cosd
	q := (1 + p/(1+gammai)) * (pmag / c)

	shifted := pos.Scale(gammai).Add(v.Scale(q)).Scale(1 / (1 + p))
	return Apparent{Position: shifted, LightTime: a.LightTime}
}

// Apparent is an observer-relative position as it appears on the sky,
// in the observer's ICRF-aligned axes.
type Apparent struct {
	Position  astro.Vec3
	LightTime float64
}

// RADec decomposes the apparent position into right ascension (hours,
// [0,24)), declination (degrees) and distance (AU).
func (a Apparent) RADec() (raHours, decDeg, distAU float64) {
	return astro.SphericalFromVec(a.Position)
}
