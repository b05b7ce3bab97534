package astro

import (
	"errors"
	"math"
	"time"
)

// AltitudeSample is the altitude of a body at one instant.
type AltitudeSample struct {
	Time   time.Time
	AltDeg float64
}

// Pass represents a rise-transit-set cycle of a body above the horizon.
type Pass struct {
	Rise      time.Time // zero if the body was already up at the first sample
	Transit   time.Time // highest sampled point, refined
	Set       time.Time // zero if the body is still up at the last sample
	MaxAltDeg float64
	AlwaysUp  bool // never crosses the horizon in the sampled span
	NeverUp   bool // stays at or below the horizon in the sampled span
}

// Horizon is the altitude in degrees above which a body counts as visible.
// A body exactly on the horizon is not visible.
const Horizon = 0.0

// Errors for pass calculations.
var (
	ErrInsufficientSamples = errors.New("insufficient samples for pass calculation")
)

// FindPass computes rise, transit and set from chronologically ordered
// altitude samples. Horizon crossings are linearly interpolated and the
// transit is refined with a parabola through the three samples around the
// maximum.
func FindPass(samples []AltitudeSample) (Pass, error) {
	if len(samples) < 3 {
		return Pass{}, ErrInsufficientSamples
	}

	minAlt, maxAlt := 90.0, -90.0
	maxIdx := 0
	for i, s := range samples {
		if s.AltDeg < minAlt {
			minAlt = s.AltDeg
		}
		if s.AltDeg > maxAlt {
			maxAlt = s.AltDeg
			maxIdx = i
		}
	}

	if maxAlt <= Horizon {
		return Pass{NeverUp: true, MaxAltDeg: maxAlt}, nil
	}

	transit, peak := refineMax(samples, maxIdx)
	if minAlt > Horizon {
		return Pass{Transit: transit, MaxAltDeg: peak, AlwaysUp: true}, nil
	}

	p := Pass{Transit: transit, MaxAltDeg: peak}

	// rise: last upward crossing at or before the transit sample
	for i := maxIdx; i > 0; i-- {
		prev, curr := samples[i-1], samples[i]
		if prev.AltDeg <= Horizon && curr.AltDeg > Horizon {
			p.Rise = interpolateCrossing(prev, curr, Horizon)
			break
		}
	}
	// set: first downward crossing after the transit sample
	for i := maxIdx + 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		if prev.AltDeg > Horizon && curr.AltDeg <= Horizon {
			p.Set = interpolateCrossing(prev, curr, Horizon)
			break
		}
	}
	return p, nil
}

// refineMax fits a parabola through the samples around idx.
func refineMax(samples []AltitudeSample, idx int) (time.Time, float64) {
	if idx == 0 || idx == len(samples)-1 {
		return samples[idx].Time, samples[idx].AltDeg
	}
	y0, y1, y2 := samples[idx-1].AltDeg, samples[idx].AltDeg, samples[idx+1].AltDeg
	denom := y0 - 2*y1 + y2
	if math.Abs(denom) < 1e-12 {
		return samples[idx].Time, y1
	}
	// vertex offset in units of the (assumed uniform) sample step
	x := 0.5 * (y0 - y2) / denom
	if x < -1 || x > 1 {
		return samples[idx].Time, y1
	}
	step := samples[idx+1].Time.Sub(samples[idx].Time)
	peak := y1 - 0.25*(y0-y2)*x
	return samples[idx].Time.Add(time.Duration(x * float64(step))), peak
}

// interpolateCrossing finds the time when altitude crosses a threshold.
func interpolateCrossing(a, b AltitudeSample, threshold float64) time.Time {
	if math.Abs(b.AltDeg-a.AltDeg) < 1e-9 {
		return a.Time
	}
	fraction := (threshold - a.AltDeg) / (b.AltDeg - a.AltDeg)
	fraction = math.Max(0, math.Min(1, fraction))
	return a.Time.Add(time.Duration(float64(b.Time.Sub(a.Time)) * fraction))
}

// ElevationTier categorizes altitude for UI display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // At or below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// GetElevationTier returns the tier for a given altitude.
func GetElevationTier(altDeg float64) ElevationTier {
	switch {
	case altDeg <= Horizon:
		return ElevationNone
	case altDeg < 15:
		return ElevationLow
	case altDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
