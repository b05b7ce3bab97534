package engine

import (
	"time"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// Pass sampling over one day.
const (
	passWindow = 24 * time.Hour
	passStep   = 10 * time.Minute
)

// Detail is the extended description shown for a selected body.
type Detail struct {
	Position      ApparentPosition `json:"position"`
	ElongationDeg float64          `json:"elongation_deg"`
	LightTimeSec  float64          `json:"light_time_s"`
	Pass          astro.Pass       `json:"pass"`
}

// Describe resolves name and adds solar elongation, light time and the
// rise/transit/set pass for the 24 hours starting at when.
func (e *Engine) Describe(name string, loc astro.Observer, when timescale.Instant) (Detail, error) {
	t, err := timescale.ToInternal(when)
	if err != nil {
		return Detail{}, err
	}
	pos, err := e.BodyPosition(name, loc, when)
	if err != nil {
		return Detail{}, err
	}
	pass, err := e.Pass(name, loc, when)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		Position:      pos,
		ElongationDeg: astro.Elongation(pos.RightAscensionHours, pos.DeclinationDeg, t.TT),
		LightTimeSec:  astro.LightTimeFromAU(pos.DistanceAU),
		Pass:          pass,
	}, nil
}

// Pass samples the body's altitude every ten minutes for a day from start
// and finds rise, transit and set.
func (e *Engine) Pass(name string, loc astro.Observer, start timescale.Instant) (astro.Pass, error) {
	body, err := ephem.Resolve(name)
	if err != nil {
		return astro.Pass{}, err
	}
	t0, err := timescale.ToInternal(start)
	if err != nil {
		return astro.Pass{}, err
	}

	n := int(passWindow/passStep) + 1
	samples := make([]astro.AltitudeSample, 0, n)
	for i := 0; i < n; i++ {
		offset := time.Duration(i) * passStep
		t := t0.AddDays(offset.Hours() / 24)
		frame, err := BuildFrame(e.svc, loc, t)
		if err != nil {
			return astro.Pass{}, err
		}
		_, alt, err := horizontal(e.svc, body, frame, t)
		if err != nil {
			return astro.Pass{}, err
		}
		samples = append(samples, astro.AltitudeSample{Time: start.Time().Add(offset), AltDeg: alt})
	}
	return astro.FindPass(samples)
}
