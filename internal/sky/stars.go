package sky

import (
	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// StarPoint is a catalogue star placed in the observer's horizon frame.
type StarPoint struct {
	astro.Star
	AzDeg  float64
	AltDeg float64
}

// Stars returns the catalogue stars brighter than maxMag that are above the
// horizon for loc at when. Positions are J2000 without precession, which is
// fine for a background field.
func Stars(loc astro.Observer, when timescale.Instant, maxMag float64) []StarPoint {
	jd := astro.JulianDate(when.Time())
	var out []StarPoint
	for _, s := range astro.BrightStars(maxMag) {
		hz := astro.EquatorialToHorizontal(astro.SkyCoord{RAHours: s.RAHours, DecDeg: s.DecDeg}, loc, jd)
		if hz.AltDeg <= astro.Horizon {
			continue
		}
		out = append(out, StarPoint{Star: s, AzDeg: hz.AzDeg, AltDeg: hz.AltDeg})
	}
	return out
}
