package astro

import (
	"fmt"

	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// FormatRA renders right ascension in hours in sexagesimal hours, minutes
// and seconds to a tenth of a second.
func FormatRA(hours float64) string {
	return fmt.Sprintf("%.1v", sexa.FmtRA(unit.RAFromHour(hours)))
}

// FormatDec renders a declination in degrees in sexagesimal degrees,
// arcminutes and whole arcseconds.
func FormatDec(deg float64) string {
	return fmt.Sprintf("%.0v", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

// FormatDistance formats a distance in AU.
func FormatDistance(au float64) string {
	switch {
	case au < 0.01:
		return fmt.Sprintf("%.0f km", au*AU)
	case au < 10:
		return fmt.Sprintf("%.4f AU", au)
	default:
		return fmt.Sprintf("%.2f AU", au)
	}
}
