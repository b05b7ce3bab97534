package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/state"
	"github.com/litescript/ls-skymap/internal/store"
)

// WriteDetail writes a body card: position, formatted coordinates, solar
// elongation, light time and the day's rise/transit/set.
func WriteDetail(w io.Writer, d engine.Detail, loc astro.Observer, when time.Time) {
	p := d.Position
	status := "below horizon"
	if p.Visible() {
		status = "above horizon"
	}

	fmt.Fprintf(w, "%s @ %s UTC from %s\n", p.BodyName, when.UTC().Format("2006-01-02 15:04:05"), observerLabel(loc))
	fmt.Fprintln(w, strings.Repeat("─", 56))
	fmt.Fprintf(w, "  Azimuth:      %9.4f°\n", p.AzimuthDeg)
	fmt.Fprintf(w, "  Altitude:     %9.4f°  (%s)\n", p.AltitudeDeg, status)
	fmt.Fprintf(w, "  RA:           %9.4f h  %s\n", p.RightAscensionHours, astro.FormatRA(p.RightAscensionHours))
	fmt.Fprintf(w, "  Dec:          %9.4f°  %s\n", p.DeclinationDeg, astro.FormatDec(p.DeclinationDeg))
	fmt.Fprintf(w, "  Distance:     %9.4f AU\n", p.DistanceAU)
	fmt.Fprintf(w, "  Light time:   %s\n", astro.FormatLightTime(d.LightTimeSec))
	fmt.Fprintf(w, "  Elongation:   %.1f° from the Sun%s\n", d.ElongationDeg, glareNote(d.ElongationDeg))
	fmt.Fprintf(w, "  Next 24h:     %s\n", FormatPass(d.Pass))
}

func glareNote(elong float64) string {
	switch astro.GetGlareTier(elong) {
	case astro.GlareBlinded:
		return " (lost in glare)"
	case astro.GlareTwilit:
		return " (twilight only)"
	default:
		return ""
	}
}

// FormatPass summarises a rise/transit/set window in UTC.
func FormatPass(p astro.Pass) string {
	switch {
	case p.NeverUp:
		return "stays below the horizon"
	case p.AlwaysUp:
		return fmt.Sprintf("always up, peak %s @ %.0f°", clock(p.Transit), p.MaxAltDeg)
	}
	var parts []string
	if !p.Rise.IsZero() {
		parts = append(parts, "rise "+clock(p.Rise))
	}
	parts = append(parts, fmt.Sprintf("peak %s @ %.0f°", clock(p.Transit), p.MaxAltDeg))
	if !p.Set.IsZero() {
		parts = append(parts, "set "+clock(p.Set))
	}
	return strings.Join(parts, "   ")
}

func clock(t time.Time) string {
	return t.UTC().Format("15:04")
}

// WriteEvents writes the last n rise/set events.
func WriteEvents(w io.Writer, events []state.Event, n int) {
	fmt.Fprintln(w, "Events")
	fmt.Fprintln(w, strings.Repeat("─", 56))
	if len(events) == 0 {
		fmt.Fprintln(w, "No events yet")
		return
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		line := fmt.Sprintf("%s  %-9s %-8s", e.Timestamp.UTC().Format("2006-01-02 15:04"), e.Type, e.Body)
		switch e.Type {
		case state.EventFailed:
			line += " " + truncateStr(e.Detail, 30)
		default:
			line += fmt.Sprintf(" alt %6.2f°", e.AltDeg)
		}
		fmt.Fprintln(w, line)
	}
}

// WriteHistory writes saved records as a table.
func WriteHistory(w io.Writer, recs []store.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No saved positions")
		return
	}
	fmt.Fprintf(w, "%-8s %-16s %12s  %-16s %-14s\n", "Planet", "Date (UTC)", "Distance AU", "RA", "Dec")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for _, r := range recs {
		fmt.Fprintf(w, "%-8s %-16s %12.6f  %-16s %-14s\n", r.Planet, r.Date, r.DistanceAU, r.RightAscension, r.Declination)
	}
}
