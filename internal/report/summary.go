package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/sky"
)

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Body     string
	Az       float64
	Alt      float64
	RA       string
	Dec      string
	Distance string
	Visible  bool
}

// GenerateSummaryRows lists visible bodies first, then hidden ones, each in
// registry order.
func GenerateSummaryRows(snap *sky.Snapshot) []SummaryRow {
	if snap == nil {
		return nil
	}
	var rows []SummaryRow
	add := func(ps []engine.ApparentPosition) {
		for _, p := range ps {
			rows = append(rows, SummaryRow{
				Body:     p.BodyName,
				Az:       p.AzimuthDeg,
				Alt:      p.AltitudeDeg,
				RA:       astro.FormatRA(p.RightAscensionHours),
				Dec:      astro.FormatDec(p.DeclinationDeg),
				Distance: astro.FormatDistance(p.DistanceAU),
				Visible:  p.Visible(),
			})
		}
	}
	add(snap.Batch.Visible)
	add(snap.Batch.Hidden)
	return rows
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, snap *sky.Snapshot) {
	if snap == nil {
		fmt.Fprintln(w, "No sky data")
		return
	}
	rows := GenerateSummaryRows(snap)

	fmt.Fprintf(w, "Sky @ %s from %s [%s]\n", snap.Time.Format(time.RFC3339), observerLabel(snap.Observer), snap.Source)
	fmt.Fprintln(w, strings.Repeat("─", 84))

	if len(rows) == 0 && len(snap.Failures) == 0 {
		fmt.Fprintln(w, "No bodies resolved")
		return
	}

	fmt.Fprintf(w, "%-8s %8s %7s  %-16s %-14s %-12s %-7s\n",
		"Body", "Az", "Alt", "RA", "Dec", "Distance", "Status")
	fmt.Fprintln(w, strings.Repeat("─", 84))

	for _, r := range rows {
		status := "hidden"
		if r.Visible {
			status = "VISIBLE"
		}
		fmt.Fprintf(w, "%-8s %7.2f° %6.2f°  %-16s %-14s %-12s %-7s\n",
			r.Body, r.Az, r.Alt, r.RA, r.Dec, r.Distance, status)
	}
	for _, f := range snap.Failures {
		fmt.Fprintf(w, "%-8s %s\n", f.Body, truncateStr("error: "+f.Message, 75))
	}

	fmt.Fprintf(w, "\nVisible: %d  Hidden: %d", len(snap.Batch.Visible), len(snap.Batch.Hidden))
	if len(snap.Failures) > 0 {
		fmt.Fprintf(w, "  Failed: %d", len(snap.Failures))
	}
	fmt.Fprintln(w)
}

func observerLabel(o astro.Observer) string {
	coords := fmt.Sprintf("%.4f, %.4f", o.LatDeg, o.LonDeg)
	if o.Name == "" {
		return coords
	}
	return fmt.Sprintf("%s (%s)", o.Name, coords)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
