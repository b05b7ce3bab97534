package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// MiniSkyConfig sizes the ASCII polar plot.
type MiniSkyConfig struct {
	Rows   int  // plot height in lines; width is 2*Rows-1
	Stars  bool // draw the background star field
	MaxMag float64
}

// DefaultMiniSkyConfig returns a plot that fits an 80-column terminal.
func DefaultMiniSkyConfig() MiniSkyConfig {
	return MiniSkyConfig{Rows: 17, Stars: true, MaxMag: 2.0}
}

// WriteMiniSky draws visible bodies on a polar plot (north up, east right,
// zenith in the centre) followed by a numbered legend.
func WriteMiniSky(w io.Writer, snap *sky.Snapshot, cfg MiniSkyConfig) {
	if snap == nil || len(snap.Batch.Visible) == 0 {
		fmt.Fprintln(w, "No bodies above the horizon")
		return
	}
	rows := cfg.Rows
	if rows < 7 {
		rows = 7
	}
	cols := 2*rows - 1

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}
	put := func(az, alt float64, ch rune) {
		if c, r, ok := sky.Cell(az, alt, cols, rows); ok {
			grid[r][c] = ch
		}
	}

	// horizon rim
	for az := 0.0; az < 360; az += 2 {
		put(az, 0, '·')
	}
	if cfg.Stars {
		for _, s := range sky.Stars(snap.Observer, timescale.FromTime(snap.Time), cfg.MaxMag) {
			ch := '.'
			if s.Mag < 1 {
				ch = '*'
			}
			put(s.AzDeg, s.AltDeg, ch)
		}
	}
	put(0, 0, 'N')
	put(90, 0, 'E')
	put(180, 0, 'S')
	put(270, 0, 'W')
	put(0, 90, '+')

	for i, p := range snap.Batch.Visible {
		put(p.AzimuthDeg, p.AltitudeDeg, marker(i))
	}

	fmt.Fprintln(w, "┌"+strings.Repeat("─", cols+2)+"┐")
	for _, line := range grid {
		fmt.Fprintln(w, "│ "+string(line)+" │")
	}
	fmt.Fprintln(w, "└"+strings.Repeat("─", cols+2)+"┘")

	for i, p := range snap.Batch.Visible {
		fmt.Fprintf(w, "  %c %-8s az %6.2f°  alt %5.2f°\n", marker(i), p.BodyName, p.AzimuthDeg, p.AltitudeDeg)
	}
	if n := len(snap.Batch.Hidden); n > 0 {
		names := make([]string, n)
		for i, p := range snap.Batch.Hidden {
			names[i] = p.BodyName
		}
		fmt.Fprintf(w, "  below horizon: %s\n", strings.Join(names, ", "))
	}
}

// marker returns the plot glyph for the i-th visible body.
func marker(i int) rune {
	const glyphs = "1234567890"
	return rune(glyphs[i%len(glyphs)])
}
