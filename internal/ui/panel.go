package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/report"
	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/state"
)

// Altitude and glare colors
const (
	colorVisHigh   = "#7CFC00" // Lawn green - high altitude
	colorVisMedium = "#FFD700" // Gold - medium altitude
	colorVisLow    = "#FF6347" // Tomato - low altitude
	colorVisNone   = "#444444" // Dark gray - below horizon

	colorSunSafe    = "#7CFC00"
	colorSunCaution = "#FFD700"
	colorSunWarning = "#FF4500"
)

// RenderBodyTable renders one line per resolved body with an altitude bar.
// Format:
//
//	1 Mars      ██░░   34.2°  az 112.0°  0.6466 AU
//	  Uranus    ░░░░  -12.5°  az 301.4°  18.92 AU
//
// Visible bodies carry the marker number used on the plots.
func RenderBodyTable(snap *sky.Snapshot, focus string) string {
	if snap == nil {
		return ""
	}

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorBodyFocused)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	markers := markerIndex(snap)
	var lines []string
	for _, p := range snap.Positions {
		tier := astro.GetElevationTier(p.AltitudeDeg)
		mark := " "
		if i, ok := markers[p.BodyName]; ok {
			mark = string(bodyMarker(i))
		}
		style := nameStyle
		if p.BodyName == focus {
			style = focusStyle
		}
		line := style.Render(fmt.Sprintf("%s %-8s", mark, p.BodyName)) + " " +
			renderBar(tier) + " " +
			colorByTier(tier, fmt.Sprintf("%6.1f°", p.AltitudeDeg)) +
			dimStyle.Render(fmt.Sprintf("  az %5.1f°  %s", p.AzimuthDeg, astro.FormatDistance(p.DistanceAU)))
		lines = append(lines, line)
	}
	for _, f := range snap.Failures {
		lines = append(lines, errStyle.Render(fmt.Sprintf("  %-8s %s", f.Body, f.Message)))
	}
	return strings.Join(lines, "\n")
}

// RenderDetail renders the focused body's coordinates, light time, pass
// and solar glare.
func RenderDetail(d engine.Detail) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	p := d.Position
	tier := astro.GetElevationTier(p.AltitudeDeg)
	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-6s", label)) + value
	}

	lines := []string{
		labelStyle.Render(p.BodyName),
		row("Alt", colorByTier(tier, fmt.Sprintf("%.2f°", p.AltitudeDeg))),
		row("Az", valueStyle.Render(fmt.Sprintf("%.2f°", p.AzimuthDeg))),
		row("RA", valueStyle.Render(astro.FormatRA(p.RightAscensionHours))),
		row("Dec", valueStyle.Render(astro.FormatDec(p.DeclinationDeg))),
		row("Dist", valueStyle.Render(astro.FormatDistance(p.DistanceAU))),
		row("Light", valueStyle.Render(astro.FormatLightTime(d.LightTimeSec))),
		row("Pass", colorByTier(tier, report.FormatPass(d.Pass))),
		RenderElongation(d.ElongationDeg),
	}
	return strings.Join(lines, "\n")
}

// renderBar converts an elevation tier to a 4-character bar.
func renderBar(tier astro.ElevationTier) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return style.Render(tierToBar(tier))
}

// tierToBar converts elevation tier to a 4-character bar representation.
func tierToBar(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return "████"
	case astro.ElevationMedium:
		return "██░░"
	case astro.ElevationLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}

// tierToColor returns the color for an elevation tier.
func tierToColor(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return colorVisHigh
	case astro.ElevationMedium:
		return colorVisMedium
	case astro.ElevationLow:
		return colorVisLow
	default:
		return colorVisNone
	}
}

// colorByTier applies tier-based coloring to text.
func colorByTier(tier astro.ElevationTier, text string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return style.Render(text)
}

// RenderElongation renders the solar elongation with a glare warning.
func RenderElongation(elongDeg float64) string {
	tier := astro.GetGlareTier(elongDeg)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(glareTierToColor(tier)))

	var status string
	switch tier {
	case astro.GlareBlinded:
		status = " (lost in glare)"
	case astro.GlareTwilit:
		status = " (twilight only)"
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	return dimStyle.Render("sun-sep: ") + style.Render(fmt.Sprintf("%.1f°%s", elongDeg, status))
}

func glareTierToColor(tier astro.GlareTier) string {
	switch tier {
	case astro.GlareBlinded:
		return colorSunWarning
	case astro.GlareTwilit:
		return colorSunCaution
	default:
		return colorSunSafe
	}
}

// markerIndex numbers the visible bodies in registry order, matching the
// markers drawn on the plots.
func markerIndex(snap *sky.Snapshot) map[string]int {
	out := make(map[string]int)
	if snap == nil {
		return out
	}
	for _, p := range snap.Positions {
		if p.Visible() {
			out[p.BodyName] = len(out)
		}
	}
	return out
}

func bodyMarker(i int) rune {
	const markers = "1234567"
	return rune(markers[i%len(markers)])
}

// RenderSparkline draws the last width altitude samples. Samples at or
// below the horizon are drawn as '_'.
func RenderSparkline(series []state.TimeSeries, width int) string {
	if len(series) == 0 || width <= 0 {
		return ""
	}
	if len(series) > width {
		series = series[len(series)-width:]
	}
	const levels = "▁▂▃▄▅▆▇█"
	glyphs := []rune(levels)

	var b strings.Builder
	for _, s := range series {
		tier := astro.GetElevationTier(s.Value)
		var g rune
		if s.Value <= astro.Horizon {
			g = '_'
		} else {
			i := int(s.Value / 90 * float64(len(glyphs)))
			if i >= len(glyphs) {
				i = len(glyphs) - 1
			}
			g = glyphs[i]
		}
		b.WriteString(colorByTier(tier, string(g)))
	}
	return b.String()
}
