package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/state"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// Altitude samples shown under the detail.
const sparkWidth = 40

// PolarViewModel renders the whole sky as a polar plot with the body table
// and the focused body's detail beside it.
type PolarViewModel struct {
	width  int
	height int

	snap    *sky.Snapshot
	stars   []sky.StarPoint
	focus   string
	detail  *engine.Detail
	history []state.TimeSeries

	showStars bool
}

// NewPolarViewModel creates a polar view with the star field on.
func NewPolarViewModel() PolarViewModel {
	return PolarViewModel{showStars: true}
}

// SetSize updates the viewport size.
func (m PolarViewModel) SetSize(width, height int) PolarViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the sky and recomputes the star field.
func (m PolarViewModel) UpdateData(snap *sky.Snapshot) PolarViewModel {
	m.snap = snap
	m.stars = nil
	if snap != nil {
		m.stars = sky.Stars(snap.Observer, timescale.FromTime(snap.Time), starMagLimit)
	}
	return m
}

// SetFocus selects the highlighted body. Any detail for another body is
// dropped.
func (m PolarViewModel) SetFocus(body string) PolarViewModel {
	if m.detail != nil && m.detail.Position.BodyName != body {
		m.detail = nil
	}
	m.focus = body
	return m
}

// SetDetail shows d if it belongs to the focused body.
func (m PolarViewModel) SetDetail(d engine.Detail) PolarViewModel {
	if d.Position.BodyName == m.focus {
		m.detail = &d
	}
	return m
}

// SetHistory sets the focused body's recent altitudes.
func (m PolarViewModel) SetHistory(h []state.TimeSeries) PolarViewModel {
	m.history = h
	return m
}

// Update handles messages.
func (m PolarViewModel) Update(msg tea.Msg) (PolarViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "t" {
		m.showStars = !m.showStars
	}
	return m, nil
}

// View renders the plot and the side panel.
func (m PolarViewModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Sky plot requires larger terminal"
	}
	if m.snap == nil {
		return "Waiting for sky..."
	}

	rows := m.height - 2
	if rows > 25 {
		rows = 25
	}
	if rows%2 == 0 {
		rows-- // odd so the zenith has a row
	}
	plot := m.renderPlot(rows*2+1, rows)

	panel := RenderBodyTable(m.snap, m.focus)
	if m.detail != nil {
		panel += "\n\n" + RenderDetail(*m.detail)
	}
	if spark := RenderSparkline(m.history, sparkWidth); spark != "" {
		panel += "\n" + spark
	}
	panelStyle := lipgloss.NewStyle().PaddingLeft(3)

	return lipgloss.JoinHorizontal(lipgloss.Top, plot, panelStyle.Render(panel))
}

func (m PolarViewModel) renderPlot(cols, rows int) string {
	c := newCanvas(cols, rows)
	plot := func(az, alt float64, r rune, fg lipgloss.Color) {
		if col, row, ok := sky.Cell(az, alt, cols, rows); ok {
			c.set(col, row, r, fg)
		}
	}

	// rim one point per degree, 30° and 60° rings sparser
	for az := 0; az < 360; az++ {
		plot(float64(az), 0, '·', "60")
		if az%6 == 0 {
			plot(float64(az), 30, '·', "237")
			plot(float64(az), 60, '·', "237")
		}
	}
	if m.showStars {
		for _, s := range m.stars {
			glyph, fg := starGlyph(s.Mag)
			plot(s.AzDeg, s.AltDeg, glyph, fg)
		}
	}
	for _, cp := range compassPoints {
		if len(cp.label) == 1 {
			plot(cp.az, 0, rune(cp.label[0]), "252")
		}
	}
	plot(0, 90, '+', "60")

	for i, p := range m.snap.Batch.Visible {
		fg := lipgloss.Color(colorBody)
		if p.BodyName == m.focus {
			fg = colorBodyFocused
		}
		plot(p.AzimuthDeg, p.AltitudeDeg, bodyMarker(i), fg)
	}
	return c.String()
}

// legend lists the marker numbers of the visible bodies on one line.
func legend(snap *sky.Snapshot) string {
	if snap == nil || len(snap.Batch.Visible) == 0 {
		return "No bodies above the horizon"
	}
	parts := make([]string, len(snap.Batch.Visible))
	for i, p := range snap.Batch.Visible {
		parts[i] = fmt.Sprintf("%c %s", bodyMarker(i), p.BodyName)
	}
	return strings.Join(parts, "  ")
}
