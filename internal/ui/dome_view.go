package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// Camera window in degrees.
const (
	fovAz = 120.0
	fovEl = 60.0

	panStep = 15.0
)

const (
	panDuration = 400 * time.Millisecond
	panFrame    = 30 * time.Millisecond
)

const (
	glyphBody        = '●'
	glyphBodyFocused = '◉'

	colorBody        = "#d0c8ff"
	colorBodyFocused = "229"

	starMagLimit = 4.0
)

// compass points drawn on the strip under the dome
var compassPoints = []struct {
	label string
	az    float64
}{
	{"N", 0}, {"NE", 45}, {"E", 90}, {"SE", 135},
	{"S", 180}, {"SW", 225}, {"W", 270}, {"NW", 315},
}

// LabelMode controls which bodies get a name next to their glyph.
type LabelMode int

const (
	LabelNone LabelMode = iota
	LabelFocused
	LabelAll
	labelModeCount
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelFocused:
		return "focus"
	default:
		return "all"
	}
}

// pan is a camera move in progress.
type pan struct {
	fromAz, fromEl float64
	toAz, toEl     float64
	start          time.Time
}

// at returns the camera direction after elapsed, and whether the move is
// finished.
func (p pan) at(elapsed time.Duration) (az, el float64, done bool) {
	f := float64(elapsed) / float64(panDuration)
	if f >= 1 {
		return p.toAz, p.toEl, true
	}
	f = 1 - math.Pow(1-f, 3) // ease out
	return lerpAngle(p.fromAz, p.toAz, f), lerp(p.fromEl, p.toEl, f), false
}

// domeTickMsg advances a camera pan.
type domeTickMsg time.Time

func domeTick() tea.Cmd {
	return tea.Tick(panFrame, func(t time.Time) tea.Msg { return domeTickMsg(t) })
}

// DomeViewModel shows a window onto the sky dome around the focused body,
// panning the camera when the focus changes.
type DomeViewModel struct {
	width  int
	height int

	camAz, camEl float64
	pan          *pan

	snap  *sky.Snapshot
	stars []sky.StarPoint
	focus string

	labelMode LabelMode
}

// NewDomeViewModel starts looking south, halfway up.
func NewDomeViewModel() DomeViewModel {
	return DomeViewModel{camAz: 180, camEl: 45, labelMode: LabelFocused}
}

// SetSize updates the viewport size.
func (m DomeViewModel) SetSize(width, height int) DomeViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the sky and recomputes the star field. A settled
// camera follows the focused body as it moves.
func (m DomeViewModel) UpdateData(snap *sky.Snapshot) DomeViewModel {
	m.snap = snap
	m.stars = nil
	if snap != nil {
		m.stars = sky.Stars(snap.Observer, timescale.FromTime(snap.Time), starMagLimit)
	}
	if p, ok := m.focused(); ok && m.pan == nil {
		m.camAz, m.camEl = cameraTarget(p)
	}
	return m
}

// SetFocus selects body and starts panning towards it.
func (m DomeViewModel) SetFocus(body string) (DomeViewModel, tea.Cmd) {
	if body == m.focus {
		return m, nil
	}
	m.focus = body
	p, ok := m.focused()
	if !ok {
		return m, nil
	}
	toAz, toEl := cameraTarget(p)
	m.pan = &pan{fromAz: m.camAz, fromEl: m.camEl, toAz: toAz, toEl: toEl, start: time.Now()}
	return m, domeTick()
}

func (m DomeViewModel) focused() (engine.ApparentPosition, bool) {
	if m.snap == nil || m.focus == "" {
		return engine.ApparentPosition{}, false
	}
	return m.snap.Position(m.focus)
}

// cameraTarget aims at p, never lower than half the window so the horizon
// stays in view.
func cameraTarget(p engine.ApparentPosition) (az, el float64) {
	return p.AzimuthDeg, math.Max(p.AltitudeDeg, fovEl/2)
}

// Update handles messages.
func (m DomeViewModel) Update(msg tea.Msg) (DomeViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "l":
			m.labelMode = (m.labelMode + 1) % labelModeCount
		case "left":
			m.pan = nil
			m.camAz = astro.NormalizeDeg360(m.camAz - panStep)
		case "right":
			m.pan = nil
			m.camAz = astro.NormalizeDeg360(m.camAz + panStep)
		}

	case domeTickMsg:
		if m.pan == nil {
			return m, nil
		}
		az, el, done := m.pan.at(time.Time(msg).Sub(m.pan.start))
		m.camAz, m.camEl = astro.NormalizeDeg360(az), el
		if done {
			m.pan = nil
			return m, nil
		}
		return m, domeTick()
	}
	return m, nil
}

// View renders the dome view.
func (m DomeViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Dome view requires larger terminal"
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	lines := []string{
		m.renderHeader(),
		m.renderDome(m.width, m.height-4).String(),
		m.renderStatus(),
		dim.Render(legend(m.snap)),
	}
	return strings.Join(lines, "\n")
}

func (m DomeViewModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")).Render("Dome View")
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	return fmt.Sprintf("%s | %s | %s", title,
		dim.Render("Labels: "+m.labelMode.String()),
		dim.Render(fmt.Sprintf("Az:%.0f° El:%.0f°", m.camAz, m.camEl)))
}

func (m DomeViewModel) renderStatus() string {
	p, ok := m.focused()
	if !ok {
		return "No body in focus"
	}
	line := fmt.Sprintf(">>> %s | Az:%.1f° Alt:%.1f° | %s",
		p.BodyName, p.AzimuthDeg, p.AltitudeDeg, astro.FormatDistance(p.DistanceAU))
	if !p.Visible() {
		line += " | below horizon"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorBodyFocused)).Render(line)
}

// renderDome draws the camera window over height-1 rows and the compass
// strip on the last row.
func (m DomeViewModel) renderDome(width, height int) *canvas {
	c := newCanvas(width, height)
	skyRows := height - 1

	if _, y, ok := m.projectToScreen(m.camAz, 0, width, height); ok {
		for x := 0; x < width; x++ {
			c.set(x, y, '─', "60")
		}
	}

	for _, s := range m.stars {
		if x, y, ok := m.projectToScreen(s.AzDeg, s.AltDeg, width, height); ok && c.blank(x, y) {
			glyph, color := starGlyph(s.Mag)
			c.set(x, y, glyph, color)
		}
	}

	type placed struct {
		x, y int
		name string
	}
	var others []placed
	var focus *placed
	if m.snap != nil {
		for _, p := range m.snap.Batch.Visible {
			x, y, ok := m.projectToScreen(p.AzimuthDeg, p.AltitudeDeg, width, height)
			if !ok {
				continue
			}
			if p.BodyName == m.focus {
				c.set(x, y, glyphBodyFocused, colorBodyFocused)
				focus = &placed{x, y, p.BodyName}
				continue
			}
			c.set(x, y, glyphBody, colorBody)
			others = append(others, placed{x, y, p.BodyName})
		}
	}

	// the focused label is written last so it is never overdrawn
	if m.labelMode == LabelAll {
		for _, p := range others {
			c.text(p.x+2, p.y, p.name, colorBody)
		}
	}
	if focus != nil && m.labelMode != LabelNone {
		c.text(focus.x+2, focus.y, "◄ "+focus.name, colorBodyFocused)
	}

	for _, cp := range compassPoints {
		if x, _, ok := m.projectToScreen(cp.az, m.camEl, width, height); ok {
			c.text(x-len(cp.label)/2, skyRows, cp.label, "252")
		}
	}
	c.set(width/2, skyRows, '▲', "46")
	return c
}

// starGlyph returns the glyph and color for a star of magnitude mag.
func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return '✶', "255"
	case mag < 3.0:
		return '✸', "250"
	case mag < 4.0:
		return '·', "244"
	default:
		return '·', "240"
	}
}

// projectToScreen maps az/el into the camera window. The window spans
// height-1 rows; the last row belongs to the compass strip.
func (m DomeViewModel) projectToScreen(az, el float64, width, height int) (int, int, bool) {
	dAz := normalizeAngle(az - m.camAz)
	dEl := el - m.camEl
	if math.Abs(dAz) > fovAz/2 || math.Abs(dEl) > fovEl/2 {
		return 0, 0, false
	}
	rows := height - 1
	x := int(math.Round((dAz/fovAz + 0.5) * float64(width-1)))
	y := int(math.Round((0.5 - dEl/fovEl) * float64(rows-1)))
	return x, y, true
}

// normalizeAngle wraps a into [-180, 180].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	switch {
	case a > 180:
		a -= 360
	case a < -180:
		a += 360
	}
	return a
}

// lerpAngle interpolates from a to b along the shorter arc.
func lerpAngle(a, b, t float64) float64 {
	return a + normalizeAngle(b-a)*t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
