// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skymap/internal/config"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/state"
	"github.com/litescript/ls-skymap/internal/store"
	"github.com/litescript/ls-skymap/internal/timescale"
	"github.com/litescript/ls-skymap/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewPolar ViewMode = iota
	ViewDome
	viewCount
)

// Time steps for the [ ] and { } keys.
const (
	stepSmall = time.Hour
	stepLarge = 24 * time.Hour
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic refresh checks.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// SkyUpdateMsg carries a freshly observed sky.
	SkyUpdateMsg struct {
		Snapshot sky.Snapshot
		Err      error
	}

	// detailMsg carries the extended description of one body.
	detailMsg struct {
		detail engine.Detail
		err    error
	}

	// savedMsg reports the outcome of writing the sky to the store.
	savedMsg struct {
		saved, skipped int
		err            error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	observer *sky.Observer
	state    *state.Manager
	store    *store.Store
	presets  []config.Preset
	now      func() time.Time

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	presetIdx int
	pinned    time.Time // zero follows the clock
	focusIdx  int
	fetching  bool
	lastFetch time.Time

	// Sub-models
	polar PolarViewModel
	dome  DomeViewModel

	snapshot state.Snapshot
}

// Option configures the model.
type Option func(*Model)

// WithStore enables saving the current sky with the w key.
func WithStore(s *store.Store) Option {
	return func(m *Model) { m.store = s }
}

// WithClock replaces the wall clock used in live mode.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithPreset starts on the named preset if it exists.
func WithPreset(name string) Option {
	return func(m *Model) {
		for i, p := range m.presets {
			if strings.EqualFold(p.Name, name) {
				m.presetIdx = i
			}
		}
	}
}

// WithTime pins the sky to t instead of following the clock.
func WithTime(t time.Time) Option {
	return func(m *Model) { m.pinned = t.UTC() }
}

// New creates a new root UI model. presets must not be empty.
func New(obs *sky.Observer, stateMgr *state.Manager, presets []config.Preset, opts ...Option) Model {
	m := Model{
		observer: obs,
		state:    stateMgr,
		presets:  presets,
		now:      time.Now,
		viewMode: ViewPolar,
		polar:    NewPolarViewModel(),
		dome:     NewDomeViewModel(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.fetchCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.viewMode = ViewPolar
		case "2":
			m.viewMode = ViewDome
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "down", "j":
			cmds = append(cmds, m.moveFocus(1)...)
		case "up", "k":
			cmds = append(cmds, m.moveFocus(-1)...)

		case "p":
			m.presetIdx = (m.presetIdx + 1) % len(m.presets)
			m.statusMsg = "Observer: " + m.presets[m.presetIdx].Name
			cmds = append(cmds, m.refetch())
		case "]":
			cmds = append(cmds, m.step(stepSmall))
		case "[":
			cmds = append(cmds, m.step(-stepSmall))
		case "}":
			cmds = append(cmds, m.step(stepLarge))
		case "{":
			cmds = append(cmds, m.step(-stepLarge))
		case "0":
			m.pinned = time.Time{}
			m.statusMsg = "Following the clock"
			cmds = append(cmds, m.refetch())

		case "w":
			cmds = append(cmds, m.saveCmd())

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo ~10 lines, tabs 1, footer ~2
		contentHeight := msg.Height - 14
		m.polar = m.polar.SetSize(msg.Width, contentHeight)
		m.dome = m.dome.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if !m.fetching && m.pinned.IsZero() && time.Time(msg).Sub(m.lastFetch) >= m.state.RefreshInterval() {
			cmds = append(cmds, m.refetch())
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case SkyUpdateMsg:
		m.fetching = false
		m.lastFetch = m.now()
		if msg.Err != nil {
			m.state.Update(nil, msg.Err)
		} else {
			m.state.Update(&msg.Snapshot, nil)
		}
		m.snapshot = m.state.Snapshot()
		m.polar = m.polar.UpdateData(m.snapshot.Sky)
		m.dome = m.dome.UpdateData(m.snapshot.Sky)
		cmds = append(cmds, m.applyFocus()...)

	case detailMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Detail failed: %v", msg.err)
		} else {
			m.polar = m.polar.SetDetail(msg.detail)
		}

	case savedMsg:
		switch {
		case msg.err != nil:
			m.statusMsg = fmt.Sprintf("Save failed: %v", msg.err)
		default:
			m.statusMsg = fmt.Sprintf("Saved %d positions (%d already stored)", msg.saved, msg.skipped)
		}

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewPolar:
		m.polar, cmd = m.polar.Update(msg)
	case ViewDome:
		m.dome, cmd = m.dome.Update(msg)
	}
	// a pan started from another tab still has to settle
	if _, ok := msg.(domeTickMsg); ok && m.viewMode != ViewDome {
		m.dome, cmd = m.dome.Update(msg)
	}
	return cmd
}

// preset returns the active preset location.
func (m Model) preset() config.Preset {
	return m.presets[m.presetIdx]
}

// skyTime is the instant the next fetch observes.
func (m Model) skyTime() time.Time {
	if !m.pinned.IsZero() {
		return m.pinned
	}
	return m.now().UTC()
}

func (m *Model) step(d time.Duration) tea.Cmd {
	m.pinned = m.skyTime().Add(d)
	m.statusMsg = "Sky time " + m.pinned.Format("2006-01-02 15:04 UTC")
	return m.refetch()
}

func (m *Model) refetch() tea.Cmd {
	m.fetching = true
	return m.fetchCmd()
}

// fetchCmd observes the sky for the active preset and time.
func (m Model) fetchCmd() tea.Cmd {
	obs := m.observer
	loc := m.preset().Observer()
	when := timescale.FromTime(m.skyTime())
	return func() tea.Msg {
		snap, err := obs.Observe(context.Background(), loc, when)
		return SkyUpdateMsg{Snapshot: snap, Err: err}
	}
}

// focusName returns the focused body, cycling through every supported body
// so hidden ones can be inspected too.
func (m Model) focusName() string {
	names := m.observer.Engine().ListSupportedBodies()
	if len(names) == 0 {
		return ""
	}
	return names[m.focusIdx%len(names)]
}

func (m *Model) moveFocus(delta int) []tea.Cmd {
	n := len(m.observer.Engine().ListSupportedBodies())
	if n == 0 {
		return nil
	}
	m.focusIdx = ((m.focusIdx+delta)%n + n) % n
	return m.applyFocus()
}

// applyFocus pushes the focus to the views and requests the detail.
func (m *Model) applyFocus() []tea.Cmd {
	name := m.focusName()
	m.polar = m.polar.SetFocus(name).SetHistory(m.state.AltitudeHistory(name))
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.dome, cmd = m.dome.SetFocus(name)
	cmds = append(cmds, cmd)

	if snap := m.snapshot.Sky; snap != nil {
		if _, ok := snap.Position(name); ok {
			cmds = append(cmds, m.detailCmd(name, snap))
		}
	}
	return cmds
}

func (m Model) detailCmd(name string, snap *sky.Snapshot) tea.Cmd {
	eng := m.observer.Engine()
	loc := snap.Observer
	when := timescale.FromTime(snap.Time)
	return func() tea.Msg {
		d, err := eng.Describe(name, loc, when)
		return detailMsg{detail: d, err: err}
	}
}

// saveCmd writes every resolved position of the current sky to the store.
func (m *Model) saveCmd() tea.Cmd {
	if m.store == nil {
		m.statusMsg = "No store configured"
		return nil
	}
	snap := m.snapshot.Sky
	if snap == nil {
		m.statusMsg = "Nothing to save yet"
		return nil
	}
	st := m.store
	return func() tea.Msg {
		var out savedMsg
		when := timescale.FromTime(snap.Time)
		for _, p := range snap.Positions {
			rec, err := store.NewRecord(p, snap.Observer, when)
			if err != nil {
				return savedMsg{err: err}
			}
			ok, err := st.Save(context.Background(), rec)
			if err != nil {
				return savedMsg{err: err}
			}
			if ok {
				out.saved++
			} else {
				out.skipped++
			}
		}
		return out
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewPolar:
		content = m.polar.View()
	case ViewDome:
		content = m.dome.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗      ███████╗██╗  ██╗██╗   ██╗███╗   ███╗ █████╗ ██████╗ `,
		`  ██║     ██╔════╝      ██╔════╝██║ ██╔╝╚██╗ ██╔╝████╗ ████║██╔══██╗██╔══██╗`,
		`  ██║     ███████╗█████╗███████╗█████╔╝  ╚████╔╝ ██╔████╔██║███████║██████╔╝`,
		`  ██║     ╚════██║╚════╝╚════██║██╔═██╗   ╚██╔╝  ██║╚██╔╝██║██╔══██║██╔═══╝ `,
		`  ███████╗███████║      ███████║██║  ██╗   ██║   ██║ ╚═╝ ██║██║  ██║██║     `,
		`  ╚══════╝╚══════╝      ╚══════╝╚═╝  ╚═╝   ╚═╝   ╚═╝     ╚═╝╚═╝  ╚═╝╚═╝     `,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Planets · Observer-relative positions"))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s | %s", version.Version, m.observer.Engine().Source())))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// blue, purple, magenta, then pink, darkening toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	switch {
	case xRatio < 0.33:
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	case xRatio < 0.66:
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	default:
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sky", "[2] Dome"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}

	p := m.preset()
	where := fmt.Sprintf("%s (%.4f, %.4f)", p.Name, p.Lat, p.Lon)
	when := m.skyTime().Format("2006-01-02 15:04 UTC")
	if m.pinned.IsZero() {
		when += " live"
	}
	return "  " + strings.Join(parts, "  ") + "    " + dimStyle.Render(where+" @ "+when)
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch snap := m.snapshot; {
	case snap.LastError != nil:
		status = errorStyle.Render("ERROR: " + snap.LastError.Error())
	case snap.Sky != nil:
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" %d up, %d down (%s)",
			len(snap.Sky.Batch.Visible), len(snap.Sky.Batch.Hidden), snap.Sky.Elapsed.Round(time.Microsecond)))
		if n := len(snap.Sky.Failures); n > 0 {
			status += errorStyle.Render(fmt.Sprintf(" %d failed", n))
		}
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" Resolving...")
	}

	help := dimStyle.Render("j/k: body | p: observer | [ ]: ±1h | { }: ±1d | 0: now | w: save")
	switch m.viewMode {
	case ViewPolar:
		help += dimStyle.Render(" | t: stars")
	case ViewDome:
		help += dimStyle.Render(" | l: labels | ←/→: pan")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help

	if events := m.snapshot.Events; len(events) > 0 {
		e := events[len(events)-1]
		footer += "\n  " + dimStyle.Render(fmt.Sprintf("%s %s %s", e.Timestamp.Format("15:04"), e.Type, e.Body))
	}
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}

	return footer
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
