package ui

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-skymap/internal/config"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/ephem/ephemtest"
	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/state"
	"github.com/litescript/ls-skymap/internal/store"
)

var newYear = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

var ansiRE = regexp.MustCompile("\x1b\\[[0-9;]*m")

// contains matches sub against s with styling removed.
func contains(s, sub string) bool {
	return strings.Contains(ansiRE.ReplaceAllString(s, ""), sub)
}

func newTestModel(opts ...Option) Model {
	obs := sky.NewObserver(engine.New(ephemtest.New()))
	opts = append([]Option{WithTime(newYear), WithClock(func() time.Time { return newYear })}, opts...)
	return New(obs, state.NewManager(state.DefaultConfig()), config.DefaultPresets, opts...)
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fetched runs one synchronous fetch.
func fetched(m Model) Model {
	return update(m, m.fetchCmd()())
}

func TestModel_SkyUpdate(t *testing.T) {
	m := fetched(newTestModel(WithPreset("colombo")))

	snap := m.snapshot.Sky
	if snap == nil {
		t.Fatal("no sky after fetch")
	}
	if snap.Observer.Name != "Colombo" || !snap.Time.Equal(newYear) {
		t.Errorf("observed %+v at %v", snap.Observer, snap.Time)
	}
	if len(snap.Positions) != 7 {
		t.Errorf("positions = %d, want 7", len(snap.Positions))
	}

	m = update(m, tea.WindowSizeMsg{Width: 140, Height: 50})
	out := m.View()
	for _, want := range []string{"Colombo (6.9271, 79.8612)", "2025-01-01 00:00 UTC", "[1] Sky", "Mercury", "orrery"} {
		if !contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if contains(out, " live") {
		t.Error("pinned time shown as live")
	}
}

func TestModel_PresetCycle(t *testing.T) {
	m := newTestModel()
	m = update(m, key("p"))
	if got := m.preset().Name; got != config.DefaultPresets[1].Name {
		t.Errorf("preset = %s", got)
	}
	if !m.fetching {
		t.Error("preset change should refetch")
	}

	m = fetched(m)
	if m.snapshot.Sky.Observer.Name != config.DefaultPresets[1].Name {
		t.Errorf("observed from %s", m.snapshot.Sky.Observer.Name)
	}

	for range config.DefaultPresets {
		m = update(m, key("p"))
	}
	if m.presetIdx != 1 {
		t.Errorf("preset index did not wrap: %d", m.presetIdx)
	}
}

func TestModel_TimeStep(t *testing.T) {
	m := newTestModel()

	m = update(m, key("]"))
	if want := newYear.Add(time.Hour); !m.pinned.Equal(want) {
		t.Errorf("after ] pinned = %v, want %v", m.pinned, want)
	}
	m = update(m, key("{"))
	if want := newYear.Add(time.Hour - 24*time.Hour); !m.pinned.Equal(want) {
		t.Errorf("after { pinned = %v, want %v", m.pinned, want)
	}

	m = update(m, key("0"))
	if !m.pinned.IsZero() {
		t.Error("0 should return to the clock")
	}
	if !m.skyTime().Equal(newYear) {
		t.Errorf("live sky time = %v", m.skyTime())
	}
}

func TestModel_FocusWraps(t *testing.T) {
	m := fetched(newTestModel())
	names := m.observer.Engine().ListSupportedBodies()

	m = update(m, key("k"))
	if got := m.focusName(); got != names[len(names)-1] {
		t.Errorf("focus after k = %s, want %s", got, names[len(names)-1])
	}
	m = update(m, key("j"))
	m = update(m, key("j"))
	if got := m.focusName(); got != names[1] {
		t.Errorf("focus = %s, want %s", got, names[1])
	}
	if m.polar.focus != names[1] || m.dome.focus != names[1] {
		t.Errorf("views not focused: %s, %s", m.polar.focus, m.dome.focus)
	}
}

func TestModel_Detail(t *testing.T) {
	m := fetched(newTestModel())
	name := m.focusName()

	m = update(m, m.detailCmd(name, m.snapshot.Sky)())
	if m.polar.detail == nil || m.polar.detail.Position.BodyName != name {
		t.Fatalf("detail not shown for %s", name)
	}

	// stale detail for another body is ignored
	m = update(m, key("j"))
	if m.polar.detail != nil {
		t.Error("detail kept after focus change")
	}
	m = update(m, detailMsg{detail: engine.Detail{Position: engine.ApparentPosition{BodyName: name}}})
	if m.polar.detail != nil {
		t.Error("detail for unfocused body shown")
	}
}

func TestModel_Save(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "sky.db"), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	m := fetched(newTestModel(WithStore(st)))
	m = update(m, m.saveCmd()())
	if !strings.Contains(m.statusMsg, "Saved 7 positions (0 already stored)") {
		t.Errorf("status = %q", m.statusMsg)
	}
	m = update(m, m.saveCmd()())
	if !strings.Contains(m.statusMsg, "Saved 0 positions (7 already stored)") {
		t.Errorf("second save status = %q", m.statusMsg)
	}
}

func TestModel_SaveWithoutStore(t *testing.T) {
	m := fetched(newTestModel())
	if cmd := m.saveCmd(); cmd != nil {
		t.Error("save without a store returned a command")
	}
	if m.statusMsg != "No store configured" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestModel_FetchError(t *testing.T) {
	obs := sky.NewObserver(engine.New(ephemtest.New()))
	bad := []config.Preset{{Name: "Nowhere", Lat: 91}}
	m := New(obs, state.NewManager(state.DefaultConfig()), bad, WithTime(newYear))

	m = fetched(m)
	m = update(m, tea.WindowSizeMsg{Width: 140, Height: 50})
	if m.snapshot.LastError == nil {
		t.Fatal("expected an error")
	}
	if !contains(m.View(), "ERROR: ") {
		t.Error("footer does not show the error")
	}
}

func TestModel_LiveTickRefetches(t *testing.T) {
	now := newYear
	obs := sky.NewObserver(engine.New(ephemtest.New()))
	mgr := state.NewManager(state.Config{RefreshInterval: time.Minute})
	m := New(obs, mgr, config.DefaultPresets, WithClock(func() time.Time { return now }))
	m = fetched(m)

	m = update(m, TickMsg(now.Add(30*time.Second)))
	if m.fetching {
		t.Error("refetched before the interval")
	}
	m = update(m, TickMsg(now.Add(time.Minute)))
	if !m.fetching {
		t.Error("no refetch after the interval")
	}
}

func TestModel_Quit(t *testing.T) {
	_, cmd := newTestModel().Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
