package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/state"
)

func testSnapshot() *sky.Snapshot {
	snap := &sky.Snapshot{
		Time: newYear,
		Positions: []engine.ApparentPosition{
			{BodyName: "Mercury", AzimuthDeg: 250, AltitudeDeg: -5, DistanceAU: 1.1},
			{BodyName: "Venus", AzimuthDeg: 240, AltitudeDeg: 20, DistanceAU: 0.7},
			{BodyName: "Mars", AzimuthDeg: 60, AltitudeDeg: 50, DistanceAU: 0.6466},
		},
		Failures: []sky.Failure{{Body: "Saturn", Kind: engine.KindOutOfRange, Message: "outside ephemeris span", Err: errors.New("x")}},
	}
	snap.Batch = engine.Classify(snap.Positions)
	return snap
}

func TestTierToBar(t *testing.T) {
	tests := []struct {
		alt  float64
		want string
	}{
		{-3, "░░░░"},
		{0, "░░░░"},
		{10, "█░░░"},
		{30, "██░░"},
		{60, "████"},
	}
	for _, tt := range tests {
		if got := tierToBar(astro.GetElevationTier(tt.alt)); got != tt.want {
			t.Errorf("bar(%v) = %q, want %q", tt.alt, got, tt.want)
		}
	}
}

func TestRenderBodyTable(t *testing.T) {
	out := RenderBodyTable(testSnapshot(), "Mars")
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	// visible bodies numbered in registry order
	if !contains(lines[1], "1 Venus") || !contains(lines[2], "2 Mars") {
		t.Errorf("markers wrong:\n%s", out)
	}
	if !contains(lines[0], "  Mercury") {
		t.Errorf("hidden body should have no marker: %q", lines[0])
	}
	if !contains(lines[2], "0.6466 AU") {
		t.Errorf("distance missing: %q", lines[2])
	}
	if !contains(lines[3], "Saturn") || !contains(lines[3], "outside ephemeris span") {
		t.Errorf("failure line = %q", lines[3])
	}

	if RenderBodyTable(nil, "") != "" {
		t.Error("nil snapshot should render nothing")
	}
}

func TestRenderDetail(t *testing.T) {
	d := engine.Detail{
		Position:      engine.ApparentPosition{BodyName: "Venus", AltitudeDeg: 20, RightAscensionHours: 22.5, DeclinationDeg: -12.25, DistanceAU: 0.7},
		ElongationDeg: 8,
		LightTimeSec:  astro.LightTimeFromAU(0.7),
		Pass:          astro.Pass{AlwaysUp: true, MaxAltDeg: 20},
	}
	out := RenderDetail(d)
	for _, want := range []string{"Venus", "20.00°", astro.FormatRA(22.5), astro.FormatDec(-12.25), "0.7000 AU", "5m49s", "lost in glare"} {
		if !contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestRenderElongation(t *testing.T) {
	tests := []struct {
		elong float64
		want  string
	}{
		{5, "lost in glare"},
		{15, "twilight only"},
		{90, "90.0°"},
	}
	for _, tt := range tests {
		if got := RenderElongation(tt.elong); !contains(got, tt.want) {
			t.Errorf("RenderElongation(%v) = %q, want %q", tt.elong, got, tt.want)
		}
	}
}

func TestRenderSparkline(t *testing.T) {
	var series []state.TimeSeries
	for i, alt := range []float64{-10, 0, 5, 45, 89, 90} {
		series = append(series, state.TimeSeries{Timestamp: newYear.Add(time.Duration(i) * time.Minute), Value: alt})
	}
	got := ansiRE.ReplaceAllString(RenderSparkline(series, 10), "")
	if got != "__▁▅██" {
		t.Errorf("sparkline = %q", got)
	}
	if got := ansiRE.ReplaceAllString(RenderSparkline(series, 2), ""); got != "██" {
		t.Errorf("width 2 sparkline = %q", got)
	}
	if RenderSparkline(nil, 10) != "" {
		t.Error("empty series should render nothing")
	}
}

func TestPolarView(t *testing.T) {
	m := NewPolarViewModel().SetSize(120, 27).UpdateData(testSnapshot()).SetFocus("Mars")
	out := m.View()
	for _, want := range []string{"N", "E", "S", "W", "2 Mars", "1 Venus"} {
		if !contains(out, want) {
			t.Errorf("polar view missing %q", want)
		}
	}

	m = m.SetDetail(engine.Detail{Position: engine.ApparentPosition{BodyName: "Venus"}})
	if m.detail != nil {
		t.Error("detail for another body accepted")
	}
	m = m.SetDetail(engine.Detail{Position: engine.ApparentPosition{BodyName: "Mars", AltitudeDeg: 50}})
	if !contains(m.View(), "sun-sep") {
		t.Error("detail not rendered")
	}

	m, _ = m.Update(key("t"))
	if m.showStars {
		t.Error("t should hide stars")
	}
}

func TestPolarView_Waiting(t *testing.T) {
	m := NewPolarViewModel().SetSize(120, 27)
	if got := m.View(); got != "Waiting for sky..." {
		t.Errorf("View() = %q", got)
	}
}

func TestLegend(t *testing.T) {
	if got := legend(testSnapshot()); got != "1 Venus  2 Mars" {
		t.Errorf("legend = %q", got)
	}
	if got := legend(&sky.Snapshot{}); got != "No bodies above the horizon" {
		t.Errorf("empty legend = %q", got)
	}
}
