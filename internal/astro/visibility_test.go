package astro

import (
	"errors"
	"math"
	"testing"
	"time"
)

// sineSamples builds hourly altitude samples of offset + amp·sin(2π(h-6)/24),
// which rises through offset at 06:00 and peaks at 12:00.
func sineSamples(offset, amp float64, hours int) []AltitudeSample {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]AltitudeSample, 0, hours+1)
	for h := 0; h <= hours; h++ {
		alt := offset + amp*math.Sin(2*math.Pi*float64(h-6)/24)
		out = append(out, AltitudeSample{Time: start.Add(time.Duration(h) * time.Hour), AltDeg: alt})
	}
	return out
}

func TestFindPass_Basic(t *testing.T) {
	p, err := FindPass(sineSamples(0, 40, 24))
	if err != nil {
		t.Fatalf("FindPass: %v", err)
	}
	if p.AlwaysUp || p.NeverUp {
		t.Fatalf("unexpected flags: %+v", p)
	}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	check := func(name string, got time.Time, wantHour float64, tol time.Duration) {
		t.Helper()
		want := base.Add(time.Duration(wantHour * float64(time.Hour)))
		if d := got.Sub(want); d < -tol || d > tol {
			t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
		}
	}
	check("rise", p.Rise, 6, time.Minute)
	check("transit", p.Transit, 12, time.Minute)
	check("set", p.Set, 18, time.Minute)
	if math.Abs(p.MaxAltDeg-40) > 0.01 {
		t.Errorf("MaxAltDeg = %v, want 40", p.MaxAltDeg)
	}
}

func TestFindPass_RefinesOffGridPeak(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var samples []AltitudeSample
	for h := 0; h <= 24; h++ {
		x := float64(h) - 12.4
		samples = append(samples, AltitudeSample{Time: start.Add(time.Duration(h) * time.Hour), AltDeg: 30 - 0.5*x*x})
	}
	p, err := FindPass(samples)
	if err != nil {
		t.Fatal(err)
	}
	want := start.Add(time.Duration(12.4 * float64(time.Hour)))
	if d := p.Transit.Sub(want); d < -time.Second || d > time.Second {
		t.Errorf("transit = %v, want %v", p.Transit, want)
	}
	if math.Abs(p.MaxAltDeg-30) > 1e-9 {
		t.Errorf("peak = %v, want 30", p.MaxAltDeg)
	}
}

func TestFindPass_Circumpolar(t *testing.T) {
	p, err := FindPass(sineSamples(50, 20, 24))
	if err != nil {
		t.Fatal(err)
	}
	if !p.AlwaysUp {
		t.Error("expected AlwaysUp")
	}
	if !p.Rise.IsZero() || !p.Set.IsZero() {
		t.Errorf("circumpolar pass has rise/set: %+v", p)
	}
}

func TestFindPass_NeverUp(t *testing.T) {
	p, err := FindPass(sineSamples(-50, 20, 24))
	if err != nil {
		t.Fatal(err)
	}
	if !p.NeverUp {
		t.Error("expected NeverUp")
	}
}

func TestFindPass_TouchingHorizonIsNotUp(t *testing.T) {
	samples := sineSamples(-10, 10, 24) // peaks at exactly 0
	p, err := FindPass(samples)
	if err != nil {
		t.Fatal(err)
	}
	if !p.NeverUp {
		t.Errorf("peak at altitude 0 should be NeverUp, got %+v", p)
	}
}

func TestFindPass_AlreadyUp(t *testing.T) {
	// starts at 12:00 equivalent: already past rise, sets 6h later
	samples := sineSamples(0, 40, 24)[8:]
	p, err := FindPass(samples)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Rise.IsZero() {
		t.Errorf("rise before window should be zero, got %v", p.Rise)
	}
	if p.Set.IsZero() {
		t.Error("expected a set time")
	}
}

func TestFindPass_InsufficientSamples(t *testing.T) {
	_, err := FindPass(sineSamples(0, 10, 1))
	if !errors.Is(err, ErrInsufficientSamples) {
		t.Errorf("err = %v, want ErrInsufficientSamples", err)
	}
}

func TestInterpolateCrossing(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := AltitudeSample{Time: t0, AltDeg: -10}
	b := AltitudeSample{Time: t0.Add(time.Hour), AltDeg: 30}
	if got := interpolateCrossing(a, b, 0); !got.Equal(t0.Add(15 * time.Minute)) {
		t.Errorf("crossing = %v, want +15m", got)
	}
	flat := AltitudeSample{Time: t0.Add(time.Hour), AltDeg: -10}
	if got := interpolateCrossing(a, flat, 0); !got.Equal(t0) {
		t.Errorf("flat crossing = %v, want start", got)
	}
}

func TestGetElevationTier(t *testing.T) {
	tests := []struct {
		alt  float64
		want ElevationTier
	}{
		{-5, ElevationNone},
		{0, ElevationNone},
		{0.001, ElevationLow},
		{14.9, ElevationLow},
		{15, ElevationMedium},
		{44.9, ElevationMedium},
		{45, ElevationHigh},
		{90, ElevationHigh},
	}
	for _, tt := range tests {
		if got := GetElevationTier(tt.alt); got != tt.want {
			t.Errorf("GetElevationTier(%v) = %v, want %v", tt.alt, got, tt.want)
		}
	}
}
