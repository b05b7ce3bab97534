package timescale

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestToInternal_KnownDates(t *testing.T) {
	tests := []struct {
		name   string
		in     Instant
		utc    float64
		deltaT float64 // TT − UTC in seconds
	}{
		{"J2000 noon", Instant{2000, 1, 1, 12, 0, 0}, 2451545.0, 64.184},
		{"Colombo query", Instant{2025, 1, 1, 0, 0, 0}, 2460676.5, 69.184},
		{"before leap 2017", Instant{2016, 12, 31, 23, 59, 59}, 2457754.5 - 1.0/86400, 68.184},
		{"pre-1972", Instant{1960, 6, 1, 0, 0, 0}, 2437086.5, 42.184},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToInternal(tt.in)
			if err != nil {
				t.Fatalf("ToInternal: %v", err)
			}
			if math.Abs(got.UTC-tt.utc) > 1e-8 {
				t.Errorf("UTC JD = %.8f, want %.8f", got.UTC, tt.utc)
			}
			if got.UT1 != got.UTC {
				t.Errorf("UT1 %v != UTC %v", got.UT1, got.UTC)
			}
			if math.Abs(got.DeltaT()-tt.deltaT) > 1e-4 {
				t.Errorf("TT-UTC = %v s, want %v s", got.DeltaT(), tt.deltaT)
			}
			if d := (got.TDB - got.TT) * 86400; math.Abs(d) > 0.0017 {
				t.Errorf("|TDB-TT| = %v s, exceeds 1.7 ms", d)
			}
		})
	}
}

func TestToInternal_Deterministic(t *testing.T) {
	in := Instant{2025, 1, 1, 0, 0, 0}
	a, err := ToInternal(in)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ToInternal(in)
	if a != b {
		t.Errorf("same instant gave %+v and %+v", a, b)
	}
}

func TestToInternal_Monotonic(t *testing.T) {
	prev := Time{}
	base := time.Date(2016, 12, 31, 23, 59, 0, 0, time.UTC)
	for i := 0; i < 180; i++ {
		got, err := ToInternal(FromTime(base.Add(time.Duration(i) * time.Second)))
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 && (got.UTC <= prev.UTC || got.TDB <= prev.TDB) {
			t.Fatalf("step %d not increasing: %+v after %+v", i, got, prev)
		}
		prev = got
	}
}

func TestToInternal_InvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		in    Instant
		field string
	}{
		{"month 13", Instant{2025, 13, 1, 0, 0, 0}, "month"},
		{"month 0", Instant{2025, 0, 1, 0, 0, 0}, "month"},
		{"Feb 30", Instant{2025, 2, 30, 0, 0, 0}, "day"},
		{"Feb 29 common year", Instant{2023, 2, 29, 0, 0, 0}, "day"},
		{"day 0", Instant{2025, 1, 0, 0, 0, 0}, "day"},
		{"hour 24", Instant{2025, 1, 1, 24, 0, 0}, "hour"},
		{"minute 60", Instant{2025, 1, 1, 0, 60, 0}, "minute"},
		{"second 60", Instant{2025, 1, 1, 0, 0, 60}, "second"},
		{"negative second", Instant{2025, 1, 1, 0, 0, -1}, "second"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToInternal(tt.in)
			var ite *InvalidTimeError
			if !errors.As(err, &ite) {
				t.Fatalf("err = %v, want *InvalidTimeError", err)
			}
			if ite.Field != tt.field {
				t.Errorf("Field = %q, want %q", ite.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidTime) {
				t.Error("errors.Is(err, ErrInvalidTime) = false")
			}
		})
	}
	if _, err := ToInternal(Instant{2024, 2, 29, 12, 0, 0}); err != nil {
		t.Errorf("leap day rejected: %v", err)
	}
}

func TestLeapSeconds(t *testing.T) {
	tests := []struct {
		jd   float64
		want float64
	}{
		{2400000.5, 10},
		{2441317.5, 10},
		{2441499.4, 10},
		{2441499.5, 11},
		{2451545.0, 32},
		{2457754.4999, 36},
		{2457754.5, 37},
		{2470000.5, 37},
	}
	for _, tt := range tests {
		if got := LeapSeconds(tt.jd); got != tt.want {
			t.Errorf("LeapSeconds(%v) = %v, want %v", tt.jd, got, tt.want)
		}
	}
}

func TestAddDays(t *testing.T) {
	a, _ := ToInternal(Instant{2025, 1, 1, 0, 0, 0})
	b := a.AddDays(-0.01)
	for _, d := range []float64{b.UTC - a.UTC, b.UT1 - a.UT1, b.TT - a.TT, b.TDB - a.TDB} {
		if math.Abs(d+0.01) > 1e-9 {
			t.Errorf("shift = %v, want -0.01", d)
		}
	}
}

func TestFromTime(t *testing.T) {
	loc := time.FixedZone("LKT", 5*3600+1800)
	got := FromTime(time.Date(2025, 1, 1, 5, 30, 0, 999999999, loc))
	want := Instant{2025, 1, 1, 0, 0, 0}
	if got != want {
		t.Errorf("FromTime = %v, want %v", got, want)
	}
	if got.String() != "2025-01-01T00:00:00Z" {
		t.Errorf("String = %q", got.String())
	}
	if got.Date() != "2025-01-01" {
		t.Errorf("Date = %q", got.Date())
	}
	if !got.Time().Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time = %v", got.Time())
	}
}

func TestUTCTime_RoundTrip(t *testing.T) {
	in := Instant{2025, 7, 14, 18, 45, 30}
	ts, _ := ToInternal(in)
	if got := FromTime(ts.UTCTime()); got != in {
		t.Errorf("UTCTime round trip = %v, want %v", got, in)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Instant
	}{
		{"2025-01-01 00:00", Instant{2025, 1, 1, 0, 0, 0}},
		{"2025-01-01T00:00:00Z", Instant{2025, 1, 1, 0, 0, 0}},
		{"2025-01-01T05:30:00+05:30", Instant{2025, 1, 1, 0, 0, 0}},
		{"  2024-02-29 23:59:59 ", Instant{2024, 2, 29, 23, 59, 59}},
		{"2025-03-04", Instant{2025, 3, 4, 0, 0, 0}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "tomorrow", "2025-02-30 10:00", "2025-01-01 25:00"} {
		_, err := Parse(bad)
		if !errors.Is(err, ErrInvalidTime) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidTime", bad, err)
		}
	}
}
