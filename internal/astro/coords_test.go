package astro

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"2025-01-01 00:00 UTC", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 2460676.5},
		{"non-UTC zone", time.Date(2025, 1, 1, 5, 30, 0, 0, time.FixedZone("IST", 5*3600+1800)), 2460676.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JulianDate(tt.time); math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("JulianDate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLocalSiderealTime(t *testing.T) {
	jd := 2451545.0
	g := localSiderealTime(jd, 0)
	// GAST at J2000.0 is ~280.46°
	if math.Abs(g-280.46) > 0.02 {
		t.Errorf("GAST at J2000 = %v, want ~280.46", g)
	}
	east := localSiderealTime(jd, 90)
	if math.Abs(NormalizeDeg360(east-g)-90) > 1e-9 {
		t.Errorf("LST at 90°E = %v, want GAST+90 (%v)", east, g+90)
	}
	west := localSiderealTime(jd, -100)
	if west < 0 || west >= 360 {
		t.Errorf("LST out of range: %v", west)
	}
}

func TestEquatorialToHorizontal_Polaris(t *testing.T) {
	polaris := SkyCoord{RAHours: 2.5303, DecDeg: 89.264}
	for _, lat := range []float64{10, 35, 51.5, 70} {
		obs := Observer{LatDeg: lat, LonDeg: -0.1278}
		for _, jd := range []float64{2460676.5, 2460676.75, 2460677.1} {
			h := EquatorialToHorizontal(polaris, obs, jd)
			if math.Abs(h.AltDeg-lat) > 0.8 {
				t.Errorf("lat %v: Polaris altitude = %v, want within 0.8° of latitude", lat, h.AltDeg)
			}
		}
	}
}

func TestEquatorialToHorizontal_CardinalPoints(t *testing.T) {
	obs := Observer{LatDeg: 40, LonDeg: 45}
	jd := 2460000.5
	lstHours := localSiderealTime(jd, obs.LonDeg) / 15

	tests := []struct {
		name   string
		coord  SkyCoord
		az     float64
		alt    float64
		skipAz bool
	}{
		{"zenith", SkyCoord{RAHours: lstHours, DecDeg: 40}, 0, 90, true},
		{"meridian south", SkyCoord{RAHours: lstHours, DecDeg: 0}, 180, 50, false},
		{"rising east", SkyCoord{RAHours: NormalizeHours(lstHours + 6), DecDeg: 0}, 90, 0, false},
		{"setting west", SkyCoord{RAHours: NormalizeHours(lstHours - 6), DecDeg: 0}, 270, 0, false},
		{"lower culmination", SkyCoord{RAHours: NormalizeHours(lstHours + 12), DecDeg: 60}, 0, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := EquatorialToHorizontal(tt.coord, obs, jd)
			if math.Abs(h.AltDeg-tt.alt) > 1e-6 {
				t.Errorf("alt = %v, want %v", h.AltDeg, tt.alt)
			}
			if !tt.skipAz {
				d := math.Abs(h.AzDeg - tt.az)
				if d > 180 {
					d = 360 - d
				}
				if d > 1e-6 {
					t.Errorf("az = %v, want %v", h.AzDeg, tt.az)
				}
			}
			if h.RAHours != tt.coord.RAHours || h.DecDeg != tt.coord.DecDeg {
				t.Error("equatorial fields not preserved")
			}
		})
	}
}

func TestEquatorialToHorizontal_Ranges(t *testing.T) {
	obs := Observer{LatDeg: -33.9, LonDeg: 18.4}
	for ra := 0.0; ra < 24; ra += 1.5 {
		for dec := -80.0; dec <= 80; dec += 20 {
			h := EquatorialToHorizontal(SkyCoord{RAHours: ra, DecDeg: dec}, obs, 2460500.25)
			if h.AzDeg < 0 || h.AzDeg >= 360 {
				t.Errorf("az out of range for ra=%v dec=%v: %v", ra, dec, h.AzDeg)
			}
			if h.AltDeg < -90 || h.AltDeg > 90 {
				t.Errorf("alt out of range for ra=%v dec=%v: %v", ra, dec, h.AltDeg)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, deg, hours float64
	}{
		{0, 0, 0},
		{-1, 359, 23},
		{360, 0, 0},
		{725, 5, 5},
		{-1e-17, 0, 0},
	}
	for _, tt := range tests {
		if got := NormalizeDeg360(tt.in); math.Abs(got-tt.deg) > 1e-9 {
			t.Errorf("NormalizeDeg360(%v) = %v, want %v", tt.in, got, tt.deg)
		}
		if got := NormalizeHours(tt.in); math.Abs(got-tt.hours) > 1e-9 {
			t.Errorf("NormalizeHours(%v) = %v, want %v", tt.in, got, tt.hours)
		}
	}
}

func TestFormatSexagesimal(t *testing.T) {
	if FormatRA(8.0869) == FormatRA(8.0870) {
		t.Error("FormatRA lost the tenth of a second")
	}
	if got := FormatDec(-12.5); !strings.HasPrefix(got, "-") {
		t.Errorf("FormatDec(-12.5) = %q, want a sign", got)
	}
	if got := FormatDec(12.5); strings.HasPrefix(got, "-") {
		t.Errorf("FormatDec(12.5) = %q", got)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		au   float64
		want string
	}{
		{0.001, "149598 km"},
		{0.6466, "0.6466 AU"},
		{30.07, "30.07 AU"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.au); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.au, got, tt.want)
		}
	}
}
