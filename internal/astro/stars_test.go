package astro

import "testing"

func TestBrightStars_Filter(t *testing.T) {
	all := BrightStars(99)
	if len(all) < 50 {
		t.Fatalf("catalog has %d stars, want at least 50", len(all))
	}
	first := BrightStars(1.0)
	if len(first) == 0 || first[0].Name != "Sirius" {
		t.Fatalf("brightest star = %+v, want Sirius", first)
	}
	for _, s := range first {
		if s.Mag > 1.0 {
			t.Errorf("%s mag %v exceeds limit", s.Name, s.Mag)
		}
	}
	if len(BrightStars(-5)) != 0 {
		t.Error("limit brighter than any star should return none")
	}
}

func TestBrightStars_SortedAndValid(t *testing.T) {
	stars := BrightStars(99)
	seen := make(map[string]bool)
	for i, s := range stars {
		if i > 0 && s.Mag < stars[i-1].Mag {
			t.Errorf("%s (%v) after %s (%v): not sorted", s.Name, s.Mag, stars[i-1].Name, stars[i-1].Mag)
		}
		if s.RAHours < 0 || s.RAHours >= 24 {
			t.Errorf("%s RA out of range: %v", s.Name, s.RAHours)
		}
		if s.DecDeg < -90 || s.DecDeg > 90 {
			t.Errorf("%s Dec out of range: %v", s.Name, s.DecDeg)
		}
		if seen[s.Name] {
			t.Errorf("duplicate star %s", s.Name)
		}
		seen[s.Name] = true
	}
}

func TestBrightStars_ReturnsCopy(t *testing.T) {
	a := BrightStars(2)
	a[0].Name = "changed"
	if b := BrightStars(2); b[0].Name == "changed" {
		t.Error("BrightStars exposes internal storage")
	}
}
