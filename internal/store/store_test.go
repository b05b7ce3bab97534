package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/timescale"
)

var colombo = astro.Observer{LatDeg: 6.9271, LonDeg: 79.8612, Name: "Colombo"}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "skymap.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(t *testing.T, body string, when timescale.Instant) Record {
	t.Helper()
	pos := engine.ApparentPosition{
		BodyName:            body,
		AzimuthDeg:          294.1,
		AltitudeDeg:         31.2,
		RightAscensionHours: 8.0869,
		DeclinationDeg:      24.72,
		DistanceAU:          0.6466,
	}
	rec, err := NewRecord(pos, colombo, when)
	if err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestNewRecord(t *testing.T) {
	when := timescale.Instant{Year: 2025, Month: 1, Day: 1, Hour: 6, Minute: 30, Second: 45}
	rec := record(t, "Mars", when)
	if rec.Planet != "Mars" || rec.Date != "2025-01-01 06:30" || rec.DistanceAU != 0.6466 {
		t.Errorf("record = %+v", rec)
	}
	if rec.RightAscension == "" || rec.Declination == "" {
		t.Errorf("empty sexagesimal fields: %+v", rec)
	}

	var p payload
	if err := json.Unmarshal(rec.Payload, &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.Position.AzimuthDeg != 294.1 || p.Observer.Name != "Colombo" || !p.Time.Equal(when.Time()) {
		t.Errorf("payload = %+v", p)
	}
}

func TestStore_SaveDedup(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	when := timescale.Instant{Year: 2025, Month: 1, Day: 1}

	saved, err := s.Save(ctx, record(t, "Mars", when))
	if err != nil || !saved {
		t.Fatalf("first Save = %v, %v", saved, err)
	}
	// same minute, different seconds: same date key
	again := timescale.Instant{Year: 2025, Month: 1, Day: 1, Second: 30}
	saved, err = s.Save(ctx, record(t, "Mars", again))
	if err != nil || saved {
		t.Fatalf("duplicate Save = %v, %v", saved, err)
	}
	saved, err = s.Save(ctx, record(t, "Venus", when))
	if err != nil || !saved {
		t.Fatalf("other planet Save = %v, %v", saved, err)
	}

	all, err := s.History(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("History = %d records, want 2", len(all))
	}
}

func TestStore_ConcurrentSaveDedup(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	rec := record(t, "Jupiter", timescale.Instant{Year: 2025, Month: 3, Day: 1})

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			saved, err := s.Save(ctx, rec)
			if err != nil {
				t.Error(err)
				return
			}
			if saved {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Errorf("%d writers saved the same record", wins)
	}
}

func TestStore_History(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for day := 1; day <= 3; day++ {
		when := timescale.Instant{Year: 2025, Month: 1, Day: day}
		for _, body := range []string{"Mars", "Saturn"} {
			if _, err := s.Save(ctx, record(t, body, when)); err != nil {
				t.Fatal(err)
			}
		}
	}

	mars, err := s.History(ctx, "Mars", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(mars) != 3 {
		t.Fatalf("Mars history = %d records", len(mars))
	}
	if mars[0].Date != "2025-01-03 00:00" || mars[2].Date != "2025-01-01 00:00" {
		t.Errorf("order = %s .. %s", mars[0].Date, mars[2].Date)
	}

	latest, err := s.History(ctx, "", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(latest) != 2 || latest[0].Planet != "Mars" || latest[1].Planet != "Saturn" {
		t.Errorf("latest = %+v", latest)
	}

	none, err := s.History(ctx, "Pluto", 0)
	if err != nil || len(none) != 0 {
		t.Errorf("Pluto history = %v, %v", none, err)
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skymap.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(context.Background(), record(t, "Uranus", timescale.Instant{Year: 2025, Month: 5, Day: 5})); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.History(context.Background(), "Uranus", 0)
	if err != nil || len(got) != 1 {
		t.Errorf("after reopen: %v, %v", got, err)
	}
}
