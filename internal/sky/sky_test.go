package sky

import (
	"context"
	"errors"
	"testing"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/ephem/ephemtest"
	"github.com/litescript/ls-skymap/internal/timescale"
)

var (
	colombo = astro.Observer{LatDeg: 6.9271, LonDeg: 79.8612, Name: "Colombo"}
	newYear = timescale.Instant{Year: 2025, Month: 1, Day: 1}
)

func TestObserve_AllBodies(t *testing.T) {
	o := NewObserver(engine.New(ephemtest.New()), WithWorkers(3))
	snap, err := o.Observe(context.Background(), colombo, newYear)
	if err != nil {
		t.Fatal(err)
	}
	names := ephem.ListSupported()
	if len(snap.Positions) != len(names) {
		t.Fatalf("got %d positions, want %d", len(snap.Positions), len(names))
	}
	for i, p := range snap.Positions {
		if p.BodyName != names[i] {
			t.Errorf("position %d is %s, want %s", i, p.BodyName, names[i])
		}
	}
	if len(snap.Failures) != 0 {
		t.Errorf("unexpected failures: %+v", snap.Failures)
	}
	if got := len(snap.Batch.Visible) + len(snap.Batch.Hidden); got != len(names) {
		t.Errorf("batch holds %d bodies", got)
	}
	if snap.Source != "orrery" || !snap.Time.Equal(newYear.Time()) {
		t.Errorf("snapshot header = %q %v", snap.Source, snap.Time)
	}
}

func TestObserve_IsolatesFailures(t *testing.T) {
	orr := ephemtest.New()
	boom := errors.New("corrupt record")
	orr.Fail(ephem.KeySaturn, boom)
	o := NewObserver(engine.New(orr))

	snap, err := o.Observe(context.Background(), colombo, newYear)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Positions) != 6 {
		t.Errorf("got %d positions, want 6", len(snap.Positions))
	}
	if _, ok := snap.Position("Saturn"); ok {
		t.Error("Saturn should be missing")
	}
	if _, ok := snap.Position("Uranus"); !ok {
		t.Error("Uranus should be present")
	}
	if len(snap.Failures) != 1 {
		t.Fatalf("failures = %+v", snap.Failures)
	}
	f := snap.Failures[0]
	if f.Body != "Saturn" || f.Kind != engine.KindInternal || !errors.Is(f.Err, boom) {
		t.Errorf("failure = %+v", f)
	}
}

func TestObserve_WholeBatchErrors(t *testing.T) {
	o := NewObserver(engine.New(ephemtest.New()))
	_, err := o.Observe(context.Background(), astro.Observer{LatDeg: 91}, newYear)
	if !errors.Is(err, engine.ErrInvalidLocation) {
		t.Errorf("latitude 91: err = %v", err)
	}
	_, err = o.Observe(context.Background(), colombo, timescale.Instant{Year: 2025, Month: 0, Day: 1})
	if !errors.Is(err, timescale.ErrInvalidTime) {
		t.Errorf("month 0: err = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewObserver(engine.New(ephemtest.New()), WithWorkers(1)).Observe(ctx, colombo, newYear); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: err = %v", err)
	}
}

func TestObserve_OutOfRangeIsPerBody(t *testing.T) {
	o := NewObserver(engine.New(ephemtest.New()))
	snap, err := o.Observe(context.Background(), colombo, timescale.Instant{Year: 2200, Month: 1, Day: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Positions) != 0 || len(snap.Failures) != 7 {
		t.Fatalf("positions %d failures %d", len(snap.Positions), len(snap.Failures))
	}
	for _, f := range snap.Failures {
		var re *ephem.RangeError
		if f.Kind != engine.KindOutOfRange || !errors.As(f.Err, &re) {
			t.Errorf("%s: %+v", f.Body, f)
		}
	}
}

func TestStars_AboveHorizon(t *testing.T) {
	stars := Stars(colombo, newYear, 2.0)
	if len(stars) == 0 {
		t.Fatal("no stars above the horizon")
	}
	for _, s := range stars {
		if s.AltDeg <= 0 || s.AzDeg < 0 || s.AzDeg >= 360 {
			t.Errorf("%s at az %v alt %v", s.Name, s.AzDeg, s.AltDeg)
		}
		if s.Mag > 2.0 {
			t.Errorf("%s magnitude %v above limit", s.Name, s.Mag)
		}
	}
}
