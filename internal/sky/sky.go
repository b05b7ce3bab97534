// Package sky resolves every supported body for one observer and instant and
// classifies the results by the horizon.
package sky

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// Failure is a body that could not be resolved in a batch.
type Failure struct {
	Body    string      `json:"body"`
	Kind    engine.Kind `json:"kind"`
	Message string      `json:"error"`
	Err     error       `json:"-"`
}

// Snapshot is the resolved sky for one observer at one instant.
type Snapshot struct {
	Observer  astro.Observer            `json:"observer"`
	Time      time.Time                 `json:"time"`
	Source    string                    `json:"source"`
	Positions []engine.ApparentPosition `json:"positions"` // registry order
	Batch     engine.VisibilityBatch    `json:"batch"`
	Failures  []Failure                 `json:"failures,omitempty"`
	Elapsed   time.Duration             `json:"elapsed_ns"`
}

// Position returns the resolved position of name, if present.
func (s Snapshot) Position(name string) (engine.ApparentPosition, bool) {
	for _, p := range s.Positions {
		if p.BodyName == name {
			return p, true
		}
	}
	return engine.ApparentPosition{}, false
}

// Observer resolves batches with bounded parallelism.
type Observer struct {
	engine  *engine.Engine
	log     *logging.Logger
	workers int
}

// Option configures an Observer.
type Option func(*Observer)

// WithWorkers bounds the number of bodies resolved at once.
func WithWorkers(n int) Option {
	return func(o *Observer) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Observer) { o.log = l.With("sky") }
}

// NewObserver creates a batch observer over e.
func NewObserver(e *engine.Engine, opts ...Option) *Observer {
	o := &Observer{engine: e, log: logging.Discard(), workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Engine returns the underlying engine.
func (o *Observer) Engine() *engine.Engine { return o.engine }

// Observe resolves every supported body. Invalid time or location fail the
// whole batch; any other per-body error is recorded as a Failure and the
// remaining bodies are still resolved.
func (o *Observer) Observe(ctx context.Context, loc astro.Observer, when timescale.Instant) (Snapshot, error) {
	if err := when.Validate(); err != nil {
		return Snapshot{}, err
	}
	if err := engine.ValidateLocation(loc); err != nil {
		return Snapshot{}, err
	}

	start := time.Now()
	names := o.engine.ListSupportedBodies()
	positions := make([]engine.ApparentPosition, len(names))
	errs := make([]error, len(names))

	sem := make(chan struct{}, o.workers)
	var wg sync.WaitGroup
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return Snapshot{}, err
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return Snapshot{}, ctx.Err()
		}
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()
			positions[i], errs[i] = o.engine.BodyPosition(name, loc, when)
		}(i, name)
	}
	wg.Wait()

	snap := Snapshot{
		Observer: loc,
		Time:     when.Time(),
		Source:   o.engine.Source(),
	}
	for i, name := range names {
		if err := errs[i]; err != nil {
			o.log.Warn("%s: %v", name, err)
			snap.Failures = append(snap.Failures, Failure{
				Body:    name,
				Kind:    engine.KindOf(err),
				Message: err.Error(),
				Err:     err,
			})
			continue
		}
		snap.Positions = append(snap.Positions, positions[i])
	}
	snap.Batch = engine.Classify(snap.Positions)
	snap.Elapsed = time.Since(start)
	return snap, nil
}
