// Package engine computes observer-relative positions of solar-system
// bodies: it sequences time conversion, body lookup, frame construction and
// resolution, and classifies batches by the horizon.
package engine

import (
	"time"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// Recorder receives one observation per BodyPosition call.
type Recorder interface {
	ObserveQuery(body string, kind Kind, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveQuery(string, Kind, time.Duration) {}

// Engine answers position queries against one ephemeris service. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	svc      ephem.Service
	log      *logging.Logger
	recorder Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger; the default discards output.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.log = l.With("engine") }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// New creates an engine over svc.
func New(svc ephem.Service, opts ...Option) *Engine {
	e := &Engine{svc: svc, log: logging.Discard(), recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Source returns the ephemeris name.
func (e *Engine) Source() string { return e.svc.Name() }

// Service returns the underlying ephemeris service.
func (e *Engine) Service() ephem.Service { return e.svc }

// ListSupportedBodies returns the resolvable body names in registry order.
func (e *Engine) ListSupportedBodies() []string {
	return ephem.ListSupported()
}

// BodyPosition resolves one body for an observer at a UTC instant. Errors
// are one of *timescale.InvalidTimeError, *ephem.UnknownBodyError,
// *ephem.BodyUnavailableError, *InvalidLocationError or *ephem.RangeError,
// returned unchanged.
func (e *Engine) BodyPosition(name string, loc astro.Observer, when timescale.Instant) (pos ApparentPosition, err error) {
	start := time.Now()
	defer func() {
		kind := KindOf(err)
		e.recorder.ObserveQuery(metricLabel(name), kind, time.Since(start))
		if err != nil {
			e.log.Debug("%s at %s from (%.4f, %.4f): %s: %v", name, when, loc.LatDeg, loc.LonDeg, kind, err)
		}
	}()

	t, err := timescale.ToInternal(when)
	if err != nil {
		return ApparentPosition{}, err
	}
	body, err := ephem.Resolve(name)
	if err != nil {
		return ApparentPosition{}, err
	}
	frame, err := BuildFrame(e.svc, loc, t)
	if err != nil {
		return ApparentPosition{}, err
	}
	pos, err = Resolve(e.svc, body, frame, t)
	if err != nil {
		return ApparentPosition{}, err
	}
	e.log.Debug("%s at %s: az %.4f alt %.4f", name, when, pos.AzimuthDeg, pos.AltitudeDeg)
	return pos, nil
}

// metricLabel keeps label cardinality bounded by folding unknown names.
func metricLabel(name string) string {
	if _, ok := ephem.BodiesByName[name]; ok || ephem.IsReserved(name) {
		return name
	}
	return "other"
}
