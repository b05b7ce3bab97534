// Package server exposes the position engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/metrics"
	"github.com/litescript/ls-skymap/internal/report"
	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// Server serves the JSON API and /metrics.
type Server struct {
	engine   *engine.Engine
	observer *sky.Observer
	metrics  *metrics.Collector
	limiter  *IPRateLimiter
	log      *logging.Logger
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records HTTP and query metrics and serves /metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) { s.metrics = c }
}

// WithRateLimit limits each client to perMinute requests.
func WithRateLimit(perMinute, burst int) Option {
	return func(s *Server) {
		if perMinute > 0 {
			s.limiter = NewIPRateLimiter(rate.Limit(float64(perMinute)/60), burst)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) { s.log = l.With("server") }
}

// WithClock replaces the source of the default query time.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server over obs.
func New(obs *sky.Observer, opts ...Option) *Server {
	s := &Server{
		engine:   obs.Engine(),
		observer: obs,
		log:      logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /api/bodies", s.metrics.Instrument("/api/bodies", http.HandlerFunc(s.handleBodies)))
	mux.Handle("GET /api/positions", s.metrics.Instrument("/api/positions", http.HandlerFunc(s.handlePositions)))
	mux.Handle("GET /api/positions/{body}", s.metrics.Instrument("/api/positions/{body}", http.HandlerFunc(s.handlePosition)))
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	var h http.Handler = mux
	if s.limiter != nil {
		h = s.limiter.Middleware(h)
	}
	return h
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("shut down")
	return nil
}

type bodiesResponse struct {
	Bodies []string `json:"bodies"`
	Source string   `json:"source"`
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleBodies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bodiesResponse{Bodies: s.engine.ListSupportedBodies(), Source: s.engine.Source()})
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	loc, when, err := s.parseQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.observer.Observe(r.Context(), loc, when)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.SetVisible(len(snap.Batch.Visible))
	writeJSON(w, http.StatusOK, report.ExportSnapshot(&snap))
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	loc, when, err := s.parseQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	name := r.PathValue("body")
	if detail, _ := strconv.ParseBool(r.URL.Query().Get("detail")); detail {
		d, err := s.engine.Describe(name, loc, when)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
		return
	}
	pos, err := s.engine.BodyPosition(name, loc, when)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pos)
}

// parseQuery reads lat, lon and time. Missing coordinates default to 0 and
// a missing time to now.
func (s *Server) parseQuery(r *http.Request) (astro.Observer, timescale.Instant, error) {
	q := r.URL.Query()
	var loc astro.Observer
	for _, f := range []struct {
		key   string
		field string
		dst   *float64
	}{
		{"lat", "latitude", &loc.LatDeg},
		{"lon", "longitude", &loc.LonDeg},
	} {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return loc, timescale.Instant{}, &badQueryError{engine.KindInvalidLocation, f.field + " " + strconv.Quote(raw) + " is not a number"}
		}
		*f.dst = v
	}

	when := timescale.FromTime(s.now())
	if raw := q.Get("time"); raw != "" {
		t, err := timescale.Parse(raw)
		if err != nil {
			return loc, timescale.Instant{}, err
		}
		when = t
	}
	return loc, when, nil
}

type badQueryError struct {
	kind engine.Kind
	msg  string
}

func (e *badQueryError) Error() string { return e.msg }

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := engine.KindOf(err)
	var bq *badQueryError
	if errors.As(err, &bq) {
		kind = bq.kind
	}
	status := statusFor(kind)
	if status >= 500 {
		s.log.Error("%v", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Kind: string(kind)})
}

func statusFor(kind engine.Kind) int {
	switch kind {
	case engine.KindUnknownBody, engine.KindBodyUnavailable, engine.KindInvalidLocation, engine.KindInvalidTime:
		return http.StatusBadRequest
	case engine.KindOutOfRange:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
