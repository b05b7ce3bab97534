// Package ephem supplies barycentric state vectors for solar-system bodies,
// the body registry, and the light-time and aberration corrections applied
// when a body is observed.
package ephem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// StateVector is a position (AU) and velocity (AU/day) on ICRF-aligned
// equatorial axes.
type StateVector struct {
	Position astro.Vec3
	Velocity astro.Vec3
}

// Span is the interval of TDB Julian dates a service covers.
type Span struct {
	StartJD float64
	EndJD   float64
}

// Contains reports whether jd falls inside the span.
func (s Span) Contains(jd float64) bool {
	return jd >= s.StartJD && jd <= s.EndJD
}

func (s Span) String() string {
	return fmt.Sprintf("JD %.1f–%.1f", s.StartJD, s.EndJD)
}

// Service defines the interface for ephemeris data sources.
// Implementations are safe for concurrent use.
type Service interface {
	// Name returns the source name for display/logging.
	Name() string

	// Span returns the covered time interval.
	Span() Span

	// StateAt returns the state of the body registered under key at time t.
	// Every body of one service shares the same origin (barycentre or Sun),
	// so differences between two states are origin independent.
	StateAt(key string, t timescale.Time) (StateVector, error)
}

// Mode represents which ephemeris source to use.
type Mode int

const (
	ModeAuto   Mode = iota // DE file when present, VSOP87 otherwise
	ModeDE                 // JPL binary DE file only
	ModeVSOP87             // VSOP87 series only
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDE:
		return "de"
	case ModeVSOP87:
		return "vsop87"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "de":
		return ModeDE
	case "vsop87":
		return ModeVSOP87
	default:
		return ModeAuto
	}
}

// Options selects and locates an ephemeris source.
type Options struct {
	Mode      Mode
	DEFile    string // path to a JPL binary ephemeris (de421.bin, de440.bin, ...)
	VSOP87Dir string // directory holding VSOP87B.* files; empty uses $VSOP87
}

// ErrNoSource is returned by Open when no configured source could be loaded.
var ErrNoSource = errors.New("no ephemeris source available")

// Open loads the ephemeris source selected by opts. The returned service
// should be released with Close.
func Open(opts Options) (Service, error) {
	switch opts.Mode {
	case ModeDE:
		return OpenDE(opts.DEFile)
	case ModeVSOP87:
		return LoadVSOP87(opts.VSOP87Dir)
	}

	var errs []error
	if opts.DEFile != "" {
		if _, err := os.Stat(opts.DEFile); err == nil {
			de, err := OpenDE(opts.DEFile)
			if err == nil {
				return de, nil
			}
			errs = append(errs, err)
		} else {
			errs = append(errs, fmt.Errorf("DE file: %w", err))
		}
	}
	v, err := LoadVSOP87(opts.VSOP87Dir)
	if err == nil {
		return v, nil
	}
	errs = append(errs, err)
	return nil, fmt.Errorf("%w: %w", ErrNoSource, errors.Join(errs...))
}

// Close releases svc if it holds resources.
func Close(svc Service) error {
	if c, ok := svc.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
