package ephem

import (
	"errors"
	"fmt"
	"time"
)

// Sentinels matched by the typed errors below via errors.Is.
var (
	ErrUnknownBody     = errors.New("unknown body")
	ErrBodyUnavailable = errors.New("body not yet supported")
	ErrOutOfRange      = errors.New("time outside ephemeris range")
	ErrNoData          = errors.New("body not in ephemeris")
)

// UnknownBodyError reports a name that is not in the registry.
type UnknownBodyError struct {
	Name string
}

func (e *UnknownBodyError) Error() string {
	return fmt.Sprintf("unknown body %q", e.Name)
}

// Is reports whether target is ErrUnknownBody.
func (e *UnknownBodyError) Is(target error) bool { return target == ErrUnknownBody }

// BodyUnavailableError reports a reserved name (Sun, Moon) that the
// resolver does not serve yet.
type BodyUnavailableError struct {
	Name string
}

func (e *BodyUnavailableError) Error() string {
	return fmt.Sprintf("body %q is not supported yet", e.Name)
}

// Is reports whether target is ErrBodyUnavailable.
func (e *BodyUnavailableError) Is(target error) bool { return target == ErrBodyUnavailable }

// RangeError reports a query the ephemeris cannot answer: either the time
// is outside its span, or the lookup inside the span failed and Err holds
// the cause.
type RangeError struct {
	Key    string
	Source string
	TDB    float64   // offending ephemeris time
	UTC    time.Time // the same instant on the civil scale
	Span   Span
	Err    error // underlying cause from the data source, may be nil
}

func (e *RangeError) Error() string {
	if e.Err != nil && e.Span.Contains(e.TDB) {
		return fmt.Sprintf("%s: lookup of %s at %s (TDB JD %.5f) failed: %v",
			e.Source, e.Key, e.UTC.Format(time.RFC3339), e.TDB, e.Err)
	}
	return fmt.Sprintf("%s: %s at %s (TDB JD %.5f) is outside %s",
		e.Source, e.Key, e.UTC.Format(time.RFC3339), e.TDB, e.Span)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

func (e *RangeError) Unwrap() error { return e.Err }
