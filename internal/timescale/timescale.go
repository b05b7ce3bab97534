// Package timescale converts civil UTC instants into the Julian dates the
// ephemeris and rotation models are evaluated on.
package timescale

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// J2000 is the Julian date of the J2000.0 epoch.
const J2000 = 2451545.0

// ttMinusTAI is the fixed offset between TT and TAI in seconds.
const ttMinusTAI = 32.184

const secondsPerDay = 86400.0

// Instant is a civil UTC date and time with whole-second resolution.
type Instant struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// FromTime converts any time.Time to a UTC Instant, dropping sub-second parts.
func FromTime(t time.Time) Instant {
	t = t.UTC()
	return Instant{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Time returns the instant as a time.Time in UTC. Out-of-range fields are
// normalised the way time.Date does; call Validate first when that matters.
func (in Instant) Time() time.Time {
	return time.Date(in.Year, time.Month(in.Month), in.Day, in.Hour, in.Minute, in.Second, 0, time.UTC)
}

func (in Instant) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ", in.Year, in.Month, in.Day, in.Hour, in.Minute, in.Second)
}

// Date returns the calendar date part as YYYY-MM-DD.
func (in Instant) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", in.Year, in.Month, in.Day)
}

// ErrInvalidTime matches every *InvalidTimeError via errors.Is.
var ErrInvalidTime = errors.New("invalid time")

// InvalidTimeError reports a calendar field that does not form a valid UTC instant.
type InvalidTimeError struct {
	Field string // "month", "day", "hour", "minute", "second" or "format"
	Value string
	Msg   string
}

func (e *InvalidTimeError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("invalid time: %s %s out of range", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid time: %s %s: %s", e.Field, e.Value, e.Msg)
}

// Is reports whether target is ErrInvalidTime.
func (e *InvalidTimeError) Is(target error) bool {
	return target == ErrInvalidTime
}

// Validate checks every calendar field.
func (in Instant) Validate() error {
	field := func(name string, v, lo, hi int) error {
		if v < lo || v > hi {
			return &InvalidTimeError{Field: name, Value: fmt.Sprint(v),
				Msg: fmt.Sprintf("must be in [%d, %d]", lo, hi)}
		}
		return nil
	}
	if err := field("month", in.Month, 1, 12); err != nil {
		return err
	}
	if err := field("day", in.Day, 1, daysIn(in.Year, in.Month)); err != nil {
		return err
	}
	if err := field("hour", in.Hour, 0, 23); err != nil {
		return err
	}
	if err := field("minute", in.Minute, 0, 59); err != nil {
		return err
	}
	return field("second", in.Second, 0, 59)
}

func daysIn(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// inputLayouts are the accepted textual forms, tried in order.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse reads an instant in one of the accepted layouts. Inputs without a
// zone are taken as UTC; inputs with one are converted to UTC.
func Parse(s string) (Instant, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return FromTime(t), nil
		}
		var pe *time.ParseError
		if errors.As(err, &pe) && strings.Contains(pe.Message, "out of range") {
			return Instant{}, &InvalidTimeError{Field: "format", Value: fmt.Sprintf("%q", s), Msg: strings.TrimPrefix(pe.Message, ": ")}
		}
	}
	return Instant{}, &InvalidTimeError{Field: "format", Value: fmt.Sprintf("%q", s),
		Msg: "want YYYY-MM-DD HH:MM[:SS] or RFC 3339"}
}

// Time is one instant expressed as Julian dates on the scales the models use.
type Time struct {
	UTC float64 // civil time
	UT1 float64 // Earth rotation angle; taken equal to UTC
	TT  float64 // terrestrial time
	TDB float64 // barycentric dynamical time, the ephemeris argument
}

// ToInternal validates the instant and converts it to the internal scales.
// Equal inputs give bit-identical results.
func ToInternal(in Instant) (Time, error) {
	if err := in.Validate(); err != nil {
		return Time{}, err
	}
	dayFrac := (float64(in.Hour)*3600 + float64(in.Minute)*60 + float64(in.Second)) / secondsPerDay
	utc := julian.CalendarGregorianToJD(in.Year, in.Month, float64(in.Day)+dayFrac)
	return fromUTC(utc), nil
}

// FromJD builds a Time from a UTC Julian date.
func FromJD(utc float64) Time {
	return fromUTC(utc)
}

func fromUTC(utc float64) Time {
	tt := utc + (LeapSeconds(utc)+ttMinusTAI)/secondsPerDay
	return Time{
		UTC: utc,
		UT1: utc,
		TT:  tt,
		TDB: tt + tdbMinusTT(tt)/secondsPerDay,
	}
}

// AddDays shifts every scale by the same number of days.
func (t Time) AddDays(d float64) Time {
	return Time{UTC: t.UTC + d, UT1: t.UT1 + d, TT: t.TT + d, TDB: t.TDB + d}
}

// CenturiesTT returns Julian centuries of TT since J2000.0.
func (t Time) CenturiesTT() float64 {
	return (t.TT - J2000) / 36525
}

// DeltaT returns TT − UT1 in seconds.
func (t Time) DeltaT() float64 {
	return (t.TT - t.UT1) * secondsPerDay
}

// UTCTime returns the civil instant as a time.Time, rounded to the millisecond.
func (t Time) UTCTime() time.Time {
	return julian.JDToTime(t.UTC).Round(time.Millisecond)
}

// tdbMinusTT is the periodic TDB − TT term in seconds (USNO Circular 179).
func tdbMinusTT(tt float64) float64 {
	g := (357.53 + 0.98560028*(tt-J2000)) * math.Pi / 180
	return 0.001657*math.Sin(g) + 0.000014*math.Sin(2*g)
}

type leapStep struct {
	jd     float64 // UTC Julian date from which the offset applies
	offset float64 // TAI − UTC in seconds
}

// leapTable is the IERS Bulletin C history of TAI − UTC.
var leapTable = []leapStep{
	{2441317.5, 10}, // 1972-01-01
	{2441499.5, 11}, // 1972-07-01
	{2441683.5, 12}, // 1973-01-01
	{2442048.5, 13}, // 1974-01-01
	{2442413.5, 14}, // 1975-01-01
	{2442778.5, 15}, // 1976-01-01
	{2443144.5, 16}, // 1977-01-01
	{2443509.5, 17}, // 1978-01-01
	{2443874.5, 18}, // 1979-01-01
	{2444239.5, 19}, // 1980-01-01
	{2444786.5, 20}, // 1981-07-01
	{2445151.5, 21}, // 1982-07-01
	{2445516.5, 22}, // 1983-07-01
	{2446247.5, 23}, // 1985-07-01
	{2447161.5, 24}, // 1988-01-01
	{2447892.5, 25}, // 1990-01-01
	{2448257.5, 26}, // 1991-01-01
	{2448804.5, 27}, // 1992-07-01
	{2449169.5, 28}, // 1993-07-01
	{2449534.5, 29}, // 1994-07-01
	{2450083.5, 30}, // 1996-01-01
	{2450630.5, 31}, // 1997-07-01
	{2451179.5, 32}, // 1999-01-01
	{2453736.5, 33}, // 2006-01-01
	{2454832.5, 34}, // 2009-01-01
	{2456109.5, 35}, // 2012-07-01
	{2457204.5, 36}, // 2015-07-01
	{2457754.5, 37}, // 2017-01-01
}

// LeapSeconds returns TAI − UTC in seconds at a UTC Julian date. Dates
// before 1972 use the initial 10 s offset.
func LeapSeconds(utc float64) float64 {
	i := sort.Search(len(leapTable), func(i int) bool { return leapTable[i].jd > utc })
	if i == 0 {
		return leapTable[0].offset
	}
	return leapTable[i-1].offset
}
