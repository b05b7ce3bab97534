package ephem

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mshafiee/jpleph"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// dePlanets maps ephemeris keys to DE body indices. The DE planet series
// for Mercury through Neptune are system barycentres.
var dePlanets = map[string]jpleph.Planet{
	KeyMercury: jpleph.Mercury,
	KeyVenus:   jpleph.Venus,
	KeyEarth:   jpleph.Earth,
	KeyMars:    jpleph.Mars,
	KeyJupiter: jpleph.Jupiter,
	KeySaturn:  jpleph.Saturn,
	KeyUranus:  jpleph.Uranus,
	KeyNeptune: jpleph.Neptune,
	KeyMoon:    jpleph.Moon,
	KeySun:     jpleph.Sun,
}

// DEFile serves barycentric states from a JPL binary ephemeris file.
type DEFile struct {
	mu   sync.Mutex // the reader keeps a shared record buffer
	eph  *jpleph.Ephemeris
	name string
	span Span
}

// OpenDE opens a JPL binary ephemeris such as de421.bin.
func OpenDE(path string) (*DEFile, error) {
	if path == "" {
		return nil, errors.New("DE file path is empty")
	}
	eph, err := jpleph.NewEphemeris(path, false)
	if err != nil {
		return nil, fmt.Errorf("open DE file %s: %w", path, err)
	}
	name := "DE"
	if v := eph.GetEphemerisLong(jpleph.EphemerisVersion); v > 0 {
		name = fmt.Sprintf("DE%d", v)
	}
	return &DEFile{
		eph:  eph,
		name: name,
		span: Span{
			StartJD: eph.GetEphemerisDouble(jpleph.EphemerisStartJD),
			EndJD:   eph.GetEphemerisDouble(jpleph.EphemerisEndJD),
		},
	}, nil
}

// Name returns the ephemeris series, e.g. "DE421".
func (d *DEFile) Name() string { return d.name }

// Span returns the covered TDB interval.
func (d *DEFile) Span() Span { return d.span }

// StateAt returns the barycentric state of key at t.TDB.
func (d *DEFile) StateAt(key string, t timescale.Time) (StateVector, error) {
	body, ok := dePlanets[key]
	if !ok {
		return StateVector{}, d.rangeError(key, t, ErrNoData)
	}
	if !d.span.Contains(t.TDB) {
		return StateVector{}, d.rangeError(key, t, nil)
	}

	d.mu.Lock()
	pos, vel, err := d.eph.CalculatePV(t.TDB, body, jpleph.CenterSolarSystemBarycenter, true)
	d.mu.Unlock()
	if err != nil {
		return StateVector{}, d.rangeError(key, t, err)
	}

	return StateVector{
		Position: astro.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z},
		Velocity: astro.Vec3{X: vel.DX, Y: vel.DY, Z: vel.DZ},
	}, nil
}

func (d *DEFile) rangeError(key string, t timescale.Time, cause error) *RangeError {
	return &RangeError{Key: key, Source: d.name, TDB: t.TDB, UTC: t.UTCTime(), Span: d.span, Err: cause}
}

// Close releases the underlying file.
func (d *DEFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eph.Close()
}
