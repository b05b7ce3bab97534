// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/sky"
)

// EventType represents the type of sky change event.
type EventType string

const (
	EventRise      EventType = "RISE"
	EventSet       EventType = "SET"
	EventFailed    EventType = "FAILED"
	EventRecovered EventType = "RECOVERED"
)

// Event is a change between two consecutive snapshots for the same observer.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"` // sky time of the snapshot that showed the change
	Body      string    `json:"body"`
	AltDeg    float64   `json:"altitude_deg,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current    *sky.Snapshot
	lastUpdate time.Time
	lastError  error

	// Previous snapshot facts for event detection
	prevObserver astro.Observer
	prevVisible  map[string]bool
	prevFailed   map[string]bool

	// Per-body altitude history
	altHistory map[string][]TimeSeries
	maxHistory int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistory      int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory:      120,
		MaxEvents:       50,
		RefreshInterval: 10 * time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxHistory:      cfg.MaxHistory,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		altHistory:      make(map[string][]TimeSeries),
	}
}

// Update records a new sky snapshot, or the error that prevented one.
func (m *Manager) Update(snap *sky.Snapshot, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = err
	if snap == nil {
		return
	}

	if m.current != nil && sameObserver(m.prevObserver, snap.Observer) {
		m.detectEvents(snap)
	} else {
		m.altHistory = make(map[string][]TimeSeries)
	}
	m.current = snap
	m.updateHistory(snap)

	m.prevObserver = snap.Observer
	m.prevVisible = make(map[string]bool, len(snap.Positions))
	for _, p := range snap.Positions {
		m.prevVisible[p.BodyName] = p.Visible()
	}
	m.prevFailed = make(map[string]bool, len(snap.Failures))
	for _, f := range snap.Failures {
		m.prevFailed[f.Body] = true
	}
}

func sameObserver(a, b astro.Observer) bool {
	return a.LatDeg == b.LatDeg && a.LonDeg == b.LonDeg
}

// detectEvents compares snap with the previous snapshot.
func (m *Manager) detectEvents(snap *sky.Snapshot) {
	for _, p := range snap.Positions {
		was, seen := m.prevVisible[p.BodyName]
		switch {
		case m.prevFailed[p.BodyName]:
			m.addEvent(Event{Type: EventRecovered, Timestamp: snap.Time, Body: p.BodyName, AltDeg: p.AltitudeDeg})
		case seen && !was && p.Visible():
			m.addEvent(Event{Type: EventRise, Timestamp: snap.Time, Body: p.BodyName, AltDeg: p.AltitudeDeg})
		case seen && was && !p.Visible():
			m.addEvent(Event{Type: EventSet, Timestamp: snap.Time, Body: p.BodyName, AltDeg: p.AltitudeDeg})
		}
	}
	for _, f := range snap.Failures {
		if !m.prevFailed[f.Body] {
			m.addEvent(Event{Type: EventFailed, Timestamp: snap.Time, Body: f.Body, Detail: f.Message})
		}
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) updateHistory(snap *sky.Snapshot) {
	if m.maxHistory <= 0 {
		return
	}
	for _, p := range snap.Positions {
		h := append(m.altHistory[p.BodyName], TimeSeries{Timestamp: snap.Time, Value: p.AltitudeDeg})
		if len(h) > m.maxHistory {
			h = h[1:]
		}
		m.altHistory[p.BodyName] = h
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Sky        *sky.Snapshot
	LastUpdate time.Time
	LastError  error
	Events     []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Sky:        m.current,
		LastUpdate: m.lastUpdate,
		LastError:  m.lastError,
		Events:     m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// AltitudeHistory returns a copy of the recorded altitudes for body.
func (m *Manager) AltitudeHistory(body string) []TimeSeries {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.altHistory[body]
	out := make([]TimeSeries, len(h))
	copy(out, h)
	return out
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true if at least one snapshot has been recorded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
