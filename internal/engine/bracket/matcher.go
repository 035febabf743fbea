package bracket

import (
	"sync"
	"time"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/sched"
)

// DefaultDelay is how long the matcher waits after the first cursor move
// before looking up the matching bracket.
const DefaultDelay = 10 * time.Millisecond

// MarkerKind is the decoration kind used for bracket highlights.
const MarkerKind = "bracket"

// State is the matcher's scheduling state.
type State uint8

const (
	// StateIdle means no lookup is scheduled.
	StateIdle State = iota
	// StatePending means a lookup is scheduled and further cursor moves
	// are coalesced into it.
	StatePending
)

// String returns the state name.
func (s State) String() string {
	if s == StatePending {
		return "pending"
	}
	return "idle"
}

// Markers adds and releases decorations. Handles are opaque.
type Markers interface {
	AddMarker(r buffer.Range, kind string) string
	RemoveMarker(id string)
}

// FindFunc returns the partner of the bracket before pos.
type FindFunc func(pos buffer.Position) (buffer.Position, bool)

// Matcher highlights the bracket matching the one before the cursor.
//
// Lookups are debounced: the first Notify while idle schedules one lookup
// and later Notify calls while it is pending do nothing. The lookup reads
// the cursor when it fires, so it always reflects the latest position.
type Matcher struct {
	mu      sync.Mutex
	state   State
	timer   sched.Timer
	handle  string
	lookups int

	delay     time.Duration
	scheduler sched.Scheduler
	cursor    func() buffer.Position
	find      FindFunc
	markers   Markers
	onLookup  func(pos buffer.Position, match buffer.Position, found bool)
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(m *Matcher) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// WithScheduler sets the scheduler that owns the debounce timer.
func WithScheduler(s sched.Scheduler) Option {
	return func(m *Matcher) {
		if s != nil {
			m.scheduler = s
		}
	}
}

// WithLookupHook registers fn to be called after every lookup.
func WithLookupHook(fn func(pos, match buffer.Position, found bool)) Option {
	return func(m *Matcher) {
		m.onLookup = fn
	}
}

// NewMatcher creates a matcher that reads the cursor through cursor,
// resolves brackets through find and shows results through markers.
func NewMatcher(cursor func() buffer.Position, find FindFunc, markers Markers, opts ...Option) *Matcher {
	m := &Matcher{
		delay:     DefaultDelay,
		scheduler: sched.TimerScheduler{},
		cursor:    cursor,
		find:      find,
		markers:   markers,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Notify tells the matcher the cursor moved.
func (m *Matcher) Notify() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StatePending {
		return
	}
	m.state = StatePending
	m.timer = m.scheduler.AfterFunc(m.delay, m.fire)
}

// State returns the current scheduling state.
func (m *Matcher) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Lookups returns the number of lookups performed so far.
func (m *Matcher) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

// Highlight returns the live bracket marker handle, or "" if none.
func (m *Matcher) Highlight() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle
}

// Close cancels a pending lookup and releases the highlight.
func (m *Matcher) Close() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.state = StateIdle
	old := m.handle
	m.handle = ""
	m.mu.Unlock()

	if old != "" {
		m.markers.RemoveMarker(old)
	}
}

func (m *Matcher) fire() {
	m.mu.Lock()
	m.state = StateIdle
	m.timer = nil
	old := m.handle
	m.handle = ""
	m.lookups++
	m.mu.Unlock()

	if old != "" {
		m.markers.RemoveMarker(old)
	}

	pos := m.cursor()
	match, found := m.find(pos)
	if found {
		r := buffer.Range{Start: match, End: buffer.Pos(match.Row, match.Column+1)}
		handle := m.markers.AddMarker(r, MarkerKind)

		m.mu.Lock()
		m.handle = handle
		m.mu.Unlock()
	}

	if m.onLookup != nil {
		m.onLookup(pos, match, found)
	}
}
