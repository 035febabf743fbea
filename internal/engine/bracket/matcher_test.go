package bracket

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/sched"
)

type fakeMarkers struct {
	mu      sync.Mutex
	next    int
	live    map[string]buffer.Range
	removed []string
}

func newFakeMarkers() *fakeMarkers {
	return &fakeMarkers{live: make(map[string]buffer.Range)}
}

func (f *fakeMarkers) AddMarker(r buffer.Range, kind string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	id := fmt.Sprintf("%s-%d", kind, f.next)
	f.live[id] = r
	return id
}

func (f *fakeMarkers) RemoveMarker(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, id)
	f.removed = append(f.removed, id)
}

func (f *fakeMarkers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

func TestMatcherCoalescesRapidMoves(t *testing.T) {
	doc := buffer.NewDocumentFromString("(a) [b] {c}")
	clock := sched.NewManualScheduler()
	markers := newFakeMarkers()

	var cursor buffer.Position
	var looked []buffer.Position
	m := NewMatcher(
		func() buffer.Position { return cursor },
		doc.FindMatchingBracket,
		markers,
		WithScheduler(clock),
		WithLookupHook(func(pos, _ buffer.Position, _ bool) { looked = append(looked, pos) }),
	)

	for _, col := range []int{1, 2, 3, 5, 11} {
		cursor = buffer.Pos(0, col)
		m.Notify()
	}

	if m.State() != StatePending {
		t.Fatalf("expected pending, got %s", m.State())
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected one scheduled lookup, got %d", clock.Pending())
	}

	clock.Advance(DefaultDelay)

	if m.Lookups() != 1 {
		t.Errorf("expected exactly one lookup, got %d", m.Lookups())
	}
	if len(looked) != 1 || looked[0] != buffer.Pos(0, 11) {
		t.Errorf("lookup should use the final cursor (0:11), got %v", looked)
	}
	if m.State() != StateIdle {
		t.Errorf("expected idle after firing, got %s", m.State())
	}
	if markers.count() != 1 {
		t.Errorf("expected one live bracket marker, got %d", markers.count())
	}
}

func TestMatcherDoesNotFireBeforeDelay(t *testing.T) {
	clock := sched.NewManualScheduler()
	m := NewMatcher(
		func() buffer.Position { return buffer.Position{} },
		func(buffer.Position) (buffer.Position, bool) { return buffer.Position{}, false },
		newFakeMarkers(),
		WithScheduler(clock),
		WithDelay(20*time.Millisecond),
	)

	m.Notify()
	clock.Advance(19 * time.Millisecond)
	if m.Lookups() != 0 {
		t.Fatalf("lookup ran early")
	}
	clock.Advance(time.Millisecond)
	if m.Lookups() != 1 {
		t.Errorf("expected one lookup, got %d", m.Lookups())
	}
}

func TestMatcherReleasesPreviousHighlight(t *testing.T) {
	doc := buffer.NewDocumentFromString("(a) x")
	clock := sched.NewManualScheduler()
	markers := newFakeMarkers()

	cursor := buffer.Pos(0, 1)
	m := NewMatcher(func() buffer.Position { return cursor }, doc.FindMatchingBracket, markers, WithScheduler(clock))

	m.Notify()
	clock.Advance(DefaultDelay)
	first := m.Highlight()
	if first == "" {
		t.Fatal("expected a highlight after the first lookup")
	}

	cursor = buffer.Pos(0, 5)
	m.Notify()
	clock.Advance(DefaultDelay)

	if m.Highlight() != "" {
		t.Errorf("no bracket before cursor, highlight should be gone, got %q", m.Highlight())
	}
	if len(markers.removed) != 1 || markers.removed[0] != first {
		t.Errorf("expected %q released, got %v", first, markers.removed)
	}
}

func TestMatcherHighlightRange(t *testing.T) {
	doc := buffer.NewDocumentFromString("f(x)")
	clock := sched.NewManualScheduler()
	markers := newFakeMarkers()

	m := NewMatcher(func() buffer.Position { return buffer.Pos(0, 4) }, doc.FindMatchingBracket, markers, WithScheduler(clock))
	m.Notify()
	clock.Advance(DefaultDelay)

	r, ok := markers.live[m.Highlight()]
	if !ok {
		t.Fatal("expected a live marker")
	}
	want := buffer.Range{Start: buffer.Pos(0, 1), End: buffer.Pos(0, 2)}
	if r != want {
		t.Errorf("expected %s, got %s", want, r)
	}
}

func TestMatcherClose(t *testing.T) {
	clock := sched.NewManualScheduler()
	m := NewMatcher(
		func() buffer.Position { return buffer.Position{} },
		func(buffer.Position) (buffer.Position, bool) { return buffer.Position{}, false },
		newFakeMarkers(),
		WithScheduler(clock),
	)

	m.Notify()
	m.Close()
	if clock.Pending() != 0 {
		t.Errorf("close should cancel the pending lookup")
	}
	clock.Advance(time.Second)
	if m.Lookups() != 0 {
		t.Errorf("expected no lookups after close, got %d", m.Lookups())
	}
}

