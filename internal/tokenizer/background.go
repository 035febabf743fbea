package tokenizer

import (
	"sync"
	"time"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/sched"
)

// DefaultPassDelay is how long a background pass waits after the first
// change before it runs.
const DefaultPassDelay = 5 * time.Millisecond

// UpdateFunc receives the rows whose tokens were refreshed.
type UpdateFunc func(startRow, endRow int)

// Background keeps a per-row token cache for a document and refreshes it
// after changes. Start only records the first dirty row; the pass itself
// runs later through the scheduler and retokenizes from that row to the
// end of the document.
type Background struct {
	mu        sync.Mutex
	tokenizer Tokenizer
	lines     buffer.Lines
	cache     [][]Token
	dirty     int
	timer     sched.Timer

	scheduler sched.Scheduler
	delay     time.Duration
	onUpdate  UpdateFunc
}

// BackgroundOption configures a Background tokenizer.
type BackgroundOption func(*Background)

// WithPassScheduler sets the scheduler used for passes.
func WithPassScheduler(s sched.Scheduler) BackgroundOption {
	return func(b *Background) {
		if s != nil {
			b.scheduler = s
		}
	}
}

// WithPassDelay sets the delay between the first change and the pass.
func WithPassDelay(d time.Duration) BackgroundOption {
	return func(b *Background) {
		if d >= 0 {
			b.delay = d
		}
	}
}

// NewBackground creates a background tokenizer. onUpdate may be nil.
func NewBackground(t Tokenizer, onUpdate UpdateFunc, opts ...BackgroundOption) *Background {
	if t == nil {
		t = Plain{}
	}
	b := &Background{
		tokenizer: t,
		dirty:     -1,
		scheduler: sched.TimerScheduler{},
		delay:     DefaultPassDelay,
		onUpdate:  onUpdate,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetLines binds the row source and schedules a full pass.
func (b *Background) SetLines(lines buffer.Lines) {
	b.mu.Lock()
	b.lines = lines
	b.cache = nil
	b.mu.Unlock()
	b.Start(0)
}

// SetTokenizer swaps the tokenizer, drops the cache and schedules a full
// pass.
func (b *Background) SetTokenizer(t Tokenizer) {
	if t == nil {
		t = Plain{}
	}
	b.mu.Lock()
	b.tokenizer = t
	b.cache = nil
	b.mu.Unlock()
	b.Start(0)
}

// Start marks row and everything after it as stale and schedules a pass
// if none is pending.
func (b *Background) Start(row int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if row < 0 {
		row = 0
	}
	if b.dirty >= 0 {
		b.dirty = min(b.dirty, row)
		return
	}
	b.dirty = row
	b.timer = b.scheduler.AfterFunc(b.delay, b.pass)
}

// Stop cancels a pending pass.
func (b *Background) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.dirty = -1
}

// Pending reports whether a pass is scheduled.
func (b *Background) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty >= 0
}

// Tokens returns the tokens of row, tokenizing it on demand when the cache
// has not caught up yet.
func (b *Background) Tokens(row int) []Token {
	b.mu.Lock()
	defer b.mu.Unlock()

	if row >= 0 && row < len(b.cache) && (b.dirty < 0 || row < b.dirty) {
		return b.cache[row]
	}
	if b.lines == nil || row < 0 || row >= b.lines.Length() {
		return nil
	}
	return b.tokenizer.TokenizeLine(b.lines.Line(row))
}

func (b *Background) pass() {
	b.mu.Lock()
	start := b.dirty
	b.dirty = -1
	b.timer = nil
	if b.lines == nil || start < 0 {
		b.mu.Unlock()
		return
	}

	count := b.lines.Length()
	start = min(start, count-1)
	cache := make([][]Token, count)
	copy(cache, b.cache[:min(len(b.cache), start)])
	for row := start; row < count; row++ {
		cache[row] = b.tokenizer.TokenizeLine(b.lines.Line(row))
	}
	b.cache = cache
	onUpdate := b.onUpdate
	b.mu.Unlock()

	if onUpdate != nil {
		onUpdate(start, count-1)
	}
}
