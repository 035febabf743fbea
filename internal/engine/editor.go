package engine

import (
	"sync"
	"time"

	"github.com/dshills/editcore/internal/engine/bracket"
	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/sched"
	"github.com/dshills/editcore/internal/logging"
	"github.com/dshills/editcore/internal/mode"
	"github.com/dshills/editcore/internal/tokenizer"
)

// Position and Range are the buffer primitives.
type (
	Position = buffer.Position
	Range    = buffer.Range
)

// MarkerID is an opaque decoration handle issued by a Renderer.
type MarkerID = string

// SelectionMarkerKind is the decoration kind of the selection highlight.
const SelectionMarkerKind = "selection"

// Document is the line store an editor edits. Every mutation clips its
// input and reports the affected rows to change listeners.
type Document interface {
	buffer.Lines

	Insert(pos Position, text string) Position
	Remove(r Range) Position
	Replace(r Range, text string) Position
	ReplaceRows(first, last int, lines []string)
	TextRange(r Range) string

	IndentRows(r Range, indent string) int
	OutdentRows(r Range, indent string) int
	MoveLinesUp(first, last int) int
	MoveLinesDown(first, last int) int

	FindMatchingBracket(pos Position) (Position, bool)
	AddChangeListener(fn buffer.ChangeListener)
}

// Renderer shows the document. The editor never depends on a concrete
// renderer.
type Renderer interface {
	FirstVisibleRow() int
	LastVisibleRow() int
	ScrollToRow(row int)
	ScrollCursorIntoView()
	UpdateCursor(pos Position)
	UpdateLines(startRow, endRow int)
	AddMarker(r Range, kind string) MarkerID
	RemoveMarker(id MarkerID)
}

// Editor is the cursor and selection controller, motion command set and
// mutation coordinator for one document.
type Editor struct {
	renderer Renderer
	doc      Document
	bound    bool
	mode     mode.Mode

	// cursor is read by the bracket matcher when its timer fires.
	mu     sync.RWMutex
	cursor Position

	anchor    *Position
	lead      *Position
	selection MarkerID

	brackets *bracket.Matcher
	tokens   *tokenizer.Background

	cursorObservers   []func(Position)
	documentObservers []func(startRow, endRow int)

	// Configuration
	pendingDoc   Document
	scheduler    sched.Scheduler
	log          *logging.Logger
	indent       string
	bracketDelay time.Duration
}

// New creates an editor drawing through renderer. Without WithDocument the
// editor starts on an empty, unbound document; bind one later with
// SetDocument.
func New(renderer Renderer, opts ...Option) (*Editor, error) {
	if renderer == nil {
		return nil, ErrNilRenderer
	}

	e := &Editor{
		renderer:     renderer,
		mode:         mode.Text{},
		scheduler:    sched.TimerScheduler{},
		log:          logging.Nop(),
		indent:       DefaultIndent,
		bracketDelay: bracket.DefaultDelay,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.brackets = bracket.NewMatcher(
		e.CursorPosition,
		func(pos Position) (Position, bool) { return e.doc.FindMatchingBracket(pos) },
		renderer,
		bracket.WithDelay(e.bracketDelay),
		bracket.WithScheduler(e.scheduler),
		bracket.WithLookupHook(e.onBracketLookup),
	)
	e.tokens = tokenizer.NewBackground(
		e.mode.Tokenizer(),
		e.onTokenizerUpdate,
		tokenizer.WithPassScheduler(e.scheduler),
	)

	if e.pendingDoc != nil {
		e.bind(e.pendingDoc)
		e.pendingDoc = nil
	} else {
		e.attach(buffer.NewDocument())
	}

	e.cursor = buffer.ClipPosition(e.doc, e.cursor)
	e.renderer.UpdateCursor(e.cursor)
	return e, nil
}

// SetDocument binds the editor to doc. An editor can be bound once.
func (e *Editor) SetDocument(doc Document) error {
	if e.bound {
		return ErrDocumentAlreadySet
	}
	e.bind(doc)
	e.ClearSelection()
	e.MoveCursorTo(0, 0)
	return nil
}

func (e *Editor) bind(doc Document) {
	e.bound = true
	e.attach(doc)
}

func (e *Editor) attach(doc Document) {
	e.doc = doc
	doc.AddChangeListener(e.onDocumentChange)
	e.tokens.SetLines(doc)
}

// Document returns the document being edited.
func (e *Editor) Document() Document {
	return e.doc
}

// SetMode swaps the language mode and retokenizes the document. The
// replaced mode is closed if it holds resources.
func (e *Editor) SetMode(m mode.Mode) {
	if m == nil {
		m = mode.Text{}
	}
	old := e.mode
	e.mode = m
	e.tokens.SetTokenizer(m.Tokenizer())
	e.log.Debug("mode set to %s", m.Name())

	if c, ok := old.(interface{ Close() }); ok && old != m {
		c.Close()
	}
}

// Mode returns the current language mode.
func (e *Editor) Mode() mode.Mode {
	return e.mode
}

// Indent returns the indent string used when none is given.
func (e *Editor) Indent() string {
	return e.indent
}

// Tokens returns the syntax tokens of row.
func (e *Editor) Tokens(row int) []tokenizer.Token {
	return e.tokens.Tokens(row)
}

// Brackets returns the bracket matcher.
func (e *Editor) Brackets() *bracket.Matcher {
	return e.brackets
}

// OnCursorChange registers fn to run after every cursor move.
func (e *Editor) OnCursorChange(fn func(Position)) {
	e.cursorObservers = append(e.cursorObservers, fn)
}

// OnDocumentChange registers fn to run after every document change.
func (e *Editor) OnDocumentChange(fn func(startRow, endRow int)) {
	e.documentObservers = append(e.documentObservers, fn)
}

// Close stops deferred work and releases decorations.
func (e *Editor) Close() {
	e.brackets.Close()
	e.tokens.Stop()
	e.ClearSelection()
}

func (e *Editor) onDocumentChange(startRow, endRow int) {
	e.tokens.Start(startRow)
	e.renderer.UpdateLines(startRow, endRow)
	for _, fn := range e.documentObservers {
		fn(startRow, endRow)
	}
}

func (e *Editor) onTokenizerUpdate(startRow, endRow int) {
	e.renderer.UpdateLines(startRow, endRow)
}

func (e *Editor) onBracketLookup(pos, match Position, found bool) {
	if found {
		e.log.Debug("bracket at %s matches %s", pos, match)
	}
}
