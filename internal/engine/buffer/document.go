package buffer

import (
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// LineEnding specifies the line separator used when the document is
// serialized. Rows are always stored without separators.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// ChangeListener is notified after every mutation with the span of rows
// that changed. When the number of rows changes, endRow extends to the last
// row of the document since every following row shifted.
type ChangeListener func(startRow, endRow int)

// Document is a line store that implements the editor's document adapter.
// Mutating methods clip their input positions and never fail; listeners are
// called after the write lock is released so they may read the document.
// All methods are thread-safe.
type Document struct {
	mu         sync.RWMutex
	lines      []string
	lineEnding LineEnding
	tabWidth   int

	lmu       sync.Mutex
	listeners []ChangeListener
}

// NewDocument creates an empty document with a single empty row.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		lines:      []string{""},
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDocumentFromString creates a document with initial content.
// A trailing separator produces a final empty row.
func NewDocumentFromString(s string, opts ...Option) *Document {
	d := NewDocument(opts...)
	d.lines = splitLines(s)
	return d
}

// NewDocumentFromLines creates a document holding a copy of lines.
func NewDocumentFromLines(lines []string, opts ...Option) *Document {
	d := NewDocument(opts...)
	if len(lines) > 0 {
		d.lines = append([]string(nil), lines...)
	}
	return d
}

// NewDocumentFromReader creates a document from an io.Reader.
func NewDocumentFromReader(r io.Reader, opts ...Option) (*Document, error) {
	// Read everything first: a CRLF pair may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewDocumentFromString(string(data), opts...), nil
}

// splitLines normalizes every line ending to LF and splits on it.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// Read Operations

// Line returns the text of row without its separator.
// Rows outside the document read as empty.
func (d *Document) Line(row int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if row < 0 || row >= len(d.lines) {
		return ""
	}
	return d.lines[row]
}

// Length returns the number of rows.
func (d *Document) Length() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lines)
}

// Lines returns a copy of all rows.
func (d *Document) Lines() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.lines...)
}

// Text returns the full content joined with the document's line ending.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return strings.Join(d.lines, d.lineEnding.Sequence())
}

// TextRange returns the text covered by r, rows joined with LF.
func (d *Document) TextRange(r Range) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r = d.clipRange(r)
	if r.Start.Row == r.End.Row {
		line := d.lines[r.Start.Row]
		return line[byteIndex(line, r.Start.Column):byteIndex(line, r.End.Column)]
	}

	var sb strings.Builder
	first := d.lines[r.Start.Row]
	sb.WriteString(first[byteIndex(first, r.Start.Column):])
	for row := r.Start.Row + 1; row < r.End.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(d.lines[row])
	}
	last := d.lines[r.End.Row]
	sb.WriteByte('\n')
	sb.WriteString(last[:byteIndex(last, r.End.Column)])
	return sb.String()
}

// LineEnding returns the document's line ending style.
func (d *Document) LineEnding() LineEnding {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lineEnding
}

// TabWidth returns the document's tab width.
func (d *Document) TabWidth() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tabWidth
}

// AddChangeListener registers fn to be called after every mutation.
func (d *Document) AddChangeListener(fn ChangeListener) {
	if fn == nil {
		return
	}
	d.lmu.Lock()
	defer d.lmu.Unlock()
	d.listeners = append(d.listeners, fn)
}

func (d *Document) notify(startRow, endRow int) {
	d.lmu.Lock()
	listeners := append([]ChangeListener(nil), d.listeners...)
	d.lmu.Unlock()

	for _, fn := range listeners {
		fn(startRow, endRow)
	}
}

// Write Operations

// Insert inserts text at pos and returns the position just after the
// inserted text.
func (d *Document) Insert(pos Position, text string) Position {
	d.mu.Lock()
	pos = d.clip(pos)
	before := len(d.lines)
	end := d.insert(pos, text)
	span := d.span(pos.Row, end.Row, before)
	d.mu.Unlock()

	if text != "" {
		d.notify(pos.Row, span)
	}
	return end
}

// Remove deletes the text covered by r and returns the start of the range.
func (d *Document) Remove(r Range) Position {
	d.mu.Lock()
	r = d.clipRange(r)
	before := len(d.lines)
	d.remove(r)
	span := d.span(r.Start.Row, r.Start.Row, before)
	d.mu.Unlock()

	if !r.IsEmpty() {
		d.notify(r.Start.Row, span)
	}
	return r.Start
}

// Replace substitutes text for the range r and returns the position just
// after the new text.
func (d *Document) Replace(r Range, text string) Position {
	d.mu.Lock()
	r = d.clipRange(r)
	before := len(d.lines)
	d.remove(r)
	end := d.insert(r.Start, text)
	span := d.span(r.Start.Row, end.Row, before)
	d.mu.Unlock()

	d.notify(r.Start.Row, span)
	return end
}

// ReplaceRows replaces rows first through last with lines.
func (d *Document) ReplaceRows(first, last int, lines []string) {
	d.mu.Lock()
	first, last = d.clipRows(first, last)
	before := len(d.lines)

	tail := append([]string(nil), d.lines[last+1:]...)
	d.lines = append(append(d.lines[:first], lines...), tail...)
	if len(d.lines) == 0 {
		d.lines = []string{""}
	}
	span := d.span(first, first+len(lines)-1, before)
	d.mu.Unlock()

	d.notify(first, span)
}

// IndentRows prefixes every row of r with indent and returns the number of
// columns added to each row.
func (d *Document) IndentRows(r Range, indent string) int {
	if indent == "" {
		return 0
	}

	d.mu.Lock()
	first, last := d.clipRows(r.Start.Row, r.End.Row)
	for row := first; row <= last; row++ {
		d.lines[row] = indent + d.lines[row]
	}
	d.mu.Unlock()

	d.notify(first, last)
	return RuneLen(indent)
}

// OutdentRows strips indent from every row of r and returns the (negative)
// column delta. Rows are left untouched and 0 is returned unless every row
// starts with indent.
func (d *Document) OutdentRows(r Range, indent string) int {
	if indent == "" {
		return 0
	}

	d.mu.Lock()
	first, last := d.clipRows(r.Start.Row, r.End.Row)
	for row := first; row <= last; row++ {
		if !strings.HasPrefix(d.lines[row], indent) {
			d.mu.Unlock()
			return 0
		}
	}
	for row := first; row <= last; row++ {
		d.lines[row] = d.lines[row][len(indent):]
	}
	d.mu.Unlock()

	d.notify(first, last)
	return -RuneLen(indent)
}

// MoveLinesUp moves rows first through last one row up by rotating the row
// above them below the block. It returns -1, or 0 when the block already
// starts at the first row.
func (d *Document) MoveLinesUp(first, last int) int {
	d.mu.Lock()
	first, last = d.clipRows(first, last)
	if first == 0 {
		d.mu.Unlock()
		return 0
	}
	above := d.lines[first-1]
	copy(d.lines[first-1:last], d.lines[first:last+1])
	d.lines[last] = above
	d.mu.Unlock()

	d.notify(first-1, last)
	return -1
}

// MoveLinesDown moves rows first through last one row down by rotating the
// row below them above the block. It returns 1, or 0 when the block already
// ends at the last row.
func (d *Document) MoveLinesDown(first, last int) int {
	d.mu.Lock()
	first, last = d.clipRows(first, last)
	if last >= len(d.lines)-1 {
		d.mu.Unlock()
		return 0
	}
	below := d.lines[last+1]
	copy(d.lines[first+1:last+2], d.lines[first:last+1])
	d.lines[first] = below
	d.mu.Unlock()

	d.notify(first, last+1)
	return 1
}

// internal helpers, called with d.mu held

func (d *Document) clip(p Position) Position {
	return Clip(linesView(d.lines), p.Row, p.Column)
}

func (d *Document) clipRange(r Range) Range {
	return Normalize(d.clip(r.Start), d.clip(r.End))
}

func (d *Document) clipRows(first, last int) (int, int) {
	if first > last {
		first, last = last, first
	}
	if first < 0 {
		first = 0
	}
	if last > len(d.lines)-1 {
		last = len(d.lines) - 1
	}
	if first > last {
		first = last
	}
	return first, last
}

// span reports the last row affected by a change that started at startRow
// and ended at endRow, given the row count before the change.
func (d *Document) span(startRow, endRow, before int) int {
	if len(d.lines) != before {
		return max(len(d.lines)-1, startRow)
	}
	return endRow
}

func (d *Document) insert(pos Position, text string) Position {
	if text == "" {
		return pos
	}
	line := d.lines[pos.Row]
	at := byteIndex(line, pos.Column)
	head, tail := line[:at], line[at:]

	parts := splitLines(text)
	if len(parts) == 1 {
		d.lines[pos.Row] = head + text + tail
		return Position{Row: pos.Row, Column: pos.Column + RuneLen(text)}
	}

	rows := make([]string, 0, len(d.lines)+len(parts)-1)
	rows = append(rows, d.lines[:pos.Row]...)
	rows = append(rows, head+parts[0])
	rows = append(rows, parts[1:len(parts)-1]...)
	lastPart := parts[len(parts)-1]
	rows = append(rows, lastPart+tail)
	rows = append(rows, d.lines[pos.Row+1:]...)
	d.lines = rows

	return Position{Row: pos.Row + len(parts) - 1, Column: RuneLen(lastPart)}
}

func (d *Document) remove(r Range) {
	if r.IsEmpty() {
		return
	}
	first := d.lines[r.Start.Row]
	last := d.lines[r.End.Row]
	joined := first[:byteIndex(first, r.Start.Column)] + last[byteIndex(last, r.End.Column):]

	d.lines[r.Start.Row] = joined
	d.lines = append(d.lines[:r.Start.Row+1], d.lines[r.End.Row+1:]...)
}

// linesView adapts a raw row slice to the Lines interface without locking.
type linesView []string

func (v linesView) Line(row int) string {
	if row < 0 || row >= len(v) {
		return ""
	}
	return v[row]
}

func (v linesView) Length() int { return len(v) }

// RuneLen returns the number of columns in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// byteIndex converts a rune column in s to a byte offset, clamping to
// len(s).
func byteIndex(s string, column int) int {
	if column <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == column {
			return i
		}
		n++
	}
	return len(s)
}
