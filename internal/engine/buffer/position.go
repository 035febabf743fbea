package buffer

import "fmt"

// Position is a row/column location in a document.
// Both Row and Column are 0-indexed. Column counts runes from the start of
// the row. A Position is not valid against any document until it has been
// clipped with Clip.
type Position struct {
	Row    int
	Column int
}

// Pos is shorthand for Position{Row: row, Column: column}.
func Pos(row, column int) Position {
	return Position{Row: row, Column: column}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Ordering is by row, then by column.
func (p Position) Compare(other Position) int {
	return Compare(p, other)
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return Compare(p, other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return Compare(p, other) > 0
}

// IsZero returns true if this is the document origin (0:0).
func (p Position) IsZero() bool {
	return p.Row == 0 && p.Column == 0
}

// Compare returns -1 if a < b, 0 if a == b, 1 if a > b.
func Compare(a, b Position) int {
	if a.Row < b.Row {
		return -1
	}
	if a.Row > b.Row {
		return 1
	}
	if a.Column < b.Column {
		return -1
	}
	if a.Column > b.Column {
		return 1
	}
	return 0
}

// Lines is the read side of a document that clipping needs.
type Lines interface {
	// Line returns the text of row without its separator.
	Line(row int) string
	// Length returns the number of rows. A document always has at least one.
	Length() int
}

// Clip coerces (row, column) to the nearest valid position in doc.
//
// A row before the first row clips to the document start, a row after the
// last row clips to the end of the last row. Otherwise the column is clamped
// into [0, len(row)].
func Clip(doc Lines, row, column int) Position {
	count := doc.Length()
	if count <= 0 {
		return Position{}
	}
	if row >= count {
		last := count - 1
		return Position{Row: last, Column: RuneLen(doc.Line(last))}
	}
	if row < 0 {
		return Position{}
	}
	if column < 0 {
		column = 0
	}
	if n := RuneLen(doc.Line(row)); column > n {
		column = n
	}
	return Position{Row: row, Column: column}
}

// ClipPosition is Clip for an existing Position.
func ClipPosition(doc Lines, p Position) Position {
	return Clip(doc, p.Row, p.Column)
}
