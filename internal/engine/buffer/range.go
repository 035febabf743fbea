package buffer

import "fmt"

// Range is a span between two positions.
// Start is inclusive, End is exclusive, and Start <= End always holds for
// ranges built with Normalize.
type Range struct {
	Start Position
	End   Position
}

// NewRange creates a Range from start and end, normalizing their order.
func NewRange(start, end Position) Range {
	return Normalize(start, end)
}

// Normalize orders a and b so the result has Start <= End.
func Normalize(a, b Position) Range {
	if Compare(a, b) > 0 {
		return Range{Start: b, End: a}
	}
	return Range{Start: a, End: b}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return Compare(r.Start, r.End) == 0
}

// IsValid returns true if start <= end.
func (r Range) IsValid() bool {
	return Compare(r.Start, r.End) <= 0
}

// IsMultiLine returns true if the range spans more than one row.
func (r Range) IsMultiLine() bool {
	return r.Start.Row != r.End.Row
}

// Contains returns true if p is within [Start, End).
func (r Range) Contains(p Position) bool {
	return Compare(p, r.Start) >= 0 && Compare(p, r.End) < 0
}

// LineSpan returns the first and last rows a line-oriented operation on r
// should touch. A multi-row range that ends at column 0 does not include
// its last row: the user did not visually select anything on it.
func (r Range) LineSpan() (first, last int) {
	first, last = r.Start.Row, r.End.Row
	if r.End.Column == 0 && r.Start.Row != r.End.Row {
		last--
	}
	return first, last
}
