package motion

import "github.com/dshills/editcore/internal/engine/buffer"

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Lines is an alias for buffer.Lines for convenience.
type Lines = buffer.Lines

// Every function here returns an unclipped target. Callers hand it to the
// editor's single clipping mutation point. A false ok means the motion is
// a no-op at a document boundary and the cursor must not be touched.

// Up returns the target one row up with the column held.
func Up(p Position) Position {
	return Position{Row: p.Row - 1, Column: p.Column}
}

// Down returns the target one row down with the column held.
func Down(p Position) Position {
	return Position{Row: p.Row + 1, Column: p.Column}
}

// Left moves one column left, wrapping to the end of the previous row.
func Left(doc Lines, p Position) (Position, bool) {
	if p.Column > 0 {
		return Position{Row: p.Row, Column: p.Column - 1}, true
	}
	if p.Row > 0 {
		return Position{Row: p.Row - 1, Column: buffer.RuneLen(doc.Line(p.Row - 1))}, true
	}
	return p, false
}

// Right moves one column right, wrapping to the start of the next row.
func Right(doc Lines, p Position) (Position, bool) {
	if p.Column < buffer.RuneLen(doc.Line(p.Row)) {
		return Position{Row: p.Row, Column: p.Column + 1}, true
	}
	if p.Row < doc.Length()-1 {
		return Position{Row: p.Row + 1, Column: 0}, true
	}
	return p, false
}

// LineStart returns column 0 of the current row.
func LineStart(p Position) Position {
	return Position{Row: p.Row}
}

// LineEnd returns the end of the current row.
func LineEnd(doc Lines, p Position) Position {
	return Position{Row: p.Row, Column: buffer.RuneLen(doc.Line(p.Row))}
}

// FileStart returns the document origin.
func FileStart() Position {
	return Position{}
}

// FileEnd returns the end of the last row.
func FileEnd(doc Lines) Position {
	last := doc.Length() - 1
	return Position{Row: last, Column: buffer.RuneLen(doc.Line(last))}
}

// WordRight moves to the end of the run that starts at the cursor. The
// non-word class is tried first, then the word class. At the end of a row
// it behaves like Right.
func WordRight(doc Lines, p Position) (Position, bool) {
	line := []rune(doc.Line(p.Row))
	if p.Column >= len(line) {
		return Right(doc, p)
	}
	return Position{Row: p.Row, Column: runEnd(line, p.Column)}, true
}

// WordLeft is WordRight mirrored over the text before the cursor. At
// column 0 it behaves like Left.
func WordLeft(doc Lines, p Position) (Position, bool) {
	line := []rune(doc.Line(p.Row))
	if p.Column <= 0 {
		return Left(doc, p)
	}
	column := min(p.Column, len(line))
	return Position{Row: p.Row, Column: runStart(line, column)}, true
}

// TokenAt returns the columns [start, end) of the run under column. The
// character before the column wins when it is a word character, so a
// cursor just after a word selects that word.
func TokenAt(line string, column int) (start, end int) {
	runes := []rune(line)
	column = max(0, min(column, len(runes)))

	class := NonWord
	if column > 0 && IsWord(runes[column-1]) {
		class = Word
	} else if column < len(runes) && IsWord(runes[column]) {
		class = Word
	}

	start = column
	for start > 0 && ClassOf(runes[start-1]) == class {
		start--
	}
	end = column
	for end < len(runes) && ClassOf(runes[end]) == class {
		end++
	}
	return start, end
}

// runEnd returns the end of the maximal same-class run starting at from.
func runEnd(line []rune, from int) int {
	class := ClassOf(line[from])
	i := from
	for i < len(line) && ClassOf(line[i]) == class {
		i++
	}
	return i
}

// runStart returns the start of the maximal same-class run ending at to.
func runStart(line []rune, to int) int {
	class := ClassOf(line[to-1])
	i := to
	for i > 0 && ClassOf(line[i-1]) == class {
		i--
	}
	return i
}
