package engine

import (
	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/motion"
)

// MoveCursorTo clips (row, column) against the document and moves the
// cursor there. Every cursor change goes through here.
func (e *Editor) MoveCursorTo(row, column int) {
	pos := buffer.Clip(e.doc, row, column)

	e.mu.Lock()
	e.cursor = pos
	e.mu.Unlock()

	e.renderer.UpdateCursor(pos)
	for _, fn := range e.cursorObservers {
		fn(pos)
	}
	e.brackets.Notify()
}

// MoveCursorToPosition is MoveCursorTo for a Position.
func (e *Editor) MoveCursorToPosition(pos Position) {
	e.MoveCursorTo(pos.Row, pos.Column)
}

// CursorPosition returns the cursor.
func (e *Editor) CursorPosition() Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor
}

// Reclip re-validates the cursor and selection after the document was
// changed outside the editor.
func (e *Editor) Reclip() {
	if e.anchor != nil {
		a := buffer.ClipPosition(e.doc, *e.anchor)
		e.anchor = &a
	}
	if e.lead != nil {
		l := buffer.ClipPosition(e.doc, *e.lead)
		e.lead = &l
	}
	e.MoveCursorToPosition(e.CursorPosition())
	if e.lead != nil {
		e.redrawSelection()
	}
}

// MoveCursorBy moves the cursor by rows and columns.
func (e *Editor) MoveCursorBy(rows, columns int) {
	c := e.CursorPosition()
	e.MoveCursorTo(c.Row+rows, c.Column+columns)
}

// moveWith moves the cursor to the result of a motion that may refuse to
// move at a document boundary.
func (e *Editor) moveWith(m func(motion.Lines, Position) (Position, bool)) {
	if pos, ok := m(e.doc, e.CursorPosition()); ok {
		e.MoveCursorToPosition(pos)
	}
}

// Motions. These move the cursor without touching the selection.

func (e *Editor) MoveCursorUp()   { e.MoveCursorToPosition(motion.Up(e.CursorPosition())) }
func (e *Editor) MoveCursorDown() { e.MoveCursorToPosition(motion.Down(e.CursorPosition())) }

// MoveCursorLeft moves one column left, wrapping to the end of the previous
// row.
func (e *Editor) MoveCursorLeft() { e.moveWith(motion.Left) }

// MoveCursorRight moves one column right, wrapping to the start of the next
// row.
func (e *Editor) MoveCursorRight() { e.moveWith(motion.Right) }

func (e *Editor) MoveCursorLineStart() {
	e.MoveCursorToPosition(motion.LineStart(e.CursorPosition()))
}

func (e *Editor) MoveCursorLineEnd() {
	e.MoveCursorToPosition(motion.LineEnd(e.doc, e.CursorPosition()))
}

func (e *Editor) MoveCursorFileStart() { e.MoveCursorToPosition(motion.FileStart()) }
func (e *Editor) MoveCursorFileEnd()   { e.MoveCursorToPosition(motion.FileEnd(e.doc)) }

// MoveCursorWordRight moves to the end of the token at the cursor.
func (e *Editor) MoveCursorWordRight() { e.moveWith(motion.WordRight) }

// MoveCursorWordLeft moves to the start of the token before the cursor.
func (e *Editor) MoveCursorWordLeft() { e.moveWith(motion.WordLeft) }

// GotoLine moves to the start of row and centres it when it is off screen.
func (e *Editor) GotoLine(row int) {
	e.MoveCursorTo(row, 0)
	if !e.IsRowVisible(e.CursorPosition().Row) {
		e.ScrollToRow(row - e.VisibleRowCount()/2)
	}
}

// Navigation: clear the selection, move, and keep the cursor on screen.

func (e *Editor) navigate(move func()) {
	e.ClearSelection()
	move()
	e.renderer.ScrollCursorIntoView()
}

// NavigateTo moves to (row, column) dropping the selection.
func (e *Editor) NavigateTo(row, column int) {
	e.navigate(func() { e.MoveCursorTo(row, column) })
}

func (e *Editor) NavigateUp()        { e.navigate(e.MoveCursorUp) }
func (e *Editor) NavigateDown()      { e.navigate(e.MoveCursorDown) }
func (e *Editor) NavigateLineStart() { e.navigate(e.MoveCursorLineStart) }
func (e *Editor) NavigateLineEnd()   { e.navigate(e.MoveCursorLineEnd) }
func (e *Editor) NavigateFileStart() { e.navigate(e.MoveCursorFileStart) }
func (e *Editor) NavigateFileEnd()   { e.navigate(e.MoveCursorFileEnd) }
func (e *Editor) NavigateWordLeft()  { e.navigate(e.MoveCursorWordLeft) }
func (e *Editor) NavigateWordRight() { e.navigate(e.MoveCursorWordRight) }

// NavigateLeft collapses a selection to its start, or moves left.
func (e *Editor) NavigateLeft() {
	if e.HasSelection() {
		start := e.SelectionRange().Start
		e.navigate(func() { e.MoveCursorToPosition(start) })
		return
	}
	e.navigate(e.MoveCursorLeft)
}

// NavigateRight collapses a selection to its end, or moves right.
func (e *Editor) NavigateRight() {
	if e.HasSelection() {
		end := e.SelectionRange().End
		e.navigate(func() { e.MoveCursorToPosition(end) })
		return
	}
	e.navigate(e.MoveCursorRight)
}
