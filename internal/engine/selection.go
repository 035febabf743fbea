package engine

import (
	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/motion"
)

// SetSelectionAnchor drops any selection and arms a new one at the clipped
// (row, column). The selection has no lead until it is extended.
func (e *Editor) SetSelectionAnchor(row, column int) {
	e.ClearSelection()
	a := buffer.Clip(e.doc, row, column)
	e.anchor = &a
}

// ExtendSelection runs move, which must move the cursor, and makes the new
// cursor the selection lead. Without an anchor the cursor before the move
// becomes the anchor.
func (e *Editor) ExtendSelection(move func()) {
	if e.anchor == nil {
		a := e.CursorPosition()
		e.anchor = &a
	}

	move()

	l := e.CursorPosition()
	e.lead = &l
	e.redrawSelection()
	e.renderer.ScrollCursorIntoView()
}

// redrawSelection replaces the selection decoration.
func (e *Editor) redrawSelection() {
	if e.selection != "" {
		e.renderer.RemoveMarker(e.selection)
	}
	e.selection = e.renderer.AddMarker(e.SelectionRange(), SelectionMarkerKind)
}

// SelectionRange returns the normalized selection, or an empty range at
// the cursor when nothing is selected.
func (e *Editor) SelectionRange() Range {
	c := e.CursorPosition()
	anchor, lead := c, c
	if e.anchor != nil {
		anchor = *e.anchor
	}
	if e.lead != nil {
		lead = *e.lead
	}
	return buffer.Normalize(anchor, lead)
}

// HasSelection reports whether a selection exists.
func (e *Editor) HasSelection() bool {
	return e.lead != nil
}

// HasMultiLineSelection reports whether the selection spans rows.
func (e *Editor) HasMultiLineSelection() bool {
	return e.HasSelection() && e.SelectionRange().IsMultiLine()
}

// SelectionAnchor returns the anchor, if armed.
func (e *Editor) SelectionAnchor() (Position, bool) {
	if e.anchor == nil {
		return Position{}, false
	}
	return *e.anchor, true
}

// SelectionLead returns the lead, if a selection exists.
func (e *Editor) SelectionLead() (Position, bool) {
	if e.lead == nil {
		return Position{}, false
	}
	return *e.lead, true
}

// ClearSelection drops the selection and its decoration.
func (e *Editor) ClearSelection() {
	e.anchor = nil
	e.lead = nil
	if e.selection != "" {
		e.renderer.RemoveMarker(e.selection)
		e.selection = ""
	}
}

// ShiftSelection moves both selection endpoints by delta columns on their
// own rows. Without a selection it does nothing.
func (e *Editor) ShiftSelection(delta int) {
	if !e.HasSelection() {
		return
	}
	anchor, lead := *e.anchor, *e.lead

	e.SetSelectionAnchor(anchor.Row, anchor.Column+delta)
	e.ExtendSelection(func() {
		e.MoveCursorTo(lead.Row, lead.Column+delta)
	})
}

// SelectAll selects the whole document, leaving the cursor at its start.
func (e *Editor) SelectAll() {
	end := motion.FileEnd(e.doc)
	e.SetSelectionAnchor(end.Row, end.Column)
	e.ExtendSelection(e.MoveCursorFileStart)
}

// SelectLine selects the cursor row including its line separator.
func (e *Editor) SelectLine() {
	row := e.CursorPosition().Row
	e.SetSelectionAnchor(row, 0)
	e.ExtendSelection(func() {
		e.MoveCursorTo(row+1, 0)
	})
}

// SelectWordAtCursor selects the token under the cursor.
func (e *Editor) SelectWordAtCursor() {
	c := e.CursorPosition()
	start, end := motion.TokenAt(e.doc.Line(c.Row), c.Column)
	e.SetSelectionAnchor(c.Row, start)
	e.ExtendSelection(func() {
		e.MoveCursorTo(c.Row, end)
	})
}

func (e *Editor) SelectUp()        { e.ExtendSelection(e.MoveCursorUp) }
func (e *Editor) SelectDown()      { e.ExtendSelection(e.MoveCursorDown) }
func (e *Editor) SelectLeft()      { e.ExtendSelection(e.MoveCursorLeft) }
func (e *Editor) SelectRight()     { e.ExtendSelection(e.MoveCursorRight) }
func (e *Editor) SelectLineStart() { e.ExtendSelection(e.MoveCursorLineStart) }
func (e *Editor) SelectLineEnd()   { e.ExtendSelection(e.MoveCursorLineEnd) }
func (e *Editor) SelectFileStart() { e.ExtendSelection(e.MoveCursorFileStart) }
func (e *Editor) SelectFileEnd()   { e.ExtendSelection(e.MoveCursorFileEnd) }
func (e *Editor) SelectWordLeft()  { e.ExtendSelection(e.MoveCursorWordLeft) }
func (e *Editor) SelectWordRight() { e.ExtendSelection(e.MoveCursorWordRight) }

// SelectPageDown scrolls a page down and extends the selection to the row
// half a page below the old page-down row, keeping the column.
func (e *Editor) SelectPageDown() {
	row := e.PageDownRow() + e.VisibleRowCount()/2
	e.ScrollPageDown()
	e.ExtendSelection(func() {
		e.MoveCursorTo(row, e.CursorPosition().Column)
	})
}

// SelectPageUp is SelectPageDown upwards.
func (e *Editor) SelectPageUp() {
	visible := e.LastVisibleRow() - e.FirstVisibleRow()
	row := e.PageUpRow() + (visible+1)/2
	e.ScrollPageUp()
	e.ExtendSelection(func() {
		e.MoveCursorTo(row, e.CursorPosition().Column)
	})
}
