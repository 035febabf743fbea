package engine

// Input commands. Adapters translate their own events (mouse, terminal)
// into these calls with document positions.

// OnMouseDown moves the cursor to pos and arms a selection there.
func (e *Editor) OnMouseDown(pos Position) {
	e.MoveCursorToPosition(pos)
	c := e.CursorPosition()
	e.SetSelectionAnchor(c.Row, c.Column)
	e.renderer.ScrollCursorIntoView()
}

// OnMouseDrag extends the selection to pos.
func (e *Editor) OnMouseDrag(pos Position) {
	e.ExtendSelection(func() {
		e.MoveCursorToPosition(pos)
	})
}

// OnDoubleClick selects the token at the cursor.
func (e *Editor) OnDoubleClick() {
	e.SelectWordAtCursor()
}

// OnTripleClick selects the cursor row.
func (e *Editor) OnTripleClick() {
	e.SelectLine()
}
