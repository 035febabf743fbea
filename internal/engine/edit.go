package engine

// Every edit resolves the affected range, hands it to the document, moves
// the cursor to the position the document returns and drops the selection.

func (e *Editor) finishEdit(pos Position) {
	e.MoveCursorToPosition(pos)
	e.ClearSelection()
	e.renderer.ScrollCursorIntoView()
}

// InsertText replaces the selection with text, or inserts it at the cursor.
func (e *Editor) InsertText(text string) {
	if e.HasSelection() {
		e.finishEdit(e.doc.Replace(e.SelectionRange(), text))
		return
	}
	e.finishEdit(e.doc.Insert(e.CursorPosition(), text))
}

// DeleteRight removes the selection, or the character after the cursor.
// At the end of the document it does nothing.
func (e *Editor) DeleteRight() {
	if !e.HasSelection() {
		e.SelectRight()
	}
	e.finishEdit(e.doc.Remove(e.SelectionRange()))
}

// DeleteLeft removes the selection, or the character before the cursor.
// At the start of the document it does nothing.
func (e *Editor) DeleteLeft() {
	if !e.HasSelection() {
		e.SelectLeft()
	}
	e.finishEdit(e.doc.Remove(e.SelectionRange()))
}

// DeleteLine removes the cursor row with its separator. Removing the last
// row also removes the separator left dangling above it, so no empty row
// is left at the end of the document.
func (e *Editor) DeleteLine() {
	wasLast := e.CursorPosition().Row == e.doc.Length()-1

	e.SelectLine()
	e.finishEdit(e.doc.Remove(e.SelectionRange()))

	if wasLast && e.doc.Length() > 1 {
		e.DeleteLeft()
		e.MoveCursorLineStart()
	}
}

// IndentRegion prefixes the selected rows with indent, or the configured
// indent when it is empty. It needs a selection.
func (e *Editor) IndentRegion(indent string) {
	if !e.HasSelection() {
		return
	}
	if indent == "" {
		indent = e.indent
	}
	e.ShiftSelection(e.doc.IndentRows(e.SelectionRange(), indent))
}

// OutdentRegion strips indent from the selected rows when every row
// carries it. It needs a selection.
func (e *Editor) OutdentRegion(indent string) {
	if !e.HasSelection() {
		return
	}
	if indent == "" {
		indent = e.indent
	}
	e.ShiftSelection(e.doc.OutdentRows(e.SelectionRange(), indent))
}

// ToggleComment comments or uncomments the selected rows through the
// language mode. It needs a selection.
func (e *Editor) ToggleComment() {
	if !e.HasSelection() {
		return
	}
	e.ShiftSelection(e.mode.ToggleCommentLines(e.doc, e.SelectionRange()))
}

// MoveLinesUp moves the selected rows, or the cursor row, up one row.
func (e *Editor) MoveLinesUp() {
	e.moveLines(e.doc.MoveLinesUp)
}

// MoveLinesDown moves the selected rows, or the cursor row, down one row.
func (e *Editor) MoveLinesDown() {
	e.moveLines(e.doc.MoveLinesDown)
}

// moveLines moves a row block and selects it at its new place, from the
// start of its first row to the start of the row after it.
func (e *Editor) moveLines(mover func(first, last int) int) {
	first, last := e.SelectionRange().LineSpan()
	moved := mover(first, last)

	e.SetSelectionAnchor(last+moved+1, 0)
	e.ExtendSelection(func() {
		e.MoveCursorTo(first+moved, 0)
	})
}

// CopyText returns the selected text, or "" without a selection.
func (e *Editor) CopyText() string {
	if !e.HasSelection() {
		return ""
	}
	return e.doc.TextRange(e.SelectionRange())
}

// Cut removes the selection and returns its text.
func (e *Editor) Cut() string {
	if !e.HasSelection() {
		return ""
	}
	text := e.doc.TextRange(e.SelectionRange())
	e.finishEdit(e.doc.Remove(e.SelectionRange()))
	return text
}
