package keymap

import "github.com/dshills/editcore/internal/engine"

// Action is a command run against an editor.
type Action func(ed *engine.Editor)

// builtinActions are the editor commands every handler starts with.
var builtinActions = map[string]Action{
	"cursor.left":      (*engine.Editor).NavigateLeft,
	"cursor.right":     (*engine.Editor).NavigateRight,
	"cursor.up":        (*engine.Editor).NavigateUp,
	"cursor.down":      (*engine.Editor).NavigateDown,
	"cursor.lineStart": (*engine.Editor).NavigateLineStart,
	"cursor.lineEnd":   (*engine.Editor).NavigateLineEnd,
	"cursor.fileStart": (*engine.Editor).NavigateFileStart,
	"cursor.fileEnd":   (*engine.Editor).NavigateFileEnd,
	"cursor.wordLeft":  (*engine.Editor).NavigateWordLeft,
	"cursor.wordRight": (*engine.Editor).NavigateWordRight,
	"cursor.pageUp":    pageUp,
	"cursor.pageDown":  pageDown,

	"select.left":      (*engine.Editor).SelectLeft,
	"select.right":     (*engine.Editor).SelectRight,
	"select.up":        (*engine.Editor).SelectUp,
	"select.down":      (*engine.Editor).SelectDown,
	"select.lineStart": (*engine.Editor).SelectLineStart,
	"select.lineEnd":   (*engine.Editor).SelectLineEnd,
	"select.fileStart": (*engine.Editor).SelectFileStart,
	"select.fileEnd":   (*engine.Editor).SelectFileEnd,
	"select.wordLeft":  (*engine.Editor).SelectWordLeft,
	"select.wordRight": (*engine.Editor).SelectWordRight,
	"select.pageUp":    (*engine.Editor).SelectPageUp,
	"select.pageDown":  (*engine.Editor).SelectPageDown,
	"select.all":       (*engine.Editor).SelectAll,
	"select.line":      (*engine.Editor).SelectLine,
	"select.word":      (*engine.Editor).SelectWordAtCursor,

	"edit.newline":       func(ed *engine.Editor) { ed.InsertText("\n") },
	"edit.indent":        indent,
	"edit.outdent":       func(ed *engine.Editor) { ed.OutdentRegion("") },
	"edit.deleteLeft":    (*engine.Editor).DeleteLeft,
	"edit.deleteRight":   (*engine.Editor).DeleteRight,
	"edit.deleteLine":    (*engine.Editor).DeleteLine,
	"edit.toggleComment": (*engine.Editor).ToggleComment,
	"edit.moveLinesUp":   (*engine.Editor).MoveLinesUp,
	"edit.moveLinesDown": (*engine.Editor).MoveLinesDown,
}

// indent shifts the selected rows, or inserts one indent at the cursor.
func indent(ed *engine.Editor) {
	if ed.HasSelection() {
		ed.IndentRegion("")
		return
	}
	ed.InsertText(ed.Indent())
}

// pageDown scrolls one page and moves the cursor the same number of rows.
func pageDown(ed *engine.Editor) {
	pos := ed.CursorPosition()
	rows := ed.VisibleRowCount()
	ed.ScrollPageDown()
	ed.NavigateTo(pos.Row+rows, pos.Column)
}

func pageUp(ed *engine.Editor) {
	pos := ed.CursorPosition()
	rows := ed.VisibleRowCount()
	ed.ScrollPageUp()
	ed.NavigateTo(pos.Row-rows, pos.Column)
}
