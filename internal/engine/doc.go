// Package engine provides the editing state engine for editcore.
//
// An Editor owns one cursor and at most one selection over a document it
// references but does not own. Every cursor change funnels through
// MoveCursorTo, which clips the target against the document, so the cursor
// is always a valid position.
//
// # Collaborators
//
// The editor talks to the outside world only through interfaces:
//
//   - Document: the line store (buffer.Document implements it)
//   - Renderer: visible rows, scrolling and decoration markers
//     (renderer/viewport.Viewport implements it)
//   - mode.Mode: tokenizer and comment syntax, swappable with SetMode
//
// # Threading
//
// An Editor belongs to one goroutine. The only deferred work, the bracket
// highlight and the background tokenizer pass, is delivered through a
// sched.Scheduler; hosts with an event loop should pass one that runs
// callbacks on that loop (sched.LoopScheduler, or the tcell adapter in
// cmd/editcore). Separate editors share nothing.
//
// # Basic Usage
//
//	doc := buffer.NewDocumentFromString("func main() {\n}\n")
//	vp := viewport.New(80, 24)
//	vp.SetLines(doc)
//
//	ed, err := engine.New(vp, engine.WithDocument(doc))
//	if err != nil {
//		return err
//	}
//	defer ed.Close()
//
//	ed.NavigateLineEnd()
//	ed.InsertText(" // entry")
//	ed.SelectLine()
//	ed.ToggleComment()
package engine
