// Package buffer provides the position primitives and the line-oriented
// document the editor engine edits.
//
// The buffer package provides:
//
//   - Position and Range with row-major ordering
//   - Clip, which coerces any (row, column) pair into a valid position
//   - Document, a thread-safe line store with change notifications
//   - Row-level primitives: indent, outdent, line moves, bracket matching
//
// Basic usage:
//
//	doc := buffer.NewDocumentFromString("func main() {\n}")
//
//	// Insert text; the returned position is just after the new text
//	end := doc.Insert(buffer.Pos(1, 0), "\treturn\n")
//
//	// Remove a range; the returned position is its start
//	doc.Remove(buffer.NewRange(buffer.Pos(0, 0), buffer.Pos(0, 5)))
//
//	// Find the partner of the bracket before a position
//	match, ok := doc.FindMatchingBracket(buffer.Pos(0, 12))
//
// Positions:
//
// Rows and columns are 0-indexed. Columns count runes. A Position carries
// no document reference: it becomes meaningful only once clipped against a
// document, and must be clipped again after the document changes.
//
// Thread Safety:
//
// All Document methods are thread-safe. Change listeners run after the
// write lock is released, in registration order, on the goroutine that made
// the change.
package buffer
