// Package viewport provides the reference renderer for the editing engine:
// the visible row window, scroll policy, cursor echo, dirty row tracking
// and the decoration marker registry.
package viewport

import (
	"sync"

	"github.com/dshills/editcore/internal/engine/buffer"
)

// Viewport represents the visible portion of a document.
type Viewport struct {
	mu sync.RWMutex

	// First visible row and column
	topRow     int
	leftColumn int

	// Size in screen cells
	width  int
	height int

	// Scroll margins (keep cursor this far from edges)
	marginTop    int
	marginBottom int
	marginLeft   int
	marginRight  int

	// Row count source; nil means unbounded
	lines buffer.Lines

	cursor  buffer.Position
	dirty   dirtySpan
	markers map[string]Marker
}

type dirtySpan struct {
	start, end int
	set        bool
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	return &Viewport{
		width:   max(width, 1),
		height:  max(height, 1),
		markers: make(map[string]Marker),
	}
}

// SetLines attaches the document the viewport shows. Scrolling is bounded
// by its row count.
func (v *Viewport) SetLines(lines buffer.Lines) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lines = lines
	v.topRow = v.clampTop(v.topRow)
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// Resize updates the viewport size.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// FirstVisibleRow returns the top row.
func (v *Viewport) FirstVisibleRow() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topRow
}

// LastVisibleRow returns the last row inside the window, bounded by the
// document.
func (v *Viewport) LastVisibleRow() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bottomRow()
}

func (v *Viewport) rowCount() int {
	if v.lines == nil {
		return 0
	}
	return v.lines.Length()
}

// bottomRow returns the last visible row (internal, no lock).
func (v *Viewport) bottomRow() int {
	bottom := v.topRow + v.height - 1
	if n := v.rowCount(); n > 0 && bottom > n-1 {
		bottom = max(n-1, v.topRow)
	}
	return bottom
}

// clampTop bounds a top row to the document (internal, no lock).
func (v *Viewport) clampTop(row int) int {
	if row < 0 {
		return 0
	}
	if n := v.rowCount(); n > 0 && row >= n {
		return n - 1
	}
	return row
}

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftColumn
}

// IsRowVisible reports whether row is inside the window.
func (v *Viewport) IsRowVisible(row int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return row >= v.topRow && row <= v.bottomRow()
}

// ScrollToRow puts row at the top of the window.
func (v *Viewport) ScrollToRow(row int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topRow = v.clampTop(row)
}

// ScrollBy scrolls by a delta number of rows.
func (v *Viewport) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topRow = v.clampTop(v.topRow + delta)
}

// UpdateCursor records the cursor position.
func (v *Viewport) UpdateCursor(pos buffer.Position) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cursor = pos
}

// Cursor returns the last recorded cursor position.
func (v *Viewport) Cursor() buffer.Position {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cursor
}

// ScrollCursorIntoView scrolls minimally so the recorded cursor sits inside
// the margins.
func (v *Viewport) ScrollCursorIntoView() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reveal(v.cursor.Row, v.cursor.Column)
}

// reveal scrolls minimally to show row and column (internal, no lock).
// Returns true if scrolling occurred.
func (v *Viewport) reveal(row, col int) bool {
	m := v.effectiveMargins()
	top, left := v.topRow, v.leftColumn

	if row < top+m.Top {
		top = max(row-m.Top, 0)
	} else if row > top+v.height-1-m.Bottom {
		top = row - v.height + 1 + m.Bottom
	}

	screenCol := col - left
	if screenCol < m.Left {
		left = max(col-m.Left, 0)
	} else if screenCol > v.width-1-m.Right {
		left = col - v.width + 1 + m.Right
	}

	top = v.clampTop(top)
	if top == v.topRow && left == v.leftColumn {
		return false
	}
	v.topRow, v.leftColumn = top, left
	return true
}

// UpdateLines marks rows start through end as needing a repaint.
func (v *Viewport) UpdateLines(start, end int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if start > end {
		start, end = end, start
	}
	if !v.dirty.set {
		v.dirty = dirtySpan{start: start, end: end, set: true}
		return
	}
	v.dirty.start = min(v.dirty.start, start)
	v.dirty.end = max(v.dirty.end, end)
}

// TakeDirty returns and clears the accumulated dirty row span.
func (v *Viewport) TakeDirty() (start, end int, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	d := v.dirty
	v.dirty = dirtySpan{}
	return d.start, d.end, d.set
}

// RowToScreen converts a document row to a screen row, or -1 if hidden.
func (v *Viewport) RowToScreen(row int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if row < v.topRow || row > v.bottomRow() {
		return -1
	}
	return row - v.topRow
}

// ScreenToPosition converts screen coordinates to an unclipped document
// position.
func (v *Viewport) ScreenToPosition(screenRow, screenCol int) buffer.Position {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return buffer.Pos(v.topRow+max(screenRow, 0), v.leftColumn+max(screenCol, 0))
}
