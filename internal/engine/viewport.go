package engine

// Viewport queries, answered by the renderer.

func (e *Editor) FirstVisibleRow() int { return e.renderer.FirstVisibleRow() }
func (e *Editor) LastVisibleRow() int  { return e.renderer.LastVisibleRow() }

// IsRowVisible reports whether row is on screen.
func (e *Editor) IsRowVisible(row int) bool {
	return row >= e.FirstVisibleRow() && row <= e.LastVisibleRow()
}

// VisibleRowCount returns the number of rows on screen.
func (e *Editor) VisibleRowCount() int {
	return e.LastVisibleRow() - e.FirstVisibleRow() + 1
}

// PageDownRow is the row a page-down scroll puts at the top.
func (e *Editor) PageDownRow() int {
	return e.LastVisibleRow() - 1
}

// PageUpRow is the row a page-up scroll puts at the top.
func (e *Editor) PageUpRow() int {
	first, last := e.FirstVisibleRow(), e.LastVisibleRow()
	return first - (last - first) + 1
}

func (e *Editor) ScrollPageDown()     { e.ScrollToRow(e.PageDownRow()) }
func (e *Editor) ScrollPageUp()       { e.ScrollToRow(e.PageUpRow()) }
func (e *Editor) ScrollToRow(row int) { e.renderer.ScrollToRow(row) }
