package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/editcore/internal/engine"
	"github.com/dshills/editcore/internal/engine/bracket"
	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/renderer/viewport"
	"github.com/dshills/editcore/internal/tokenizer"
)

// DefaultTabWidth is used when a Frame has no tab width.
const DefaultTabWidth = 4

// Frame is what one Draw paints.
type Frame struct {
	Lines  buffer.Lines
	View   *viewport.Viewport
	Tokens func(row int) []tokenizer.Token
	// Status is written on the last screen row. Empty leaves that row to
	// the document.
	Status   string
	TabWidth int
}

// Draw paints f and shows the screen.
func (t *Terminal) Draw(f Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	rows := height
	if f.Status != "" {
		rows--
	}
	tabWidth := f.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	t.screen.Clear()
	markers := f.View.Markers()
	first, left := f.View.FirstVisibleRow(), f.View.LeftColumn()

	for y := 0; y < rows; y++ {
		row := first + y
		if row >= f.Lines.Length() {
			t.screen.SetContent(0, y, '~', nil, t.theme.Filler)
			continue
		}
		var tokens []tokenizer.Token
		if f.Tokens != nil {
			tokens = f.Tokens(row)
		}
		t.drawRow(y, width, row, left, tabWidth, f.Lines.Line(row), tokens, markers)
	}

	if f.Status != "" {
		t.drawStatus(height-1, width, f.Status)
	}

	cursor := f.View.Cursor()
	y := cursor.Row - first
	x := displayColumn(f.Lines.Line(cursor.Row), left, cursor.Column, tabWidth)
	if y >= 0 && y < rows && x >= 0 && x < width {
		t.screen.ShowCursor(x, y)
	} else {
		t.screen.HideCursor()
	}

	t.screen.Show()
}

func (t *Terminal) drawRow(y, width, row, left, tabWidth int, line string, tokens []tokenizer.Token, markers []viewport.Marker) {
	x, col := 0, 0
	for _, r := range line {
		if col < left {
			col++
			continue
		}
		if x >= width {
			return
		}

		style := t.cellStyle(row, col, tokens, markers)
		if r == '\t' {
			n := tabWidth - x%tabWidth
			for i := 0; i < n && x < width; i++ {
				t.screen.SetContent(x, y, ' ', nil, style)
				x++
			}
		} else {
			t.screen.SetContent(x, y, r, nil, style)
			x += runeWidth(r)
		}
		col++
	}

	// A selection running past the end of the row covers its line break.
	if x < width && t.selected(row, col, markers) {
		t.screen.SetContent(x, y, ' ', nil, t.theme.Selection)
	}
}

func (t *Terminal) drawStatus(y, width int, status string) {
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		t.screen.SetContent(x, y, r, nil, t.theme.Status)
		x += runeWidth(r)
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, y, ' ', nil, t.theme.Status)
	}
}

// cellStyle layers the token style under the marker styles.
func (t *Terminal) cellStyle(row, col int, tokens []tokenizer.Token, markers []viewport.Marker) tcell.Style {
	style := t.theme.Text
	for _, tok := range tokens {
		if col >= tok.Start && col < tok.End {
			style = t.theme.StyleForToken(tok.Type)
			break
		}
	}

	pos := buffer.Pos(row, col)
	for _, m := range markers {
		if !m.Range.Contains(pos) {
			continue
		}
		switch m.Kind {
		case engine.SelectionMarkerKind:
			style = t.theme.Selection
		case bracket.MarkerKind:
			style = t.theme.Bracket
		}
	}
	return style
}

func (t *Terminal) selected(row, col int, markers []viewport.Marker) bool {
	pos := buffer.Pos(row, col)
	for _, m := range markers {
		if m.Kind == engine.SelectionMarkerKind && m.Range.Contains(pos) {
			return true
		}
	}
	return false
}

// displayColumn returns the screen x of rune column col in line scrolled
// left by left runes, or -1 when col is scrolled off.
func displayColumn(line string, left, col, tabWidth int) int {
	if col < left {
		return -1
	}
	x, c := 0, 0
	for _, r := range line {
		if c >= col {
			break
		}
		if c >= left {
			if r == '\t' {
				x += tabWidth - x%tabWidth
			} else {
				x += runeWidth(r)
			}
		}
		c++
	}
	return x
}

func runeWidth(r rune) int {
	if w := uniseg.StringWidth(string(r)); w > 0 {
		return w
	}
	return 1
}
