package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/editcore/internal/engine"
	"github.com/dshills/editcore/internal/engine/bracket"
	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/renderer/viewport"
	"github.com/dshills/editcore/internal/tokenizer"
)

func newSim(t *testing.T, width, height int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	sim.SetSize(width, height)
	t.Cleanup(term.Shutdown)
	return term, sim
}

type cells struct {
	cells []tcell.SimCell
	width int
}

func contents(sim tcell.SimulationScreen) cells {
	c, w, _ := sim.GetContents()
	return cells{cells: c, width: w}
}

func (c cells) at(x, y int) tcell.SimCell {
	return c.cells[y*c.width+x]
}

func (c cells) runeAt(x, y int) rune {
	cell := c.at(x, y)
	if len(cell.Runes) == 0 {
		return ' '
	}
	return cell.Runes[0]
}

func (c cells) row(y, n int) string {
	rs := make([]rune, n)
	for x := range rs {
		rs[x] = c.runeAt(x, y)
	}
	return string(rs)
}

func TestDraw(t *testing.T) {
	term, sim := newSim(t, 20, 5)
	theme := DefaultTheme()

	doc := buffer.NewDocumentFromLines([]string{"hello", "\tx", "wide 世界"})
	vp := viewport.New(20, 4)
	vp.SetLines(doc)
	vp.UpdateCursor(buffer.Pos(1, 1))
	vp.AddMarker(buffer.NewRange(buffer.Pos(0, 1), buffer.Pos(0, 3)), engine.SelectionMarkerKind)
	vp.AddMarker(buffer.NewRange(buffer.Pos(0, 4), buffer.Pos(0, 5)), bracket.MarkerKind)

	term.Draw(Frame{
		Lines: doc,
		View:  vp,
		Tokens: func(row int) []tokenizer.Token {
			if row == 0 {
				return []tokenizer.Token{{Start: 0, End: 5, Type: "KeywordDeclaration"}}
			}
			return nil
		},
		Status:   "a.go 2:2",
		TabWidth: 4,
	})

	c := contents(sim)
	if got := c.row(0, 5); got != "hello" {
		t.Errorf("row 0 = %q, want hello", got)
	}
	if got := c.row(1, 5); got != "    x" {
		t.Errorf("row 1 = %q, want tab expanded", got)
	}
	if got := c.runeAt(5, 2); got != '世' {
		t.Errorf("cell (5,2) = %q, want 世", got)
	}
	if got := c.runeAt(7, 2); got != '界' {
		t.Errorf("cell (7,2) = %q, want 界", got)
	}
	if got := c.runeAt(0, 3); got != '~' {
		t.Errorf("filler = %q, want ~", got)
	}
	if got := c.row(4, 8); got != "a.go 2:2" {
		t.Errorf("status = %q", got)
	}

	if got, want := c.at(0, 0).Style, theme.Tokens["Keyword"]; got != want {
		t.Errorf("token cell style = %v, want keyword style", got)
	}
	for _, x := range []int{1, 2} {
		if got := c.at(x, 0).Style; got != theme.Selection {
			t.Errorf("cell (%d,0) style = %v, want selection", x, got)
		}
	}
	if got := c.at(4, 0).Style; got != theme.Bracket {
		t.Errorf("bracket cell style = %v, want bracket", got)
	}
	if got := c.at(19, 4).Style; got != theme.Status {
		t.Errorf("status padding style = %v, want status", got)
	}

	x, y, visible := sim.GetCursor()
	if !visible || x != 4 || y != 1 {
		t.Errorf("cursor = (%d,%d) visible=%v, want (4,1) visible", x, y, visible)
	}
}

func TestDrawSelectionCoversLineBreak(t *testing.T) {
	term, sim := newSim(t, 10, 3)
	theme := DefaultTheme()

	doc := buffer.NewDocumentFromLines([]string{"ab", "cd"})
	vp := viewport.New(10, 3)
	vp.SetLines(doc)
	vp.AddMarker(buffer.NewRange(buffer.Pos(0, 1), buffer.Pos(1, 0)), engine.SelectionMarkerKind)

	term.Draw(Frame{Lines: doc, View: vp})

	c := contents(sim)
	if got := c.at(2, 0).Style; got != theme.Selection {
		t.Errorf("line break cell style = %v, want selection", got)
	}
	if got := c.at(2, 1).Style; got == theme.Selection {
		t.Error("row past the selection end is highlighted")
	}
	if got := c.row(2, 1); got != "~" {
		t.Errorf("row 2 = %q, want filler without a status line", got)
	}
}

func TestDrawHidesCursorOffScreen(t *testing.T) {
	term, sim := newSim(t, 10, 3)

	lines := make([]string, 20)
	doc := buffer.NewDocumentFromLines(lines)
	vp := viewport.New(10, 2)
	vp.SetLines(doc)
	vp.UpdateCursor(buffer.Pos(15, 0))

	term.Draw(Frame{Lines: doc, View: vp, Status: "x"})

	if x, y, visible := sim.GetCursor(); visible && x >= 0 && y >= 0 {
		t.Errorf("cursor shown at (%d,%d) for a row outside the view", x, y)
	}
}

func TestDisplayColumn(t *testing.T) {
	tests := []struct {
		line      string
		left, col int
		want      int
	}{
		{"abc", 0, 2, 2},
		{"\tab", 0, 1, 4},
		{"\tab", 0, 2, 5},
		{"a\tb", 0, 2, 4},
		{"世a", 0, 1, 2},
		{"abc", 1, 0, -1},
		{"abcd", 1, 3, 2},
		{"ab", 0, 5, 2},
	}
	for _, tt := range tests {
		if got := displayColumn(tt.line, tt.left, tt.col, 4); got != tt.want {
			t.Errorf("displayColumn(%q, %d, %d) = %d, want %d", tt.line, tt.left, tt.col, got, tt.want)
		}
	}
}

func TestStyleForToken(t *testing.T) {
	theme := DefaultTheme()
	specific := tcell.StyleDefault.Foreground(tcell.ColorRed)
	theme.Tokens["LiteralStringDouble"] = specific

	tests := []struct {
		tokenType string
		want      tcell.Style
	}{
		{"LiteralStringDouble", specific},
		{"LiteralStringSingle", theme.Tokens["LiteralString"]},
		{"KeywordType", theme.Tokens["Keyword"]},
		{"Name", theme.Text},
		{"", theme.Text},
	}
	for _, tt := range tests {
		if got := theme.StyleForToken(tt.tokenType); got != tt.want {
			t.Errorf("StyleForToken(%q) = %v, want %v", tt.tokenType, got, tt.want)
		}
	}
}

func TestPostFunc(t *testing.T) {
	term, _ := newSim(t, 10, 3)

	ran := false
	if !term.PostFunc(func() { ran = true }) {
		t.Fatal("PostFunc() = false")
	}
	var ev *tcell.EventInterrupt
	for i := 0; i < 5 && ev == nil; i++ {
		ev, _ = term.PollEvent().(*tcell.EventInterrupt)
	}
	if ev == nil {
		t.Fatal("PollEvent() did not return the interrupt")
	}
	fn, ok := ev.Data().(func())
	if !ok {
		t.Fatalf("interrupt data = %T, want func()", ev.Data())
	}
	fn()
	if !ran {
		t.Error("posted func did not run")
	}
}
