package tokenizer

import (
	"strings"
	"testing"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/sched"
)

// wordTokenizer emits one token per space-separated word, typed by the
// word itself, so tests can see which rows were tokenized.
type wordTokenizer struct {
	calls int
}

func (w *wordTokenizer) TokenizeLine(line string) []Token {
	w.calls++
	var tokens []Token
	col := 0
	for _, f := range strings.Split(line, " ") {
		if f != "" {
			tokens = append(tokens, Token{Start: col, End: col + len(f), Type: f})
		}
		col += len(f) + 1
	}
	return tokens
}

func TestPlain(t *testing.T) {
	if toks := (Plain{}).TokenizeLine("anything"); toks != nil {
		t.Errorf("expected no tokens, got %v", toks)
	}
}

func TestChromaKeyword(t *testing.T) {
	c := NewChroma("go")
	toks := c.TokenizeLine("func main() {")
	if len(toks) == 0 {
		t.Fatal("expected tokens")
	}
	first := toks[0]
	if first.Start != 0 || first.End != 4 {
		t.Errorf("expected first token [0,4), got [%d,%d)", first.Start, first.End)
	}
	if !strings.HasPrefix(first.Type, "Keyword") {
		t.Errorf("expected a keyword token, got %q", first.Type)
	}
	for i := 1; i < len(toks); i++ {
		if toks[i].Start < toks[i-1].End {
			t.Errorf("tokens overlap: %v then %v", toks[i-1], toks[i])
		}
	}
}

func TestChromaUnknownLanguageFallsBack(t *testing.T) {
	c := NewChroma("no-such-language")
	if c.Language() == "" {
		t.Error("fallback lexer should have a name")
	}
	_ = c.TokenizeLine("plain text")
}

func TestChromaForFile(t *testing.T) {
	c := NewChromaForFile("main.go")
	if c.Language() != "Go" {
		t.Errorf("expected Go lexer, got %q", c.Language())
	}
}

func TestBackgroundPass(t *testing.T) {
	doc := buffer.NewDocumentFromString("a b\nc\nd e f")
	clock := sched.NewManualScheduler()
	tok := &wordTokenizer{}

	var updates [][2]int
	bg := NewBackground(tok, func(start, end int) {
		updates = append(updates, [2]int{start, end})
	}, WithPassScheduler(clock))
	bg.SetLines(doc)

	if !bg.Pending() {
		t.Fatal("binding lines should schedule a pass")
	}
	clock.Advance(DefaultPassDelay)

	if len(updates) != 1 || updates[0] != [2]int{0, 2} {
		t.Fatalf("expected one update for rows 0-2, got %v", updates)
	}
	if got := bg.Tokens(2); len(got) != 3 || got[2].Type != "f" {
		t.Errorf("unexpected tokens for row 2: %v", got)
	}
}

func TestBackgroundCoalescesStarts(t *testing.T) {
	doc := buffer.NewDocumentFromString("r0\nr1\nr2\nr3")
	clock := sched.NewManualScheduler()
	tok := &wordTokenizer{}

	var updates [][2]int
	bg := NewBackground(tok, func(start, end int) {
		updates = append(updates, [2]int{start, end})
	}, WithPassScheduler(clock))
	bg.SetLines(doc)
	clock.Advance(DefaultPassDelay)
	updates = nil
	tok.calls = 0

	bg.Start(3)
	bg.Start(1)
	bg.Start(2)
	clock.Advance(DefaultPassDelay)

	if len(updates) != 1 || updates[0] != [2]int{1, 3} {
		t.Errorf("expected a single pass from row 1, got %v", updates)
	}
	if tok.calls != 3 {
		t.Errorf("expected rows 1-3 retokenized, got %d calls", tok.calls)
	}
}

func TestBackgroundTokensOnDemandWhileStale(t *testing.T) {
	doc := buffer.NewDocumentFromString("old")
	clock := sched.NewManualScheduler()
	bg := NewBackground(&wordTokenizer{}, nil, WithPassScheduler(clock))
	bg.SetLines(doc)
	clock.Advance(DefaultPassDelay)

	doc.Replace(buffer.NewRange(buffer.Pos(0, 0), buffer.Pos(0, 3)), "new")
	bg.Start(0)

	got := bg.Tokens(0)
	if len(got) != 1 || got[0].Type != "new" {
		t.Errorf("stale row should be tokenized on demand, got %v", got)
	}
}

func TestBackgroundSetTokenizer(t *testing.T) {
	doc := buffer.NewDocumentFromString("x y")
	clock := sched.NewManualScheduler()
	bg := NewBackground(Plain{}, nil, WithPassScheduler(clock))
	bg.SetLines(doc)
	clock.Advance(DefaultPassDelay)

	if got := bg.Tokens(0); got != nil {
		t.Fatalf("plain tokenizer should produce nothing, got %v", got)
	}

	bg.SetTokenizer(&wordTokenizer{})
	clock.Advance(DefaultPassDelay)
	if got := bg.Tokens(0); len(got) != 2 {
		t.Errorf("expected 2 tokens after swapping tokenizer, got %v", got)
	}
}

func TestBackgroundStop(t *testing.T) {
	clock := sched.NewManualScheduler()
	bg := NewBackground(Plain{}, func(int, int) { t.Error("stopped pass ran") }, WithPassScheduler(clock))
	bg.SetLines(buffer.NewDocument())
	bg.Stop()
	clock.Advance(DefaultPassDelay)
	if bg.Pending() {
		t.Error("stop should clear the pending pass")
	}
}
