package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Token is a typed span of one row. Start and End are rune columns,
// End exclusive.
type Token struct {
	Start int
	End   int
	Type  string
}

// Tokenizer turns a single row into tokens. Tokens must be sorted by Start
// and must not overlap; gaps are plain text.
type Tokenizer interface {
	TokenizeLine(line string) []Token
}

// Plain is a Tokenizer that produces no tokens.
type Plain struct{}

// TokenizeLine implements Tokenizer.
func (Plain) TokenizeLine(string) []Token { return nil }

// Chroma tokenizes rows with a chroma lexer.
type Chroma struct {
	lexer chroma.Lexer
}

// NewChroma returns a tokenizer for the named language, falling back to
// chroma's plain-text lexer when the language is unknown.
func NewChroma(language string) *Chroma {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Chroma{lexer: chroma.Coalesce(lexer)}
}

// NewChromaForFile picks a lexer from a file name.
func NewChromaForFile(filename string) *Chroma {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Chroma{lexer: chroma.Coalesce(lexer)}
}

// Language returns the lexer name.
func (c *Chroma) Language() string {
	return c.lexer.Config().Name
}

// TokenizeLine implements Tokenizer. Whitespace-only and newline tokens are
// dropped.
func (c *Chroma) TokenizeLine(line string) []Token {
	it, err := c.lexer.Tokenise(nil, line)
	if err != nil {
		return nil
	}

	var tokens []Token
	col := 0
	for _, tok := range it.Tokens() {
		value := strings.TrimRight(tok.Value, "\n")
		n := utf8.RuneCountInString(value)
		if n > 0 && tok.Type != chroma.Text && tok.Type != chroma.TextWhitespace {
			tokens = append(tokens, Token{Start: col, End: col + n, Type: tok.Type.String()})
		}
		col += n
	}
	return tokens
}
