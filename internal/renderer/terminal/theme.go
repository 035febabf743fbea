package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the styles Draw paints with.
type Theme struct {
	Text      tcell.Style
	Selection tcell.Style
	Bracket   tcell.Style
	Status    tcell.Style
	// Filler marks screen rows past the end of the document.
	Filler tcell.Style

	// Tokens maps token type names, or prefixes of them, to styles.
	// "LiteralString" covers "LiteralStringDouble" unless that has its
	// own entry.
	Tokens map[string]tcell.Style
}

// DefaultTheme returns a theme on the terminal's default colors.
func DefaultTheme() Theme {
	text := tcell.StyleDefault
	return Theme{
		Text:      text,
		Selection: text.Reverse(true),
		Bracket:   text.Underline(true).Bold(true),
		Status:    text.Reverse(true),
		Filler:    text.Foreground(tcell.ColorGray),
		Tokens: map[string]tcell.Style{
			"Keyword":       text.Foreground(tcell.ColorFuchsia).Bold(true),
			"NameFunction":  text.Foreground(tcell.ColorBlue),
			"NameBuiltin":   text.Foreground(tcell.ColorTeal),
			"LiteralString": text.Foreground(tcell.ColorGreen),
			"LiteralNumber": text.Foreground(tcell.ColorOlive),
			"Comment":       text.Foreground(tcell.ColorGray).Italic(true),
			"Operator":      text.Foreground(tcell.ColorSilver),
		},
	}
}

// StyleForToken returns the style of the longest Tokens key that prefixes
// tokenType, or Text.
func (t Theme) StyleForToken(tokenType string) tcell.Style {
	best, bestLen := t.Text, 0
	for name, style := range t.Tokens {
		if len(name) > bestLen && strings.HasPrefix(tokenType, name) {
			best, bestLen = style, len(name)
		}
	}
	return best
}
