package mode

import (
	"path/filepath"
	"strings"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/tokenizer"
)

// Lines is the document access a mode needs to rewrite rows.
type Lines interface {
	buffer.Lines
	ReplaceRows(first, last int, lines []string)
}

// Mode is a language capability: how to tokenize rows and how to toggle
// comments. Editors hold exactly one mode and may swap it at runtime.
type Mode interface {
	// Name identifies the mode.
	Name() string
	// Tokenizer returns the row tokenizer for the language.
	Tokenizer() tokenizer.Tokenizer
	// ToggleCommentLines comments or uncomments the rows of r and returns
	// the column delta applied to every row.
	ToggleCommentLines(doc Lines, r buffer.Range) int
}

// Text is the plain-text mode. It has no comment syntax.
type Text struct{}

// Name implements Mode.
func (Text) Name() string { return "text" }

// Tokenizer implements Mode.
func (Text) Tokenizer() tokenizer.Tokenizer { return tokenizer.Plain{} }

// ToggleCommentLines implements Mode. It never changes the document.
func (Text) ToggleCommentLines(Lines, buffer.Range) int { return 0 }

// LineComment is a mode for languages with a line comment prefix.
type LineComment struct {
	name      string
	prefix    string
	tokenizer tokenizer.Tokenizer
}

// NewLineComment creates a line comment mode. The tokenizer is the chroma
// lexer for language.
func NewLineComment(name, language, prefix string) *LineComment {
	return &LineComment{
		name:      name,
		prefix:    prefix,
		tokenizer: tokenizer.NewChroma(language),
	}
}

// Name implements Mode.
func (m *LineComment) Name() string { return m.name }

// Prefix returns the comment prefix.
func (m *LineComment) Prefix() string { return m.prefix }

// Tokenizer implements Mode.
func (m *LineComment) Tokenizer() tokenizer.Tokenizer { return m.tokenizer }

// ToggleCommentLines implements Mode.
func (m *LineComment) ToggleCommentLines(doc Lines, r buffer.Range) int {
	return TogglePrefix(doc, r.Start.Row, r.End.Row, m.prefix)
}

// TogglePrefix uncomments rows first through last when every one of them
// starts with prefix after optional whitespace, and otherwise prefixes each
// row at column 0. It returns the column delta.
func TogglePrefix(doc Lines, first, last int, prefix string) int {
	if prefix == "" {
		return 0
	}
	first = max(first, 0)
	last = min(last, doc.Length()-1)
	if first > last {
		return 0
	}

	rows := make([]string, 0, last-first+1)
	commented := true
	for row := first; row <= last; row++ {
		line := doc.Line(row)
		rows = append(rows, line)
		if !strings.HasPrefix(strings.TrimLeft(line, " \t"), prefix) {
			commented = false
		}
	}

	n := buffer.RuneLen(prefix)
	if commented {
		for i, line := range rows {
			indent := len(line) - len(strings.TrimLeft(line, " \t"))
			rows[i] = line[:indent] + line[indent+len(prefix):]
		}
		doc.ReplaceRows(first, last, rows)
		return -n
	}

	for i, line := range rows {
		rows[i] = prefix + line
	}
	doc.ReplaceRows(first, last, rows)
	return n
}

// builtin describes a mode known by file extension.
type builtin struct {
	name     string
	language string
	prefix   string
}

var builtins = map[string]builtin{
	".go":   {"go", "go", "//"},
	".c":    {"c", "c", "//"},
	".h":    {"c", "c", "//"},
	".cpp":  {"cpp", "c++", "//"},
	".java": {"java", "java", "//"},
	".js":   {"javascript", "javascript", "//"},
	".ts":   {"typescript", "typescript", "//"},
	".rs":   {"rust", "rust", "//"},
	".py":   {"python", "python", "#"},
	".rb":   {"ruby", "ruby", "#"},
	".sh":   {"shell", "bash", "#"},
	".toml": {"toml", "toml", "#"},
	".yaml": {"yaml", "yaml", "#"},
	".yml":  {"yaml", "yaml", "#"},
	".lua":  {"lua", "lua", "--"},
	".sql":  {"sql", "sql", "--"},
}

// ForFile picks a built-in mode from the file extension, or Text.
func ForFile(path string) Mode {
	b, ok := builtins[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Text{}
	}
	return NewLineComment(b.name, b.language, b.prefix)
}

// ByName returns the built-in mode with the given name, or Text.
func ByName(name string) Mode {
	for _, b := range builtins {
		if b.name == name {
			return NewLineComment(b.name, b.language, b.prefix)
		}
	}
	return Text{}
}
