package mode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/tokenizer"
)

func rows(first, last int) buffer.Range {
	return buffer.NewRange(buffer.Pos(first, 0), buffer.Pos(last, 0))
}

func TestTextMode(t *testing.T) {
	doc := buffer.NewDocumentFromLines([]string{"a", "b"})
	var m Mode = Text{}
	if m.Name() != "text" {
		t.Errorf("Name() = %q", m.Name())
	}
	if _, ok := m.Tokenizer().(tokenizer.Plain); !ok {
		t.Errorf("Tokenizer() = %T, want tokenizer.Plain", m.Tokenizer())
	}
	if got := m.ToggleCommentLines(doc, rows(0, 1)); got != 0 {
		t.Errorf("ToggleCommentLines() = %d, want 0", got)
	}
	if doc.Text() != "a\nb" {
		t.Errorf("document changed: %q", doc.Text())
	}
}

func TestTogglePrefix(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		first     int
		last      int
		wantDelta int
		want      string
	}{
		{"comment", []string{"a", "  b", "c"}, 0, 1, 2, "//a\n//  b\nc"},
		{"uncomment", []string{"//a", "  //b", "c"}, 0, 1, -2, "a\n  b\nc"},
		{"mixed comments all", []string{"//a", "b"}, 0, 1, 2, "////a\n//b"},
		{"clamped", []string{"a"}, 0, 5, 2, "//a"},
		{"empty span", []string{"a"}, 3, 5, 0, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buffer.NewDocumentFromLines(tt.lines)
			if got := TogglePrefix(doc, tt.first, tt.last, "//"); got != tt.wantDelta {
				t.Errorf("delta = %d, want %d", got, tt.wantDelta)
			}
			if doc.Text() != tt.want {
				t.Errorf("text = %q, want %q", doc.Text(), tt.want)
			}
		})
	}
}

func TestToggleRoundTrip(t *testing.T) {
	doc := buffer.NewDocumentFromLines([]string{"x := 1", "\ty := 2"})
	m := NewLineComment("go", "go", "//")
	if d := m.ToggleCommentLines(doc, rows(0, 1)); d != 2 {
		t.Fatalf("first toggle delta = %d", d)
	}
	if d := m.ToggleCommentLines(doc, rows(0, 1)); d != -2 {
		t.Fatalf("second toggle delta = %d", d)
	}
	if doc.Text() != "x := 1\n\ty := 2" {
		t.Errorf("text = %q", doc.Text())
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		path   string
		name   string
		prefix string
	}{
		{"main.go", "go", "//"},
		{"script.PY", "python", "#"},
		{"init.lua", "lua", "--"},
	}
	for _, tt := range tests {
		m, ok := ForFile(tt.path).(*LineComment)
		if !ok {
			t.Fatalf("ForFile(%q) is not a LineComment", tt.path)
		}
		if m.Name() != tt.name || m.Prefix() != tt.prefix {
			t.Errorf("ForFile(%q) = %s/%s, want %s/%s", tt.path, m.Name(), m.Prefix(), tt.name, tt.prefix)
		}
	}
	if _, ok := ForFile("README").(Text); !ok {
		t.Error("ForFile(README) should be Text")
	}
	if ByName("go").Name() != "go" {
		t.Error("ByName(go) should find the go mode")
	}
	if _, ok := ByName("nope").(Text); !ok {
		t.Error("ByName(nope) should be Text")
	}
}

func TestLuaLineComment(t *testing.T) {
	m, err := LoadLua("shell.lua", `
name = "sh"
language = "bash"
line_comment = "#"
`)
	if err != nil {
		t.Fatalf("LoadLua() error = %v", err)
	}
	defer m.Close()

	if m.Name() != "sh" {
		t.Errorf("Name() = %q", m.Name())
	}
	if _, ok := m.Tokenizer().(*tokenizer.Chroma); !ok {
		t.Errorf("Tokenizer() = %T", m.Tokenizer())
	}

	doc := buffer.NewDocumentFromLines([]string{"echo hi"})
	if d := m.ToggleCommentLines(doc, rows(0, 0)); d != 1 {
		t.Errorf("delta = %d, want 1", d)
	}
	if doc.Line(0) != "#echo hi" {
		t.Errorf("line = %q", doc.Line(0))
	}
}

func TestLuaToggleFunction(t *testing.T) {
	m, err := LoadLua("semi.lua", `
function toggle_comment(lines)
  local out = {}
  for i, l in ipairs(lines) do
    out[i] = ";; " .. l
  end
  return out, 3
end
`)
	if err != nil {
		t.Fatalf("LoadLua() error = %v", err)
	}
	defer m.Close()

	if m.Name() != "semi" {
		t.Errorf("Name() = %q, want semi", m.Name())
	}
	doc := buffer.NewDocumentFromLines([]string{"a", "b", "c"})
	if d := m.ToggleCommentLines(doc, rows(1, 2)); d != 3 {
		t.Errorf("delta = %d, want 3", d)
	}
	if doc.Text() != "a\n;; b\n;; c" {
		t.Errorf("text = %q", doc.Text())
	}
	if m.LastError() != nil {
		t.Errorf("LastError() = %v", m.LastError())
	}
}

func TestLuaToggleFailure(t *testing.T) {
	m, err := LoadLua("bad.lua", `
function toggle_comment(lines)
  return "nope", 1
end
`)
	if err != nil {
		t.Fatalf("LoadLua() error = %v", err)
	}
	defer m.Close()

	doc := buffer.NewDocumentFromLines([]string{"a"})
	if d := m.ToggleCommentLines(doc, rows(0, 0)); d != 0 {
		t.Errorf("delta = %d, want 0", d)
	}
	if doc.Line(0) != "a" {
		t.Errorf("line = %q", doc.Line(0))
	}
	var se *ScriptError
	if !errors.As(m.LastError(), &se) {
		t.Errorf("LastError() = %v, want ScriptError", m.LastError())
	}
}

func TestLuaToggleRejectsNonStringRows(t *testing.T) {
	m, err := LoadLua("tables.lua", `
function toggle_comment(lines)
  return { "# a", {} }, 2
end
`)
	if err != nil {
		t.Fatalf("LoadLua() error = %v", err)
	}
	defer m.Close()

	doc := buffer.NewDocumentFromLines([]string{"a", "b"})
	if d := m.ToggleCommentLines(doc, rows(0, 1)); d != 0 {
		t.Errorf("delta = %d, want 0", d)
	}
	assertLines(t, doc, []string{"a", "b"})
	var se *ScriptError
	if !errors.As(m.LastError(), &se) {
		t.Errorf("LastError() = %v, want ScriptError", m.LastError())
	}
}

func TestLuaToggleAcceptsNumberRows(t *testing.T) {
	m, err := LoadLua("numbers.lua", `
function toggle_comment(lines)
  return { 42 }, 0
end
`)
	if err != nil {
		t.Fatalf("LoadLua() error = %v", err)
	}
	defer m.Close()

	doc := buffer.NewDocumentFromLines([]string{"a"})
	m.ToggleCommentLines(doc, rows(0, 0))
	if m.LastError() != nil {
		t.Fatalf("LastError() = %v", m.LastError())
	}
	assertLines(t, doc, []string{"42"})
}

func TestLoadLuaTimesOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := LoadLuaContext(ctx, "spin.lua", "while true do end")
		done <- err
	}()

	select {
	case err := <-done:
		var se *ScriptError
		if !errors.As(err, &se) {
			t.Errorf("LoadLuaContext() error = %v, want ScriptError", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("endless top-level script was not interrupted")
	}
}

func TestLoadLuaErrors(t *testing.T) {
	if _, err := LoadLua("x.lua", "this is not lua"); err == nil {
		t.Error("syntax error should fail")
	}
	if _, err := LoadLua("x.lua", "toggle_comment = 5"); err == nil {
		t.Error("non-function toggle_comment should fail")
	}
	if _, err := LoadLua("x.lua", `os.exit(1)`); err == nil {
		t.Error("os library should not be available")
	}
	if _, err := LoadLuaFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadLuaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ini.lua")
	src := "function toggle_comment(lines) return lines, 0 end"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadLuaFile(path)
	if err != nil {
		t.Fatalf("LoadLuaFile() error = %v", err)
	}
	if m.Name() != "ini" {
		t.Errorf("Name() = %q, want ini", m.Name())
	}
	m.Close()

	doc := buffer.NewDocumentFromLines([]string{"a"})
	if d := m.ToggleCommentLines(doc, rows(0, 0)); d != 0 {
		t.Errorf("closed mode delta = %d, want 0", d)
	}
	if !errors.Is(m.LastError(), ErrModeClosed) {
		t.Errorf("LastError() = %v, want ErrModeClosed", m.LastError())
	}
}

func assertLines(t *testing.T, doc *buffer.Document, want []string) {
	t.Helper()
	if doc.Length() != len(want) {
		t.Fatalf("rows = %d, want %d", doc.Length(), len(want))
	}
	for i, w := range want {
		if got := doc.Line(i); got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}
}
