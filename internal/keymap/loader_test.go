package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/editcore/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "keys.toml",
			content: `name = "mine"

[[bindings]]
keys = "ctrl+k"
action = "edit.deleteLine"
description = "kill line"
`,
		},
		{
			name: "yaml",
			file: "keys.yaml",
			content: `name: mine
bindings:
  - keys: ctrl+k
    action: edit.deleteLine
    description: kill line
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, err := LoadFile(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if km.Name != "mine" {
				t.Errorf("Name = %q, want mine", km.Name)
			}
			if len(km.Bindings) != 1 {
				t.Fatalf("len(Bindings) = %d, want 1", len(km.Bindings))
			}
			want := Binding{Keys: "ctrl+k", Action: "edit.deleteLine", Description: "kill line"}
			if km.Bindings[0] != want {
				t.Errorf("Bindings[0] = %+v, want %+v", km.Bindings[0], want)
			}

			h, err := NewHandler(Default().Merge(km))
			if err != nil {
				t.Fatalf("NewHandler() error = %v", err)
			}
			if b, ok := h.Lookup(ctrlEv('k')); !ok || b.Action != "edit.deleteLine" {
				t.Errorf("Lookup(Ctrl+K) = %+v, %v", b, ok)
			}
		})
	}
}

func TestLoadFileDefaultsName(t *testing.T) {
	km, err := LoadFile(writeFile(t, "keys.yml", "bindings:\n  - keys: f5\n    action: select.all\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if km.Name != "user" {
		t.Errorf("Name = %q, want user", km.Name)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"unsupported format", "keys.json", `{}`, config.ErrUnsupportedFormat},
		{"bad key", "keys.toml", "[[bindings]]\nkeys = \"Hyper+x\"\naction = \"select.all\"\n", ErrUnknownKey},
		{"empty keys", "keys.yaml", "bindings:\n  - action: select.all\n", ErrEmptyKeys},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("LoadFile() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFileSyntaxError(t *testing.T) {
	_, err := LoadFile(writeFile(t, "keys.toml", "bindings = [[["))
	if err == nil {
		t.Fatal("LoadFile() error = nil")
	}
	if !strings.Contains(err.Error(), "decoding keymap") {
		t.Errorf("error %q does not mention decoding", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "none.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want ErrNotExist", err)
	}
}

func TestValidateEmptyAction(t *testing.T) {
	km := NewKeymap("x").Add("Ctrl+K", "")
	if err := km.Validate(); err == nil || !strings.Contains(err.Error(), "empty action") {
		t.Errorf("Validate() error = %v, want empty action", err)
	}
}
