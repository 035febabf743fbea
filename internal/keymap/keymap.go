package keymap

import "fmt"

// Binding maps a key name to an action name.
type Binding struct {
	// Keys is the key name, for example "Ctrl+Shift+Left".
	Keys string `toml:"keys" yaml:"keys"`

	// Action is the command to run, for example "select.wordLeft".
	Action string `toml:"action" yaml:"action"`

	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
}

// Keymap is a named list of bindings. A later binding for the same keys
// replaces an earlier one.
type Keymap struct {
	Name     string    `toml:"name" yaml:"name"`
	Bindings []Binding `toml:"bindings" yaml:"bindings"`
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// Add appends a binding.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// Validate checks that every binding names parseable keys and an action.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Action == "" {
			return fmt.Errorf("keymap %s: binding %d (%s): empty action", k.Name, i, b.Keys)
		}
		if _, err := ParseKeys(b.Keys); err != nil {
			return fmt.Errorf("keymap %s: binding %d: %w", k.Name, i, err)
		}
	}
	return nil
}

// Merge returns a keymap holding k's bindings followed by other's, so
// other wins where both bind the same keys.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	merged := &Keymap{
		Name:     k.Name,
		Bindings: make([]Binding, 0, len(k.Bindings)+len(other.Bindings)),
	}
	merged.Bindings = append(merged.Bindings, k.Bindings...)
	merged.Bindings = append(merged.Bindings, other.Bindings...)
	return merged
}

// Default returns the built-in bindings.
func Default() *Keymap {
	return &Keymap{
		Name: "default",
		Bindings: []Binding{
			// Movement
			{Keys: "Left", Action: "cursor.left"},
			{Keys: "Right", Action: "cursor.right"},
			{Keys: "Up", Action: "cursor.up"},
			{Keys: "Down", Action: "cursor.down"},
			{Keys: "Home", Action: "cursor.lineStart"},
			{Keys: "End", Action: "cursor.lineEnd"},
			{Keys: "Ctrl+Home", Action: "cursor.fileStart"},
			{Keys: "Ctrl+End", Action: "cursor.fileEnd"},
			{Keys: "Ctrl+Left", Action: "cursor.wordLeft"},
			{Keys: "Ctrl+Right", Action: "cursor.wordRight"},
			{Keys: "PageUp", Action: "cursor.pageUp"},
			{Keys: "PageDown", Action: "cursor.pageDown"},

			// Selection
			{Keys: "Shift+Left", Action: "select.left"},
			{Keys: "Shift+Right", Action: "select.right"},
			{Keys: "Shift+Up", Action: "select.up"},
			{Keys: "Shift+Down", Action: "select.down"},
			{Keys: "Shift+Home", Action: "select.lineStart"},
			{Keys: "Shift+End", Action: "select.lineEnd"},
			{Keys: "Ctrl+Shift+Home", Action: "select.fileStart"},
			{Keys: "Ctrl+Shift+End", Action: "select.fileEnd"},
			{Keys: "Ctrl+Shift+Left", Action: "select.wordLeft"},
			{Keys: "Ctrl+Shift+Right", Action: "select.wordRight"},
			{Keys: "Shift+PageUp", Action: "select.pageUp"},
			{Keys: "Shift+PageDown", Action: "select.pageDown"},
			{Keys: "Ctrl+A", Action: "select.all"},
			{Keys: "Ctrl+L", Action: "select.line"},

			// Editing
			{Keys: "Enter", Action: "edit.newline"},
			{Keys: "Tab", Action: "edit.indent"},
			{Keys: "Shift+Tab", Action: "edit.outdent"},
			{Keys: "Backspace", Action: "edit.deleteLeft"},
			{Keys: "Delete", Action: "edit.deleteRight"},
			{Keys: "Ctrl+D", Action: "edit.deleteLine"},
			{Keys: "Ctrl+/", Action: "edit.toggleComment"},
			{Keys: "Alt+Up", Action: "edit.moveLinesUp"},
			{Keys: "Alt+Down", Action: "edit.moveLinesDown"},

			// Clipboard
			{Keys: "Ctrl+C", Action: "clipboard.copy"},
			{Keys: "Ctrl+X", Action: "clipboard.cut"},
			{Keys: "Ctrl+V", Action: "clipboard.paste"},
		},
	}
}
