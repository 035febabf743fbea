// Package keymap turns terminal key events into editor commands.
//
// A Keymap is a named list of Bindings, each pairing a key name such as
// "Ctrl+Shift+Left" with an action name such as "select.wordLeft". A
// Handler resolves the bindings of one or more keymaps against its action
// table and dispatches tcell key events to an engine.Editor:
//
//	h, err := keymap.NewHandler(keymap.Default())
//	if err != nil {
//	    return err
//	}
//	if ev, ok := ev.(*tcell.EventKey); ok {
//	    h.Handle(ed, ev)
//	}
//
// Unbound printable keys insert their rune. Keymaps can be loaded from TOML
// or YAML files and merged over the defaults, later bindings winning.
package keymap
