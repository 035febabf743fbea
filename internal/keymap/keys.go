package keymap

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Modifiers are written in this order in canonical key names.
var modifierNames = []struct {
	mod  tcell.ModMask
	name string
}{
	{tcell.ModCtrl, "Ctrl"},
	{tcell.ModAlt, "Alt"},
	{tcell.ModShift, "Shift"},
}

var modifierAliases = map[string]tcell.ModMask{
	"ctrl":    tcell.ModCtrl,
	"control": tcell.ModCtrl,
	"alt":     tcell.ModAlt,
	"meta":    tcell.ModAlt,
	"shift":   tcell.ModShift,
}

var specialKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyEscape:     "Esc",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// keyAliases maps lower-case names to canonical key names.
var keyAliases = map[string]string{
	"space":    "Space",
	"return":   "Enter",
	"bs":       "Backspace",
	"del":      "Delete",
	"ins":      "Insert",
	"escape":   "Esc",
	"pgup":     "PageUp",
	"pgdn":     "PageDown",
	"pageup":   "PageUp",
	"pagedown": "PageDown",
}

func init() {
	for _, name := range specialKeys {
		keyAliases[strings.ToLower(name)] = name
	}
}

// EventName returns the canonical name of a key event, for example "x",
// "Ctrl+A" or "Alt+Shift+Up".
func EventName(ev *tcell.EventKey) string {
	k, mod := ev.Key(), ev.Modifiers()

	var base string
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r >= 1 && r <= 26:
			r, mod = 'A'+r-1, mod|tcell.ModCtrl
		case r == 31:
			r, mod = '/', mod|tcell.ModCtrl
		}
		chorded := mod&(tcell.ModCtrl|tcell.ModAlt) != 0
		if !chorded {
			// Shift is already in the rune.
			mod &^= tcell.ModShift
		}
		base = runeName(r, chorded)
	case k == tcell.KeyBacktab:
		base, mod = "Tab", mod|tcell.ModShift
	case k == tcell.KeyCtrlUnderscore:
		// Terminals send Ctrl+/ as the unit separator.
		base, mod = "/", mod|tcell.ModCtrl
	case k == tcell.KeyCtrlSpace:
		base, mod = "Space", mod|tcell.ModCtrl
	default:
		if name, ok := specialKeys[k]; ok {
			base = name
		} else if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			base, mod = string(rune('A'+(k-tcell.KeyCtrlA))), mod|tcell.ModCtrl
		} else if name, ok := tcell.KeyNames[k]; ok {
			base = name
		} else {
			base = fmt.Sprintf("Key[%d]", int(k))
		}
	}
	return formatKey(mod, base)
}

// ParseKeys parses a key name such as "ctrl+shift+left" into its
// canonical form "Ctrl+Shift+Left". Modifiers may come in any order.
func ParseKeys(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyKeys
	}

	parts := strings.Split(s, "+")
	if s == "+" || strings.HasSuffix(s, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}

	var mod tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierAliases[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return "", fmt.Errorf("modifier %q in %q: %w", p, s, ErrUnknownKey)
		}
		mod |= m
	}

	key := strings.TrimSpace(parts[len(parts)-1])
	if name, ok := keyAliases[strings.ToLower(key)]; ok {
		return formatKey(mod, name), nil
	}
	if utf8.RuneCountInString(key) != 1 {
		return "", fmt.Errorf("key %q in %q: %w", key, s, ErrUnknownKey)
	}

	r, _ := utf8.DecodeRuneInString(key)
	chorded := mod&(tcell.ModCtrl|tcell.ModAlt) != 0
	if !chorded && mod&tcell.ModShift != 0 {
		mod &^= tcell.ModShift
		r = unicode.ToUpper(r)
	}
	return formatKey(mod, runeName(r, chorded)), nil
}

func runeName(r rune, chorded bool) string {
	if r == ' ' {
		return "Space"
	}
	if chorded {
		r = unicode.ToUpper(r)
	}
	return string(r)
}

func formatKey(mod tcell.ModMask, base string) string {
	var b strings.Builder
	for _, m := range modifierNames {
		if mod&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(base)
	return b.String()
}
