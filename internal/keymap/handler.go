package keymap

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/editcore/internal/engine"
	"github.com/dshills/editcore/internal/logging"
)

// Handler dispatches key events to editor commands. It is used from the
// goroutine that owns the editor.
type Handler struct {
	bindings  map[string]Binding
	actions   map[string]Action
	clipboard string
	log       *logging.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for dispatched commands.
func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l.WithComponent("keymap")
		}
	}
}

// WithAction adds or replaces a named action before bindings are resolved.
func WithAction(name string, fn Action) Option {
	return func(h *Handler) {
		h.actions[name] = fn
	}
}

// NewHandler resolves the bindings of km against the built-in actions.
func NewHandler(km *Keymap, opts ...Option) (*Handler, error) {
	h := &Handler{
		bindings: make(map[string]Binding, len(km.Bindings)),
		actions:  make(map[string]Action, len(builtinActions)+3),
		log:      logging.Nop(),
	}
	for name, fn := range builtinActions {
		h.actions[name] = fn
	}
	h.actions["clipboard.copy"] = h.copy
	h.actions["clipboard.cut"] = h.cut
	h.actions["clipboard.paste"] = h.paste

	for _, opt := range opts {
		opt(h)
	}

	for _, b := range km.Bindings {
		keys, err := ParseKeys(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("keymap %s: %w", km.Name, err)
		}
		if _, ok := h.actions[b.Action]; !ok {
			return nil, fmt.Errorf("keymap %s: binding %s to %q: %w", km.Name, keys, b.Action, ErrUnknownAction)
		}
		b.Keys = keys
		h.bindings[keys] = b
	}
	return h, nil
}

// Lookup returns the binding for ev.
func (h *Handler) Lookup(ev *tcell.EventKey) (Binding, bool) {
	b, ok := h.bindings[EventName(ev)]
	return b, ok
}

// Handle runs the command bound to ev. An unbound printable key without
// Ctrl or Alt inserts its rune. It reports whether ev was consumed.
func (h *Handler) Handle(ed *engine.Editor, ev *tcell.EventKey) bool {
	if b, ok := h.Lookup(ev); ok {
		h.log.Debug("%s -> %s", b.Keys, b.Action)
		h.actions[b.Action](ed)
		return true
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		ed.InsertText(string(ev.Rune()))
		return true
	}
	return false
}

// Run runs the named action.
func (h *Handler) Run(ed *engine.Editor, action string) error {
	fn, ok := h.actions[action]
	if !ok {
		return fmt.Errorf("%q: %w", action, ErrUnknownAction)
	}
	fn(ed)
	return nil
}

// Bindings returns the resolved bindings sorted by key name.
func (h *Handler) Bindings() []Binding {
	out := make([]Binding, 0, len(h.bindings))
	for _, b := range h.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// Clipboard returns the text held by the last copy or cut.
func (h *Handler) Clipboard() string {
	return h.clipboard
}

// SetClipboard replaces the clipboard text.
func (h *Handler) SetClipboard(text string) {
	h.clipboard = text
}

// copy and cut keep the clipboard when there is no selection.
func (h *Handler) copy(ed *engine.Editor) {
	if text := ed.CopyText(); text != "" {
		h.clipboard = text
	}
}

func (h *Handler) cut(ed *engine.Editor) {
	if text := ed.Cut(); text != "" {
		h.clipboard = text
	}
}

func (h *Handler) paste(ed *engine.Editor) {
	if h.clipboard != "" {
		ed.InsertText(h.clipboard)
	}
}
