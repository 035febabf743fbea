package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/editcore/internal/config"
	"github.com/dshills/editcore/internal/engine"
	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/sched"
	"github.com/dshills/editcore/internal/keymap"
	"github.com/dshills/editcore/internal/logging"
	"github.com/dshills/editcore/internal/mode"
	"github.com/dshills/editcore/internal/renderer/terminal"
	"github.com/dshills/editcore/internal/renderer/viewport"
)

const (
	doubleClickInterval = 400 * time.Millisecond
	wheelRows           = 3
	postRetryInterval   = 5 * time.Millisecond
)

// app owns the editor and runs the terminal event loop. Everything except
// the forwarding goroutines runs on the loop goroutine.
type app struct {
	cfg  config.Config
	log  *logging.Logger
	path string

	term  *terminal.Terminal
	vp    *viewport.Viewport
	doc   *buffer.Document
	ed    *engine.Editor
	keys  *keymap.Handler
	timer *sched.LoopScheduler

	modified bool
	message  string
	done     bool
	stopOnce sync.Once

	pressed   bool
	lastClick time.Time
	clickPos  buffer.Position
	clicks    int
}

func newApp(ctx context.Context, cfg config.Config, opts options, log *logging.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, path: opts.file}

	doc, err := openDocument(opts.file, cfg.Editor.TabWidth)
	if err != nil {
		return nil, err
	}
	a.doc = doc

	md, err := selectMode(cfg.Editor.Mode, opts.file)
	if err != nil {
		return nil, err
	}

	km := keymap.Default().Merge(keymap.NewKeymap("app").
		Add("Ctrl+S", "file.save").
		Add("Ctrl+Q", "app.quit"))
	if cfg.Editor.Keymap != "" {
		user, err := keymap.LoadFile(cfg.Editor.Keymap)
		if err != nil {
			return nil, err
		}
		km = km.Merge(user)
	}
	a.keys, err = keymap.NewHandler(km,
		keymap.WithLogger(log),
		keymap.WithAction("file.save", func(*engine.Editor) { a.save() }),
		keymap.WithAction("app.quit", func(*engine.Editor) { a.quit() }),
	)
	if err != nil {
		return nil, err
	}

	a.term, err = terminal.New()
	if err != nil {
		return nil, fmt.Errorf("creating terminal: %w", err)
	}
	if err := a.term.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	width, height := a.term.Size()
	a.vp = viewport.New(width, a.viewHeight(height))
	a.vp.SetLines(doc)
	a.vp.SetMargins(viewport.MarginConfig{Top: cfg.Viewport.MarginTop, Bottom: cfg.Viewport.MarginBottom})

	a.timer = sched.NewLoopScheduler(64)
	go a.forward(ctx)

	a.ed, err = engine.New(a.vp,
		engine.WithDocument(doc),
		engine.WithMode(md),
		engine.WithScheduler(a.timer),
		engine.WithLogger(log),
		engine.WithIndent(cfg.Editor.IndentString),
		engine.WithBracketDelay(cfg.Editor.BracketDelay.Std()),
	)
	if err != nil {
		a.term.Shutdown()
		return nil, err
	}
	a.ed.OnDocumentChange(func(int, int) { a.modified = true })

	if opts.configPath != "" {
		reload := func(cfg config.Config) {
			deliver(ctx, a.term.PostFunc, func() { a.applyConfig(cfg) }, log)
		}
		if err := config.Watch(ctx, opts.configPath, reload, config.WithWatchLogger(log)); err != nil {
			log.Warn("config watch disabled: %v", err)
		}
	}

	log.Info("opened %q with mode %s", opts.file, md.Name())
	return a, nil
}

// openDocument reads path, or returns an empty document for a new file.
func openDocument(path string, tabWidth int) (*buffer.Document, error) {
	if path == "" {
		return buffer.NewDocument(buffer.WithTabWidth(tabWidth)), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return buffer.NewDocument(buffer.WithTabWidth(tabWidth)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	text := string(data)
	return buffer.NewDocumentFromString(text, buffer.WithTabWidth(tabWidth), buffer.WithDetectedLineEnding(text)), nil
}

// selectMode loads a Lua script, looks up a named mode, or picks one by
// file extension.
func selectMode(name, path string) (mode.Mode, error) {
	switch {
	case strings.HasSuffix(name, ".lua"):
		m, err := mode.LoadLuaFile(name)
		if err != nil {
			return nil, err
		}
		return m, nil
	case name != "":
		return mode.ByName(name), nil
	default:
		return mode.ForFile(path), nil
	}
}

func (a *app) viewHeight(screenHeight int) int {
	h := screenHeight - 1
	if a.cfg.Viewport.Height > 0 && a.cfg.Viewport.Height < h {
		h = a.cfg.Viewport.Height
	}
	return max(h, 1)
}

// forward hands due timer callbacks to the event loop.
func (a *app) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-a.timer.C():
			deliver(ctx, a.term.PostFunc, fn, a.log)
		}
	}
}

// deliver posts fn with post, retrying while the event queue is full. The
// bracket matcher and tokenizer stay pending until their callback runs, so
// a due callback is never dropped. It returns false only if ctx ends first.
func deliver(ctx context.Context, post func(func()) bool, fn func(), log *logging.Logger) bool {
	for attempt := 0; !post(fn); attempt++ {
		if attempt == 0 {
			log.Debug("event queue full, retrying timer callback")
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(postRetryInterval):
		}
	}
	return true
}

func (a *app) run(ctx context.Context) error {
	for !a.done {
		a.draw()

		switch ev := a.term.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if fn, ok := ev.Data().(func()); ok {
				fn()
			}
		case *tcell.EventResize:
			width, height := ev.Size()
			a.vp.Resize(width, a.viewHeight(height))
			a.ed.Reclip()
			a.term.Sync()
		case *tcell.EventKey:
			a.message = ""
			if !a.keys.Handle(a.ed, ev) {
				a.log.Debug("unbound key %s", keymap.EventName(ev))
			}
		case *tcell.EventMouse:
			a.mouse(ev)
		}

		if err := ctx.Err(); err != nil {
			return nil
		}
	}
	return nil
}

func (a *app) draw() {
	a.vp.TakeDirty()
	a.term.Draw(terminal.Frame{
		Lines:    a.doc,
		View:     a.vp,
		Tokens:   a.ed.Tokens,
		Status:   a.status(),
		TabWidth: a.doc.TabWidth(),
	})
}

func (a *app) status() string {
	name := a.path
	if name == "" {
		name = "[scratch]"
	} else {
		name = filepath.Base(name)
	}
	if a.modified {
		name += " [+]"
	}
	pos := a.ed.CursorPosition()
	s := fmt.Sprintf(" %s  %s  %d:%d  %d rows", name, a.ed.Mode().Name(), pos.Row+1, pos.Column+1, a.doc.Length())
	if a.message != "" {
		s += "  " + a.message
	}
	return s
}

func (a *app) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.ed.ScrollToRow(a.ed.FirstVisibleRow() - wheelRows)
		return
	case buttons&tcell.WheelDown != 0:
		a.ed.ScrollToRow(a.ed.FirstVisibleRow() + wheelRows)
		return
	case buttons&tcell.Button1 == 0:
		a.pressed = false
		return
	}

	if y >= a.vp.Height() {
		return
	}
	pos := a.vp.ScreenToPosition(y, x)

	if a.pressed {
		a.ed.OnMouseDrag(pos)
		return
	}
	a.pressed = true

	now := time.Now()
	if now.Sub(a.lastClick) <= doubleClickInterval && pos == a.clickPos {
		a.clicks++
	} else {
		a.clicks = 1
	}
	a.lastClick, a.clickPos = now, pos

	switch a.clicks {
	case 1:
		a.ed.OnMouseDown(pos)
	case 2:
		a.ed.OnDoubleClick()
	default:
		a.ed.OnTripleClick()
		a.clicks = 0
	}
}

func (a *app) applyConfig(cfg config.Config) {
	a.cfg = cfg
	a.log.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	a.vp.SetMargins(viewport.MarginConfig{Top: cfg.Viewport.MarginTop, Bottom: cfg.Viewport.MarginBottom})
	_, height := a.term.Size()
	a.vp.Resize(a.vp.Width(), a.viewHeight(height))
	a.message = "config reloaded"
}

func (a *app) save() {
	if a.path == "" {
		a.message = "no file name"
		return
	}
	if err := os.WriteFile(a.path, []byte(a.doc.Text()), 0o644); err != nil {
		a.message = "save failed"
		a.log.Error("saving %s: %v", a.path, err)
		return
	}
	a.modified = false
	a.message = "saved"
	a.log.Info("saved %s", a.path)
}

func (a *app) quit() {
	a.done = true
}

func (a *app) shutdown() {
	a.stopOnce.Do(func() {
		a.ed.Close()
		if m, ok := a.ed.Mode().(*mode.Lua); ok {
			m.Close()
		}
		a.term.Shutdown()
	})
}
