package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal is a tcell screen with a theme.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	theme  Theme
}

// New creates a Terminal on the process's terminal.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen creates a Terminal on an existing screen, such as a
// simulation screen in tests.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, theme: DefaultTheme()}
}

// Init prepares the screen with mouse and bracketed paste enabled.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// SetTheme replaces the colors used by Draw.
func (t *Terminal) SetTheme(theme Theme) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.theme = theme
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// PollEvent blocks for the next event. It returns nil after Shutdown.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostFunc queues fn to come back from PollEvent as an interrupt event.
// It reports false when the event queue is full.
func (t *Terminal) PostFunc(fn func()) bool {
	return t.screen.PostEvent(tcell.NewEventInterrupt(fn)) == nil
}

// Sync redraws the whole screen, for example after a resize.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Sync()
}

// Beep rings the terminal bell, if it has one.
func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.screen.Beep()
}
