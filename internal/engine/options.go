package engine

import (
	"time"

	"github.com/dshills/editcore/internal/engine/sched"
	"github.com/dshills/editcore/internal/logging"
	"github.com/dshills/editcore/internal/mode"
)

// DefaultIndent is used by indent commands given an empty indent string.
const DefaultIndent = "    "

// Option configures an Editor during creation.
type Option func(*Editor)

// WithDocument binds the editor to doc.
func WithDocument(doc Document) Option {
	return func(e *Editor) {
		e.pendingDoc = doc
	}
}

// WithMode sets the initial language mode.
func WithMode(m mode.Mode) Option {
	return func(e *Editor) {
		if m != nil {
			e.mode = m
		}
	}
}

// WithCursor sets the initial cursor. It is clipped against the document.
func WithCursor(row, column int) Option {
	return func(e *Editor) {
		e.cursor = Position{Row: row, Column: column}
	}
}

// WithScheduler sets the scheduler that runs deferred work.
func WithScheduler(s sched.Scheduler) Option {
	return func(e *Editor) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l.WithComponent("engine")
		}
	}
}

// WithIndent sets the default indent string.
func WithIndent(indent string) Option {
	return func(e *Editor) {
		if indent != "" {
			e.indent = indent
		}
	}
}

// WithBracketDelay sets the bracket highlight debounce delay.
func WithBracketDelay(d time.Duration) Option {
	return func(e *Editor) {
		if d >= 0 {
			e.bracketDelay = d
		}
	}
}
