// Package terminal paints an editor view onto a tcell screen.
//
// Terminal wraps a tcell.Screen and serializes access to it. Draw paints
// one Frame: the visible rows of a document as seen through a
// viewport.Viewport, colored by syntax tokens and overlaid with the
// viewport's markers (selection and bracket highlights), plus a status
// line on the last screen row.
//
// Callbacks posted with PostFunc come back out of PollEvent as
// *tcell.EventInterrupt, letting timers hand work to the goroutine that
// owns the editor.
package terminal
