// Package bracket implements the debounced matching-bracket highlighter.
//
// The matcher is a two-state machine. A cursor move while idle schedules a
// single lookup and moves to pending; moves while pending are coalesced.
// When the timer fires the matcher releases the previous highlight, looks
// up the partner of the bracket before the current cursor and, if one is
// found, adds a one-column "bracket" marker.
package bracket
