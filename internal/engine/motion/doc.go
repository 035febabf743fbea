// Package motion computes cursor motions against a document: character,
// row, file and word steps. Word motions use a character class table that
// splits text into word runs (letters, digits, underscore) and non-word
// runs, stopping at every token boundary.
//
// Word motions are not symmetric from inside a token: WordRight from the
// middle of "alpha" lands after the final "a", and WordLeft from there
// returns to the token start, not the original column.
package motion
