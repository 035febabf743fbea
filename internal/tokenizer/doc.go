// Package tokenizer produces syntax token spans for document rows.
//
// The engine treats tokenization as a black box: a Tokenizer maps one row
// to a sorted list of typed spans. Chroma wraps the chroma lexers; Plain
// produces nothing. Background keeps a row cache in step with a changing
// document and reports refreshed row spans so a renderer can repaint them.
package tokenizer
