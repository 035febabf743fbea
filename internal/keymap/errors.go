package keymap

import "errors"

var (
	// ErrEmptyKeys is returned for a binding without a key name.
	ErrEmptyKeys = errors.New("empty key name")

	// ErrUnknownKey is returned for a key or modifier name that is not recognized.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownAction is returned for a binding to an action the handler does not have.
	ErrUnknownAction = errors.New("unknown action")
)
