package mode

import (
	"errors"
	"fmt"
)

// ErrModeClosed is returned when a closed script mode is used.
var ErrModeClosed = errors.New("mode closed")

// ScriptError reports a failure loading or running a mode script.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("mode script %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
