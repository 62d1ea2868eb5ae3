package background

import (
	"errors"
	"fmt"
)

var (
	// ErrDisposed is returned by operations on a disposed effect or renderer
	ErrDisposed = errors.New("background: disposed")
	// ErrNotReady is returned when the effect has not finished loading
	ErrNotReady = errors.New("background: not ready")
	// ErrAlreadyMounted is returned by a second Mount
	ErrAlreadyMounted = errors.New("background: already mounted")
	// ErrNoWindow is returned when mounting without a host window
	ErrNoWindow = errors.New("background: no window to render into")
)

// LoadError wraps a renderer load failure
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("background: loading renderer: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
