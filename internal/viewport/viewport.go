// Package viewport models the browser window the page is laid out in: its
// size, the mobile breakpoint, and resize notifications.
package viewport

import (
	"fmt"
	"sync"
)

// DefaultBreakpoint is the width below which the navigation collapses (the
// `md` breakpoint)
const DefaultBreakpoint = 768

// Viewport is a window size in CSS pixels
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Aspect returns width/height
func (v Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 0
	}
	return float64(v.Width) / float64(v.Height)
}

// IsMobile reports whether the viewport is narrower than the breakpoint
func (v Viewport) IsMobile(breakpoint int) bool {
	return v.Width < breakpoint
}

// Validate checks both dimensions are positive
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d: dimensions must be positive", v.Width, v.Height)
	}
	return nil
}

// ResizeFunc is called with the new viewport after a resize
type ResizeFunc func(Viewport)

// Window is the host environment: it owns the current viewport and the set
// of resize listeners.
type Window struct {
	mu        sync.Mutex
	size      Viewport
	nextID    uint64
	listeners map[uint64]ResizeFunc
}

// NewWindow creates a window with the given initial size
func NewWindow(width, height int) (*Window, error) {
	vp := Viewport{Width: width, Height: height}
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	return &Window{size: vp, listeners: make(map[uint64]ResizeFunc)}, nil
}

// Size returns the current viewport
func (w *Window) Size() Viewport {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// OnResize subscribes fn to resize events. The returned function removes the
// subscription; calling it more than once is harmless.
func (w *Window) OnResize(fn ResizeFunc) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.listeners[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.listeners, id)
			w.mu.Unlock()
		})
	}
}

// ListenerCount returns the number of active resize subscriptions
func (w *Window) ListenerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}

// Resize changes the viewport and notifies every listener synchronously.
// Listeners run outside the window lock so they may unsubscribe.
func (w *Window) Resize(width, height int) error {
	vp := Viewport{Width: width, Height: height}
	if err := vp.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	w.size = vp
	fns := make([]ResizeFunc, 0, len(w.listeners))
	for _, fn := range w.listeners {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(vp)
	}
	return nil
}
