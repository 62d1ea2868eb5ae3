// Package reveal decides when page elements play their entrance animation.
// Each element animates the first time it scrolls into view and never again.
package reveal

import (
	"sync"
	"time"
)

// Transition is the entrance animation of one element: it starts offset and
// transparent and settles at its resting position
type Transition struct {
	Duration time.Duration
	Delay    time.Duration
	OffsetX  int
	OffsetY  int
}

// Standard transitions used by the sections
var (
	FadeUp    = Transition{Duration: 800 * time.Millisecond, OffsetY: 30}
	FadeUpAlt = Transition{Duration: 800 * time.Millisecond, Delay: 200 * time.Millisecond, OffsetY: 30}
	FromLeft  = Transition{Duration: 800 * time.Millisecond, OffsetX: -30}
	FromRight = Transition{Duration: 800 * time.Millisecond, OffsetX: 30}
)

// Hero elements animate on load in a 0.3s cascade
var Hero = []Transition{
	{Duration: 800 * time.Millisecond, OffsetY: 30},
	{Duration: 800 * time.Millisecond, Delay: 300 * time.Millisecond, OffsetY: 20},
	{Duration: 800 * time.Millisecond, Delay: 600 * time.Millisecond, OffsetY: 20},
	{Duration: 800 * time.Millisecond, Delay: 900 * time.Millisecond, OffsetY: 20},
}

// Stagger delays t by 100ms per list position
func Stagger(t Transition, index int) Transition {
	t.Delay += time.Duration(index) * 100 * time.Millisecond
	return t
}

// Element is an observed block with its vertical extent on the page
type Element struct {
	ID         string
	Top        int
	Height     int
	Transition Transition
}

// DefaultThreshold is the fraction of an element that must be visible
const DefaultThreshold = 0.1

// Observer tracks which elements have been revealed
type Observer struct {
	mu        sync.Mutex
	threshold float64
	elements  []Element
	revealed  map[string]bool
}

// NewObserver creates an observer; threshold outside (0, 1] uses DefaultThreshold
func NewObserver(threshold float64) *Observer {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Observer{threshold: threshold, revealed: make(map[string]bool)}
}

// Observe starts tracking el
func (o *Observer) Observe(el Element) {
	o.mu.Lock()
	o.elements = append(o.elements, el)
	o.mu.Unlock()
}

// Update checks every unrevealed element against the visible band
// [scrollTop, scrollTop+viewportHeight) and returns the ids revealed now
func (o *Observer) Update(scrollTop, viewportHeight int) []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	var ids []string
	for _, el := range o.elements {
		if o.revealed[el.ID] {
			continue
		}
		if visibleFraction(el, scrollTop, viewportHeight) >= o.threshold {
			o.revealed[el.ID] = true
			ids = append(ids, el.ID)
		}
	}
	return ids
}

// Revealed reports whether id has played its animation
func (o *Observer) Revealed(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.revealed[id]
}

// visibleFraction returns how much of el's height lies inside the band. An
// element with no height counts as fully visible while its top is inside.
func visibleFraction(el Element, scrollTop, viewportHeight int) float64 {
	if el.Height <= 0 {
		if el.Top >= scrollTop && el.Top < scrollTop+viewportHeight {
			return 1
		}
		return 0
	}
	top := max(el.Top, scrollTop)
	bottom := min(el.Top+el.Height, scrollTop+viewportHeight)
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(el.Height)
}
