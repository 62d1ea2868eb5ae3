// Package nav holds the navigation bar state: the link list and the
// collapsed-menu toggle used below the mobile breakpoint.
package nav

import (
	"net/url"
	"sync"

	"mukesh.dev/internal/models"
	"mukesh.dev/internal/viewport"
)

// Menu is the navigation bar. The zero value is closed with no links.
type Menu struct {
	mu    sync.Mutex
	items []models.NavItem
	open  bool
}

// NewMenu creates a closed menu over items
func NewMenu(items []models.NavItem) *Menu {
	return &Menu{items: append([]models.NavItem(nil), items...)}
}

// Items returns the links in display order
func (m *Menu) Items() []models.NavItem {
	return append([]models.NavItem(nil), m.items...)
}

// Toggle flips the menu and returns the new state
func (m *Menu) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = !m.open
	return m.open
}

// Open opens the menu
func (m *Menu) Open() {
	m.mu.Lock()
	m.open = true
	m.mu.Unlock()
}

// Close closes the menu
func (m *Menu) Close() {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
}

// IsOpen reports whether the collapsed menu is expanded
func (m *Menu) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// SelectLink handles a click on the link with the given href. The menu
// closes and the target anchor is returned; ok is false for unknown links.
func (m *Menu) SelectLink(href string) (anchor string, ok bool) {
	for _, item := range m.items {
		if item.Href == href {
			m.Close()
			return item.Anchor(), true
		}
	}
	return "", false
}

// MobileLinksVisible reports whether the collapsed link list is shown for vp
func (m *Menu) MobileLinksVisible(vp viewport.Viewport, breakpoint int) bool {
	return vp.IsMobile(breakpoint) && m.IsOpen()
}

// ToggleHref returns the link the menu button follows when scripts are
// disabled: the page with the menu toggled once from its current state
func (m *Menu) ToggleHref() string {
	next := Menu{open: m.IsOpen()}
	if next.Toggle() {
		return "?menu=open"
	}
	return "?menu=closed"
}

// SelectHref returns the link for item when scripts are disabled; following
// it selects the link and lands on its anchor with the menu closed
func SelectHref(item models.NavItem) string {
	return "/?goto=" + url.QueryEscape(item.Anchor())
}
