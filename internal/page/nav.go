package page

import "sync"

// NavToggle is the open/closed state of the mobile menu.
type NavToggle struct {
	mu   sync.Mutex
	open bool
}

// Toggle flips the menu and returns the new state.
func (n *NavToggle) Toggle() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.open = !n.open
	return n.open
}

// Close forces the menu closed.
func (n *NavToggle) Close() {
	n.mu.Lock()
	n.open = false
	n.mu.Unlock()
}

// Open reports whether the menu is open.
func (n *NavToggle) Open() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.open
}
