package nav

import (
	"slices"
	"sync"
)

// Navigator is the port through which views are read and programmatic
// navigation is requested. Implementations express navigation only by
// writing a new fragment (or path), never by mutating a selector.
type Navigator interface {
	Current() ViewSelector
	Navigate(ViewSelector)
}

// FragmentNavigator is a headless Navigator backed by a fragment string.
type FragmentNavigator struct {
	mu        sync.Mutex
	fragment  string
	writes    int
	listeners []func(ViewSelector)
}

// NewFragmentNavigator starts at the given fragment ("" means home).
func NewFragmentNavigator(fragment string) *FragmentNavigator {
	return &FragmentNavigator{fragment: fragment}
}

// Current resolves the fragment as it is now.
func (n *FragmentNavigator) Current() ViewSelector {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Resolve(n.fragment)
}

// Navigate writes the fragment for v and notifies listeners.
func (n *FragmentNavigator) Navigate(v ViewSelector) {
	n.SetFragment("#" + Fragment(v))
}

// SetFragment replaces the fragment, as a browser hashchange would.
func (n *FragmentNavigator) SetFragment(fragment string) {
	n.mu.Lock()
	n.fragment = fragment
	n.writes++
	sel := Resolve(fragment)
	listeners := slices.Clone(n.listeners)
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(sel)
	}
}

// Fragment returns the raw fragment string.
func (n *FragmentNavigator) Fragment() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fragment
}

// Writes counts fragment writes since construction.
func (n *FragmentNavigator) Writes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.writes
}

// OnChange registers fn for every fragment change. fn is invoked once
// immediately with the current selector so no change between construction
// and registration is missed.
func (n *FragmentNavigator) OnChange(fn func(ViewSelector)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	sel := Resolve(n.fragment)
	n.mu.Unlock()
	fn(sel)
}
