package config

import "sync"

// Store shares one Settings value between goroutines.
type Store struct {
	mu       *sync.Mutex
	settings *Settings
}

// NewStore wraps s. The store keeps its own copy.
func NewStore(s *Settings) *Store {
	if s == nil {
		s = DefaultSettings()
	}
	return &Store{mu: &sync.Mutex{}, settings: s.Clone()}
}

// Snapshot returns a copy of the current settings.
func (st *Store) Snapshot() *Settings {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.settings.Clone()
}

// Update runs fn with the settings locked.
func (st *Store) Update(fn func(s *Settings)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn(st.settings)
}

// Replace swaps in next. The graphical settings are marked changed when they differ from the
// current ones, and a pending change is never lost.
//
// Returns:
//   - bool: true if the graphical settings differ
func (st *Store) Replace(next *Settings) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := next.Clone()
	graphicsChanged := !n.Graphics.Equal(st.settings.Graphics)
	if graphicsChanged || st.settings.Graphics.HasChanged() {
		n.Graphics.MarkChanged()
	}
	st.settings = n
	return graphicsChanged
}
