package store

// State returns the persisted app state loaded at startup.
func (s *Store) State() AppState {
	return s.state
}

// SetLastPage records the active page so the next start can restore it.
func (s *Store) SetLastPage(page string) error {
	s.state.LastPage = page
	return s.saveBlob(keyAppState, s.state)
}

// SaveTimerState persists a timer snapshot. Called on every running tick,
// so the countdown display survives a restart.
func (s *Store) SaveTimerState(snap TimerSnapshot) error {
	s.state.TimerState = snap
	return s.saveBlob(keyAppState, s.state)
}
