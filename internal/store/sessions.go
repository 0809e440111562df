package store

import "github.com/google/uuid"

// Sessions returns a copy of the focus-session log, in insertion order.
func (s *Store) Sessions() []FocusSession {
	out := make([]FocusSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// AddFocusSession appends a completed session to the log. duration is in
// minutes. Sessions are never edited or deleted after this point.
func (s *Store) AddFocusSession(duration int, typ SessionType) (*FocusSession, error) {
	sess := FocusSession{
		ID:        uuid.NewString(),
		Duration:  duration,
		Type:      typ,
		Date:      s.now(),
		Completed: true,
	}
	s.sessions = append(s.sessions, sess)
	if err := s.saveBlob(keySessions, s.sessions); err != nil {
		return nil, err
	}
	return &sess, nil
}
