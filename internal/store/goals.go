package store

import (
	"strings"

	"github.com/google/uuid"
)

// Goals returns a copy of the goal collection.
func (s *Store) Goals() []FocusGoal {
	out := make([]FocusGoal, len(s.goals))
	copy(out, s.goals)
	return out
}

// ActiveGoal returns a copy of the currently active goal, or nil.
func (s *Store) ActiveGoal() *FocusGoal {
	for i := range s.goals {
		if s.goals[i].Active {
			g := s.goals[i]
			return &g
		}
	}
	return nil
}

// AddGoal creates a new active goal. All existing goals are deactivated
// first so that at most one goal is ever active.
func (s *Store) AddGoal(title string, dailyTarget, durationDays, sessionCount, sessionDuration int) (*FocusGoal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if sessionDuration == 0 {
		sessionDuration = 25
	}
	if dailyTarget <= 0 || durationDays <= 0 || sessionCount <= 0 || sessionDuration <= 0 {
		return nil, ErrInvalidGoal
	}

	for i := range s.goals {
		s.goals[i].Active = false
	}

	now := s.now()
	g := FocusGoal{
		ID:              uuid.NewString(),
		Title:           title,
		DailyTarget:     dailyTarget,
		Duration:        durationDays,
		SessionCount:    sessionCount,
		SessionDuration: sessionDuration,
		StartDate:       now,
		Active:          true,
		Created:         now,
	}
	s.goals = append(s.goals, g)
	if err := s.saveBlob(keyGoals, s.goals); err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGoal edits the mutable fields of an existing goal. Active state and
// start date are untouched.
func (s *Store) UpdateGoal(id, title string, dailyTarget, durationDays, sessionCount, sessionDuration int) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if dailyTarget <= 0 || durationDays <= 0 || sessionCount <= 0 || sessionDuration <= 0 {
		return ErrInvalidGoal
	}
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals[i].Title = title
			s.goals[i].DailyTarget = dailyTarget
			s.goals[i].Duration = durationDays
			s.goals[i].SessionCount = sessionCount
			s.goals[i].SessionDuration = sessionDuration
			return s.saveBlob(keyGoals, s.goals)
		}
	}
	return ErrNotFound
}

// DeleteGoal removes a goal. The session log is untouched. Unknown ids are
// no-ops.
func (s *Store) DeleteGoal(id string) error {
	kept := s.goals[:0]
	for _, g := range s.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.goals = kept
	return s.saveBlob(keyGoals, s.goals)
}
