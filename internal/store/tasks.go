package store

import (
	"strings"

	"github.com/google/uuid"
)

// Tasks returns a copy of the freeform task collection.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// DailyTasks returns a copy of the daily task collection.
func (s *Store) DailyTasks() []DailyTask {
	out := make([]DailyTask, len(s.daily))
	copy(out, s.daily)
	return out
}

func (s *Store) AddTask(title, category string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t := Task{
		ID:          uuid.NewString(),
		Title:       title,
		Category:    category,
		CreatedDate: s.now(),
	}
	s.tasks = append(s.tasks, t)
	if err := s.saveBlob(keyTasks, s.tasks); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) AddDailyTask(title, timeOfDay string, priority Priority) (*DailyTask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(timeOfDay) == "" {
		return nil, ErrEmptyTime
	}
	if priority == "" {
		priority = PriorityMedium
	}

	t := DailyTask{
		ID:          uuid.NewString(),
		Title:       title,
		Time:        timeOfDay,
		Priority:    priority,
		CreatedDate: s.now(),
	}
	s.daily = append(s.daily, t)
	if err := s.saveBlob(keyDailyTasks, s.daily); err != nil {
		return nil, err
	}
	return &t, nil
}

// ToggleTask flips completion for the task with the given id. The completed
// flag and completedDate move together: set on completion, cleared when
// toggled back. An unknown id is a silent no-op.
func (s *Store) ToggleTask(id string, isDaily bool) error {
	if isDaily {
		for i := range s.daily {
			if s.daily[i].ID != id {
				continue
			}
			s.daily[i].Completed = !s.daily[i].Completed
			if s.daily[i].Completed {
				now := s.now()
				s.daily[i].CompletedDate = &now
			} else {
				s.daily[i].CompletedDate = nil
			}
			return s.saveBlob(keyDailyTasks, s.daily)
		}
		return nil
	}

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Completed = !s.tasks[i].Completed
		if s.tasks[i].Completed {
			now := s.now()
			s.tasks[i].CompletedDate = &now
		} else {
			s.tasks[i].CompletedDate = nil
		}
		return s.saveBlob(keyTasks, s.tasks)
	}
	return nil
}

func (s *Store) UpdateTask(id, title, category string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Title = title
			s.tasks[i].Category = category
			return s.saveBlob(keyTasks, s.tasks)
		}
	}
	return ErrNotFound
}

func (s *Store) UpdateDailyTask(id, title, timeOfDay string, priority Priority) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(timeOfDay) == "" {
		return ErrEmptyTime
	}
	for i := range s.daily {
		if s.daily[i].ID == id {
			s.daily[i].Title = title
			s.daily[i].Time = timeOfDay
			s.daily[i].Priority = priority
			return s.saveBlob(keyDailyTasks, s.daily)
		}
	}
	return ErrNotFound
}

// DeleteTask removes the task with the given id. Unknown ids are no-ops.
func (s *Store) DeleteTask(id string, isDaily bool) error {
	if isDaily {
		kept := s.daily[:0]
		for _, t := range s.daily {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		s.daily = kept
		return s.saveBlob(keyDailyTasks, s.daily)
	}

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.saveBlob(keyTasks, s.tasks)
}
