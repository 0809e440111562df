package store

import "time"

// SessionType classifies a completed timer interval.
type SessionType string

const (
	SessionFocus SessionType = "focus"
	SessionBreak SessionType = "break"
)

// Priority of a daily task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a freeform to-do item. CompletedDate is set iff Completed is true.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	Completed     bool       `json:"completed"`
	CreatedDate   time.Time  `json:"createdDate"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

// DailyTask is a recurring item with a display time of day but no date.
// Completion is not reset automatically; it sticks until toggled off.
type DailyTask struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Time          string     `json:"time"` // "h:mm AM/PM" display string
	Priority      Priority   `json:"priority"`
	Completed     bool       `json:"completed"`
	CreatedDate   time.Time  `json:"createdDate"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

// FocusSession is one logged timer completion. The session log is
// append-only: there is no edit or delete, it drives all time statistics.
type FocusSession struct {
	ID        string      `json:"id"`
	Duration  int         `json:"duration"` // minutes
	Type      SessionType `json:"type"`
	Date      time.Time   `json:"date"`
	Completed bool        `json:"completed"`
}

// FocusGoal is a daily focus-session target. At most one goal is active at
// a time; AddGoal enforces this.
type FocusGoal struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	DailyTarget     int       `json:"dailyTarget"` // minutes per day
	Duration        int       `json:"duration"`    // days
	SessionCount    int       `json:"sessionCount"`
	SessionDuration int       `json:"sessionDuration"` // minutes per session
	StartDate       time.Time `json:"startDate"`
	Active          bool      `json:"active"`
	Created         time.Time `json:"created"`
}

// TimerSnapshot is the persisted view of the countdown timer, written on
// every running tick so a restart can restore the display.
type TimerSnapshot struct {
	Minutes      int         `json:"minutes"`
	Seconds      int         `json:"seconds"`
	IsRunning    bool        `json:"isRunning"`
	TotalSeconds int         `json:"totalSeconds"`
	Mode         SessionType `json:"mode"`
}

// AppState is the small resume-across-restart record.
type AppState struct {
	LastPage   string        `json:"lastPage"`
	TimerState TimerSnapshot `json:"timerState"`
}
