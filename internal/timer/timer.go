// Package timer implements the focus countdown state machine. The timer is
// advanced by external 1-second ticks (the TUI owns the single tick loop);
// it never schedules anything itself.
package timer

import (
	"errors"

	"github.com/sadopc/aura/internal/store"
)

// State of the countdown. Completion is momentary: reaching 00:00 logs the
// session and immediately re-arms to Idle with a fresh duration.
type State int

const (
	Idle State = iota
	Running
	Paused
)

// Sessions at or above this configured length are classified as focus work
// and logged; anything shorter is a break and is not.
const focusThresholdSeconds = 20 * 60

// DefaultMinutes is the fallback duration when no goal is active.
const DefaultMinutes = 25

var ErrRunning = errors.New("timer is running")

// Completion describes a finished countdown.
type Completion struct {
	Type    store.SessionType
	Minutes int
	Logged  bool // true when a session record was appended
}

// Timer counts a configured duration down one second at a time and logs a
// focus session on natural completion. It is the sole owner of the
// transient countdown value; a snapshot is persisted through the store on
// every running tick so a restart can restore the display.
type Timer struct {
	store *store.Store

	state        State
	minutes      int
	seconds      int
	totalSeconds int
	mode         store.SessionType
	preset       int // last explicitly selected duration, minutes
}

// New creates an idle timer loaded with the active goal's session duration,
// or 25 minutes when no goal is set.
func New(s *store.Store) *Timer {
	t := &Timer{
		store:  s,
		mode:   store.SessionFocus,
		preset: DefaultMinutes,
	}
	t.load(t.defaultMinutes())
	return t
}

func (t *Timer) defaultMinutes() int {
	if g := t.store.ActiveGoal(); g != nil {
		return g.SessionDuration
	}
	return t.preset
}

func (t *Timer) load(minutes int) {
	t.minutes = minutes
	t.seconds = 0
	t.totalSeconds = minutes * 60
}

func (t *Timer) State() State { return t.state }
func (t *Timer) Minutes() int { return t.minutes }
func (t *Timer) Seconds() int { return t.seconds }

// TotalSeconds is the configured duration of the current countdown.
func (t *Timer) TotalSeconds() int { return t.totalSeconds }

// Progress is the elapsed fraction of the current countdown, 0..1.
func (t *Timer) Progress() float64 {
	if t.totalSeconds == 0 {
		return 0
	}
	remaining := t.minutes*60 + t.seconds
	return float64(t.totalSeconds-remaining) / float64(t.totalSeconds)
}

// Start begins or resumes the countdown. Starting an already-running timer
// is a no-op; the caller's tick loop is the only tick source, so repeated
// start/pause cycles cannot stack tickers.
func (t *Timer) Start() {
	if t.state == Running {
		return
	}
	t.state = Running
}

// Pause halts the countdown and persists a snapshot.
func (t *Timer) Pause() {
	if t.state != Running {
		return
	}
	t.state = Paused
	t.persist()
}

// Reset stops the countdown and reloads the active goal's duration, or the
// last selected preset when no goal is active.
func (t *Timer) Reset() {
	t.state = Idle
	t.load(t.defaultMinutes())
	t.persist()
}

// SetDuration changes the configured duration. Rejected while running.
func (t *Timer) SetDuration(minutes int) error {
	if t.state == Running {
		return ErrRunning
	}
	t.state = Idle
	t.preset = minutes
	t.load(minutes)
	t.persist()
	return nil
}

// SyncToGoal reloads the duration from the active goal. No-op while the
// countdown is running.
func (t *Timer) SyncToGoal() {
	if t.state == Running {
		return
	}
	t.state = Idle
	t.load(t.defaultMinutes())
}

// Tick advances the countdown by one second. On reaching 00:00 the finished
// interval is classified by its configured duration: twenty minutes or more
// is a focus session and is appended to the log, shorter is a break and is
// not. Either way the timer re-arms to Idle with a fresh duration and the
// completion is returned.
func (t *Timer) Tick() (*Completion, error) {
	if t.state != Running {
		return nil, nil
	}

	if t.seconds > 0 {
		t.seconds--
	} else if t.minutes > 0 {
		t.minutes--
		t.seconds = 59
	}

	if t.minutes == 0 && t.seconds == 0 {
		return t.complete()
	}

	if err := t.persist(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (t *Timer) complete() (*Completion, error) {
	minutes := t.totalSeconds / 60

	c := &Completion{Type: store.SessionBreak, Minutes: minutes}
	if t.totalSeconds >= focusThresholdSeconds {
		c.Type = store.SessionFocus
	}

	if c.Type == store.SessionFocus {
		if _, err := t.store.AddFocusSession(minutes, store.SessionFocus); err != nil {
			return c, err
		}
		c.Logged = true
	}

	// Re-arm immediately with a fresh duration.
	t.state = Idle
	t.load(t.defaultMinutes())
	if err := t.persist(); err != nil {
		return c, err
	}
	return c, nil
}

// Snapshot captures the countdown for persistence.
func (t *Timer) Snapshot() store.TimerSnapshot {
	return store.TimerSnapshot{
		Minutes:      t.minutes,
		Seconds:      t.seconds,
		IsRunning:    t.state == Running,
		TotalSeconds: t.totalSeconds,
		Mode:         t.mode,
	}
}

// Restore adopts a persisted snapshot. A snapshot captured while running is
// restored as Paused: a timer is never auto-resumed after a restart, since
// no wall-clock correction is applied for the time the app was closed.
func (t *Timer) Restore(snap store.TimerSnapshot) {
	if snap.TotalSeconds <= 0 {
		return
	}
	t.minutes = snap.Minutes
	t.seconds = snap.Seconds
	t.totalSeconds = snap.TotalSeconds
	if snap.Mode != "" {
		t.mode = snap.Mode
	}
	if snap.IsRunning {
		t.state = Paused
	} else {
		t.state = Idle
	}
}

func (t *Timer) persist() error {
	return t.store.SaveTimerState(t.Snapshot())
}
