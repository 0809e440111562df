package timer

import (
	"errors"
	"testing"

	"github.com/sadopc/aura/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// tickN advances the timer n seconds, failing on any persistence error and
// returning the last completion observed.
func tickN(t *testing.T, tm *Timer, n int) *Completion {
	t.Helper()
	var last *Completion
	for i := 0; i < n; i++ {
		c, err := tm.Tick()
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if c != nil {
			last = c
		}
	}
	return last
}

// ============================================================
// Defaults and transitions
// ============================================================

func TestNewDefaultsTo25(t *testing.T) {
	tm := New(newTestStore(t))
	if tm.Minutes() != 25 || tm.Seconds() != 0 || tm.TotalSeconds() != 1500 {
		t.Fatalf("expected 25:00, got %02d:%02d", tm.Minutes(), tm.Seconds())
	}
	if tm.State() != Idle {
		t.Fatal("new timer should be idle")
	}
}

func TestNewUsesActiveGoalDuration(t *testing.T) {
	s := newTestStore(t)
	s.AddGoal("G", 200, 30, 4, 50)

	tm := New(s)
	if tm.Minutes() != 50 {
		t.Fatalf("expected goal duration 50, got %d", tm.Minutes())
	}
}

func TestTickOnlyWhileRunning(t *testing.T) {
	tm := New(newTestStore(t))

	tickN(t, tm, 3)
	if tm.Minutes() != 25 || tm.Seconds() != 0 {
		t.Fatal("idle timer must not count down")
	}

	tm.Start()
	tickN(t, tm, 1)
	if tm.Minutes() != 24 || tm.Seconds() != 59 {
		t.Fatalf("expected 24:59, got %02d:%02d", tm.Minutes(), tm.Seconds())
	}

	tm.Pause()
	if tm.State() != Paused {
		t.Fatal("expected paused state")
	}
	tickN(t, tm, 5)
	if tm.Minutes() != 24 || tm.Seconds() != 59 {
		t.Fatal("paused timer must not count down")
	}

	tm.Start()
	tickN(t, tm, 59)
	if tm.Minutes() != 24 || tm.Seconds() != 0 {
		t.Fatalf("expected 24:00, got %02d:%02d", tm.Minutes(), tm.Seconds())
	}
}

func TestSetDurationWhileRunning(t *testing.T) {
	tm := New(newTestStore(t))
	tm.Start()

	if err := tm.SetDuration(10); !errors.Is(err, ErrRunning) {
		t.Fatalf("expected ErrRunning, got %v", err)
	}

	tm.Pause()
	if err := tm.SetDuration(10); err != nil {
		t.Fatal(err)
	}
	if tm.Minutes() != 10 || tm.TotalSeconds() != 600 {
		t.Fatalf("expected 10:00, got %02d:%02d", tm.Minutes(), tm.Seconds())
	}
}

func TestResetReloadsGoalDuration(t *testing.T) {
	s := newTestStore(t)
	tm := New(s)
	tm.Start()
	tickN(t, tm, 90)

	s.AddGoal("G", 200, 30, 4, 50)
	tm.Reset()
	if tm.State() != Idle || tm.Minutes() != 50 || tm.Seconds() != 0 {
		t.Fatalf("expected idle 50:00, got %02d:%02d", tm.Minutes(), tm.Seconds())
	}
}

func TestResetFallsBackToPreset(t *testing.T) {
	tm := New(newTestStore(t))
	tm.SetDuration(45)
	tm.Start()
	tickN(t, tm, 10)

	tm.Reset()
	if tm.Minutes() != 45 {
		t.Fatalf("reset should reload last preset 45, got %d", tm.Minutes())
	}
}

// ============================================================
// Completion
// ============================================================

func TestFocusCompletionLogsSession(t *testing.T) {
	s := newTestStore(t)
	tm := New(s)
	tm.Start()

	c := tickN(t, tm, 1500)
	if c == nil {
		t.Fatal("expected completion after 1500 ticks from 25:00")
	}
	if c.Type != store.SessionFocus || c.Minutes != 25 || !c.Logged {
		t.Fatalf("unexpected completion: %+v", c)
	}

	sessions := s.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected exactly one session, got %d", len(sessions))
	}
	if sessions[0].Duration != 25 || sessions[0].Type != store.SessionFocus {
		t.Fatalf("unexpected session: %+v", sessions[0])
	}

	// Completed is momentary: the timer re-arms to idle at full duration.
	if tm.State() != Idle || tm.Minutes() != 25 || tm.Seconds() != 0 {
		t.Fatalf("expected re-armed idle 25:00, got %02d:%02d", tm.Minutes(), tm.Seconds())
	}
}

func TestBreakCompletionNotLogged(t *testing.T) {
	s := newTestStore(t)
	tm := New(s)
	tm.SetDuration(10)
	tm.Start()

	c := tickN(t, tm, 600)
	if c == nil {
		t.Fatal("expected completion after 600 ticks from 10:00")
	}
	if c.Type != store.SessionBreak || c.Logged {
		t.Fatalf("10 minute interval must classify as unlogged break: %+v", c)
	}
	if len(s.Sessions()) != 0 {
		t.Fatal("break completions must not be appended to the log")
	}
}

func TestTwentyMinuteBoundaryIsFocus(t *testing.T) {
	s := newTestStore(t)
	tm := New(s)
	tm.SetDuration(20)
	tm.Start()

	c := tickN(t, tm, 1200)
	if c == nil || c.Type != store.SessionFocus {
		t.Fatalf("20 minutes is focus, got %+v", c)
	}
}

func TestCompletionReArmsToGoalDuration(t *testing.T) {
	s := newTestStore(t)
	s.AddGoal("G", 120, 30, 4, 30)
	tm := New(s)
	tm.Start()

	tickN(t, tm, 30*60)
	if tm.Minutes() != 30 || tm.State() != Idle {
		t.Fatalf("expected re-arm to goal's 30:00, got %02d:%02d", tm.Minutes(), tm.Seconds())
	}
}

// ============================================================
// Snapshots
// ============================================================

func TestTickPersistsSnapshot(t *testing.T) {
	s := newTestStore(t)
	tm := New(s)
	tm.Start()
	tickN(t, tm, 61)

	snap := s.State().TimerState
	if snap.Minutes != 23 || snap.Seconds != 59 {
		t.Fatalf("expected persisted 23:59, got %02d:%02d", snap.Minutes, snap.Seconds)
	}
	if !snap.IsRunning {
		t.Fatal("snapshot of a running timer must record isRunning")
	}
}

func TestPausePersistsSnapshot(t *testing.T) {
	s := newTestStore(t)
	tm := New(s)
	tm.Start()
	tickN(t, tm, 10)
	tm.Pause()

	snap := s.State().TimerState
	if snap.IsRunning {
		t.Fatal("paused snapshot must not record isRunning")
	}
	if snap.Minutes != 24 || snap.Seconds != 50 {
		t.Fatalf("expected persisted 24:50, got %02d:%02d", snap.Minutes, snap.Seconds)
	}
}

func TestRestoreNeverResumes(t *testing.T) {
	s := newTestStore(t)
	tm := New(s)

	tm.Restore(store.TimerSnapshot{
		Minutes: 12, Seconds: 34, IsRunning: true,
		TotalSeconds: 1500, Mode: store.SessionFocus,
	})

	if tm.State() != Paused {
		t.Fatal("a running snapshot must restore as paused")
	}
	if tm.Minutes() != 12 || tm.Seconds() != 34 || tm.TotalSeconds() != 1500 {
		t.Fatalf("display not restored: %02d:%02d", tm.Minutes(), tm.Seconds())
	}

	// Paused restore can be resumed explicitly and keeps counting.
	tm.Start()
	tickN(t, tm, 1)
	if tm.Minutes() != 12 || tm.Seconds() != 33 {
		t.Fatalf("expected 12:33, got %02d:%02d", tm.Minutes(), tm.Seconds())
	}
}

func TestRestoreIgnoresEmptySnapshot(t *testing.T) {
	tm := New(newTestStore(t))
	tm.Restore(store.TimerSnapshot{})
	if tm.Minutes() != 25 || tm.TotalSeconds() != 1500 {
		t.Fatal("zero-value snapshot must be ignored")
	}
}

func TestProgress(t *testing.T) {
	tm := New(newTestStore(t))
	if tm.Progress() != 0 {
		t.Fatalf("fresh timer progress should be 0, got %f", tm.Progress())
	}
	tm.Start()
	tickN(t, tm, 750)
	if p := tm.Progress(); p < 0.49 || p > 0.51 {
		t.Fatalf("expected ~0.5 halfway, got %f", p)
	}
}
