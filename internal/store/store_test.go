package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fixClock pins the store's clock to a constant instant.
func fixClock(s *Store, at time.Time) {
	s.now = func() time.Time { return at }
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/aura.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestFreshStoreDefaults(t *testing.T) {
	s := newTestStore(t)

	if len(s.Tasks()) != 0 || len(s.DailyTasks()) != 0 || len(s.Sessions()) != 0 || len(s.Goals()) != 0 {
		t.Fatal("fresh store should have empty collections")
	}
	st := s.State()
	if st.LastPage != "dashboard" {
		t.Fatalf("expected default page dashboard, got %q", st.LastPage)
	}
	if st.TimerState.Minutes != 25 || st.TimerState.TotalSeconds != 1500 {
		t.Fatalf("unexpected default timer snapshot: %+v", st.TimerState)
	}
	if st.TimerState.IsRunning {
		t.Fatal("default snapshot should not be running")
	}
}

func TestMalformedBlobFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/aura.db"

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.Exec(`INSERT INTO records (key, value) VALUES ('tasks', 'not json')`); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatalf("open with malformed blob should not fail: %v", err)
	}
	defer s2.Close()
	if len(s2.Tasks()) != 0 {
		t.Fatal("malformed blob should load as empty collection")
	}
}

// ============================================================
// Tasks
// ============================================================

func TestAddTask(t *testing.T) {
	s := newTestStore(t)

	task, err := s.AddTask("Write report", "Work")
	if err != nil {
		t.Fatal(err)
	}
	if task.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if task.Completed || task.CompletedDate != nil {
		t.Fatal("new task should be pending")
	}
	if task.CreatedDate.IsZero() {
		t.Fatal("CreatedDate should be set")
	}
	if len(s.Tasks()) != 1 {
		t.Fatal("task not stored")
	}
}

func TestAddTaskEmptyTitle(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddTask("   ", "Work"); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatal("store should be unchanged after validation failure")
	}
}

func TestToggleTaskPairsCompletedDate(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.AddTask("Read", "Personal")

	if err := s.ToggleTask(task.ID, false); err != nil {
		t.Fatal(err)
	}
	got := s.Tasks()[0]
	if !got.Completed || got.CompletedDate == nil {
		t.Fatal("completed flag and completedDate must be set together")
	}

	if err := s.ToggleTask(task.ID, false); err != nil {
		t.Fatal(err)
	}
	got = s.Tasks()[0]
	if got.Completed || got.CompletedDate != nil {
		t.Fatal("toggling off must clear completedDate")
	}

	// Double toggle restores the original field set.
	if got.ID != task.ID || got.Title != task.Title || got.Category != task.Category || !got.CreatedDate.Equal(task.CreatedDate) {
		t.Fatalf("task changed after toggle round-trip: %+v vs %+v", got, task)
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.AddTask("Read", "Personal")

	if err := s.ToggleTask("missing", false); err != nil {
		t.Fatal(err)
	}
	if s.Tasks()[0].Completed {
		t.Fatal("unknown id must not affect other tasks")
	}
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.AddTask("Read", "Personal")

	if err := s.UpdateTask(task.ID, "Read a book", "Learning"); err != nil {
		t.Fatal(err)
	}
	got := s.Tasks()[0]
	if got.Title != "Read a book" || got.Category != "Learning" {
		t.Fatalf("unexpected task after update: %+v", got)
	}

	if err := s.UpdateTask("missing", "x", "y"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.AddTask("A", "Work")
	s.AddTask("B", "Work")

	if err := s.DeleteTask(a.ID, false); err != nil {
		t.Fatal(err)
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "B" {
		t.Fatalf("unexpected tasks after delete: %+v", tasks)
	}

	// Deleting an unknown id is a no-op.
	if err := s.DeleteTask("missing", false); err != nil {
		t.Fatal(err)
	}
	if len(s.Tasks()) != 1 {
		t.Fatal("unknown id delete should change nothing")
	}
}

// ============================================================
// Daily tasks
// ============================================================

func TestAddDailyTask(t *testing.T) {
	s := newTestStore(t)

	task, err := s.AddDailyTask("Standup", "9:30 AM", PriorityHigh)
	if err != nil {
		t.Fatal(err)
	}
	if task.Time != "9:30 AM" || task.Priority != PriorityHigh {
		t.Fatalf("unexpected daily task: %+v", task)
	}
}

func TestAddDailyTaskValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddDailyTask("", "9:30 AM", PriorityLow); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := s.AddDailyTask("Standup", "  ", PriorityLow); !errors.Is(err, ErrEmptyTime) {
		t.Fatalf("expected ErrEmptyTime, got %v", err)
	}
	if len(s.DailyTasks()) != 0 {
		t.Fatal("store should be unchanged after validation failure")
	}
}

func TestDailyTaskDefaultPriority(t *testing.T) {
	s := newTestStore(t)
	task, err := s.AddDailyTask("Standup", "9:30 AM", "")
	if err != nil {
		t.Fatal(err)
	}
	if task.Priority != PriorityMedium {
		t.Fatalf("expected medium default, got %q", task.Priority)
	}
}

func TestToggleDailyTask(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.AddDailyTask("Standup", "9:30 AM", PriorityMedium)

	s.ToggleTask(task.ID, true)
	if got := s.DailyTasks()[0]; !got.Completed || got.CompletedDate == nil {
		t.Fatal("daily toggle must pair completed and completedDate")
	}

	// Completion is sticky: no automatic daily reset exists.
	s.ToggleTask(task.ID, true)
	if got := s.DailyTasks()[0]; got.Completed || got.CompletedDate != nil {
		t.Fatal("toggling off must clear completedDate")
	}
}

// ============================================================
// Focus sessions
// ============================================================

func TestAddFocusSession(t *testing.T) {
	s := newTestStore(t)
	at := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	fixClock(s, at)

	sess, err := s.AddFocusSession(25, SessionFocus)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Duration != 25 || sess.Type != SessionFocus || !sess.Completed {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if !sess.Date.Equal(at) {
		t.Fatalf("expected date %v, got %v", at, sess.Date)
	}
	if len(s.Sessions()) != 1 {
		t.Fatal("session not stored")
	}
}

// ============================================================
// Goals
// ============================================================

func TestAddGoalSingleActive(t *testing.T) {
	s := newTestStore(t)

	s.AddGoal("First", 100, 30, 4, 25)
	s.AddGoal("Second", 120, 14, 3, 40)
	s.AddGoal("Third", 50, 7, 2, 25)

	active := 0
	for _, g := range s.Goals() {
		if g.Active {
			active++
			if g.Title != "Third" {
				t.Fatalf("expected newest goal active, got %q", g.Title)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one active goal, got %d", active)
	}
}

func TestAddGoalValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddGoal("", 100, 30, 4, 25); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := s.AddGoal("G", 0, 30, 4, 25); !errors.Is(err, ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
	if _, err := s.AddGoal("G", 100, -1, 4, 25); !errors.Is(err, ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
}

func TestAddGoalDefaultSessionDuration(t *testing.T) {
	s := newTestStore(t)
	g, err := s.AddGoal("G", 100, 30, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if g.SessionDuration != 25 {
		t.Fatalf("expected default 25, got %d", g.SessionDuration)
	}
}

func TestUpdateGoal(t *testing.T) {
	s := newTestStore(t)
	g, _ := s.AddGoal("G", 100, 30, 4, 25)

	if err := s.UpdateGoal(g.ID, "Deep work", 200, 14, 5, 40); err != nil {
		t.Fatal(err)
	}
	got := s.Goals()[0]
	if got.Title != "Deep work" || got.SessionDuration != 40 || got.Duration != 14 {
		t.Fatalf("unexpected goal after update: %+v", got)
	}
	if !got.Active {
		t.Fatal("update must not clear active state")
	}

	if err := s.UpdateGoal("missing", "x", 1, 1, 1, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteGoalKeepsSessions(t *testing.T) {
	s := newTestStore(t)
	g, _ := s.AddGoal("G", 100, 30, 4, 25)
	s.AddFocusSession(25, SessionFocus)

	if err := s.DeleteGoal(g.ID); err != nil {
		t.Fatal(err)
	}
	if len(s.Goals()) != 0 {
		t.Fatal("goal not deleted")
	}
	if len(s.Sessions()) != 1 {
		t.Fatal("session log must survive goal deletion")
	}
	if s.ActiveGoal() != nil {
		t.Fatal("no goal should be active after delete")
	}
}

// ============================================================
// App state
// ============================================================

func TestAppStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/aura.db"

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.SetLastPage("focus")
	s.SaveTimerState(TimerSnapshot{Minutes: 12, Seconds: 34, IsRunning: true, TotalSeconds: 1500, Mode: SessionFocus})
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	st := s2.State()
	if st.LastPage != "focus" {
		t.Fatalf("expected focus, got %q", st.LastPage)
	}
	if st.TimerState.Minutes != 12 || st.TimerState.Seconds != 34 || !st.TimerState.IsRunning {
		t.Fatalf("unexpected snapshot: %+v", st.TimerState)
	}
}

// ============================================================
// Persistence round-trips
// ============================================================

func TestCollectionsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/aura.db"

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := s.AddTask("A", "Work")
	b, _ := s.AddTask("B", "Personal")
	s.ToggleTask(b.ID, false)
	s.AddDailyTask("Standup", "9:30 AM", PriorityHigh)
	s.AddFocusSession(25, SessionFocus)
	s.AddFocusSession(10, SessionBreak)
	s.AddGoal("G", 100, 30, 4, 25)
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	tasks := s2.Tasks()
	if len(tasks) != 2 || tasks[0].ID != a.ID || tasks[1].ID != b.ID {
		t.Fatalf("task order not preserved: %+v", tasks)
	}
	if !tasks[1].Completed || tasks[1].CompletedDate == nil {
		t.Fatal("completion state lost in round-trip")
	}
	if len(s2.DailyTasks()) != 1 || len(s2.Goals()) != 1 {
		t.Fatal("daily tasks or goals lost in round-trip")
	}
	sessions := s2.Sessions()
	if len(sessions) != 2 || sessions[0].Type != SessionFocus || sessions[1].Type != SessionBreak {
		t.Fatalf("session order not preserved: %+v", sessions)
	}
	if s2.ActiveGoal() == nil {
		t.Fatal("active goal lost in round-trip")
	}
}
