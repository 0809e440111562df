package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/aura/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewDaily
	viewFocus
)

var viewNames = []string{"Dashboard", "Tasks", "Daily", "Focus"}

// pageKeys are the persisted names of the views, stored in app state so the
// next start can reopen the same page.
var pageKeys = []string{"dashboard", "tasks", "daily", "focus"}

func viewForPage(page string) viewState {
	for i, k := range pageKeys {
		if k == page {
			return viewState(i)
		}
	}
	return viewDashboard
}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// sessionCompletedMsg is emitted when the countdown reaches zero.
type sessionCompletedMsg struct {
	sessionType store.SessionType
	minutes     int
}

type tasksChangedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatClock(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dayLabel renders a date for the history list: Today, Yesterday, or the
// full date.
func dayLabel(d, now time.Time) string {
	if sameDay(d, now) {
		return "Today"
	}
	if sameDay(d, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return d.Format("Mon, Jan 2")
}

// timeAgo renders a coarse relative timestamp for history entries.
func timeAgo(d, now time.Time) string {
	diff := now.Sub(d)
	mins := int(diff.Minutes())
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case mins < 60:
		return fmt.Sprintf("%d minutes ago", mins)
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case days == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
