package stats

import (
	"fmt"
	"time"

	"github.com/sadopc/aura/internal/store"
)

// tolerance is the allowance, in minutes, when matching a session's
// duration against a goal's configured session length. A 24-minute session
// still counts toward a 25-minute goal.
const tolerance = 5

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TodayCompletedSessions counts focus sessions logged today that are long
// enough to count toward the goal: duration >= sessionDuration - 5, with no
// upper bound. This is the canonical "did this session count" predicate.
func TodayCompletedSessions(sessions []store.FocusSession, goal *store.FocusGoal, now time.Time) int {
	if goal == nil {
		return 0
	}
	n := 0
	for _, s := range sessions {
		if s.Type == store.SessionFocus && sameDay(s.Date, now) && s.Duration >= goal.SessionDuration-tolerance {
			n++
		}
	}
	return n
}

// GoalProgress is today's completion percentage against the goal's session
// target, clamped at 100. A nil goal yields 0.
func GoalProgress(sessions []store.FocusSession, goal *store.FocusGoal, now time.Time) int {
	if goal == nil || goal.SessionCount <= 0 {
		return 0
	}
	done := TodayCompletedSessions(sessions, goal, now)
	pct := roundPct(float64(done) / float64(goal.SessionCount) * 100)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// DaysLeft is the number of days until the goal window closes, clamped at
// zero. Expired goals stay in the list until explicitly deleted.
func DaysLeft(goal *store.FocusGoal, now time.Time) int {
	if goal == nil {
		return 0
	}
	end := goal.StartDate.AddDate(0, 0, goal.Duration)
	diff := end.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	if days < 0 {
		return 0
	}
	return days
}

// CurrentStreak walks backward day by day from today, counting consecutive
// calendar days with at least one session of any type. The scan stops at
// the first gap and is bounded by the earliest session date, so a skewed
// clock cannot loop forever.
func CurrentStreak(sessions []store.FocusSession, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	earliest := sessions[0].Date
	for _, s := range sessions[1:] {
		if s.Date.Before(earliest) {
			earliest = s.Date
		}
	}

	streak := 0
	day := now
	for !day.Before(earliest) || sameDay(day, earliest) {
		found := false
		for _, s := range sessions {
			if sameDay(s.Date, day) {
				found = true
				break
			}
		}
		if !found {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// TotalFocusMinutes sums the durations of all focus-type sessions.
func TotalFocusMinutes(sessions []store.FocusSession) int {
	total := 0
	for _, s := range sessions {
		if s.Type == store.SessionFocus {
			total += s.Duration
		}
	}
	return total
}

// TodayMinutes sums the durations of all sessions logged today, breaks
// included.
func TodayMinutes(sessions []store.FocusSession, now time.Time) int {
	total := 0
	for _, s := range sessions {
		if sameDay(s.Date, now) {
			total += s.Duration
		}
	}
	return total
}

// TodayFocusSessions counts today's focus-type sessions without applying
// any goal tolerance. Shown when no goal is active.
func TodayFocusSessions(sessions []store.FocusSession, now time.Time) int {
	n := 0
	for _, s := range sessions {
		if s.Type == store.SessionFocus && sameDay(s.Date, now) {
			n++
		}
	}
	return n
}

// FormatMinutes renders a minute count as "45m", "1h 5m" or "2d 3h".
func FormatMinutes(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours >= 24:
		days := hours / 24
		rem := hours % 24
		if rem > 0 {
			return fmt.Sprintf("%dd %dh", days, rem)
		}
		return fmt.Sprintf("%dd", days)
	case hours > 0:
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", mins)
}
