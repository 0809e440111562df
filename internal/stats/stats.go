// Package stats derives aggregate metrics from the raw task and
// focus-session records. Everything here is a pure function over snapshots
// of the collections; callers pass the current time explicitly so tests can
// pin the clock.
package stats

import (
	"math"
	"time"

	"github.com/sadopc/aura/internal/store"
)

// CategoryCount holds per-category completion counts.
type CategoryCount struct {
	Completed int
	Total     int
}

// MonthCount is one bucket of the 3-month completion histogram.
type MonthCount struct {
	Label     string // month abbreviation, e.g. "Jan"
	Completed int
}

// Growth compares completed counts of the current calendar month against
// the previous one.
type Growth struct {
	CurrentMonthCompleted int
	LastMonthCompleted    int
	GrowthPercentage      int
	IsPositive            bool
}

// Summary is the full statistics output rendered by the dashboard.
type Summary struct {
	Completed  int
	Pending    int
	Total      int
	Percentage int
	Categories map[string]CategoryCount
	Monthly    []MonthCount
	Growth     Growth
}

// Calculate computes the summary over the freeform and daily task
// collections combined. Order of the inputs is irrelevant.
func Calculate(tasks []store.Task, daily []store.DailyTask, now time.Time) Summary {
	completed := 0
	total := len(tasks) + len(daily)
	categories := make(map[string]CategoryCount)

	count := func(category string, done bool) {
		if category == "" {
			category = "Personal"
		}
		c := categories[category]
		c.Total++
		if done {
			c.Completed++
			completed++
		}
		categories[category] = c
	}

	for _, t := range tasks {
		count(t.Category, t.Completed)
	}
	for _, t := range daily {
		// Daily tasks carry no category; they fold into the default.
		count("", t.Completed)
	}

	percentage := 0
	if total > 0 {
		percentage = roundPct(float64(completed) / float64(total) * 100)
	}

	return Summary{
		Completed:  completed,
		Pending:    total - completed,
		Total:      total,
		Percentage: percentage,
		Categories: categories,
		Monthly:    monthlyData(tasks, daily, now),
		Growth:     growthMetrics(tasks, daily, now),
	}
}

// monthlyData buckets completed items into the three months ending at now.
// Matching is by month name only, not year: a completion from a different
// year lands in the same-named bucket. This mirrors the long-standing
// behavior of the dashboard and is kept deliberately.
func monthlyData(tasks []store.Task, daily []store.DailyTask, now time.Time) []MonthCount {
	buckets := make([]MonthCount, 0, 3)
	index := make(map[string]int, 3)
	for i := 2; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		label := m.Format("Jan")
		index[label] = len(buckets)
		buckets = append(buckets, MonthCount{Label: label})
	}

	add := func(completedDate *time.Time) {
		if completedDate == nil {
			return
		}
		if i, ok := index[completedDate.Format("Jan")]; ok {
			buckets[i].Completed++
		}
	}
	for _, t := range tasks {
		if t.Completed {
			add(t.CompletedDate)
		}
	}
	for _, t := range daily {
		if t.Completed {
			add(t.CompletedDate)
		}
	}
	return buckets
}

func growthMetrics(tasks []store.Task, daily []store.DailyTask, now time.Time) Growth {
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastStart := currentStart.AddDate(0, -1, 0)

	var current, last int
	add := func(completedDate *time.Time) {
		if completedDate == nil {
			return
		}
		switch {
		case !completedDate.Before(currentStart):
			current++
		case !completedDate.Before(lastStart):
			last++
		}
	}
	for _, t := range tasks {
		if t.Completed {
			add(t.CompletedDate)
		}
	}
	for _, t := range daily {
		if t.Completed {
			add(t.CompletedDate)
		}
	}

	pct := 0
	if last > 0 {
		pct = roundPct(float64(current-last) / float64(last) * 100)
	} else if current > 0 {
		pct = 100
	}

	return Growth{
		CurrentMonthCompleted: current,
		LastMonthCompleted:    last,
		GrowthPercentage:      pct,
		IsPositive:            pct >= 0,
	}
}

func roundPct(v float64) int {
	return int(math.Round(v))
}
