package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/aura/internal/stats"
	"github.com/sadopc/aura/internal/store"
	"github.com/sadopc/aura/internal/timer"
)

const (
	minDurationMinutes = 5
	maxDurationMinutes = 120
	durationStep       = 5
	historyLimit       = 8
)

type focusModel struct {
	store  *store.Store
	timer  *timer.Timer
	width  int
	height int

	sessions []store.FocusSession
	goal     *store.FocusGoal

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	formTitle           *string
	formDailyTarget     *string
	formDuration        *string
	formSessionCount    *string
	formSessionDuration *string
}

func newFocusModel(s *store.Store, tm *timer.Timer) focusModel {
	title, target, duration, count, sessDur := "", "", "", "", ""
	return focusModel{
		store:               s,
		timer:               tm,
		formTitle:           &title,
		formDailyTarget:     &target,
		formDuration:        &duration,
		formSessionCount:    &count,
		formSessionDuration: &sessDur,
	}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

type focusDataMsg struct {
	sessions []store.FocusSession
	goal     *store.FocusGoal
}

func (f focusModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return focusDataMsg{
			sessions: f.store.Sessions(),
			goal:     f.store.ActiveGoal(),
		}
	}
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}

	switch msg := msg.(type) {
	case focusDataMsg:
		f.sessions = msg.sessions
		f.goal = msg.goal
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if f.timer.State() == timer.Running {
				f.timer.Pause()
			} else {
				f.timer.Start()
			}
			return f, nil

		case key.Matches(msg, keys.Reset):
			f.timer.Reset()
			return f, nil

		case key.Matches(msg, keys.Left):
			return f.adjustDuration(-durationStep)

		case key.Matches(msg, keys.Right):
			return f.adjustDuration(durationStep)

		case key.Matches(msg, keys.Goal):
			return f.showGoalForm("new", nil)

		case key.Matches(msg, keys.Edit):
			if f.goal != nil {
				return f.showGoalForm("edit", f.goal)
			}

		case key.Matches(msg, keys.Delete):
			if f.goal != nil {
				f.store.DeleteGoal(f.goal.ID)
				f.timer.SyncToGoal()
				return f, tea.Batch(f.refresh(), status("Goal deleted"))
			}
		}
	}
	return f, nil
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func (f focusModel) adjustDuration(delta int) (focusModel, tea.Cmd) {
	next := f.timer.TotalSeconds()/60 + delta
	if next < minDurationMinutes {
		next = minDurationMinutes
	}
	if next > maxDurationMinutes {
		next = maxDurationMinutes
	}
	if err := f.timer.SetDuration(next); err != nil {
		return f, status("Pause the timer before changing the duration")
	}
	return f, nil
}

func positiveInt(label string) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number", label)
		}
		return nil
	}
}

func (f focusModel) showGoalForm(formType string, goal *store.FocusGoal) (focusModel, tea.Cmd) {
	if goal != nil {
		*f.formTitle = goal.Title
		*f.formDailyTarget = strconv.Itoa(goal.DailyTarget)
		*f.formDuration = strconv.Itoa(goal.Duration)
		*f.formSessionCount = strconv.Itoa(goal.SessionCount)
		*f.formSessionDuration = strconv.Itoa(goal.SessionDuration)
	} else {
		*f.formTitle = ""
		*f.formDailyTarget = "100"
		*f.formDuration = "30"
		*f.formSessionCount = "4"
		*f.formSessionDuration = "25"
	}
	f.formType = formType

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal").Value(f.formTitle),
			huh.NewInput().Title("Daily target (minutes)").Value(f.formDailyTarget).Validate(positiveInt("daily target")),
			huh.NewInput().Title("Duration (days)").Value(f.formDuration).Validate(positiveInt("duration")),
			huh.NewInput().Title("Sessions per day").Value(f.formSessionCount).Validate(positiveInt("session count")),
			huh.NewInput().Title("Session length (minutes)").Value(f.formSessionDuration).Validate(positiveInt("session length")),
		),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f focusModel) updateForm(msg tea.Msg) (focusModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.formActive = false
			f.form = nil
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if ff, ok := form.(*huh.Form); ok {
		f.form = ff
	}

	if f.form.State == huh.StateCompleted {
		f.formActive = false
		target, _ := strconv.Atoi(strings.TrimSpace(*f.formDailyTarget))
		duration, _ := strconv.Atoi(strings.TrimSpace(*f.formDuration))
		count, _ := strconv.Atoi(strings.TrimSpace(*f.formSessionCount))
		sessDur, _ := strconv.Atoi(strings.TrimSpace(*f.formSessionDuration))

		if *f.formTitle != "" {
			if f.formType == "edit" && f.goal != nil {
				f.store.UpdateGoal(f.goal.ID, *f.formTitle, target, duration, count, sessDur)
			} else {
				f.store.AddGoal(*f.formTitle, target, duration, count, sessDur)
			}
			f.timer.SyncToGoal()
		}
		return f, f.refresh()
	}

	return f, cmd
}

func (f focusModel) view() string {
	if f.formActive && f.form != nil {
		title := titleStyle.Render("New Goal")
		if f.formType == "edit" {
			title = titleStyle.Render("Edit Goal")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", f.form.View())
		return panelStyle.Width(f.width - 4).Render(content)
	}

	w := f.width - 4

	timerPanel := f.renderTimerPanel(w)
	goalPanel := f.renderGoalPanel(w)
	historyPanel := f.renderHistoryPanel(w)

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, goalPanel, historyPanel)
}

func (f focusModel) renderTimerPanel(w int) string {
	clock := formatClock(f.timer.Minutes(), f.timer.Seconds())

	var timeDisplay, indicator string
	panel := panelStyle
	switch f.timer.State() {
	case timer.Running:
		timeDisplay = timerRunningStyle.Width(w - 6).Render(clock)
		indicator = successStyle.Render("●  FOCUSING")
		panel = activePanelStyle
	case timer.Paused:
		timeDisplay = timerPausedStyle.Width(w - 6).Render(clock)
		indicator = warningStyle.Render("⏸  PAUSED")
	default:
		timeDisplay = timerIdleStyle.Width(w - 6).Render(clock)
		indicator = mutedStyle.Render("Ready when you are")
	}

	bar := progressBar(int(f.timer.Progress()*100), min(w-10, 40))

	controls := mutedStyle.Render("s: start/pause  r: reset  ←/→: duration  g: goal")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		"",
		bar,
		"",
		controls,
	)
	return panel.Width(w).Render(content)
}

func (f focusModel) renderGoalPanel(w int) string {
	now := f.store.Now()

	if f.goal == nil {
		today := stats.TodayFocusSessions(f.sessions, now)
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Goal"),
			"",
			fmt.Sprintf("%s %d focus sessions today", mutedStyle.Render("No active goal."), today),
			mutedStyle.Render("Press g to set one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	g := f.goal
	done := stats.TodayCompletedSessions(f.sessions, g, now)
	pct := stats.GoalProgress(f.sessions, g, now)
	daysLeft := stats.DaysLeft(g, now)
	streak := stats.CurrentStreak(f.sessions, now)

	header := fmt.Sprintf("%s %s", titleStyle.Render("Goal"), highlightStyle.Render(g.Title))
	detail := mutedStyle.Render(fmt.Sprintf("%d × %s per day · %s daily target",
		g.SessionCount,
		stats.FormatMinutes(g.SessionDuration),
		stats.FormatMinutes(g.DailyTarget),
	))
	progress := fmt.Sprintf("%s  %d/%d sessions today",
		progressBar(pct, min(w-28, 30)), done, g.SessionCount)
	meta := fmt.Sprintf("%s %s   %s %s",
		mutedStyle.Render("Days left"), titleStyle.Render(fmt.Sprintf("%d", daysLeft)),
		mutedStyle.Render("Streak"), accentStyle.Render(fmt.Sprintf("%d days", streak)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		detail,
		"",
		progress,
		meta,
		"",
		mutedStyle.Render("e: edit goal  d: delete goal"),
	)
	return panelStyle.Width(w).Render(content)
}

func (f focusModel) renderHistoryPanel(w int) string {
	title := titleStyle.Render("Recent Sessions")

	if len(f.sessions) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No sessions yet. Finish a focus interval to log one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	now := f.store.Now()

	recent := make([]store.FocusSession, len(f.sessions))
	copy(recent, f.sessions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > historyLimit {
		recent = recent[:historyLimit]
	}

	var rows []string
	rows = append(rows, title)
	lastLabel := ""
	for _, s := range recent {
		label := dayLabel(s.Date, now)
		if label != lastLabel {
			rows = append(rows, "")
			rows = append(rows, highlightStyle.Render(label))
			lastLabel = label
		}
		rows = append(rows, fmt.Sprintf("  %s %s  %s",
			successStyle.Render("✓"),
			stats.FormatMinutes(s.Duration),
			mutedStyle.Render(timeAgo(s.Date, now)),
		))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
