package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/aura/internal/stats"
	"github.com/sadopc/aura/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	summary  stats.Summary
	sessions []store.FocusSession
	goal     *store.FocusGoal

	chart barchart.Model
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store: s,
		chart: barchart.New(30, 8),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	summary  stats.Summary
	sessions []store.FocusSession
	goal     *store.FocusGoal
}

func (d dashboardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return dashboardDataMsg{
			summary:  stats.Calculate(d.store.Tasks(), d.store.DailyTasks(), d.store.Now()),
			sessions: d.store.Sessions(),
			goal:     d.store.ActiveGoal(),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.summary = msg.summary
		d.sessions = msg.sessions
		d.goal = msg.goal
		d.buildChart()
		return d, nil
	}
	return d, nil
}

func (d *dashboardModel) buildChart() {
	chartWidth := min(d.width-10, 36)
	if chartWidth < 12 {
		chartWidth = 12
	}

	d.chart = barchart.New(chartWidth, 8)

	var bars []barchart.BarData
	for _, m := range d.summary.Monthly {
		bars = append(bars, barchart.BarData{
			Label: m.Label,
			Values: []barchart.BarValue{{
				Name:  m.Label,
				Value: float64(m.Completed),
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	cards := d.renderStatCards(contentWidth)
	focus := d.renderFocusPanel(contentWidth)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		d.renderCategoryPanel(contentWidth/2-1),
		d.renderMonthlyPanel(contentWidth-contentWidth/2-1),
	)

	return lipgloss.JoinVertical(lipgloss.Left, cards, focus, bottom)
}

func (d dashboardModel) renderStatCards(w int) string {
	s := d.summary

	growthStyle := successStyle
	arrow := "▲"
	if !s.Growth.IsPositive {
		growthStyle = errorStyle
		arrow = "▼"
	}
	growth := growthStyle.Render(fmt.Sprintf("%s %d%% vs last month", arrow, s.Growth.GrowthPercentage))

	line := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		mutedStyle.Render("Done"), successStyle.Bold(true).Render(fmt.Sprintf("%d", s.Completed)),
		mutedStyle.Render("Pending"), warningStyle.Bold(true).Render(fmt.Sprintf("%d", s.Pending)),
		mutedStyle.Render("Total"), titleStyle.Render(fmt.Sprintf("%d", s.Total)),
		mutedStyle.Render("Rate"), highlightStyle.Bold(true).Render(fmt.Sprintf("%d%%", s.Percentage)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Overview"),
		"",
		line,
		progressBar(s.Percentage, min(w-6, 40)),
		"",
		growth,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderFocusPanel(w int) string {
	now := d.store.Now()
	title := titleStyle.Render("Focus")

	today := stats.TodayMinutes(d.sessions, now)
	total := stats.TotalFocusMinutes(d.sessions)
	streak := stats.CurrentStreak(d.sessions, now)

	line := fmt.Sprintf("%s %s   %s %s   %s %s",
		mutedStyle.Render("Today"), highlightStyle.Render(stats.FormatMinutes(today)),
		mutedStyle.Render("All time"), highlightStyle.Render(stats.FormatMinutes(total)),
		mutedStyle.Render("Streak"), accentStyle.Render(fmt.Sprintf("%d days", streak)),
	)

	rows := []string{title, "", line}
	if d.goal != nil {
		pct := stats.GoalProgress(d.sessions, d.goal, now)
		done := stats.TodayCompletedSessions(d.sessions, d.goal, now)
		rows = append(rows, "",
			fmt.Sprintf("%s %s  %d/%d sessions today",
				mutedStyle.Render("Goal"), titleStyle.Render(d.goal.Title), done, d.goal.SessionCount),
			progressBar(pct, min(w-6, 40)),
		)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (d dashboardModel) renderCategoryPanel(w int) string {
	title := titleStyle.Render("Categories")

	if len(d.summary.Categories) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	names := make([]string, 0, len(d.summary.Categories))
	for name := range d.summary.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []string
	rows = append(rows, title, "")
	for _, name := range names {
		c := d.summary.Categories[name]
		rows = append(rows, fmt.Sprintf("  %-12s %s",
			name,
			mutedStyle.Render(fmt.Sprintf("%d/%d", c.Completed, c.Total)),
		))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderMonthlyPanel(w int) string {
	title := titleStyle.Render("Completed (3 months)")

	empty := true
	for _, m := range d.summary.Monthly {
		if m.Completed > 0 {
			empty = false
			break
		}
	}
	if empty {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing completed yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", d.chart.View())
	return panelStyle.Width(w).Render(content)
}

// progressBar renders a fixed-width filled bar for a 0..100 percentage.
func progressBar(pct, width int) string {
	if width < 4 {
		width = 4
	}
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return bar + mutedStyle.Render(fmt.Sprintf(" %d%%", pct))
}
