package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/aura/internal/export"
	"github.com/sadopc/aura/internal/stats"
	"github.com/sadopc/aura/internal/store"
	"github.com/sadopc/aura/internal/timer"
)

// App is the root Bubble Tea model. It owns the single tick loop and the
// countdown timer; sub-views read timer state but never tick it themselves.
type App struct {
	store *store.Store
	timer *timer.Timer

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	tasks     tasksModel
	daily     dailyModel
	focus     focusModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	tm := timer.New(s)

	// Resume where the last run left off. A snapshot captured while running
	// comes back paused; the countdown never restarts on its own.
	state := s.State()
	tm.Restore(state.TimerState)

	return App{
		store:      s,
		timer:      tm,
		activeView: viewForPage(state.LastPage),
		dashboard:  newDashboardModel(s),
		tasks:      newTasksModel(s),
		daily:      newDailyModel(s),
		focus:      newFocusModel(s, tm),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.refresh(),
		a.tasks.refresh(),
		a.daily.refresh(),
		a.focus.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.daily.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			a.store.SaveTimerState(a.timer.Snapshot())
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewTasks)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewDaily)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewFocus)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % 4)
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		c, err := a.timer.Tick()
		if err != nil {
			a.status = fmt.Sprintf("Error: %v", err)
			return a, tea.Batch(cmds...)
		}
		if c != nil {
			completed := *c
			cmds = append(cmds,
				func() tea.Msg {
					return sessionCompletedMsg{sessionType: completed.Type, minutes: completed.Minutes}
				},
				a.focus.refresh(),
				a.dashboard.refresh(),
			)
		}
		return a, tea.Batch(cmds...)

	case sessionCompletedMsg:
		if msg.sessionType == store.SessionFocus {
			a.status = fmt.Sprintf("Focus session complete: %s logged \a", stats.FormatMinutes(msg.minutes))
		} else {
			a.status = "Break finished \a"
		}
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case tasksChangedMsg:
		// Any task mutation invalidates the dashboard aggregates.
		return a, a.dashboard.refresh()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	a.store.SetLastPage(pageKeys[v])

	switch v {
	case viewDashboard:
		return a, a.dashboard.refresh()
	case viewTasks:
		return a, a.tasks.refresh()
	case viewDaily:
		return a, a.daily.refresh()
	case viewFocus:
		return a, a.focus.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewDaily:
		a.daily, cmd = a.daily.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewDaily:
		return a.daily.formActive
	case viewFocus:
		return a.focus.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTasks:
		content = a.tasks.view()
	case viewDaily:
		content = a.daily.view()
	case viewFocus:
		content = a.focus.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("aura")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Countdown indicator in the footer so the timer stays visible from
	// every view.
	timerInfo := ""
	switch a.timer.State() {
	case timer.Running:
		timerInfo = successStyle.Render(" ● " + formatClock(a.timer.Minutes(), a.timer.Seconds()))
	case timer.Paused:
		timerInfo = warningStyle.Render(" ⏸ " + formatClock(a.timer.Minutes(), a.timer.Seconds()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV (focus sessions)", "JSON (everything)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := a.store.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("aura-sessions-%s.csv", dateStr))
			if err := export.SessionsToCSV(a.store.Sessions(), path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("aura-export-%s.json", dateStr))
			snap := export.Snapshot{
				Tasks:      a.store.Tasks(),
				DailyTasks: a.store.DailyTasks(),
				Sessions:   a.store.Sessions(),
				Goals:      a.store.Goals(),
			}
			if err := export.ToJSON(snap, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
