package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/aura/internal/store"
)

type dailyModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []store.DailyTask
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	formTitle    *string
	formTime     *string
	formPriority *string

	editingID string
}

func newDailyModel(s *store.Store) dailyModel {
	title, timeOfDay, priority := "", "", string(store.PriorityMedium)
	return dailyModel{
		store:        s,
		formTitle:    &title,
		formTime:     &timeOfDay,
		formPriority: &priority,
	}
}

func (d *dailyModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dailyDataMsg struct {
	tasks []store.DailyTask
}

func (d dailyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return dailyDataMsg{tasks: d.store.DailyTasks()}
	}
}

func (d dailyModel) update(msg tea.Msg) (dailyModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dailyDataMsg:
		d.tasks = msg.tasks
		if d.cursor >= len(d.tasks) {
			d.cursor = max(0, len(d.tasks)-1)
		}
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.tasks)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if len(d.tasks) > 0 {
				d.store.ToggleTask(d.tasks[d.cursor].ID, true)
				return d, tea.Batch(d.refresh(), notifyTasksChanged())
			}
		case key.Matches(msg, keys.New):
			return d.showForm("new", "", "9:00 AM", store.PriorityMedium)
		case key.Matches(msg, keys.Edit):
			if len(d.tasks) > 0 {
				task := d.tasks[d.cursor]
				d.editingID = task.ID
				return d.showForm("edit", task.Title, task.Time, task.Priority)
			}
		case key.Matches(msg, keys.Delete):
			if len(d.tasks) > 0 {
				d.store.DeleteTask(d.tasks[d.cursor].ID, true)
				return d, tea.Batch(d.refresh(), notifyTasksChanged())
			}
		}
	}
	return d, nil
}

func (d dailyModel) showForm(formType, title, timeOfDay string, priority store.Priority) (dailyModel, tea.Cmd) {
	*d.formTitle = title
	*d.formTime = timeOfDay
	*d.formPriority = string(priority)
	d.formType = formType

	priorityOptions := []huh.Option[string]{
		huh.NewOption("Low", string(store.PriorityLow)),
		huh.NewOption("Medium", string(store.PriorityMedium)),
		huh.NewOption("High", string(store.PriorityHigh)),
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Routine").Value(d.formTitle),
			huh.NewInput().Title("Time (e.g. 9:00 AM)").Value(d.formTime),
			huh.NewSelect[string]().Title("Priority").Options(priorityOptions...).Value(d.formPriority),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dailyModel) updateForm(msg tea.Msg) (dailyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		if *d.formTitle != "" && *d.formTime != "" {
			if d.formType == "edit" {
				d.store.UpdateDailyTask(d.editingID, *d.formTitle, *d.formTime, store.Priority(*d.formPriority))
			} else {
				d.store.AddDailyTask(*d.formTitle, *d.formTime, store.Priority(*d.formPriority))
			}
		}
		return d, tea.Batch(d.refresh(), notifyTasksChanged())
	}

	return d, cmd
}

func (d dailyModel) view() string {
	if d.formActive && d.form != nil {
		title := titleStyle.Render("New Routine")
		if d.formType == "edit" {
			title = titleStyle.Render("Edit Routine")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View())
		return panelStyle.Width(d.width - 4).Render(content)
	}

	w := d.width - 4
	title := titleStyle.Render("Daily Routine")

	if len(d.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No routines yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	done := 0
	for _, task := range d.tasks {
		if task.Completed {
			done++
		}
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("%d of %d done today", done, len(d.tasks))))
	rows = append(rows, "")

	for i, task := range d.tasks {
		check := "[ ]"
		style := normalItemStyle
		if task.Completed {
			check = "[✓]"
			style = completedItemStyle
		}
		cursor := "  "
		if i == d.cursor {
			cursor = "> "
			if !task.Completed {
				style = selectedItemStyle
			}
		}
		marker := priorityStyle(task.Priority).Render("●")
		meta := mutedStyle.Render("  " + task.Time)
		rows = append(rows, fmt.Sprintf("%s %s", marker,
			style.Render(fmt.Sprintf("%s%s %s", cursor, check, task.Title))+meta))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
