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

var taskCategories = []string{"Personal", "Work", "Health", "Learning", "Shopping", "Other"}

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []store.Task
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	// Form field pointers (survive value copies)
	formTitle    *string
	formCategory *string

	editingID string
}

func newTasksModel(s *store.Store) tasksModel {
	title, category := "", taskCategories[0]
	return tasksModel{
		store:        s,
		formTitle:    &title,
		formCategory: &category,
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type tasksDataMsg struct {
	tasks []store.Task
}

func (t tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return tasksDataMsg{tasks: t.store.Tasks()}
	}
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		t.tasks = msg.tasks
		if t.cursor >= len(t.tasks) {
			t.cursor = max(0, len(t.tasks)-1)
		}
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.tasks)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if len(t.tasks) > 0 {
				t.store.ToggleTask(t.tasks[t.cursor].ID, false)
				return t, tea.Batch(t.refresh(), notifyTasksChanged())
			}
		case key.Matches(msg, keys.New):
			return t.showForm("new", "", taskCategories[0])
		case key.Matches(msg, keys.Edit):
			if len(t.tasks) > 0 {
				task := t.tasks[t.cursor]
				t.editingID = task.ID
				return t.showForm("edit", task.Title, task.Category)
			}
		case key.Matches(msg, keys.Delete):
			if len(t.tasks) > 0 {
				t.store.DeleteTask(t.tasks[t.cursor].ID, false)
				return t, tea.Batch(t.refresh(), notifyTasksChanged())
			}
		}
	}
	return t, nil
}

func notifyTasksChanged() tea.Cmd {
	return func() tea.Msg { return tasksChangedMsg{} }
}

func (t tasksModel) showForm(formType, title, category string) (tasksModel, tea.Cmd) {
	*t.formTitle = title
	if category == "" {
		category = taskCategories[0]
	}
	*t.formCategory = category
	t.formType = formType

	catOptions := make([]huh.Option[string], len(taskCategories))
	for i, c := range taskCategories {
		catOptions[i] = huh.NewOption(c, c)
	}

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(t.formTitle),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(t.formCategory),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		if *t.formTitle != "" {
			if t.formType == "edit" {
				t.store.UpdateTask(t.editingID, *t.formTitle, *t.formCategory)
			} else {
				t.store.AddTask(*t.formTitle, *t.formCategory)
			}
		}
		return t, tea.Batch(t.refresh(), notifyTasksChanged())
	}

	return t, cmd
}

func (t tasksModel) view() string {
	if t.formActive && t.form != nil {
		title := titleStyle.Render("New Task")
		if t.formType == "edit" {
			title = titleStyle.Render("Edit Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View())
		return panelStyle.Width(t.width - 4).Render(content)
	}

	w := t.width - 4
	title := titleStyle.Render("Tasks")

	if len(t.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, task := range t.tasks {
		check := "[ ]"
		style := normalItemStyle
		if task.Completed {
			check = "[✓]"
			style = completedItemStyle
		}
		cursor := "  "
		if i == t.cursor {
			cursor = "> "
			if !task.Completed {
				style = selectedItemStyle
			}
		}
		category := mutedStyle.Render(fmt.Sprintf("  %s · %s", task.Category, task.CreatedDate.Format("Jan 2")))
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, check, task.Title))+category)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
