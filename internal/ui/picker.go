package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/josephgoksu/taskman/internal/util"
	"github.com/josephgoksu/taskman/models"
)

// ErrSelectionCancelled is returned when the user leaves the picker without choosing.
var ErrSelectionCancelled = errors.New("selection cancelled")

type taskItem struct {
	task models.Task
}

func (i taskItem) Title() string {
	return fmt.Sprintf("%s %s", PriorityIcon(i.task.Priority), i.task.Title)
}

func (i taskItem) Description() string {
	parts := []string{util.ShortID(i.task.ID, 0), Label(string(i.task.Status))}
	if i.task.Description != "" {
		parts = append(parts, i.task.Description)
	}
	return strings.Join(parts, " · ")
}

func (i taskItem) FilterValue() string {
	return i.task.Title + " " + i.task.ID
}

type pickerModel struct {
	list      list.Model
	selected  *models.Task
	cancelled bool
}

func newPickerModel(tasks []models.Task, title string) pickerModel {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the filter input is open, keys belong to the list.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				task := item.task
				m.selected = &task
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-2, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View()
}

// result returns the chosen task or ErrSelectionCancelled.
func (m pickerModel) result() (models.Task, error) {
	if m.cancelled || m.selected == nil {
		return models.Task{}, ErrSelectionCancelled
	}
	return *m.selected, nil
}

// PickTask shows an interactive, filterable list of tasks and returns the one chosen.
func PickTask(tasks []models.Task, title string, opts ...tea.ProgramOption) (models.Task, error) {
	if len(tasks) == 0 {
		return models.Task{}, errors.New("no tasks to choose from")
	}

	p := tea.NewProgram(newPickerModel(tasks, title), append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	final, err := p.Run()
	if err != nil {
		return models.Task{}, fmt.Errorf("TUI error: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok {
		return models.Task{}, ErrSelectionCancelled
	}
	return m.result()
}
