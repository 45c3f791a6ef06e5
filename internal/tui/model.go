// Package tui is a terminal client for the task list built on bubbletea.
// It drives a tasklist.Presenter exactly like the browser client does.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tareas/pkg/tasklist"
)

// Notices is a tasklist.Notifier that hands notices to the bubbletea loop.
type Notices chan string

// Notify never blocks; a notice is dropped if the loop is behind.
func (n Notices) Notify(msg string) {
	select {
	case n <- msg:
	default:
	}
}

type noticeMsg string

// actionDoneMsg follows every request; the presenter has already applied
// (or reported) its outcome.
type actionDoneMsg struct{ err error }

const (
	fieldName = iota
	fieldDescription
	fieldDueAt
	fieldPriority
	fieldCount
)

type Model struct {
	presenter *tasklist.Presenter
	notices   Notices
	keys      keyMap
	help      help.Model

	items  []tasklist.Item
	cursor int
	status string

	formActive bool
	focus      int
	inputs     []textinput.Model

	width    int
	quitting bool
}

// New creates a Model. notices must be the Notifier p was built with.
func New(p *tasklist.Presenter, notices Notices) Model {
	inputs := make([]textinput.Model, fieldCount)
	placeholders := []string{"Nombre", "Descripción", "2024-05-01T10:00", "baja, media, alta"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		inputs[i] = ti
	}
	return Model{
		presenter: p,
		notices:   notices,
		keys:      defaultKeys(),
		help:      help.New(),
		inputs:    inputs,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run(m.presenter.Load), waitForNotice(m.notices))
}

func waitForNotice(ch Notices) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-ch)
	}
}

// run performs one presenter action off the update loop.
func (m Model) run(action func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: action(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.help.Width = typed.Width
		return m, nil
	case noticeMsg:
		m.status = string(typed)
		return m, waitForNotice(m.notices)
	case actionDoneMsg:
		m.sync()
		return m, nil
	case tea.KeyMsg:
		if m.formActive {
			return m.updateForm(typed)
		}
		return m.updateList(typed)
	}
	return m, nil
}

func (m *Model) sync() {
	m.items = m.presenter.Items()
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (tasklist.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return tasklist.Item{}, false
	}
	return m.items[m.cursor], true
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Complete):
		if it, ok := m.selected(); ok && !it.ControlsDisabled {
			return m, m.run(m.presenter.Bind(it.ID).Complete)
		}
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok && !it.ControlsDisabled {
			return m, m.run(m.presenter.Bind(it.ID).Delete)
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.run(m.presenter.Load)
	case key.Matches(msg, m.keys.Dismiss):
		m.status = ""
	case key.Matches(msg, m.keys.New):
		m.formActive = true
		m.focus = fieldName
		return m, m.focusInput()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % fieldCount
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Submit):
		if m.focus < fieldPriority {
			m.focus++
			return m, m.focusInput()
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit hands the form to the presenter, which validates it before any
// request. A valid form is cleared and closed right away.
func (m Model) submit() (tea.Model, tea.Cmd) {
	f := tasklist.Form{
		Name:        m.inputs[fieldName].Value(),
		Description: m.inputs[fieldDescription].Value(),
		DueAt:       m.inputs[fieldDueAt].Value(),
		Priority:    m.inputs[fieldPriority].Value(),
	}
	if _, err := f.Validate(); err == nil {
		m.closeForm()
	}
	return m, m.run(func(ctx context.Context) error {
		return m.presenter.Create(ctx, f)
	})
}

func (m *Model) focusInput() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m.inputs[m.focus].Focus()
}

func (m *Model) closeForm() {
	m.formActive = false
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
}
