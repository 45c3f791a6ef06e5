package tasklist

import (
	"strings"

	"tareas/pkg/task"
)

// Item is one rendered entry of the task list.
type Item struct {
	ID               int64
	Name             string
	Description      string
	DueAt            string
	Priority         string
	Completed        bool
	ControlsDisabled bool

	DueLabel      string
	PriorityLabel string
}

func newItem(t task.Task) Item {
	return Item{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		DueAt:            t.DueAt,
		Priority:         t.Priority,
		Completed:        t.Completed,
		ControlsDisabled: t.Completed,
		DueLabel:         DueLabel(t.DueAt),
		PriorityLabel:    "Prioridad: " + t.Priority,
	}
}

// DueLabel renders a due date for display: 2024-05-01T10:00 becomes
// "Fecha Fin: 2024-05-01 H:10:00".
func DueLabel(dueAt string) string {
	return "Fecha Fin: " + strings.Replace(dueAt, "T", " H:", 1)
}

func (it *Item) markCompleted() {
	it.Completed = true
	it.ControlsDisabled = true
}
