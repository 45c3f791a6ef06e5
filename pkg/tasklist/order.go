package tasklist

import (
	"slices"
	"time"

	"tareas/pkg/task"
)

var dueLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDue reads the datetime-local values the form produces plus a few
// close variants. Values without a zone are read as UTC.
func parseDue(s string) (time.Time, bool) {
	for _, layout := range dueLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Order arranges tasks for display: not-completed tasks soonest due first,
// then completed tasks in the order given. Both passes are stable, and
// unparseable due dates sort after parseable ones.
func Order(tasks []task.Task) []task.Task {
	pending := make([]task.Task, 0, len(tasks))
	done := make([]task.Task, 0)
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			pending = append(pending, t)
		}
	}

	slices.SortStableFunc(pending, func(a, b task.Task) int {
		ta, okA := parseDue(a.DueAt)
		tb, okB := parseDue(b.DueAt)
		switch {
		case okA && okB:
			return ta.Compare(tb)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return append(pending, done...)
}
