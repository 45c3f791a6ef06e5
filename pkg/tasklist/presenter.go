// Package tasklist keeps a client-side rendering of the task list in step
// with the gateway.
//
// A Presenter owns an ordered view-model of Items. Load replaces it from
// the server; Create, Delete and Complete patch it after their own
// request succeeds, without refetching. Failures go to a Notifier and
// leave the view-model untouched.
package tasklist

import (
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"

	"tareas/pkg/task"
)

// User-facing notices.
const (
	MsgMissingFields  = "Por favor, completa todos los campos."
	MsgCreateFailed   = "Error al agregar la tarea"
	MsgConnection     = "Error de conexión"
	MsgDeleteFailed   = "Error al eliminar la tarea"
	MsgCompleteFailed = "Error al completar la tarea"
	MsgLoadFailed     = "Error al cargar las tareas"
)

// Notifier is the surface that shows ad-hoc error and validation text.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a func to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// Form is the create form as typed by the user.
type Form struct {
	Name        string
	Description string
	DueAt       string
	Priority    string
}

// Validate trims the text fields and requires all four to be non-empty.
func (f Form) Validate() (task.NewTask, error) {
	name := strings.TrimSpace(f.Name)
	desc := strings.TrimSpace(f.Description)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if desc == "" {
		missing = append(missing, "description")
	}
	if f.DueAt == "" {
		missing = append(missing, "due_at")
	}
	if f.Priority == "" {
		missing = append(missing, "priority")
	}
	if len(missing) > 0 {
		return task.NewTask{}, &ValidationError{Fields: missing}
	}
	return task.NewTask{
		Name:        &name,
		Description: &desc,
		DueAt:       &f.DueAt,
		Priority:    &f.Priority,
	}, nil
}

// Binding is the pair of actions attached to one rendered item.
type Binding struct {
	Complete func(ctx context.Context) error
	Delete   func(ctx context.Context) error
}

// Presenter is safe for concurrent use; clients run each action on its
// own goroutine.
type Presenter struct {
	api    API
	notify Notifier

	mu       sync.Mutex
	items    []Item
	onChange func()

	// Patches applied while a Load is in flight, replayed onto its result.
	loading int
	patches []patch
}

// patch is one local change to the view-model. Replaying a patch onto a
// list that already reflects it must be a no-op.
type patch func([]Item) []Item

// New creates a Presenter. notify may be nil.
func New(api API, notify Notifier) *Presenter {
	if notify == nil {
		notify = NotifierFunc(func(string) {})
	}
	return &Presenter{api: api, notify: notify}
}

// OnChange registers fn to run after every view-model change, e.g. to
// invalidate a window.
func (p *Presenter) OnChange(fn func()) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Items returns a snapshot of the rendered list.
func (p *Presenter) Items() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.items)
}

// Empty reports whether the empty indicator should be shown.
func (p *Presenter) Empty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items) == 0
}

// Bind returns the actions for the item with the given id.
func (p *Presenter) Bind(id int64) Binding {
	return Binding{
		Complete: func(ctx context.Context) error { return p.Complete(ctx, id) },
		Delete:   func(ctx context.Context) error { return p.Delete(ctx, id) },
	}
}

// Load replaces the view-model with the server's tasks in display order.
// Creates, deletes and completions that land while the request is in
// flight are reapplied on top of its result.
func (p *Presenter) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading++
	mark := len(p.patches)
	p.mu.Unlock()

	tasks, err := p.api.List(ctx)
	if err != nil {
		p.mu.Lock()
		p.endLoad()
		p.mu.Unlock()
		log.Printf("tasklist: load: %v", err)
		p.notify.Notify(MsgLoadFailed)
		return err
	}

	ordered := Order(tasks)
	items := make([]Item, 0, len(ordered))
	for _, t := range ordered {
		items = append(items, newItem(t))
	}
	p.update(func() {
		for _, fn := range p.patches[mark:] {
			items = fn(items)
		}
		p.items = items
		p.endLoad()
	})
	return nil
}

func (p *Presenter) endLoad() {
	p.loading--
	if p.loading == 0 {
		p.patches = nil
	}
}

// Create validates f and, when valid, posts it. The new item is appended
// to the end of the list, not sorted into place.
func (p *Presenter) Create(ctx context.Context, f Form) error {
	nt, err := f.Validate()
	if err != nil {
		p.notify.Notify(MsgMissingFields)
		return err
	}

	id, err := p.api.Create(ctx, nt)
	if err != nil {
		log.Printf("tasklist: create: %v", err)
		p.notify.Notify(failureNotice(err, MsgCreateFailed))
		return err
	}

	it := newItem(task.Task{
		ID:          id,
		Name:        *nt.Name,
		Description: *nt.Description,
		DueAt:       *nt.DueAt,
		Priority:    *nt.Priority,
	})
	p.apply(func(items []Item) []Item {
		if slices.ContainsFunc(items, func(x Item) bool { return x.ID == it.ID }) {
			return items
		}
		return append(items, it)
	})
	return nil
}

// Delete removes the item once the server has answered.
func (p *Presenter) Delete(ctx context.Context, id int64) error {
	if err := p.api.Delete(ctx, id); err != nil {
		log.Printf("tasklist: delete %d: %v", id, err)
		p.notify.Notify(MsgDeleteFailed)
		return err
	}
	p.apply(func(items []Item) []Item {
		return slices.DeleteFunc(items, func(it Item) bool { return it.ID == id })
	})
	return nil
}

// Complete marks the item completed and disables its controls once the
// server has answered.
func (p *Presenter) Complete(ctx context.Context, id int64) error {
	if err := p.api.Complete(ctx, id); err != nil {
		log.Printf("tasklist: complete %d: %v", id, err)
		p.notify.Notify(MsgCompleteFailed)
		return err
	}
	p.apply(func(items []Item) []Item {
		for i := range items {
			if items[i].ID == id {
				items[i].markCompleted()
			}
		}
		return items
	})
	return nil
}

// apply patches the view-model, remembering the patch for any Load in
// flight.
func (p *Presenter) apply(fn patch) {
	p.update(func() {
		p.items = fn(p.items)
		if p.loading > 0 {
			p.patches = append(p.patches, fn)
		}
	})
}

func (p *Presenter) update(fn func()) {
	p.mu.Lock()
	fn()
	onChange := p.onChange
	p.mu.Unlock()
	if onChange != nil {
		onChange()
	}
}

func failureNotice(err error, fallback string) string {
	var te *TransportError
	if errors.As(err, &te) {
		return MsgConnection
	}
	return fallback
}
