package tasklist

// Controls holds per-item client state, such as button widgets, for the
// items currently rendered. It is not safe for concurrent use; clients
// touch it from their UI loop only.
type Controls[T any] struct {
	newFn func(id int64) *T
	byID  map[int64]*T
}

// NewControls returns a Controls that builds missing entries with newFn.
func NewControls[T any](newFn func(id int64) *T) *Controls[T] {
	return &Controls[T]{newFn: newFn, byID: make(map[int64]*T)}
}

// For returns the state for id, creating it on first use.
func (c *Controls[T]) For(id int64) *T {
	v, ok := c.byID[id]
	if !ok {
		v = c.newFn(id)
		c.byID[id] = v
	}
	return v
}

// Retain drops the state of every id not in items.
func (c *Controls[T]) Retain(items []Item) {
	keep := make(map[int64]struct{}, len(items))
	for _, it := range items {
		keep[it.ID] = struct{}{}
	}
	for id := range c.byID {
		if _, ok := keep[id]; !ok {
			delete(c.byID, id)
		}
	}
}

// Len reports how many items have state.
func (c *Controls[T]) Len() int { return len(c.byID) }
