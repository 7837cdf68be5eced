package repository

import "github.com/google/uuid"

// collection is an insertion-ordered keyed record set. It performs no
// synchronisation; callers hold the owning Registry's locks.
type collection[T any] struct {
	items map[uuid.UUID]T
	order []uuid.UUID
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[uuid.UUID]T)}
}

func (c *collection[T]) put(id uuid.UUID, record T) {
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = record
}

func (c *collection[T]) get(id uuid.UUID) (T, bool) {
	record, ok := c.items[id]
	return record, ok
}

func (c *collection[T]) delete(id uuid.UUID) bool {
	if _, exists := c.items[id]; !exists {
		return false
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// list returns every record in insertion order.
func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *collection[T]) len() int {
	return len(c.items)
}
