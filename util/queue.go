package util

// Queue is a First-In-First-Out queue that holds each item at most once.
type Queue[T comparable] struct {
	items  []T
	queued map[T]struct{}
}

// Push appends item unless it is already queued. It reports whether the item was added.
func (q *Queue[T]) Push(item T) bool {
	if q.queued == nil {
		q.queued = make(map[T]struct{})
	}
	if _, ok := q.queued[item]; ok {
		return false
	}
	q.queued[item] = struct{}{}
	q.items = append(q.items, item)
	return true
}

// Pop removes and returns the oldest item; ok is false when the queue is empty.
func (q *Queue[T]) Pop() (item T, ok bool) {
	if len(q.items) == 0 {
		return
	}
	item = q.items[0]
	q.items = q.items[1:]
	delete(q.queued, item)
	return item, true
}

// Contains reports whether item is queued.
func (q *Queue[T]) Contains(item T) bool {
	_, ok := q.queued[item]
	return ok
}

// Items returns the queued items, oldest first.
func (q *Queue[T]) Items() []T {
	return append([]T(nil), q.items...)
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Clear empties the queue.
func (q *Queue[T]) Clear() {
	q.items = nil
	q.queued = nil
}
