package fiber

// Queue is an unbounded FIFO whose Pop suspends only the calling task.
// The zero value is ready to use.
type Queue[T any] struct {
	items   []T
	waiters []*Task
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Push appends v and readies the longest-waiting task blocked in Pop.
// It never suspends the caller.
func (q *Queue[T]) Push(v T) {
	q.items = append(q.items, v)

	for len(q.waiters) > 0 {
		w := q.waiters[0]
		q.waiters[0] = nil
		q.waiters = q.waiters[1:]

		if w.state == stateBlocked {
			w.sched.ready(w)
			return
		}
	}
}

// Pop removes the oldest item, suspending t while the queue is empty.
func (q *Queue[T]) Pop(t *Task) (T, error) {
	var zero T

	for len(q.items) == 0 {
		if err := t.sched.abort; err != nil {
			return zero, err
		}

		q.waiters = append(q.waiters, t)
		if err := t.block(); err != nil {
			return zero, err
		}
	}

	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, nil
}
