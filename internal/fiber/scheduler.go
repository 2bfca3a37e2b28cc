package fiber

import (
	"container/heap"
	"context"
	"errors"
	"slices"
	"time"
)

var (
	// ErrDeadlock is returned by suspended calls when every live task is
	// blocked and no sleeper will ever wake one of them.
	ErrDeadlock = errors.New("fiber: all tasks are blocked")
)

type scheduler struct {
	runq     []*Task
	timers   timerHeap
	blocked  map[*Task]struct{}
	yield    chan *Task
	live     int
	nextID   int
	sleepSeq uint64

	// abort is set once the run is cancelled or deadlocked. Every suspended
	// task is resumed with it and later suspensions fail with it.
	abort error
}

// Run executes fn as the root task and drives the scheduler on the calling
// goroutine until every task, including ones fn spawned, has returned.
// It returns the root task's error, or the reason the run was aborted when
// the root returned nil.
func Run(ctx context.Context, fn func(t *Task) error) error {
	s := &scheduler{
		blocked: make(map[*Task]struct{}),
		yield:   make(chan *Task),
	}

	root := s.spawn(fn)
	s.loop(ctx)

	if root.err != nil {
		return root.err
	}
	return s.abort
}

func (s *scheduler) spawn(fn func(t *Task) error) *Task {
	s.nextID++
	t := &Task{
		id:     s.nextID,
		sched:  s,
		resume: make(chan struct{}),
		index:  -1,
	}

	s.live++
	s.runq = append(s.runq, t)
	go t.main(fn)
	return t
}

// loop passes the baton until no task is left.
func (s *scheduler) loop(ctx context.Context) {
	for s.live > 0 {
		if s.abort == nil && ctx.Err() != nil {
			s.fail(ctx.Err())
		}

		if len(s.runq) == 0 {
			s.idle(ctx)
			continue
		}

		t := s.runq[0]
		s.runq[0] = nil
		s.runq = s.runq[1:]

		t.state = stateRunning
		t.resume <- struct{}{}
		t = <-s.yield

		if t.state == stateDone {
			s.live--
			for _, w := range t.waiters {
				s.ready(w)
			}
			t.waiters = nil
		}
	}
}

// idle waits for the earliest sleeper when nothing is runnable.
func (s *scheduler) idle(ctx context.Context) {
	if s.timers.Len() == 0 {
		s.fail(ErrDeadlock)
		return
	}

	if d := time.Until(s.timers[0].wakeAt); d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			s.fail(ctx.Err())
			return
		}
	}

	now := time.Now()
	for s.timers.Len() > 0 && !s.timers[0].wakeAt.After(now) {
		t, _ := heap.Pop(&s.timers).(*Task)
		s.ready(t)
	}
}

// ready moves a sleeping or blocked task to the back of the run queue.
// Tasks in any other state are left alone.
func (s *scheduler) ready(t *Task) {
	switch t.state {
	case stateSleeping:
		if t.index >= 0 {
			heap.Remove(&s.timers, t.index)
		}
	case stateBlocked:
		delete(s.blocked, t)
	default:
		return
	}

	t.state = stateRunnable
	s.runq = append(s.runq, t)
}

// fail aborts the run: every suspended task resumes with err.
func (s *scheduler) fail(err error) {
	if s.abort != nil {
		return
	}
	s.abort = err

	for s.timers.Len() > 0 {
		t, _ := heap.Pop(&s.timers).(*Task)
		t.wakeErr = err
		s.ready(t)
	}

	blocked := make([]*Task, 0, len(s.blocked))
	for t := range s.blocked {
		blocked = append(blocked, t)
	}
	slices.SortFunc(blocked, func(a, b *Task) int {
		return a.id - b.id
	})
	for _, t := range blocked {
		t.wakeErr = err
		s.ready(t)
	}
}
