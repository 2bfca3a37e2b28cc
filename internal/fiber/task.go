package fiber

import (
	"container/heap"
	"fmt"
	"runtime"
	"time"
)

type state int

const (
	stateRunnable state = iota
	stateRunning
	stateSleeping
	stateBlocked
	stateDone
)

// Task is one cooperatively scheduled unit of work.
type Task struct {
	id     int
	sched  *scheduler
	resume chan struct{}
	state  state
	err    error

	wakeErr  error
	wakeAt   time.Time
	sleepSeq uint64
	index    int

	waiters []*Task
}

// ID returns the task's identifier; the root task is 1 and children are
// numbered in spawn order.
func (t *Task) ID() int {
	return t.id
}

// Go spawns a child task. The child is queued behind the tasks already
// runnable; the caller keeps the baton.
func (t *Task) Go(fn func(t *Task) error) *Task {
	return t.sched.spawn(fn)
}

// Sleep suspends the task for at least d while other tasks run.
// A non-positive d yields once.
func (t *Task) Sleep(d time.Duration) error {
	if err := t.sched.abort; err != nil {
		return err
	}

	if d <= 0 {
		t.Yield()
		return t.sched.abort
	}

	t.wakeAt = time.Now().Add(d)
	t.sched.sleepSeq++
	t.sleepSeq = t.sched.sleepSeq
	t.state = stateSleeping
	heap.Push(&t.sched.timers, t)
	return t.park()
}

// Yield moves the task to the back of the run queue.
func (t *Task) Yield() {
	t.state = stateRunnable
	t.sched.runq = append(t.sched.runq, t)
	_ = t.park()
}

// Wait suspends the task until other has returned and reports other's error.
func (t *Task) Wait(other *Task) error {
	for other.state != stateDone {
		if err := t.sched.abort; err != nil {
			return err
		}

		other.waiters = append(other.waiters, t)
		if err := t.block(); err != nil {
			return err
		}
	}
	return other.err
}

// block parks the task until something readies it.
func (t *Task) block() error {
	t.state = stateBlocked
	t.sched.blocked[t] = struct{}{}
	return t.park()
}

// park hands the baton back to the scheduler and waits to get it again.
// It returns the error the task was woken with, if any.
func (t *Task) park() error {
	t.sched.yield <- t
	<-t.resume

	err := t.wakeErr
	t.wakeErr = nil
	return err
}

func (t *Task) main(fn func(t *Task) error) {
	<-t.resume
	t.err = t.call(fn)
	t.state = stateDone
	t.sched.yield <- t
}

// call runs fn, converting a panic into an error with a stack trace.
func (t *Task) call(fn func(t *Task) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("task %d panic: %v\nstack trace:\n%s", t.id, r, buf[:n])
		}
	}()

	return fn(t)
}
