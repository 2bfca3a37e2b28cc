package fiber

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/utkarsh5026/swapbench/internal/cpu"
)

func TestRun_ReturnsRootError(t *testing.T) {
	errRoot := errors.New("root failed")

	err := Run(context.Background(), func(*Task) error {
		return errRoot
	})
	if !errors.Is(err, errRoot) {
		t.Errorf("Run() error = %v, want %v", err, errRoot)
	}
}

func TestWait_ReturnsChildError(t *testing.T) {
	errChild := errors.New("child failed")

	err := Run(context.Background(), func(root *Task) error {
		ok := root.Go(func(*Task) error { return nil })
		bad := root.Go(func(t *Task) error {
			if err := t.Sleep(time.Millisecond); err != nil {
				return err
			}
			return errChild
		})

		if err := root.Wait(ok); err != nil {
			return err
		}
		return root.Wait(bad)
	})
	if !errors.Is(err, errChild) {
		t.Errorf("Run() error = %v, want %v", err, errChild)
	}
}

func TestWait_AlreadyFinished(t *testing.T) {
	err := Run(context.Background(), func(root *Task) error {
		child := root.Go(func(*Task) error { return nil })
		root.Yield() // let child finish first
		if err := root.Wait(child); err != nil {
			return err
		}
		return root.Wait(child)
	})
	if err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestSleep_Interleaves(t *testing.T) {
	const tasks = 20
	const nap = 50 * time.Millisecond

	start := time.Now()
	err := Run(context.Background(), func(root *Task) error {
		children := make([]*Task, tasks)
		for i := range children {
			children[i] = root.Go(func(t *Task) error {
				return t.Sleep(nap)
			})
		}
		for _, c := range children {
			if err := root.Wait(c); err != nil {
				return err
			}
		}
		return nil
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if elapsed < nap {
		t.Errorf("elapsed %v shorter than one sleep %v", elapsed, nap)
	}
	if elapsed > 5*nap {
		t.Errorf("elapsed %v, sleeps did not overlap (serial would be %v)", elapsed, tasks*nap)
	}
}

func TestSleep_WakeOrder(t *testing.T) {
	var order []int

	err := Run(context.Background(), func(root *Task) error {
		var children []*Task
		for _, ms := range []int{30, 10, 20} {
			children = append(children, root.Go(func(t *Task) error {
				if err := t.Sleep(time.Duration(ms) * time.Millisecond); err != nil {
					return err
				}
				order = append(order, ms)
				return nil
			}))
		}
		for _, c := range children {
			if err := root.Wait(c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []int{10, 20, 30}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("wake order = %v, want %v", order, want)
		}
	}
}

func TestRun_OneTaskAtATime(t *testing.T) {
	var running, peak atomic.Int32

	enter := func() {
		if n := running.Add(1); n > peak.Load() {
			peak.Store(n)
		}
	}
	leave := func() { running.Add(-1) }

	err := Run(context.Background(), func(root *Task) error {
		var children []*Task
		for range 16 {
			children = append(children, root.Go(func(t *Task) error {
				for range 5 {
					enter()
					cpu.CountTo(20_000)
					leave()
					if err := t.Sleep(time.Millisecond); err != nil {
						return err
					}
				}
				return nil
			}))
		}
		for _, c := range children {
			if err := root.Wait(c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if p := peak.Load(); p != 1 {
		t.Errorf("peak concurrently running tasks = %d, want 1", p)
	}
}

func TestRun_BusyTaskBlocksSleepers(t *testing.T) {
	const busy = 40 * time.Millisecond
	var wokeAt, busyDone time.Time

	err := Run(context.Background(), func(root *Task) error {
		sleeper := root.Go(func(t *Task) error {
			if err := t.Sleep(time.Millisecond); err != nil {
				return err
			}
			wokeAt = time.Now()
			return nil
		})
		hog := root.Go(func(*Task) error {
			deadline := time.Now().Add(busy)
			for time.Now().Before(deadline) {
				cpu.CountTo(1000)
			}
			busyDone = time.Now()
			return nil
		})

		if err := root.Wait(sleeper); err != nil {
			return err
		}
		return root.Wait(hog)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if wokeAt.Before(busyDone) {
		t.Errorf("sleeper resumed at %v while the busy task held the baton until %v", wokeAt, busyDone)
	}
}

func TestQueue_PopBlocksUntilPush(t *testing.T) {
	var got []int

	err := Run(context.Background(), func(root *Task) error {
		var q Queue[int]

		var consumers []*Task
		for range 3 {
			consumers = append(consumers, root.Go(func(t *Task) error {
				v, err := q.Pop(t)
				if err != nil {
					return err
				}
				got = append(got, v)
				return nil
			}))
		}

		root.Yield() // consumers block on the empty queue
		if len(got) != 0 {
			t.Errorf("consumers received %v before any push", got)
		}

		for i := 1; i <= 3; i++ {
			q.Push(i)
		}
		for _, c := range consumers {
			if err := root.Wait(c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("received %v, want %v", got, want)
		}
	}
}

func TestQueue_ZeroValueBuffered(t *testing.T) {
	err := Run(context.Background(), func(root *Task) error {
		var q Queue[string]
		q.Push("a")
		q.Push("b")
		if q.Len() != 2 {
			t.Errorf("Len() = %d, want 2", q.Len())
		}

		first, err := q.Pop(root)
		if err != nil {
			return err
		}
		second, err := q.Pop(root)
		if err != nil {
			return err
		}
		if first != "a" || second != "b" {
			t.Errorf("popped %q, %q, want a, b", first, second)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRun_Deadlock(t *testing.T) {
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), func(root *Task) error {
			var q Queue[struct{}]
			child := root.Go(func(t *Task) error {
				_, err := q.Pop(t)
				return err
			})
			return root.Wait(child)
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, ErrDeadlock) {
			t.Errorf("Run() error = %v, want ErrDeadlock", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not detect the deadlock")
	}
}

func TestRun_Cancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := Run(ctx, func(root *Task) error {
		var children []*Task
		for range 4 {
			children = append(children, root.Go(func(t *Task) error {
				return t.Sleep(time.Hour)
			}))
		}
		for _, c := range children {
			if err := root.Wait(c); err != nil {
				return err
			}
		}
		return nil
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("cancelled run took %v", elapsed)
	}
}

func TestRun_RecoversPanic(t *testing.T) {
	err := Run(context.Background(), func(root *Task) error {
		child := root.Go(func(*Task) error {
			panic("boom")
		})
		return root.Wait(child)
	})

	if err == nil || !strings.Contains(err.Error(), "panic: boom") {
		t.Errorf("Run() error = %v, want recovered panic", err)
	}
}

func TestTask_IDs(t *testing.T) {
	var ids []int
	err := Run(context.Background(), func(root *Task) error {
		ids = append(ids, root.ID())
		for range 3 {
			c := root.Go(func(*Task) error { return nil })
			ids = append(ids, c.ID())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, id := range ids {
		if id != i+1 {
			t.Errorf("ids = %v, want 1..4", ids)
			break
		}
	}
}

func TestSleep_ZeroYields(t *testing.T) {
	var order []string

	err := Run(context.Background(), func(root *Task) error {
		child := root.Go(func(*Task) error {
			order = append(order, "child")
			return nil
		})
		if err := root.Sleep(0); err != nil {
			return err
		}
		order = append(order, "root")
		return root.Wait(child)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(order) != 2 || order[0] != "child" {
		t.Errorf("order = %v, want child before root", order)
	}
}
