// Package fiber is a small cooperative task scheduler.
//
// Every task runs on its own goroutine, but the scheduler hands a single
// baton from task to task: exactly one task executes at any moment and a task
// keeps the baton until it suspends itself. Suspension points are Sleep,
// Yield, Wait and Queue.Pop. Anything else a task does, including a long
// CPU-bound loop, runs to completion while every other task waits.
//
//	err := fiber.Run(ctx, func(root *fiber.Task) error {
//	    child := root.Go(func(t *fiber.Task) error {
//	        return t.Sleep(10 * time.Millisecond) // other tasks run meanwhile
//	    })
//	    return root.Wait(child)
//	})
//
// Tasks, queues and the scheduler are not safe for use outside the tasks of
// the Run call that created them.
package fiber
