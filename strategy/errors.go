package strategy

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// WorkerFailure reports that one worker did not complete its schedule.
type WorkerFailure struct {
	Strategy string
	Worker   int
	Err      error
}

func (e *WorkerFailure) Error() string {
	return fmt.Sprintf("%s worker %d failed: %v", e.Strategy, e.Worker, e.Err)
}

func (e *WorkerFailure) Unwrap() error {
	return e.Err
}
