package workload

import (
	"errors"
	"fmt"
)

var (
	// ErrJobSizeOverflow is returned when a swap's job size cannot be run as
	// an int64 loop bound.
	ErrJobSizeOverflow = errors.New("job size is not representable as an iteration count")
)

// InvalidWorkloadParameterError reports a generation parameter outside its
// allowed range. It is returned before any schedule is generated.
type InvalidWorkloadParameterError struct {
	Param string
	Value any
}

func (e *InvalidWorkloadParameterError) Error() string {
	return fmt.Sprintf("invalid workload parameter %s: %v", e.Param, e.Value)
}
