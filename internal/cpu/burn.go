package cpu

import (
	"sync/atomic"
	"time"
)

// sink keeps the loop counter observable so the compiler cannot drop the loop.
var sink atomic.Int64

// CountTo increments a counter from 0 up to n and returns the final value.
// It never blocks, allocates or yields; a non-positive n does no work.
//
//go:noinline
func CountTo(n int64) int64 {
	var i int64
	for i = 0; i < n; i++ {
	}
	sink.Store(i)
	return i
}

// Burn runs CountTo(n) and reports how long it took on the monotonic clock.
func Burn(n int64) time.Duration {
	start := time.Now()
	CountTo(n)
	return time.Since(start)
}
