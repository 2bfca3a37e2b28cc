package cpu

import (
	"runtime/debug"
	"sync"
)

var gc struct {
	mu       sync.Mutex
	disabled int
	original int
}

// SuspendGC turns the garbage collector off until every outstanding call has
// been released. The returned function restores the previous GC percent once
// the last holder releases it; it is safe to call from multiple goroutines.
func SuspendGC() (release func()) {
	gc.mu.Lock()
	if gc.disabled == 0 {
		gc.original = debug.SetGCPercent(-1)
	}
	gc.disabled++
	gc.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			gc.mu.Lock()
			defer gc.mu.Unlock()

			gc.disabled--
			if gc.disabled == 0 {
				debug.SetGCPercent(gc.original)
			}
		})
	}
}

// WithoutGC runs f with the garbage collector suspended.
func WithoutGC(f func()) {
	release := SuspendGC()
	defer release()
	f()
}
