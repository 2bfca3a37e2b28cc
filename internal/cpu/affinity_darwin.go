//go:build darwin

package cpu

import (
	"runtime"
)

// LockThread wires the calling goroutine to an OS thread.
// CPU pinning is not available on macOS, so pin is ignored.
func LockThread(_ int, _ bool) func() {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}
}

// CanPin reports whether LockThread can restrict threads to a core.
func CanPin() bool {
	return false
}
