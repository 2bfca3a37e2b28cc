//go:build !linux && !darwin && !windows

package cpu

import "runtime"

// LockThread wires the calling goroutine to an OS thread. Pinning is not
// supported on this platform.
func LockThread(_ int, _ bool) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}

// CanPin reports whether LockThread can restrict threads to a core.
func CanPin() bool {
	return false
}
