//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// setAffinity applies mask to the current OS thread and returns the previous
// mask. Must be called after runtime.LockOSThread().
func setAffinity(mask uintptr) (uintptr, error) {
	handle, _, _ := getCurrentThread.Call()

	prevMask, _, err := setThreadAffinityMask.Call(handle, mask)
	if prevMask == 0 {
		return 0, err
	}

	return prevMask, nil
}

// LockThread wires the calling goroutine to its own OS thread and, when pin
// is set, restricts that thread to core workerID mod NumCPU.
// Returns a cleanup function that should be deferred.
func LockThread(workerID int, pin bool) func() {
	runtime.LockOSThread()

	var prev uintptr
	if pin {
		numCPU := runtime.NumCPU()
		cpuID := ((workerID % numCPU) + numCPU) % numCPU
		// Bit N = CPU N.
		prev, _ = setAffinity(uintptr(1) << cpuID)
	}

	return func() {
		if prev != 0 {
			_, _ = setAffinity(prev)
		}
		runtime.UnlockOSThread()
	}
}

// CanPin reports whether LockThread can restrict threads to a core.
func CanPin() bool {
	return true
}
