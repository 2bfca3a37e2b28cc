//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
//
// cpuID wraps around runtime.NumCPU() so any worker index is accepted.
func pinToCore(cpuID int) (int, error) {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = ((cpuID % numCPU) + numCPU) % numCPU
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return 0, err
	}

	return cpuID, nil
}

// LockThread wires the calling goroutine to its own OS thread and, when pin
// is set, restricts that thread to core workerID mod NumCPU.
// Returns a cleanup function that should be deferred.
func LockThread(workerID int, pin bool) func() {
	runtime.LockOSThread()
	if pin {
		_, _ = pinToCore(workerID)
	}

	return func() {
		if pin {
			resetAffinity()
		}
		runtime.UnlockOSThread()
	}
}

// resetAffinity lets the current thread run on every core again so a pinned
// thread handed back to the runtime does not keep the restriction.
func resetAffinity() {
	var mask unix.CPUSet
	mask.Zero()
	for i := range runtime.NumCPU() {
		mask.Set(i)
	}
	_ = unix.SchedSetaffinity(0, &mask)
}

// CanPin reports whether LockThread can restrict threads to a core.
func CanPin() bool {
	return true
}
