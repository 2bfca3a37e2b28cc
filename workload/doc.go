// Package workload builds and executes synthetic worker schedules.
//
// A Schedule is an ordered list of swaps; each Swap is an I/O wait followed by
// a CPU busy-loop of a given job size. Generate draws the magnitudes of every
// swap from normal distributions whose means are a base unit of work scaled
// by the I/O and CPU fractions under test:
//
//	set, err := workload.Generate(workload.GenerateConfig{
//	    Workers:        32,
//	    Swaps:          16,
//	    IOFraction:     0.3,
//	    CPUFraction:    0.7,
//	    BaseUnit:       workload.DefaultBaseUnit,
//	    StdDevFraction: workload.DefaultStdDevFraction,
//	}, model, rng)
//
// CPU durations are turned into job sizes by a SizePredictor, normally a
// *calibrate.Model, so the busy-loop of each swap is expected to take the
// drawn duration on this host.
//
// Perform runs one schedule. How an I/O wait suspends is decided by the
// caller through the SleepFunc, which lets the same schedule run on an OS
// thread or inside a cooperative task. The busy-loop never yields.
package workload
