// Package experiment sweeps the I/O share of a synthetic workload and times
// both strategies at every step.
//
// For each trial and each io_percent in the sweep, the Runner generates one
// schedule set, times the thread strategy Repetitions times and then the
// fiber strategy Repetitions times over that same set, and keeps the upper
// median of each. Medians are averaged across trials into one Row per
// io_percent.
//
// Output formats:
//
//	summary:  io_percent;thread_time;fiber_time        (times in ns, %f)
//	raw:      strategy;io_percent;elapsed_ns           (one row per timed run)
//	progress: "<trial>/<trials>" then "\t<io>/100" per setting
package experiment
