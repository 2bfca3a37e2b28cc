// Package calibrate converts between an abstract CPU job size (busy-loop
// iteration count) and the wall-clock time that job takes on this host.
//
// Calibrate measures busy-loops of increasing size and fits a linear model
// duration ≈ Alpha + Beta·size by ordinary least squares:
//
//	model, err := calibrate.Calibrate()
//	if err != nil {
//	    // *CalibrationError: the host produced unusable samples
//	}
//	size := model.JobSize(float64(5 * time.Millisecond))
//
// The returned Model is immutable and safe to share between goroutines.
//
// # Sampling
//
// Sampling starts at 30,000 iterations and grows the size by 1% per sample.
// It stops as soon as the most recent single sample takes at least 10ms;
// earlier samples are not accumulated. Each sample runs with the garbage
// collector suspended on a locked OS thread.
//
// # Configuration Options
//
//   - WithStartSize(n): first job size (default: 30,000)
//   - WithGrowth(f): size multiplier per sample (default: 1.01)
//   - WithFloor(d): stop once a sample takes at least d (default: 10ms)
//   - WithMaxSamples(n): fail instead of sampling forever (default: 100,000)
//   - WithBurner(fn): replace the measured busy-loop
package calibrate
