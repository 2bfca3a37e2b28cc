package calibrate

import "fmt"

// CalibrationError reports that the gathered samples cannot produce a usable
// size/duration model. It is fatal for a measurement run; retrying on the
// same host would most likely reproduce the same samples.
type CalibrationError struct {
	Reason  string
	Samples int
}

func (e *CalibrationError) Error() string {
	return fmt.Sprintf("calibration failed after %d samples: %s", e.Samples, e.Reason)
}
