package core

import "time"

var startTime = time.Now()

// Millis returns the monotonic millisecond counter all tick baselines and
// task wake times are measured against. It never goes backwards; the
// absolute value is meaningless.
func Millis() uint64 {
	return uint64(time.Since(startTime) / time.Millisecond)
}
