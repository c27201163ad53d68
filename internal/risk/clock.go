package risk

import "time"

// MonotonicClock measures elapsed nanoseconds since its own construction via
// time.Since, which reads the runtime's monotonic clock reading rather than
// wall-clock time — the NTP-adjustment immunity spec.md §4.6 requires.
type MonotonicClock struct {
	epoch time.Time
}

// NewMonotonicClock creates a clock anchored at the current instant.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{epoch: time.Now()}
}

// NowNanos returns nanoseconds elapsed since the clock was created.
func (c *MonotonicClock) NowNanos() int64 {
	return int64(time.Since(c.epoch))
}
