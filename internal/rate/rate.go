// Package rate estimates consumption speed from (time, count) samples.
package rate

import "time"

// window bounds how far back rolling estimates look. Older samples are
// discarded as new ones arrive.
const window = 10 * time.Second

type sample struct {
	t time.Time
	n int64
}

// Tracker computes rolling and overall average rates for a monotonically
// non-decreasing counter. It is not safe for concurrent use; the progress
// decorators drive it from a single consuming goroutine.
type Tracker struct {
	start   time.Time
	samples []sample
}

// NewTracker creates a Tracker whose elapsed time starts at start. The
// counter is assumed to be zero at that instant.
func NewTracker(start time.Time) *Tracker {
	return &Tracker{
		start:   start,
		samples: []sample{{t: start}},
	}
}

// Observe records the counter value at the given instant and trims
// samples that have fallen out of the rolling window.
func (t *Tracker) Observe(now time.Time, count int64) {
	t.samples = append(t.samples, sample{t: now, n: count})
	for len(t.samples) > 1 && now.Sub(t.samples[0].t) > window {
		t.samples = t.samples[1:]
	}
}

// Rolling returns the average rate per second over the sample window,
// or 0 if it cannot be determined yet.
func (t *Tracker) Rolling(now time.Time, count int64) float64 {
	oldest := t.samples[0]
	elapsed := now.Sub(oldest.t).Seconds()
	if elapsed <= 0 || count < oldest.n {
		return 0
	}
	return float64(count-oldest.n) / elapsed
}

// Average returns the overall average rate per second since the tracker
// started, or 0 if no time has passed.
func (t *Tracker) Average(now time.Time, count int64) float64 {
	elapsed := now.Sub(t.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed
}

// Elapsed returns time since the tracker started.
func (t *Tracker) Elapsed(now time.Time) time.Duration {
	return now.Sub(t.start)
}

// ETA estimates remaining time from the rolling rate. The second return
// is false when no estimate is possible (zero rate or total reached).
func (t *Tracker) ETA(now time.Time, count, total int64) (time.Duration, bool) {
	speed := t.Rolling(now, count)
	if speed <= 0 {
		return 0, false
	}
	remaining := total - count
	if remaining <= 0 {
		return 0, false
	}
	return time.Duration(float64(remaining) / speed * float64(time.Second)), true
}
