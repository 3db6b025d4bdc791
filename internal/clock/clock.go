// Package clock provides frame timestamps and the accelerated simulated date.
package clock

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// maxDateMillis is the largest distance from the Unix epoch a date may have,
// 100 million days.
const maxDateMillis = 8.64e15

// ErrInvalidTimestamp is returned when a timestamp cannot be mapped to a date.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Source supplies monotonically increasing frame timestamps in milliseconds.
type Source interface {
	Now() float64
}

// SystemSource measures milliseconds elapsed since it was created.
type SystemSource struct {
	start time.Time
}

// NewSystemSource starts a source at the current instant.
func NewSystemSource() *SystemSource {
	return &SystemSource{start: time.Now()}
}

// Now returns elapsed milliseconds with sub-millisecond precision.
// time.Since reads the monotonic clock, so the value never goes backwards.
func (s *SystemSource) Now() float64 {
	return float64(time.Since(s.start)) / float64(time.Millisecond)
}

// Simulated maps real elapsed time to an accelerated date.
type Simulated struct {
	Scale float64
	Epoch time.Time // zero means the Unix epoch
}

// Date returns Epoch + ts*Scale milliseconds, in UTC.
func (s Simulated) Date(ts float64) (time.Time, error) {
	scaled := ts * s.Scale
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return time.Time{}, fmt.Errorf("%w: %v ms scaled by %v", ErrInvalidTimestamp, ts, s.Scale)
	}

	var base float64
	if !s.Epoch.IsZero() {
		base = float64(s.Epoch.UnixMilli())
	}
	ms := base + scaled
	if math.Abs(ms) > maxDateMillis {
		return time.Time{}, fmt.Errorf("%w: %v ms is outside the date range", ErrInvalidTimestamp, ms)
	}

	whole := math.Floor(ms)
	nanos := int64(math.Round((ms - whole) * 1e6))
	return time.UnixMilli(int64(whole)).Add(time.Duration(nanos)).UTC(), nil
}

// Fixed is a Source that always reports the same timestamp. Tests use it to pin frames.
type Fixed float64

// Now returns the fixed timestamp.
func (f Fixed) Now() float64 {
	return float64(f)
}
