package app

// FrameFunc renders one frame for a timestamp in milliseconds.
type FrameFunc func(ts float64)

// Scheduler requests that a function run on the next display frame.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// FrameScheduler holds at most one pending frame. A second request before
// the frame fires replaces the first, so a frame can never be queued twice.
type FrameScheduler struct {
	pending  FrameFunc
	requests int
}

// RequestFrame schedules fn for the next Fire.
func (s *FrameScheduler) RequestFrame(fn FrameFunc) {
	s.pending = fn
	s.requests++
}

// Pending reports whether a frame is waiting.
func (s *FrameScheduler) Pending() bool {
	return s.pending != nil
}

// Requests returns how many frames have been requested in total.
func (s *FrameScheduler) Requests() int {
	return s.requests
}

// Fire runs the pending frame, if any, and reports whether one ran.
// The slot is cleared first so the frame may request its successor.
func (s *FrameScheduler) Fire(ts float64) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(ts)
	return true
}
