package world

import "time"

// Clock is a monotonic millisecond counter. The session samples it once
// per frame so every hazard in a frame sees the same time.
type Clock interface {
	NowMillis() int64
}

// FrameClock is a deterministic clock advanced explicitly by the caller,
// one fixed step per frame.
type FrameClock struct {
	now  int64
	step int64
}

// NewFrameClock creates a clock at zero that advances by step milliseconds.
func NewFrameClock(step int64) *FrameClock {
	return &FrameClock{step: step}
}

// NowMillis returns the current clock value.
func (c *FrameClock) NowMillis() int64 {
	return c.now
}

// Advance moves the clock forward by one step.
func (c *FrameClock) Advance() {
	c.now += c.step
}

// Set moves the clock to an absolute value.
func (c *FrameClock) Set(ms int64) {
	c.now = ms
}

// WallClock reports milliseconds elapsed since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a wall clock now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// NowMillis returns elapsed milliseconds using the monotonic reading.
func (c *WallClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}
