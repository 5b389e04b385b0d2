package audio

import "time"

// WallClock is a silent clock backed by the monotonic system clock. It is
// used when no audio device is available, for example over SSH.
type WallClock struct {
	epoch time.Time
}

// NewWallClock creates a clock whose zero is now.
func NewWallClock() *WallClock {
	return &WallClock{epoch: time.Now()}
}

// Now returns the seconds since the clock was created.
func (c *WallClock) Now() (float64, error) {
	return time.Since(c.epoch).Seconds(), nil
}

// Start returns the current time; there is no pulse to arm.
func (c *WallClock) Start() (float64, error) {
	return c.Now()
}

func (c *WallClock) Stop()             {}
func (c *WallClock) SetTempo(int)      {}
func (c *WallClock) SetMeter(_, _ int) {}
func (c *WallClock) PlayAccent()       {}
