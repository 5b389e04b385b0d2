package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// newTestClock returns an open clock that never touches the speaker.
func newTestClock(rate int) (*SpeakerClock, *time.Time) {
	wall := time.Unix(0, 0)
	c := NewSpeakerClock(Options{SampleRate: rate, Volume: DefaultVolume})
	c.wall = func() time.Time { return wall }
	c.buffer = time.Second / 60
	c.markOpen()
	return c, &wall
}

func pump(c *SpeakerClock, n int) [][2]float64 {
	buf := make([][2]float64, n)
	c.stream(buf)
	return buf
}

func TestSpeakerClockCountsSamples(t *testing.T) {
	c, _ := newTestClock(1000)
	pump(c, 500)
	now, err := c.Now()
	if err != nil {
		t.Fatalf("Now: %v", err)
	}
	if now != 0.5 {
		t.Errorf("Now = %v, want 0.5", now)
	}
}

func TestSpeakerClockInterpolates(t *testing.T) {
	c, wall := newTestClock(1000)
	pump(c, 100)

	*wall = wall.Add(5 * time.Millisecond)
	a, _ := c.Now()
	if a <= 0.1 || a > 0.1+c.buffer.Seconds() {
		t.Errorf("Interpolated time %v outside one buffer after 0.1", a)
	}

	// Never past one buffer, never backwards
	*wall = wall.Add(time.Second)
	b, _ := c.Now()
	if b < a || b > 0.1+c.buffer.Seconds()+1e-9 {
		t.Errorf("Interpolated time %v, previous %v", b, a)
	}
}

func TestSpeakerClockStall(t *testing.T) {
	c, wall := newTestClock(1000)
	pump(c, 10)
	*wall = wall.Add(3 * time.Second)
	if _, err := c.Now(); !errors.Is(err, rhythm.ErrClockLost) {
		t.Errorf("Now after stall: err = %v, want ErrClockLost", err)
	}

	// The feed comes back
	pump(c, 10)
	if _, err := c.Now(); err != nil {
		t.Errorf("Now after recovery: %v", err)
	}
}

func TestSpeakerClockNotOpen(t *testing.T) {
	c := NewSpeakerClock(Options{})
	if _, err := c.Now(); !errors.Is(err, rhythm.ErrNotRunning) {
		t.Errorf("Now on closed clock: err = %v", err)
	}
	if _, err := c.Start(); !errors.Is(err, rhythm.ErrNotRunning) {
		t.Errorf("Start on closed clock: err = %v", err)
	}
}

func TestSpeakerClockClose(t *testing.T) {
	c, _ := newTestClock(1000)
	c.Start()
	c.PlayAccent()
	c.Close()

	if _, err := c.Now(); !errors.Is(err, rhythm.ErrNotRunning) {
		t.Errorf("Now after Close: err = %v", err)
	}
	if len(c.voices) != 0 || c.pulsing {
		t.Error("Close should silence voices and pulse")
	}
}

func TestMetronomePulse(t *testing.T) {
	c, _ := newTestClock(1000)
	c.SetTempo(120)
	c.SetMeter(3, 4)
	pump(c, 200)

	start, err := c.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if start != 0.3 {
		t.Errorf("Start = %v, want 0.3 (100ms lead)", start)
	}

	// 120 bpm at 1kHz: a click every 500 samples from sample 300
	pump(c, 1000)
	if c.beatIndex != 2 {
		t.Errorf("Beats played = %d, want 2", c.beatIndex)
	}
	if c.nextBeat != 1300 {
		t.Errorf("Next beat at %d, want 1300", c.nextBeat)
	}

	c.Stop()
	pump(c, 1000)
	if c.beatIndex != 2 {
		t.Errorf("Metronome kept playing after stop")
	}
}

func TestMetronomeSilentBeforeStart(t *testing.T) {
	c, _ := newTestClock(1000)
	for _, s := range pump(c, 500) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatal("Output not silent without metronome")
		}
	}
}

func TestPlayAccent(t *testing.T) {
	c, _ := newTestClock(1000)
	c.PlayAccent()
	buf := pump(c, 100)

	loud := false
	for _, s := range buf {
		if s[0] < -1 || s[0] > 1 {
			t.Fatalf("Sample %v out of range", s[0])
		}
		if s[0] != 0 {
			loud = true
		}
	}
	if !loud {
		t.Error("Accent produced no sound")
	}
	if len(c.voices) != 0 {
		t.Errorf("%d voices left after the accent finished", len(c.voices))
	}
}

func TestVolumeOptions(t *testing.T) {
	tests := []struct {
		volume, expected float64
	}{
		{0, 0},
		{-1, DefaultVolume},
		{0.3, 0.3},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := (Options{Volume: tt.volume}).withDefaults().Volume; got != tt.expected {
			t.Errorf("Volume %v resolved to %v, expected %v", tt.volume, got, tt.expected)
		}
	}
}

func TestZeroVolumeMutes(t *testing.T) {
	c, _ := newTestClock(1000)
	c.opts.Volume = 0
	c.PlayAccent()
	c.SetTempo(600)
	if _, err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i, s := range pump(c, 400) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("Sample %d = %v, expected silence at volume 0", i, s)
		}
	}
}

func TestWallClock(t *testing.T) {
	c := NewWallClock()
	a, err := c.Now()
	if err != nil {
		t.Fatalf("Now: %v", err)
	}
	start, _ := c.Start()
	if start < a {
		t.Errorf("Start %v before earlier Now %v", start, a)
	}
}

// Both clocks satisfy the session's clock interface.
var (
	_ rhythm.Clock = (*SpeakerClock)(nil)
	_ rhythm.Clock = (*WallClock)(nil)
)
