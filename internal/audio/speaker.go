// Package audio provides the clock sources driving a rhythm session: a
// speaker-backed audio clock that also plays the metronome, and a silent
// wall clock for sessions without an audio device.
package audio

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// Defaults for SpeakerClock.
const (
	DefaultSampleRate   = 44100
	DefaultStallTimeout = 2 * time.Second
	DefaultVolume       = 0.6

	startLead = 100 * time.Millisecond // Delay before the first metronome beat
)

// Voice shapes.
const (
	clickHz       = 1000.0
	accentClickHz = 1600.0
	clickLength   = 30 * time.Millisecond
	drumLength    = 60 * time.Millisecond
)

// Options configures a SpeakerClock.
type Options struct {
	SampleRate   int
	StallTimeout time.Duration
	Volume       float64 // 0 mutes; negative selects DefaultVolume
	Logger       *log.Logger
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = DefaultSampleRate
	}
	if o.StallTimeout <= 0 {
		o.StallTimeout = DefaultStallTimeout
	}
	if o.Volume < 0 {
		o.Volume = DefaultVolume
	}
	o.Volume = min(o.Volume, 1)
	return o
}

// voice is one decaying sound in flight.
type voice struct {
	pos, length int
	freq        float64 // 0 for noise
}

// SpeakerClock is an audio clock driven by the speaker's sample pump. The
// number of samples rendered so far is the authoritative time. One endless
// streamer mixes the metronome pulse and accent sounds into the output.
type SpeakerClock struct {
	rate   beep.SampleRate
	opts   Options
	logger *log.Logger
	wall   func() time.Time

	mu          sync.Mutex
	open        bool
	device      bool // Open initialised the speaker
	samples     int64
	lastAdvance time.Time
	lastNow     float64
	buffer      time.Duration

	bpm       int
	beats     int
	pulsing   bool
	pulseAt   int64 // Sample index of the first metronome beat
	beatIndex int64
	nextBeat  int64

	voices []voice
	noise  *rand.Rand
}

// NewSpeakerClock creates a clock. Call Open before using it.
func NewSpeakerClock(opts Options) *SpeakerClock {
	opts = opts.withDefaults()
	return &SpeakerClock{
		rate:   beep.SampleRate(opts.SampleRate),
		opts:   opts,
		logger: opts.Logger,
		wall:   time.Now,
		bpm:    60,
		beats:  4,
		noise:  rand.New(rand.NewSource(1)),
	}
}

// Open initialises the speaker and starts the sample pump.
func (c *SpeakerClock) Open() error {
	c.buffer = time.Second / 60
	if err := speaker.Init(c.rate, c.rate.N(c.buffer)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	c.markOpen()
	c.mu.Lock()
	c.device = true
	c.mu.Unlock()
	speaker.Play(beep.StreamerFunc(c.stream))
	if c.logger != nil {
		c.logger.Debug("speaker opened", "rate", int(c.rate), "buffer", c.buffer)
	}
	return nil
}

func (c *SpeakerClock) markOpen() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.lastAdvance = c.wall()
}

// Close silences the output and stops the clock. Now fails afterwards.
func (c *SpeakerClock) Close() {
	c.mu.Lock()
	device := c.device
	c.open, c.device, c.pulsing = false, false, false
	c.voices = nil
	c.mu.Unlock()

	// Clear takes the speaker lock, which stream holds while it runs.
	if device {
		speaker.Clear()
	}
}

// Now returns the audio time in seconds. Between two speaker buffers the
// value is interpolated with the wall clock, never beyond one buffer, so it
// stays monotonic.
func (c *SpeakerClock) Now() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return 0, rhythm.ErrNotRunning
	}
	since := c.wall().Sub(c.lastAdvance)
	if since > c.opts.StallTimeout {
		return 0, fmt.Errorf("%w: no samples for %s", rhythm.ErrClockLost, since.Round(time.Millisecond))
	}

	now := float64(c.samples)/float64(c.rate) + min(since, c.buffer).Seconds()
	if now < c.lastNow {
		now = c.lastNow
	}
	c.lastNow = now
	return now, nil
}

// Start arms the metronome on a beat shortly after now and returns that
// beat's audio time.
func (c *SpeakerClock) Start() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return 0, rhythm.ErrNotRunning
	}
	c.pulseAt = c.samples + int64(c.rate.N(startLead))
	c.beatIndex = 0
	c.nextBeat = c.pulseAt
	c.pulsing = true
	return float64(c.pulseAt) / float64(c.rate), nil
}

// Stop silences the metronome. The clock keeps counting.
func (c *SpeakerClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pulsing = false
}

// SetTempo changes the metronome tempo for the next Start.
func (c *SpeakerClock) SetTempo(bpm int) {
	if bpm <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bpm = bpm
}

// SetMeter sets how many beats make up one accented group.
func (c *SpeakerClock) SetMeter(beats, _ int) {
	if beats <= 0 {
		beats = 4
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.beats = beats
}

// PlayAccent mixes a short drum hit into the output.
func (c *SpeakerClock) PlayAccent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return
	}
	c.voices = append(c.voices, voice{length: c.rate.N(drumLength)})
}

// stream is the speaker callback. It never ends.
func (c *SpeakerClock) stream(samples [][2]float64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	spb := float64(c.rate) * 60 / float64(c.bpm)
	for i := range samples {
		s := c.samples + int64(i)
		if c.pulsing && s == c.nextBeat {
			freq := clickHz
			if c.beatIndex%int64(c.beats) == 0 {
				freq = accentClickHz
			}
			c.voices = append(c.voices, voice{length: c.rate.N(clickLength), freq: freq})
			c.beatIndex++
			c.nextBeat = c.pulseAt + int64(math.Round(float64(c.beatIndex)*spb))
		}

		v := c.mix()
		samples[i][0], samples[i][1] = v, v
	}

	c.samples += int64(len(samples))
	c.lastAdvance = c.wall()
	return len(samples), true
}

// mix renders one sample of all voices and drops finished ones.
func (c *SpeakerClock) mix() float64 {
	out := 0.0
	live := c.voices[:0]
	for _, v := range c.voices {
		env := math.Exp(-5 * float64(v.pos) / float64(v.length))
		if v.freq > 0 {
			out += math.Sin(2*math.Pi*v.freq*float64(v.pos)/float64(c.rate)) * env
		} else {
			out += (c.noise.Float64()*2 - 1) * env
		}
		v.pos++
		if v.pos < v.length {
			live = append(live, v)
		}
	}
	c.voices = live
	return math.Max(-1, math.Min(1, out*c.opts.Volume))
}
