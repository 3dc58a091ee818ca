// @focus: #audio { bell }
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Config holds audio settings for the bell
type Config struct {
	SampleRate   int
	MasterVolume float64 // 0.0 to 1.0
	BellVolume   float64
	RejectVolume float64
}

// DefaultConfig returns the default bell configuration
func DefaultConfig() *Config {
	return &Config{
		SampleRate:   44100,
		MasterVolume: 0.5,
		BellVolume:   0.6,
		RejectVolume: 0.4,
	}
}

// Tone timings
const (
	bellDuration         = 250 * time.Millisecond
	bellAttack           = 5 * time.Millisecond
	bellFundamentalDecay = 230 * time.Millisecond
	bellOvertoneDecay    = 90 * time.Millisecond

	rejectDuration = 80 * time.Millisecond
	rejectAttack   = 5 * time.Millisecond
	rejectRelease  = 20 * time.Millisecond
)

// BellTone is a short two-partial ding for unhandled input
func BellTone(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewEnvelope(NewOscillator(880, bellDuration, WaveSine, rate), bellDuration, bellAttack, bellFundamentalDecay, rate)
	over := NewEnvelope(NewOscillator(1760, bellDuration, WaveSine, rate), bellDuration, bellAttack, bellOvertoneDecay, rate)

	mixed := beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
	return newVolume(mixed, cfg.BellVolume*cfg.MasterVolume)
}

// RejectTone is a low buzz for clicks outside a modal view
func RejectTone(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(100, rejectDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, rejectDuration, rejectAttack, rejectRelease, rate)
	return newVolume(shaped, cfg.RejectVolume*cfg.MasterVolume)
}

// Bell plays feedback tones through the system speaker
// Safe for concurrent use; calls before Start or after Close are ignored
type Bell struct {
	mu      sync.Mutex
	cfg     *Config
	mixer   *beep.Mixer
	started bool
}

// NewBell creates a bell; a nil cfg uses DefaultConfig
func NewBell(cfg *Config) *Bell {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Bell{cfg: cfg, mixer: &beep.Mixer{}}
}

// Start opens the speaker and begins streaming the mixer
func (b *Bell) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return nil
	}
	rate := beep.SampleRate(b.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.started = true
	return nil
}

// Bell plays the unhandled-event tone
func (b *Bell) Bell() {
	b.play(BellTone)
}

// Reject plays the modal-rejection tone
func (b *Bell) Reject() {
	b.play(RejectTone)
}

func (b *Bell) play(tone func(*Config) beep.Streamer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return
	}
	// The speaker goroutine reads the mixer; additions go through its lock
	speaker.Lock()
	b.mixer.Add(tone(b.cfg))
	speaker.Unlock()
}

// Close silences pending tones and stops the speaker
func (b *Bell) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return
	}
	speaker.Clear()
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	b.started = false
}
