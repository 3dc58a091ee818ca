package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length wave
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator returns a streamer producing duration worth of wave at freq
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, length: rate.N(duration), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release inside duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		samples[i][0] *= e.gain()
		samples[i][1] *= e.gain()
		e.position++
	}
	return n, ok
}

// gain is the envelope level at the current position, in [0, 1]
func (e *envelope) gain() float64 {
	if e.position < e.attack {
		return float64(e.position) / float64(e.attack)
	}
	if left := e.total - e.position; e.release > 0 && left < e.release {
		return float64(left) / float64(e.release)
	}
	return 1
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silence
// effects.Volume works in log2 steps, so the level is converted
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
