package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue durations
const (
	flapDuration  = 90 * time.Millisecond
	pointDuration = 70 * time.Millisecond
	hitDuration   = 260 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency glides linearly from freq to
// endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from start to end Hz.
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		endFreq:  end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential-looking release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

// NewEnvelope fades s in over attack and out over the rest of duration.
func NewEnvelope(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		} else if rest := e.total - e.attack; rest > 0 {
			remaining := float64(e.total-e.position) / float64(rest)
			vol = remaining * remaining
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// FlapSound is a short upward chirp.
func FlapSound(rate beep.SampleRate, volume float64) beep.Streamer {
	osc := NewSweep(420, 780, flapDuration, WaveSine, rate)
	return newVolume(NewEnvelope(osc, flapDuration, 5*time.Millisecond, rate), volume)
}

// PointSound is a two-note chime.
func PointSound(rate beep.SampleRate, volume float64) beep.Streamer {
	first := NewEnvelope(NewOscillator(988, pointDuration, WaveSquare, rate), pointDuration, 2*time.Millisecond, rate)
	second := NewEnvelope(NewOscillator(1319, 2*pointDuration, WaveSquare, rate), 2*pointDuration, 2*time.Millisecond, rate)
	return newVolume(beep.Seq(first, second), volume*0.5)
}

// HitSound is a low thud with noise on top.
func HitSound(rate beep.SampleRate, volume float64) beep.Streamer {
	thud := NewEnvelope(NewSweep(160, 60, hitDuration, WaveSaw, rate), hitDuration, 3*time.Millisecond, rate)
	noise := NewEnvelope(NewOscillator(0, hitDuration/2, WaveNoise, rate), hitDuration/2, time.Millisecond, rate)
	return newVolume(beep.Mix(newVolume(thud, 0.7), newVolume(noise, 0.3)), volume)
}
