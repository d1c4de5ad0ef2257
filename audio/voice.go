// Package audio synthesises the short chirps birds make when they move.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Chirp envelope timings.
const (
	chirpAttack   = 10 * time.Millisecond
	chirpSweep    = 90 * time.Millisecond
	chirpDecay    = 140 * time.Millisecond
	chirpDuration = 180 * time.Millisecond

	// gain reached at the end of the exponential decay
	chirpFloor = 0.0001
)

// Tone describes one chirp.
type Tone struct {
	Base float64 // start frequency in Hz
	End  float64 // frequency after the sweep
	Peak float64 // gain at the end of the attack
}

// voice is a triangle oscillator with an exponential downward sweep and an
// attack/exponential-decay envelope.
type voice struct {
	tone  Tone
	rate  beep.SampleRate
	phase float64
	pos   int

	attack int
	sweep  int
	decay  int
	total  int
}

// NewVoice creates a streamer that plays t once and then drains.
func NewVoice(t Tone, rate beep.SampleRate) beep.Streamer {
	return &voice{
		tone:   t,
		rate:   rate,
		attack: max(1, rate.N(chirpAttack)),
		sweep:  max(1, rate.N(chirpSweep)),
		decay:  rate.N(chirpDecay),
		total:  rate.N(chirpDuration),
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.pos >= v.total {
			return i, i > 0
		}

		val := triangle(v.phase) * v.gain()
		samples[i][0] = val
		samples[i][1] = val

		v.phase += v.freq() / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// freq sweeps exponentially from Base to End, then holds.
func (v *voice) freq() float64 {
	t := math.Min(float64(v.pos)/float64(v.sweep), 1)
	return v.tone.Base * math.Pow(v.tone.End/v.tone.Base, t)
}

// gain ramps linearly to Peak over the attack, then decays exponentially
// to chirpFloor by the end of the decay and holds there.
func (v *voice) gain() float64 {
	switch {
	case v.pos < v.attack:
		return v.tone.Peak * float64(v.pos) / float64(v.attack)
	case v.pos < v.decay:
		t := float64(v.pos-v.attack) / float64(v.decay-v.attack)
		return v.tone.Peak * math.Pow(chirpFloor/v.tone.Peak, t)
	default:
		return chirpFloor
	}
}

// triangle maps a phase in [0,1) onto a triangle wave in [-1,1].
func triangle(phase float64) float64 {
	return 1 - 4*math.Abs(phase-0.5)
}

// newVolume wraps s with a linear gain. Zero or negative gain is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
