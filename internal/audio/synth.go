// Package audio synthesizes the game's sound cues and plays them through
// the system speaker.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Ramp is how a parameter moves from its start value to its end value.
type Ramp int

const (
	RampLinear Ramp = iota
	RampExp
)

// Voice is one oscillator with a pitch sweep and a gain envelope.
type Voice struct {
	Wave Wave

	FreqStart, FreqEnd float64
	FreqRamp           Ramp

	GainStart, GainEnd float64
	GainRamp           Ramp

	Attack   time.Duration // linear rise from silence to GainStart
	Duration time.Duration
	Delay    time.Duration

	Cutoff float64 // one-pole low-pass in Hz, 0 disables it
}

// Streamer renders the voice, delay included.
func (v Voice) Streamer(sr beep.SampleRate, seed uint64) beep.Streamer {
	s := &voiceStreamer{
		v:       v,
		sr:      float64(sr),
		total:   sr.N(v.Duration),
		attack:  sr.N(v.Attack),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		lowpass: 1,
	}
	if v.Cutoff > 0 {
		rc := 1 / (2 * math.Pi * v.Cutoff)
		dt := 1 / s.sr
		s.lowpass = dt / (rc + dt)
	}
	if v.Delay <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(sr.N(v.Delay)), s)
}

type voiceStreamer struct {
	v      Voice
	sr     float64
	total  int
	attack int
	pos    int
	phase  float64
	rng    *rand.Rand

	lowpass float64
	last    float64
}

func (s *voiceStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		t := float64(s.pos) / float64(s.total)

		var val float64
		switch s.v.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			val = 1
			if s.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (s.phase - 0.5)
		case WaveNoise:
			val = s.rng.Float64()*2 - 1
		}

		s.last += s.lowpass * (val - s.last)
		val = s.last * s.gain(t)

		samples[i][0] = val
		samples[i][1] = val

		freq := ramp(s.v.FreqStart, s.v.FreqEnd, t, s.v.FreqRamp)
		s.phase += freq / s.sr
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *voiceStreamer) Err() error { return nil }

func (s *voiceStreamer) gain(t float64) float64 {
	if s.pos < s.attack {
		return s.v.GainStart * float64(s.pos) / float64(s.attack)
	}
	if s.attack > 0 {
		start := float64(s.attack) / float64(s.total)
		t = (t - start) / (1 - start)
	}
	return ramp(s.v.GainStart, s.v.GainEnd, t, s.v.GainRamp)
}

// ramp interpolates from a to b at t in [0, 1]. Exponential ramps need
// both ends positive and fall back to linear otherwise.
func ramp(a, b, t float64, r Ramp) float64 {
	if r == RampExp && a > 0 && b > 0 {
		return a * math.Pow(b/a, t)
	}
	return a + (b-a)*t
}
