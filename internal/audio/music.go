package audio

import (
	"math"

	"github.com/gopxl/beep"
)

const (
	musicTempo = 140 // bpm
	musicSteps = 16  // eighth notes per loop
)

// melodySteps are the loop steps that carry a melody note.
var melodySteps = map[int]bool{0: true, 3: true, 6: true, 10: true, 13: true}

// MusicGenerator plays an endless bass and melody loop.
type MusicGenerator struct {
	sr      beep.SampleRate
	pos     int
	step    int // samples per eighth note
	phaseB  float64
	phaseM  float64
	bassLen int
	melLen  int
	attack  int
}

// NewMusicGenerator creates the background loop at sr.
func NewMusicGenerator(sr beep.SampleRate) *MusicGenerator {
	quarter := 60.0 / musicTempo
	return &MusicGenerator{
		sr:      sr,
		step:    int(float64(sr) * quarter / 2),
		bassLen: int(float64(sr) * 0.2),
		melLen:  int(float64(sr) * 0.1),
		attack:  int(float64(sr) * 0.02),
	}
}

func (g *MusicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		stepIdx := (g.pos / g.step) % musicSteps
		inStep := g.pos % g.step

		bassFreq, melFreq := 55.0, 440.0 // A1, A4
		if stepIdx%8 >= 4 {
			bassFreq, melFreq = 48.99, 392.0 // G1, G4
		}

		val := 0.0
		if stepIdx%2 == 0 && inStep < g.bassLen {
			sq := 1.0
			if g.phaseB >= 0.5 {
				sq = -1
			}
			val += 0.4 * g.env(inStep, g.bassLen) * sq
		}
		if melodySteps[stepIdx] && inStep < g.melLen {
			val += 0.3 * g.env(inStep, g.melLen) * math.Sin(2*math.Pi*g.phaseM)
		}

		samples[i][0] = val
		samples[i][1] = val

		g.phaseB += bassFreq / float64(g.sr)
		g.phaseB -= math.Floor(g.phaseB)
		g.phaseM += melFreq / float64(g.sr)
		g.phaseM -= math.Floor(g.phaseM)
		g.pos++
	}
	return len(samples), true
}

func (g *MusicGenerator) Err() error { return nil }

// env is a short linear attack followed by an exponential decay to 0.001.
func (g *MusicGenerator) env(at, length int) float64 {
	if at < g.attack {
		return float64(at) / float64(g.attack)
	}
	t := float64(at-g.attack) / float64(length-g.attack)
	return math.Pow(0.001, t)
}
