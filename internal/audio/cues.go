package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
)

const ms = time.Millisecond

var shootVoice = Voice{
	Wave: WaveSquare, FreqStart: 800, FreqEnd: 300, FreqRamp: RampExp,
	GainStart: 0.3, GainEnd: 0.01, GainRamp: RampExp, Duration: 100 * ms,
}

// cueVoices lists the voices mixed for each cue.
var cueVoices = map[sim.Cue][]Voice{
	sim.CueShootNormal: {shootVoice},
	sim.CueShootDouble: {shootVoice},
	sim.CueShootLaser: {{
		Wave: WaveSaw, FreqStart: 600, FreqEnd: 600,
		GainStart: 0.2, GainEnd: 0.01, Duration: 200 * ms,
	}},
	sim.CueShootRipple: {{
		Wave: WaveSine, FreqStart: 400, FreqEnd: 1200,
		GainStart: 0.4, GainEnd: 0.01, GainRamp: RampExp, Duration: 150 * ms,
	}},
	sim.CueShootMissile: {
		{
			Wave: WaveSine, FreqStart: 120, FreqEnd: 2000, FreqRamp: RampExp,
			GainStart: 0.35, GainEnd: 0.01, GainRamp: RampExp, Attack: 50 * ms, Duration: 280 * ms,
		},
		{
			Wave: WaveNoise, GainStart: 0.08, GainEnd: 0.001, GainRamp: RampExp,
			Duration: 250 * ms, Cutoff: 3000,
		},
	},
	sim.CueExplosion: {{
		Wave: WaveNoise, GainStart: 0.7, GainEnd: 0.01, GainRamp: RampExp,
		Duration: 500 * ms, Cutoff: 800,
	}},
	sim.CuePowerUp: {
		note(440, 0, 100*ms),
		note(554, 50*ms, 100*ms),
		note(659, 100*ms, 100*ms),
		note(880, 150*ms, 200*ms),
	},
	sim.CueDamage: {{
		Wave: WaveSaw, FreqStart: 150, FreqEnd: 50,
		GainStart: 0.8, GainEnd: 0.01, GainRamp: RampExp, Duration: 300 * ms,
	}},
	sim.CueBeam: {{
		Wave: WaveSaw, FreqStart: 110, FreqEnd: 90,
		GainStart: 0.3, GainEnd: 0.01, GainRamp: RampExp, Duration: 400 * ms, Cutoff: 1200,
	}},
}

func note(freq float64, at, length time.Duration) Voice {
	return Voice{
		Wave: WaveSine, FreqStart: freq, FreqEnd: freq,
		GainStart: 0.3, GainEnd: 0.01, GainRamp: RampExp,
		Duration: length, Delay: at,
	}
}

// CueStreamer builds a fresh streamer for the cue, or nil if the cue has no sound.
func CueStreamer(c sim.Cue, sr beep.SampleRate, seed uint64) beep.Streamer {
	voices, ok := cueVoices[c]
	if !ok {
		return nil
	}
	streams := make([]beep.Streamer, len(voices))
	for i, v := range voices {
		streams[i] = v.Streamer(sr, seed+uint64(i))
	}
	if len(streams) == 1 {
		return streams[0]
	}
	return beep.Mix(streams...)
}

// withVolume scales s by a linear factor.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
