package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
)

const (
	sampleRate  = beep.SampleRate(48000)
	maxVoices   = 24
	musicVolume = 0.15
)

// Config holds playback settings.
type Config struct {
	Volume float64 // master volume, 0..1
	Music  bool
}

// DefaultConfig returns the standard mix.
func DefaultConfig() Config {
	return Config{Volume: 0.5, Music: true}
}

// Player mixes cue sounds into the speaker. It implements sim.Listener.
type Player struct {
	mu     sync.Mutex
	config Config
	logger *log.Logger

	mixer *beep.Mixer
	music *beep.Ctrl
	seed  uint64

	ready    bool // accepting sounds
	attached bool // mixer is playing on the speaker
}

// NewPlayer creates a player. Nothing is audible until Init succeeds.
func NewPlayer(cfg Config, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		config: cfg,
		logger: logger,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(withVolume(p.mixer, p.config.Volume))
	p.ready = true
	p.attached = true

	if p.config.Music {
		p.startMusicLocked()
	}
	p.logger.Debug("audio ready", "rate", int(sampleRate))
	return nil
}

// OnEvent plays sound cues. Music pauses at game over and comes back
// once the next run scores.
func (p *Player) OnEvent(e sim.Event) {
	switch e.Type {
	case sim.EventSound:
		p.Play(e.Cue)
	case sim.EventGameOver:
		p.StopMusic()
	case sim.EventScore:
		if p.MusicPaused() {
			p.StartMusic()
		}
	}
}

// Play mixes in the cue. Cues beyond the voice limit are dropped.
func (p *Player) Play(c sim.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	p.seed++
	s := CueStreamer(c, sampleRate, p.seed)
	if s == nil {
		p.logger.Debug("no sound for cue", "cue", string(c))
		return
	}
	p.add(s, true)
}

// StartMusic starts the background loop if it is not running.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		p.startMusicLocked()
	}
}

func (p *Player) startMusicLocked() {
	if p.music != nil {
		p.lock()
		p.music.Paused = false
		p.unlock()
		return
	}
	p.music = &beep.Ctrl{Streamer: withVolume(NewMusicGenerator(sampleRate), musicVolume)}
	p.add(p.music, false)
}

// MusicPaused reports whether the loop exists and is paused.
func (p *Player) MusicPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music == nil {
		return false
	}
	p.lock()
	defer p.unlock()
	return p.music.Paused
}

// StopMusic pauses the background loop.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.music != nil {
		p.lock()
		p.music.Paused = true
		p.unlock()
	}
}

// Close silences everything. The speaker itself stays open.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	p.lock()
	p.mixer.Clear()
	p.unlock()
	p.music = nil
	p.ready = false
}

// Voices returns how many streams are mixing.
func (p *Player) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}

func (p *Player) add(s beep.Streamer, limited bool) {
	p.lock()
	defer p.unlock()
	if limited && p.mixer.Len() >= maxVoices {
		return
	}
	p.mixer.Add(s)
}

// lock guards the mixer against the speaker goroutine.
func (p *Player) lock() {
	if p.attached {
		speaker.Lock()
	}
}

func (p *Player) unlock() {
	if p.attached {
		speaker.Unlock()
	}
}
