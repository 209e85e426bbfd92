// Package sim is the deterministic skyraid simulation: a fleet at the bottom
// of a 600x800 world shooting its way through enemies, hazards and bosses.
//
// A Session owns every entity collection, the RNG and the event dispatcher.
// Nothing here touches the terminal, the clock or the network; the same seed
// and inputs always produce the same frames.
package sim

import (
	"github.com/vovakirdan/skyraid/internal/config"
)

// RunStats summarizes a run for storage.
type RunStats struct {
	Frames           uint64
	BossesDefeated   int
	EnemiesDestroyed int
	PeakFirePower    int
}

// Session is one game session.
type Session struct {
	cfg    config.SkyraidConfig
	seed   int64
	rng    *SimpleRNG
	events *Dispatcher
	ramp   *config.SpawnRamp

	width, height float64

	Player    *Player
	Bullets   []*Bullet
	Enemies   []*Enemy
	Bosses    []*Boss
	Barrels   []*Barrel
	Obstacles []*Obstacle
	Gates     []*Gate
	PowerUps  []*PowerUp
	Particles []*Particle

	// Bosses born during a frame join the Bosses collection at frame end.
	pendingBosses []*Boss

	score    int
	gameOver bool
	frame    uint64

	enemyTimer    int
	enemyInterval float64
	gateTimer     int
	barrelTimer   int
	obstacleTimer int

	midBossMilestone   int
	finalBossMilestone int
	finalBossActive    bool

	shakeDuration  int
	shakeMagnitude int

	stats RunStats
}

// NewSession creates a session from a tuning config and an RNG seed.
func NewSession(cfg config.SkyraidConfig, seed int64) *Session {
	s := &Session{
		cfg:    cfg,
		events: NewDispatcher(),
	}
	s.Reset(seed)
	return s
}

// Reset starts a fresh run with the given seed. Subscriptions are kept.
func (s *Session) Reset(seed int64) {
	s.seed = seed
	s.rng = NewSimpleRNG(seed)
	s.width = s.cfg.World.Width
	s.height = s.cfg.World.Height

	s.ramp = config.NewSpawnRamp(s.cfg.Difficulty, s.cfg.Spawn.EnemyInterval)
	s.enemyInterval = s.ramp.Start()

	s.Bullets = nil
	s.Enemies = nil
	s.Bosses = nil
	s.Barrels = nil
	s.Obstacles = nil
	s.Gates = nil
	s.PowerUps = nil
	s.Particles = nil
	s.pendingBosses = nil

	s.score = 0
	s.gameOver = false
	s.frame = 0
	s.enemyTimer = 0
	s.gateTimer = 0
	s.barrelTimer = 0
	s.obstacleTimer = 0
	s.midBossMilestone = s.cfg.Milestones.MidBossFirst
	s.finalBossMilestone = s.cfg.Milestones.FinalBossFirst
	s.finalBossActive = false
	s.shakeDuration = 0
	s.shakeMagnitude = 0

	s.Player = newPlayer(s)
	s.stats = RunStats{PeakFirePower: s.Player.FirePower}
}

// Step advances the simulation by one frame.
func (s *Session) Step(in Input) {
	if s.gameOver {
		return
	}

	s.Player.update(s, in)

	for _, b := range s.Bullets {
		b.update(s)
	}
	s.Bullets = prune(s.Bullets)

	s.runSpawner()

	for _, e := range s.Enemies {
		e.update(s)
	}
	s.Enemies = prune(s.Enemies)

	for _, b := range s.Bosses {
		b.update(s)
	}
	s.Bosses = prune(s.Bosses)

	for _, g := range s.Gates {
		g.update(s)
	}
	s.Gates = prune(s.Gates)

	for _, b := range s.Barrels {
		b.update(s)
	}
	s.Barrels = prune(s.Barrels)

	for _, o := range s.Obstacles {
		o.update(s)
	}
	s.Obstacles = prune(s.Obstacles)

	for _, p := range s.Particles {
		p.update()
	}
	s.Particles = prune(s.Particles)

	for _, p := range s.PowerUps {
		p.update(s)
	}
	s.PowerUps = prune(s.PowerUps)

	if s.shakeDuration > 0 {
		s.shakeDuration--
	}

	s.checkCollisions()
	s.mergePending()

	s.frame++
	s.stats.Frames = s.frame
	s.stats.PeakFirePower = max(s.stats.PeakFirePower, s.Player.FirePower)
}

// mergePending moves bosses born this frame into the live collection.
func (s *Session) mergePending() {
	if len(s.pendingBosses) == 0 {
		return
	}
	s.Bosses = append(s.Bosses, s.pendingBosses...)
	clear(s.pendingBosses)
	s.pendingBosses = s.pendingBosses[:0]
}

// Events returns the dispatcher for subscribing listeners.
func (s *Session) Events() *Dispatcher {
	return s.events
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// GameOver reports whether the fleet has been destroyed.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// Frame returns the number of completed frames.
func (s *Session) Frame() uint64 {
	return s.frame
}

// Seed returns the seed of the current run.
func (s *Session) Seed() int64 {
	return s.seed
}

// Width returns the world width.
func (s *Session) Width() float64 {
	return s.width
}

// Height returns the world height.
func (s *Session) Height() float64 {
	return s.height
}

// Stats returns the run summary so far.
func (s *Session) Stats() RunStats {
	return s.stats
}

// EnemyInterval returns the current frames between scheduled enemies.
func (s *Session) EnemyInterval() float64 {
	return s.enemyInterval
}

// FinalBossActive reports whether the final boss is on the field.
func (s *Session) FinalBossActive() bool {
	return s.finalBossActive
}

// Shake returns the remaining shake frames and the magnitude.
func (s *Session) Shake() (duration, magnitude int) {
	return s.shakeDuration, s.shakeMagnitude
}

// TriggerShake overwrites the current screen shake.
func (s *Session) TriggerShake(duration, magnitude int) {
	s.shakeDuration = duration
	s.shakeMagnitude = magnitude
	s.events.Dispatch(Event{Type: EventShake, Duration: duration, Magnitude: magnitude})
}

func (s *Session) addScore(n int) {
	s.score += n
	s.events.Dispatch(Event{Type: EventScore, Value: s.score})
}

func (s *Session) emitLives() {
	s.events.Dispatch(Event{Type: EventLives, Value: s.Player.FirePower})
}

func (s *Session) playSound(c Cue) {
	s.events.Dispatch(Event{Type: EventSound, Cue: c})
}

func (s *Session) triggerGameOver() {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.events.Dispatch(Event{Type: EventGameOver, Value: s.score})
}
