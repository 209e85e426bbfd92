// Package skyraid adapts the sim core to the terminal platform: it maps
// platform input to fleet controls, stages commands from other goroutines,
// and draws the 600x800 world into a terminal cell screen.
package skyraid

import (
	"sync/atomic"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
	"github.com/vovakirdan/skyraid/internal/registry"
)

// Mode selects how a run ends.
type Mode int

const (
	ModeNormal Mode = iota // Game over waits for R
	ModeStream             // Game over restarts on its own, for unattended streams
)

const (
	streamRestartDelay = 96 // frames, 2s at 48 fps
	keyHoldFrames      = 6  // a key press steers for this many frames
	minScreenW         = 30
	minScreenH         = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for games that do not pick
// their own.
func SetDifficultyPreset(preset string) {
	difficultyPreset = parsePreset(preset)
}

func parsePreset(preset string) config.DifficultyPreset {
	switch preset {
	case "easy":
		return config.DifficultyEasy
	case "normal":
		return config.DifficultyNormal
	case "hard":
		return config.DifficultyHard
	case "fixed":
		return config.DifficultyFixed
	default:
		return ""
	}
}

type subscription struct {
	event    sim.EventType
	listener sim.Listener
}

// Game implements the skyraid game for the registry.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.SkyraidConfig
	preset  config.DifficultyPreset
	session *sim.Session

	// Bridge goroutines only touch these three.
	queue sim.CommandQueue
	notes *Notifications
	over  atomic.Bool

	subs  []subscription
	stars *Starfield

	paused    bool
	restartIn int
	restarts  int64
	holdLeft  int
	holdRight int

	layout         fieldLayout
	screenTooSmall bool
}

// New creates a skyraid game that waits for a restart after game over.
func New() *Game {
	return &Game{mode: ModeNormal, notes: NewNotifications()}
}

// NewStream creates a skyraid game that restarts itself after game over.
func NewStream() *Game {
	return &Game{mode: ModeStream, notes: NewNotifications()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeStream {
		return "skyraid_stream"
	}
	return "skyraid"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeStream {
		return "Skyraid (Stream)"
	}
	return "Skyraid"
}

// Reset loads the tuning and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSkyraid(configPath)
	if err != nil {
		cfg = config.DefaultSkyraidConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplySkyraidPreset(&cfg, preset)
	}
	g.cfg = cfg

	g.restarts = 0
	g.Resize(runtime.ScreenW, runtime.ScreenH)
	g.notes.Clear()
	g.newRun(runtime.Seed)
}

// SetDifficulty picks the preset for this game only, taking effect at the
// next Reset. Unknown names clear it.
func (g *Game) SetDifficulty(preset string) {
	g.preset = parsePreset(preset)
}

// Resize relays out the field without touching the run.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < minScreenW || h < minScreenH
	g.layout = computeLayout(w, h, g.cfg.World.Width, g.cfg.World.Height)
}

func (g *Game) newRun(seed int64) {
	g.session = sim.NewSession(g.cfg, seed)
	for _, s := range g.subs {
		g.session.Events().Subscribe(s.event, s.listener)
	}
	g.stars = NewStarfield(seed, g.cfg.World.Width, g.cfg.World.Height)
	g.queue.Drain()
	g.over.Store(false)
	g.paused = false
	g.restartIn = 0
	g.holdLeft = 0
	g.holdRight = 0
}

// restart begins the next run with a derived seed.
func (g *Game) restart() {
	g.restarts++
	g.newRun(g.runtime.Seed + g.restarts)
}

// AddListener subscribes l to simulation events of type t, for this run and
// every later one.
func (g *Game) AddListener(t sim.EventType, l sim.Listener) {
	g.subs = append(g.subs, subscription{event: t, listener: l})
	if g.session != nil {
		g.session.Events().Subscribe(t, l)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) && g.session.GameOver() {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.notes.Tick()
	g.stars.Update()

	if g.session.GameOver() {
		g.syncOver()
		g.queue.Drain()
		if g.mode == ModeStream {
			g.restartIn--
			if g.restartIn <= 0 {
				g.restart()
			}
		}
		return core.StepResult{State: g.State()}
	}

	g.session.Apply(g.queue.Drain())
	g.session.Step(g.simInput(in))
	g.syncOver()

	return core.StepResult{State: g.State()}
}

// syncOver publishes the end of a run to the bridge and arms the stream restart.
func (g *Game) syncOver() {
	if g.session.GameOver() && !g.over.Load() {
		g.over.Store(true)
		g.restartIn = streamRestartDelay
	}
}

// simInput converts platform input into fleet controls.
func (g *Game) simInput(in core.InputFrame) sim.Input {
	switch {
	case in.Has(core.ActionLeft):
		g.holdLeft = keyHoldFrames
		g.holdRight = 0
	case in.Has(core.ActionRight):
		g.holdRight = keyHoldFrames
		g.holdLeft = 0
	}

	out := sim.Input{
		Left:  g.holdLeft > 0,
		Right: g.holdRight > 0,
		Grant: in.Grant,
	}
	if g.holdLeft > 0 {
		g.holdLeft--
	}
	if g.holdRight > 0 {
		g.holdRight--
	}

	if in.Pointer.Active {
		if wx, ok := g.layout.worldX(in.Pointer.X); ok {
			out.Pointer = true
			out.PointerX = wx
		}
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Lives:    g.session.Player.FirePower,
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
	}
}

// Summary returns the run statistics for storage.
func (g *Game) Summary() core.RunSummary {
	if g.session == nil {
		return core.RunSummary{}
	}
	st := g.session.Stats()
	return core.RunSummary{
		Frames:           st.Frames,
		BossesDefeated:   st.BossesDefeated,
		EnemiesDestroyed: st.EnemiesDestroyed,
		PeakFirePower:    st.PeakFirePower,
	}
}

// Session exposes the running simulation.
func (g *Game) Session() *sim.Session {
	return g.session
}

// The methods below are called by the gift bridge from its own goroutine.
// They validate eagerly and stage the command for the next frame.

// SpawnEnemy stages an enemy of the named kind.
func (g *Game) SpawnEnemy(kind string) bool {
	if _, ok := sim.ParseEnemyKind(kind); !ok || !g.Accepting() {
		return false
	}
	g.queue.Push(sim.Command{Kind: sim.CmdSpawnEnemy, Enemy: kind})
	return true
}

// SpawnBarrel stages a barrel.
func (g *Game) SpawnBarrel() bool {
	if !g.Accepting() {
		return false
	}
	g.queue.Push(sim.Command{Kind: sim.CmdSpawnBarrel})
	return true
}

// SpawnObstacle stages an obstacle.
func (g *Game) SpawnObstacle() bool {
	if !g.Accepting() {
		return false
	}
	g.queue.Push(sim.Command{Kind: sim.CmdSpawnObstacle})
	return true
}

// SpawnGate stages a gate with the given modifier.
func (g *Game) SpawnGate(modifier string) bool {
	if _, _, ok := sim.ParseGateModifier(modifier); !ok || !g.Accepting() {
		return false
	}
	g.queue.Push(sim.Command{Kind: sim.CmdSpawnGate, Modifier: modifier})
	return true
}

// ForceBossSpawn stages the roster boss at index.
func (g *Game) ForceBossSpawn(index int) bool {
	if index < 0 || index >= sim.BossRosterSize() || !g.Accepting() {
		return false
	}
	g.queue.Push(sim.Command{Kind: sim.CmdForceBoss, Boss: index})
	return true
}

// BossCount returns the size of the boss roster.
func (g *Game) BossCount() int {
	return sim.BossRosterSize()
}

// Accepting reports whether commands can currently change the run.
func (g *Game) Accepting() bool {
	return !g.over.Load()
}

// Notify queues an on-screen notification.
func (g *Game) Notify(viewer, message string, color core.Color) {
	g.notes.Add(viewer, message, color)
}

// Register the games with the registry
func init() {
	registry.Register("skyraid", func() registry.Game {
		return New()
	})
	registry.Register("skyraid_stream", func() registry.Game {
		return NewStream()
	})
}
