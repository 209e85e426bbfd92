package skyraid

import (
	"strings"
	"testing"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
	"github.com/vovakirdan/skyraid/internal/registry"
)

func newTestGame(stream bool) *Game {
	g := New()
	if stream {
		g = NewStream()
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 48, Seed: 42})
	return g
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"skyraid", "skyraid_stream"} {
		if !registry.Exists(id) {
			t.Errorf("registry.Exists(%q) = false, expected true", id)
		}
	}
	if got := New().ID(); got != "skyraid" {
		t.Errorf("New().ID() = %q, expected skyraid", got)
	}
	if got := NewStream().ID(); got != "skyraid_stream" {
		t.Errorf("NewStream().ID() = %q, expected skyraid_stream", got)
	}
}

func TestGameDeterministic(t *testing.T) {
	a := newTestGame(false)
	b := newTestGame(false)

	for i := 0; i < 600; i++ {
		in := core.InputFrame{}
		if i%50 < 10 {
			in = press(core.ActionLeft)
		}
		a.Step(in)
		b.Step(in)
	}

	sa, sb := a.Session().Snapshot(), b.Session().Snapshot()
	if sa.Hash() != sb.Hash() {
		t.Error("two games with the same seed diverged")
	}
}

func TestKeyPressHoldsSteering(t *testing.T) {
	g := newTestGame(false)
	start := g.Session().Player.CX
	speed := g.Session().Player.Speed

	g.Step(press(core.ActionLeft))
	for i := 1; i < keyHoldFrames; i++ {
		g.Step(core.InputFrame{})
	}

	expected := start - speed*keyHoldFrames
	if got := g.Session().Player.CX; got != expected {
		t.Errorf("CX = %v, expected %v", got, expected)
	}
}

func TestPointerSteering(t *testing.T) {
	g := newTestGame(false)
	start := g.Session().Player.CX

	g.Step(core.InputFrame{Pointer: core.Pointer{Active: true, X: g.layout.x0, Y: 20}})

	if got := g.Session().Player.CX; got >= start {
		t.Errorf("CX = %v, expected to move left of %v", got, start)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(false)
	g.Step(core.InputFrame{})

	res := g.Step(press(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	frame := g.Session().Frame()
	g.Step(core.InputFrame{})
	if g.Session().Frame() != frame {
		t.Errorf("Frame() = %d while paused, expected %d", g.Session().Frame(), frame)
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resumed")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(false)
	g.Session().DamagePlayer()

	res := g.Step(core.InputFrame{})
	if !res.State.GameOver {
		t.Fatal("expected game over")
	}
	if g.Accepting() {
		t.Error("Accepting() = true after game over")
	}

	for i := 0; i < streamRestartDelay*2; i++ {
		g.Step(core.InputFrame{})
	}
	if !g.State().GameOver {
		t.Fatal("normal mode restarted on its own")
	}

	g.Step(press(core.ActionRestart))
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("State() = %+v, expected a fresh run", g.State())
	}
	if !g.Accepting() {
		t.Error("Accepting() = false after restart")
	}
	if got := g.Session().Seed(); got != 43 {
		t.Errorf("Seed() = %d, expected 43", got)
	}
}

func TestStreamAutoRestart(t *testing.T) {
	g := newTestGame(true)
	g.Session().DamagePlayer()

	for i := 0; i < streamRestartDelay-1; i++ {
		g.Step(core.InputFrame{})
	}
	if !g.State().GameOver {
		t.Fatal("stream restarted early")
	}

	g.Step(core.InputFrame{})
	if g.State().GameOver {
		t.Fatal("stream did not restart")
	}
	if got := g.Session().Seed(); got != 43 {
		t.Errorf("Seed() = %d, expected 43", got)
	}
}

func TestCommandsStagedUntilStep(t *testing.T) {
	g := newTestGame(false)

	if !g.SpawnBarrel() {
		t.Fatal("SpawnBarrel() = false")
	}
	if len(g.Session().Barrels) != 0 {
		t.Error("barrel spawned before the next frame")
	}

	g.Step(core.InputFrame{})
	if len(g.Session().Barrels) == 0 {
		t.Error("staged barrel not applied")
	}
}

func TestCommandValidation(t *testing.T) {
	g := newTestGame(false)

	tests := []struct {
		name     string
		call     func() bool
		expected bool
	}{
		{"chaser", func() bool { return g.SpawnEnemy("chaser") }, true},
		{"unknown enemy", func() bool { return g.SpawnEnemy("dragon") }, false},
		{"gate x2", func() bool { return g.SpawnGate("x2") }, true},
		{"gate x0", func() bool { return g.SpawnGate("x0") }, false},
		{"gate garbage", func() bool { return g.SpawnGate("hello") }, false},
		{"boss 0", func() bool { return g.ForceBossSpawn(0) }, true},
		{"boss negative", func() bool { return g.ForceBossSpawn(-1) }, false},
		{"boss past roster", func() bool { return g.ForceBossSpawn(g.BossCount()) }, false},
		{"obstacle", func() bool { return g.SpawnObstacle() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.call(); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCommandsRejectedAfterGameOver(t *testing.T) {
	g := newTestGame(false)
	g.Session().DamagePlayer()
	g.Step(core.InputFrame{})

	if g.SpawnBarrel() || g.SpawnEnemy("chaser") || g.ForceBossSpawn(0) {
		t.Error("command accepted after game over")
	}
}

func TestListenerSurvivesRestart(t *testing.T) {
	g := newTestGame(false)
	shots := 0
	g.AddListener(sim.EventSound, sim.ListenerFunc(func(e sim.Event) {
		shots++
	}))

	g.Session().DamagePlayer()
	g.Step(core.InputFrame{})
	g.Step(press(core.ActionRestart))
	shots = 0

	for i := 0; i < 30; i++ {
		g.Step(core.InputFrame{})
	}
	if shots == 0 {
		t.Error("listener lost after restart")
	}
}

func TestSummary(t *testing.T) {
	g := newTestGame(false)
	for i := 0; i < 10; i++ {
		g.Step(core.InputFrame{})
	}

	s := g.Summary()
	if s.Frames != 10 {
		t.Errorf("Frames = %d, expected 10", s.Frames)
	}
	if s.PeakFirePower != 1 {
		t.Errorf("PeakFirePower = %d, expected 1", s.PeakFirePower)
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := newTestGame(false)
	for i := 0; i < 5; i++ {
		g.Step(core.InputFrame{})
	}

	g.Resize(120, 50)
	if g.Session().Frame() != 5 {
		t.Errorf("Frame() = %d after resize, expected 5", g.Session().Frame())
	}

	g.Resize(10, 5)
	g.Step(core.InputFrame{})
	if g.Session().Frame() != 5 {
		t.Error("game advanced on a screen that is too small")
	}
}

func TestNotifications(t *testing.T) {
	n := NewNotifications()
	for _, v := range []string{"v0", "v1", "v2", "v3", "v4", "v5"} {
		n.Add(v, "sent a Rose", core.ColorRed)
	}

	active := n.Active()
	if len(active) != maxNotifications {
		t.Fatalf("len(Active()) = %d, expected %d", len(active), maxNotifications)
	}
	if active[0].Viewer != "v2" {
		t.Errorf("oldest = %q, expected v2", active[0].Viewer)
	}

	for i := 0; i < notificationLife-1; i++ {
		n.Tick()
	}
	if len(n.Active()) != maxNotifications {
		t.Error("notifications expired early")
	}
	n.Tick()
	if len(n.Active()) != 0 {
		t.Errorf("len(Active()) = %d, expected 0", len(n.Active()))
	}

	n.Add("", "followed", core.ColorWhite)
	if got := n.Active()[0].Viewer; got != "???" {
		t.Errorf("Viewer = %q, expected ???", got)
	}
}

func TestStarfieldStaysInWorld(t *testing.T) {
	f := NewStarfield(7, 600, 800)
	for i := 0; i < 1000; i++ {
		f.Update()
	}
	for _, layer := range f.Layers {
		for _, s := range layer.Stars {
			if s.X < 0 || s.X > 600 || s.Y < 0 || s.Y > 800 {
				t.Fatalf("star at (%v, %v) outside the world", s.X, s.Y)
			}
		}
	}
}

func TestRenderHUD(t *testing.T) {
	g := newTestGame(false)
	g.Step(core.InputFrame{})

	screen := core.NewScreen(80, 40)
	g.Render(screen)

	hud := strings.Split(screen.String(), "\n")[0]
	for _, want := range []string{"SCORE 0", "FLEET 1/10"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(false)
	g.Session().DamagePlayer()
	g.Step(core.InputFrame{})

	screen := core.NewScreen(80, 40)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Press R") {
		t.Error("game over overlay not drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	screen := core.NewScreen(20, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("too-small message not drawn")
	}
}

func TestRenderNotifications(t *testing.T) {
	g := newTestGame(false)
	g.Notify("alice", "sent a Rose", core.ColorRed)

	screen := core.NewScreen(80, 40)
	g.Render(screen)

	if !strings.Contains(screen.String(), "alice ▸ sent a Rose") {
		t.Error("notification not drawn")
	}
}

func TestLayout(t *testing.T) {
	l := computeLayout(80, 40, 600, 800)
	if l.h != 39 || l.w != 58 || l.x0 != 11 || l.y0 != 1 {
		t.Errorf("computeLayout() = %+v, expected 58x39 at (11, 1)", l)
	}

	for _, wx := range []float64{0, 150, 300, 599} {
		back, ok := l.worldX(l.cellX(wx))
		if !ok {
			t.Fatal("worldX() not ok")
		}
		if d := back - wx; d < -600.0/58 || d > 600.0/58 {
			t.Errorf("worldX(cellX(%v)) = %v, expected within one cell", wx, back)
		}
	}

	if x, _ := l.worldX(-100); x != 0 {
		t.Errorf("worldX(-100) = %v, expected 0", x)
	}
	if x, _ := l.worldX(500); x != 600 {
		t.Errorf("worldX(500) = %v, expected 600", x)
	}
}

func TestRenderBorderAndClipping(t *testing.T) {
	g := newTestGame(false)
	screen := core.NewScreen(80, 40)
	g.Render(screen)

	l := g.layout
	for y := l.y0; y < l.y0+l.h; y++ {
		if screen.Get(l.x0-1, y) != BorderChar || screen.Get(l.x0+l.w, y) != BorderChar {
			t.Fatalf("border missing at row %d", y)
		}
	}

	c := canvas{dst: core.NewScreen(80, 40), clip: l, view: l}
	c.fill(core.Box{X: -400, Y: -400, W: 100, H: 100}, '#', core.ColorRed)
	if strings.ContainsRune(c.dst.String(), '#') {
		t.Error("fill() drew a box that lies outside the field")
	}

	// Straddles the right edge: only the inside part is drawn
	c.fill(core.Box{X: 580, Y: 100, W: 100, H: 40}, '#', core.ColorRed)
	drawn := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			if c.dst.Get(x, y) != '#' {
				continue
			}
			drawn++
			if x >= l.x0+l.w {
				t.Fatalf("fill() drew at column %d past the field edge %d", x, l.x0+l.w)
			}
		}
	}
	if drawn == 0 {
		t.Error("fill() dropped the part inside the field")
	}
}

func TestSetDifficulty(t *testing.T) {
	g := New()
	g.SetDifficulty("hard")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 48, Seed: 42})

	if g.cfg.Milestones.MidBossFirst != 1000 {
		t.Errorf("MidBossFirst = %d, expected 1000 for hard", g.cfg.Milestones.MidBossFirst)
	}
	if g.cfg.Spawn.WaveCap != 4 {
		t.Errorf("WaveCap = %d, expected 4 for hard", g.cfg.Spawn.WaveCap)
	}

	base := g.cfg.Spawn.EnemyInterval
	if got := g.Session().EnemyInterval(); got >= base {
		t.Errorf("EnemyInterval() = %v, expected a head start below %v for hard", got, base)
	}

	g.SetDifficulty("fixed")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 48, Seed: 42})
	if g.cfg.Difficulty.Preset != config.DifficultyFixed {
		t.Errorf("Preset = %q, expected fixed", g.cfg.Difficulty.Preset)
	}
	if got := g.Session().EnemyInterval(); got != base {
		t.Errorf("EnemyInterval() = %v, expected %v for fixed", got, base)
	}

	var _ registry.Tunable = g
}
