package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/skyraid/internal/config"
)

// quietConfig returns the default tuning with every scheduled spawn pushed
// out of reach, so tests only see the entities they place.
func quietConfig() config.SkyraidConfig {
	cfg := config.DefaultSkyraidConfig()
	cfg.Spawn.EnemyInterval = 1e9
	cfg.Spawn.GateInterval = 1 << 30
	cfg.Spawn.BarrelInterval = 1 << 30
	cfg.Spawn.ObstacleInterval = 1 << 30
	cfg.Milestones.MidBossFirst = 1 << 30
	cfg.Milestones.FinalBossFirst = 1 << 30
	return cfg
}

func quietSession() *Session {
	return NewSession(quietConfig(), 42)
}

func TestNewSession(t *testing.T) {
	s := quietSession()

	if s.Width() != 600 || s.Height() != 800 {
		t.Errorf("world = %vx%v, expected 600x800", s.Width(), s.Height())
	}
	if s.Player.FirePower != 1 {
		t.Errorf("FirePower = %d, expected 1", s.Player.FirePower)
	}
	if s.Player.CX != 300 || s.Player.CY != 720 {
		t.Errorf("fleet center = (%v, %v), expected (300, 720)", s.Player.CX, s.Player.CY)
	}
	if s.Score() != 0 || s.GameOver() || s.Frame() != 0 {
		t.Errorf("fresh session not zeroed: score=%d over=%v frame=%d", s.Score(), s.GameOver(), s.Frame())
	}
}

func TestSessionReset(t *testing.T) {
	s := quietSession()
	events := 0
	s.Events().Subscribe(EventSound, ListenerFunc(func(Event) { events++ }))

	for i := 0; i < 30; i++ {
		s.Step(Input{})
	}
	s.SpawnEnemy("chaser")
	s.addScore(700)

	s.Reset(7)

	if s.Score() != 0 {
		t.Errorf("Score() after reset = %d, expected 0", s.Score())
	}
	if s.Frame() != 0 {
		t.Errorf("Frame() after reset = %d, expected 0", s.Frame())
	}
	if len(s.Enemies) != 0 || len(s.Bullets) != 0 {
		t.Errorf("collections not cleared: enemies=%d bullets=%d", len(s.Enemies), len(s.Bullets))
	}
	if s.Seed() != 7 {
		t.Errorf("Seed() = %d, expected 7", s.Seed())
	}

	before := events
	s.Step(Input{})
	if events == before {
		t.Error("listener lost after reset")
	}
}

func TestStepCountsFrames(t *testing.T) {
	s := quietSession()
	for i := 0; i < 10; i++ {
		s.Step(Input{})
	}
	if s.Frame() != 10 {
		t.Errorf("Frame() = %d, expected 10", s.Frame())
	}
	if s.Stats().Frames != 10 {
		t.Errorf("Stats().Frames = %d, expected 10", s.Stats().Frames)
	}
}

func TestStepPrunesDeleted(t *testing.T) {
	s := quietSession()
	s.SpawnEnemy("chaser")
	s.SpawnBarrel()
	s.Enemies[0].Deleted = true
	s.Barrels[0].Deleted = true

	s.Step(Input{})

	if len(s.Enemies) != 0 {
		t.Errorf("len(Enemies) = %d, expected 0", len(s.Enemies))
	}
	if len(s.Barrels) != 0 {
		t.Errorf("len(Barrels) = %d, expected 0", len(s.Barrels))
	}
}

func TestPrune(t *testing.T) {
	items := []*Enemy{
		{Body: Body{X: 1}},
		{Body: Body{X: 2, Deleted: true}},
		{Body: Body{X: 3}},
		{Body: Body{X: 4, Deleted: true}},
	}
	if countLive(items) != 2 {
		t.Errorf("countLive() = %d, expected 2", countLive(items))
	}

	got := prune(items)
	if len(got) != 2 {
		t.Fatalf("len(prune()) = %d, expected 2", len(got))
	}
	if got[0].X != 1 || got[1].X != 3 {
		t.Errorf("prune() kept X = %v, %v, expected 1, 3", got[0].X, got[1].X)
	}
	if countLive(got) != 2 {
		t.Errorf("countLive(prune()) = %d, expected 2", countLive(got))
	}
	if items[2] != nil || items[3] != nil {
		t.Error("prune() left stale pointers in the dropped tail")
	}
}

func TestStepAfterGameOverIsNoop(t *testing.T) {
	s := quietSession()
	s.Player.FirePower = 1
	s.DamagePlayer()
	if !s.GameOver() {
		t.Fatal("expected game over")
	}

	frame := s.Frame()
	s.Step(Input{})
	if s.Frame() != frame {
		t.Errorf("Frame() advanced after game over: %d -> %d", frame, s.Frame())
	}
}

func TestGameOverSameFrame(t *testing.T) {
	s := quietSession()
	var gameOvers int
	s.Events().Subscribe(EventGameOver, ListenerFunc(func(Event) { gameOvers++ }))

	// Stationary enemy shot inside the fleet box.
	s.Bullets = append(s.Bullets, newBullet(310, 730, 0, 0, false, BulletNormal))
	s.Step(Input{})

	if !s.GameOver() {
		t.Error("GameOver() = false, expected true in the frame fire-power hit zero")
	}
	if s.Player.FirePower != 0 {
		t.Errorf("FirePower = %d, expected 0", s.Player.FirePower)
	}
	if gameOvers != 1 {
		t.Errorf("game over events = %d, expected 1", gameOvers)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (uint64, int) {
		s := NewSession(config.DefaultSkyraidConfig(), 12345)
		for i := 0; i < 3000 && !s.GameOver(); i++ {
			in := Input{}
			switch {
			case i%90 < 20:
				in.Left = true
			case i%90 < 40:
				in.Right = true
			}
			if i%500 == 250 {
				s.ForceBossSpawn(i / 500 % BossRosterSize())
			}
			s.Step(in)
		}
		snap := s.Snapshot()
		return snap.Hash(), s.Score()
	}

	h1, score1 := run()
	h2, score2 := run()

	if h1 != h2 {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", h1, h2)
	}
	if score1 != score2 {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", score1, score2)
	}
}

func TestEnemyIntervalRamp(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawn.EnemyInterval = 20
	s := NewSession(cfg, 1)

	for i := 0; i < 21; i++ {
		s.runSpawner()
	}

	if len(s.Enemies) != 1 {
		t.Fatalf("len(Enemies) = %d, expected 1", len(s.Enemies))
	}
	if math.Abs(s.EnemyInterval()-19.8) > 1e-9 {
		t.Errorf("EnemyInterval() = %v, expected 19.8", s.EnemyInterval())
	}
}

func TestMidBossMilestone(t *testing.T) {
	cfg := quietConfig()
	cfg.Milestones.MidBossFirst = 100
	s := NewSession(cfg, 1)

	s.runSpawner()
	if len(s.Bosses) != 0 {
		t.Fatalf("boss spawned below milestone")
	}

	s.addScore(150)
	s.runSpawner()
	if len(s.Bosses) != 1 || s.Bosses[0].Kind != BossMid {
		t.Fatalf("expected one mid boss, got %d bosses", len(s.Bosses))
	}
	if s.midBossMilestone != 150+cfg.Milestones.MidBossStep {
		t.Errorf("midBossMilestone = %d, expected %d", s.midBossMilestone, 150+cfg.Milestones.MidBossStep)
	}

	s.addScore(cfg.Milestones.MidBossStep)
	s.runSpawner()
	if len(s.Bosses) != 1 {
		t.Errorf("len(Bosses) = %d, expected 1 while a boss is alive", len(s.Bosses))
	}
}

func TestFinalBossBlocksMidBoss(t *testing.T) {
	cfg := quietConfig()
	cfg.Milestones.MidBossFirst = 100
	cfg.Milestones.FinalBossFirst = 100
	s := NewSession(cfg, 1)

	s.addScore(100)
	s.runSpawner()

	// Mid boss is checked first, so both appear on the first crossing.
	if !s.FinalBossActive() {
		t.Fatal("FinalBossActive() = false, expected true")
	}
	for _, b := range s.Bosses {
		b.Deleted = true
	}
	s.Bosses = prune(s.Bosses)
	s.finalBossActive = true

	s.addScore(cfg.Milestones.MidBossStep * 2)
	s.runSpawner()
	if len(s.Bosses) != 0 {
		t.Errorf("len(Bosses) = %d, expected 0 while the final boss is active", len(s.Bosses))
	}
}

func TestShakeDecays(t *testing.T) {
	s := quietSession()
	s.TriggerShake(3, 9)
	for i := 0; i < 3; i++ {
		s.Step(Input{})
	}
	d, m := s.Shake()
	if d != 0 {
		t.Errorf("shake duration = %d, expected 0", d)
	}
	if m != 9 {
		t.Errorf("shake magnitude = %d, expected 9", m)
	}
}
