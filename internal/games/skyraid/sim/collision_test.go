package sim

import (
	"testing"
)

func placeEnemy(s *Session, kind EnemyKind, x, y float64) *Enemy {
	e := newEnemy(s, kind)
	e.X, e.Y = x, y
	s.Enemies = append(s.Enemies, e)
	return e
}

func placeBoss(s *Session, kind BossKind, x, y float64, hp int) *Boss {
	b := newBoss(s, kind)
	b.X, b.Y = x, y
	b.Intro = false
	b.HP = hp
	s.Bosses = append(s.Bosses, b)
	return b
}

func TestLaserPierce(t *testing.T) {
	s := quietSession()
	e1 := placeEnemy(s, EnemyChaser, 100, 100)
	laser := newBullet(105, 90, 0, -15, true, BulletLaser)
	s.Bullets = append(s.Bullets, laser)

	s.bulletVsEnemies(laser)

	if !e1.Deleted {
		t.Error("enemy not destroyed by laser")
	}
	if laser.Pierce != 2 {
		t.Errorf("Pierce = %d, expected 2", laser.Pierce)
	}
	if laser.Deleted {
		t.Error("laser deleted with pierce left")
	}

	placeEnemy(s, EnemyChaser, 100, 120)
	placeEnemy(s, EnemyChaser, 100, 130)
	s.bulletVsEnemies(laser)

	if laser.Pierce != 0 || !laser.Deleted {
		t.Errorf("laser Pierce = %d Deleted = %v, expected 0 true", laser.Pierce, laser.Deleted)
	}
}

func TestNormalBulletStopsAtFirstEnemy(t *testing.T) {
	s := quietSession()
	placeEnemy(s, EnemyChaser, 100, 100)
	second := placeEnemy(s, EnemyChaser, 100, 105)
	b := newBullet(105, 100, 0, -12, true, BulletNormal)

	s.bulletVsEnemies(b)

	if !b.Deleted {
		t.Error("normal bullet survived a hit")
	}
	if second.Deleted {
		t.Error("normal bullet destroyed a second enemy")
	}
}

func TestChaserKillScore(t *testing.T) {
	s := quietSession()
	e := placeEnemy(s, EnemyChaser, 100, 100)
	s.bulletVsEnemies(newBullet(105, 100, 0, -12, true, BulletNormal))

	if !e.Deleted {
		t.Fatal("chaser not destroyed")
	}
	if s.Score() != 100 {
		t.Errorf("Score() = %d, expected 100", s.Score())
	}
	if s.Stats().EnemiesDestroyed != 1 {
		t.Errorf("EnemiesDestroyed = %d, expected 1", s.Stats().EnemiesDestroyed)
	}
}

func TestBossDefeatRewards(t *testing.T) {
	tests := []struct {
		kind  BossKind
		score int
	}{
		{BossMid, 1000},
		{BossBeam, 1000},
		{BossMirror, 1000},
		{BossCloud, 1000},
		{BossDesarium, 1000},
		{BossFinal, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := quietSession()
			b := placeBoss(s, tt.kind, 200, 100, 1)
			if b.Final {
				s.finalBossActive = true
			}

			s.hitBoss(b, 1, flashFrames)

			if !b.Deleted {
				t.Error("boss not deleted at hp 0")
			}
			if s.Score() != tt.score {
				t.Errorf("Score() = %d, expected %d", s.Score(), tt.score)
			}
			d, m := s.Shake()
			if d != 20 || m != 10 {
				t.Errorf("Shake() = (%d, %d), expected (20, 10)", d, m)
			}
			if s.FinalBossActive() {
				t.Error("FinalBossActive() = true after defeat")
			}
		})
	}
}

func TestFinalBossAdvancesMilestone(t *testing.T) {
	s := quietSession()
	s.finalBossActive = true
	first := s.finalBossMilestone
	b := placeBoss(s, BossFinal, 150, 20, 1)

	s.hitBoss(b, 1, flashFrames)

	if s.finalBossMilestone != first+s.cfg.Milestones.FinalBossStep {
		t.Errorf("finalBossMilestone = %d, expected %d", s.finalBossMilestone, first+s.cfg.Milestones.FinalBossStep)
	}
}

func TestBossDefeatedOnce(t *testing.T) {
	s := quietSession()
	b := placeBoss(s, BossMid, 200, 100, 1)

	s.hitBoss(b, 1, flashFrames)
	s.hitBoss(b, 1, flashFrames)
	s.defeatBoss(b)

	if s.Score() != 1000 {
		t.Errorf("Score() = %d, expected 1000", s.Score())
	}
	if s.Stats().BossesDefeated != 1 {
		t.Errorf("BossesDefeated = %d, expected 1", s.Stats().BossesDefeated)
	}
	if b.HP != 0 {
		t.Errorf("HP = %d, expected 0", b.HP)
	}
}

func TestBossHPNeverNegative(t *testing.T) {
	s := quietSession()
	b := placeBoss(s, BossMid, 200, 100, 2)
	s.hitBoss(b, blastDamage, blastFlash)
	if b.HP != 0 {
		t.Errorf("HP = %d, expected 0", b.HP)
	}
}

func TestBombBossSplits(t *testing.T) {
	s := quietSession()
	b := placeBoss(s, BossBomb, 250, 100, 1)

	// Stationary player shot in the middle of the hull.
	s.Bullets = append(s.Bullets, newBullet(298, 140, 0, 0, true, BulletNormal))
	s.Step(Input{})

	if !b.Deleted {
		t.Fatal("bomb boss not defeated")
	}
	if got := countLive(s.Bosses); got != 2 {
		t.Fatalf("live bosses = %d, expected 2", got)
	}
	for _, c := range s.Bosses {
		if c.Deleted {
			continue
		}
		if c.Kind != BossBomb {
			t.Errorf("child kind = %v, expected %v", c.Kind, BossBomb)
		}
		if c.Generation != 2 {
			t.Errorf("child Generation = %d, expected 2", c.Generation)
		}
		if c.W != b.W/2 || c.H != b.H/2 {
			t.Errorf("child size = %vx%v, expected %vx%v", c.W, c.H, b.W/2, b.H/2)
		}
		if c.HP < minChildHP {
			t.Errorf("child HP = %d, expected at least %d", c.HP, minChildHP)
		}
		if c.Intro {
			t.Error("child should skip the intro")
		}
	}
	if len(s.pendingBosses) != 0 {
		t.Errorf("pending bosses = %d, expected 0 after frame end", len(s.pendingBosses))
	}
}

func TestBombChildrenSafeOnBirthFrame(t *testing.T) {
	s := quietSession()
	placeBoss(s, BossBomb, 250, 100, 1)

	// Stationary lasers over both halves of the hull, where the children appear.
	left := newBullet(270, 130, 0, 0, true, BulletLaser)
	right := newBullet(320, 130, 0, 0, true, BulletLaser)
	s.Bullets = append(s.Bullets, left, right)
	s.Step(Input{})

	if left.Deleted || right.Deleted {
		t.Fatal("lasers used up, expected pierce left over")
	}
	children := 0
	for _, c := range s.Bosses {
		if c.Deleted {
			continue
		}
		children++
		if c.HP != c.MaxHP {
			t.Errorf("child HP = %d, expected full %d on the frame it split", c.HP, c.MaxHP)
		}
		if c.HitTimer != 0 {
			t.Errorf("child HitTimer = %d, expected 0", c.HitTimer)
		}
	}
	if children != 2 {
		t.Fatalf("live children = %d, expected 2", children)
	}

	// From the next frame on the children are fair game.
	s.Step(Input{})
	hit := 0
	for _, c := range s.Bosses {
		if !c.Deleted && c.HP < c.MaxHP {
			hit++
		}
	}
	if hit == 0 {
		t.Error("no child took a laser hit on the following frame")
	}
}

func TestBombBossLastGeneration(t *testing.T) {
	s := quietSession()
	tests := []struct {
		gen      int
		children int
	}{
		{1, 2},
		{2, 2},
		{3, 2},
		{4, 0},
		{8, 0},
	}
	for _, tt := range tests {
		b := newBoss(s, BossBomb)
		b.Generation = tt.gen
		if got := len(b.split(s)); got != tt.children {
			t.Errorf("split() at generation %d = %d children, expected %d", tt.gen, got, tt.children)
		}
	}

	if got := len(newBoss(s, BossMid).split(s)); got != 0 {
		t.Errorf("split() on mid boss = %d children, expected 0", got)
	}
}

func TestBallisticSingleDeath(t *testing.T) {
	s := quietSession()
	boss := placeBoss(s, BossMid, 240, 100, 3)
	enemy := placeEnemy(s, EnemyChaser, 290, 130)

	// Two missiles inside the blast radius of both targets.
	s.Bullets = append(s.Bullets,
		newBullet(287, 127, 0, -10, true, BulletBallistic),
		newBullet(287, 127, 0, -10, true, BulletBallistic),
	)
	s.resolveBlasts()

	if !boss.Deleted || !enemy.Deleted {
		t.Fatalf("boss deleted = %v, enemy deleted = %v, expected both", boss.Deleted, enemy.Deleted)
	}
	if s.Score() != 1100 {
		t.Errorf("Score() = %d, expected 1100", s.Score())
	}
	if s.Stats().BossesDefeated != 1 {
		t.Errorf("BossesDefeated = %d, expected 1", s.Stats().BossesDefeated)
	}
	if s.Bullets[1].Deleted {
		t.Error("second missile detonated with no live target")
	}
}

func TestBallisticIgnoresDirectHits(t *testing.T) {
	s := quietSession()
	far := placeBoss(s, BossMid, 0, 400, 10)
	b := newBullet(20, 420, 0, -10, true, BulletBallistic)
	s.Bullets = append(s.Bullets, b)

	s.checkCollisions()

	if far.HP != 5 {
		t.Errorf("HP = %d, expected 5 from one blast", far.HP)
	}
	if !b.Deleted {
		t.Error("ballistic missile not spent on detonation")
	}
}

func TestObstacleAbsorbsBullets(t *testing.T) {
	tests := []BulletKind{BulletNormal, BulletLaser, BulletBallistic}
	for _, kind := range tests {
		s := quietSession()
		s.Obstacles = append(s.Obstacles, &Obstacle{Body: Body{X: 100, Y: 100, W: 80, H: 80}})
		b := newBullet(120, 120, 0, -10, true, kind)
		s.Bullets = append(s.Bullets, b)

		s.checkCollisions()

		if !b.Deleted {
			t.Errorf("%v bullet passed through an obstacle", kind)
		}
		if s.Obstacles[0].Deleted {
			t.Errorf("obstacle destroyed by %v bullet", kind)
		}
	}
}

func TestBulletsCancel(t *testing.T) {
	s := quietSession()
	mine := newBullet(100, 100, 0, -12, true, BulletNormal)
	theirs := newBullet(100, 105, 0, 4, false, BulletNormal)
	s.Bullets = append(s.Bullets, mine, theirs)

	s.checkCollisions()

	if !mine.Deleted || !theirs.Deleted {
		t.Errorf("deleted = (%v, %v), expected both", mine.Deleted, theirs.Deleted)
	}
}

func TestBeamAbsorbsPlayerBullets(t *testing.T) {
	s := quietSession()
	beam := newBeam(80, 100, 40, 300, 60)
	mine := newBullet(100, 200, 0, -12, true, BulletNormal)
	s.Bullets = append(s.Bullets, beam, mine)

	s.checkCollisions()

	if !mine.Deleted {
		t.Error("player bullet passed through the beam")
	}
	if beam.Deleted {
		t.Error("beam cancelled by a player bullet")
	}
}

func TestBarrelBreaksIntoPowerUp(t *testing.T) {
	s := quietSession()
	s.Barrels = append(s.Barrels, &Barrel{Body: Body{X: 0, Y: 100, W: barrelW, H: barrelH}, HP: 2, MaxHP: 2})

	s.bulletVsBarrels(newBullet(10, 120, 0, -12, true, BulletNormal))
	if s.Barrels[0].HP != 1 || s.Barrels[0].HitTimer != flashFrames {
		t.Errorf("barrel HP = %d HitTimer = %d, expected 1 %d", s.Barrels[0].HP, s.Barrels[0].HitTimer, flashFrames)
	}

	s.bulletVsBarrels(newBullet(10, 120, 0, -12, true, BulletNormal))
	if !s.Barrels[0].Deleted {
		t.Fatal("barrel not broken at hp 0")
	}
	if s.Score() != 50 {
		t.Errorf("Score() = %d, expected 50", s.Score())
	}
	if len(s.PowerUps) != 1 {
		t.Fatalf("len(PowerUps) = %d, expected 1", len(s.PowerUps))
	}
	if cx := s.PowerUps[0].CenterX(); cx != 60 {
		t.Errorf("power-up center x = %v, expected 60", cx)
	}
}

func TestEnemyContactDamagesFleet(t *testing.T) {
	s := quietSession()
	s.Player.FirePower = 3
	s.Player.refreshBox()
	e := placeEnemy(s, EnemyChaser, s.Player.CX-10, s.Player.CY-10)

	s.checkCollisions()

	if !e.Deleted {
		t.Error("enemy survived contact")
	}
	if s.Player.FirePower != 2 {
		t.Errorf("FirePower = %d, expected 2", s.Player.FirePower)
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0 for a contact kill", s.Score())
	}
}

func TestForceFieldDestroysChasers(t *testing.T) {
	s := quietSession()
	s.grant('F')
	p := s.Player
	chaser := placeEnemy(s, EnemyChaser, p.CX+30, p.CY-50)
	wave := placeEnemy(s, EnemyWave, p.CX-50, p.CY-50)

	s.forceField()

	if !chaser.Deleted {
		t.Error("chaser inside the field survived")
	}
	if wave.Deleted {
		t.Error("force field destroyed a wave enemy")
	}
}

func TestGuardianSweep(t *testing.T) {
	s := quietSession()
	s.grant('G')
	box := s.Player.GuardianBoxes()[0]
	e := placeEnemy(s, EnemyWave, box.X, box.Y)

	s.guardianSweep()

	if !e.Deleted {
		t.Error("enemy touching a guardian survived")
	}
	if s.Score() != 100 {
		t.Errorf("Score() = %d, expected 100", s.Score())
	}
}

func TestGateModifiers(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		mod      string
		expected int
		over     bool
	}{
		{"double", 3, "x2", 6, false},
		{"triple clamps", 6, "x3", 10, false},
		{"at max", 10, "x2", 10, false},
		{"plus one multiplies", 4, "+1", 4, false},
		{"minus one", 3, "-1", 2, false},
		{"minus two to zero", 2, "-2", 0, true},
		{"minus two below zero", 1, "-2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quietSession()
			p := s.Player
			p.FirePower = tt.start
			p.refreshBox()

			g, ok := newGate(0, tt.mod)
			if !ok {
				t.Fatalf("newGate(%q) rejected", tt.mod)
			}
			g.X = p.CX - gateW/2
			g.Y = p.CY - gateH/2
			s.Gates = append(s.Gates, g)

			s.gateContacts(p.Box())

			if p.FirePower != tt.expected {
				t.Errorf("FirePower = %d, expected %d", p.FirePower, tt.expected)
			}
			if s.GameOver() != tt.over {
				t.Errorf("GameOver() = %v, expected %v", s.GameOver(), tt.over)
			}
			if !g.Deleted {
				t.Error("gate not consumed")
			}
		})
	}
}

func TestPowerUpPickup(t *testing.T) {
	s := quietSession()
	p := s.Player
	u := &PowerUp{Body: Body{X: p.CX - 15, Y: p.CY - 15, W: powerUpSize, H: powerUpSize}, Kind: PowerUpLaser}
	s.PowerUps = append(s.PowerUps, u)

	s.checkCollisions()

	if !u.Deleted {
		t.Error("power-up not collected")
	}
	if p.Weapon != WeaponLaser {
		t.Errorf("Weapon = %v, expected %v", p.Weapon, WeaponLaser)
	}
}
