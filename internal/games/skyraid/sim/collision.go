package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

const (
	blastRadius    = 80.0
	blastDamage    = 5
	blastFlash     = 5
	enemyReward    = 100
	barrelReward   = 50
	bossReward     = 1000
	finalReward    = 5000
	powerUpMargin  = 15.0
	bossShakeTime  = 20
	bossShakeForce = 10
)

// checkCollisions resolves every contact of the frame in a fixed order.
// Each rule skips entities already marked deleted.
func (s *Session) checkCollisions() {
	p := s.Player
	pbox := p.Box()

	for _, b := range s.Bullets {
		if b.Deleted {
			continue
		}
		if !b.Player {
			if b.Box().Overlaps(pbox) {
				b.Deleted = true
				s.DamagePlayer()
			}
			continue
		}
		if b.Kind != BulletBallistic {
			s.bulletVsEnemies(b)
			s.bulletVsBosses(b)
			s.bulletVsBarrels(b)
		}
		s.bulletVsObstacles(b)
		if b.Kind != BulletBallistic {
			s.bulletVsEnemyBullets(b)
		}
	}

	s.resolveBlasts()

	for _, e := range s.Enemies {
		if !e.Deleted && e.Box().Overlaps(pbox) {
			e.Deleted = true
			s.DamagePlayer()
		}
	}

	s.guardianSweep()
	s.forceField()

	for _, b := range s.Bosses {
		if !b.Deleted && b.Box().Overlaps(pbox) {
			s.DamagePlayer()
		}
	}
	for _, b := range s.Barrels {
		if !b.Deleted && b.Box().Overlaps(pbox) {
			b.Deleted = true
			s.DamagePlayer()
		}
	}
	for _, o := range s.Obstacles {
		if !o.Deleted && o.Box().Overlaps(pbox) {
			o.Deleted = true
			s.DamagePlayer()
		}
	}

	s.gateContacts(pbox)

	for _, u := range s.PowerUps {
		if !u.Deleted && u.Box().Overlaps(pbox) {
			u.Deleted = true
			s.playSound(CuePowerUp)
			s.applyPowerUp(u.Kind)
		}
	}
}

// pierce spends one hit of a bullet.
func (b *Bullet) pierce() {
	b.Pierce--
	if b.Pierce <= 0 {
		b.Deleted = true
	}
}

func (s *Session) bulletVsEnemies(b *Bullet) {
	for _, e := range s.Enemies {
		if b.Deleted {
			return
		}
		if e.Deleted || !b.Box().Overlaps(e.Box()) {
			continue
		}
		b.pierce()
		s.destroyEnemy(e)
		s.burst(ParticleExplosion, e.CenterX(), e.CenterY(), core.ColorOrange, 5)
		s.burst(ParticleSpark, e.CenterX(), e.CenterY(), core.ColorBrightYellow, 5)
	}
}

func (s *Session) bulletVsBosses(b *Bullet) {
	for _, boss := range s.Bosses {
		if b.Deleted {
			return
		}
		if boss.Deleted || !b.Box().Overlaps(boss.Box()) {
			continue
		}
		b.pierce()
		s.hitBoss(boss, 1, flashFrames)
	}
}

func (s *Session) bulletVsBarrels(b *Bullet) {
	for _, br := range s.Barrels {
		if b.Deleted {
			return
		}
		if br.Deleted || !b.Box().Overlaps(br.Box()) {
			continue
		}
		b.pierce()
		br.HP--
		br.HitTimer = flashFrames
		if br.HP <= 0 {
			s.breakBarrel(br)
		}
	}
}

func (s *Session) bulletVsObstacles(b *Bullet) {
	for _, o := range s.Obstacles {
		if b.Deleted {
			return
		}
		if o.Deleted || !b.Box().Overlaps(o.Box()) {
			continue
		}
		b.Deleted = true
		o.HitTimer = flashFrames
		s.burst(ParticleSpark, b.X, b.Y, core.ColorGray, 1)
	}
}

// bulletVsEnemyBullets cancels shots that meet. Beams absorb player bullets and survive.
func (s *Session) bulletVsEnemyBullets(b *Bullet) {
	for _, eb := range s.Bullets {
		if b.Deleted {
			return
		}
		if eb.Player || eb.Deleted || !b.Box().Overlaps(eb.Box()) {
			continue
		}
		b.Deleted = true
		if eb.Kind != BulletBeam {
			eb.Deleted = true
		}
		s.burst(ParticleSpark, b.CenterX(), b.CenterY(), core.ColorWhite, 3)
	}
}

// resolveBlasts detonates ballistic missiles near enemies and bosses.
func (s *Session) resolveBlasts() {
	for _, b := range s.Bullets {
		if !b.Player || b.Kind != BulletBallistic || b.Deleted {
			continue
		}
		bx, by := b.CenterX(), b.CenterY()
		hit := false

		inBlast := func(t *Body) bool {
			return !t.Deleted && math.Hypot(t.CenterX()-bx, t.CenterY()-by) < blastRadius+t.W/2
		}

		for _, e := range s.Enemies {
			if !inBlast(&e.Body) {
				continue
			}
			hit = true
			s.destroyEnemy(e)
			s.blastSplash(e.CenterX(), e.CenterY())
		}
		for _, boss := range s.Bosses {
			if !inBlast(&boss.Body) {
				continue
			}
			hit = true
			tx, ty := boss.CenterX(), boss.CenterY()
			s.hitBoss(boss, blastDamage, blastFlash)
			s.blastSplash(tx, ty)
		}

		if hit {
			b.Deleted = true
			s.TriggerShake(10, 6)
			s.playSound(CueExplosion)
			s.burst(ParticleExplosion, bx, by, core.ColorBrightRed, 15)
			s.burst(ParticleSpark, bx, by, core.ColorOrange, 10)
		}
	}
}

func (s *Session) blastSplash(x, y float64) {
	s.burst(ParticleExplosion, x, y, core.ColorOrange, 4)
	s.burst(ParticleSpark, x, y, core.ColorBrightYellow, 3)
}

// guardianSweep lets the orbiting spinners destroy enemies they touch.
func (s *Session) guardianSweep() {
	for _, box := range s.Player.GuardianBoxes() {
		for _, e := range s.Enemies {
			if e.Deleted || !box.Overlaps(e.Box()) {
				continue
			}
			s.destroyEnemy(e)
			s.burst(ParticleExplosion, e.CenterX(), e.CenterY(), core.ColorPurple, 4)
		}
	}
}

// forceField destroys chasers that come within its radius.
func (s *Session) forceField() {
	p := s.Player
	if !p.Force {
		return
	}
	for _, e := range s.Enemies {
		if e.Deleted || e.Kind != EnemyChaser {
			continue
		}
		ex, ey := e.CenterX(), e.CenterY()
		if math.Hypot(ex-p.CX, ey-p.CY) < ForceRadius+e.W/2 {
			s.destroyEnemy(e)
			s.burst(ParticleSpark, ex, ey, core.ColorSky, 4)
		}
	}
}

func (s *Session) gateContacts(pbox core.Box) {
	p := s.Player
	for _, g := range s.Gates {
		if g.Deleted || !g.Box().Overlaps(pbox) {
			continue
		}
		g.Deleted = true
		s.playSound(CuePowerUp)

		if g.Penalty {
			p.FirePower += g.Amount
			if p.FirePower <= 0 {
				p.FirePower = 0
				s.triggerGameOver()
			}
		} else if p.FirePower < MaxFirePower {
			p.FirePower = min(p.FirePower*g.Amount, MaxFirePower)
		}
		p.refreshBox()
		s.emitLives()
	}
}

// destroyEnemy removes an enemy and pays its reward.
func (s *Session) destroyEnemy(e *Enemy) {
	e.Deleted = true
	s.stats.EnemiesDestroyed++
	s.addScore(enemyReward)
	s.playSound(CueExplosion)
}

// hitBoss applies damage and resolves the death exactly once.
func (s *Session) hitBoss(b *Boss, damage, flash int) {
	if b.Deleted {
		return
	}
	b.HP = max(0, b.HP-damage)
	if !(b.Kind == BossDesarium && b.Stealth) {
		b.HitTimer = flash
	}
	if b.HP <= 0 {
		s.defeatBoss(b)
	}
}

func (s *Session) defeatBoss(b *Boss) {
	if b.Deleted {
		return
	}
	b.Deleted = true
	b.Schedule = nil
	s.stats.BossesDefeated++

	if b.Final {
		s.addScore(finalReward)
		s.finalBossActive = false
		s.finalBossMilestone += s.cfg.Milestones.FinalBossStep
	} else {
		s.addScore(bossReward)
	}

	s.TriggerShake(bossShakeTime, bossShakeForce)
	s.playSound(CueExplosion)
	cx, cy := b.CenterX(), b.CenterY()
	s.burst(ParticleExplosion, cx, cy, core.ColorRed, 20)
	s.burst(ParticleSpark, cx, cy, core.ColorBrightYellow, 20)
	s.burst(ParticleSmoke, cx, cy, core.ColorGray, 10)

	s.pendingBosses = append(s.pendingBosses, b.split(s)...)
}

func (s *Session) breakBarrel(b *Barrel) {
	b.Deleted = true
	s.addScore(barrelReward)
	s.playSound(CueExplosion)
	cx, cy := b.CenterX(), b.CenterY()
	s.burst(ParticleExplosion, cx, cy, core.ColorGray, 3)
	s.burst(ParticleSpark, cx, cy, core.ColorWhite, 3)

	px := core.ClampF(cx, powerUpMargin, s.width-powerUpMargin)
	s.PowerUps = append(s.PowerUps, newPowerUp(s, px, cy))
}
