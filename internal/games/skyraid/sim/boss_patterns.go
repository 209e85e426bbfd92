package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

const (
	midReload       = 90
	midReloadRage   = 40
	midShotSpeed    = 4.0
	finalReload     = 60
	finalTwinReload = 240
	finalShotSpeed  = 5.0
	finalTwinSpeed  = 8.0

	beamCycle       = 240
	beamCharge      = 180
	beamWidth       = 40.0
	beamLife        = beamCycle - beamCharge
	berserkChance   = 0.03
	berserkShotDrop = 3.0

	bombReload    = 100
	bombSpeed     = 3.0
	maxBombGen    = 4
	minChildHP    = 3
	bombFirstDrop = 40

	mirrorVolley     = 200
	mirrorShotSpeed  = 7.0
	mirrorEchoSpeed  = 5.0
	mirrorEchoSpacer = 12

	cloudReload   = 70
	cloudSpeed    = 4.0
	cloudDrift    = 0.03
	cloudSway     = 2.5
	cloudBob      = 15.0
	puffInterval  = 30
	maxCloudPuffs = 6

	stealthToggle  = 150
	desariumReload = 50
	desariumSpeed  = 6.0
	desariumChase  = 0.03
	desariumMaxDX  = 2.5
)

var (
	midSpread   = []float64{-0.2, 0, 0.2}
	finalSpread = []float64{-0.4, -0.2, 0, 0.2, 0.4}
	cloudSpread = []float64{-0.25, 0, 0.25}
)

func (b *Boss) updateMid(s *Session) {
	b.sweep(s)
	b.ShootTimer--
	if b.ShootTimer <= 0 {
		b.spread(s, midSpread, midShotSpeed)
		if b.Phase2 {
			b.ShootTimer = midReloadRage
		} else {
			b.ShootTimer = midReload
		}
	}
}

func (b *Boss) updateFinal(s *Session) {
	b.sweep(s)

	b.ShootTimer--
	if b.ShootTimer <= 0 {
		b.spread(s, finalSpread, finalShotSpeed)
		b.ShootTimer = finalReload
	}

	b.AltTimer--
	if b.AltTimer <= 0 {
		s.Bullets = append(s.Bullets,
			newBullet(b.X+20, b.Y+b.H, 0, finalTwinSpeed, false, BulletNormal),
			newBullet(b.X+b.W-20, b.Y+b.H, 0, finalTwinSpeed, false, BulletNormal))
		b.AltTimer = finalTwinReload
	}
}

// Charging reports whether a BeamBoss is in the last second before firing.
func (b *Boss) Charging() bool {
	return b.Kind == BossBeam && !b.Intro && b.AltTimer >= beamCharge-48 && b.AltTimer < beamCharge
}

func (b *Boss) updateBeam(s *Session) {
	b.sweep(s)

	b.AltTimer++
	if b.AltTimer == beamCharge {
		top := b.Y + b.H
		beam := newBeam(b.CenterX()-beamWidth/2, top, beamWidth, s.height-top, beamLife)
		s.Bullets = append(s.Bullets, beam)
		s.playSound(CueBeam)
	}
	if b.AltTimer >= beamCycle {
		b.AltTimer = 0
	}

	if b.Phase2 && s.rng.Float64() < berserkChance {
		x := b.X + s.rng.Float64()*b.W
		s.Bullets = append(s.Bullets, newBullet(x-5, b.Y+b.H, 0, berserkShotDrop, false, BulletRipple))
	}
}

func (b *Boss) updateBomb(s *Session) {
	b.sweep(s)
	b.AltTimer--
	if b.AltTimer <= 0 {
		s.Bullets = append(s.Bullets, newBullet(b.CenterX()-8, b.Y+b.H, 0, bombSpeed, false, BulletBubble))
		b.AltTimer = bombReload
	}
}

// split returns the two children of a dying BombBoss, or nil at the last generation.
func (b *Boss) split(s *Session) []*Boss {
	if b.Kind != BossBomb || b.Generation >= maxBombGen {
		return nil
	}

	w, h := b.W/2, b.H/2
	hp := max(minChildHP, b.MaxHP/2)
	children := make([]*Boss, 0, 2)
	for i, dir := range []float64{-1, 1} {
		c := &Boss{
			Body:       Body{X: b.X + float64(i)*w, Y: b.Y + h/2, W: w, H: h},
			Kind:       BossBomb,
			HP:         hp,
			MaxHP:      hp,
			RestY:      b.RestY,
			SpeedX:     b.SpeedX,
			Dir:        dir,
			AltTimer:   bombFirstDrop + i*bombFirstDrop,
			Generation: b.Generation * 2,
		}
		c.clampX(s)
		children = append(children, c)
	}
	return children
}

func (b *Boss) updateMirror(s *Session) {
	b.sweep(s)

	kept := b.Schedule[:0]
	for _, act := range b.Schedule {
		act.Frames--
		if act.Frames > 0 {
			kept = append(kept, act)
			continue
		}
		if act.Satellite < len(b.Satellites) {
			x, y := b.SatellitePos(act.Satellite)
			aimedShot(s, x, y, mirrorEchoSpeed)
		}
	}
	b.Schedule = kept

	b.AltTimer--
	if b.AltTimer <= 0 {
		s.playSound(CueBeam)
		s.Bullets = append(s.Bullets, newBullet(b.CenterX()-2, b.Y+b.H, 0, mirrorShotSpeed, false, BulletLaser))
		for i := range b.Satellites {
			b.Schedule = append(b.Schedule, ScheduledAction{Frames: (i + 1) * mirrorEchoSpacer, Satellite: i})
		}
		b.AltTimer = mirrorVolley
	}
}

func (b *Boss) updateCloud(s *Session) {
	b.Drift += cloudDrift
	b.X += math.Cos(b.Drift) * cloudSway
	b.Y = b.RestY + math.Sin(b.Drift*0.5)*cloudBob
	b.clampX(s)

	b.AltTimer--
	if b.AltTimer <= 0 {
		b.AltTimer = puffInterval
		if s.livePuffs() < maxCloudPuffs {
			x := b.X + s.rng.Float64()*math.Max(0, b.W-puffSize)
			s.Obstacles = append(s.Obstacles, newPuff(x, b.Y+b.H))
		}
	}

	b.ShootTimer--
	if b.ShootTimer <= 0 {
		b.spread(s, cloudSpread, cloudSpeed)
		b.ShootTimer = cloudReload
	}
}

func (b *Boss) updateDesarium(s *Session) {
	dx := s.Player.CX - b.CenterX()
	b.X += core.ClampF(dx*desariumChase, -desariumMaxDX, desariumMaxDX)
	b.clampX(s)

	b.AltTimer--
	if b.AltTimer <= 0 {
		b.Stealth = !b.Stealth
		b.AltTimer = stealthToggle
	}

	if b.Stealth {
		return
	}
	b.ShootTimer--
	if b.ShootTimer <= 0 {
		aimedShot(s, b.CenterX(), b.Y+b.H, desariumSpeed)
		b.ShootTimer = desariumReload
	}
}

func (s *Session) livePuffs() int {
	n := 0
	for _, o := range s.Obstacles {
		if o.Puff && !o.Deleted {
			n++
		}
	}
	return n
}
