package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

// BossKind selects the behavior pattern of a boss.
type BossKind int

const (
	BossMid BossKind = iota
	BossFinal
	BossBeam
	BossBomb
	BossMirror
	BossCloud
	BossDesarium
)

// String returns a display name for the boss.
func (k BossKind) String() string {
	switch k {
	case BossMid:
		return "Mid Boss"
	case BossFinal:
		return "Final Boss"
	case BossBeam:
		return "Beam Boss"
	case BossBomb:
		return "Bomb Boss"
	case BossMirror:
		return "Mirror Boss"
	case BossCloud:
		return "Cloud Boss"
	case BossDesarium:
		return "Desarium"
	default:
		return "Boss"
	}
}

// bossRoster is the order used by ForceBossSpawn. The final boss is not on it.
var bossRoster = [...]BossKind{BossBeam, BossBomb, BossMirror, BossCloud, BossDesarium, BossMid}

// BossRosterSize returns how many bosses ForceBossSpawn can pick from.
func BossRosterSize() int {
	return len(bossRoster)
}

// Satellite is a MirrorBoss turret, positioned relative to the boss center.
type Satellite struct {
	DX, DY float64
}

// ScheduledAction is a satellite shot that fires after Frames more updates.
type ScheduledAction struct {
	Frames    int
	Satellite int
}

// Boss is any large enemy with hit points.
type Boss struct {
	Body
	Kind BossKind

	HP, MaxHP int

	Intro      bool
	IntroSpeed float64
	RestY      float64

	SpeedX float64
	Dir    float64

	ShootTimer int
	AltTimer   int // beam, bomb, volley, puff or stealth timer
	HitTimer   int

	Phase2     bool
	Final      bool
	Generation int
	Stealth    bool
	Drift      float64

	Satellites []Satellite
	Schedule   []ScheduledAction
}

type bossDesign struct {
	w, h       float64
	introSpeed float64
	restY      float64
	speedX     float64
	shoot      int
	alt        int
}

var bossDesigns = map[BossKind]bossDesign{
	BossMid:      {w: 120, h: 80, introSpeed: 2, restY: 50, speedX: 3, shoot: 60},
	BossFinal:    {w: 300, h: 120, introSpeed: 1, restY: 20, speedX: 2, shoot: 40, alt: 180},
	BossBeam:     {w: 140, h: 90, introSpeed: 2, restY: 60, speedX: 1.5},
	BossBomb:     {w: 100, h: 100, introSpeed: 2, restY: 60, speedX: 2.5, alt: bombReload},
	BossMirror:   {w: 120, h: 70, introSpeed: 2, restY: 50, speedX: 2, alt: 90},
	BossCloud:    {w: 160, h: 80, introSpeed: 1.5, restY: 40, shoot: cloudReload, alt: puffInterval},
	BossDesarium: {w: 110, h: 110, introSpeed: 2, restY: 50, shoot: desariumReload, alt: stealthToggle},
}

func (s *Session) bossHP(kind BossKind) int {
	hp := s.cfg.Bosses
	switch kind {
	case BossMid:
		return hp.MidHP
	case BossFinal:
		return hp.FinalHP
	case BossBeam:
		return hp.BeamHP
	case BossBomb:
		return hp.BombHP
	case BossMirror:
		return hp.MirrorHP
	case BossCloud:
		return hp.CloudHP
	case BossDesarium:
		return hp.DesariumHP
	}
	return 1
}

// newBoss creates a boss centered above the top edge, entering in intro.
func newBoss(s *Session, kind BossKind) *Boss {
	d := bossDesigns[kind]
	hp := max(1, s.bossHP(kind))
	b := &Boss{
		Body:       Body{X: s.width/2 - d.w/2, Y: -d.h, W: d.w, H: d.h},
		Kind:       kind,
		HP:         hp,
		MaxHP:      hp,
		Intro:      true,
		IntroSpeed: d.introSpeed,
		RestY:      d.restY,
		SpeedX:     d.speedX,
		Dir:        1,
		ShootTimer: d.shoot,
		AltTimer:   d.alt,
		Final:      kind == BossFinal,
		Generation: 1,
	}
	return b
}

// Color returns the hull color.
func (b *Boss) Color() core.Color {
	switch b.Kind {
	case BossMid:
		if b.Phase2 {
			return core.ColorBrightRed
		}
		return core.ColorOrange
	case BossFinal:
		return core.ColorPurple
	case BossBeam:
		if b.Phase2 {
			return core.ColorBrightMagenta
		}
		return core.ColorMagenta
	case BossBomb:
		return core.ColorPink
	case BossMirror:
		return core.ColorBrightWhite
	case BossCloud:
		return core.ColorWhite
	case BossDesarium:
		if b.Stealth {
			return core.ColorDarkGray
		}
		return core.ColorBrightGreen
	}
	return core.ColorRed
}

// SatellitePos returns the world position of satellite i.
func (b *Boss) SatellitePos(i int) (float64, float64) {
	sat := b.Satellites[i]
	return b.CenterX() + sat.DX, b.CenterY() + sat.DY
}

func (b *Boss) update(s *Session) {
	if b.HitTimer > 0 {
		b.HitTimer--
	}

	b.checkPhase()

	if b.Intro {
		b.Y += b.IntroSpeed
		if b.Y >= b.RestY {
			b.Intro = false
			b.onIntroEnd()
		}
		return
	}

	switch b.Kind {
	case BossMid:
		b.updateMid(s)
	case BossFinal:
		b.updateFinal(s)
	case BossBeam:
		b.updateBeam(s)
	case BossBomb:
		b.updateBomb(s)
	case BossMirror:
		b.updateMirror(s)
	case BossCloud:
		b.updateCloud(s)
	case BossDesarium:
		b.updateDesarium(s)
	}
}

// checkPhase flips the irreversible second phase at half health.
func (b *Boss) checkPhase() {
	if b.Phase2 || float64(b.HP) > float64(b.MaxHP)/2 {
		return
	}
	switch b.Kind {
	case BossMid:
		b.Phase2 = true
		b.SpeedX = 6
	case BossBeam:
		b.Phase2 = true
	}
}

func (b *Boss) onIntroEnd() {
	if b.Kind == BossMirror {
		b.Satellites = []Satellite{{-70, 10}, {-35, 40}, {35, 40}, {70, 10}}
	}
}

// sweep bounces the boss between the world edges.
func (b *Boss) sweep(s *Session) {
	b.X += b.SpeedX * b.Dir
	if b.X <= 0 {
		b.X = 0
		b.Dir = 1
	} else if b.X+b.W >= s.width {
		b.X = s.width - b.W
		b.Dir = -1
	}
}

// spread fires one aimed bullet per angle offset from the boss underside.
func (b *Boss) spread(s *Session, angles []float64, speed float64) {
	fromX, fromY := b.CenterX(), b.Y+b.H
	vx, vy, ok := aim(fromX, fromY, s.Player.CX, s.Player.CY, speed)
	if !ok {
		vx, vy = 0, speed
	}
	for _, a := range angles {
		rx, ry := rotate(vx, vy, a)
		s.Bullets = append(s.Bullets, newBullet(fromX-2, fromY, rx, ry, false, BulletNormal))
	}
}

// aimedShot fires a single bullet from (x, y) at the fleet center.
func aimedShot(s *Session, x, y, speed float64) {
	vx, vy, ok := aim(x, y, s.Player.CX, s.Player.CY, speed)
	if !ok {
		vx, vy = 0, speed
	}
	s.Bullets = append(s.Bullets, newBullet(x-2, y, vx, vy, false, BulletNormal))
}

func (b *Boss) clampX(s *Session) {
	b.X = core.ClampF(b.X, 0, math.Max(0, s.width-b.W))
}
