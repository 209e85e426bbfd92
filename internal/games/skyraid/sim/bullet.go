package sim

import "github.com/vovakirdan/skyraid/internal/core"

// BulletKind selects size, motion and collision behavior of a bullet.
type BulletKind int

const (
	BulletNormal BulletKind = iota
	BulletLaser
	BulletRipple
	BulletMissile
	BulletBubble
	BulletBallistic
	BulletBeam
)

// String returns the weapon-style name of the bullet kind.
func (k BulletKind) String() string {
	switch k {
	case BulletNormal:
		return "normal"
	case BulletLaser:
		return "laser"
	case BulletRipple:
		return "ripple"
	case BulletMissile:
		return "missile"
	case BulletBubble:
		return "bubble"
	case BulletBallistic:
		return "ballistic"
	case BulletBeam:
		return "beam"
	default:
		return "unknown"
	}
}

const (
	missileLaunch = 12.0 // launch speed
	missileSpeed  = 10.0 // homing cruise speed
	missileTurn   = 0.1
	rippleGrowth  = 0.2
	smokeChance   = 0.4
	ballisticPier = 99
)

// Bullet is a projectile owned by either the fleet or the enemies.
type Bullet struct {
	Body
	Kind   BulletKind
	Player bool
	VX, VY float64
	Pierce int
	Radius float64
	Life   int // beam bullets only
}

func newBullet(x, y, vx, vy float64, player bool, kind BulletKind) *Bullet {
	b := &Bullet{
		Body:   Body{X: x, Y: y},
		Kind:   kind,
		Player: player,
		VX:     vx,
		VY:     vy,
		Pierce: 1,
	}
	switch kind {
	case BulletLaser:
		b.W, b.H = 4, 60
		b.Pierce = 3
	case BulletRipple:
		b.W, b.H = 10, 10
		b.Radius = 5
	case BulletMissile:
		b.W, b.H = 6, 12
	case BulletBubble:
		b.W, b.H = 16, 16
	case BulletBallistic:
		b.W, b.H = 26, 26
		b.Pierce = ballisticPier
	default:
		b.W = 4
		if player {
			b.H = 20
		} else {
			b.H = 10
		}
	}
	return b
}

// newBeam creates a stationary enemy beam that lives for life frames.
func newBeam(x, y, w, h float64, life int) *Bullet {
	return &Bullet{
		Body:   Body{X: x, Y: y, W: w, H: h},
		Kind:   BulletBeam,
		Pierce: 1,
		Life:   life,
	}
}

// Color returns the sprite color for the bullet.
func (b *Bullet) Color() core.Color {
	switch b.Kind {
	case BulletLaser:
		return core.ColorBrightCyan
	case BulletRipple:
		return core.ColorBrightMagenta
	case BulletMissile:
		return core.ColorOrange
	case BulletBubble:
		return core.ColorPink
	case BulletBallistic:
		return core.ColorBrightRed
	case BulletBeam:
		return core.ColorPurple
	}
	if b.Player {
		return core.ColorBrightYellow
	}
	return core.ColorRed
}

func (b *Bullet) update(s *Session) {
	if b.Kind == BulletBeam {
		b.Life--
		if b.Life <= 0 {
			b.Deleted = true
		}
		return
	}

	b.X += b.VX
	b.Y += b.VY

	switch b.Kind {
	case BulletRipple:
		b.Radius += rippleGrowth
		b.W = b.Radius * 2
		b.H = b.Radius * 2
	case BulletMissile:
		if tx, ty, ok := s.nearestTarget(b.X, b.Y); ok {
			b.VX, b.VY = Steer(b.VX, b.VY, b.X, b.Y, tx, ty, missileSpeed, missileTurn)
		}
		if s.rng.Float64() < smokeChance {
			s.burst(ParticleSmoke, b.CenterX(), b.Y+b.H, core.ColorGray, 1)
		}
	}

	if b.X < 0 || b.X > s.width || b.Y < 0 || b.Y > s.height {
		b.Deleted = true
	}
}
