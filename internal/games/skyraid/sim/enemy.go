package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

// EnemyKind is the behavior of a small enemy.
type EnemyKind int

const (
	EnemyChaser EnemyKind = iota
	EnemyWave
	EnemySniper
)

// String returns the command name of the kind.
func (k EnemyKind) String() string {
	switch k {
	case EnemyChaser:
		return "chaser"
	case EnemyWave:
		return "wave"
	case EnemySniper:
		return "sniper"
	default:
		return "unknown"
	}
}

// ParseEnemyKind maps a command name to a kind.
func ParseEnemyKind(name string) (EnemyKind, bool) {
	switch name {
	case "chaser":
		return EnemyChaser, true
	case "wave":
		return EnemyWave, true
	case "sniper":
		return EnemySniper, true
	}
	return 0, false
}

const (
	enemySize      = 20.0
	sniperMaxShots = 2
	waveReload     = 120
	sniperReload   = 45
	sniperSpeed    = 6.0
)

// Enemy is a small hostile ship.
type Enemy struct {
	Body
	Kind       EnemyKind
	Speed      float64
	Angle      float64
	AngleSpeed float64
	CanShoot   bool
	ShootTimer int
	ShotsFired int
}

// rollEnemyKind draws a kind with the 60/20/20 chaser/wave/sniper split.
func rollEnemyKind(rng *SimpleRNG) EnemyKind {
	r := rng.Float64()
	switch {
	case r < 0.6:
		return EnemyChaser
	case r < 0.8:
		return EnemyWave
	default:
		return EnemySniper
	}
}

func newEnemy(s *Session, kind EnemyKind) *Enemy {
	e := &Enemy{
		Body: Body{
			X: s.rng.Float64() * (s.width - enemySize),
			Y: -enemySize,
			W: enemySize,
			H: enemySize,
		},
	}
	e.setKind(s.rng, kind)
	return e
}

func (e *Enemy) setKind(rng *SimpleRNG, kind EnemyKind) {
	e.Kind = kind
	e.Angle = 0
	e.AngleSpeed = 0
	e.ShotsFired = 0
	switch kind {
	case EnemyChaser:
		e.Speed = rng.Range(1, 2)
		e.CanShoot = false
		e.ShootTimer = 0
	case EnemyWave:
		e.Speed = 2
		e.AngleSpeed = rng.Range(0.05, 0.15)
		e.CanShoot = true
		e.ShootTimer = 90
	case EnemySniper:
		e.Speed = 3
		e.CanShoot = true
		e.ShootTimer = 60
	}
}

// Color returns the sprite color for the enemy.
func (e *Enemy) Color() core.Color {
	switch e.Kind {
	case EnemyWave:
		return core.ColorSky
	case EnemySniper:
		return core.ColorBrightYellow
	default:
		return core.ColorPink
	}
}

func (e *Enemy) update(s *Session) {
	switch e.Kind {
	case EnemyChaser:
		p := s.Player
		dx := p.CenterX() - e.CenterX()
		dy := p.CenterY() - e.CenterY()
		if dist := math.Hypot(dx, dy); dist > 0 {
			e.X += dx / dist * e.Speed * 0.5
			e.Y += e.Speed * 1.5
		}
	case EnemyWave:
		e.Y += e.Speed
		e.X += math.Sin(e.Angle) * 4
		e.Angle += e.AngleSpeed
	case EnemySniper:
		e.Y += e.Speed * 0.6
		e.X += math.Sin(e.Y/80) * 0.8
	}

	e.X = core.ClampF(e.X, 0, s.width-e.W)

	if e.Y > s.height {
		e.Deleted = true
	}

	if !e.CanShoot || (e.Kind == EnemySniper && e.ShotsFired >= sniperMaxShots) {
		return
	}
	e.ShootTimer--
	if e.ShootTimer <= 0 {
		e.shoot(s)
		e.ShotsFired++
		if e.Kind == EnemyWave {
			e.ShootTimer = waveReload
		} else {
			e.ShootTimer = sniperReload
		}
	}
}

func (e *Enemy) shoot(s *Session) {
	switch e.Kind {
	case EnemySniper:
		fromX, fromY := e.CenterX(), e.Y+e.H
		vx, vy, ok := aim(fromX, fromY, s.Player.CX, s.Player.CY, sniperSpeed)
		if !ok {
			vx, vy = 0, sniperSpeed
		}
		s.Bullets = append(s.Bullets, newBullet(fromX-2, fromY, vx, vy, false, BulletNormal))
	case EnemyWave:
		s.Bullets = append(s.Bullets, newBullet(e.CenterX()-8, e.Y+e.H, 0, 2, false, BulletRipple))
	}
}
