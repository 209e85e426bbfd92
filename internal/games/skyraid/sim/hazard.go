package sim

import (
	"strconv"

	"github.com/vovakirdan/skyraid/internal/core"
)

const (
	barrelW     = 120.0
	barrelH     = 90.0
	barrelSpeed = 1.5
	gateW       = 120.0
	gateH       = 40.0
	gateSpeed   = 1.5
	puffSize    = 40.0
	puffSpeed   = 1.5
	puffLife    = 150
	flashFrames = 3
)

// Barrel is a destructible drifting rock that drops a power-up.
type Barrel struct {
	Body
	HP, MaxHP int
	HitTimer  int
}

func newBarrel(s *Session) *Barrel {
	maxX := s.width - barrelW
	if maxX < 0 {
		maxX = 0
	}
	hp := s.rng.Intn(16) + 5
	return &Barrel{
		Body:  Body{X: s.rng.Float64() * maxX, Y: -barrelH, W: barrelW, H: barrelH},
		HP:    hp,
		MaxHP: hp,
	}
}

func (b *Barrel) update(s *Session) {
	b.Y += barrelSpeed
	if b.HitTimer > 0 {
		b.HitTimer--
	}
	if b.Y > s.height+b.H {
		b.Deleted = true
	}
}

// Obstacle is an indestructible rock. Cloud puffs are short-lived obstacles.
type Obstacle struct {
	Body
	Speed    float64
	HitTimer int
	Puff     bool
	Life     int
}

func newObstacle(s *Session) *Obstacle {
	size := s.rng.Range(60, 100)
	return &Obstacle{
		Body:  Body{X: s.rng.Float64() * (s.width - size), Y: -size, W: size, H: size},
		Speed: s.rng.Range(1, 3),
	}
}

func newPuff(x, y float64) *Obstacle {
	return &Obstacle{
		Body:  Body{X: x, Y: y, W: puffSize, H: puffSize},
		Speed: puffSpeed,
		Puff:  true,
		Life:  puffLife,
	}
}

func (o *Obstacle) update(s *Session) {
	o.Y += o.Speed
	if o.HitTimer > 0 {
		o.HitTimer--
	}
	if o.Puff {
		o.Life--
		if o.Life <= 0 {
			o.Deleted = true
		}
	}
	if o.Y > s.height+o.H {
		o.Deleted = true
	}
}

// Gate is a horizontal band that changes the fleet size when crossed.
type Gate struct {
	Body
	Modifier string
	Penalty  bool
	Amount   int
}

// ParseGateModifier validates a modifier such as "x2", "+1" or "-2".
// Penalties return the signed delta; multipliers return the factor.
func ParseGateModifier(mod string) (penalty bool, amount int, ok bool) {
	if len(mod) < 2 {
		return false, 0, false
	}
	switch mod[0] {
	case '-':
		n, err := strconv.Atoi(mod)
		if err != nil || n >= 0 {
			return false, 0, false
		}
		return true, n, true
	case 'x', 'X', '*', '+':
		n, err := strconv.Atoi(mod[1:])
		if err != nil || n < 1 {
			return false, 0, false
		}
		return false, n, true
	}
	return false, 0, false
}

func newGate(x float64, mod string) (*Gate, bool) {
	penalty, amount, ok := ParseGateModifier(mod)
	if !ok {
		return nil, false
	}
	return &Gate{
		Body:     Body{X: x, Y: -gateH, W: gateW, H: gateH},
		Modifier: mod,
		Penalty:  penalty,
		Amount:   amount,
	}, true
}

// Color returns the band color: red for penalties, cyan otherwise.
func (g *Gate) Color() core.Color {
	if g.Penalty {
		return core.ColorBrightRed
	}
	return core.ColorBrightCyan
}

func (g *Gate) update(s *Session) {
	g.Y += gateSpeed
	if g.Y > s.height {
		g.Deleted = true
	}
}

// PowerUpKind is the effect granted by a power-up.
type PowerUpKind int

const (
	PowerUpSpeed PowerUpKind = iota
	PowerUpMissile
	PowerUpDouble
	PowerUpLaser
	PowerUpRipple
	PowerUpBarrier
	PowerUpGuardian
	PowerUpForce
	PowerUpBallistic
	powerUpKinds
)

var powerUpGlyphs = [...]string{"S", "M", "D", "L", "R", "B", "G", "F", "BM"}

var powerUpColors = [...]core.Color{
	core.ColorBrightCyan,
	core.ColorOrange,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorOrange,
	core.ColorBrightBlue,
	core.ColorPurple,
	core.ColorSky,
	core.ColorBrightRed,
}

// Glyph returns the short label drawn on the capsule.
func (k PowerUpKind) Glyph() string {
	if k < 0 || k >= powerUpKinds {
		return "?"
	}
	return powerUpGlyphs[k]
}

// Color returns the capsule color.
func (k PowerUpKind) Color() core.Color {
	if k < 0 || k >= powerUpKinds {
		return core.ColorWhite
	}
	return powerUpColors[k]
}

const (
	powerUpSize  = 30.0
	powerUpSpeed = 2.0
)

// PowerUp is a falling capsule centered on where its barrel broke.
type PowerUp struct {
	Body
	Kind PowerUpKind
}

func newPowerUp(s *Session, cx, cy float64) *PowerUp {
	return &PowerUp{
		Body: Body{X: cx - powerUpSize/2, Y: cy - powerUpSize/2, W: powerUpSize, H: powerUpSize},
		Kind: PowerUpKind(s.rng.Intn(int(powerUpKinds))),
	}
}

func (p *PowerUp) update(s *Session) {
	p.Y += powerUpSpeed
	if p.Y > s.height {
		p.Deleted = true
	}
}
