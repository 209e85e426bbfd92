package sim

import "github.com/vovakirdan/skyraid/internal/core"

// ParticleKind selects the motion law of a particle.
type ParticleKind int

const (
	ParticleExplosion ParticleKind = iota
	ParticleSpark
	ParticleSmoke
	ParticleTrail
)

// Particle is a short-lived cosmetic effect. It never collides.
type Particle struct {
	Body
	Kind     ParticleKind
	Color    core.Color
	Size     float64
	VX, VY   float64
	Timer    float64
	MaxTimer float64
}

func newParticle(rng *SimpleRNG, kind ParticleKind, x, y float64, color core.Color) *Particle {
	p := &Particle{Body: Body{X: x, Y: y}, Kind: kind, Color: color}
	switch kind {
	case ParticleExplosion:
		p.Size = rng.Range(5, 15)
		p.VX = rng.Range(-3, 3)
		p.VY = rng.Range(-3, 3)
		p.Timer = rng.Range(10, 30)
	case ParticleSpark:
		p.Size = rng.Range(1, 4)
		p.VX = rng.Range(-5, 5)
		p.VY = rng.Range(-5, 5)
		p.Timer = rng.Range(5, 20)
		p.Color = core.ColorBrightYellow
	case ParticleSmoke:
		p.Size = rng.Range(10, 25)
		p.VX = rng.Range(-1, 1)
		p.VY = rng.Range(-3, -1)
		p.Timer = rng.Range(20, 60)
	case ParticleTrail:
		p.Size = rng.Range(2, 7)
		p.VY = rng.Range(1, 3)
		p.Timer = rng.Range(5, 15)
	}
	p.MaxTimer = p.Timer
	p.W, p.H = p.Size, p.Size
	return p
}

// Fade returns the remaining life as a fraction in [0, 1].
func (p *Particle) Fade() float64 {
	if p.MaxTimer <= 0 {
		return 0
	}
	return core.ClampF(p.Timer/p.MaxTimer, 0, 1)
}

func (p *Particle) update() {
	p.X += p.VX
	p.Y += p.VY
	p.Timer--

	switch p.Kind {
	case ParticleExplosion:
		p.Size *= 0.95
	case ParticleSpark:
		p.VX *= 0.9
		p.VY *= 0.9
	case ParticleSmoke:
		p.Size += 0.5
	case ParticleTrail:
		p.Size *= 0.9
	}
	p.W, p.H = p.Size, p.Size

	if p.Timer <= 0 {
		p.Deleted = true
	}
}

// burst spawns n particles at (x, y) and reports them as one event.
func (s *Session) burst(kind ParticleKind, x, y float64, color core.Color, n int) {
	for range n {
		s.Particles = append(s.Particles, newParticle(s.rng, kind, x, y, color))
	}
	s.events.Dispatch(Event{Type: EventParticle, Particle: kind, X: x, Y: y, Color: color, Value: n})
}
