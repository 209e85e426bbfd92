package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

// Weapon is the main gun of every ship in the fleet.
type Weapon int

const (
	WeaponNormal Weapon = iota
	WeaponDouble
	WeaponLaser
	WeaponRipple
	WeaponMissile
)

// String returns the HUD name of the weapon.
func (w Weapon) String() string {
	switch w {
	case WeaponNormal:
		return "normal"
	case WeaponDouble:
		return "double"
	case WeaponLaser:
		return "laser"
	case WeaponRipple:
		return "ripple"
	case WeaponMissile:
		return "missile"
	default:
		return "unknown"
	}
}

func (w Weapon) cue() Cue {
	switch w {
	case WeaponDouble:
		return CueShootDouble
	case WeaponLaser:
		return CueShootLaser
	case WeaponRipple:
		return CueShootRipple
	case WeaponMissile:
		return CueShootMissile
	default:
		return CueShootNormal
	}
}

// Offset is the position of one ship relative to the fleet center.
type Offset struct {
	DX, DY float64
}

// fleetOffsets is the formation; fire-power N uses the first N entries.
var fleetOffsets = [MaxFirePower]Offset{
	{0, 0},
	{-20, 15},
	{20, 15},
	{0, -25},
	{-25, -10},
	{25, -10},
	{-40, 25},
	{40, 25},
	{0, 30},
	{0, -50},
}

// Fleet and power-up limits.
const (
	MaxFirePower        = 10
	MaxSpeedLevel       = 5
	MaxBallistic        = 3
	BarrierHP           = 3
	ForceHP             = 3
	GuardianCount       = 3
	GuardianRadius      = 65.0
	GuardianSpin        = 0.06
	GuardianSize        = 16.0
	ForceRadius         = 55.0
	shipHalfW           = 15.0
	shipHalfH           = 20.0
	pointerBoost        = 1.5
	pointerSnap         = 2.0
	ballisticSpeed      = 10.0
	grantCooldown       = 15
	bonusScore          = 500
	hitInvulnerable     = 60
	barrierInvulnerable = 30
	trailChance         = 0.5
)

// Player is the fleet. Its Body is the union of all ship boxes.
type Player struct {
	Body
	CX, CY float64

	baseSpeed  float64
	Speed      float64
	SpeedLevel int
	FirePower  int

	Weapon  Weapon
	Missile bool

	Barrier   bool
	BarrierHP int

	Guardian      bool
	GuardianAngle float64

	Force   bool
	ForceHP int

	BallisticCharges  int
	BallisticTimer    int
	ballisticInterval int

	ShootTimer    int
	shootInterval int

	Invulnerable int
	grantTimer   int
}

func newPlayer(s *Session) *Player {
	cfg := s.cfg.Player
	p := &Player{
		CX:                s.width / 2,
		CY:                s.height - 80,
		baseSpeed:         cfg.BaseSpeed,
		Speed:             cfg.BaseSpeed,
		FirePower:         core.Clamp(cfg.StartFirePower, 1, MaxFirePower),
		ballisticInterval: cfg.BallisticInterval,
		shootInterval:     cfg.ShootInterval,
	}
	p.refreshBox()
	return p
}

// Offsets returns the active ship offsets.
func (p *Player) Offsets() []Offset {
	n := core.Clamp(p.FirePower, 0, MaxFirePower)
	return fleetOffsets[:n]
}

// extents returns the fleet bounds relative to the center.
// The center is always included.
func (p *Player) extents() (minDX, maxDX, minDY, maxDY float64) {
	for _, off := range p.Offsets() {
		minDX = math.Min(minDX, off.DX-shipHalfW)
		maxDX = math.Max(maxDX, off.DX+shipHalfW)
		minDY = math.Min(minDY, off.DY-shipHalfH)
		maxDY = math.Max(maxDY, off.DY+shipHalfH)
	}
	return minDX, maxDX, minDY, maxDY
}

func (p *Player) refreshBox() {
	minDX, maxDX, minDY, maxDY := p.extents()
	p.X = p.CX + minDX
	p.Y = p.CY + minDY
	p.W = maxDX - minDX
	p.H = maxDY - minDY
}

func (p *Player) setSpeedLevel(level int) {
	p.SpeedLevel = level
	p.Speed = p.baseSpeed + float64(level)*2
}

// GuardianBoxes returns the spinner hit boxes.
func (p *Player) GuardianBoxes() []core.Box {
	if !p.Guardian {
		return nil
	}
	boxes := make([]core.Box, GuardianCount)
	for i := range boxes {
		angle := p.GuardianAngle + float64(i)/GuardianCount*2*math.Pi
		sx := p.CX + math.Cos(angle)*GuardianRadius
		sy := p.CY + math.Sin(angle)*GuardianRadius
		boxes[i] = core.Box{X: sx - GuardianSize/2, Y: sy - GuardianSize/2, W: GuardianSize, H: GuardianSize}
	}
	return boxes
}

// Input is the per-frame control state of the fleet.
type Input struct {
	Left, Right bool

	// Pointer holds a touch or mouse position in world x.
	Pointer  bool
	PointerX float64

	// Grant is a debug key (M D L R O S V G F B), or zero.
	Grant rune
}

func (in Input) manual() bool {
	return in.Left || in.Right || in.Pointer
}

func (p *Player) update(s *Session, in Input) {
	p.steer(s, in)

	if p.ShootTimer > 0 {
		p.ShootTimer--
	}
	if p.ShootTimer == 0 {
		p.shoot(s)
		p.ShootTimer = p.shootInterval
	}

	if p.Invulnerable > 0 {
		p.Invulnerable--
	}

	if p.grantTimer > 0 {
		p.grantTimer--
	}
	if p.grantTimer == 0 && in.Grant != 0 {
		if s.grant(in.Grant) {
			p.grantTimer = grantCooldown
		}
	}

	if s.rng.Float64() < trailChance {
		s.burst(ParticleTrail, p.CX, p.CY+20, core.ColorBrightCyan, 1)
	}

	if p.Guardian {
		p.GuardianAngle += GuardianSpin
	}

	if p.BallisticCharges > 0 {
		if p.BallisticTimer > 0 {
			p.BallisticTimer--
		} else {
			p.fireBallistic(s)
			p.BallisticCharges--
			p.BallisticTimer = p.ballisticInterval
		}
	}
}

// steer applies exactly one movement source, in precedence order:
// pointer, keyboard left, keyboard right, dodge left, dodge right, pursuit.
func (p *Player) steer(s *Session, in Input) {
	minDX, maxDX, _, _ := p.extents()
	canLeft := p.CX+minDX > 0
	canRight := p.CX+maxDX < s.width

	dodge := 0
	pursue, hasTarget := 0.0, false
	if !in.manual() {
		dodge = s.AutoDodge()
		if dodge == 0 {
			pursue, hasTarget = s.AutoTarget()
		}
	}

	switch {
	case in.Pointer:
		dx := in.PointerX - p.CX
		if math.Abs(dx) > pointerSnap {
			step := math.Min(math.Abs(dx), p.Speed*pointerBoost)
			p.CX += math.Copysign(step, dx)
		} else {
			p.CX = in.PointerX
		}
		p.CX = core.ClampF(p.CX, -minDX, s.width-maxDX)
	case in.Left && canLeft:
		p.CX -= p.Speed
	case in.Right && canRight:
		p.CX += p.Speed
	case dodge == -1 && canLeft:
		p.CX -= p.Speed
	case dodge == 1 && canRight:
		p.CX += p.Speed
	case hasTarget:
		dx := pursue - p.CX
		if math.Abs(dx) > pursuitSlack {
			if dx < 0 && canLeft {
				p.CX -= p.Speed
			} else if dx > 0 && canRight {
				p.CX += p.Speed
			}
		}
	}

	p.refreshBox()
}

func (p *Player) shoot(s *Session) {
	for _, off := range p.Offsets() {
		bx := p.CX + off.DX
		by := p.CY + off.DY

		switch p.Weapon {
		case WeaponNormal:
			s.Bullets = append(s.Bullets, newBullet(bx-2, by-20, 0, -12, true, BulletNormal))
		case WeaponDouble:
			s.Bullets = append(s.Bullets,
				newBullet(bx-10, by-15, -3, -12, true, BulletNormal),
				newBullet(bx+10, by-15, 3, -12, true, BulletNormal))
		case WeaponLaser:
			s.Bullets = append(s.Bullets, newBullet(bx-2, by-60, 0, -15, true, BulletLaser))
		case WeaponRipple:
			s.Bullets = append(s.Bullets, newBullet(bx-5, by-20, 0, -8, true, BulletRipple))
		}

		if p.Missile {
			s.Bullets = append(s.Bullets, newBullet(bx, by-10, 0, -missileLaunch, true, BulletMissile))
		}
	}
	s.playSound(p.Weapon.cue())
}

func (p *Player) fireBallistic(s *Session) {
	vx, vy := 0.0, -ballisticSpeed
	if tx, ty, ok := s.BallisticTarget(); ok {
		if ax, ay, ok := aim(p.CX, p.CY, tx, ty, ballisticSpeed); ok {
			vx, vy = ax, ay
		}
	}
	s.Bullets = append(s.Bullets, newBullet(p.CX-8, p.CY-20, vx, vy, true, BulletBallistic))
	s.burst(ParticleSpark, p.CX, p.CY, core.ColorOrange, 4)
}

// DamagePlayer is the single entry point for every hit on the fleet.
func (s *Session) DamagePlayer() {
	p := s.Player
	if p.Invulnerable > 0 {
		return
	}

	s.TriggerShake(15, 8)
	s.playSound(CueDamage)
	s.burst(ParticleSpark, p.CenterX(), p.CenterY(), core.ColorBrightCyan, 10)

	if p.Barrier {
		p.BarrierHP--
		p.Invulnerable = barrierInvulnerable
		if p.BarrierHP <= 0 {
			p.Barrier = false
		}
		return
	}

	p.FirePower--
	p.Weapon = WeaponNormal
	p.Missile = false
	p.setSpeedLevel(0)
	p.Invulnerable = hitInvulnerable
	s.emitLives()

	if p.FirePower <= 0 {
		p.FirePower = 0
		s.triggerGameOver()
	}
	p.refreshBox()
}

// applyPowerUp grants the capsule effect. Unknown kinds are ignored.
func (s *Session) applyPowerUp(kind PowerUpKind) {
	p := s.Player
	switch kind {
	case PowerUpSpeed:
		if p.SpeedLevel < MaxSpeedLevel {
			p.setSpeedLevel(p.SpeedLevel + 1)
		} else {
			s.addScore(bonusScore)
		}
	case PowerUpMissile:
		s.switchWeapon(WeaponMissile)
	case PowerUpDouble:
		s.switchWeapon(WeaponDouble)
	case PowerUpLaser:
		s.switchWeapon(WeaponLaser)
	case PowerUpRipple:
		s.switchWeapon(WeaponRipple)
	case PowerUpBarrier:
		p.Barrier = true
		p.BarrierHP = BarrierHP
	case PowerUpGuardian:
		p.Guardian = true
	case PowerUpForce:
		p.Force = true
		p.ForceHP = ForceHP
	case PowerUpBallistic:
		p.BallisticCharges = min(MaxBallistic, p.BallisticCharges+MaxBallistic)
		p.BallisticTimer = 0
	}
}

// switchWeapon equips w, or pays a bonus when it is already equipped.
func (s *Session) switchWeapon(w Weapon) {
	p := s.Player
	if p.Weapon == w {
		s.addScore(bonusScore)
		return
	}
	p.Weapon = w
	p.Missile = w == WeaponMissile
}

// grant handles the debug keys. Returns false for keys it does not know.
func (s *Session) grant(key rune) bool {
	p := s.Player
	switch key {
	case 'M', 'D', 'L', 'R':
		weapons := map[rune]Weapon{'M': WeaponMissile, 'D': WeaponDouble, 'L': WeaponLaser, 'R': WeaponRipple}
		s.addScore(bonusScore)
		p.Weapon = weapons[key]
		p.Missile = key == 'M'
	case 'O':
		if p.FirePower < MaxFirePower {
			p.FirePower++
			p.refreshBox()
			s.emitLives()
		}
	case 'S':
		if p.SpeedLevel < MaxSpeedLevel {
			p.setSpeedLevel(p.SpeedLevel + 1)
		}
	case 'V':
		p.Barrier = true
		p.BarrierHP = BarrierHP
	case 'G':
		p.Guardian = true
	case 'F':
		p.Force = true
		p.ForceHP = ForceHP
	case 'B':
		p.BallisticCharges = MaxBallistic
		p.BallisticTimer = 0
	default:
		return false
	}
	s.playSound(CuePowerUp)
	return true
}
