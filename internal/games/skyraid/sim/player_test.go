package sim

import (
	"testing"
)

func TestInputPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		threatDX float64 // enemy shot above the fleet, 0 for none
		targetX  float64 // enemy far above the fleet, 0 for none
		expected float64
	}{
		{"idle", Input{}, 0, 0, 300},
		{"pointer beats keys", Input{Left: true, Right: true, Pointer: true, PointerX: 400}, 0, 0, 307.5},
		{"pointer snaps when close", Input{Pointer: true, PointerX: 301}, 0, 0, 301},
		{"left beats right", Input{Left: true, Right: true}, 0, 0, 295},
		{"right", Input{Right: true}, 0, 0, 305},
		{"dodge left from threat on the right", Input{}, 40, 0, 295},
		{"dodge right from threat on the left", Input{}, -40, 0, 305},
		{"manual input suppresses dodge", Input{Right: true}, 40, 0, 305},
		{"dodge beats pursuit", Input{}, 40, 500, 295},
		{"pursuit", Input{}, 0, 500, 305},
		{"pursuit left", Input{}, 0, 100, 295},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quietSession()
			p := s.Player
			if tt.threatDX != 0 {
				s.Bullets = append(s.Bullets, newBullet(p.CX+tt.threatDX-2, p.CY-100, 0, 4, false, BulletNormal))
			}
			if tt.targetX != 0 {
				placeEnemy(s, EnemyChaser, tt.targetX-10, 50)
			}

			p.steer(s, tt.in)

			if p.CX != tt.expected {
				t.Errorf("CX = %v, expected %v", p.CX, tt.expected)
			}
		})
	}
}

func TestSteerStaysInWorld(t *testing.T) {
	s := quietSession()
	p := s.Player
	for i := 0; i < 200; i++ {
		p.steer(s, Input{Left: true})
	}
	if p.X < -p.Speed {
		t.Errorf("fleet left edge = %v, expected near 0", p.X)
	}

	p.steer(s, Input{Pointer: true, PointerX: 10000})
	for i := 0; i < 200; i++ {
		p.steer(s, Input{Pointer: true, PointerX: 10000})
	}
	if p.X+p.W > s.Width() {
		t.Errorf("fleet right edge = %v, expected at most %v", p.X+p.W, s.Width())
	}
}

func TestFleetBox(t *testing.T) {
	s := quietSession()
	p := s.Player

	if p.W != 30 || p.H != 40 {
		t.Errorf("single ship box = %vx%v, expected 30x40", p.W, p.H)
	}

	p.FirePower = 3
	p.refreshBox()
	if p.X != p.CX-35 || p.W != 70 {
		t.Errorf("three ship box X=%v W=%v, expected X=%v W=70", p.X, p.W, p.CX-35)
	}
	if len(p.Offsets()) != 3 {
		t.Errorf("len(Offsets()) = %d, expected 3", len(p.Offsets()))
	}
}

func TestDamagePlayer(t *testing.T) {
	s := quietSession()
	p := s.Player
	p.FirePower = 3
	p.Weapon = WeaponLaser
	p.setSpeedLevel(2)

	s.DamagePlayer()

	if p.FirePower != 2 {
		t.Errorf("FirePower = %d, expected 2", p.FirePower)
	}
	if p.Weapon != WeaponNormal {
		t.Errorf("Weapon = %v, expected %v", p.Weapon, WeaponNormal)
	}
	if p.SpeedLevel != 0 || p.Speed != 5 {
		t.Errorf("speed level %d speed %v, expected 0 5", p.SpeedLevel, p.Speed)
	}
	if p.Invulnerable != hitInvulnerable {
		t.Errorf("Invulnerable = %d, expected %d", p.Invulnerable, hitInvulnerable)
	}

	s.DamagePlayer()
	if p.FirePower != 2 {
		t.Errorf("FirePower = %d while invulnerable, expected 2", p.FirePower)
	}
}

func TestDamageAtOneEndsGame(t *testing.T) {
	s := quietSession()
	var lives []int
	s.Events().Subscribe(EventLives, ListenerFunc(func(e Event) { lives = append(lives, e.Value) }))

	s.DamagePlayer()

	if !s.GameOver() {
		t.Error("GameOver() = false, expected true")
	}
	if s.Player.FirePower != 0 {
		t.Errorf("FirePower = %d, expected 0", s.Player.FirePower)
	}
	if len(lives) != 1 || lives[0] != 0 {
		t.Errorf("lives events = %v, expected [0]", lives)
	}
}

func TestBarrierAbsorbsThreeHits(t *testing.T) {
	s := quietSession()
	p := s.Player
	p.FirePower = 2
	s.grant('V')

	for i := 0; i < BarrierHP; i++ {
		p.Invulnerable = 0
		s.DamagePlayer()
		if p.FirePower != 2 {
			t.Fatalf("hit %d: FirePower = %d, expected 2", i+1, p.FirePower)
		}
	}
	if p.Barrier {
		t.Error("barrier still up after three hits")
	}

	p.Invulnerable = 0
	s.DamagePlayer()
	if p.FirePower != 1 {
		t.Errorf("FirePower = %d after barrier broke, expected 1", p.FirePower)
	}
}

func TestFirePowerBounds(t *testing.T) {
	s := quietSession()
	p := s.Player
	for i := 0; i < 20; i++ {
		s.grant('O')
	}
	if p.FirePower != MaxFirePower {
		t.Errorf("FirePower = %d, expected %d", p.FirePower, MaxFirePower)
	}

	for i := 0; i < 20; i++ {
		p.Invulnerable = 0
		s.DamagePlayer()
		if p.FirePower < 0 || p.FirePower > MaxFirePower {
			t.Fatalf("FirePower = %d out of [0, %d]", p.FirePower, MaxFirePower)
		}
	}
	if !s.GameOver() {
		t.Error("GameOver() = false after losing every ship")
	}
}

func TestApplyPowerUp(t *testing.T) {
	tests := []struct {
		kind  PowerUpKind
		check func(p *Player) bool
	}{
		{PowerUpSpeed, func(p *Player) bool { return p.SpeedLevel == 1 && p.Speed == 7 }},
		{PowerUpMissile, func(p *Player) bool { return p.Weapon == WeaponMissile && p.Missile }},
		{PowerUpDouble, func(p *Player) bool { return p.Weapon == WeaponDouble && !p.Missile }},
		{PowerUpLaser, func(p *Player) bool { return p.Weapon == WeaponLaser }},
		{PowerUpRipple, func(p *Player) bool { return p.Weapon == WeaponRipple }},
		{PowerUpBarrier, func(p *Player) bool { return p.Barrier && p.BarrierHP == BarrierHP }},
		{PowerUpGuardian, func(p *Player) bool { return p.Guardian }},
		{PowerUpForce, func(p *Player) bool { return p.Force && p.ForceHP == ForceHP }},
		{PowerUpBallistic, func(p *Player) bool { return p.BallisticCharges == MaxBallistic }},
	}

	for _, tt := range tests {
		s := quietSession()
		s.applyPowerUp(tt.kind)
		if !tt.check(s.Player) {
			t.Errorf("applyPowerUp(%s) did not apply", tt.kind.Glyph())
		}
	}
}

func TestPowerUpBonus(t *testing.T) {
	s := quietSession()
	s.applyPowerUp(PowerUpLaser)
	s.applyPowerUp(PowerUpLaser)
	if s.Score() != bonusScore {
		t.Errorf("Score() = %d after duplicate weapon, expected %d", s.Score(), bonusScore)
	}

	s.Player.setSpeedLevel(MaxSpeedLevel)
	s.applyPowerUp(PowerUpSpeed)
	if s.Score() != 2*bonusScore {
		t.Errorf("Score() = %d after speed at max, expected %d", s.Score(), 2*bonusScore)
	}
	if s.Player.SpeedLevel != MaxSpeedLevel {
		t.Errorf("SpeedLevel = %d, expected %d", s.Player.SpeedLevel, MaxSpeedLevel)
	}
}

func TestGrantKeys(t *testing.T) {
	s := quietSession()
	if s.grant('z') {
		t.Error("grant('z') = true, expected false")
	}
	if !s.grant('L') || s.Player.Weapon != WeaponLaser {
		t.Errorf("grant('L') weapon = %v, expected %v", s.Player.Weapon, WeaponLaser)
	}
	if !s.grant('B') || s.Player.BallisticCharges != MaxBallistic {
		t.Errorf("grant('B') charges = %d, expected %d", s.Player.BallisticCharges, MaxBallistic)
	}
}

func TestGrantCooldown(t *testing.T) {
	s := quietSession()
	s.Step(Input{Grant: 'O'})
	s.Step(Input{Grant: 'O'})
	if s.Player.FirePower != 2 {
		t.Errorf("FirePower = %d, expected 2 with the key held", s.Player.FirePower)
	}
	for i := 0; i < grantCooldown; i++ {
		s.Step(Input{Grant: 'O'})
	}
	if s.Player.FirePower != 3 {
		t.Errorf("FirePower = %d after the cooldown, expected 3", s.Player.FirePower)
	}
}

func TestShootPatterns(t *testing.T) {
	tests := []struct {
		weapon   Weapon
		missile  bool
		expected int
		kind     BulletKind
	}{
		{WeaponNormal, false, 2, BulletNormal},
		{WeaponDouble, false, 4, BulletNormal},
		{WeaponLaser, false, 2, BulletLaser},
		{WeaponRipple, false, 2, BulletRipple},
		{WeaponMissile, true, 2, BulletMissile},
	}

	for _, tt := range tests {
		s := quietSession()
		p := s.Player
		p.FirePower = 2
		p.Weapon = tt.weapon
		p.Missile = tt.missile

		p.shoot(s)

		if len(s.Bullets) != tt.expected {
			t.Errorf("%v: %d bullets, expected %d", tt.weapon, len(s.Bullets), tt.expected)
			continue
		}
		if s.Bullets[0].Kind != tt.kind || !s.Bullets[0].Player {
			t.Errorf("%v: first bullet %v player=%v, expected %v player=true", tt.weapon, s.Bullets[0].Kind, s.Bullets[0].Player, tt.kind)
		}
	}
}

func TestShootCuePerVolley(t *testing.T) {
	s := quietSession()
	var cues []Cue
	s.Events().Subscribe(EventSound, ListenerFunc(func(e Event) { cues = append(cues, e.Cue) }))
	s.Player.FirePower = 5
	s.Player.Weapon = WeaponDouble

	s.Player.shoot(s)

	if len(cues) != 1 || cues[0] != CueShootDouble {
		t.Errorf("cues = %v, expected [%s]", cues, CueShootDouble)
	}
}

func TestBallisticAutoFire(t *testing.T) {
	s := quietSession()
	s.grant('B')
	b := placeBoss(s, BossMid, 240, 100, 1000)
	b.SpeedX = 0

	count := func() int {
		n := 0
		for _, bl := range s.Bullets {
			if bl.Kind == BulletBallistic {
				n++
			}
		}
		return n
	}

	s.Step(Input{})
	if count() != 1 {
		t.Fatalf("ballistic bullets = %d after first frame, expected 1", count())
	}
	if s.Player.BallisticCharges != MaxBallistic-1 {
		t.Errorf("BallisticCharges = %d, expected %d", s.Player.BallisticCharges, MaxBallistic-1)
	}
	if bl := s.Bullets[len(s.Bullets)-1]; bl.VY >= 0 {
		t.Errorf("ballistic VY = %v, expected upward toward the boss", bl.VY)
	}
}
