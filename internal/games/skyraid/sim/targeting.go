package sim

import "math"

const (
	dangerY      = 200.0 // look-ahead above the fleet
	dangerX      = 110.0 // horizontal threat radius
	dodgeDead    = 0.1
	pursuitSlack = 3.0
)

// Threat weights used by AutoDodge.
const (
	threatBullet   = 1.0
	threatEnemy    = 1.2
	threatBoss     = 2.0
	threatBarrel   = 1.2
	threatObstacle = 1.5
)

// Steer bends a velocity toward a target by exponential smoothing.
// Returns the velocity unchanged when the target coincides with the origin.
func Steer(vx, vy, fromX, fromY, toX, toY, speed, factor float64) (float64, float64) {
	dx := toX - fromX
	dy := toY - fromY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return vx, vy
	}
	tx := dx / dist * speed
	ty := dy / dist * speed
	return vx + (tx-vx)*factor, vy + (ty-vy)*factor
}

// aim returns a velocity of the given speed pointing from one point to another.
func aim(fromX, fromY, toX, toY, speed float64) (float64, float64, bool) {
	dx := toX - fromX
	dy := toY - fromY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0, false
	}
	return dx / dist * speed, dy / dist * speed, true
}

// rotate turns a velocity vector by angle radians.
func rotate(vx, vy, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return vx*cos - vy*sin, vx*sin + vy*cos
}

// nearestTarget finds the closest live enemy, boss or barrel center.
func (s *Session) nearestTarget(x, y float64) (float64, float64, bool) {
	best := math.Inf(1)
	var tx, ty float64
	found := false

	consider := func(b *Body) {
		if b.Deleted {
			return
		}
		cx, cy := b.CenterX(), b.CenterY()
		if d := math.Hypot(cx-x, cy-y); d < best {
			best, tx, ty, found = d, cx, cy, true
		}
	}

	for _, e := range s.Enemies {
		consider(&e.Body)
	}
	for _, b := range s.Bosses {
		consider(&b.Body)
	}
	for _, b := range s.Barrels {
		consider(&b.Body)
	}
	return tx, ty, found
}

// AutoDodge scans threats above the fleet and returns -1 (left), 0 or +1 (right).
func (s *Session) AutoDodge() int {
	px, py := s.Player.CX, s.Player.CY
	weight := 0.0

	add := func(b *Body, scale float64) {
		if b.Deleted {
			return
		}
		dy := py - b.CenterY()
		if dy < 0 || dy > dangerY {
			return
		}
		dx := b.CenterX() - px
		if math.Abs(dx) > dangerX {
			return
		}
		proximity := (1 - math.Abs(dy)/dangerY) * scale
		if dx < 0 {
			weight += proximity
		} else {
			weight -= proximity
		}
	}

	for _, b := range s.Bullets {
		if b.Player || (b.VY <= 0 && b.Kind != BulletBeam) {
			continue
		}
		add(&b.Body, threatBullet)
	}
	for _, e := range s.Enemies {
		add(&e.Body, threatEnemy)
	}
	for _, b := range s.Bosses {
		add(&b.Body, threatBoss)
	}
	for _, b := range s.Barrels {
		add(&b.Body, threatBarrel)
	}
	for _, o := range s.Obstacles {
		add(&o.Body, threatObstacle)
	}

	if math.Abs(weight) < dodgeDead {
		return 0
	}
	if weight > 0 {
		return 1
	}
	return -1
}

// AutoTarget picks an x to pursue: power-ups first, then hostiles above the fleet.
func (s *Session) AutoTarget() (float64, bool) {
	px, py := s.Player.CX, s.Player.CY
	bestScore := math.Inf(-1)
	var target float64
	found := false

	offer := func(x, score float64) {
		if score > bestScore {
			bestScore, target, found = score, x, true
		}
	}

	for _, p := range s.PowerUps {
		if p.Deleted {
			continue
		}
		cx := p.CenterX()
		offer(cx, 2000-math.Abs(cx-px))
	}
	for _, e := range s.Enemies {
		if e.Deleted || e.CenterY() >= py {
			continue
		}
		cx := e.CenterX()
		offer(cx, 1000-math.Abs(cx-px))
	}
	for _, b := range s.Bosses {
		if b.Deleted || b.CenterY() >= py {
			continue
		}
		cx := b.CenterX()
		offer(cx, 1500-math.Abs(cx-px))
	}
	return target, found
}

// BallisticTarget prefers the first live boss, then the nearest live enemy.
func (s *Session) BallisticTarget() (float64, float64, bool) {
	for _, b := range s.Bosses {
		if !b.Deleted {
			return b.CenterX(), b.CenterY(), true
		}
	}

	px, py := s.Player.CX, s.Player.CY
	best := math.Inf(1)
	var tx, ty float64
	found := false
	for _, e := range s.Enemies {
		if e.Deleted {
			continue
		}
		cx, cy := e.CenterX(), e.CenterY()
		if d := math.Hypot(cx-px, cy-py); d < best {
			best, tx, ty, found = d, cx, cy, true
		}
	}
	return tx, ty, found
}
