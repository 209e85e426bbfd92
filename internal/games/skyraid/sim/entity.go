package sim

import "github.com/vovakirdan/skyraid/internal/core"

// Body is the position and extent shared by every world entity.
// Deleted entities stay in their collection until the next prune.
type Body struct {
	X, Y    float64
	W, H    float64
	Deleted bool
}

// Box returns the collision box.
func (b *Body) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// CenterX returns the horizontal center.
func (b *Body) CenterX() float64 {
	return b.X + b.W/2
}

// CenterY returns the vertical center.
func (b *Body) CenterY() float64 {
	return b.Y + b.H/2
}

// Dead reports whether the entity is marked for removal.
func (b *Body) Dead() bool {
	return b.Deleted
}

type mortal interface {
	Dead() bool
}

// prune drops dead entities in place.
func prune[T mortal](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.Dead() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

// countLive returns how many entities are not marked for removal.
func countLive[T mortal](items []T) int {
	n := 0
	for _, it := range items {
		if !it.Dead() {
			n++
		}
	}
	return n
}
