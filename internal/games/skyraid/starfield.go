package skyraid

import (
	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
)

// Star is one background point in world units.
type Star struct {
	X, Y float64
}

// StarLayer is a parallax band of stars moving at one speed.
type StarLayer struct {
	Speed float64
	Glyph rune
	Color core.Color
	Stars []Star
}

// Starfield is the scrolling background. It has its own RNG so it never
// disturbs the simulation sequence.
type Starfield struct {
	rng    *sim.SimpleRNG
	width  float64
	height float64
	Layers []StarLayer
}

// NewStarfield scatters three layers over the world.
func NewStarfield(seed int64, width, height float64) *Starfield {
	f := &Starfield{
		rng:    sim.NewSimpleRNG(seed ^ 0x5eed),
		width:  width,
		height: height,
		Layers: []StarLayer{
			{Speed: 0.2, Glyph: '.', Color: core.ColorDarkGray},
			{Speed: 0.8, Glyph: '·', Color: core.ColorGray},
			{Speed: 2.5, Glyph: '*', Color: core.ColorWhite},
		},
	}
	counts := []int{50, 30, 15}
	for i := range f.Layers {
		stars := make([]Star, counts[i])
		for j := range stars {
			stars[j] = Star{X: f.rng.Float64() * width, Y: f.rng.Float64() * height}
		}
		f.Layers[i].Stars = stars
	}
	return f
}

// Update scrolls every layer and wraps stars that leave the bottom.
func (f *Starfield) Update() {
	for i := range f.Layers {
		layer := &f.Layers[i]
		for j := range layer.Stars {
			s := &layer.Stars[j]
			s.Y += layer.Speed
			if s.Y > f.height {
				s.Y = 0
				s.X = f.rng.Float64() * f.width
			}
		}
	}
}
