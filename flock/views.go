package flock

import (
	"math"

	"github.com/pthm-cable/flock/components"
)

// BirdView is a read-only copy of one bird for rendering and telemetry.
type BirdView struct {
	X, Y     int
	VX, VY   float64
	HX, HY   int
	OX, OY   float64 // cosmetic draw offset in pixels
	HomeX    int
	HomeY    int
	Health   float64
	HomeDist int // toroidal Manhattan distance to home
}

// Speed returns the velocity magnitude.
func (b BirdView) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Birds appends a view of every bird to dst.
func (s *Simulation) Birds(dst []BirdView) []BirdView {
	q := s.birdFilter.Query()
	for q.Next() {
		pos, vel, heading, home, vitals, off := q.Get()
		dst = append(dst, BirdView{
			X:        pos.X,
			Y:        pos.Y,
			VX:       vel.X,
			VY:       vel.Y,
			HX:       heading.X,
			HY:       heading.Y,
			OX:       off.X,
			OY:       off.Y,
			HomeX:    home.X,
			HomeY:    home.Y,
			Health:   vitals.Health,
			HomeDist: s.grid.Manhattan(pos.X, pos.Y, home.X, home.Y),
		})
	}
	return dst
}

// Food appends the position of every food item to dst.
func (s *Simulation) Food(dst []components.Position) []components.Position {
	q := s.foodFilter.Query()
	for q.Next() {
		pos, _ := q.Get()
		dst = append(dst, *pos)
	}
	return dst
}

// FoodCount returns the number of food items.
func (s *Simulation) FoodCount() int {
	n := 0
	q := s.foodFilter.Query()
	for q.Next() {
		n++
	}
	return n
}

// AtHome returns the fraction of birds within tolerance of their home cell.
func (s *Simulation) AtHome(tolerance int) float64 {
	total, home := 0, 0
	q := s.birdFilter.Query()
	for q.Next() {
		pos, _, _, h, _, _ := q.Get()
		total++
		if s.grid.Manhattan(pos.X, pos.Y, h.X, h.Y) <= tolerance {
			home++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(home) / float64(total)
}
