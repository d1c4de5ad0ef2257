package components

import "time"

// Home is the formation slot a bird returns to during homing.
// Assigned at spawn and never changed.
type Home struct {
	X, Y int
	Bias float64 // per-bird multiplier on homing strength (0.9-1.1)
}

// Vitals holds health and the chirp gate.
type Vitals struct {
	Health    float64 // [0,1]
	LastChirp time.Duration
	Chirped   bool // LastChirp is valid
}

// Alive reports whether the bird participates in occupancy.
func (v *Vitals) Alive() bool {
	return v.Health > 0
}

// Food tags a food item entity.
type Food struct{}
