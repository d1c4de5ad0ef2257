package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flock/components"
)

func TestClassifyPriority(t *testing.T) {
	p := DefaultParams().Predator
	strongPred := r2.Vec{X: 0.5}
	weakPred := r2.Vec{X: 0.005}
	food := r2.Vec{Y: 0.2}

	tests := []struct {
		name   string
		homing bool
		d      Drives
		want   Mode
	}{
		{"homing overrides everything", true, Drives{Predator: strongPred, Food: food}, ModeHoming},
		{"predator beats food", false, Drives{Predator: strongPred, Food: food}, ModeFleeing},
		{"weak predator ignored", false, Drives{Predator: weakPred, Food: food}, ModeHunting},
		{"food only", false, Drives{Food: food}, ModeHunting},
		{"tiny food ignored", false, Drives{Food: r2.Vec{X: 0.0005}}, ModeFlocking},
		{"nothing sensed", false, Drives{}, ModeFlocking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.homing, tt.d, p); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeVariants(t *testing.T) {
	params := DefaultParams()
	params.Flocking.SeparationWeight = 2
	params.Flocking.AlignmentWeight = 3
	params.Flocking.CohesionWeight = 4
	c := Composer{Params: params, GridSize: 10, Ramp: 1}

	d := Drives{
		Flock: FlockForces{
			Separation: r2.Vec{X: 1},
			Alignment:  r2.Vec{Y: 1},
			Cohesion:   r2.Vec{X: 1, Y: 1},
		},
		Food:     r2.Vec{X: 0.1},
		Predator: r2.Vec{Y: -0.5},
	}
	pos := components.Position{X: 2, Y: 2}
	home := components.Home{X: 4, Y: 2, Bias: 1}

	tests := []struct {
		name string
		mode Mode
		want r2.Vec
	}{
		{"flocking", ModeFlocking, r2.Vec{X: 2 + 4, Y: 3 + 4}},
		{"hunting", ModeHunting, r2.Vec{X: 0.1*40 + 0.3*(2+4), Y: 0.3 * (3 + 4)}},
		{"fleeing", ModeFleeing, r2.Vec{Y: -0.5 * 10 * 10 * 50}},
		{"homing", ModeHoming, r2.Vec{X: 2 * 0.06, Y: 0.6 * 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Compose(tt.mode, d, pos, home)
			if !vecNear(got, tt.want, 1e-9) {
				t.Errorf("Compose(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if ModeHoming.String() != "homing" || ModeFlocking.String() != "flocking" {
		t.Error("unexpected mode names")
	}
	if Mode(99).String() != "unknown" {
		t.Error("out of range mode should be unknown")
	}
}
