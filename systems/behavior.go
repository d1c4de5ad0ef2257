package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flock/components"
)

// Mode is the single drive that steers an agent for one tick.
type Mode uint8

const (
	ModeFlocking Mode = iota
	ModeHunting
	ModeFleeing
	ModeHoming
)

// NumModes is the number of distinct modes.
const NumModes = 4

var modeNames = [NumModes]string{"flocking", "hunting", "fleeing", "homing"}

// String returns the mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// foodForceEpsilon is the magnitude below which the food pull is ignored.
const foodForceEpsilon = 0.001

// Drives collects the raw component forces sensed by one agent.
type Drives struct {
	Flock    FlockForces
	Food     r2.Vec
	Predator r2.Vec
}

// Classify picks the mode by fixed priority: homing, then fleeing when the
// predator pull exceeds its threshold, then hunting when any food pull is
// sensed, otherwise flocking.
func Classify(homing bool, d Drives, p PredatorParams) Mode {
	switch {
	case homing:
		return ModeHoming
	case r2.Norm(d.Predator) > p.ForceThreshold:
		return ModeFleeing
	case r2.Norm(d.Food) > foodForceEpsilon:
		return ModeHunting
	}
	return ModeFlocking
}

// Composer turns a classified agent's drives into a single steering force.
// GridSize scales the food and predator weights.
type Composer struct {
	Params   Params
	GridSize int
	Ramp     float64
}

// Compose returns the steering force for the mode.
func (c Composer) Compose(m Mode, d Drives, pos components.Position, home components.Home) r2.Vec {
	switch m {
	case ModeHoming:
		return c.homing(d, pos, home)
	case ModeFleeing:
		return c.fleeing(d)
	case ModeHunting:
		return c.hunting(d)
	}
	return c.flocking(d, 1)
}

func (c Composer) homing(d Drives, pos components.Position, home components.Home) r2.Vec {
	return HomingSpring(pos.X, pos.Y, home, d.Flock.Alignment, c.Ramp, c.Params.Homing, c.Params.Flocking.AlignmentWeight)
}

func (c Composer) fleeing(d Drives) r2.Vec {
	p := c.Params.Predator
	w := p.BaseWeight * float64(c.GridSize) * p.WeightScale
	return r2.Scale(w, d.Predator)
}

func (c Composer) hunting(d Drives) r2.Vec {
	w := float64(c.GridSize) * c.Params.Food.WeightScale
	return r2.Add(r2.Scale(w, d.Food), c.flocking(d, c.Params.Food.HuntFlockFactor))
}

func (c Composer) flocking(d Drives, scale float64) r2.Vec {
	p := c.Params.Flocking
	f := r2.Scale(p.SeparationWeight*scale, d.Flock.Separation)
	f = r2.Add(f, r2.Scale(p.AlignmentWeight*scale, d.Flock.Alignment))
	return r2.Add(f, r2.Scale(p.CohesionWeight*scale, d.Flock.Cohesion))
}
