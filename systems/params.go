package systems

import "time"

// WallMode selects how grid edges affect steering.
type WallMode uint8

const (
	// WallBounce is inactive on the torus: no force, no reflection.
	WallBounce WallMode = iota
	// WallRepel adds a repulsion from nearby edges to every bird's velocity.
	WallRepel
)

// String returns the configuration name of the mode.
func (m WallMode) String() string {
	if m == WallRepel {
		return "repel"
	}
	return "bounce"
}

// ParseWallMode maps a configuration name onto a mode. Unknown names are inactive.
func ParseWallMode(s string) WallMode {
	if s == "repel" {
		return WallRepel
	}
	return WallBounce
}

// FlockingParams weights and radii for separation, alignment and cohesion.
type FlockingParams struct {
	SeparationWeight float64
	AlignmentWeight  float64
	CohesionWeight   float64
	SeparationRadius int // Manhattan, exclusive
	AlignmentRadius  int
	CohesionRadius   int
	CohesionScale    float64
}

// FoodParams controls food sensing and the hunting drive.
type FoodParams struct {
	SenseRadius     int     // Manhattan, inclusive
	HuntRadius      int     // food this close forces a move
	Attraction      float64 // displacement scale
	WeightScale     float64 // food weight = grid size * this
	HuntFlockFactor float64 // flocking weight multiplier while hunting
	HealthGain      float64
}

// PredatorParams controls pointer avoidance.
type PredatorParams struct {
	BaseWeight     float64
	WeightScale    float64 // weight = base * grid size * this
	PanicThreshold float64
	ForceThreshold float64
	RadiusMinGrid  float64
	RadiusMaxGrid  float64
	RadiusMin      float64 // radius on large grids
	RadiusMax      float64 // radius on small grids
	PanicStep      int
}

// HomingParams controls the homing phase.
type HomingParams struct {
	HomeWeight     float64
	Cycle          time.Duration
	Ramp           time.Duration
	Damping        float64
	NoiseReduction float64
	AlignmentBoost float64
}

// MotionParams controls integration and discrete stepping.
type MotionParams struct {
	Damping         float64
	SpeedMultiplier float64
	IdleMoveChance  float64
	MaxVelocity     float64
	MaxPushDepth    int
}

// WallParams controls edge repulsion.
type WallParams struct {
	Mode      WallMode
	Weight    float64
	Threshold int
}

// Params is the full set of tunables read by one tick. It is passed by value
// so changes made between ticks take effect on the next one.
type Params struct {
	Flocking FlockingParams
	Food     FoodParams
	Predator PredatorParams
	Homing   HomingParams
	Motion   MotionParams
	Walls    WallParams
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Flocking: FlockingParams{
			SeparationWeight: 1,
			AlignmentWeight:  1,
			CohesionWeight:   1,
			SeparationRadius: 3,
			AlignmentRadius:  3,
			CohesionRadius:   6,
			CohesionScale:    0.05,
		},
		Food: FoodParams{
			SenseRadius:     8,
			HuntRadius:      2,
			Attraction:      0.1,
			WeightScale:     4,
			HuntFlockFactor: 0.3,
			HealthGain:      1,
		},
		Predator: PredatorParams{
			BaseWeight:     10,
			WeightScale:    50,
			PanicThreshold: 0.8,
			ForceThreshold: 0.01,
			RadiusMinGrid:  5,
			RadiusMaxGrid:  100,
			RadiusMin:      2,
			RadiusMax:      5,
			PanicStep:      2,
		},
		Homing: HomingParams{
			HomeWeight:     0.06,
			Cycle:          10 * time.Second,
			Ramp:           2 * time.Second,
			Damping:        0.6,
			NoiseReduction: 0.2,
			AlignmentBoost: 1.6,
		},
		Motion: MotionParams{
			Damping:         0.85,
			SpeedMultiplier: 1,
			IdleMoveChance:  0.5,
			MaxVelocity:     1e4,
			MaxPushDepth:    3,
		},
		Walls: WallParams{
			Mode:      WallBounce,
			Weight:    0.8,
			Threshold: 3,
		},
	}
}
