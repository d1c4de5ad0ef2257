package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Outcome reports what one agent did during a tick.
type Outcome struct {
	Mode       Mode
	Attempted  bool // passed the move gate
	Moved      bool
	Pushed     bool // moved by displacing an occupant
	PushFailed bool
	Blocked    bool // target occupied and no push was tried
}

// Stepper holds the state shared by every agent update within one tick.
type Stepper struct {
	Grid       Grid
	Params     Params
	Homing     bool
	Ramp       float64
	Pointer    Pointer
	EdgeMargin int // layout margin per side, used for roaming pushes

	Occ  *Occupancy
	Food *FoodIndex
	Hood *Neighborhood
	Rng  *rand.Rand

	// OnMove is called after agent i completes a move. It must not change
	// simulation state.
	OnMove func(i int)
}

// Update senses, steers and moves agent i by one discrete step.
func (s *Stepper) Update(agents []Agent, i int) Outcome {
	a := agents[i]
	p := s.Params
	pos := *a.Pos

	// Sense
	d := Drives{Flock: s.Hood.Flock(agents, i, p.Flocking)}
	fdx, fdy, fdist, sensed := s.Food.Nearest(pos.X, pos.Y, p.Food.SenseRadius)
	if sensed {
		d.Food = FoodAttraction(fdx, fdy, p.Food.Attraction)
	}
	d.Predator = PredatorRepulsion(s.Grid, pos.X, pos.Y, s.Pointer, p.Predator, s.Rng)

	// Steer
	mode := Classify(s.Homing, d, p.Predator)
	out := Outcome{Mode: mode}
	c := Composer{Params: p, GridSize: s.Grid.H, Ramp: s.Ramp}
	v := r2.Add(r2.Vec{X: a.Vel.X, Y: a.Vel.Y}, c.Compose(mode, d, pos, *a.Home))
	if p.Walls.Mode == WallRepel {
		v = r2.Add(v, r2.Scale(p.Walls.Weight, WallRepulsion(s.Grid, pos.X, pos.Y, p.Walls.Threshold)))
	}
	v = sanitize(v, p.Motion.MaxVelocity)

	// Move
	moveChance := p.Motion.IdleMoveChance
	if mode == ModeHoming || mode == ModeFleeing || (sensed && fdist <= p.Food.HuntRadius) {
		moveChance = 1
	}
	step := 1
	if mode != ModeHoming && r2.Norm(d.Predator) > p.Predator.PanicThreshold {
		step = p.Predator.PanicStep
	}
	step = max(1, int(math.Round(float64(step)*p.Motion.SpeedMultiplier)))

	if s.Rng.Float64() < moveChance {
		out.Attempted = true
		s.move(agents, i, v, step, &out)
		if out.Moved && s.OnMove != nil {
			a.Vel.X, a.Vel.Y = v.X, v.Y
			s.OnMove(i)
		}
	}

	// Damp and jitter
	v = r2.Scale(DampingFactor(s.Homing, s.Ramp, p.Motion, p.Homing), v)
	amp := NoiseAmplitude(s.Homing, s.Ramp, p.Homing)
	v.X += (s.Rng.Float64()*2 - 1) * amp
	v.Y += (s.Rng.Float64()*2 - 1) * amp
	a.Vel.X, a.Vel.Y = v.X, v.Y
	return out
}

// move picks the target cell for agent i and resolves it against occupancy.
func (s *Stepper) move(agents []Agent, i int, v r2.Vec, step int, out *Outcome) {
	a := agents[i]
	x, y := a.Pos.X, a.Pos.Y

	dirX, dirY := velocityDirection(v)
	tx, ty := x+dirX*step, y+dirY*step
	if s.Homing {
		dxh, dyh := s.Grid.Delta(x, y, a.Home.X, a.Home.Y)
		switch {
		case max(abs(dxh), abs(dyh)) <= step:
			// Close enough: snap onto the slot.
			tx, ty = a.Home.X, a.Home.Y
			if dxh != 0 || dyh != 0 {
				dirX, dirY = sign(dxh), sign(dyh)
			}
		case abs(dxh) > abs(dyh):
			dirX, dirY = sign(dxh), 0
			tx, ty = x+dirX*step, y
		default:
			dirX, dirY = 0, sign(dyh)
			tx, ty = x, y+dirY*step
		}
	}
	tx, ty = s.Grid.Wrap(tx, ty)
	a.Heading.X, a.Heading.Y = dirX, dirY

	if tx == x && ty == y {
		return
	}
	occ := s.Occ.At(tx, ty)
	if occ == emptyCell {
		s.Occ.Move(agents, i, tx, ty)
		out.Moved = true
		return
	}
	if !s.Homing && !s.nearEdge(x, y) {
		out.Blocked = true
		return
	}
	if s.Occ.TryPush(agents, occ, dirX, dirY, 0, s.Params.Motion.MaxPushDepth) {
		s.Occ.Move(agents, i, tx, ty)
		out.Moved = true
		out.Pushed = true
		return
	}
	out.PushFailed = true
}

// nearEdge reports whether a cell lies within the push margin of the boundary.
func (s *Stepper) nearEdge(x, y int) bool {
	t := max(1, s.EdgeMargin/2)
	return x < t || x >= s.Grid.W-t || y < t || y >= s.Grid.H-t
}

// velocityDirection returns a unit step along the dominant velocity axis.
// Ties and zero velocity go vertical, with non-positive vy stepping up.
func velocityDirection(v r2.Vec) (int, int) {
	if math.Abs(v.X) > math.Abs(v.Y) {
		if v.X > 0 {
			return 1, 0
		}
		return -1, 0
	}
	if v.Y > 0 {
		return 0, 1
	}
	return 0, -1
}

// sanitize zeroes non-finite velocities and caps the magnitude at maxV.
func sanitize(v r2.Vec, maxV float64) r2.Vec {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
		return r2.Vec{}
	}
	if maxV > 0 {
		if n := r2.Norm(v); n > maxV {
			return r2.Scale(maxV/n, v)
		}
	}
	return v
}
