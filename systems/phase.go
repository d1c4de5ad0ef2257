package systems

import "time"

// PhaseState is the flock-wide roaming/homing clock.
type PhaseState struct {
	Homing     bool
	LastToggle time.Duration
	StartTime  time.Duration // start of the current homing phase
}

// Update toggles between roaming and homing once more than cycle has elapsed
// since the last toggle. Entering homing anchors the ramp at now.
// Returns true when the phase changed.
func (s *PhaseState) Update(now, cycle time.Duration) bool {
	if now-s.LastToggle <= cycle {
		return false
	}
	s.Homing = !s.Homing
	s.LastToggle = now
	if s.Homing {
		s.StartTime = now
	}
	return true
}

// Reset restarts the clock in the roaming phase at now.
func (s *PhaseState) Reset(now time.Duration) {
	*s = PhaseState{LastToggle: now, StartTime: now}
}

// Ramp returns the homing ramp factor: 0 at phase start rising linearly to 1
// after ramp has elapsed. Always 0 while roaming.
func (s PhaseState) Ramp(now, ramp time.Duration) float64 {
	if !s.Homing {
		return 0
	}
	if ramp <= 0 {
		return 1
	}
	return clamp01(float64(now-s.StartTime) / float64(ramp))
}

// Name returns "homing" or "roaming".
func (s PhaseState) Name() string {
	if s.Homing {
		return "homing"
	}
	return "roaming"
}

// lerp interpolates from a to b by t.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// DampingFactor returns the velocity damping for the ramp: the base damping
// while roaming, moving toward the homing damping as the ramp rises.
func DampingFactor(homing bool, ramp float64, m MotionParams, h HomingParams) float64 {
	if !homing {
		return m.Damping
	}
	return lerp(m.Damping, h.Damping, ramp)
}

// NoiseAmplitude returns the per-axis velocity noise amplitude: 1 while
// roaming, moving toward the homing noise reduction as the ramp rises.
func NoiseAmplitude(homing bool, ramp float64, h HomingParams) float64 {
	if !homing {
		return 1
	}
	return lerp(1, h.NoiseReduction, ramp)
}
