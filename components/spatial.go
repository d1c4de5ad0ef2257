package components

// Position is an integer grid cell. Always wrapped into [0,W)x[0,H).
type Position struct {
	X, Y int
}

// Velocity is the real-valued steering accumulator that picks the next step.
type Velocity struct {
	X, Y float64
}

// Heading is the direction of the most recent attempted move.
// Persists across ticks so orientation stays stable when velocity is small.
type Heading struct {
	X, Y int
}

// Offset is a cosmetic sub-cell render jitter in pixels.
type Offset struct {
	X, Y float64
}
