package components

import "math"

// Position represents an agent's world position.
type Position struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance to another position.
func (p Position) DistanceTo(o Position) float64 {
	dx := o.X - p.X
	dy := o.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}
