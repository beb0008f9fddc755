package systems

import (
	"math"

	"github.com/pthm-cable/roost/components"
)

// Steer combines target seeking with short-range neighbor repulsion and
// returns the unit movement direction. ok is false when the two exactly
// cancel (or the agent is at its target with no neighbors), in which case
// the agent holds position this step.
//
// The repulsion field is inverse-square: each neighbor within the repulsion
// radius pushes the agent away along (self − other)/d². Neighbors at exactly
// zero distance are skipped.
func Steer(pos, target components.Position, neighbors []Neighbor) (dx, dy float64, ok bool) {
	// Desired direction toward target (zero when already there)
	dirX := target.X - pos.X
	dirY := target.Y - pos.Y
	if d := math.Sqrt(dirX*dirX + dirY*dirY); d > 0 {
		dirX /= d
		dirY /= d
	} else {
		dirX, dirY = 0, 0
	}

	// Inverse-square repulsion away from each neighbor. DX/DY point from
	// self to the neighbor, so the push is the negated delta over d².
	var repX, repY float64
	for _, n := range neighbors {
		if n.DistSq == 0 {
			continue
		}
		repX -= n.DX / n.DistSq
		repY -= n.DY / n.DistSq
	}

	cx := dirX + repX
	cy := dirY + repY
	mag := math.Sqrt(cx*cx + cy*cy)
	if mag == 0 {
		return 0, 0, false
	}
	return cx / mag, cy / mag, true
}

// Displace returns the candidate position after moving from pos along the
// unit direction by stepSize scaled with the agent's flight efficiency,
// clamped to the world bounds.
func Displace(pos components.Position, dx, dy, stepSize, flightEff, width, height float64) components.Position {
	step := stepSize * flightEff
	next := components.Position{X: pos.X + dx*step, Y: pos.Y + dy*step}
	if next.X < 0 {
		next.X = 0
	} else if next.X >= width {
		next.X = math.Nextafter(width, 0)
	}
	if next.Y < 0 {
		next.Y = 0
	} else if next.Y >= height {
		next.Y = math.Nextafter(height, 0)
	}
	return next
}

// NearAnyRoost reports whether the position is within tolerance of one of
// the roost sites. Roosts are exempt from crowding rejection so agents may
// co-locate there.
func NearAnyRoost(pos components.Position, roosts []components.Position, tolerance float64) bool {
	for _, r := range roosts {
		if pos.DistanceTo(r) <= tolerance {
			return true
		}
	}
	return false
}
