package systems

import (
	"math/rand"

	"github.com/pthm-cable/roost/components"
)

// distanceEpsilon floors patch distances so the prey/distance term never
// divides by zero.
const distanceEpsilon = 1e-6

// jitterFraction bounds the tie-break perturbation relative to the
// prey/distance term.
const jitterFraction = 0.01

// SelectPatch scores every qualifying patch for the agent and returns the
// id of the best one, or 0 when no patch qualifies ("none available"; the
// caller routes the agent home).
//
// A patch qualifies when it still holds prey and has a free occupant slot.
// The score combines expected yield per distance, a crowding term whose
// sign encodes the loner/group-joiner dichotomy, the agent's remembered
// success on that patch slot, and a small random jitter so identical agents
// do not pick in lockstep.
func SelectPatch(
	pos components.Position,
	strategy components.Strategy,
	competitionRate float64,
	mem *components.Memory,
	reg *Registry,
	rng *rand.Rand,
) int {
	best := 0
	bestScore := 0.0

	for i := range reg.Patches {
		p := &reg.Patches[i]
		if p.TotalPrey <= 0 || p.Occupancy >= p.Capacity {
			continue
		}

		dist := pos.DistanceTo(p.Center)
		if dist < distanceEpsilon {
			dist = distanceEpsilon
		}
		base := 0.5 * p.TotalPrey / dist

		competition := float64(p.Occupancy) * competitionRate
		if strategy != components.StrategyGroupJoiner {
			competition = -competition
		}

		jitterScale := base
		if jitterScale < 1 {
			jitterScale = 1
		}
		jitter := (rng.Float64()*2 - 1) * jitterFraction * jitterScale

		score := base + competition + mem.Bonus(p.ID) + jitter
		if best == 0 || score > bestScore {
			best = p.ID
			bestScore = score
		}
	}

	return best
}
