package systems

import "github.com/pthm-cable/roost/components"

// ApplyMetabolism subtracts a metabolic cost from the agent's calorie pool,
// clamping at zero so the 0 ≤ calories invariant holds while alive.
// Death itself is decided in the lifecycle sweep, not here.
func ApplyMetabolism(e *components.Energy, cost float64) {
	if !e.Alive {
		return
	}
	e.Calories -= cost
	if e.Calories < 0 {
		e.Calories = 0
	}
}

// Forage applies a foraging gain clamped to both the agent's spare capacity
// and the prey available on the cell. Returns the amount actually applied;
// the caller removes exactly that amount from the field and credits it to
// the agent's patch memory.
func Forage(e *components.Energy, avail, gain float64) float64 {
	if !e.Alive || gain <= 0 || avail <= 0 {
		return 0
	}
	spare := e.Max - e.Calories
	if spare <= 0 {
		return 0
	}
	applied := gain
	if applied > avail {
		applied = avail
	}
	if applied >= spare {
		// Exact clamp at capacity; no float drift past Max.
		e.Calories = e.Max
		return spare
	}
	e.Calories += applied
	return applied
}
