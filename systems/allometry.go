package systems

import (
	"math"

	"github.com/pthm-cable/roost/components"
)

// Fixed allometric scaling functions. These are treated as given scalar
// laws, not tunable parameters: they are evaluated once per agent at
// creation and the results stored in Physiology.

// FlightPower returns mechanical flight power in watts for a bat of the
// given body mass in grams.
func FlightPower(massG float64) float64 {
	return 57.9 * math.Pow(massG/1000.0, 0.813)
}

// BasalRate returns the basal metabolic rate in kcal per step for a bat of
// the given mass and reproductive status. Pregnancy and lactation raise the
// base rate.
func BasalRate(massG float64, repro components.ReproStatus) float64 {
	rate := 70.0 * math.Pow(massG/1000.0, 0.75)
	switch repro {
	case components.ReproPregnant:
		rate *= 1.2
	case components.ReproLactating:
		rate *= 1.5
	}
	return rate
}

// CruiseSpeed returns the preferred flight speed in m/s for the given mass.
func CruiseSpeed(massG float64) float64 {
	return 9.7 * math.Pow(massG/1000.0, 0.35)
}

// TransportCost returns the energetic cost per unit distance flown.
func TransportCost(massG float64) float64 {
	v := CruiseSpeed(massG)
	if v <= 0 {
		return 0
	}
	return FlightPower(massG) / v
}

// FlightEfficiency returns the age-scaled movement multiplier, degrading
// 5% per year past the first and floored at min.
func FlightEfficiency(age int, min float64) float64 {
	eff := 1.0 - 0.05*float64(age-1)
	if eff < min {
		return min
	}
	return eff
}

// ForagingEfficiency returns the age-scaled foraging gain multiplier,
// degrading 3% per year past the first and floored at min.
func ForagingEfficiency(age int, min float64) float64 {
	eff := 1.0 - 0.03*float64(age-1)
	if eff < min {
		return min
	}
	return eff
}
