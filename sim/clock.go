package sim

import "github.com/pthm-cable/roost/config"

// TimeOfDay returns the 1-based position of step t within the day cycle.
func TimeOfDay(t, cycleLength int) int {
	return ((t - 1) % cycleLength) + 1
}

// IsDayStart reports whether step t opens a new simulated day.
func IsDayStart(t, cycleLength int) bool {
	return t%cycleLength == 1
}

// inReturnWindow reports whether the time of day falls in the trailing
// portion of the active segment, during which every agent is redirected
// toward its roost regardless of foraging state.
func inReturnWindow(tod int, clock config.ClockConfig) bool {
	return tod > clock.ForageSteps-clock.ReturnWindow && tod <= clock.ForageSteps
}

// isRoostHours reports whether the time of day falls in the daytime segment.
func isRoostHours(tod int, clock config.ClockConfig) bool {
	return tod > clock.ForageSteps
}
