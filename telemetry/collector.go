// Package telemetry aggregates per-step simulation events into windowed
// statistics and exposes the per-step snapshot surface consumed by external
// visualizers and exporters.
package telemetry

// Collector accumulates events within step windows and produces WindowStats.
type Collector struct {
	windowSteps int

	// Current window tracking
	windowStart int

	// Event counters for the current window
	deaths       int
	forageEvents int
	preyConsumed float64
	blockedMoves int
}

// NewCollector creates a stats collector flushing every windowSteps steps.
func NewCollector(windowSteps int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{windowSteps: windowSteps}
}

// RecordDeath records a starvation death.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordForage records one successful foraging event and the prey consumed.
func (c *Collector) RecordForage(amount float64) {
	c.forageEvents++
	c.preyConsumed += amount
}

// RecordBlockedMove records a move rejected by the collision policy.
func (c *Collector) RecordBlockedMove() {
	c.blockedMoves++
}

// ShouldFlush returns true once enough steps have passed to close the window.
func (c *Collector) ShouldFlush(currentStep int) bool {
	return currentStep-c.windowStart >= c.windowSteps
}

// Flush produces a WindowStats from the window counters and the caller's
// population sample, then resets for the next window. The caller provides
// current population state; the collector only owns event counts.
func (c *Collector) Flush(
	currentStep, day, living int,
	calories []float64,
	states StateCounts,
	fieldPrey, meanOccupancy float64,
) WindowStats {
	mean, std, p10, p50, p90 := CalorieStats(calories)

	ws := WindowStats{
		WindowEnd:     currentStep,
		Day:           day,
		Living:        living,
		Deaths:        c.deaths,
		ForageEvents:  c.forageEvents,
		PreyConsumed:  c.preyConsumed,
		BlockedMoves:  c.blockedMoves,
		Foraging:      states.Foraging,
		Returning:     states.Returning,
		Roosting:      states.Roosting,
		CalorieMean:   mean,
		CalorieStd:    std,
		CalorieP10:    p10,
		CalorieP50:    p50,
		CalorieP90:    p90,
		FieldPrey:     fieldPrey,
		MeanOccupancy: meanOccupancy,
	}

	c.windowStart = currentStep
	c.deaths = 0
	c.forageEvents = 0
	c.preyConsumed = 0
	c.blockedMoves = 0

	return ws
}

// StateCounts holds the per-state population counts at window end.
type StateCounts struct {
	Foraging  int
	Returning int
	Roosting  int
}
