package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one step window.
type WindowStats struct {
	WindowEnd int `csv:"window_end"`
	Day       int `csv:"day"`

	// Population at window end
	Living    int `csv:"living"`
	Foraging  int `csv:"foraging"`
	Returning int `csv:"returning"`
	Roosting  int `csv:"roosting"`

	// Events during the window
	Deaths       int     `csv:"deaths"`
	ForageEvents int     `csv:"forage_events"`
	PreyConsumed float64 `csv:"prey_consumed"`
	BlockedMoves int     `csv:"blocked_moves"`

	// Calorie distribution (sampled at window end, living agents only)
	CalorieMean float64 `csv:"cal_mean"`
	CalorieStd  float64 `csv:"cal_std"`
	CalorieP10  float64 `csv:"cal_p10"`
	CalorieP50  float64 `csv:"cal_p50"`
	CalorieP90  float64 `csv:"cal_p90"`

	// Resource state
	FieldPrey     float64 `csv:"field_prey"`
	MeanOccupancy float64 `csv:"mean_occupancy"`
}

// CalorieStats computes mean, stddev, and percentiles of calorie values.
func CalorieStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}
