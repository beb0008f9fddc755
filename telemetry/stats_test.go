package telemetry

import (
	"math"
	"testing"
)

func TestCalorieStats_KnownDistribution(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	mean, std, p10, p50, p90 := CalorieStats(values)

	if math.Abs(mean-5.5) > 1e-12 {
		t.Errorf("expected mean 5.5, got %f", mean)
	}
	if math.Abs(std-3.0276503540974917) > 1e-9 {
		t.Errorf("expected sample stddev ~3.0277, got %f", std)
	}
	if p10 != 1 || p50 != 5 || p90 != 9 {
		t.Errorf("expected quantiles (1, 5, 9), got (%f, %f, %f)", p10, p50, p90)
	}
}

func TestCalorieStats_UnsortedInputLeftIntact(t *testing.T) {
	values := []float64{9, 1, 5}
	CalorieStats(values)
	if values[0] != 9 || values[1] != 1 || values[2] != 5 {
		t.Errorf("input slice reordered: %v", values)
	}
}

func TestCalorieStats_Degenerate(t *testing.T) {
	mean, std, p10, p50, p90 := CalorieStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("expected all-zero stats for empty input")
	}

	mean, std, p10, p50, p90 = CalorieStats([]float64{42})
	if mean != 42 || std != 0 {
		t.Errorf("single value: expected mean 42 std 0, got %f %f", mean, std)
	}
	if p10 != 42 || p50 != 42 || p90 != 42 {
		t.Errorf("single value: expected all quantiles 42, got (%f, %f, %f)", p10, p50, p90)
	}
}
