package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/roost/components"
)

func TestApplyMetabolism_SubtractsAndClampsAtZero(t *testing.T) {
	e := &components.Energy{Calories: 10, Max: 100, Alive: true}

	ApplyMetabolism(e, 3)
	if math.Abs(e.Calories-7) > 1e-12 {
		t.Errorf("expected 7 calories, got %f", e.Calories)
	}

	ApplyMetabolism(e, 100)
	if e.Calories != 0 {
		t.Errorf("expected clamp at 0, got %f", e.Calories)
	}
	if !e.Alive {
		t.Error("metabolism must not flip the alive flag")
	}
}

func TestApplyMetabolism_DeadIsUntouched(t *testing.T) {
	e := &components.Energy{Calories: 5, Max: 100, Alive: false}
	ApplyMetabolism(e, 3)
	if e.Calories != 5 {
		t.Errorf("dead agent's calories changed: %f", e.Calories)
	}
}

func TestForage_GainBoundedByAvailability(t *testing.T) {
	e := &components.Energy{Calories: 10, Max: 100, Alive: true}

	// Cell holds less than the raw gain
	applied := Forage(e, 2.0, 5.0)
	if math.Abs(applied-2.0) > 1e-12 {
		t.Errorf("expected applied=2 (availability bound), got %f", applied)
	}
	if math.Abs(e.Calories-12) > 1e-12 {
		t.Errorf("expected 12 calories, got %f", e.Calories)
	}
}

func TestForage_ExactClampAtMax(t *testing.T) {
	e := &components.Energy{Calories: 100 - 0.001, Max: 100, Alive: true}

	applied := Forage(e, 10, 5.0)
	if e.Calories != e.Max {
		t.Errorf("expected calories == max exactly, got %v", e.Calories)
	}
	if math.Abs(applied-0.001) > 1e-12 {
		t.Errorf("expected applied equal to spare capacity 0.001, got %v", applied)
	}
}

func TestForage_NoGainWhenFullDeadOrEmpty(t *testing.T) {
	full := &components.Energy{Calories: 100, Max: 100, Alive: true}
	if got := Forage(full, 10, 5); got != 0 {
		t.Errorf("full agent gained %f", got)
	}

	dead := &components.Energy{Calories: 0, Max: 100, Alive: false}
	if got := Forage(dead, 10, 5); got != 0 {
		t.Errorf("dead agent gained %f", got)
	}

	hungry := &components.Energy{Calories: 10, Max: 100, Alive: true}
	if got := Forage(hungry, 0, 5); got != 0 {
		t.Errorf("empty cell yielded %f", got)
	}
}
