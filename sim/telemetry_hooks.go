package sim

import (
	"github.com/pthm-cable/roost/components"
	"github.com/pthm-cable/roost/config"
	"github.com/pthm-cable/roost/telemetry"
)

// FlushStats closes the current stats window, sampling the living
// population's calorie distribution and state counts at window end.
func (s *Sim) FlushStats() telemetry.WindowStats {
	var calories []float64
	var states telemetry.StateCounts

	query := s.filter.Query()
	for query.Next() {
		_, _, energy, behavior, _ := query.Get()
		if !energy.Alive {
			continue
		}
		calories = append(calories, energy.Calories)
		switch behavior.State {
		case components.StateForaging:
			states.Foraging++
		case components.StateReturning:
			states.Returning++
		case components.StateRoosting:
			states.Roosting++
		}
	}

	var occupancy float64
	for i := range s.registry.Patches {
		occupancy += float64(s.registry.Patches[i].Occupancy)
	}
	meanOcc := occupancy / float64(len(s.registry.Patches))

	return s.collector.Flush(s.tick, s.day, s.living, calories, states, s.field.TotalPrey(), meanOcc)
}

// Snapshot builds the per-step output surface: every agent's position and
// state, patch geometry, and optionally the raw prey field.
func (s *Sim) Snapshot(includeField bool) *telemetry.Snapshot {
	cfg := config.Cfg()

	snap := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		Step:      s.tick,
		Day:       s.day,
		TimeOfDay: TimeOfDay(s.tick, cfg.Clock.CycleLength),
	}

	query := s.filter.Query()
	for query.Next() {
		pos, phys, energy, behavior, _ := query.Get()
		snap.Agents = append(snap.Agents, telemetry.AgentState{
			ID:          phys.ID,
			X:           pos.X,
			Y:           pos.Y,
			Alive:       energy.Alive,
			State:       behavior.State.String(),
			Sex:         phys.Sex.String(),
			Age:         phys.Age,
			MassG:       phys.MassG,
			Strategy:    behavior.Strategy.String(),
			Calories:    energy.Calories,
			MaxCalories: energy.Max,
			Patch:       behavior.Patch,
		})
	}

	for i := range s.registry.Patches {
		p := &s.registry.Patches[i]
		snap.Patches = append(snap.Patches, telemetry.PatchState{
			ID:        p.ID,
			X:         p.Center.X,
			Y:         p.Center.Y,
			Radius:    p.Radius,
			Capacity:  p.Capacity,
			TotalPrey: p.TotalPrey,
			Occupancy: p.Occupancy,
		})
	}

	if includeField {
		prey := make([]float64, len(s.field.Prey))
		copy(prey, s.field.Prey)
		snap.Field = &telemetry.FieldState{
			CellsX:   s.field.CellsX,
			CellsY:   s.field.CellsY,
			CellSize: s.field.CellSize,
			Prey:     prey,
		}
	}

	return snap
}
