package sim

import (
	"github.com/pthm-cable/roost/components"
	"github.com/pthm-cable/roost/config"
	"github.com/pthm-cable/roost/systems"
)

// Step advances the simulation by one tick. Phases run in a fixed order
// over the whole population: clock and daily regeneration, occupancy
// counting, state resolution, spatial index rebuild, movement, energy.
// Within a phase agents are processed sequentially and later agents
// observe positions already updated by earlier ones; this ordering is
// part of the designed behavior.
func (s *Sim) Step() {
	cfg := config.Cfg()

	s.tick++
	tod := TimeOfDay(s.tick, cfg.Clock.CycleLength)

	if IsDayStart(s.tick, cfg.Clock.CycleLength) {
		s.day++
		s.registry.Regenerate(s.rng)
	}

	s.updateOccupancy()
	s.resolveStates(tod)
	s.rebuildGrid()
	s.updateMovement()
	s.updateEnergy()
}

// rebuildGrid re-inserts every living agent into the spatial index. It
// runs after state resolution so agents that died this step block no one.
// Cell membership is fixed for the step; positions are read live at query
// time, so moves made earlier in a sweep are visible to later agents.
func (s *Sim) rebuildGrid() {
	s.grid.Clear()

	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, energy, _, _ := query.Get()
		if energy.Alive {
			s.grid.Insert(entity, pos.X, pos.Y)
		}
	}
}

// updateOccupancy recomputes per-patch occupancy from scratch and records
// each agent's current patch. Occupancy is derived state, never carried
// across steps.
func (s *Sim) updateOccupancy() {
	s.registry.ResetOccupancy()

	query := s.filter.Query()
	for query.Next() {
		pos, _, energy, behavior, _ := query.Get()
		if !energy.Alive {
			continue
		}
		behavior.Patch = s.registry.ReportOccupant(pos.X, pos.Y)
	}
}

// resolveStates applies the lifecycle transition rules to every living
// agent, in strict priority order: starvation, fullness, the global return
// window, roost hours, then foraging.
func (s *Sim) resolveStates(tod int) {
	cfg := config.Cfg()

	query := s.filter.Query()
	for query.Next() {
		pos, _, energy, behavior, memory := query.Get()

		if !energy.Alive {
			continue
		}

		// 1. Starvation is terminal.
		if energy.Calories <= cfg.Energy.DeathThreshold {
			energy.Alive = false
			behavior.State = components.StateDead
			s.living--
			s.deaths++
			s.collector.RecordDeath()
			continue
		}

		// 2. Full agents head home.
		if energy.Calories >= energy.Max {
			behavior.State = components.StateReturning
			behavior.Target = behavior.Roost
			continue
		}

		// 3. Pre-sunrise return window overrides any foraging target.
		if inReturnWindow(tod, cfg.Clock) {
			behavior.State = components.StateReturning
			behavior.Target = behavior.Roost
			continue
		}

		// 4. Roost hours: snap home, decay memory, no movement.
		if isRoostHours(tod, cfg.Clock) {
			behavior.State = components.StateRoosting
			*pos = behavior.Roost
			behavior.Target = behavior.Roost
			memory.Decay(cfg.Memory.RoostDecay)
			continue
		}

		// 5. Forage. An agent already on prey holds its cell; otherwise it
		// picks a patch, falling back to Returning when none qualifies.
		behavior.State = components.StateForaging
		if s.field.PreyAt(pos.X, pos.Y) > 0 {
			behavior.Target = *pos
			continue
		}
		if id := systems.SelectPatch(*pos, behavior.Strategy, behavior.CompetitionRate, memory, s.registry, s.rng); id != 0 {
			behavior.Target = s.registry.Get(id).Center
		} else {
			behavior.State = components.StateReturning
			behavior.Target = behavior.Roost
		}
	}
}

// updateMovement advances every living, non-roosting agent that has not yet
// arrived at its target. A candidate position is rejected outright when it
// crowds another living agent away from a roost; the agent then holds
// position for this step.
func (s *Sim) updateMovement() {
	cfg := config.Cfg()
	mv := cfg.Movement

	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, phys, energy, behavior, _ := query.Get()

		if !energy.Alive || behavior.State == components.StateRoosting {
			continue
		}
		if pos.DistanceTo(behavior.Target) <= mv.Tolerance {
			continue
		}

		s.neighbors = s.neighbors[:0]
		s.neighbors = s.grid.QueryRadiusInto(s.neighbors, pos.X, pos.Y, mv.RepulsionRadius, entity, s.posMap)

		dx, dy, ok := systems.Steer(*pos, behavior.Target, s.neighbors)
		if !ok {
			continue // desired and repulsion cancel exactly
		}

		eff := systems.FlightEfficiency(phys.Age, mv.MinFlightEfficiency)
		cand := systems.Displace(*pos, dx, dy, mv.StepSize, eff, cfg.World.Width, cfg.World.Height)

		if !systems.NearAnyRoost(cand, s.roosts, mv.Tolerance) &&
			s.grid.AnyWithin(cand.X, cand.Y, mv.Tolerance, entity, s.posMap) {
			s.collector.RecordBlockedMove()
			continue
		}

		*pos = cand
	}
}

// updateEnergy applies metabolic loss to every living agent (roosting
// agents at half the active rate) and foraging gain to non-roosting agents
// sitting on prey-bearing cells with spare capacity. Gains are clamped to
// capacity and to cell prey, the field and patch totals decrease in
// lockstep, and the gain is credited to the agent's memory of that patch.
func (s *Sim) updateEnergy() {
	cfg := config.Cfg()

	query := s.filter.Query()
	for query.Next() {
		pos, phys, energy, behavior, memory := query.Get()

		if !energy.Alive {
			continue
		}

		cost := cfg.Energy.MetabolicFactor * phys.BMR
		if behavior.State == components.StateRoosting {
			cost *= 0.5
		}
		systems.ApplyMetabolism(energy, cost)

		if behavior.State == components.StateRoosting {
			continue
		}

		idx, inField := s.field.CellIndex(pos.X, pos.Y)
		if !inField || s.field.Prey[idx] <= 0 || energy.Calories >= energy.Max {
			continue
		}

		eff := systems.ForagingEfficiency(phys.Age, cfg.Movement.MinForageEfficiency)
		raw := (cfg.Energy.GainMin + s.rng.Float64()*(cfg.Energy.GainMax-cfg.Energy.GainMin)) * eff

		applied := systems.Forage(energy, s.field.Prey[idx], raw)
		if applied <= 0 {
			continue
		}
		s.registry.Consume(idx, applied)
		if id := s.field.PatchID[idx]; id != 0 {
			memory.Credit(id, applied)
		}
		s.collector.RecordForage(applied)
	}
}
