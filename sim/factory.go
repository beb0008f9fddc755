package sim

import (
	"github.com/pthm-cable/roost/components"
	"github.com/pthm-cable/roost/config"
	"github.com/pthm-cable/roost/systems"
)

// spawnInitialPopulation creates the starting agents. The population is
// fixed for the whole run; agents only leave it by starving.
func (s *Sim) spawnInitialPopulation() {
	cfg := config.Cfg()
	for i := 0; i < cfg.Population.Initial; i++ {
		s.spawnBat(uint32(i + 1))
	}
}

// spawnBat creates one agent at a roost site with sampled physiology.
// All physiological derivations happen here, once; Physiology never
// changes afterwards.
func (s *Sim) spawnBat(id uint32) {
	cfg := config.Cfg()
	pop := cfg.Population

	sex := components.SexMale
	if s.rng.Float64() < pop.FemaleFraction {
		sex = components.SexFemale
	}

	repro := components.ReproNone
	if sex == components.SexFemale {
		switch roll := s.rng.Float64(); {
		case roll < pop.PregnantFraction:
			repro = components.ReproPregnant
		case roll < pop.PregnantFraction+pop.LactatingFraction:
			repro = components.ReproLactating
		default:
			repro = components.ReproNotPregnant
		}
	}

	age := 1 + s.rng.Intn(pop.MaxAge)

	mass := pop.MassMean + s.rng.NormFloat64()*pop.MassSigma
	if mass < 1 {
		mass = 1
	}

	strategy := components.StrategyLoner
	if s.rng.Float64() < pop.GroupJoinerFraction {
		strategy = components.StrategyGroupJoiner
	}
	competition := pop.CompetitionMin + s.rng.Float64()*(pop.CompetitionMax-pop.CompetitionMin)

	roost := s.roosts[s.rng.Intn(len(s.roosts))]

	pos := roost
	phys := components.Physiology{
		ID:            id,
		Sex:           sex,
		Age:           age,
		Repro:         repro,
		MassG:         mass,
		FlightPower:   systems.FlightPower(mass),
		BMR:           systems.BasalRate(mass, repro),
		CruiseSpeed:   systems.CruiseSpeed(mass),
		TransportCost: systems.TransportCost(mass),
	}
	energy := components.Energy{
		Calories: (0.5 + 0.4*s.rng.Float64()) * cfg.Energy.MaxCalories,
		Max:      cfg.Energy.MaxCalories,
		Alive:    true,
	}
	behavior := components.Behavior{
		State:           components.StateEmergence,
		Strategy:        strategy,
		CompetitionRate: competition,
		Target:          roost,
		Roost:           roost,
	}
	memory := components.Memory{}

	s.mapper.NewEntity(&pos, &phys, &energy, &behavior, &memory)
	s.living++
}
