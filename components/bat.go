package components

// Sex of a bat, fixed at creation.
type Sex uint8

const (
	SexMale Sex = iota
	SexFemale
)

// String returns the sex as a short label.
func (s Sex) String() string {
	if s == SexFemale {
		return "F"
	}
	return "M"
}

// ReproStatus is the reproductive status of a female. Males carry ReproNone.
type ReproStatus uint8

const (
	ReproNone ReproStatus = iota
	ReproNotPregnant
	ReproPregnant
	ReproLactating
)

// String returns the status name.
func (r ReproStatus) String() string {
	switch r {
	case ReproNotPregnant:
		return "not_pregnant"
	case ReproPregnant:
		return "pregnant"
	case ReproLactating:
		return "lactating"
	default:
		return "n/a"
	}
}

// State is the behavioral state of an agent.
// Exactly one state holds at any time; Dead is terminal.
type State uint8

const (
	StateEmergence State = iota
	StateForaging
	StateReturning
	StateRoosting
	StateDead
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmergence:
		return "emergence"
	case StateForaging:
		return "foraging"
	case StateReturning:
		return "returning"
	case StateRoosting:
		return "roosting"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Strategy is the foraging strategy dichotomy: loners avoid crowded
// patches, group joiners seek them.
type Strategy uint8

const (
	StrategyLoner Strategy = iota
	StrategyGroupJoiner
)

// String returns the strategy name.
func (s Strategy) String() string {
	if s == StrategyGroupJoiner {
		return "group_joiner"
	}
	return "loner"
}

// Physiology holds the fixed physical traits of a bat. Everything here is
// computed once from mass, sex, age, and reproductive status at creation
// and never changes afterwards.
type Physiology struct {
	ID            uint32
	Sex           Sex
	Age           int // years
	Repro         ReproStatus
	MassG         float64 // body mass in grams
	FlightPower   float64 // W, from mass
	BMR           float64 // basal metabolic rate, kcal per step
	CruiseSpeed   float64 // m/s
	TransportCost float64 // cost of transport, kcal per unit distance
}

// Energy tracks an agent's calorie budget.
type Energy struct {
	Calories float64
	Max      float64
	Alive    bool
}

// Behavior holds the mutable behavioral state of an agent.
type Behavior struct {
	State           State
	Strategy        Strategy
	CompetitionRate float64 // in [0.1, 0.5]
	Target          Position
	Roost           Position // origin roost, fixed at creation
	Patch           int      // patch id the agent currently sits on, 0 = none
}

// Memory is the per-agent record of past foraging success by patch index.
// Entries are created lazily on first gain and decay while roosting.
// Patch indices are reused across daily regenerations, so an entry refers
// to a patch slot, not a stable geographic site.
type Memory struct {
	Scores map[int]float64
}

// Bonus returns the remembered score for a patch, or 0 if absent.
func (m *Memory) Bonus(patch int) float64 {
	if m.Scores == nil {
		return 0
	}
	return m.Scores[patch]
}

// Credit accumulates foraging success for a patch, creating the entry if absent.
func (m *Memory) Credit(patch int, gain float64) {
	if m.Scores == nil {
		m.Scores = make(map[int]float64, 4)
	}
	m.Scores[patch] += gain
}

// Decay multiplies every entry by factor. Called once per roosting step.
func (m *Memory) Decay(factor float64) {
	for k, v := range m.Scores {
		m.Scores[k] = v * factor
	}
}
