// Package sim drives the bat foraging simulation: the day-night lifecycle
// controller, the per-step phase ordering, and the ECS world holding the
// agent population.
package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/roost/components"
	"github.com/pthm-cable/roost/config"
	"github.com/pthm-cable/roost/systems"
	"github.com/pthm-cable/roost/telemetry"
)

// Options holds run parameters not covered by the config file.
type Options struct {
	Seed int64
}

// Sim holds the complete simulation state. All mutation happens in Step;
// the simulation is single-threaded and deterministic for a given seed.
type Sim struct {
	world ecs.World
	rng   *rand.Rand

	mapper *ecs.Map5[
		components.Position,
		components.Physiology,
		components.Energy,
		components.Behavior,
		components.Memory,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Physiology,
		components.Energy,
		components.Behavior,
		components.Memory,
	]
	posMap *ecs.Map1[components.Position]

	field    *systems.Field
	registry *systems.Registry
	grid     *systems.SpatialGrid

	collector *telemetry.Collector

	roosts []components.Position

	tick   int
	day    int
	living int
	deaths int

	// Scratch buffer reused across movement queries
	neighbors []systems.Neighbor
}

// New creates a simulation from the loaded config and seeds the population.
func New(opts Options) *Sim {
	cfg := config.Cfg()

	s := &Sim{
		rng: rand.New(rand.NewSource(opts.Seed)),
	}
	s.world = *ecs.NewWorld()

	s.mapper = ecs.NewMap5[
		components.Position,
		components.Physiology,
		components.Energy,
		components.Behavior,
		components.Memory,
	](&s.world)
	s.filter = ecs.NewFilter5[
		components.Position,
		components.Physiology,
		components.Energy,
		components.Behavior,
		components.Memory,
	](&s.world)
	s.posMap = ecs.NewMap1[components.Position](&s.world)

	s.field = systems.NewField(cfg.Derived.CellsX, cfg.Derived.CellsY, cfg.World.CellSize)
	s.registry = systems.NewRegistry(s.field)
	s.grid = systems.NewSpatialGrid(cfg.World.Width, cfg.World.Height, cfg.Movement.SensoryRange)
	s.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow)

	s.roosts = make([]components.Position, len(cfg.Roosts))
	for i, r := range cfg.Roosts {
		s.roosts[i] = components.Position{X: r.X, Y: r.Y}
	}

	s.spawnInitialPopulation()

	return s
}

// Tick returns the current step number.
func (s *Sim) Tick() int { return s.tick }

// Day returns the current simulated day, starting at 1.
func (s *Sim) Day() int { return s.day }

// Living returns the number of living agents.
func (s *Sim) Living() int { return s.living }

// Deaths returns the cumulative starvation count.
func (s *Sim) Deaths() int { return s.deaths }

// Registry exposes the patch registry for telemetry consumers.
func (s *Sim) Registry() *systems.Registry { return s.registry }

// Field exposes the resource field for telemetry consumers.
func (s *Sim) Field() *systems.Field { return s.field }

// Collector exposes the telemetry collector.
func (s *Sim) Collector() *telemetry.Collector { return s.collector }
