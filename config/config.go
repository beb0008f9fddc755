// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Clock      ClockConfig      `yaml:"clock"`
	Patches    PatchesConfig    `yaml:"patches"`
	Population PopulationConfig `yaml:"population"`
	Roosts     []RoostConfig    `yaml:"roosts"`
	Energy     EnergyConfig     `yaml:"energy"`
	Movement   MovementConfig   `yaml:"movement"`
	Memory     MemoryConfig     `yaml:"memory"`
	Sim        SimConfig        `yaml:"sim"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the foraging domain dimensions and cell resolution.
type WorldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

// ClockConfig holds the day-night cycle parameters, all in steps.
// A day is CycleLength steps; the first ForageSteps of each day are the
// active (night) segment, the rest are roost hours. The last ReturnWindow
// steps of the active segment redirect every agent toward its roost.
type ClockConfig struct {
	CycleLength  int `yaml:"cycle_length"`
	ForageSteps  int `yaml:"forage_steps"`
	ReturnWindow int `yaml:"return_window"`
}

// PatchesConfig holds daily patch regeneration parameters.
type PatchesConfig struct {
	Count       int     `yaml:"count"`
	RadiusMin   float64 `yaml:"radius_min"`
	RadiusMax   float64 `yaml:"radius_max"`
	PreyMin     float64 `yaml:"prey_min"` // per-cell prey draw range
	PreyMax     float64 `yaml:"prey_max"`
	CapacityMin int     `yaml:"capacity_min"` // max simultaneous occupants
	CapacityMax int     `yaml:"capacity_max"`
}

// PopulationConfig holds population seeding parameters.
// The population is fixed for the whole run; agents only leave it by starving.
type PopulationConfig struct {
	Initial             int     `yaml:"initial"`
	GroupJoinerFraction float64 `yaml:"group_joiner_fraction"`
	CompetitionMin      float64 `yaml:"competition_min"`
	CompetitionMax      float64 `yaml:"competition_max"`
	MaxAge              int     `yaml:"max_age"` // years, sampled uniformly 1..MaxAge
	MassMean            float64 `yaml:"mass_mean"` // grams
	MassSigma           float64 `yaml:"mass_sigma"`
	FemaleFraction      float64 `yaml:"female_fraction"`
	PregnantFraction    float64 `yaml:"pregnant_fraction"` // of females
	LactatingFraction   float64 `yaml:"lactating_fraction"`
}

// RoostConfig holds one roost site position.
type RoostConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// EnergyConfig holds metabolic and foraging energy parameters.
type EnergyConfig struct {
	MetabolicFactor float64 `yaml:"metabolic_factor"` // multiplies BMR per step
	DeathThreshold  float64 `yaml:"death_threshold"`
	MaxCalories     float64 `yaml:"max_calories"`
	GainMin         float64 `yaml:"gain_min"` // per-step foraging gain draw range
	GainMax         float64 `yaml:"gain_max"`
}

// MovementConfig holds movement and collision parameters.
type MovementConfig struct {
	StepSize            float64 `yaml:"step_size"`
	Tolerance           float64 `yaml:"tolerance"` // arrival and collision distance
	RepulsionRadius     float64 `yaml:"repulsion_radius"`
	SensoryRange        float64 `yaml:"sensory_range"` // shared neighbor-query radius
	MinFlightEfficiency float64 `yaml:"min_flight_efficiency"`
	MinForageEfficiency float64 `yaml:"min_foraging_efficiency"`
}

// MemoryConfig holds patch-memory parameters.
type MemoryConfig struct {
	RoostDecay float64 `yaml:"roost_decay"` // multiplicative decay per roosting step
}

// SimConfig holds run-length parameters.
type SimConfig struct {
	Steps int `yaml:"steps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // steps per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellsX int // field width in cells
	CellsY int // field height in cells
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configuration values outside documented ranges.
// The simulation core assumes a validated config and never re-checks.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: world dimensions must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	if c.World.CellSize <= 0 {
		return fmt.Errorf("config: cell_size must be positive, got %g", c.World.CellSize)
	}
	if c.Clock.CycleLength < 2 {
		return fmt.Errorf("config: cycle_length must be at least 2, got %d", c.Clock.CycleLength)
	}
	if c.Clock.ForageSteps < 1 || c.Clock.ForageSteps >= c.Clock.CycleLength {
		return fmt.Errorf("config: forage_steps must be in [1, cycle_length), got %d", c.Clock.ForageSteps)
	}
	if c.Clock.ReturnWindow < 0 || c.Clock.ReturnWindow > c.Clock.ForageSteps {
		return fmt.Errorf("config: return_window must be in [0, forage_steps], got %d", c.Clock.ReturnWindow)
	}
	if c.Patches.Count < 1 {
		return fmt.Errorf("config: patch count must be positive, got %d", c.Patches.Count)
	}
	if c.Patches.RadiusMin <= 0 || c.Patches.RadiusMax < c.Patches.RadiusMin {
		return fmt.Errorf("config: invalid patch radius range [%g, %g]", c.Patches.RadiusMin, c.Patches.RadiusMax)
	}
	if c.Patches.PreyMin <= 0 || c.Patches.PreyMax < c.Patches.PreyMin {
		return fmt.Errorf("config: invalid patch prey range [%g, %g]", c.Patches.PreyMin, c.Patches.PreyMax)
	}
	if c.Patches.CapacityMin < 1 || c.Patches.CapacityMax < c.Patches.CapacityMin {
		return fmt.Errorf("config: invalid patch capacity range [%d, %d]", c.Patches.CapacityMin, c.Patches.CapacityMax)
	}
	if c.Population.Initial < 1 {
		return fmt.Errorf("config: initial population must be positive, got %d", c.Population.Initial)
	}
	if c.Population.CompetitionMin < 0 || c.Population.CompetitionMax < c.Population.CompetitionMin {
		return fmt.Errorf("config: invalid competition range [%g, %g]", c.Population.CompetitionMin, c.Population.CompetitionMax)
	}
	if c.Population.MaxAge < 1 {
		return fmt.Errorf("config: max_age must be at least 1, got %d", c.Population.MaxAge)
	}
	if c.Population.MassMean <= 0 {
		return fmt.Errorf("config: mass_mean must be positive, got %g", c.Population.MassMean)
	}
	if f := c.Population.FemaleFraction; f < 0 || f > 1 {
		return fmt.Errorf("config: female_fraction must be in [0, 1], got %g", f)
	}
	if len(c.Roosts) == 0 {
		return fmt.Errorf("config: at least one roost site is required")
	}
	for i, r := range c.Roosts {
		if r.X < 0 || r.X >= c.World.Width || r.Y < 0 || r.Y >= c.World.Height {
			return fmt.Errorf("config: roost %d at (%g, %g) outside world bounds", i, r.X, r.Y)
		}
	}
	if c.Energy.MetabolicFactor <= 0 {
		return fmt.Errorf("config: metabolic_factor must be positive, got %g", c.Energy.MetabolicFactor)
	}
	if c.Energy.MaxCalories <= c.Energy.DeathThreshold {
		return fmt.Errorf("config: max_calories (%g) must exceed death_threshold (%g)", c.Energy.MaxCalories, c.Energy.DeathThreshold)
	}
	if c.Energy.GainMin < 0 || c.Energy.GainMax < c.Energy.GainMin {
		return fmt.Errorf("config: invalid foraging gain range [%g, %g]", c.Energy.GainMin, c.Energy.GainMax)
	}
	if c.Movement.StepSize <= 0 {
		return fmt.Errorf("config: step_size must be positive, got %g", c.Movement.StepSize)
	}
	if c.Movement.Tolerance <= 0 {
		return fmt.Errorf("config: tolerance must be positive, got %g", c.Movement.Tolerance)
	}
	if c.Movement.RepulsionRadius <= 0 {
		return fmt.Errorf("config: repulsion_radius must be positive, got %g", c.Movement.RepulsionRadius)
	}
	if c.Movement.SensoryRange <= 0 {
		return fmt.Errorf("config: sensory_range must be positive, got %g", c.Movement.SensoryRange)
	}
	if e := c.Movement.MinFlightEfficiency; e <= 0 || e > 1 {
		return fmt.Errorf("config: min_flight_efficiency must be in (0, 1], got %g", e)
	}
	if e := c.Movement.MinForageEfficiency; e <= 0 || e > 1 {
		return fmt.Errorf("config: min_foraging_efficiency must be in (0, 1], got %g", e)
	}
	if d := c.Memory.RoostDecay; d <= 0 || d > 1 {
		return fmt.Errorf("config: roost_decay must be in (0, 1], got %g", d)
	}
	if c.Sim.Steps < 1 {
		return fmt.Errorf("config: sim steps must be positive, got %d", c.Sim.Steps)
	}
	if c.Telemetry.StatsWindow < 1 {
		return fmt.Errorf("config: stats_window must be positive, got %d", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CellsX = int(c.World.Width / c.World.CellSize)
	c.Derived.CellsY = int(c.World.Height / c.World.CellSize)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
