package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.World.Width != 1000 || cfg.World.Height != 1000 {
		t.Errorf("unexpected default world size %gx%g", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Clock.CycleLength != 144 {
		t.Errorf("unexpected default cycle_length %d", cfg.Clock.CycleLength)
	}
	if cfg.Clock.ForageSteps >= cfg.Clock.CycleLength {
		t.Error("default forage_steps must be shorter than the cycle")
	}
	if len(cfg.Roosts) == 0 {
		t.Error("defaults must include at least one roost")
	}

	// Derived cell counts follow width / cell_size
	wantX := int(cfg.World.Width / cfg.World.CellSize)
	if cfg.Derived.CellsX != wantX {
		t.Errorf("derived cells_x %d, want %d", cfg.Derived.CellsX, wantX)
	}
}

func TestLoad_UserOverridesMergeOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	user := []byte("world:\n  width: 500\n  height: 500\npopulation:\n  initial: 42\n")
	if err := os.WriteFile(path, user, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading user config: %v", err)
	}
	if cfg.World.Width != 500 {
		t.Errorf("override lost: width %g", cfg.World.Width)
	}
	if cfg.Population.Initial != 42 {
		t.Errorf("override lost: initial %d", cfg.Population.Initial)
	}
	// Untouched sections keep their defaults
	if cfg.Clock.CycleLength != 144 {
		t.Errorf("default clobbered: cycle_length %d", cfg.Clock.CycleLength)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate_RejectsOutOfRangeValues(t *testing.T) {
	base, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero world width", func(c *Config) { c.World.Width = 0 }},
		{"zero cell size", func(c *Config) { c.World.CellSize = 0 }},
		{"forage steps fill the cycle", func(c *Config) { c.Clock.ForageSteps = c.Clock.CycleLength }},
		{"return window exceeds forage steps", func(c *Config) { c.Clock.ReturnWindow = c.Clock.ForageSteps + 1 }},
		{"no patches", func(c *Config) { c.Patches.Count = 0 }},
		{"inverted radius range", func(c *Config) { c.Patches.RadiusMin = 50; c.Patches.RadiusMax = 10 }},
		{"zero prey", func(c *Config) { c.Patches.PreyMin = 0 }},
		{"zero capacity", func(c *Config) { c.Patches.CapacityMin = 0 }},
		{"empty population", func(c *Config) { c.Population.Initial = 0 }},
		{"negative competition", func(c *Config) { c.Population.CompetitionMin = -1 }},
		{"female fraction above one", func(c *Config) { c.Population.FemaleFraction = 1.5 }},
		{"no roosts", func(c *Config) { c.Roosts = nil }},
		{"roost outside world", func(c *Config) { c.Roosts = []RoostConfig{{X: -1, Y: 10}} }},
		{"max below death threshold", func(c *Config) { c.Energy.DeathThreshold = c.Energy.MaxCalories }},
		{"inverted gain range", func(c *Config) { c.Energy.GainMin = 10; c.Energy.GainMax = 1 }},
		{"zero step size", func(c *Config) { c.Movement.StepSize = 0 }},
		{"zero tolerance", func(c *Config) { c.Movement.Tolerance = 0 }},
		{"efficiency floor above one", func(c *Config) { c.Movement.MinFlightEfficiency = 1.5 }},
		{"roost decay above one", func(c *Config) { c.Memory.RoostDecay = 1.01 }},
		{"zero roost decay", func(c *Config) { c.Memory.RoostDecay = 0 }},
		{"zero stats window", func(c *Config) { c.Telemetry.StatsWindow = 0 }},
	}

	for _, tc := range cases {
		c := *base
		c.Roosts = append([]RoostConfig(nil), base.Roosts...)
		tc.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	// The unmutated base still validates
	if err := base.Validate(); err != nil {
		t.Errorf("base config failed validation: %v", err)
	}
}

func TestWriteYAML_RoundTrips(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Population.Initial = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if back.Population.Initial != 7 {
		t.Errorf("round trip lost population.initial, got %d", back.Population.Initial)
	}
	if back.World.Width != cfg.World.Width {
		t.Errorf("round trip changed world width: %g != %g", back.World.Width, cfg.World.Width)
	}
}

func TestCfg_PanicsBeforeInit(t *testing.T) {
	old := global
	global = nil
	defer func() {
		global = old
		if recover() == nil {
			t.Error("expected panic from Cfg before Init")
		}
	}()
	Cfg()
}
