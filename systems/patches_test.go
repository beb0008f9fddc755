package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/roost/config"
)

// initTestConfig reloads embedded defaults and shrinks the patch setup to
// something small enough to assert against exactly.
func initTestConfig(t *testing.T) *config.Config {
	t.Helper()
	config.MustInit("")
	cfg := config.Cfg()
	cfg.Patches.Count = 3
	cfg.Patches.RadiusMin = 10
	cfg.Patches.RadiusMax = 20
	cfg.Patches.PreyMin = 1
	cfg.Patches.PreyMax = 2
	cfg.Patches.CapacityMin = 2
	cfg.Patches.CapacityMax = 4
	return cfg
}

func newTestRegistry(t *testing.T, seed int64) (*Registry, *rand.Rand) {
	t.Helper()
	initTestConfig(t)
	f := NewField(40, 40, 5.0) // 200x200 world
	reg := NewRegistry(f)
	rng := rand.New(rand.NewSource(seed))
	reg.Regenerate(rng)
	return reg, rng
}

// ---------- Regeneration ----------

func TestRegenerate_CellSumsMatchPatchTotals(t *testing.T) {
	reg, _ := newTestRegistry(t, 1)
	f := reg.Field

	sums := make([]float64, len(reg.Patches)+1)
	for idx, id := range f.PatchID {
		sums[id] += f.Prey[idx]
	}

	for i := range reg.Patches {
		p := &reg.Patches[i]
		if math.Abs(sums[p.ID]-p.TotalPrey) > 1e-9 {
			t.Errorf("patch %d: cell sum %f != total_prey %f", p.ID, sums[p.ID], p.TotalPrey)
		}
		if p.TotalPrey <= 0 {
			t.Errorf("patch %d: expected positive total_prey, got %f", p.ID, p.TotalPrey)
		}
	}

	// Unassigned cells hold no prey
	if sums[0] != 0 {
		t.Errorf("unassigned cells hold %f prey", sums[0])
	}
}

func TestRegenerate_MemberCellsWithinRadius(t *testing.T) {
	reg, _ := newTestRegistry(t, 2)
	f := reg.Field

	for idx, id := range f.PatchID {
		if id == 0 {
			continue
		}
		p := reg.Get(id)
		center := f.CellCenter(idx)
		if d := center.DistanceTo(p.Center); d > p.Radius+1e-9 {
			t.Errorf("cell %d assigned to patch %d at distance %f > radius %f", idx, id, d, p.Radius)
		}
	}
}

func TestRegenerate_SampledRangesRespected(t *testing.T) {
	reg, _ := newTestRegistry(t, 3)
	cfg := config.Cfg().Patches

	for i := range reg.Patches {
		p := &reg.Patches[i]
		if p.Radius < cfg.RadiusMin || p.Radius > cfg.RadiusMax {
			t.Errorf("patch %d radius %f outside [%f, %f]", p.ID, p.Radius, cfg.RadiusMin, cfg.RadiusMax)
		}
		if p.Capacity < cfg.CapacityMin || p.Capacity > cfg.CapacityMax {
			t.Errorf("patch %d capacity %d outside [%d, %d]", p.ID, p.Capacity, cfg.CapacityMin, cfg.CapacityMax)
		}
	}
}

func TestRegenerate_ReplacesPreviousGeneration(t *testing.T) {
	reg, rng := newTestRegistry(t, 4)
	f := reg.Field

	// Drain a cell, then regenerate: everything is rebuilt from scratch
	member := -1
	for idx, id := range f.PatchID {
		if id != 0 {
			member = idx
			break
		}
	}
	if member < 0 {
		t.Fatal("no member cell found")
	}
	reg.Consume(member, 1e9)

	reg.Regenerate(rng)

	sums := make([]float64, len(reg.Patches)+1)
	for idx, id := range f.PatchID {
		sums[id] += f.Prey[idx]
	}
	for i := range reg.Patches {
		p := &reg.Patches[i]
		if math.Abs(sums[p.ID]-p.TotalPrey) > 1e-9 {
			t.Errorf("after regen, patch %d cell sum %f != total %f", p.ID, sums[p.ID], p.TotalPrey)
		}
		if p.Occupancy != 0 {
			t.Errorf("after regen, patch %d occupancy %d != 0", p.ID, p.Occupancy)
		}
	}
}

// ---------- Consumption ----------

func TestConsume_DecrementsCellAndPatchInLockstep(t *testing.T) {
	reg, _ := newTestRegistry(t, 5)
	f := reg.Field

	member := -1
	for idx, id := range f.PatchID {
		if id != 0 {
			member = idx
			break
		}
	}
	if member < 0 {
		t.Fatal("no member cell found")
	}
	p := reg.Get(f.PatchID[member])

	cellBefore := f.Prey[member]
	totalBefore := p.TotalPrey

	take := cellBefore / 2
	removed := reg.Consume(member, take)

	if math.Abs(removed-take) > 1e-12 {
		t.Errorf("removed %f != requested %f", removed, take)
	}
	if math.Abs((cellBefore-f.Prey[member])-removed) > 1e-12 {
		t.Errorf("cell delta %f != removed %f", cellBefore-f.Prey[member], removed)
	}
	if math.Abs((totalBefore-p.TotalPrey)-removed) > 1e-12 {
		t.Errorf("patch delta %f != removed %f", totalBefore-p.TotalPrey, removed)
	}
}

func TestConsume_ClampsAtAvailable(t *testing.T) {
	reg, _ := newTestRegistry(t, 6)
	f := reg.Field

	member := -1
	for idx, id := range f.PatchID {
		if id != 0 {
			member = idx
			break
		}
	}
	if member < 0 {
		t.Fatal("no member cell found")
	}
	avail := f.Prey[member]

	removed := reg.Consume(member, avail*10)
	if math.Abs(removed-avail) > 1e-12 {
		t.Errorf("removed %f != available %f", removed, avail)
	}
	if f.Prey[member] != 0 {
		t.Errorf("expected cell drained to 0, got %f", f.Prey[member])
	}

	// Draining again removes nothing
	if again := reg.Consume(member, 1); again != 0 {
		t.Errorf("expected 0 from empty cell, got %f", again)
	}
}

func TestConsume_InvalidIndexIsNoOp(t *testing.T) {
	reg, _ := newTestRegistry(t, 7)
	if got := reg.Consume(-1, 1); got != 0 {
		t.Errorf("expected 0 for negative index, got %f", got)
	}
	if got := reg.Consume(len(reg.Field.Prey), 1); got != 0 {
		t.Errorf("expected 0 for out-of-range index, got %f", got)
	}
}

// ---------- Lookup and occupancy ----------

func TestPatchAt_OutsideFieldIsUnassigned(t *testing.T) {
	reg, _ := newTestRegistry(t, 8)

	if id := reg.PatchAt(-5, 10); id != 0 {
		t.Errorf("expected unassigned for x<0, got %d", id)
	}
	if id := reg.PatchAt(10, 1e6); id != 0 {
		t.Errorf("expected unassigned far outside field, got %d", id)
	}
}

func TestPatchAt_LastPatchOwnsItsCenter(t *testing.T) {
	reg, _ := newTestRegistry(t, 9)

	// The last patch stamped wins every overlap, so its center cell is its own.
	last := &reg.Patches[len(reg.Patches)-1]
	if id := reg.PatchAt(last.Center.X, last.Center.Y); id != last.ID {
		t.Errorf("expected patch %d at its own center, got %d", last.ID, id)
	}
}

func TestOccupancy_ReportAndReset(t *testing.T) {
	reg, _ := newTestRegistry(t, 10)
	last := &reg.Patches[len(reg.Patches)-1]

	id := reg.ReportOccupant(last.Center.X, last.Center.Y)
	if id != last.ID {
		t.Fatalf("expected occupant reported to patch %d, got %d", last.ID, id)
	}
	reg.ReportOccupant(last.Center.X, last.Center.Y)
	if last.Occupancy != 2 {
		t.Errorf("expected occupancy 2, got %d", last.Occupancy)
	}

	// Off-patch positions report 0 and count nowhere
	if id := reg.ReportOccupant(-1, -1); id != 0 {
		t.Errorf("expected 0 for off-field occupant, got %d", id)
	}

	reg.ResetOccupancy()
	for i := range reg.Patches {
		if reg.Patches[i].Occupancy != 0 {
			t.Errorf("patch %d occupancy not reset", reg.Patches[i].ID)
		}
	}
}
