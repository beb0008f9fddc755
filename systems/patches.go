package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/roost/components"
	"github.com/pthm-cable/roost/config"
)

// Patch is one circular foraging cluster. Patches are rebuilt from scratch
// at every day boundary; ids are the stable slot indices 1..count.
type Patch struct {
	ID        int
	Center    components.Position
	Radius    float64
	Capacity  int     // max simultaneous occupants
	TotalPrey float64 // aggregate remaining prey across member cells
	Occupancy int     // living occupants, recomputed every step
}

// Registry holds the current generation of patches and the field they are
// stamped onto.
type Registry struct {
	Field   *Field
	Patches []Patch
}

// NewRegistry creates a registry over the given field with capacity for the
// configured patch count. Patches are empty until the first Regenerate.
func NewRegistry(field *Field) *Registry {
	return &Registry{
		Field:   field,
		Patches: make([]Patch, config.Cfg().Patches.Count),
	}
}

// Regenerate samples a fresh generation of patches and stamps them onto the
// field. Centers are uniform over the domain; each cell within a patch
// radius receives a prey draw from the configured range, accumulated into
// the patch total. Overlapping patches resolve membership last-writer-wins;
// a stolen cell's prey is moved from the old patch's total to the new one
// so cell sums and patch totals stay in lockstep. Work is proportional to
// the sum of patch bounding boxes, not the field area.
func (r *Registry) Regenerate(rng *rand.Rand) {
	p := config.Cfg().Patches
	f := r.Field
	f.Clear()

	for i := range r.Patches {
		id := i + 1
		center := components.Position{
			X: rng.Float64() * f.Width(),
			Y: rng.Float64() * f.Height(),
		}
		radius := p.RadiusMin + rng.Float64()*(p.RadiusMax-p.RadiusMin)
		capacity := p.CapacityMin + rng.Intn(p.CapacityMax-p.CapacityMin+1)

		r.Patches[i] = Patch{
			ID:       id,
			Center:   center,
			Radius:   radius,
			Capacity: capacity,
		}
		r.stamp(rng, &r.Patches[i], p.PreyMin, p.PreyMax)
	}
}

// stamp assigns prey and membership to every cell within the patch radius.
func (r *Registry) stamp(rng *rand.Rand, patch *Patch, preyMin, preyMax float64) {
	f := r.Field

	// Bounding box in cell coordinates, clamped to the field
	x0 := int(math.Floor((patch.Center.X - patch.Radius) / f.CellSize))
	x1 := int(math.Ceil((patch.Center.X + patch.Radius) / f.CellSize))
	y0 := int(math.Floor((patch.Center.Y - patch.Radius) / f.CellSize))
	y1 := int(math.Ceil((patch.Center.Y + patch.Radius) / f.CellSize))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > f.CellsX-1 {
		x1 = f.CellsX - 1
	}
	if y1 > f.CellsY-1 {
		y1 = f.CellsY - 1
	}

	rsq := patch.Radius * patch.Radius
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			idx := cy*f.CellsX + cx
			center := f.CellCenter(idx)
			dx := center.X - patch.Center.X
			dy := center.Y - patch.Center.Y
			if dx*dx+dy*dy > rsq {
				continue
			}

			// Last-writer-wins on overlap: move the cell's prey out of the
			// previous owner's total before restamping.
			if prev := f.PatchID[idx]; prev != 0 {
				r.Patches[prev-1].TotalPrey -= f.Prey[idx]
			}

			prey := preyMin + rng.Float64()*(preyMax-preyMin)
			f.Prey[idx] = prey
			f.PatchID[idx] = patch.ID
			patch.TotalPrey += prey
		}
	}
}

// Consume removes up to amount prey from the cell at the given flat index,
// decrementing the owning patch's total in lockstep. Returns the amount
// actually removed, clamped to what the cell holds.
func (r *Registry) Consume(cellIdx int, amount float64) float64 {
	f := r.Field
	if cellIdx < 0 || cellIdx >= len(f.Prey) || amount <= 0 {
		return 0
	}
	avail := f.Prey[cellIdx]
	take := amount
	if take > avail {
		take = avail
	}
	if take <= 0 {
		return 0
	}
	f.Prey[cellIdx] -= take
	if id := f.PatchID[cellIdx]; id != 0 {
		p := &r.Patches[id-1]
		p.TotalPrey -= take
		if p.TotalPrey < 0 {
			p.TotalPrey = 0
		}
	}
	return take
}

// ResetOccupancy zeroes every patch's occupancy counter. Called once per
// step before agents report their locations.
func (r *Registry) ResetOccupancy() {
	for i := range r.Patches {
		r.Patches[i].Occupancy = 0
	}
}

// PatchAt returns the patch id for the cell containing the position, or 0
// for unassigned cells and positions outside the field.
func (r *Registry) PatchAt(x, y float64) int {
	idx, ok := r.Field.CellIndex(x, y)
	if !ok {
		return 0
	}
	return r.Field.PatchID[idx]
}

// ReportOccupant increments the occupancy of the patch at the given
// position and returns its id (0 if the position is on no patch).
func (r *Registry) ReportOccupant(x, y float64) int {
	id := r.PatchAt(x, y)
	if id != 0 {
		r.Patches[id-1].Occupancy++
	}
	return id
}

// Get returns the patch with the given id, or nil for id 0 or out of range.
func (r *Registry) Get(id int) *Patch {
	if id < 1 || id > len(r.Patches) {
		return nil
	}
	return &r.Patches[id-1]
}
