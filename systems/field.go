// Package systems provides the simulation systems: the resource field and
// patch registry, spatial indexing, patch selection, movement, and energy
// bookkeeping.
package systems

import "github.com/pthm-cable/roost/components"

// Field is the discretized prey field. Each cell holds a non-negative prey
// quantity and the id of the patch it belongs to (0 = unassigned). The field
// is cleared and restamped by the registry at every day boundary.
type Field struct {
	CellsX, CellsY int
	CellSize       float64

	Prey    []float64
	PatchID []int
}

// NewField creates an empty field of cellsX by cellsY cells.
func NewField(cellsX, cellsY int, cellSize float64) *Field {
	return &Field{
		CellsX:   cellsX,
		CellsY:   cellsY,
		CellSize: cellSize,
		Prey:     make([]float64, cellsX*cellsY),
		PatchID:  make([]int, cellsX*cellsY),
	}
}

// Width returns the field width in world units.
func (f *Field) Width() float64 { return float64(f.CellsX) * f.CellSize }

// Height returns the field height in world units.
func (f *Field) Height() float64 { return float64(f.CellsY) * f.CellSize }

// CellIndex returns the flat index of the cell containing the position.
// Positions outside the field bounds return ok=false; this is the sentinel
// for "no prey access", never an error.
func (f *Field) CellIndex(x, y float64) (int, bool) {
	if x < 0 || y < 0 || x >= f.Width() || y >= f.Height() {
		return 0, false
	}
	cx := int(x / f.CellSize)
	cy := int(y / f.CellSize)
	return cy*f.CellsX + cx, true
}

// CellCenter returns the world position of a cell's center.
func (f *Field) CellCenter(idx int) components.Position {
	cx := idx % f.CellsX
	cy := idx / f.CellsX
	return components.Position{
		X: (float64(cx) + 0.5) * f.CellSize,
		Y: (float64(cy) + 0.5) * f.CellSize,
	}
}

// PreyAt returns the prey quantity on the cell containing the position,
// or 0 for positions outside the field.
func (f *Field) PreyAt(x, y float64) float64 {
	idx, ok := f.CellIndex(x, y)
	if !ok {
		return 0
	}
	return f.Prey[idx]
}

// Clear zeroes all cell prey and membership.
func (f *Field) Clear() {
	for i := range f.Prey {
		f.Prey[i] = 0
		f.PatchID[i] = 0
	}
}

// TotalPrey returns the sum of all cell prey quantities.
func (f *Field) TotalPrey() float64 {
	var sum float64
	for _, p := range f.Prey {
		sum += p
	}
	return sum
}
