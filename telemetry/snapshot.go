package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is the per-step state surface read by external visualizers and
// exporters: agent positions and states, patch geometry, and optionally the
// raw prey field for heatmaps. Nothing here feeds back into the core.
type Snapshot struct {
	Version   int `json:"version"`
	Step      int `json:"step"`
	Day       int `json:"day"`
	TimeOfDay int `json:"time_of_day"`

	Agents  []AgentState `json:"agents"`
	Patches []PatchState `json:"patches"`

	Field *FieldState `json:"field,omitempty"`
}

// AgentState holds one agent's externally visible state.
type AgentState struct {
	ID    uint32  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Alive bool    `json:"alive"`
	State string  `json:"state"`

	Sex      string  `json:"sex"`
	Age      int     `json:"age"`
	MassG    float64 `json:"mass_g"`
	Strategy string  `json:"strategy"`

	Calories    float64 `json:"calories"`
	MaxCalories float64 `json:"max_calories"`
	Patch       int     `json:"patch"`
}

// PatchState holds one patch's externally visible geometry and state.
type PatchState struct {
	ID        int     `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Capacity  int     `json:"capacity"`
	TotalPrey float64 `json:"total_prey"`
	Occupancy int     `json:"occupancy"`
}

// FieldState holds the raw prey grid for heatmap rendering.
type FieldState struct {
	CellsX   int       `json:"cells_x"`
	CellsY   int       `json:"cells_y"`
	CellSize float64   `json:"cell_size"`
	Prey     []float64 `json:"prey"`
}

// SaveSnapshot writes a snapshot to disk and returns the file path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Step))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
