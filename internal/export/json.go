package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/geodesic/internal/dynamo"
)

type Sample struct {
	Step int        `json:"step"`
	Pos  [3]float64 `json:"pos"`
	Vel  [3]float64 `json:"vel"`
}

// TraceData is the JSON form of one traced photon.
type TraceData struct {
	Integrator string             `json:"integrator"`
	Outcome    string             `json:"outcome"`
	Steps      int                `json:"steps"`
	DiskRadius float64            `json:"disk_radius,omitempty"`
	Params     map[string]float64 `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
	Samples    []Sample           `json:"samples"`
}

// Samples zips recorded step indices with their photon states.
func Samples(steps []int, states []dynamo.Photon) []Sample {
	out := make([]Sample, 0, len(states))
	for i, p := range states {
		if i >= len(steps) {
			break
		}
		out = append(out, Sample{
			Step: steps[i],
			Pos:  [3]float64{p.Pos.X, p.Pos.Y, p.Pos.Z},
			Vel:  [3]float64{p.Vel.X, p.Vel.Y, p.Vel.Z},
		})
	}
	return out
}

func WriteJSON(w io.Writer, data TraceData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, data TraceData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
