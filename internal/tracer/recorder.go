package tracer

import "github.com/san-kum/geodesic/internal/dynamo"

// Recorder is an Observer that keeps every Every-th photon state.
type Recorder struct {
	Every  int
	Steps  []int
	States []dynamo.Photon
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Every: every}
}

func (r *Recorder) OnStep(step int, p dynamo.Photon) {
	if step%r.Every != 0 {
		return
	}
	r.Steps = append(r.Steps, step)
	r.States = append(r.States, p)
}

// Radii returns |pos| for every recorded state.
func (r *Recorder) Radii() []float64 {
	out := make([]float64, len(r.States))
	for i, p := range r.States {
		out[i] = p.Pos.Length()
	}
	return out
}
