package metrics

import "github.com/san-kum/geodesic/internal/dynamo"

// Standard returns a fresh set of the per-photon metrics.
func Standard() []dynamo.Metric {
	return []dynamo.Metric{
		NewAngularMomentumDrift(),
		NewMinRadius(),
		NewPlaneCrossings(),
		NewPathLength(),
	}
}

func Observers(ms []dynamo.Metric) []dynamo.Observer {
	obs := make([]dynamo.Observer, len(ms))
	for i, m := range ms {
		obs[i] = m
	}
	return obs
}

func Collect(ms []dynamo.Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
