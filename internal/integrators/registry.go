package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/geodesic/internal/dynamo"
)

// Stepper is implemented by every integrator in this package.
type Stepper interface {
	dynamo.Integrator
	dynamo.PhotonStepper
}

var registry = map[string]func() Stepper{
	"euler": func() Stepper { return NewEuler() },
	"rk4":   func() Stepper { return NewRK4() },
}

// Get returns a fresh integrator by name.
func Get(name string) (Stepper, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
