package dynamo

// State is a flattened state vector.
type State []float64

// System is a first-order ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Field is the acceleration law a photon moves under.
type Field interface {
	Acceleration(pos, vel Vec3) Vec3
}

// PhotonStepper advances a photon by one fixed step in place.
type PhotonStepper interface {
	StepPhoton(f Field, p *Photon, dt float64)
}

// Observer is notified after every integration step of a traced photon.
type Observer interface {
	OnStep(step int, p Photon)
}

// Metric is an Observer that reduces a trajectory to one number.
type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
