package dynamo

import "fmt"

// Photon is the mutable simulation state of one light ray.
type Photon struct {
	Pos Vec3
	Vel Vec3
}

// NewPhoton builds a photon at origin travelling along dir. The direction is
// expected to be unit length but that is not enforced.
func NewPhoton(origin, dir Vec3) (Photon, error) {
	p := Photon{Pos: origin, Vel: dir}
	if !p.Valid() {
		return Photon{}, fmt.Errorf("photon origin=%v dir=%v: %w", origin, dir, ErrInvalidState)
	}
	return p, nil
}

// Valid reports whether position and velocity are finite.
func (p Photon) Valid() bool {
	return p.Pos.IsFinite() && p.Vel.IsFinite()
}

// AngularMomentum returns h = pos × vel.
func (p Photon) AngularMomentum() Vec3 {
	return p.Pos.Cross(p.Vel)
}

// State flattens the photon into [x, y, z, vx, vy, vz].
func (p Photon) State() State {
	return State{p.Pos.X, p.Pos.Y, p.Pos.Z, p.Vel.X, p.Vel.Y, p.Vel.Z}
}

// PhotonFromState is the inverse of [Photon.State].
func PhotonFromState(s State) (Photon, error) {
	if len(s) != PhotonStateDim {
		return Photon{}, fmt.Errorf("photon state has %d components: %w", len(s), ErrDimensionMismatch)
	}
	return Photon{
		Pos: Vec3{s[0], s[1], s[2]},
		Vel: Vec3{s[3], s[4], s[5]},
	}, nil
}

// PhotonStateDim is the length of a flattened photon state.
const PhotonStateDim = 6
