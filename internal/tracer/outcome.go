package tracer

import "github.com/san-kum/geodesic/internal/dynamo"

// Outcome is the terminal classification of a traced photon.
type Outcome int

const (
	Flying Outcome = iota
	Captured
	Escaped
	DiskHit
	// Timeout means the step budget ran out before any other outcome.
	Timeout
	// Invalid means the photon state became NaN or Inf.
	Invalid
)

var outcomeNames = [...]string{
	Flying:   "flying",
	Captured: "captured",
	Escaped:  "escaped",
	DiskHit:  "disk",
	Timeout:  "timeout",
	Invalid:  "invalid",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Terminal reports whether o ends a trace.
func (o Outcome) Terminal() bool {
	return o != Flying
}

// Outcomes lists every terminal outcome in display order.
func Outcomes() []Outcome {
	return []Outcome{Captured, Escaped, DiskHit, Timeout, Invalid}
}

// HitRecord is produced once per photon when its trace terminates.
type HitRecord struct {
	Outcome Outcome
	// Steps is the number of integration steps taken.
	Steps    int
	Position dynamo.Vec3
	// DiskRadius is the in-plane radius of a DiskHit, zero otherwise.
	DiskRadius float64
}
