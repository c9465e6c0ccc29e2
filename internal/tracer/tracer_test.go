package tracer

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/integrators"
	"github.com/san-kum/geodesic/internal/physics"
)

type nanField struct{}

func (nanField) Acceleration(_, _ dynamo.Vec3) dynamo.Vec3 {
	return dynamo.Vec3{X: math.NaN()}
}

type stepCounter struct{ calls []int }

func (c *stepCounter) OnStep(step int, _ dynamo.Photon) { c.calls = append(c.calls, step) }

var _ = Describe("Tracer", func() {
	var tr *Tracer

	BeforeEach(func() {
		tr = New(physics.NewSchwarzschild(physics.DefaultParams()), integrators.NewRK4())
	})

	photon := func(pos, vel dynamo.Vec3) dynamo.Photon {
		p, err := dynamo.NewPhoton(pos, vel)
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	DescribeTable("classifies reference trajectories",
		func(pos, vel dynamo.Vec3, want Outcome) {
			hit, err := tr.Trace(photon(pos, vel))
			Expect(err).NotTo(HaveOccurred())
			Expect(hit.Outcome).To(Equal(want))
		},
		Entry("radial inward is captured", dynamo.Vec3{X: 10}, dynamo.Vec3{X: -1}, Captured),
		Entry("radial outward escapes", dynamo.Vec3{X: 10}, dynamo.Vec3{X: 1}, Escaped),
		Entry("shallow descent hits the disk",
			dynamo.Vec3{X: 8, Y: 0.5}, dynamo.Vec3{Y: -0.1, Z: -1}.Normalize(), DiskHit),
		Entry("steep descent through the hole's shadow is captured",
			dynamo.Vec3{Y: 10}, dynamo.Vec3{Y: -1}, Captured),
	)

	It("reports the disk radius at the post-step position", func() {
		hit, err := tr.Trace(photon(dynamo.Vec3{X: 8, Y: 0.5}, dynamo.Vec3{Y: -0.1, Z: -1}.Normalize()))
		Expect(err).NotTo(HaveOccurred())
		Expect(hit.Outcome).To(Equal(DiskHit))
		Expect(hit.DiskRadius).To(BeNumerically(">=", physics.DefaultDiskInner))
		Expect(hit.DiskRadius).To(BeNumerically("<=", physics.DefaultDiskOuter))
		Expect(hit.DiskRadius).To(BeNumerically("~", math.Hypot(hit.Position.X, hit.Position.Z), 1e-12))
		Expect(hit.Position.Y).To(BeNumerically("<=", 0))
	})

	It("captures before stepping a photon already inside the horizon", func() {
		hit, err := tr.Trace(photon(dynamo.Vec3{X: 1}, dynamo.Vec3{Z: 1}))
		Expect(err).NotTo(HaveOccurred())
		Expect(hit.Outcome).To(Equal(Captured))
		Expect(hit.Steps).To(BeZero())
	})

	It("treats the photon at the origin as captured rather than stepping it", func() {
		hit, err := tr.Trace(dynamo.Photon{Vel: dynamo.Vec3{X: 1}})
		Expect(err).NotTo(HaveOccurred())
		Expect(hit.Outcome).To(Equal(Captured))
	})

	It("escapes immediately when starting beyond the escape radius", func() {
		hit, err := tr.Trace(photon(dynamo.Vec3{X: 25}, dynamo.Vec3{X: -1}))
		Expect(err).NotTo(HaveOccurred())
		Expect(hit.Outcome).To(Equal(Escaped))
		Expect(hit.Steps).To(BeZero())
	})

	It("terminates a near-horizon photon with a finite classification", func() {
		hit, err := tr.Trace(photon(dynamo.Vec3{X: 2.5}, dynamo.Vec3{Z: 1}))
		Expect(err).NotTo(HaveOccurred())
		Expect(hit.Outcome).To(BeElementOf(Captured, Escaped, DiskHit, Timeout))
		Expect(hit.Position.IsFinite()).To(BeTrue())
	})

	It("times out when the step budget is exhausted", func() {
		p := physics.DefaultParams()
		p.MaxSteps = 10
		tr = New(physics.NewSchwarzschild(p), nil)

		hit, err := tr.Trace(photon(dynamo.Vec3{X: 10}, dynamo.Vec3{Z: 1}))
		Expect(err).NotTo(HaveOccurred())
		Expect(hit.Outcome).To(Equal(Timeout))
		Expect(hit.Steps).To(Equal(10))
	})

	It("is deterministic", func() {
		p := photon(dynamo.Vec3{X: 6, Y: 1.5, Z: 9}, dynamo.Vec3{X: -0.2, Y: -0.15, Z: -1}.Normalize())
		first, _ := tr.Trace(p)
		second, _ := tr.Trace(p)
		Expect(second).To(Equal(first))
	})

	It("does not mutate the caller's photon", func() {
		p := photon(dynamo.Vec3{X: 10}, dynamo.Vec3{Z: -1})
		orig := p
		_, _ = tr.Trace(p)
		Expect(p).To(Equal(orig))
	})

	Context("with non-finite state", func() {
		It("rejects a non-finite starting photon", func() {
			hit, err := tr.Trace(dynamo.Photon{Pos: dynamo.Vec3{X: math.Inf(1)}, Vel: dynamo.Vec3{X: 1}})
			Expect(hit.Outcome).To(Equal(Invalid))
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
		})

		It("fails fast when the field produces NaN", func() {
			tr = &Tracer{field: nanField{}, stepper: integrators.NewRK4(), params: physics.DefaultParams()}

			hit, err := tr.Trace(photon(dynamo.Vec3{X: 10}, dynamo.Vec3{Z: 1}))
			Expect(hit.Outcome).To(Equal(Invalid))
			Expect(hit.Steps).To(Equal(1))
			Expect(err).To(MatchError(dynamo.ErrInvalidState))

			var simErr *dynamo.SimulationError
			Expect(err).To(BeAssignableToTypeOf(simErr))
		})
	})

	Context("with observers", func() {
		It("sees the initial state and every step", func() {
			c := &stepCounter{}
			hit, err := tr.Follow(photon(dynamo.Vec3{X: 10}, dynamo.Vec3{X: 1}), c)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.calls).To(HaveLen(hit.Steps + 1))
			Expect(c.calls[0]).To(Equal(0))
			Expect(c.calls[len(c.calls)-1]).To(Equal(hit.Steps))
		})

		It("records a decimated path", func() {
			rec := NewRecorder(10)
			hit, err := tr.Follow(photon(dynamo.Vec3{X: 10}, dynamo.Vec3{X: -1}), rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(hit.Outcome).To(Equal(Captured))
			Expect(rec.States).NotTo(BeEmpty())
			Expect(rec.Steps[0]).To(Equal(0))

			radii := rec.Radii()
			for i := 1; i < len(radii); i++ {
				Expect(radii[i]).To(BeNumerically("<", radii[i-1]))
			}
		})

		It("classifies the same way as Trace", func() {
			p := photon(dynamo.Vec3{X: 8, Y: 0.5}, dynamo.Vec3{Y: -0.1, Z: -1}.Normalize())
			plain, _ := tr.Trace(p)
			followed, _ := tr.Follow(p, NewRecorder(1))
			Expect(followed).To(Equal(plain))
		})
	})
})

var _ = Describe("crossesPlane", func() {
	DescribeTable("detects equatorial crossings",
		func(prev, next float64, want bool) {
			Expect(crossesPlane(prev, next)).To(Equal(want))
		},
		Entry("above to below", 0.1, -0.1, true),
		Entry("below to above", -0.1, 0.1, true),
		Entry("stays above", 0.2, 0.1, false),
		Entry("stays below", -0.2, -0.1, false),
		Entry("lands on plane", 0.1, 0.0, true),
		Entry("leaves plane", 0.0, -0.1, true),
		Entry("stays in plane", 0.0, 0.0, false),
	)
})

var _ = Describe("Outcome", func() {
	It("has stable names", func() {
		Expect(Captured.String()).To(Equal("captured"))
		Expect(DiskHit.String()).To(Equal("disk"))
		Expect(Outcome(42).String()).To(Equal("unknown"))
		Expect(Flying.Terminal()).To(BeFalse())
		Expect(Outcomes()).To(HaveLen(5))
	})
})
