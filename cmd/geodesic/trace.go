package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/export"
	"github.com/san-kum/geodesic/internal/integrators"
	"github.com/san-kum/geodesic/internal/metrics"
	"github.com/san-kum/geodesic/internal/optim"
	"github.com/san-kum/geodesic/internal/physics"
	"github.com/san-kum/geodesic/internal/storage"
	"github.com/san-kum/geodesic/internal/tracer"
	"github.com/san-kum/geodesic/internal/viz"
)

var (
	originX, originY, originZ float64
	dirX, dirY, dirZ          float64
	recordEvery               int
	plotPlane                 string

	shadowLo      float64
	shadowHi      float64
	shadowTol     float64
	shadowSamples int

	exportFormat string
)

func addPhotonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&originX, "x", 6, "origin x")
	f.Float64Var(&originY, "y", 1, "origin y")
	f.Float64Var(&originZ, "z", 18, "origin z")
	f.Float64Var(&dirX, "dx", 0, "direction x")
	f.Float64Var(&dirY, "dy", -0.08, "direction y")
	f.Float64Var(&dirZ, "dz", -1, "direction z")
	f.IntVar(&recordEvery, "every", 1, "record every n-th step")
	f.StringVar(&plotPlane, "plane", "xz", "projection plane (xz, xy, zy)")
}

func photonFromFlags() (dynamo.Photon, error) {
	return dynamo.NewPhoton(
		dynamo.Vec3{X: originX, Y: originY, Z: originZ},
		dynamo.Vec3{X: dirX, Y: dirY, Z: dirZ},
	)
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := buildTracer(cfg)
	if err != nil {
		return err
	}
	plane, err := viz.ParsePlane(plotPlane)
	if err != nil {
		return err
	}
	photon, err := photonFromFlags()
	if err != nil {
		return err
	}

	rec := tracer.NewRecorder(recordEvery)
	ms := metrics.Standard()
	start := time.Now()
	hit, traceErr := tr.Follow(photon, append(metrics.Observers(ms), rec)...)
	elapsed := time.Since(start)

	fmt.Printf("outcome: %s after %d steps (%v)\n", hit.Outcome, hit.Steps, elapsed)
	if hit.Outcome == tracer.DiskHit {
		fmt.Printf("disk radius: %.4f\n", hit.DiskRadius)
	}
	fmt.Println("\nmetrics:")
	values := metrics.Collect(ms)
	for _, m := range ms {
		fmt.Printf("  %s: %.6g\n", m.Name(), values[m.Name()])
	}

	if radii := rec.Radii(); len(radii) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(radii, asciigraph.Height(10), asciigraph.Width(70),
			asciigraph.Caption("radius vs step")))
	}
	if h := angularMomenta(rec.States); len(h) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(h, asciigraph.Height(6), asciigraph.Width(70),
			asciigraph.Caption("|h| vs step")))
	}

	fmt.Println()
	fmt.Print(plotPaths([][]dynamo.Photon{rec.States}, plane, tr.Params()))

	if !noSave {
		st, err := openStore()
		if err != nil {
			return err
		}
		runID, err := st.SaveTrace(storage.RunMetadata{
			Integrator: cfg.Integrator,
			Outcome:    hit.Outcome.String(),
			Params:     tr.Params().Map(),
			Metrics:    values,
		}, rec.Steps, rec.States)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return traceErr
}

func angularMomenta(states []dynamo.Photon) []float64 {
	out := make([]float64, len(states))
	for i, p := range states {
		out[i] = p.AngularMomentum().Length()
	}
	return out
}

// plotPaths draws photon paths on a braille canvas with the horizon and the
// disk for reference.
func plotPaths(paths [][]dynamo.Photon, plane viz.Plane, p physics.Params) string {
	c := viz.NewCanvas(60, 24)
	plot := viz.NewPlot(c, plane, p.EscapeRadius)
	plot.Circle(p.SchwarzschildRadius())
	if plane == viz.PlaneXZ {
		plot.Circle(p.DiskInner)
		plot.Circle(p.DiskOuter)
	} else {
		plot.Path([]dynamo.Vec3{{X: -p.DiskOuter, Z: -p.DiskOuter}, {X: p.DiskOuter, Z: p.DiskOuter}})
	}
	for _, path := range paths {
		pts := make([]dynamo.Vec3, len(path))
		for i, s := range path {
			pts[i] = s.Pos
		}
		plot.Path(pts)
	}
	return c.String()
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	photon, err := photonFromFlags()
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	bh := physics.NewSchwarzschild(cfg.PhysicsParams())
	fmt.Printf("comparing integrators (step=%g, max_steps=%d)\n\n", cfg.Physics.StepSize, cfg.Physics.MaxSteps)
	fmt.Printf("%-10s  %-9s  %8s  %12s  %10s  %10s  %10s\n", "integrator", "outcome", "steps", "h_drift", "min_r", "time_us", "state_gap")
	fmt.Println(strings.Repeat("-", 80))

	for _, name := range names {
		stepper, err := integrators.Get(name)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}
		ms := metrics.Standard()
		start := time.Now()
		hit, err := tracer.New(bh, stepper).Follow(photon, metrics.Observers(ms)...)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}
		v := metrics.Collect(ms)

		// replay the same path through the generic state stepper
		gap := "-"
		if d, err := integrators.Divergence(stepper, bh, photon, cfg.Physics.StepSize, hit.Steps); err != nil {
			logger.Warn("cross-check failed", "integrator", name, "err", err)
		} else {
			gap = fmt.Sprintf("%.1e", d)
		}
		fmt.Printf("%-10s  %-9s  %8d  %12.2e  %10.4f  %10d  %10s\n", name, hit.Outcome, hit.Steps,
			v["angular_momentum_drift"], v["min_radius"], elapsed.Microseconds(), gap)
	}
	return nil
}

func runShadow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := buildTracer(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := interruptContext()
	defer cancel()

	bs := optim.Linspace(shadowLo, shadowHi, shadowSamples)
	samples, err := optim.Scan(ctx, tr, bs, cfg.Workers)
	if err != nil {
		logger.Warn("scan incomplete", "err", err)
	}
	periapsis := make([]float64, len(samples))
	for i, s := range samples {
		periapsis[i] = s.MinRadius
		if math.IsInf(periapsis[i], 0) {
			periapsis[i] = 0
		}
	}
	if len(periapsis) > 1 {
		fmt.Println(asciigraph.Plot(periapsis, asciigraph.Height(10), asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("closest approach vs impact parameter %.2g..%.2g", shadowLo, shadowHi))))
		fmt.Println()
	}

	res, err := optim.CriticalImpact(ctx, tr, shadowLo, shadowHi, shadowTol)
	if err != nil {
		return err
	}
	want := optim.AnalyticCritical(cfg.Physics.Mass)
	fmt.Printf("critical impact parameter: %.6f (%d bisections)\n", res.Critical, res.Iterations)
	fmt.Printf("analytic 3√3·M:            %.6f (diff %+.2e)\n", want, res.Critical-want)
	fmt.Printf("shadow angular radius from r=%g: %.4f rad\n", cfg.Camera.Radius, math.Asin(math.Min(1, res.Critical/cfg.Camera.Radius)))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tNAME\tTIME\tINTEG\tDETAIL")

	for _, run := range runs {
		detail := run.Outcome
		if run.Kind == storage.KindRender {
			detail = fmt.Sprintf("%dx%d", run.Width, run.Height)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			detail,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if meta.Kind == storage.KindRender {
		if exportFormat != "png" {
			return errors.New("render runs export as png (--format png)")
		}
		img, err := st.LoadFrame(runID)
		if err != nil {
			return err
		}
		return png.Encode(out, img)
	}

	steps, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	params, err := physics.ParamsFromMap(meta.Params)
	if err != nil {
		return err
	}

	switch exportFormat {
	case "svg":
		plane, err := viz.ParsePlane(plotPlane)
		if err != nil {
			return err
		}
		pts := make([]dynamo.Vec3, len(states))
		for i, s := range states {
			pts[i] = s.Pos
		}
		_, err = io.WriteString(out, export.TrajectoryToSVG([][]dynamo.Vec3{pts}, plane, 800, params, "#7fd4ff"))
		return err
	case "json":
		last := 0
		if len(steps) > 0 {
			last = steps[len(steps)-1]
		}
		return export.WriteJSON(out, export.TraceData{
			Integrator: meta.Integrator,
			Outcome:    meta.Outcome,
			Steps:      last,
			Params:     meta.Params,
			Metrics:    meta.Metrics,
			Samples:    export.Samples(steps, states),
		})
	default:
		return fmt.Errorf("unknown format %q for trace runs (svg, json)", exportFormat)
	}
}
