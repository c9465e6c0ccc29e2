package main

import (
	"fmt"
	"image/png"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/geodesic/internal/automation"
	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/render"
	"github.com/san-kum/geodesic/internal/storage"
	"github.com/san-kum/geodesic/internal/tracer"
	"github.com/san-kum/geodesic/internal/viz"
)

var (
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := buildTracer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("rendering %dx%d...\n", cfg.Width, cfg.Height)
	buf, stats, renderErr := automation.RenderConfig(tr, cfg, logger)
	img := render.ToImage(buf, cfg.Width, cfg.Height)

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
	}

	if !noSave {
		st, err := openStore()
		if err != nil {
			return err
		}
		runID, err := st.SaveRender(storage.RunMetadata{
			Integrator: cfg.Integrator,
			Width:      cfg.Width,
			Height:     cfg.Height,
			Workers:    stats.Workers,
			Params:     tr.Params().Map(),
			Camera:     viz.CameraParams(cfg.NewCamera()),
			Metrics:    stats.Metrics(),
		}, img)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printStats(stats)
	if renderErr != nil {
		return fmt.Errorf("%d pixels failed: %w", stats.Errors, renderErr)
	}
	return nil
}

func printStats(stats render.Stats) {
	fmt.Printf("completed in %v (%d workers, %.0f px/s)\n", stats.Elapsed.Round(time.Millisecond), stats.Workers, stats.PixelsPerSecond())
	fmt.Printf("steps: %.1f mean, %d max\n", stats.MeanSteps(), stats.MaxSteps)
	for _, o := range tracer.Outcomes() {
		fmt.Printf("  %-9s %6.2f%%\n", o, 100*stats.Fraction(o))
	}
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := buildTracer(cfg)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	v := viz.NewViewer(viz.Options{
		Tracer:  tr,
		Camera:  cfg.NewCamera(),
		Workers: cfg.Workers,
		Theme:   cfg.Theme,
		Store:   st,
		Logger:  logger,
	})
	return viz.Run(v)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	fmt.Printf("scenario %s: %d shots\n", sc.Name, len(sc.Shots))
	results, err := automation.RunScenario(ctx, sc, cfg, st, logger)
	for _, r := range results {
		fmt.Printf("  %-16s %s  %.0f px/s  disk %.1f%%\n", r.Name, r.RunID, r.Stats.PixelsPerSecond(), 100*r.Stats.Fraction(tracer.DiskHit))
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := interruptContext()
	defer cancel()

	sweep := &automation.ParameterSweep{
		ParamName: args[0],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}
	results, err := automation.RunSweep(ctx, sweep, cfg, logger)
	if err != nil && len(results) == 0 {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCAPTURED\tDISK\tESCAPED\tMEAN STEPS\n", args[0])
	disk := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.1f%%\t%.1f%%\t%.1f%%\t%.1f\n", r.ParamValue,
			100*r.Stats.Fraction(tracer.Captured),
			100*r.Stats.Fraction(tracer.DiskHit),
			100*r.Stats.Fraction(tracer.Escaped),
			r.Stats.MeanSteps())
		disk = append(disk, 100*r.Stats.Fraction(tracer.DiskHit))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(disk) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(disk, asciigraph.Height(8), asciigraph.Width(60),
			asciigraph.Caption("disk coverage % vs "+args[0])))
	}
	return err
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := buildTracer(cfg)
	if err != nil {
		return err
	}

	counts := benchWorkers(dynamo.DefaultWorkers())
	buf := make([]uint32, cfg.Width*cfg.Height)
	cam := cfg.NewCamera()

	fmt.Printf("benchmarking %dx%d (%s)\n\n", cfg.Width, cfg.Height, cfg.Integrator)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tTIME\tPIXELS/SEC\tSPEEDUP")

	throughput := make([]float64, 0, len(counts))
	var base time.Duration
	for _, n := range counts {
		r := render.New(tr, render.WithWorkers(n), render.WithLogger(logger))
		stats, _ := r.RenderFrame(buf, cfg.Width, cfg.Height, cam)
		if base == 0 {
			base = stats.Elapsed
		}
		speedup := float64(base) / float64(max(stats.Elapsed, 1))
		fmt.Fprintf(w, "%d\t%v\t%.0f\t%.2fx\n", n, stats.Elapsed.Round(time.Microsecond), stats.PixelsPerSecond(), speedup)
		throughput = append(throughput, stats.PixelsPerSecond()/1e3)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(throughput) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(throughput, asciigraph.Height(8), asciigraph.Width(40),
			asciigraph.Caption("kpixels/s by worker count")))
	}
	return nil
}

// benchWorkers returns powers of two up to n, plus n itself.
func benchWorkers(n int) []int {
	seen := map[int]bool{}
	out := []int{}
	for k := 1; k <= n; k *= 2 {
		seen[k] = true
		out = append(out, k)
	}
	if !seen[n] {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
