package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/geodesic/internal/automation"
	"github.com/san-kum/geodesic/internal/camera"
	"github.com/san-kum/geodesic/internal/config"
	"github.com/san-kum/geodesic/internal/physics"
	"github.com/san-kum/geodesic/internal/storage"
	"github.com/san-kum/geodesic/internal/tracer"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	workers    int
	integrator string
	theme      string
	// image
	width  int
	height int
	// camera
	radius float64
	yaw    float64
	pitch  float64
	fov    float64
	// physics
	mass      float64
	stepSize  float64
	maxSteps  int
	diskInner float64
	diskOuter float64

	outPath string
	noSave  bool
	logger  *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "geodesic",
		Short: "light bending around a schwarzschild black hole",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
		RunE: runView,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".geodesic", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "camera preset")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&workers, "workers", 0, "render workers (0 = one per cpu)")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (rk4, euler)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.Float64Var(&mass, "mass", physics.DefaultMass, "black hole mass")
	pf.Float64Var(&stepSize, "step", physics.DefaultStepSize, "integration step")
	pf.IntVar(&maxSteps, "max-steps", physics.DefaultMaxSteps, "step cap per photon")
	pf.Float64Var(&diskInner, "disk-inner", physics.DefaultDiskInner, "disk inner radius")
	pf.Float64Var(&diskOuter, "disk-outer", physics.DefaultDiskOuter, "disk outer radius")
	addCameraFlags(rootCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one frame to png",
		RunE:  runRender,
	}
	addImageFlags(renderCmd)
	addCameraFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the frame to this png")
	renderCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "interactive terminal viewer",
		RunE:  runView,
	}
	addCameraFlags(viewCmd)

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "follow a single photon and plot its path",
		RunE:  runTrace,
	}
	addPhotonFlags(traceCmd)
	traceCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "trace the same photon with several integrators",
		RunE:  runCompare,
	}
	addPhotonFlags(compareCmd)

	shadowCmd := &cobra.Command{
		Use:   "shadow",
		Short: "locate the critical impact parameter",
		RunE:  runShadow,
	}
	shadowCmd.Flags().Float64Var(&shadowLo, "lo", 2, "impact parameter known to be captured")
	shadowCmd.Flags().Float64Var(&shadowHi, "hi", 10, "impact parameter known to escape")
	shadowCmd.Flags().Float64Var(&shadowTol, "tol", 1e-4, "bisection tolerance")
	shadowCmd.Flags().IntVar(&shadowSamples, "samples", 60, "scan samples for the plot")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "render and store a yaml list of shots",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addImageFlags(scenarioCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "render across a range of one physics parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addImageFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 4, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 12, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run (svg or json for traces, png for renders)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "svg", "svg, json or png")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (stdout when empty)")
	exportCmd.Flags().StringVar(&plotPlane, "plane", "xz", "projection plane for svg (xz, xy, zy)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure render throughput across worker counts",
		RunE:  runBench,
	}
	addImageFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list camera presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				c := config.Presets[name]
				fmt.Printf("  %-10s radius=%-5g yaw=%-5g pitch=%-5g fov=%g\n", name, c.Radius, c.Yaw, c.Pitch, c.FOV)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "show or write configuration",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "print the effective configuration",
			RunE:  showConfig,
		},
		&cobra.Command{
			Use:   "init [path]",
			Short: "write the default configuration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.Save(args[0], config.DefaultConfig()); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", args[0])
				return nil
			},
		},
	)

	rootCmd.AddCommand(renderCmd, viewCmd, traceCmd, compareCmd, shadowCmd, scenarioCmd, sweepCmd,
		listCmd, exportCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addImageFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")
}

func addCameraFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&radius, "radius", camera.DefaultRadius, "camera distance")
	f.Float64Var(&yaw, "yaw", camera.DefaultYaw, "camera yaw (rad)")
	f.Float64Var(&pitch, "pitch", camera.DefaultPitch, "camera pitch (rad)")
	f.Float64Var(&fov, "fov", camera.DefaultFOV, "vertical field of view (deg)")
}

// loadConfig layers defaults, preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if preset != "" {
			loaded.Camera = cfg.Camera
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("workers") {
		cfg.Workers = workers
	}
	if changed("integrator") {
		cfg.Integrator = integrator
	}
	if changed("theme") {
		cfg.Theme = theme
	}
	if changed("width") {
		cfg.Width = width
	}
	if changed("height") {
		cfg.Height = height
	}
	if changed("radius") {
		cfg.Camera.Radius = radius
	}
	if changed("yaw") {
		cfg.Camera.Yaw = yaw
	}
	if changed("pitch") {
		cfg.Camera.Pitch = pitch
	}
	if changed("fov") {
		cfg.Camera.FOV = fov
	}
	if changed("mass") {
		cfg.Physics.Mass = mass
	}
	if changed("step") {
		cfg.Physics.StepSize = stepSize
	}
	if changed("max-steps") {
		cfg.Physics.MaxSteps = maxSteps
	}
	if changed("disk-inner") {
		cfg.Physics.DiskInner = diskInner
	}
	if changed("disk-outer") {
		cfg.Physics.DiskOuter = diskOuter
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved", "width", cfg.Width, "height", cfg.Height,
		"integrator", cfg.Integrator, "workers", cfg.Workers, "camera", cfg.Camera)
	return cfg, nil
}

func buildTracer(cfg *config.Config) (*tracer.Tracer, error) {
	return automation.Build(cfg, nil)
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
