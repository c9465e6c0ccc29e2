package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/geodesic/internal/config"
	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/integrators"
	"github.com/san-kum/geodesic/internal/physics"
	"github.com/san-kum/geodesic/internal/render"
	"github.com/san-kum/geodesic/internal/storage"
	"github.com/san-kum/geodesic/internal/tracer"
	"github.com/san-kum/geodesic/internal/viz"
)

// Scenario is a scripted sequence of camera shots.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Shots       []Shot `yaml:"shots"`
}

// Shot overrides the base config for one frame. Preset is applied first,
// then Camera, then the remaining fields.
type Shot struct {
	Name       string               `yaml:"name"`
	Preset     string               `yaml:"preset"`
	Camera     *config.CameraConfig `yaml:"camera"`
	Width      int                  `yaml:"width"`
	Height     int                  `yaml:"height"`
	Integrator string               `yaml:"integrator"`
	Theme      string               `yaml:"theme"`
	Params     map[string]float64   `yaml:"params"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Shots) == 0 {
		return nil, fmt.Errorf("scenario %s has no shots", path)
	}
	return &scenario, nil
}

type ShotResult struct {
	Name  string
	RunID string
	Stats render.Stats
}

// Resolve applies the shot on top of a copy of base.
func (s Shot) Resolve(base *config.Config) (*config.Config, error) {
	cfg := *base
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q", s.Preset)
		}
		cfg.Camera = p.Camera
	}
	if s.Camera != nil {
		cfg.Camera = *s.Camera
	}
	if s.Width > 0 {
		cfg.Width = s.Width
	}
	if s.Height > 0 {
		cfg.Height = s.Height
	}
	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Theme != "" {
		cfg.Theme = s.Theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Build assembles the tracer for cfg with named physics overrides applied.
func Build(cfg *config.Config, params map[string]float64) (*tracer.Tracer, error) {
	p := cfg.PhysicsParams()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	bh := physics.NewSchwarzschild(p)
	if err := Configure(bh, params); err != nil {
		return nil, err
	}
	stepper, err := integrators.Get(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return tracer.New(bh, stepper), nil
}

// Configure applies params through SetParam. A value rejected only because
// of a value still waiting to be applied (disk_inner above the old
// disk_outer, say) is retried after the others, so key order never matters.
// On error c may hold some of the values; callers discard it.
func Configure(c dynamo.Configurable, params map[string]float64) error {
	pending := make([]string, 0, len(params))
	for name := range params {
		pending = append(pending, name)
	}
	sort.Strings(pending)

	for len(pending) > 0 {
		var retry []string
		var lastErr error
		for _, name := range pending {
			if err := c.SetParam(name, params[name]); err != nil {
				retry = append(retry, name)
				lastErr = fmt.Errorf("%s=%g: %w", name, params[name], err)
			}
		}
		if len(retry) == len(pending) {
			return lastErr
		}
		pending = retry
	}
	return nil
}

// RenderConfig draws one frame for cfg into a fresh buffer.
func RenderConfig(tr *tracer.Tracer, cfg *config.Config, logger *slog.Logger) ([]uint32, render.Stats, error) {
	r := render.New(tr,
		render.WithWorkers(cfg.Workers),
		render.WithPalette(viz.GetTheme(cfg.Theme).Palette),
		render.WithLogger(logger))
	buf := make([]uint32, cfg.Width*cfg.Height)
	st, err := r.RenderFrame(buf, cfg.Width, cfg.Height, cfg.NewCamera())
	return buf, st, err
}

// RunScenario renders every shot in order and stores each frame. Pixel
// errors are logged by the renderer and do not stop the run.
func RunScenario(ctx context.Context, sc *Scenario, base *config.Config, st *storage.Store, logger *slog.Logger) ([]ShotResult, error) {
	results := make([]ShotResult, 0, len(sc.Shots))

	for i, shot := range sc.Shots {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		name := shot.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", sc.Name, i+1)
		}
		logger.Info("rendering shot", "shot", name, "index", i+1, "total", len(sc.Shots))

		cfg, err := shot.Resolve(base)
		if err != nil {
			return results, fmt.Errorf("shot %d: %w", i+1, err)
		}
		tr, err := Build(cfg, shot.Params)
		if err != nil {
			return results, fmt.Errorf("shot %d: %w", i+1, err)
		}

		buf, stats, _ := RenderConfig(tr, cfg, logger)

		runID, err := st.SaveRender(storage.RunMetadata{
			Name:       name,
			Integrator: cfg.Integrator,
			Width:      cfg.Width,
			Height:     cfg.Height,
			Workers:    stats.Workers,
			Params:     tr.Params().Map(),
			Camera:     viz.CameraParams(cfg.NewCamera()),
			Metrics:    stats.Metrics(),
		}, render.ToImage(buf, cfg.Width, cfg.Height))
		if err != nil {
			return results, fmt.Errorf("shot %d save: %w", i+1, err)
		}

		results = append(results, ShotResult{Name: name, RunID: runID, Stats: stats})
	}

	return results, nil
}

// ParameterSweep renders one frame per value of a physics parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Stats      render.Stats
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	if _, ok := physics.NewSchwarzschild(base.PhysicsParams()).GetParams()[sweep.ParamName]; !ok {
		return nil, fmt.Errorf("unknown parameter %q: %w", sweep.ParamName, dynamo.ErrParameterBounds)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		val := sweep.ParamMin + float64(i)*paramStep

		tr, err := Build(base, map[string]float64{sweep.ParamName: val})
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, val, err)
		}
		_, stats, _ := RenderConfig(tr, base, logger)
		results = append(results, SweepResult{ParamValue: val, Stats: stats})

		logger.Debug("sweep step", "param", sweep.ParamName, "value", val, "step", i+1, "of", sweep.NumSteps)
	}
	return results, nil
}
