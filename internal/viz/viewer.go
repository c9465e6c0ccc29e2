package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/geodesic/internal/camera"
	"github.com/san-kum/geodesic/internal/render"
	"github.com/san-kum/geodesic/internal/storage"
	"github.com/san-kum/geodesic/internal/tracer"
)

const (
	panelWidth     = 38
	frameHistory   = 120
	orbitNudge     = 40.0 // drag-equivalent pixels per key press
	defaultGIFPath = "geodesic.gif"
)

type frameMsg struct {
	buf           []uint32
	width, height int
	cam           camera.Orbit
	stats         render.Stats
	err           error
}

type Options struct {
	Tracer  *tracer.Tracer
	Camera  *camera.Orbit
	Workers int
	Theme   string
	// Store receives snapshots taken with "p". Snapshots are disabled when nil.
	Store   *storage.Store
	Logger  *slog.Logger
	GIFPath string
}

// Viewer is an interactive terminal view of the black hole. It owns its
// camera; each change schedules a frame render off the UI goroutine against a
// copy of the camera.
type Viewer struct {
	tracer  *tracer.Tracer
	cam     *camera.Orbit
	home    camera.Orbit
	workers int
	theme   int
	store   *storage.Store
	logger  *slog.Logger
	gifPath string

	cols, rows int

	frame      []uint32
	frameW     int
	frameH     int
	frameCam   camera.Orbit
	stats      render.Stats
	err        error
	rendering  bool
	dirty      bool
	frameTimes []float64
	recording  bool
	frames     []*image.Paletted
	showHelp   bool
	status     string
}

func NewViewer(opts Options) *Viewer {
	cam := opts.Camera
	if cam == nil {
		cam = camera.NewDefault()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gifPath := opts.GIFPath
	if gifPath == "" {
		gifPath = defaultGIFPath
	}
	return &Viewer{
		tracer:     opts.Tracer,
		cam:        cam,
		home:       *cam,
		workers:    opts.Workers,
		theme:      themeIndex(opts.Theme),
		store:      opts.Store,
		logger:     logger,
		gifPath:    gifPath,
		cols:       80 - panelWidth,
		rows:       24,
		frameTimes: make([]float64, 0, frameHistory),
	}
}

func (v *Viewer) Theme() Theme { return Themes[v.theme] }

func (v *Viewer) Init() tea.Cmd {
	return v.requestFrame()
}

func (v *Viewer) pixelSize() (int, int) {
	return max(v.cols, 1), max(v.rows*2, 2)
}

// requestFrame starts a render unless one is in flight, in which case the
// next completed frame triggers another.
func (v *Viewer) requestFrame() tea.Cmd {
	if v.rendering {
		v.dirty = true
		return nil
	}
	v.rendering, v.dirty = true, false

	snap := *v.cam
	w, h := v.pixelSize()
	r := render.New(v.tracer,
		render.WithWorkers(v.workers),
		render.WithPalette(v.Theme().Palette),
		render.WithLogger(v.logger))

	return func() tea.Msg {
		buf := make([]uint32, w*h)
		st, err := r.RenderFrame(buf, w, h, &snap)
		return frameMsg{buf: buf, width: w, height: h, cam: snap, stats: st, err: err}
	}
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.cols = max(msg.Width-panelWidth, 8)
		v.rows = max(msg.Height-1, 4)
		return v, v.requestFrame()
	case frameMsg:
		v.rendering = false
		v.frame, v.frameW, v.frameH = msg.buf, msg.width, msg.height
		v.frameCam = msg.cam
		v.stats, v.err = msg.stats, msg.err
		v.frameTimes = append(v.frameTimes, float64(msg.stats.Elapsed)/float64(time.Millisecond))
		if len(v.frameTimes) > frameHistory {
			v.frameTimes = v.frameTimes[len(v.frameTimes)-frameHistory:]
		}
		if v.recording {
			v.captureFrame()
		}
		if v.dirty {
			return v, v.requestFrame()
		}
		return v, nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if v.recording {
			v.stopRecording()
		}
		return v, tea.Quit
	case "left", "h":
		v.cam.Orbit(orbitNudge, 0)
	case "right", "l":
		v.cam.Orbit(-orbitNudge, 0)
	case "up", "k":
		v.cam.Orbit(0, orbitNudge)
	case "down", "j":
		v.cam.Orbit(0, -orbitNudge)
	case "+", "=":
		v.cam.Zoom(1)
	case "-", "_":
		v.cam.Zoom(-1)
	case "w":
		v.cam.Pan(1, 0, 0)
	case "s":
		v.cam.Pan(-1, 0, 0)
	case "a":
		v.cam.Pan(0, -1, 0)
	case "d":
		v.cam.Pan(0, 1, 0)
	case "r":
		v.cam.Pan(0, 0, 1)
	case "f":
		v.cam.Pan(0, 0, -1)
	case "0":
		*v.cam = v.home
	case "t":
		v.theme = (v.theme + 1) % len(Themes)
		v.status = "theme " + v.Theme().Name
	case "g":
		if v.recording {
			v.stopRecording()
		} else {
			v.recording, v.frames = true, nil
			v.status = "recording"
		}
		return v, nil
	case "p":
		v.snapshot()
		return v, nil
	case "?":
		v.showHelp = !v.showHelp
		return v, nil
	default:
		return v, nil
	}
	return v, v.requestFrame()
}

// snapshot stores the frame on screen with the camera it was rendered from.
func (v *Viewer) snapshot() {
	if v.store == nil || v.frame == nil {
		v.status = "snapshots disabled"
		return
	}
	id, err := v.store.SaveRender(storage.RunMetadata{
		Name:    "viewer",
		Width:   v.frameW,
		Height:  v.frameH,
		Workers: v.stats.Workers,
		Params:  v.tracer.Params().Map(),
		Camera:  CameraParams(&v.frameCam),
		Metrics: v.stats.Metrics(),
	}, render.ToImage(v.frame, v.frameW, v.frameH))
	if err != nil {
		v.logger.Error("snapshot failed", "err", err)
		v.status = "snapshot failed"
		return
	}
	v.status = "saved " + id
}

// CameraParams flattens a camera into the map stored with runs.
func CameraParams(c *camera.Orbit) map[string]float64 {
	return map[string]float64{
		"radius":   c.Radius,
		"yaw":      c.Yaw,
		"pitch":    c.Pitch,
		"center_x": c.Center.X,
		"center_y": c.Center.Y,
		"center_z": c.Center.Z,
	}
}

func (v *Viewer) captureFrame() {
	p := v.Theme().Palette
	pal := color.Palette{render.NRGBA(p.Sky), render.NRGBA(p.Hole), render.NRGBA(p.Disk), render.NRGBA(p.Error)}
	img := image.NewPaletted(image.Rect(0, 0, v.frameW, v.frameH), pal)
	for y := 0; y < v.frameH; y++ {
		for x := 0; x < v.frameW; x++ {
			img.Set(x, y, render.NRGBA(v.frame[y*v.frameW+x]))
		}
	}
	v.frames = append(v.frames, img)
}

func (v *Viewer) stopRecording() {
	v.recording = false
	if len(v.frames) == 0 {
		v.status = "nothing recorded"
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range v.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}
	v.frames = nil

	f, err := os.Create(v.gifPath)
	if err != nil {
		v.logger.Error("gif create failed", "path", v.gifPath, "err", err)
		v.status = "gif failed"
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		v.logger.Error("gif encode failed", "path", v.gifPath, "err", err)
		v.status = "gif failed"
		return
	}
	v.status = fmt.Sprintf("wrote %s (%d frames)", v.gifPath, len(anim.Image))
}

func (v *Viewer) View() string {
	var canvas string
	if v.frame == nil {
		canvas = SubtleStyle.Render("rendering...")
	} else {
		canvas = HalfBlocks(v.frame, v.frameW, v.frameH)
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvas, panelStyle.Render(v.panel()))
	if v.showHelp {
		return helpText + "\n" + main
	}
	return main
}

func (v *Viewer) panel() string {
	th := v.Theme()
	header := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)

	var s strings.Builder
	s.WriteString(header.Render("GEODESIC") + "\n")
	switch {
	case v.recording:
		s.WriteString(StatusRecording.Render("● REC") + "\n\n")
	case v.rendering:
		s.WriteString(SubtleStyle.Render("rendering") + "\n\n")
	default:
		s.WriteString(SubtleStyle.Render("idle") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("radius", fmt.Sprintf("%.2f", v.cam.Radius))
	row("yaw", fmt.Sprintf("%.2f", v.cam.Yaw))
	row("pitch", fmt.Sprintf("%.2f", v.cam.Pitch))
	row("frame", fmt.Sprintf("%dx%d", v.frameW, v.frameH))
	row("workers", fmt.Sprintf("%d", v.stats.Workers))
	row("steps", fmt.Sprintf("%.0f avg", v.stats.MeanSteps()))
	row("theme", th.Name)
	s.WriteString("\n")

	for _, o := range []tracer.Outcome{tracer.Captured, tracer.DiskHit, tracer.Escaped, tracer.Timeout} {
		c := lipgloss.Color(render.Hex(th.Palette.Color(o)))
		s.WriteString(labelStyle.Render(o.String()) + Bar(v.stats.Fraction(o), 16, c) + "\n")
	}
	if v.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).
			Render(fmt.Sprintf("%d bad pixels", v.stats.Errors)) + "\n")
	}

	s.WriteString("\n" + labelStyle.Render("ms/frame") + SparklineChart(v.frameTimes, 20) + "\n")
	if v.status != "" {
		s.WriteString(SubtleStyle.Render(v.status) + "\n")
	}
	s.WriteString(helpStyle.Render("hjkl:orbit +/-:zoom wasd rf:pan\nt:theme g:gif p:save 0:home q:quit"))
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  ←→ / h l   orbit around the hole   ║
║  ↑↓ / k j   raise / lower camera     ║
║  + -        zoom in / out            ║
║  w s a d    pan the orbit center     ║
║  r f        pan up / down            ║
║  0          back to the start view   ║
║  t          cycle themes             ║
║  g          toggle GIF recording     ║
║  p          save snapshot            ║
║  ?          toggle this help         ║
║  q          quit                     ║
╚══════════════════════════════════════╝`

// Run starts the viewer full screen and blocks until it quits.
func Run(v *Viewer) error {
	_, err := tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}
