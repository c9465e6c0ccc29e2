package render

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/tracer"
)

// Camera supplies a world ray per normalized screen coordinate. It is only
// read during a frame and is shared by every worker.
type Camera interface {
	Ray(u, v, aspect float64) (origin, dir dynamo.Vec3)
}

// Renderer turns a camera's ray field into a packed pixel buffer.
type Renderer struct {
	tracer  *tracer.Tracer
	workers int
	palette Palette
	logger  *slog.Logger
}

type Option func(*Renderer)

// WithWorkers fixes the number of row bands. n < 1 selects
// dynamo.DefaultWorkers.
func WithWorkers(n int) Option {
	return func(r *Renderer) { r.workers = n }
}

func WithPalette(p Palette) Option {
	return func(r *Renderer) { r.palette = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

func New(tr *tracer.Tracer, opts ...Option) *Renderer {
	r := &Renderer{
		tracer:  tr,
		palette: DefaultPalette,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = dynamo.DefaultWorkers()
	}
	return r
}

func (r *Renderer) Workers() int     { return r.workers }
func (r *Renderer) Palette() Palette { return r.palette }

// RenderFrame fills buf (row-major, index y*width+x) and returns once every
// band has finished. Each worker owns a disjoint range of rows, so the
// buffer needs no locking. A photon that fails is painted with the palette's
// error color and never aborts the frame; once every pixel is written the
// first failure in row-major order is returned, tagged with its pixel.
func (r *Renderer) RenderFrame(buf []uint32, width, height int, cam Camera) (Stats, error) {
	if width <= 0 || height <= 0 {
		return Stats{}, fmt.Errorf("frame %dx%d: %w", width, height, dynamo.ErrParameterBounds)
	}
	if len(buf) != width*height {
		return Stats{}, fmt.Errorf("buffer has %d pixels, frame needs %d: %w", len(buf), width*height, dynamo.ErrBufferSize)
	}

	start := time.Now()
	bands := dynamo.Bands(height, r.workers)
	local := make([]Stats, len(bands))

	dynamo.ParallelBands(height, r.workers, func(idx, y0, y1 int) {
		r.renderBand(buf, width, height, y0, y1, cam, &local[idx])
	})

	stats := Stats{Width: width, Height: height, Workers: len(bands)}
	for i := range local {
		stats.merge(&local[i])
	}
	stats.Elapsed = time.Since(start)

	if stats.Errors > 0 {
		r.logger.Warn("frame rendered with failed photons",
			"errors", stats.Errors, "first", stats.FirstError)
	}
	r.logger.Debug("frame rendered",
		"width", width, "height", height, "workers", stats.Workers,
		"elapsed", stats.Elapsed, "steps", stats.Steps)

	return stats, stats.FirstError
}

func (r *Renderer) renderBand(buf []uint32, width, height, y0, y1 int, cam Camera, st *Stats) {
	w := float64(width)
	h := float64(height)
	aspect := w / h

	for y := y0; y < y1; y++ {
		v := 1 - 2*(float64(y)+0.5)/h
		row := buf[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			u := 2*(float64(x)+0.5)/w - 1
			row[x] = r.shade(cam, x, y, u, v, aspect, st)
		}
	}
}

func (r *Renderer) shade(cam Camera, x, y int, u, v, aspect float64, st *Stats) uint32 {
	origin, dir := cam.Ray(u, v, aspect)

	p, err := dynamo.NewPhoton(origin, dir)
	if err != nil {
		st.record(tracer.HitRecord{Outcome: tracer.Invalid}, fmt.Errorf("pixel (%d,%d): %w", x, y, err))
		return r.palette.Error
	}

	hit, err := r.tracer.Trace(p)
	if err != nil {
		st.record(hit, fmt.Errorf("pixel (%d,%d): %w", x, y, err))
		return r.palette.Error
	}
	st.record(hit, nil)
	return r.palette.Color(hit.Outcome)
}

// ToImage copies a packed buffer into an image. Packed channels are not
// premultiplied, so the target is NRGBA.
func ToImage(buf []uint32, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a, r, g, b := Unpack(buf[y*width+x])
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = a
		}
	}
	return img
}
