package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/geodesic/internal/dynamo"
	"github.com/san-kum/geodesic/internal/physics"
	"github.com/san-kum/geodesic/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, "#fff") != "" {
		t.Error("nil canvas should export nothing")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2, "#00ff00")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("unexpected svg size")
	}
	if !strings.Contains(svg, `fill="#00ff00"`) {
		t.Error("missing fill color")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	p := physics.DefaultParams()
	paths := [][]dynamo.Vec3{
		{{X: 8, Z: 10}, {X: 8, Z: 0}, {X: 7, Z: -10}},
		{{X: 1}},
	}

	svg := TrajectoryToSVG(paths, viz.PlaneXZ, 400, p, "#7fd4ff")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("malformed svg document")
	}
	if n := strings.Count(svg, "<path"); n != 1 {
		t.Errorf("expected 1 path (single points skipped), got %d", n)
	}
	if strings.Count(svg, "<circle") != 2 {
		t.Error("expected horizon and disk circles in the xz view")
	}

	side := TrajectoryToSVG(paths, viz.PlaneXY, 400, p, "#7fd4ff")
	if !strings.Contains(side, "<line") {
		t.Error("side view should draw the disk edge-on")
	}
}

func TestTrajectoryToSVGFitsPath(t *testing.T) {
	p := physics.DefaultParams()
	far := [][]dynamo.Vec3{{{X: -40}, {X: 40}}}
	svg := TrajectoryToSVG(far, viz.PlaneXZ, 100, p, "#fff")
	// extent 42 maps x = 40 inside the 100px frame
	if !strings.Contains(svg, "L97.6,50.0") {
		t.Errorf("path not scaled to fit: %s", svg)
	}
}

func TestExportJSON(t *testing.T) {
	states := []dynamo.Photon{
		{Pos: dynamo.Vec3{X: 1, Y: 2, Z: 3}, Vel: dynamo.Vec3{Z: -1}},
		{Pos: dynamo.Vec3{X: 1, Y: 2, Z: 2.95}, Vel: dynamo.Vec3{Z: -1}},
	}
	data := TraceData{
		Integrator: "rk4",
		Outcome:    "escaped",
		Steps:      1,
		Params:     physics.DefaultParams().Map(),
		Metrics:    map[string]float64{"min_radius": 3.5},
		Samples:    Samples([]int{0, 1}, states),
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatal(err)
	}
	var back TraceData
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Samples) != 2 || back.Samples[1].Pos[2] != 2.95 {
		t.Errorf("samples lost: %+v", back.Samples)
	}

	path := filepath.Join(t.TempDir(), "trace.json")
	if err := ExportJSON(path, data); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestSamplesTruncates(t *testing.T) {
	got := Samples([]int{0}, []dynamo.Photon{{}, {}})
	if len(got) != 1 {
		t.Errorf("expected 1 sample, got %d", len(got))
	}
}
