package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/geodesic/internal/dynamo"
)

const (
	KindRender = "render"
	KindTrace  = "trace"

	metadataFile   = "metadata.json"
	frameFile      = "frame.png"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Kind       string             `json:"kind"`
	Name       string             `json:"name,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	Width      int                `json:"width,omitempty"`
	Height     int                `json:"height,omitempty"`
	Workers    int                `json:"workers,omitempty"`
	Outcome    string             `json:"outcome,omitempty"`
	Params     map[string]float64 `json:"params"`
	Camera     map[string]float64 `json:"camera,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// SaveRender stores a frame and its metadata, returning the new run ID.
func (s *Store) SaveRender(meta RunMetadata, frame image.Image) (string, error) {
	meta.Kind = KindRender
	err := s.save(&meta, frameFile, func(w io.Writer) error {
		if err := png.Encode(w, frame); err != nil {
			return fmt.Errorf("encode frame: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

// SaveTrace stores a recorded photon path. steps[i] is the step index of states[i].
func (s *Store) SaveTrace(meta RunMetadata, steps []int, states []dynamo.Photon) (string, error) {
	if len(steps) != len(states) {
		return "", fmt.Errorf("%d steps for %d states: %w", len(steps), len(states), dynamo.ErrDimensionMismatch)
	}
	meta.Kind = KindTrace
	err := s.save(&meta, trajectoryFile, func(out io.Writer) error {
		w := csv.NewWriter(out)
		if err := w.Write([]string{"step", "x", "y", "z", "vx", "vy", "vz"}); err != nil {
			return err
		}
		for i, p := range states {
			row := []string{strconv.Itoa(steps[i])}
			for _, val := range p.State() {
				row = append(row, strconv.FormatFloat(val, 'g', 17, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

// save creates the run directory and writes its payload file. A run whose
// payload cannot be written is removed again.
func (s *Store) save(meta *RunMetadata, name string, write func(io.Writer) error) (err error) {
	runDir, err := s.create(meta)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	f, err := os.Create(filepath.Join(runDir, name))
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Store) create(meta *RunMetadata) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	now := time.Now()
	meta.Timestamp = now

	base := fmt.Sprintf("%s_%d", meta.Kind, now.Unix())
	runID := base
	for i := 1; ; i++ {
		err := os.Mkdir(s.Dir(runID), 0755)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
	meta.ID = runID

	runDir := s.Dir(runID)
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runDir, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrame(runID string) (image.Image, error) {
	f, err := os.Open(filepath.Join(s.Dir(runID), frameFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func (s *Store) LoadTrajectory(runID string) ([]int, []dynamo.Photon, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), trajectoryFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []int{}, []dynamo.Photon{}, nil
	}

	steps := make([]int, 0, len(records)-1)
	states := make([]dynamo.Photon, 0, len(records)-1)
	for line, record := range records[1:] {
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", trajectoryFile, line+2, err)
		}
		x := make(dynamo.State, 0, dynamo.PhotonStateDim)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s line %d: %w", trajectoryFile, line+2, err)
			}
			x = append(x, val)
		}
		p, err := dynamo.PhotonFromState(x)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", trajectoryFile, line+2, err)
		}
		steps = append(steps, step)
		states = append(states, p)
	}
	return steps, states, nil
}
