package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/circlesim/internal/config"
	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

type Store struct {
	baseDir string
	logger  *log.Logger
}

func New(baseDir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Scenario  string             `json:"scenario,omitempty"`
	Config    *config.Config     `json:"config"`
	Radii     []float64          `json:"radii"`
	Ticks     int                `json:"ticks"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a finished run. meta.Name and meta.Config must be set; the
// remaining fields are filled from result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.Name == "" {
		meta.Name = "run"
	}
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, now.UnixMilli())
	meta.Timestamp = now
	meta.Ticks = result.StepsTaken
	meta.Metrics = result.Metrics
	meta.Radii = nil
	if len(result.States) > 0 {
		for _, b := range result.States[0] {
			meta.Radii = append(meta.Radii, b.Radius)
		}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := s.writeRun(runDir, data, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	s.logger.Info("run saved", "id", meta.ID, "frames", len(result.States), "dir", runDir)
	return meta.ID, nil
}

func (s *Store) writeRun(runDir string, metadata []byte, result *sim.Result) error {
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), append(metadata, '\n'), 0644); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return err
	}
	if err := writeStates(csvFile, result.States, result.Times); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

func writeStates(out io.Writer, states [][]dynamo.Body, times []float64) error {
	w := csv.NewWriter(out)

	if len(states) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"tick", "time"}
	for i := range states[0] {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, bodies := range states {
		row := []string{strconv.Itoa(i), formatFloat(times[i])}
		for _, b := range bodies {
			row = append(row,
				formatFloat(b.Pos.X), formatFloat(b.Pos.Y),
				formatFloat(b.Vel.X), formatFloat(b.Vel.Y))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first.
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
			s.logger.Debug("skipping run dir", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadStates reads a run's trajectory back into bodies. Radius and mass
// come from the run metadata.
func (s *Store) LoadStates(runID string) ([][]dynamo.Body, []float64, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]dynamo.Body{}, []float64{}, nil
	}

	density := dynamo.DefaultParams().MassDensity
	if meta.Config != nil {
		density = meta.Config.MassDensity
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]dynamo.Body, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s row %d: %w", runID, i, err)
		}

		vals := make([]float64, 0, len(record)-2)
		for _, field := range record[2:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s row %d: %w", runID, i, err)
			}
			vals = append(vals, v)
		}

		bodies := make([]dynamo.Body, 0, len(vals)/4)
		for j := 0; j+3 < len(vals); j += 4 {
			b := dynamo.Body{
				ID:  dynamo.BodyID(j / 4),
				Pos: dynamo.Vec2{X: vals[j], Y: vals[j+1]},
				Vel: dynamo.Vec2{X: vals[j+2], Y: vals[j+3]},
			}
			if k := j / 4; k < len(meta.Radii) {
				b.Radius = meta.Radii[k]
				b.Mass = b.Radius * density
			}
			bodies = append(bodies, b)
		}

		times = append(times, t)
		states = append(states, bodies)
	}

	return states, times, nil
}
