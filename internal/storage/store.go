// Package storage persists simulation runs as per-run directories:
// metadata.json, final positions, the inner-product matrix, and the
// alignment time series, all as plain CSV for downstream tooling.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/spheresim/internal/engine"
	"github.com/san-kum/spheresim/internal/manifold"
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Particles  int                `json:"particles"`
	Dimensions int                `json:"dimensions"`
	Steps      int                `json:"steps"`
	ZoneWidth  float64            `json:"zone_width"`
	Topology   string             `json:"topology"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Seed       int64              `json:"seed"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run directory and returns its ID. The alignment series may
// be nil when no alignment metric was attached.
func (s *Store) Save(cfg engine.Config, result *engine.Result, gram [][]float64, alignment []float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Topology, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Particles:  cfg.Particles,
		Dimensions: cfg.Dimensions,
		Steps:      result.Steps,
		ZoneWidth:  cfg.ZoneWidth,
		Topology:   cfg.Topology,
		Integrator: cfg.Integrator,
		Dt:         cfg.Dt,
		Seed:       cfg.Seed,
		Metrics:    result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if len(result.Trajectory) > 0 {
		final := result.Trajectory[len(result.Trajectory)-1]
		if err := writePositionsCSV(filepath.Join(runDir, "positions.csv"), final); err != nil {
			return "", err
		}
	}

	if gram != nil {
		if err := writeMatrixCSV(filepath.Join(runDir, "gram.csv"), gram); err != nil {
			return "", err
		}
	}

	if alignment != nil {
		if err := writeSeriesCSV(filepath.Join(runDir, "alignment.csv"), alignment); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPositions reads the final positions of a run.
func (s *Store) LoadPositions(runID string) (manifold.Field, error) {
	rows, err := readCSV(filepath.Join(s.baseDir, runID, "positions.csv"))
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return manifold.Field{}, nil
	}

	dim := len(rows[0]) - 1
	field := manifold.NewField(len(rows)-1, dim)
	for i, row := range rows[1:] {
		for k := 0; k < dim; k++ {
			field[i][k], err = strconv.ParseFloat(row[k+1], 64)
			if err != nil {
				return nil, err
			}
		}
	}
	return field, nil
}

// LoadGram reads the stored inner-product matrix of a run.
func (s *Store) LoadGram(runID string) ([][]float64, error) {
	rows, err := readCSV(filepath.Join(s.baseDir, runID, "gram.csv"))
	if err != nil {
		return nil, err
	}

	m := make([][]float64, len(rows))
	for i, row := range rows {
		m[i] = make([]float64, len(row))
		for j, cell := range row {
			m[i][j], err = strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// LoadAlignment reads the alignment time series of a run.
func (s *Store) LoadAlignment(runID string) ([]float64, error) {
	rows, err := readCSV(filepath.Join(s.baseDir, runID, "alignment.csv"))
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []float64{}, nil
	}

	series := make([]float64, 0, len(rows)-1)
	for _, row := range rows[1:] {
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, err
		}
		series = append(series, v)
	}
	return series, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePositionsCSV(path string, positions manifold.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if len(positions) == 0 {
		return nil
	}

	header := []string{"particle"}
	for k := range positions[0] {
		header = append(header, fmt.Sprintf("x%d", k))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, p := range positions {
		row := []string{strconv.Itoa(i)}
		for _, v := range p {
			row = append(row, strconv.FormatFloat(v, 'f', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func writeMatrixCSV(path string, m [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	for _, row := range m {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strconv.FormatFloat(v, 'f', 9, 64)
		}
		if err := w.Write(cells); err != nil {
			return err
		}
	}

	return nil
}

func writeSeriesCSV(path string, series []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"step", "alignment"}); err != nil {
		return err
	}
	for i, v := range series {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(v, 'f', 9, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
