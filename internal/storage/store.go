// Package storage persists simulation runs as a metadata.json and a
// trajectory.csv per run directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/elvijs/linear-systems/internal/linsys"
)

const (
	metadataFile   = "metadata.json"
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

type RunMetadata struct {
	ID        string             `json:"id"`
	System    string             `json:"system"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Steps     int                `json:"steps"`
	Order     int                `json:"order"`
	OutputDim int                `json:"output_dim"`
	InputDim  int                `json:"input_dim"`
	InputName string             `json:"input_name"`
	Delta     float64            `json:"delta,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewMetadata fills the shape fields of a run from its trajectory.
func NewMetadata(system, kind string, tr *linsys.Trajectory, metrics map[string]float64) RunMetadata {
	meta := RunMetadata{
		System:    system,
		Kind:      kind,
		Timestamp: time.Now(),
		Steps:     tr.Len(),
		InputName: tr.InputName,
		Metrics:   metrics,
	}
	if tr.Len() > 0 {
		meta.Order = tr.States[0].Len()
		meta.InputDim = tr.Inputs[0].Len()
		if tr.HasOutputs() {
			meta.OutputDim = tr.Outputs[0].Len()
		}
	}
	return meta
}

// Save writes a new run and returns its id.
func (s *Store) Save(meta RunMetadata, tr *linsys.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.System, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	meta.ID = runID

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, tr); err != nil {
		return "", err
	}
	return runID, csvFile.Sync()
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
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads the trajectory of a stored run.
func (s *Store) LoadTrajectory(runID string) (*linsys.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}
