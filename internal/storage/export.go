package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/elvijs/linear-systems/internal/linsys"
)

type ExportData struct {
	RunMetadata
	States  [][]float64 `json:"states"`
	Outputs [][]float64 `json:"outputs,omitempty"`
	Inputs  [][]float64 `json:"inputs"`
}

func NewExportData(meta RunMetadata, tr *linsys.Trajectory) ExportData {
	return ExportData{
		RunMetadata: meta,
		States:      tr.StateRows(),
		Outputs:     tr.OutputRows(),
		Inputs:      tr.InputRows(),
	}
}

func ExportJSON(path string, meta RunMetadata, tr *linsys.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, tr)
}

func WriteJSON(w io.Writer, meta RunMetadata, tr *linsys.Trajectory) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, tr))
}
