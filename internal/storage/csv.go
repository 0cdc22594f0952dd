package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/elvijs/linear-systems/internal/linsys"
)

// WriteCSV writes one row per step: k, then the state, output and input
// components. Columns are named x0.., y0.. and u0.. (d0.. for Lur'e runs).
func WriteCSV(w io.Writer, tr *linsys.Trajectory) error {
	cw := csv.NewWriter(w)

	inName := tr.InputName
	if inName == "" {
		inName = "u"
	}
	header := []string{"k"}
	if tr.Len() > 0 {
		header = appendNames(header, "x", tr.States[0].Len())
		if tr.HasOutputs() {
			header = appendNames(header, "y", tr.Outputs[0].Len())
		}
		header = appendNames(header, inName, tr.Inputs[0].Len())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for k := 0; k < tr.Len(); k++ {
		row := []string{strconv.Itoa(k)}
		row = appendValues(row, tr.States[k])
		if tr.HasOutputs() {
			row = appendValues(row, tr.Outputs[k])
		}
		row = appendValues(row, tr.Inputs[k])
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(r io.Reader) (*linsys.Trajectory, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) == 0 || records[0][0] != "k" {
		return nil, fmt.Errorf("trajectory csv: missing header")
	}

	header := records[0]
	var xs, ys, us []int
	inName := "u"
	for j, name := range header[1:] {
		col := j + 1
		switch {
		case strings.HasPrefix(name, "x"):
			xs = append(xs, col)
		case strings.HasPrefix(name, "y"):
			ys = append(ys, col)
		case strings.HasPrefix(name, "u"), strings.HasPrefix(name, "d"):
			inName = name[:1]
			us = append(us, col)
		default:
			return nil, fmt.Errorf("trajectory csv: unknown column %q", name)
		}
	}

	steps := len(records) - 1
	tr := &linsys.Trajectory{
		States:    make([]*mat.VecDense, 0, steps),
		Inputs:    make([]*mat.VecDense, 0, steps),
		InputName: inName,
	}
	if len(ys) > 0 {
		tr.Outputs = make([]*mat.VecDense, 0, steps)
	}

	for i, record := range records[1:] {
		x, err := parseColumns(record, xs)
		if err != nil {
			return nil, fmt.Errorf("trajectory csv: row %d: %w", i+1, err)
		}
		u, err := parseColumns(record, us)
		if err != nil {
			return nil, fmt.Errorf("trajectory csv: row %d: %w", i+1, err)
		}
		tr.States = append(tr.States, x)
		tr.Inputs = append(tr.Inputs, u)
		if len(ys) > 0 {
			y, err := parseColumns(record, ys)
			if err != nil {
				return nil, fmt.Errorf("trajectory csv: row %d: %w", i+1, err)
			}
			tr.Outputs = append(tr.Outputs, y)
		}
	}
	return tr, nil
}

func appendNames(row []string, prefix string, n int) []string {
	for i := 0; i < n; i++ {
		row = append(row, fmt.Sprintf("%s%d", prefix, i))
	}
	return row
}

func appendValues(row []string, v mat.Vector) []string {
	for i := 0; i < v.Len(); i++ {
		row = append(row, strconv.FormatFloat(v.AtVec(i), 'g', -1, 64))
	}
	return row
}

func parseColumns(record []string, cols []int) (*mat.VecDense, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns")
	}
	data := make([]float64, len(cols))
	for i, c := range cols {
		v, err := strconv.ParseFloat(record[c], 64)
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return mat.NewVecDense(len(data), data), nil
}
