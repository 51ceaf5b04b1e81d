// Package rates loads the empirical age × year rate tables that drive
// mortality and fertility once the simulation passes its historical cutoff.
package rates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNotCovered is returned when a table lacks a column for a simulated year.
var ErrNotCovered = errors.New("rate table does not cover year")

// Table is an age × year grid of annual probabilities. Row 0 is FirstAge,
// column 0 is FirstYear.
type Table struct {
	Name      string
	FirstAge  int
	FirstYear int
	Rows      [][]float64
}

// MaxAge returns the oldest tabulated age.
func (t *Table) MaxAge() int {
	return t.FirstAge + len(t.Rows) - 1
}

// LastYear returns the latest tabulated year.
func (t *Table) LastYear() int {
	if len(t.Rows) == 0 {
		return t.FirstYear - 1
	}
	return t.FirstYear + len(t.Rows[0]) - 1
}

// At returns the rate for age in year. Ages outside the table are clamped
// to its first or last row; the year must be covered (see CoversYears).
func (t *Table) At(age, year int) float64 {
	row := age - t.FirstAge
	if row < 0 {
		row = 0
	}
	if row >= len(t.Rows) {
		row = len(t.Rows) - 1
	}
	return t.Rows[row][year-t.FirstYear]
}

// CoversYears returns ErrNotCovered unless every year in [from, to] has a column.
func (t *Table) CoversYears(from, to int) error {
	if from > to {
		return nil
	}
	if from < t.FirstYear || to > t.LastYear() {
		return fmt.Errorf("%s spans %d-%d, need %d-%d: %w", t.Name, t.FirstYear, t.LastYear(), from, to, ErrNotCovered)
	}
	return nil
}

// LoadCSV reads a headerless CSV of probabilities, one row per age.
func LoadCSV(path string, firstAge, firstYear int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rate table: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f, firstAge, firstYear)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ReadCSV parses a rate table from r. Every row must have the same width
// and every cell must be a probability in [0, 1].
func ReadCSV(r io.Reader, firstAge, firstYear int) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]float64
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(rows) > 0 && len(record) != len(rows[0]) {
			return nil, fmt.Errorf("line %d: %d columns, want %d", line, len(record), len(rows[0]))
		}
		row := make([]float64, len(record))
		for i, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, i+1, err)
			}
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("line %d column %d: rate %g outside [0, 1]", line, i+1, v)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty rate table")
	}
	return &Table{FirstAge: firstAge, FirstYear: firstYear, Rows: rows}, nil
}
