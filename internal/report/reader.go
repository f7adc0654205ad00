// Package report wires the log analyzer to its CSV input, CSV outputs, and
// stdout tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mpetrov/digest/models"
	"github.com/mpetrov/digest/pkg/logs"
)

// ReadRecords loads log records from a CSV file. A header row is required;
// a missing required column is a *logs.SchemaError and fatal to the run.
func ReadRecords(path string) ([]models.LogRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row width validated via the header index below

	header, err := r.Read()
	if err == io.EOF {
		return nil, &logs.SchemaError{Missing: logs.RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, col := range logs.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &logs.SchemaError{Missing: missing}
	}

	var records []models.LogRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		records = append(records, models.LogRecord{
			User:        field(row, index["user"]),
			TaskType:    field(row, index["task_type"]),
			Start:       field(row, index["start"]),
			DurationMin: field(row, index["duration_min"]),
		})
	}
	return records, nil
}

// field tolerates short rows: a missing cell reads as empty and is caught by
// validation instead of aborting the whole file.
func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
