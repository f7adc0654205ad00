package summarize

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/mpetrov/digest/models"
)

// resultColumns is the output CSV contract.
var resultColumns = []string{"url", "title", "meta_description", "summary", "notes"}

// WriteResultsCSV writes one row per result, in result order.
func WriteResultsCSV(path string, results []models.SummaryResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(resultColumns); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{r.URL, r.Title, r.MetaDescription, r.Summary, r.Notes}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
