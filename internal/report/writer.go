package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mpetrov/digest/models"
	"github.com/mpetrov/digest/pkg/logs"
)

// WriteCombined writes the whole report into a single CSV with section-tagged
// rows (columns section,c1,c2,c3,c4): each section starts with a header row,
// and sections are separated by blank rows.
func WriteCombined(path string, rep *logs.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"section", "c1", "c2", "c3", "c4"}); err != nil {
		return err
	}

	write := func(section, c1, c2, c3, c4 string) {
		_ = w.Write([]string{section, c1, c2, c3, c4})
	}
	blank := func() { write("", "", "", "", "") }

	write("time_per_user", "user", "total_minutes", "", "")
	for _, row := range rep.TimePerUser {
		write("time_per_user", row.Key, formatMinutes(row.TotalMinutes), "", "")
	}
	blank()

	write("time_per_task", "task_type", "total_minutes", "", "")
	for _, row := range rep.TimePerTask {
		write("time_per_task", row.Key, formatMinutes(row.TotalMinutes), "", "")
	}
	blank()

	write("top3_tasks", "rank", "task_type", "total_minutes", "")
	for _, row := range rep.Top3Tasks {
		write("top3_tasks", strconv.Itoa(row.Rank), row.TaskType, formatMinutes(row.TotalMinutes), "")
	}
	blank()

	write("invalid_rows", "user", "task_type", "start", "reason")
	for _, row := range rep.InvalidRows {
		write("invalid_rows", row.User, row.TaskType, row.Start, strings.Join(row.Reasons, ","))
	}

	return w.Error()
}

// WriteSplit writes the four report tables into separate CSVs derived from
// the base path: output.csv becomes output_time_per_user.csv and so on.
func WriteSplit(basePath string, rep *logs.Report) error {
	base := strings.TrimSuffix(basePath, ".csv")

	if err := writeAggregate(base+"_time_per_user.csv", "user", rep.TimePerUser); err != nil {
		return err
	}
	if err := writeAggregate(base+"_time_per_task.csv", "task_type", rep.TimePerTask); err != nil {
		return err
	}
	if err := writeTop3(base+"_top3_tasks.csv", rep); err != nil {
		return err
	}
	return writeInvalid(base+"_invalid_rows.csv", rep)
}

func writeAggregate(path, keyName string, rows []models.AggregateRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{keyName, "total_minutes"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Key, formatMinutes(row.TotalMinutes)}); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeTop3(path string, rep *logs.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"rank", "task_type", "total_minutes"}); err != nil {
		return err
	}
	for _, row := range rep.Top3Tasks {
		if err := w.Write([]string{strconv.Itoa(row.Rank), row.TaskType, formatMinutes(row.TotalMinutes)}); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeInvalid(path string, rep *logs.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"user", "task_type", "start", "duration_min", "reason"}); err != nil {
		return err
	}
	for _, row := range rep.InvalidRows {
		if err := w.Write([]string{row.User, row.TaskType, row.Start, row.DurationMin, strings.Join(row.Reasons, ",")}); err != nil {
			return err
		}
	}
	return w.Error()
}

// PrintReport writes the four human-readable tables.
func PrintReport(out io.Writer, rep *logs.Report) {
	fmt.Fprintln(out, "=== Time per user ===")
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "user\ttotal_minutes")
	for _, row := range rep.TimePerUser {
		fmt.Fprintf(w, "%s\t%s\n", row.Key, formatMinutes(row.TotalMinutes))
	}
	w.Flush()

	fmt.Fprintln(out, "\n=== Time per task ===")
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "task_type\ttotal_minutes")
	for _, row := range rep.TimePerTask {
		fmt.Fprintf(w, "%s\t%s\n", row.Key, formatMinutes(row.TotalMinutes))
	}
	w.Flush()

	fmt.Fprintln(out, "\n=== Top 3 task types ===")
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "rank\ttask_type\ttotal_minutes")
	for _, row := range rep.Top3Tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\n", row.Rank, row.TaskType, formatMinutes(row.TotalMinutes))
	}
	w.Flush()

	fmt.Fprintln(out, "\n=== Invalid / excluded rows ===")
	if len(rep.InvalidRows) == 0 {
		fmt.Fprintln(out, "None")
		return
	}
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "user\ttask_type\tstart\tduration_min\treason")
	for _, row := range rep.InvalidRows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.User, row.TaskType, row.Start, row.DurationMin, strings.Join(row.Reasons, ","))
	}
	w.Flush()
}

// formatMinutes renders totals without a trailing ".0" for whole values.
func formatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
