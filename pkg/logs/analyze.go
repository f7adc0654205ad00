// Package logs validates and aggregates task-duration log records.
package logs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mpetrov/digest/models"
)

// Validation reason tags. A record may carry more than one, but
// ReasonMissingDuration and ReasonNegativeDuration are mutually exclusive.
const (
	ReasonBadTimestamp     = "bad_timestamp"
	ReasonMissingDuration  = "missing_duration"
	ReasonNegativeDuration = "negative_duration"
)

// RequiredColumns are the CSV columns the analyzer needs.
var RequiredColumns = []string{"user", "task_type", "start", "duration_min"}

// SchemaError reports required columns missing from the input header.
// It is fatal: no partial result is produced.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// timestampLayouts are tried in order when parsing the start column.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Report holds the four outputs of a log analysis. Aggregate rows are emitted
// in alphabetical key order so output is deterministic across runs.
type Report struct {
	TimePerUser []models.AggregateRow
	TimePerTask []models.AggregateRow
	Top3Tasks   []models.RankedTask
	InvalidRows []models.InvalidRecord
}

// Analyze classifies each record as valid or invalid and aggregates the valid
// durations per user and per task type. Invalid records are excluded from all
// totals but preserved verbatim with their reason tags.
func Analyze(records []models.LogRecord) *Report {
	rep := &Report{}

	perUser := make(map[string]float64)
	perTask := make(map[string]float64)

	for _, r := range records {
		reasons := validate(r)
		if len(reasons) > 0 {
			rep.InvalidRows = append(rep.InvalidRows, models.InvalidRecord{
				LogRecord: r,
				Reasons:   reasons,
			})
			continue
		}

		minutes, _ := parseDuration(r.DurationMin)
		perUser[r.User] += minutes
		perTask[r.TaskType] += minutes
	}

	rep.TimePerUser = sortedRows(perUser)
	rep.TimePerTask = sortedRows(perTask)
	rep.Top3Tasks = RankTasks(rep.TimePerTask, 3)

	return rep
}

// validate returns the reason tags for a record, or nil when it is valid.
func validate(r models.LogRecord) []string {
	var reasons []string

	if _, ok := parseTimestamp(r.Start); !ok {
		reasons = append(reasons, ReasonBadTimestamp)
	}

	minutes, ok := parseDuration(r.DurationMin)
	switch {
	case !ok:
		reasons = append(reasons, ReasonMissingDuration)
	case minutes < 0:
		reasons = append(reasons, ReasonNegativeDuration)
	}

	return reasons
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDuration(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// sortedRows converts a totals map into rows ordered alphabetically by key.
func sortedRows(totals map[string]float64) []models.AggregateRow {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]models.AggregateRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, models.AggregateRow{Key: k, TotalMinutes: totals[k]})
	}
	return rows
}

// RankTasks returns the n task types with the greatest totals, descending.
// Ties break alphabetically by task type. Fewer than n rows yields them all.
func RankTasks(rows []models.AggregateRow, n int) []models.RankedTask {
	sorted := make([]models.AggregateRow, len(rows))
	copy(sorted, rows)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalMinutes != sorted[j].TotalMinutes {
			return sorted[i].TotalMinutes > sorted[j].TotalMinutes
		}
		return sorted[i].Key < sorted[j].Key
	})

	limit := n
	if len(sorted) < limit {
		limit = len(sorted)
	}

	ranked := make([]models.RankedTask, 0, limit)
	for i := 0; i < limit; i++ {
		ranked = append(ranked, models.RankedTask{
			Rank:         i + 1,
			TaskType:     sorted[i].Key,
			TotalMinutes: sorted[i].TotalMinutes,
		})
	}
	return ranked
}
