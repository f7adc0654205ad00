// Package models defines data structures shared across the analysis and
// summarization pipelines.
package models

// LogRecord is a single row of a task log CSV, kept as raw strings so that
// invalid rows can be reported verbatim.
type LogRecord struct {
	User        string
	TaskType    string
	Start       string
	DurationMin string
}

// InvalidRecord is a log record that failed validation, together with the
// reasons it was rejected.
type InvalidRecord struct {
	LogRecord
	Reasons []string
}

// AggregateRow is one grouped total: minutes summed over all valid records
// sharing the same key (a user or a task type).
type AggregateRow struct {
	Key          string
	TotalMinutes float64
}

// RankedTask is one entry of the top-N task ranking.
type RankedTask struct {
	Rank         int
	TaskType     string
	TotalMinutes float64
}
