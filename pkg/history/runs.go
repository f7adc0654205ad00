package history

import (
	"fmt"
	"time"

	"github.com/mpetrov/digest/models"
)

// RunInfo is the stored metadata of one summarize run.
type RunInfo struct {
	RunID        int64
	StartedAt    time.Time
	FinishedAt   time.Time
	InputPath    string
	OutputPath   string
	URLCount     int
	SuccessCount int
	FailedCount  int
}

// RecordRun inserts a run and its per-URL results in a single transaction
// and returns the new run ID. The failed count is derived from results whose
// notes mark a fetch failure.
func (db *DB) RecordRun(run RunInfo, results []models.SummaryResult) (int64, error) {
	success, failed := 0, 0
	for _, r := range results {
		if r.Notes == models.NoteFetchFailed {
			failed++
		} else {
			success++
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, finished_at, input_path, output_path, url_count, success_count, failed_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC(), run.FinishedAt.UTC(), run.InputPath, run.OutputPath,
		len(results), success, failed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO results (run_id, url, title, notes, language) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.Exec(runID, r.URL, r.Title, r.Notes, r.Language); err != nil {
			return 0, fmt.Errorf("failed to insert result for %s: %w", r.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns up to limit runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(
		`SELECT run_id, started_at, finished_at, input_path, output_path, url_count, success_count, failed_count
		 FROM runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.FinishedAt, &r.InputPath,
			&r.OutputPath, &r.URLCount, &r.SuccessCount, &r.FailedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the stored per-URL results of a run, in insertion order.
func (db *DB) RunResults(runID int64) ([]models.SummaryResult, error) {
	rows, err := db.Query(
		`SELECT url, title, notes, language FROM results WHERE run_id = ? ORDER BY result_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.SummaryResult
	for rows.Next() {
		var r models.SummaryResult
		if err := rows.Scan(&r.URL, &r.Title, &r.Notes, &r.Language); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
