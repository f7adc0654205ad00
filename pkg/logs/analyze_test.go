package logs

import (
	"reflect"
	"testing"

	"github.com/mpetrov/digest/models"
)

func TestAnalyze_ClassifiesInvalidRows(t *testing.T) {
	records := []models.LogRecord{
		{User: "alice", TaskType: "build", Start: "2024-01-01T10:00", DurationMin: "30"},
		{User: "alice", TaskType: "build", Start: "bad-date", DurationMin: "20"},
		{User: "bob", TaskType: "test", Start: "2024-01-01T11:00", DurationMin: "-5"},
	}

	rep := Analyze(records)

	wantUsers := []models.AggregateRow{{Key: "alice", TotalMinutes: 30}}
	if !reflect.DeepEqual(rep.TimePerUser, wantUsers) {
		t.Errorf("TimePerUser = %v, want %v", rep.TimePerUser, wantUsers)
	}

	if len(rep.InvalidRows) != 2 {
		t.Fatalf("len(InvalidRows) = %d, want 2", len(rep.InvalidRows))
	}
	if got := rep.InvalidRows[0].Reasons; !reflect.DeepEqual(got, []string{ReasonBadTimestamp}) {
		t.Errorf("InvalidRows[0].Reasons = %v, want [%s]", got, ReasonBadTimestamp)
	}
	if got := rep.InvalidRows[1].Reasons; !reflect.DeepEqual(got, []string{ReasonNegativeDuration}) {
		t.Errorf("InvalidRows[1].Reasons = %v, want [%s]", got, ReasonNegativeDuration)
	}
}

func TestAnalyze_MissingAndNegativeAreExclusive(t *testing.T) {
	records := []models.LogRecord{
		{User: "carol", TaskType: "review", Start: "nope", DurationMin: "not-a-number"},
	}

	rep := Analyze(records)

	if len(rep.InvalidRows) != 1 {
		t.Fatalf("len(InvalidRows) = %d, want 1", len(rep.InvalidRows))
	}
	want := []string{ReasonBadTimestamp, ReasonMissingDuration}
	if got := rep.InvalidRows[0].Reasons; !reflect.DeepEqual(got, want) {
		t.Errorf("Reasons = %v, want %v", got, want)
	}
	for _, r := range rep.InvalidRows[0].Reasons {
		if r == ReasonNegativeDuration {
			t.Error("missing_duration and negative_duration must not co-occur")
		}
	}
}

func TestAnalyze_TotalsBalance(t *testing.T) {
	records := []models.LogRecord{
		{User: "alice", TaskType: "build", Start: "2024-01-01T10:00", DurationMin: "30"},
		{User: "alice", TaskType: "test", Start: "2024-01-01T11:00", DurationMin: "15.5"},
		{User: "bob", TaskType: "build", Start: "2024-01-02T09:00", DurationMin: "45"},
		{User: "bob", TaskType: "deploy", Start: "garbage", DurationMin: "60"},
	}

	rep := Analyze(records)

	sum := func(rows []models.AggregateRow) float64 {
		var total float64
		for _, r := range rows {
			total += r.TotalMinutes
		}
		return total
	}

	if userSum, taskSum := sum(rep.TimePerUser), sum(rep.TimePerTask); userSum != taskSum {
		t.Errorf("per-user sum %v != per-task sum %v", userSum, taskSum)
	}
	if got := sum(rep.TimePerTask); got != 90.5 {
		t.Errorf("total valid minutes = %v, want 90.5", got)
	}
}

func TestAnalyze_AggregateRowsAlphabetical(t *testing.T) {
	records := []models.LogRecord{
		{User: "zed", TaskType: "zeta", Start: "2024-01-01T10:00", DurationMin: "1"},
		{User: "amy", TaskType: "alpha", Start: "2024-01-01T10:00", DurationMin: "2"},
		{User: "mia", TaskType: "mid", Start: "2024-01-01T10:00", DurationMin: "3"},
	}

	rep := Analyze(records)

	for i := 1; i < len(rep.TimePerUser); i++ {
		if rep.TimePerUser[i-1].Key > rep.TimePerUser[i].Key {
			t.Errorf("TimePerUser not alphabetical: %q before %q",
				rep.TimePerUser[i-1].Key, rep.TimePerUser[i].Key)
		}
	}
}

func TestRankTasks_TopThreeDescending(t *testing.T) {
	rows := []models.AggregateRow{
		{Key: "build", TotalMinutes: 100},
		{Key: "deploy", TotalMinutes: 10},
		{Key: "review", TotalMinutes: 70},
		{Key: "test", TotalMinutes: 40},
	}

	ranked := RankTasks(rows, 3)

	if len(ranked) != 3 {
		t.Fatalf("len(ranked) = %d, want 3", len(ranked))
	}
	want := []models.RankedTask{
		{Rank: 1, TaskType: "build", TotalMinutes: 100},
		{Rank: 2, TaskType: "review", TotalMinutes: 70},
		{Rank: 3, TaskType: "test", TotalMinutes: 40},
	}
	if !reflect.DeepEqual(ranked, want) {
		t.Errorf("ranked = %v, want %v", ranked, want)
	}
}

func TestRankTasks_TiesAlphabetical(t *testing.T) {
	rows := []models.AggregateRow{
		{Key: "zeta", TotalMinutes: 50},
		{Key: "alpha", TotalMinutes: 50},
		{Key: "mid", TotalMinutes: 50},
	}

	ranked := RankTasks(rows, 3)

	wantOrder := []string{"alpha", "mid", "zeta"}
	for i, task := range ranked {
		if task.TaskType != wantOrder[i] {
			t.Errorf("ranked[%d].TaskType = %q, want %q", i, task.TaskType, wantOrder[i])
		}
	}
}

func TestRankTasks_FewerThanN(t *testing.T) {
	rows := []models.AggregateRow{
		{Key: "build", TotalMinutes: 20},
		{Key: "test", TotalMinutes: 30},
	}

	ranked := RankTasks(rows, 3)

	if len(ranked) != 2 {
		t.Fatalf("len(ranked) = %d, want 2", len(ranked))
	}
	if ranked[0].TaskType != "test" || ranked[1].TaskType != "build" {
		t.Errorf("ranked order = [%s %s], want [test build]", ranked[0].TaskType, ranked[1].TaskType)
	}
}

// Feeding time_per_task back through the ranking step must reproduce
// top3_tasks exactly.
func TestAnalyze_RankingRoundTrip(t *testing.T) {
	records := []models.LogRecord{
		{User: "alice", TaskType: "build", Start: "2024-01-01T10:00", DurationMin: "30"},
		{User: "bob", TaskType: "test", Start: "2024-01-01T11:00", DurationMin: "45"},
		{User: "carol", TaskType: "review", Start: "2024-01-01T12:00", DurationMin: "20"},
		{User: "dave", TaskType: "deploy", Start: "2024-01-01T13:00", DurationMin: "10"},
	}

	rep := Analyze(records)
	again := RankTasks(rep.TimePerTask, 3)

	if !reflect.DeepEqual(again, rep.Top3Tasks) {
		t.Errorf("re-ranking = %v, want %v", again, rep.Top3Tasks)
	}
}

func TestSchemaError_Message(t *testing.T) {
	err := &SchemaError{Missing: []string{"user", "duration_min"}}
	want := "input is missing required columns: user, duration_min"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
