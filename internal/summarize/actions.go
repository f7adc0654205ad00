package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mpetrov/digest/models"
	"github.com/mpetrov/digest/pkg/extractor"
	"github.com/mpetrov/digest/pkg/fetcher"
	"github.com/mpetrov/digest/pkg/gemini"
	"github.com/mpetrov/digest/pkg/history"
	"github.com/mpetrov/digest/pkg/summarizer"
)

// SummarizeAction fetches and summarizes every URL in the input file and
// writes one CSV row per URL. Per-URL failures are warnings; only input
// errors abort the run.
func SummarizeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if c.NArg() < 2 {
		return cli.Exit("Usage: digest summarize <input.txt|input.csv> <output.csv>", 1)
	}
	inputPath := c.Args().Get(0)
	outputPath := c.Args().Get(1)

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	urls, err := ReadURLs(inputPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if len(urls) == 0 {
		return cli.Exit("Error: No URLs found.", 1)
	}

	geminiCfg := gemini.LoadConfig()
	geminiCfg.Timeout = time.Duration(cfg.APITimeoutSeconds) * time.Second
	useGemini := !c.Bool("no-gemini") && geminiCfg.Configured()

	var external ExternalSummarizer
	if useGemini {
		external = gemini.NewClient(geminiCfg, logger)
	} else if !c.Bool("no-gemini") {
		logger.Info("No Gemini credentials configured, using local extractive summarizer")
	}

	pipeline := NewPipeline(PipelineOptions{
		Fetcher:   fetcher.New(time.Duration(cfg.FetchTimeoutSeconds) * time.Second),
		Extractor: extractor.New(cfg.PreviewChars),
		Local: summarizer.New(summarizer.Config{
			MaxSentences: cfg.MaxSentences,
			MinWordLen:   summarizer.DefaultConfig().MinWordLen,
			Stopwords:    cfg.Stopwords,
		}),
		External:    external,
		Delay:       time.Duration(cfg.DelaySeconds * float64(time.Second)),
		Readability: cfg.UseReadability,
		Logger:      logger,
	})

	startedAt := time.Now()
	results := pipeline.Run(context.Background(), urls)
	finishedAt := time.Now()

	if err := WriteResultsCSV(outputPath, results); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	logger.Info("Results written", "path", outputPath, "url_count", len(results))

	if !c.Bool("no-history") {
		recordHistory(c, logger, startedAt, finishedAt, inputPath, outputPath, results)
	}

	fmt.Printf("Wrote %d results to %s\n", len(results), outputPath)
	return nil
}

// loadConfig merges defaults, the optional YAML config file, and CLI flags.
// Flags win over file values.
func loadConfig(c *cli.Context) (models.SummarizeConfig, error) {
	cfg := models.DefaultSummarizeConfig()

	if c.IsSet("config") {
		loaded, err := models.LoadSummarizeConfig(c.String("config"))
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("delay") {
		cfg.DelaySeconds = c.Float64("delay")
	}
	if c.IsSet("timeout") {
		cfg.FetchTimeoutSeconds = c.Int("timeout")
	}
	if c.IsSet("api-timeout") {
		cfg.APITimeoutSeconds = c.Int("api-timeout")
	}
	if c.IsSet("max-sentences") {
		cfg.MaxSentences = c.Int("max-sentences")
	}
	if c.IsSet("readability") {
		cfg.UseReadability = c.Bool("readability")
	}

	return cfg, nil
}

// recordHistory stores the run in the local SQLite database. History is a
// convenience; failures are warnings, never fatal.
func recordHistory(c *cli.Context, logger *slog.Logger, startedAt, finishedAt time.Time,
	inputPath, outputPath string, results []models.SummaryResult) {

	dbPath := c.String("history-db")
	if dbPath == "" {
		dbPath = filepath.Join(filepath.Dir(outputPath), history.DefaultDBName)
	}

	db, err := history.Open(dbPath)
	if err != nil {
		logger.Warn("Failed to open history database", "path", dbPath, "error", err)
		return
	}
	defer db.Close()

	runID, err := db.RecordRun(history.RunInfo{
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		InputPath:  inputPath,
		OutputPath: outputPath,
	}, results)
	if err != nil {
		logger.Warn("Failed to record run history", "error", err)
		return
	}
	logger.Info("Run recorded", "run_id", runID, "db", dbPath)
}

// HistoryAction lists past summarize runs, newest first.
func HistoryAction(c *cli.Context) error {
	db, err := history.Open(c.String("db"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	defer db.Close()

	runs, err := db.ListRuns(c.Int("limit"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tURLS\tOK\tFAILED\tOUTPUT")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\n",
			r.RunID, r.StartedAt.Local().Format(time.RFC3339),
			r.URLCount, r.SuccessCount, r.FailedCount, r.OutputPath)
	}
	return w.Flush()
}
