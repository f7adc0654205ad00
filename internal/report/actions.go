package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mpetrov/digest/pkg/logs"
)

// AnalyzeAction validates and aggregates a task log CSV, prints the four
// report tables, and optionally writes CSV artifacts.
func AnalyzeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if c.NArg() < 1 {
		return cli.Exit("Usage: digest analyze <input.csv> [<output.csv>]", 1)
	}
	inputPath := c.Args().Get(0)
	outputPath := c.Args().Get(1)

	records, err := ReadRecords(inputPath)
	if err != nil {
		var schemaErr *logs.SchemaError
		if errors.As(err, &schemaErr) {
			return cli.Exit(fmt.Sprintf("Error: %v", schemaErr), 1)
		}
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	rep := logs.Analyze(records)
	logger.Info("Analysis complete",
		"records", len(records),
		"valid", len(records)-len(rep.InvalidRows),
		"invalid", len(rep.InvalidRows))

	PrintReport(os.Stdout, rep)

	if outputPath == "" {
		return nil
	}

	if c.Bool("split") {
		if err := WriteSplit(outputPath, rep); err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
		fmt.Printf("\nSplit summary CSVs written next to: %s\n", outputPath)
		return nil
	}

	if err := WriteCombined(outputPath, rep); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	fmt.Printf("\nCombined summary written to: %s\n", outputPath)
	return nil
}
