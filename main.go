package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mpetrov/digest/internal/report"
	"github.com/mpetrov/digest/internal/summarize"
	"github.com/mpetrov/digest/pkg/history"
)

func main() {
	app := &cli.App{
		Name:  "digest",
		Usage: "analyze task logs and digest web pages into short summaries",
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "validate and aggregate a task log CSV",
				ArgsUsage: "<input.csv> [<output.csv>]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "split",
						Usage: "write four suffixed CSVs instead of one combined CSV",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: report.AnalyzeAction,
			},
			{
				Name:      "summarize",
				Usage:     "fetch and summarize a list of URLs into a CSV",
				ArgsUsage: "<input.txt|input.csv> <output.csv>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-gemini",
						Usage: "skip the Gemini API even if credentials are set; use the local summarizer",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file with run settings",
					},
					&cli.Float64Flag{
						Name:  "delay",
						Usage: "seconds to wait between requests",
						Value: 1.0,
					},
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "page fetch timeout in seconds",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "api-timeout",
						Usage: "Gemini API timeout in seconds",
						Value: 30,
					},
					&cli.IntFlag{
						Name:  "max-sentences",
						Usage: "sentence budget of the extractive fallback",
						Value: 3,
					},
					&cli.BoolFlag{
						Name:  "readability",
						Usage: "summarize the main article content instead of the whole page",
					},
					&cli.StringFlag{
						Name:  "history-db",
						Usage: "path of the run history database (default: next to the output CSV)",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "do not record this run in the history database",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: summarize.SummarizeAction,
			},
			{
				Name:  "history",
				Usage: "list past summarize runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "path of the run history database",
						Value: history.DefaultDBName,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum number of runs to list",
						Value: 20,
					},
				},
				Action: summarize.HistoryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
