package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/r-anthony-graves/taskWolf/internal/dashboard"
	"github.com/r-anthony-graves/taskWolf/internal/engine"
	"github.com/r-anthony-graves/taskWolf/internal/fetch"
	"github.com/r-anthony-graves/taskWolf/internal/parser"
	"github.com/r-anthony-graves/taskWolf/internal/report"
	"github.com/r-anthony-graves/taskWolf/internal/storage"
)

const defaultBaseURL = "https://news.ycombinator.com/newest"

var (
	flagCount     int
	flagMaxPages  int
	flagHead      bool
	flagJSON      bool
	flagOut       string
	flagDashboard string

	exitCode int
)

var rootCmd = &cobra.Command{
	Use:           "taskwolf",
	Short:         "Collects the newest unique entries from a paginated board",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().IntVar(&flagCount, "count", 100, "target entry count")
	rootCmd.Flags().IntVar(&flagMaxPages, "max-pages", 15, "page budget per run")
	rootCmd.Flags().BoolVar(&flagHead, "head", false, "run the browser with a visible window")
	rootCmd.Flags().BoolVar(&flagHead, "headed", false, "alias for --head")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "machine-readable output")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "write collected entries as NDJSON to this file")
	rootCmd.Flags().StringVar(&flagDashboard, "dashboard", "", "serve charts on this port after the run (requires --out)")
	rootCmd.Flags().MarkHidden("headed")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func run(cmd *cobra.Command, args []string) error {
	godotenv.Load()

	// stdout carries the report; logs go to stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if flagCount < 1 {
		flagCount = 1
	}
	if flagMaxPages < 1 {
		flagMaxPages = 1
	}

	baseURL := os.Getenv("TASKWOLF_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	fetcher, err := fetch.NewFetcher(fetch.Config{
		BaseURL:       baseURL,
		Headless:      !flagHead,
		ReadySelector: parser.RowSelector,
		Delay:         pageDelay(),
		Logger:        logger,
	})
	if err != nil {
		// no session to release; still emit a structured outcome
		emit(report.Build(nil, flagCount, flagMaxPages, err))
		exitCode = 1
		return nil
	}
	defer fetcher.Close()

	logger.Info("collection started",
		"count", flagCount, "maxPages", flagMaxPages, "base", baseURL)

	state, runErr := engine.New(fetcher, parser.New(), logger).
		Collect(cmd.Context(), flagCount, flagMaxPages)

	outcome := report.Build(state, flagCount, flagMaxPages, runErr)
	emit(outcome)
	if !outcome.OK {
		exitCode = 1
	}

	if flagOut != "" {
		writer := &storage.WriterService{FilePath: flagOut}
		if err := writer.Write(outcome.Items); err != nil {
			logger.Error("write output file", "err", err)
		} else if flagDashboard != "" {
			logger.Info("dashboard up", "port", flagDashboard)
			if err := dashboard.StartServer(flagOut, flagDashboard); err != nil {
				logger.Error("dashboard failed", "err", err)
			}
		}
	}
	return nil
}

func emit(o report.Outcome) {
	var err error
	if flagJSON {
		err = report.WriteJSON(os.Stdout, o)
	} else {
		err = report.WriteText(os.Stdout, o)
	}
	if err != nil {
		slog.Error("render outcome", "err", err)
	}
}

// pageDelay reads the politeness interval between page loads from
// TASKWOLF_PAGE_DELAY_MS. Zero falls through to the fetch default.
func pageDelay() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("TASKWOLF_PAGE_DELAY_MS"))
	if err != nil || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
