package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"amesdash/internal/config"
	"amesdash/internal/dataprocessing"
	"amesdash/internal/exporter"
	"amesdash/internal/infrastructure"
	"amesdash/internal/notebook"
	"amesdash/internal/profile"
	"amesdash/pkg/contracts/domain"
)

func main() {
	notebookPath := flag.String("notebook", "", "path to the executed notebook (defaults to House-Price.ipynb next to the executable)")
	outDir := flag.String("out", "", "web output root (defaults to web/ next to the executable)")
	profilePath := flag.String("profile", "", "path to the profile report HTML (defaults to probing known filenames next to the notebook)")
	flag.Parse()

	// Initialize paths first to get default locations
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		paths = config.NewPathsForWebRoot(paths.ExecutableDir, *outDir)
	}
	if *notebookPath != "" {
		paths.NotebookFile = *notebookPath
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:       "info",
				Format:      "json",
				Output:      "both",
				FilePath:    paths.GetLogPath("build.log"),
				Development: false,
			},
			Build: config.BuildConfig{
				MaxRankedAlerts: 15,
				WriteWorkbook:   true,
			},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger = infrastructure.WithComponent(logger, "dashboard-builder")

	logger.InfoContext(ctx, "Starting dashboard asset build",
		slog.String("notebook", paths.NotebookFile),
		slog.String("web_dir", paths.WebDir),
		slog.String("executable_dir", paths.ExecutableDir))

	// The executed notebook is the one mandatory input
	doc, err := notebook.Load(paths.NotebookFile)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load notebook", slog.String("error", err.Error()))
		slog.Error("Cannot continue without the executed notebook", "path", paths.NotebookFile)
		os.Exit(1)
	}

	charts := exporter.NewChartExporter(logger, paths)
	chartFiles, err := charts.Export(ctx, doc)
	if err != nil {
		logger.ErrorContext(ctx, "Chart export failed, continuing without charts",
			slog.String("error", err.Error()))
		chartFiles = map[string]string{}
	}

	profileReport, profileName := parseProfile(ctx, logger, cfg, paths, *profilePath)

	builder := dataprocessing.NewBuilder(logger)
	metrics := builder.Build(ctx, doc, filepath.Base(paths.NotebookFile), chartFiles, profileReport)

	writer := exporter.NewMetricsWriter(logger, paths)
	if err := writer.Write(ctx, metrics); err != nil {
		logger.ErrorContext(ctx, "Failed to write metrics bundle", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Build.WriteWorkbook {
		workbook := exporter.NewWorkbookWriter(logger, paths)
		if err := workbook.Write(ctx, metrics); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics workbook",
				slog.String("error", err.Error()))
		}
	}

	logger.InfoContext(ctx, "Dashboard asset build complete",
		slog.Int("charts_written", len(chartFiles)),
		slog.Bool("profile_parsed", profileReport != nil))

	fmt.Println("Dashboard assets generated from notebook/profile outputs:")
	fmt.Printf("- Charts: %s\n", paths.ChartsDir)
	fmt.Printf("- Data: %s\n", paths.DataDir)
	fmt.Printf("- JS: %s\n", paths.JSDir)
	fmt.Printf("- Profile parsed: %s\n", profileName)
}

// parseProfile resolves and parses the optional profile report. Every
// failure path degrades to "no profile" rather than stopping the build.
func parseProfile(ctx context.Context, logger *slog.Logger, cfg *config.Config, paths *config.Paths, override string) (*domain.ProfileReport, string) {
	reportPath := override
	if reportPath == "" {
		found, ok := paths.FindProfileReport()
		if !ok {
			logger.InfoContext(ctx, "No profile report found, building without profile overview")
			return nil, "not found"
		}
		reportPath = found
	}

	reader := profile.NewReader(logger, cfg.Build.MaxRankedAlerts)
	parsed, err := reader.Parse(ctx, reportPath)
	if err != nil {
		logger.WarnContext(ctx, "Failed to parse profile report, continuing without it",
			slog.String("path", reportPath),
			slog.String("error", err.Error()))
		return nil, "not found"
	}
	return parsed, filepath.Base(reportPath)
}
