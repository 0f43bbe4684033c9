package exporter

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"

	"amesdash/internal/config"
	"amesdash/internal/errors"
	"amesdash/internal/notebook"
)

// ChartCells associates notebook cell positions with chart filenames. The
// cell order is fixed by the upstream notebook; a cell with no rendered
// image is skipped without error.
var ChartCells = map[int]string{
	15: "saleprice_distribution.png",
	17: "qq_raw_vs_log.png",
	18: "saleprice_log_distribution.png",
	25: "saleprice_iqr_boxplots.png",
	29: "missingness_heatmap_top20.png",
	31: "correlation_heatmap_full.png",
	37: "top3_scatter_raw.png",
	39: "top3_scatter_log.png",
	41: "overallqual_vs_saleprice.png",
	43: "overallqual_vs_log_saleprice.png",
	48: "top15_neighborhood_mean.png",
}

// ChartExporter writes notebook-rendered chart images into the web assets
// directory and reports which charts were produced.
type ChartExporter struct {
	logger *slog.Logger
	paths  *config.Paths
}

// NewChartExporter creates a chart exporter for the given path set
func NewChartExporter(logger *slog.Logger, paths *config.Paths) *ChartExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartExporter{logger: logger, paths: paths}
}

// Export extracts every mapped chart image from the notebook and writes it
// under the charts directory. The returned index maps chart keys (filename
// without extension) to web-relative asset paths. Cells without an image
// payload are skipped; only write failures are errors.
func (e *ChartExporter) Export(ctx context.Context, doc *notebook.Document) (map[string]string, error) {
	chartFiles := make(map[string]string, len(ChartCells))

	// Deterministic iteration keeps the log output stable between runs
	indices := make([]int, 0, len(ChartCells))
	for index := range ChartCells {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	for _, index := range indices {
		filename := ChartCells[index]
		payload := doc.PNG(index)
		if payload == nil {
			e.logger.DebugContext(ctx, "no image payload at cell, skipping chart",
				slog.Int("cell_index", index),
				slog.String("filename", filename))
			continue
		}

		target := e.paths.GetChartPath(filename)
		if err := os.WriteFile(target, payload, 0644); err != nil {
			return nil, errors.NewStorageError("failed to write chart image", err).
				WithContext("path", target)
		}

		key := strings.TrimSuffix(filename, ".png")
		chartFiles[key] = config.DefaultChartsDir + "/" + filename
		e.logger.DebugContext(ctx, "chart exported",
			slog.Int("cell_index", index),
			slog.String("path", target),
			slog.Int("bytes", len(payload)))
	}

	if err := e.copyMockup(ctx, chartFiles); err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "chart export complete",
		slog.Int("charts_written", len(chartFiles)),
		slog.Int("cells_mapped", len(ChartCells)))
	return chartFiles, nil
}

// copyMockup copies the optional supplementary mockup image through
// unmodified under its fixed name. A missing mockup is expected.
func (e *ChartExporter) copyMockup(ctx context.Context, chartFiles map[string]string) error {
	payload, err := os.ReadFile(e.paths.MockupFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewStorageError("failed to read mockup image", err)
	}

	target := e.paths.GetChartPath(config.MockupChartFile)
	if err := os.WriteFile(target, payload, 0644); err != nil {
		return errors.NewStorageError("failed to write mockup image", err).
			WithContext("path", target)
	}

	key := strings.TrimSuffix(config.MockupChartFile, ".png")
	chartFiles[key] = config.DefaultChartsDir + "/" + config.MockupChartFile
	e.logger.DebugContext(ctx, "mockup image copied", slog.String("path", target))
	return nil
}
