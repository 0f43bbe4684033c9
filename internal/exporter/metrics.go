package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"amesdash/internal/config"
	"amesdash/internal/errors"
	"amesdash/pkg/contracts/domain"
)

// MetricsWriter serializes the aggregated metrics record into the data file
// and its script-embedded companion.
type MetricsWriter struct {
	logger *slog.Logger
	paths  *config.Paths
}

// NewMetricsWriter creates a metrics writer for the given path set
func NewMetricsWriter(logger *slog.Logger, paths *config.Paths) *MetricsWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsWriter{logger: logger, paths: paths}
}

// Write marshals the record once and writes both outputs from the same
// bytes: metrics.json for generic consumption, and metrics.js wrapping the
// identical payload in a global-variable assignment so the dashboard can
// include it without a fetch step.
func (w *MetricsWriter) Write(ctx context.Context, metrics *domain.Metrics) error {
	payload, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to encode metrics record", err)
	}

	if err := os.WriteFile(w.paths.MetricsJSON, payload, 0644); err != nil {
		return errors.NewStorageError("failed to write metrics data file", err).
			WithContext("path", w.paths.MetricsJSON)
	}

	script := make([]byte, 0, len(payload)+len(config.MetricsGlobalName)+8)
	script = append(script, config.MetricsGlobalName...)
	script = append(script, " = "...)
	script = append(script, payload...)
	script = append(script, ";\n"...)

	if err := os.WriteFile(w.paths.MetricsJS, script, 0644); err != nil {
		return errors.NewStorageError("failed to write metrics script file", err).
			WithContext("path", w.paths.MetricsJS)
	}

	w.logger.InfoContext(ctx, "metrics bundle written",
		slog.String("json_path", w.paths.MetricsJSON),
		slog.String("js_path", w.paths.MetricsJS),
		slog.Int("payload_bytes", len(payload)))
	return nil
}
