package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"amesdash/internal/config"
	"amesdash/internal/errors"
	"amesdash/pkg/contracts/domain"
)

// WorkbookWriter exports the headline metrics as an Excel workbook so the
// numbers can be reviewed outside the dashboard.
type WorkbookWriter struct {
	logger *slog.Logger
	paths  *config.Paths
}

// NewWorkbookWriter creates a workbook writer for the given path set
func NewWorkbookWriter(logger *slog.Logger, paths *config.Paths) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger, paths: paths}
}

// Write builds a workbook with one sheet per metric family and saves it
// alongside the JSON outputs.
func (w *WorkbookWriter) Write(ctx context.Context, metrics *domain.Metrics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, metrics); err != nil {
		return err
	}
	if err := w.writeCorrelationsSheet(f, metrics.TopCorrelations); err != nil {
		return err
	}
	if err := w.writeNeighborhoodsSheet(f, metrics.TopNeighborhoods); err != nil {
		return err
	}
	if err := w.writeMissingSheet(f, metrics.TopMissingFeatures); err != nil {
		return err
	}

	// The default sheet created by excelize is replaced by Summary.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.NewStorageError("failed to finalize workbook sheets", err)
	}

	if err := f.SaveAs(w.paths.MetricsWorkbook); err != nil {
		return errors.NewStorageError("failed to save metrics workbook", err).
			WithContext("path", w.paths.MetricsWorkbook)
	}

	w.logger.InfoContext(ctx, "metrics workbook written",
		slog.String("path", w.paths.MetricsWorkbook))
	return nil
}

func (w *WorkbookWriter) writeSummarySheet(f *excelize.File, metrics *domain.Metrics) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create summary sheet", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Rows", derefI(metrics.Summary.TotalRows)},
		{"Total Columns", derefI(metrics.Summary.TotalColumns)},
		{"Numeric Features", derefI(metrics.Summary.NumericFeatures)},
		{"Categorical Features", derefI(metrics.Summary.CategoricalFeatures)},
		{"Mean SalePrice", derefF(metrics.Summary.MeanSalePrice)},
		{"Median SalePrice", derefF(metrics.Summary.MedianSalePrice)},
		{"SalePrice Skew", derefF(metrics.Summary.SalePriceSkew)},
		{"SalePrice Kurtosis", derefF(metrics.Summary.SalePriceKurtosis)},
		{"Q1", derefF(metrics.Summary.Q1)},
		{"Q3", derefF(metrics.Summary.Q3)},
		{"IQR", derefF(metrics.Summary.IQRValue)},
		{"IQR Lower Bound", derefF(metrics.Summary.IQRLowerBound)},
		{"IQR Upper Bound", derefF(metrics.Summary.IQRUpperBound)},
		{"Rows Before IQR Filter", derefI(metrics.Summary.RowsBeforeIQR)},
		{"Rows After IQR Filter", derefI(metrics.Summary.RowsAfterIQR)},
		{"Rows Removed by IQR Filter", derefI(metrics.Summary.RowsRemovedIQR)},
		{"Rows Removed % (IQR)", derefF(metrics.Summary.RowsRemovedPctIQR)},
	}
	return writeRows(f, sheet, rows)
}

func (w *WorkbookWriter) writeCorrelationsSheet(f *excelize.File, correlations []domain.CorrelationRow) error {
	const sheet = "Correlations"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create correlations sheet", err)
	}

	rows := [][]interface{}{{"Feature", "Correlation"}}
	for _, c := range correlations {
		rows = append(rows, []interface{}{c.Feature, c.Correlation})
	}
	return writeRows(f, sheet, rows)
}

func (w *WorkbookWriter) writeNeighborhoodsSheet(f *excelize.File, neighborhoods []domain.NeighborhoodRow) error {
	const sheet = "Neighborhoods"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create neighborhoods sheet", err)
	}

	rows := [][]interface{}{{"Neighborhood", "Mean Sale Price", "Median Sale Price", "Count"}}
	for _, n := range neighborhoods {
		rows = append(rows, []interface{}{n.Neighborhood, n.MeanSalePrice, n.MedianSalePrice, n.Count})
	}
	return writeRows(f, sheet, rows)
}

func (w *WorkbookWriter) writeMissingSheet(f *excelize.File, missing []domain.MissingFeature) error {
	const sheet = "Missing Features"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create missing features sheet", err)
	}

	rows := [][]interface{}{{"Feature", "Missing Count", "Missing %"}}
	for _, m := range missing {
		rows = append(rows, []interface{}{m.Feature, m.MissingCount, derefF(m.MissingPct)})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.NewStorageError("failed to write workbook row", err).
				WithContext("sheet", sheet).
				WithContext("cell", cell)
		}
	}
	return nil
}

func derefF(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func derefI(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
