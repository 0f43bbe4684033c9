package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"amesdash/internal/notebook"
	"amesdash/pkg/contracts/domain"
)

// Cell positions of the analysis outputs inside the executed notebook. The
// notebook is produced upstream with a fixed cell order; a missing or
// reshuffled cell degrades to null fields, never to a failure.
const (
	cellShape           = 7
	cellFeatureCounts   = 11
	cellTargetStats     = 13
	cellIQRBounds       = 21
	cellIQRRowCounts    = 23
	cellMissingTable    = 27
	cellCorrelations    = 33
	cellDrivers         = 35
	cellNeighborhoods   = 46
	cellTopNeighborhood = 47
)

// sourceNote documents where the published values come from
const sourceNote = "Values and chart outputs extracted from executed notebook cells."

// Builder assembles all parsed fields into the aggregated metrics record.
type Builder struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewBuilder creates a metrics builder. A nil logger falls back to the
// default slog logger.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger, now: time.Now}
}

// Build combines every parsed field from the notebook with the exported
// chart index and the optional profile report into one metrics record.
// Field-level parse failures surface as null values in the record.
func (b *Builder) Build(ctx context.Context, doc *notebook.Document, sourceNotebook string, chartFiles map[string]string, profileReport *domain.ProfileReport) *domain.Metrics {
	b.logger.InfoContext(ctx, "building metrics record",
		slog.String("source_notebook", sourceNotebook),
		slog.Int("chart_count", len(chartFiles)),
		slog.Bool("profile_present", profileReport != nil))

	totalRows, totalColumns := ParseShape(doc.StreamText(cellShape))
	numericFeatures, categoricalFeatures := ParseFeatureCounts(doc.StreamText(cellFeatureCounts))
	targetStats := ParseTargetStats(doc.StreamText(cellTargetStats))
	iqrBounds := ParseIQRBounds(doc.StreamText(cellIQRBounds))
	iqrRows := ParseIQRRowCounts(doc.StreamText(cellIQRRowCounts))

	topCorrelations := ParseCorrelationTable(doc.FirstTextPlain(cellCorrelations))
	topDrivers := ParseDriverList(doc.FirstTextPlain(cellDrivers))
	topNeighborhoods := ParseNeighborhoodTable(doc.FirstTextPlain(cellNeighborhoods))
	topNeighborhoodRows := ParseNeighborhoodTable(doc.FirstTextPlain(cellTopNeighborhood))
	missingFeatures := ParseMissingTable(doc.FirstTextPlain(cellMissingTable), iqrRows.After)

	summary := domain.Summary{
		TotalRows:           totalRows,
		TotalColumns:        totalColumns,
		NumericFeatures:     numericFeatures,
		CategoricalFeatures: categoricalFeatures,
		MeanSalePrice:       targetStats.Mean,
		MedianSalePrice:     targetStats.Median,
		SalePriceSkew:       targetStats.Skew,
		SalePriceKurtosis:   targetStats.Kurtosis,
		Q1:                  iqrBounds.Q1,
		Q3:                  iqrBounds.Q3,
		IQRValue:            iqrBounds.IQR,
		IQRLowerBound:       iqrBounds.LowerBound,
		IQRUpperBound:       iqrBounds.UpperBound,
		RowsBeforeIQR:       iqrRows.Before,
		RowsAfterIQR:        iqrRows.After,
		RowsRemovedIQR:      iqrRows.Removed,
		RowsRemovedPctIQR:   iqrRows.RemovedPct,
	}

	metrics := &domain.Metrics{
		Meta: domain.Meta{
			GeneratedAtUTC: b.now().UTC().Format(time.RFC3339),
			SourceNotebook: sourceNotebook,
			SourceNote:     sourceNote,
			SourceProfile:  profileSourceFile(profileReport),
		},
		Summary:            summary,
		TopCorrelations:    topCorrelations,
		TopDrivers:         resolveDrivers(topDrivers, topCorrelations),
		TopNeighborhoods:   topNeighborhoods,
		TopNeighborhood:    firstNeighborhood(topNeighborhoodRows),
		TopMissingFeatures: missingFeatures,
		ProfileOverview:    profileReport,
		ManagerialSummary:  managerialSummary(),
		ChartFiles:         chartFiles,
	}

	b.logger.InfoContext(ctx, "metrics record built",
		slog.Int("correlation_rows", len(topCorrelations)),
		slog.Int("driver_count", len(metrics.TopDrivers)),
		slog.Int("neighborhood_rows", len(topNeighborhoods)),
		slog.Int("missing_feature_rows", len(missingFeatures)))

	return metrics
}

// resolveDrivers attaches correlations to driver names by exact lookup.
// A name absent from the correlation table keeps its slot with a null
// correlation rather than being dropped.
func resolveDrivers(drivers []string, correlations []domain.CorrelationRow) []domain.DriverDetail {
	corrByFeature := make(map[string]float64, len(correlations))
	for _, row := range correlations {
		corrByFeature[row.Feature] = row.Correlation
	}

	details := make([]domain.DriverDetail, 0, len(drivers))
	for _, feature := range drivers {
		detail := domain.DriverDetail{Feature: feature}
		if value, ok := corrByFeature[feature]; ok {
			v := value
			detail.Correlation = &v
		}
		details = append(details, detail)
	}
	return details
}

// profileSourceFile lifts the report filename, or nil when no report exists
func profileSourceFile(report *domain.ProfileReport) *string {
	if report == nil {
		return nil
	}
	name := report.Meta.SourceFile
	return &name
}

// firstNeighborhood returns the first parsed row, or nil for an empty parse
func firstNeighborhood(rows []domain.NeighborhoodRow) *domain.NeighborhoodRow {
	if len(rows) == 0 {
		return nil
	}
	row := rows[0]
	return &row
}

// managerialSummary is the fixed plain-English narrative for the overview
// panel; it is part of the published record, not computed from the inputs.
func managerialSummary() domain.ManagerialSummary {
	return domain.ManagerialSummary{
		TopDriversPlainEnglish: []string{
			"Quality, living area, and utility space are the strongest value levers.",
			"Log transform stabilizes SalePrice distribution for modeling.",
			"Neighborhood premium effects are strong and interpretable.",
		},
		Risks: []string{
			"High missing-rate fields often indicate absence of amenity, not random missingness.",
			"Rare category segments can overfit if not regularized.",
			"Untrimmed outliers can skew linear relationships.",
		},
		NextSteps: []string{
			"Engineer total space and age-based features.",
			"Encode none/absence categories explicitly for categorical fields.",
			"Benchmark regularized linear models, then compare with tree ensembles.",
		},
	}
}
