package domain

// Metrics is the aggregated record published for the dashboard front-end.
// Top-level keys are fixed; nullable fields are pointers so absent values
// serialize as JSON null rather than disappearing from the schema.
type Metrics struct {
	Meta               Meta              `json:"meta"`
	Summary            Summary           `json:"summary"`
	TopCorrelations    []CorrelationRow  `json:"top_correlations"`
	TopDrivers         []DriverDetail    `json:"top_drivers"`
	TopNeighborhoods   []NeighborhoodRow `json:"top_neighborhoods"`
	TopNeighborhood    *NeighborhoodRow  `json:"top_neighborhood"`
	TopMissingFeatures []MissingFeature  `json:"top_missing_features"`
	ProfileOverview    *ProfileReport    `json:"profile_overview"`
	ManagerialSummary  ManagerialSummary `json:"managerial_summary"`
	ChartFiles         map[string]string `json:"chart_files"`
}

// Meta describes the provenance of one build run
type Meta struct {
	GeneratedAtUTC string  `json:"generated_at_utc"`
	SourceNotebook string  `json:"source_notebook"`
	SourceNote     string  `json:"source_note"`
	SourceProfile  *string `json:"source_profile"`
}

// Summary holds the headline dataset and target statistics recovered from
// the notebook's console output. Every field is best-effort.
type Summary struct {
	TotalRows           *int     `json:"total_rows"`
	TotalColumns        *int     `json:"total_columns"`
	NumericFeatures     *int     `json:"numeric_features"`
	CategoricalFeatures *int     `json:"categorical_features"`
	MeanSalePrice       *float64 `json:"mean_saleprice"`
	MedianSalePrice     *float64 `json:"median_saleprice"`
	SalePriceSkew       *float64 `json:"saleprice_skew"`
	SalePriceKurtosis   *float64 `json:"saleprice_kurtosis"`
	Q1                  *float64 `json:"q1"`
	Q3                  *float64 `json:"q3"`
	IQRValue            *float64 `json:"iqr_value"`
	IQRLowerBound       *float64 `json:"iqr_lower_bound"`
	IQRUpperBound       *float64 `json:"iqr_upper_bound"`
	RowsBeforeIQR       *int     `json:"rows_before_iqr"`
	RowsAfterIQR        *int     `json:"rows_after_iqr"`
	RowsRemovedIQR      *int     `json:"rows_removed_iqr"`
	RowsRemovedPctIQR   *float64 `json:"rows_removed_pct_iqr"`
}

// CorrelationRow is one feature's correlation with the prediction target
type CorrelationRow struct {
	Feature     string  `json:"feature"`
	Correlation float64 `json:"correlation"`
}

// DriverDetail is a driver feature with its correlation resolved by name
// lookup; the correlation is null when the feature is absent from the
// correlation table.
type DriverDetail struct {
	Feature     string   `json:"feature"`
	Correlation *float64 `json:"correlation"`
}

// NeighborhoodRow is one neighborhood's price summary
type NeighborhoodRow struct {
	Neighborhood    string  `json:"neighborhood"`
	MeanSalePrice   float64 `json:"mean_saleprice"`
	MedianSalePrice float64 `json:"median_saleprice"`
	Count           int     `json:"count"`
}

// MissingFeature is one feature's missing-value summary; the percentage is
// only present when the post-filter row count was recoverable.
type MissingFeature struct {
	Feature      string   `json:"feature"`
	MissingCount int      `json:"missing_count"`
	MissingPct   *float64 `json:"missing_pct"`
}

// ManagerialSummary carries the fixed plain-English narrative shown on the
// dashboard's overview panel.
type ManagerialSummary struct {
	TopDriversPlainEnglish []string `json:"top_drivers_plain_english"`
	Risks                  []string `json:"risks"`
	NextSteps              []string `json:"next_steps"`
}
