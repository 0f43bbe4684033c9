package domain

// ProfileReport is everything recovered from the HTML statistical-profile
// report. The whole struct is null in the output when no report exists.
type ProfileReport struct {
	Meta               ProfileMeta       `json:"meta"`
	DatasetStatistics  DatasetStatistics `json:"dataset_statistics"`
	VariableTypes      VariableTypes     `json:"variable_types"`
	AlertCount         int               `json:"alert_count"`
	AlertTypeCounts    map[string]int    `json:"alert_type_counts"`
	TopMissingAlerts   []MissingAlert    `json:"top_missing_alerts"`
	TopZeroAlerts      []ZeroAlert       `json:"top_zero_alerts"`
	TopImbalanceAlerts []ImbalanceAlert  `json:"top_imbalance_alerts"`
	Alerts             []Alert           `json:"alerts"`
}

// ProfileMeta identifies the source report
type ProfileMeta struct {
	SourceFile        string  `json:"source_file"`
	ReportGeneratedAt *string `json:"report_generated_at"`
}

// DatasetStatistics mirrors the report's "Dataset statistics" table
type DatasetStatistics struct {
	NumberOfVariables    *float64 `json:"number_of_variables"`
	NumberOfObservations *float64 `json:"number_of_observations"`
	MissingCells         *float64 `json:"missing_cells"`
	MissingCellsPct      *float64 `json:"missing_cells_pct"`
	TotalMemorySizeText  *string  `json:"total_memory_size_text"`
	TotalMemorySizeBytes *float64 `json:"total_memory_size_bytes"`
	AvgRecordSizeText    *string  `json:"average_record_size_text"`
	AvgRecordSizeBytes   *float64 `json:"average_record_size_bytes"`
}

// VariableTypes mirrors the report's "Variable types" table
type VariableTypes struct {
	Numeric     *float64 `json:"numeric"`
	Categorical *float64 `json:"categorical"`
	Boolean     *float64 `json:"boolean"`
}

// Alert is one flagged data-quality observation about a feature. Type is an
// open-ended category label ("Missing", "Zeros", "Imbalance", ...) that
// routes the alert into a specialized sub-parser.
type Alert struct {
	Feature string `json:"feature"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// MissingAlert is a Missing alert with its structured detail recovered
type MissingAlert struct {
	Feature      string  `json:"feature"`
	MissingCount int     `json:"missing_count"`
	MissingPct   float64 `json:"missing_pct"`
	Message      string  `json:"message"`
}

// ZeroAlert is a Zeros alert with its structured detail recovered
type ZeroAlert struct {
	Feature   string  `json:"feature"`
	ZeroCount int     `json:"zero_count"`
	ZeroPct   float64 `json:"zero_pct"`
	Message   string  `json:"message"`
}

// ImbalanceAlert is an Imbalance alert with its dominant share recovered
type ImbalanceAlert struct {
	Feature     string  `json:"feature"`
	DominantPct float64 `json:"dominant_pct"`
	Message     string  `json:"message"`
}
