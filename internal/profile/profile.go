package profile

import (
	"context"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"amesdash/internal/dataprocessing"
	"amesdash/internal/errors"
	"amesdash/pkg/contracts/domain"
)

// Fixed markup fragments of the upstream profiling tool's HTML layout. The
// layout is incidental, not contractual: any fragment that fails to match
// degrades to an empty section.
var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	metaDateRe   = regexp.MustCompile(`<meta content="([^"]+)" name=date>`)
	statsBlockRe = regexp.MustCompile(`(?s)Dataset statistics<table class="table table-striped"><tbody>(.*?)</table>`)
	typesBlockRe = regexp.MustCompile(`(?s)Variable types<table class="table table-striped"><tbody>(.*?)</table>`)
	alertCountRe = regexp.MustCompile(`Alerts <span class="badge text-bg-secondary align-text-top">(\d+)</span>`)
	alertBlockRe = regexp.MustCompile(`(?s)<p class="h4 item-header">Alerts</p>(.*?)</table></div></div></div><div class="tab-pane fade" aria-labelledby=tab-pane-overview-reproduction`)
	tableRowRe   = regexp.MustCompile(`(?s)^<th>(.*?)<td[^>]*>(.*)$`)
	alertRowRe   = regexp.MustCompile(`(?s)<tr><td><a href=#pp_var_[^>]+><code>(.*?)</code></a>\s*(.*?)<td><span class="badge [^"]+">(.*?)</span>`)

	missingAlertRe   = regexp.MustCompile(`has\s+([\d,]+)\s+\(([\d\.]+)%\)\s+missing values`)
	zeroAlertRe      = regexp.MustCompile(`has\s+([\d,]+)\s+\(([\d\.]+)%\)\s+zeros`)
	imbalanceAlertRe = regexp.MustCompile(`\(([\d\.]+)%\)`)
)

// Reader extracts the profile overview from a statistical-profile HTML
// report.
type Reader struct {
	logger    *slog.Logger
	maxRanked int
}

// NewReader creates a profile reader. maxRanked caps the ranked alert lists;
// non-positive values fall back to 15.
func NewReader(logger *slog.Logger, maxRanked int) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if maxRanked <= 0 {
		maxRanked = 15
	}
	return &Reader{logger: logger, maxRanked: maxRanked}
}

// Parse reads the report at path and recovers every extractable section.
// Only the file read itself can fail; all fragment and field extraction is
// best-effort.
func (r *Reader) Parse(ctx context.Context, path string) (*domain.ProfileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to read profile report", err)
	}
	text := string(data)

	report := &domain.ProfileReport{
		Meta: domain.ProfileMeta{
			SourceFile:        filepath.Base(path),
			ReportGeneratedAt: matchString(metaDateRe, text),
		},
	}

	statsRaw := parseTableBlock(statsBlockRe, text)
	typesRaw := parseTableBlock(typesBlockRe, text)

	report.DatasetStatistics = domain.DatasetStatistics{
		NumberOfVariables:    dataprocessing.ParseNumber(statsRaw["number_of_variables"]),
		NumberOfObservations: dataprocessing.ParseNumber(statsRaw["number_of_observations"]),
		MissingCells:         dataprocessing.ParseNumber(statsRaw["missing_cells"]),
		MissingCellsPct:      dataprocessing.ParseNumber(strings.ReplaceAll(statsRaw["missing_cells_pct"], "%", "")),
		TotalMemorySizeText:  lookupString(statsRaw, "total_size_in_memory"),
		TotalMemorySizeBytes: dataprocessing.ParseSizeToBytes(statsRaw["total_size_in_memory"]),
		AvgRecordSizeText:    lookupString(statsRaw, "average_record_size_in_memory"),
		AvgRecordSizeBytes:   dataprocessing.ParseSizeToBytes(statsRaw["average_record_size_in_memory"]),
	}
	report.VariableTypes = domain.VariableTypes{
		Numeric:     dataprocessing.ParseNumber(typesRaw["numeric"]),
		Categorical: dataprocessing.ParseNumber(typesRaw["categorical"]),
		Boolean:     dataprocessing.ParseNumber(typesRaw["boolean"]),
	}

	if m := alertCountRe.FindStringSubmatch(text); m != nil {
		if n := dataprocessing.ParseNumber(m[1]); n != nil {
			report.AlertCount = int(*n)
		}
	}

	alerts := parseAlertRows(alertBlockRe, text)
	report.Alerts = alerts
	report.AlertTypeCounts = countAlertTypes(alerts)
	report.TopMissingAlerts = r.rankMissingAlerts(alerts)
	report.TopZeroAlerts = r.rankZeroAlerts(alerts)
	report.TopImbalanceAlerts = r.rankImbalanceAlerts(alerts)

	r.logger.InfoContext(ctx, "profile report parsed",
		slog.String("source_file", report.Meta.SourceFile),
		slog.Int("alert_count", report.AlertCount),
		slog.Int("alert_rows", len(alerts)))

	return report, nil
}

// stripTags removes markup, decodes HTML entities, and collapses whitespace
func stripTags(text string) string {
	text = tagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, " ", " ")
	return strings.Join(strings.Fields(text), " ")
}

// normalizeKey turns a table label into a lookup key: lowercased, spaces to
// underscores, a literal "(%)" suffix normalized to "pct".
func normalizeKey(label string) string {
	key := strings.ToLower(stripTags(label))
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ReplaceAll(key, "(%)", "pct")
}

// parseTableBlock locates one table fragment and extracts its label/value
// rows. Rows run from each <tr> to the next one; the th/td split inside a
// row must match or the row is skipped.
func parseTableBlock(blockRe *regexp.Regexp, text string) map[string]string {
	rows := make(map[string]string)
	block := blockRe.FindStringSubmatch(text)
	if block == nil {
		return rows
	}

	for _, segment := range strings.Split(block[1], "<tr>")[1:] {
		m := tableRowRe.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		rows[normalizeKey(m[1])] = stripTags(m[2])
	}
	return rows
}

// parseAlertRows extracts the (feature, message, category) alert tuples from
// the alerts table fragment.
func parseAlertRows(blockRe *regexp.Regexp, text string) []domain.Alert {
	alerts := []domain.Alert{}
	block := blockRe.FindStringSubmatch(text)
	if block == nil {
		return alerts
	}

	for _, m := range alertRowRe.FindAllStringSubmatch(block[1], -1) {
		alerts = append(alerts, domain.Alert{
			Feature: stripTags(m[1]),
			Message: stripTags(m[2]),
			Type:    stripTags(m[3]),
		})
	}
	return alerts
}

// countAlertTypes tallies alerts per category label
func countAlertTypes(alerts []domain.Alert) map[string]int {
	counts := make(map[string]int)
	for _, alert := range alerts {
		counts[alert.Type]++
	}
	return counts
}

// parseMissingAlert pulls the structured count/percentage detail out of a
// Missing alert's free-text message. Non-match yields nil; the alert stays
// in the raw list but is excluded from the ranked list.
func parseMissingAlert(alert domain.Alert) *domain.MissingAlert {
	if alert.Type != "Missing" {
		return nil
	}
	m := missingAlertRe.FindStringSubmatch(alert.Message)
	if m == nil {
		return nil
	}
	count := dataprocessing.ParseNumber(m[1])
	pct := dataprocessing.ParseNumber(m[2])
	if count == nil || pct == nil {
		return nil
	}
	return &domain.MissingAlert{
		Feature:      alert.Feature,
		MissingCount: int(*count),
		MissingPct:   *pct,
		Message:      alert.Message,
	}
}

// parseZeroAlert pulls the structured detail out of a Zeros alert message
func parseZeroAlert(alert domain.Alert) *domain.ZeroAlert {
	if alert.Type != "Zeros" {
		return nil
	}
	m := zeroAlertRe.FindStringSubmatch(alert.Message)
	if m == nil {
		return nil
	}
	count := dataprocessing.ParseNumber(m[1])
	pct := dataprocessing.ParseNumber(m[2])
	if count == nil || pct == nil {
		return nil
	}
	return &domain.ZeroAlert{
		Feature:   alert.Feature,
		ZeroCount: int(*count),
		ZeroPct:   *pct,
		Message:   alert.Message,
	}
}

// parseImbalanceAlert pulls the dominant share out of an Imbalance alert
func parseImbalanceAlert(alert domain.Alert) *domain.ImbalanceAlert {
	if alert.Type != "Imbalance" {
		return nil
	}
	m := imbalanceAlertRe.FindStringSubmatch(alert.Message)
	if m == nil {
		return nil
	}
	pct := dataprocessing.ParseNumber(m[1])
	if pct == nil {
		return nil
	}
	return &domain.ImbalanceAlert{
		Feature:     alert.Feature,
		DominantPct: *pct,
		Message:     alert.Message,
	}
}

// rankMissingAlerts builds the missing-value ranking: descending by
// percentage, stable on ties, truncated to maxRanked.
func (r *Reader) rankMissingAlerts(alerts []domain.Alert) []domain.MissingAlert {
	rows := []domain.MissingAlert{}
	for _, alert := range alerts {
		if row := parseMissingAlert(alert); row != nil {
			rows = append(rows, *row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].MissingPct > rows[j].MissingPct })
	return truncateMissing(rows, r.maxRanked)
}

// rankZeroAlerts builds the zero-heavy ranking
func (r *Reader) rankZeroAlerts(alerts []domain.Alert) []domain.ZeroAlert {
	rows := []domain.ZeroAlert{}
	for _, alert := range alerts {
		if row := parseZeroAlert(alert); row != nil {
			rows = append(rows, *row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ZeroPct > rows[j].ZeroPct })
	return truncateZero(rows, r.maxRanked)
}

// rankImbalanceAlerts builds the imbalanced-feature ranking
func (r *Reader) rankImbalanceAlerts(alerts []domain.Alert) []domain.ImbalanceAlert {
	rows := []domain.ImbalanceAlert{}
	for _, alert := range alerts {
		if row := parseImbalanceAlert(alert); row != nil {
			rows = append(rows, *row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DominantPct > rows[j].DominantPct })
	return truncateImbalance(rows, r.maxRanked)
}

func truncateMissing(rows []domain.MissingAlert, max int) []domain.MissingAlert {
	if len(rows) > max {
		return rows[:max]
	}
	return rows
}

func truncateZero(rows []domain.ZeroAlert, max int) []domain.ZeroAlert {
	if len(rows) > max {
		return rows[:max]
	}
	return rows
}

func truncateImbalance(rows []domain.ImbalanceAlert, max int) []domain.ImbalanceAlert {
	if len(rows) > max {
		return rows[:max]
	}
	return rows
}

// matchString returns the first capture of a single-group pattern, or nil
func matchString(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	s := m[1]
	return &s
}

// lookupString returns a pointer to a map value, or nil for a missing key
func lookupString(values map[string]string, key string) *string {
	value, ok := values[key]
	if !ok {
		return nil
	}
	return &value
}
