package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"amesdash/pkg/contracts/domain"
)

// Patterns for the fixed console layouts emitted by the upstream analysis
// tool. Numbers may carry thousands separators.
var (
	shapeRe      = regexp.MustCompile(`(?s)Shape:\s*([\d,]+)\s*rows.*?([\d,]+)\s*columns`)
	numFeatRe    = regexp.MustCompile(`Numerical features \((\d+)\)`)
	catFeatRe    = regexp.MustCompile(`Categorical features \((\d+)\)`)
	corrLineRe   = regexp.MustCompile(`^(.+?)\s+(-?\d+(?:\.\d+)?)$`)
	neighborRe   = regexp.MustCompile(`^(\S+)\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)\s+(\d+)$`)
	missingRe    = regexp.MustCompile(`^([A-Za-z0-9_]+)\s+(\d+)$`)
	byteSizeRe   = regexp.MustCompile(`(?i)^([\d.]+)\s*([KMG]?i?B)$`)
	driverItemRe = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)
)

var targetStatPatterns = map[string]*regexp.Regexp{
	"mean":     regexp.MustCompile(`Mean\s*:\s*([\d,\.]+)`),
	"median":   regexp.MustCompile(`Median\s*:\s*([\d,\.]+)`),
	"skew":     regexp.MustCompile(`Skewness\s*:\s*([\d,\.]+)`),
	"kurtosis": regexp.MustCompile(`Kurtosis\s*:\s*([\d,\.]+)`),
}

var iqrBoundPatterns = map[string]*regexp.Regexp{
	"q1":    regexp.MustCompile(`Q1\s*:\s*([\d,\.]+)`),
	"q3":    regexp.MustCompile(`Q3\s*:\s*([\d,\.]+)`),
	"iqr":   regexp.MustCompile(`IQR\s*:\s*([\d,\.]+)`),
	"lower": regexp.MustCompile(`Lower bound:\s*([\d,\.]+)`),
	"upper": regexp.MustCompile(`Upper bound:\s*([\d,\.]+)`),
}

var iqrRowPatterns = map[string]*regexp.Regexp{
	"before":      regexp.MustCompile(`Rows before IQR filtering\s*:\s*([\d,]+)`),
	"after":       regexp.MustCompile(`Rows after IQR filtering\s*:\s*([\d,]+)`),
	"removed":     regexp.MustCompile(`Rows removed as outliers\s*:\s*([\d,]+)`),
	"removed_pct": regexp.MustCompile(`% removed:\s*([\d\.]+)`),
}

// ParseNumber parses a numeric string with optional thousands separators.
// Empty or unparseable input yields nil, never an error.
func ParseNumber(value string) *float64 {
	clean := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if clean == "" {
		return nil
	}
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseSizeToBytes converts a human byte-size string to a byte count using
// binary (KiB, MiB, GiB) and decimal (KB, MB, GB) multipliers. Units above
// giga and any unrecognized unit yield nil.
func ParseSizeToBytes(value string) *float64 {
	clean := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if !byteSizeRe.MatchString(clean) {
		return nil
	}
	n, err := humanize.ParseBytes(clean)
	if err != nil {
		return nil
	}
	size := float64(n)
	return &size
}

// parseIntField parses an integer with optional thousands separators
func parseIntField(value string) *int {
	clean := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	n, err := strconv.Atoi(clean)
	if err != nil {
		return nil
	}
	return &n
}

// parseFloatField parses a float with optional thousands separators
func parseFloatField(value string) *float64 {
	return ParseNumber(value)
}

// findFloat applies a single-group pattern and parses the capture
func findFloat(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return parseFloatField(m[1])
}

// findInt applies a single-group pattern and parses the capture
func findInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return parseIntField(m[1])
}

// ParseShape extracts "Shape: <rows> rows ... <columns> columns" from the
// dataset overview output. Both values are nil when the label is absent.
func ParseShape(text string) (rows, columns *int) {
	m := shapeRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	return parseIntField(m[1]), parseIntField(m[2])
}

// ParseFeatureCounts extracts the numerical and categorical feature counts
func ParseFeatureCounts(text string) (numeric, categorical *int) {
	return findInt(numFeatRe, text), findInt(catFeatRe, text)
}

// TargetStats holds the target-variable statistics recovered from the
// notebook's describe output.
type TargetStats struct {
	Mean     *float64
	Median   *float64
	Skew     *float64
	Kurtosis *float64
}

// ParseTargetStats extracts Mean/Median/Skewness/Kurtosis labels; each field
// is independently best-effort.
func ParseTargetStats(text string) TargetStats {
	return TargetStats{
		Mean:     findFloat(targetStatPatterns["mean"], text),
		Median:   findFloat(targetStatPatterns["median"], text),
		Skew:     findFloat(targetStatPatterns["skew"], text),
		Kurtosis: findFloat(targetStatPatterns["kurtosis"], text),
	}
}

// IQRBounds holds the quartile bounds used for outlier trimming upstream
type IQRBounds struct {
	Q1         *float64
	Q3         *float64
	IQR        *float64
	LowerBound *float64
	UpperBound *float64
}

// ParseIQRBounds extracts the Q1/Q3/IQR and filter bounds
func ParseIQRBounds(text string) IQRBounds {
	return IQRBounds{
		Q1:         findFloat(iqrBoundPatterns["q1"], text),
		Q3:         findFloat(iqrBoundPatterns["q3"], text),
		IQR:        findFloat(iqrBoundPatterns["iqr"], text),
		LowerBound: findFloat(iqrBoundPatterns["lower"], text),
		UpperBound: findFloat(iqrBoundPatterns["upper"], text),
	}
}

// IQRRowCounts holds the row counts around the IQR outlier filter
type IQRRowCounts struct {
	Before     *int
	After      *int
	Removed    *int
	RemovedPct *float64
}

// ParseIQRRowCounts extracts the before/after/removed row counts and the
// removed percentage.
func ParseIQRRowCounts(text string) IQRRowCounts {
	return IQRRowCounts{
		Before:     findInt(iqrRowPatterns["before"], text),
		After:      findInt(iqrRowPatterns["after"], text),
		Removed:    findInt(iqrRowPatterns["removed"], text),
		RemovedPct: findFloat(iqrRowPatterns["removed_pct"], text),
	}
}

// ParseCorrelationTable extracts "<feature> <value>" rows from a rendered
// correlation series. Header and decorative lines do not match the column
// pattern and are silently skipped.
func ParseCorrelationTable(text string) []domain.CorrelationRow {
	rows := []domain.CorrelationRow{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, " \t\r"))
		if line == "" || strings.Contains(line, "Correlation with SalePrice") {
			continue
		}
		m := corrLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value := parseFloatField(m[2])
		if value == nil {
			continue
		}
		rows = append(rows, domain.CorrelationRow{
			Feature:     strings.TrimSpace(m[1]),
			Correlation: *value,
		})
	}
	return rows
}

// ParseDriverList interprets the text block as a literal list of quoted
// names, e.g. ['OverallQual', 'GrLivArea']. Any parse failure yields an
// empty list rather than an error.
func ParseDriverList(text string) []string {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return []string{}
	}
	if !strings.HasPrefix(stripped, "[") || !strings.HasSuffix(stripped, "]") {
		return []string{}
	}

	inner := strings.TrimSpace(stripped[1 : len(stripped)-1])
	if inner == "" {
		return []string{}
	}

	items := []string{}
	for _, m := range driverItemRe.FindAllStringSubmatch(inner, -1) {
		// The opening quote of the match decides which capture holds the
		// name; the other capture is empty even for quoted empty strings.
		if strings.HasPrefix(m[0], "'") {
			items = append(items, m[1])
		} else {
			items = append(items, m[2])
		}
	}
	return items
}

// ParseNeighborhoodTable extracts "<name> <mean> <median> <count>" rows from
// a rendered groupby table. The "mean"/"Neighborhood" header lines and any
// line failing the column pattern are skipped.
func ParseNeighborhoodTable(text string) []domain.NeighborhoodRow {
	rows := []domain.NeighborhoodRow{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "mean") || strings.HasPrefix(line, "Neighborhood") {
			continue
		}
		m := neighborRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		mean := parseFloatField(m[2])
		median := parseFloatField(m[3])
		count := parseIntField(m[4])
		if mean == nil || median == nil || count == nil {
			continue
		}
		rows = append(rows, domain.NeighborhoodRow{
			Neighborhood:    m[1],
			MeanSalePrice:   *mean,
			MedianSalePrice: *median,
			Count:           *count,
		})
	}
	return rows
}

// ParseMissingTable extracts "<feature> <count>" rows from a rendered
// missing-count series. The missing percentage is recomputed only when the
// post-filter row count is present and positive.
func ParseMissingTable(text string, rowsAfterIQR *int) []domain.MissingFeature {
	rows := []domain.MissingFeature{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "dtype:") {
			continue
		}
		m := missingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		count := parseIntField(m[2])
		if count == nil {
			continue
		}

		var missingPct *float64
		if rowsAfterIQR != nil && *rowsAfterIQR > 0 {
			pct := math.Round(float64(*count)/float64(*rowsAfterIQR)*100*100) / 100
			missingPct = &pct
		}
		rows = append(rows, domain.MissingFeature{
			Feature:      m[1],
			MissingCount: *count,
			MissingPct:   missingPct,
		})
	}
	return rows
}
