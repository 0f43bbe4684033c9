package config

// Application constants - all hardcoded values for the dashboard asset builder
const (
	// Application Info
	AppName    = "Ames Dashboard Builder"
	AppVersion = "1.2.0"

	// Source artifacts (relative to executable)
	DefaultNotebookFile = "House-Price.ipynb"
	DefaultMockupFile   = "image.png"

	// Output layout (relative to the web root)
	DefaultWebDir    = "web"
	DefaultChartsDir = "assets/charts"
	DefaultDataDir   = "assets/data"
	DefaultJSDir     = "assets/js"
	DefaultLogsDir   = "logs"

	// Well-known output files
	MetricsJSONFile     = "metrics.json"
	MetricsJSFile       = "metrics.js"
	MetricsWorkbookFile = "metrics.xlsx"
	MockupChartFile     = "dashboard_mockup.png"

	// Identifier the script-embedded metrics copy is assigned to
	MetricsGlobalName = "window.dashboardMetrics"
)

// ProfileCandidates are the profile report filenames probed in order; the
// first one that exists next to the notebook wins.
var ProfileCandidates = []string{
	"ames_house_prices_profile.html",
	"house_profile_compact.html",
}
