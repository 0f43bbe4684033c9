package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	WebDir        string
	ChartsDir     string
	DataDir       string
	JSDir         string
	LogsDir       string

	// Source artifacts (produced upstream, read-only here)
	NotebookFile string
	MockupFile   string

	// Well-known output files
	MetricsJSON     string
	MetricsJS       string
	MetricsWorkbook string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the current
// working directory.
//
// Directory structure:
//
//	dist/
//	  ├── House-Price.ipynb            (executed notebook, produced upstream)
//	  ├── ames_house_prices_profile.html (optional profile report)
//	  ├── image.png                    (optional dashboard mockup)
//	  ├── logs/
//	  └── web/
//	      └── assets/
//	          ├── charts/              (extracted chart PNGs)
//	          ├── data/                (metrics.json, metrics.xlsx)
//	          └── js/                  (metrics.js)
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return PathsFrom(filepath.Dir(exe)), nil
}

// PathsFrom builds the path set rooted at the given base directory. Used
// directly by tests and by commands that accept an explicit working root.
func PathsFrom(baseDir string) *Paths {
	webDir := filepath.Join(baseDir, DefaultWebDir)
	return NewPathsForWebRoot(baseDir, webDir)
}

// NewPathsForWebRoot builds the path set with an explicit web root, keeping
// source artifacts next to the base directory. This backs the -out flag.
func NewPathsForWebRoot(baseDir, webDir string) *Paths {
	chartsDir := filepath.Join(webDir, filepath.FromSlash(DefaultChartsDir))
	dataDir := filepath.Join(webDir, filepath.FromSlash(DefaultDataDir))
	jsDir := filepath.Join(webDir, filepath.FromSlash(DefaultJSDir))

	return &Paths{
		ExecutableDir: baseDir,
		WebDir:        webDir,
		ChartsDir:     chartsDir,
		DataDir:       dataDir,
		JSDir:         jsDir,
		LogsDir:       filepath.Join(baseDir, DefaultLogsDir),

		NotebookFile: filepath.Join(baseDir, DefaultNotebookFile),
		MockupFile:   filepath.Join(baseDir, DefaultMockupFile),

		MetricsJSON:     filepath.Join(dataDir, MetricsJSONFile),
		MetricsJS:       filepath.Join(jsDir, MetricsJSFile),
		MetricsWorkbook: filepath.Join(dataDir, MetricsWorkbookFile),
	}
}

// EnsureDirectories creates all output directories if they do not exist.
// Source artifacts are never created here; they are produced upstream.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.WebDir,
		p.ChartsDir,
		p.DataDir,
		p.JSDir,
		p.LogsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FindProfileReport probes the profile report candidates in order and returns
// the first existing path. The boolean is false when none exists, which is an
// expected condition and not an error.
func (p *Paths) FindProfileReport() (string, bool) {
	for _, name := range ProfileCandidates {
		candidate := filepath.Join(p.ExecutableDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// GetLogPath returns the full path for a log file in the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetChartPath returns the full path for a chart file in the charts directory
func (p *Paths) GetChartPath(filename string) string {
	return filepath.Join(p.ChartsDir, filename)
}
