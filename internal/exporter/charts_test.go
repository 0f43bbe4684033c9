package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amesdash/internal/config"
	"amesdash/internal/notebook"
)

// imageDoc builds an in-memory notebook with base64 PNG payloads at the
// given cell indices.
func imageDoc(t *testing.T, indices ...int) *notebook.Document {
	t.Helper()

	doc := &notebook.Document{Cells: make([]notebook.Cell, 50)}
	for _, index := range indices {
		doc.Cells[index] = notebook.Cell{
			CellType: "code",
			Outputs: []notebook.Output{
				{
					OutputType: "display_data",
					Data: map[string]notebook.TextValue{
						"image/png": "aGVsbG8=",
					},
				},
			},
		}
	}
	return doc
}

func testPaths(t *testing.T) *config.Paths {
	t.Helper()

	paths := config.PathsFrom(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())
	return paths
}

func TestChartExporter_Export(t *testing.T) {
	paths := testPaths(t)
	exporter := NewChartExporter(nil, paths)

	doc := imageDoc(t, 15, 31)
	chartFiles, err := exporter.Export(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"saleprice_distribution":   "assets/charts/saleprice_distribution.png",
		"correlation_heatmap_full": "assets/charts/correlation_heatmap_full.png",
	}, chartFiles)

	data, err := os.ReadFile(paths.GetChartPath("saleprice_distribution.png"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestChartExporter_Export_SkipsCellsWithoutImages(t *testing.T) {
	paths := testPaths(t)
	exporter := NewChartExporter(nil, paths)

	chartFiles, err := exporter.Export(context.Background(), &notebook.Document{})
	require.NoError(t, err)
	assert.Empty(t, chartFiles)

	entries, err := os.ReadDir(paths.ChartsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestChartExporter_Export_CopiesMockup(t *testing.T) {
	paths := testPaths(t)
	require.NoError(t, os.WriteFile(paths.MockupFile, []byte("mockup-bytes"), 0644))

	exporter := NewChartExporter(nil, paths)
	chartFiles, err := exporter.Export(context.Background(), &notebook.Document{})
	require.NoError(t, err)

	assert.Equal(t, "assets/charts/dashboard_mockup.png", chartFiles["dashboard_mockup"])

	data, err := os.ReadFile(filepath.Join(paths.ChartsDir, config.MockupChartFile))
	require.NoError(t, err)
	assert.Equal(t, "mockup-bytes", string(data))
}

func TestChartCells_FilenamesAreUnique(t *testing.T) {
	seen := make(map[string]int, len(ChartCells))
	for index, filename := range ChartCells {
		if prev, ok := seen[filename]; ok {
			t.Fatalf("filename %q mapped from both cell %d and cell %d", filename, prev, index)
		}
		seen[filename] = index
	}
}
