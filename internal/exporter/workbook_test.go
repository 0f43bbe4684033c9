package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookWriter_Write(t *testing.T) {
	paths := testPaths(t)
	writer := NewWorkbookWriter(nil, paths)

	require.NoError(t, writer.Write(context.Background(), sampleMetrics()))

	f, err := excelize.OpenFile(paths.MetricsWorkbook)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Summary", "Correlations", "Neighborhoods", "Missing Features"},
		f.GetSheetList())

	value, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total Rows", value)

	value, err = f.GetCellValue("Correlations", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Overall Qual", value)

	value, err = f.GetCellValue("Neighborhoods", "A2")
	require.NoError(t, err)
	assert.Equal(t, "NridgHt", value)
}
