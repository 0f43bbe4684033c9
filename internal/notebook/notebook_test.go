package notebook

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amesdash/internal/errors"
)

const sampleNotebook = `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Title"]},
    {
      "cell_type": "code",
      "outputs": [
        {"output_type": "stream", "name": "stdout", "text": ["Shape: 1,460 rows ", "x 81 columns\n"]},
        {"output_type": "stream", "name": "stdout", "text": "tail\n"}
      ]
    },
    {
      "cell_type": "code",
      "outputs": [
        {"output_type": "execute_result", "data": {"text/plain": ["OverallQual    0.79\n", "GrLivArea      0.71"]}},
        {"output_type": "execute_result", "data": {"text/plain": "second result"}}
      ]
    },
    {
      "cell_type": "code",
      "outputs": [
        {"output_type": "display_data", "data": {"image/png": "aGVs\nbG8="}}
      ]
    },
    {"cell_type": "code", "outputs": []}
  ]
}`

func writeNotebook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "House-Price.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	doc, err := Load(writeNotebook(t, sampleNotebook))
	require.NoError(t, err)
	assert.Len(t, doc.Cells, 5)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ipynb"))
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrTypeNotFound, appErr.Type)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeNotebook(t, "{not json"))
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrTypeParsing, appErr.Type)
}

func TestStreamText(t *testing.T) {
	doc, err := Load(writeNotebook(t, sampleNotebook))
	require.NoError(t, err)

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"concatenates all stream outputs", 1, "Shape: 1,460 rows x 81 columns\ntail\n"},
		{"cell without stream output", 2, ""},
		{"cell with no outputs", 4, ""},
		{"index out of range", 99, ""},
		{"negative index", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.StreamText(tt.index))
		})
	}
}

func TestStreamText_StripsNonASCII(t *testing.T) {
	nb := `{"cells":[{"cell_type":"code","outputs":[{"output_type":"stream","text":"Mean : 180,921—done\n"}]}]}`
	doc, err := Load(writeNotebook(t, nb))
	require.NoError(t, err)

	assert.Equal(t, "Mean: 180,921done\n", doc.StreamText(0))
}

func TestFirstTextPlain(t *testing.T) {
	doc, err := Load(writeNotebook(t, sampleNotebook))
	require.NoError(t, err)

	// First matching output wins
	assert.Equal(t, "OverallQual    0.79\nGrLivArea      0.71", doc.FirstTextPlain(2))
	assert.Empty(t, doc.FirstTextPlain(1))
	assert.Empty(t, doc.FirstTextPlain(42))
}

func TestPNG(t *testing.T) {
	doc, err := Load(writeNotebook(t, sampleNotebook))
	require.NoError(t, err)

	// "aGVs\nbG8=" decodes to "hello" once the embedded newline is removed
	assert.Equal(t, []byte("hello"), doc.PNG(3))
	assert.Nil(t, doc.PNG(1))
	assert.Nil(t, doc.PNG(99))
}

func TestPNG_InvalidBase64(t *testing.T) {
	nb := `{"cells":[{"cell_type":"code","outputs":[{"output_type":"display_data","data":{"image/png":"!!!not-base64!!!"}}]}]}`
	doc, err := Load(writeNotebook(t, nb))
	require.NoError(t, err)

	assert.Nil(t, doc.PNG(0))
}

func TestTextValue_NonStringFragments(t *testing.T) {
	nb := `{"cells":[{"cell_type":"code","outputs":[{"output_type":"stream","text":["count ", 42]}]}]}`
	doc, err := Load(writeNotebook(t, nb))
	require.NoError(t, err)

	assert.Equal(t, "count 42", doc.StreamText(0))
}

func TestPNGRoundTrip(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00}
	nb := `{"cells":[{"cell_type":"code","outputs":[{"output_type":"display_data","data":{"image/png":"` +
		base64.StdEncoding.EncodeToString(payload) + `"}}]}]}`

	doc, err := Load(writeNotebook(t, nb))
	require.NoError(t, err)
	assert.Equal(t, payload, doc.PNG(0))
}
