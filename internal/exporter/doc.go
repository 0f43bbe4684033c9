// Package exporter writes the build outputs consumed by the dashboard:
// chart images extracted from notebook cells, the metrics record as JSON
// and as a script-embedded global, and an optional Excel workbook.
//
// All writers take the shared path set from the config package so every
// artifact lands under the same web assets tree. Chart export is
// best-effort per cell; writers only fail on storage errors.
package exporter
