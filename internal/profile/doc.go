// Package profile extracts the dataset-level overview from a static HTML
// statistical-profile report: headline statistics, variable types, and
// data-quality alerts with their category-specific detail.
//
// Table fragments are located by the literal markup the upstream profiling
// tool emits. The markup layout is incidental and may shift between tool
// versions, so every fragment, row, and field is best-effort: a non-match
// yields an empty section or a nil field, never an error. Only reading the
// report file itself can fail.
package profile
