// Package notebook reads executed notebook documents and extracts raw
// payloads from cell outputs by position: console-stream text, inline
// text/plain renderings, and embedded PNG images.
//
// The package never computes anything from the notebook - it only recovers
// already-captured output. Absent payloads (missing cell, missing output
// kind) yield empty values, not errors, because callers address cells by
// fixed positions that are not contractually guaranteed to exist.
package notebook
