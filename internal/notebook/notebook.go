package notebook

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"amesdash/internal/errors"
)

// nonASCII matches console formatting artifacts (box-drawing characters,
// unicode minus signs) that matplotlib/pandas leave in stream output.
var nonASCII = regexp.MustCompile(`[^\x00-\x7F]+`)

// Document is an executed notebook: an ordered list of cells with their
// captured outputs. It is read-only after loading.
type Document struct {
	Cells []Cell `json:"cells"`
}

// Cell is one executed unit of the notebook
type Cell struct {
	CellType string   `json:"cell_type"`
	Outputs  []Output `json:"outputs"`
}

// Output is one captured result attached to a cell. Stream outputs carry
// console text; rich outputs carry a mime-type keyed data map.
type Output struct {
	OutputType string              `json:"output_type"`
	Text       TextValue           `json:"text"`
	Data       map[string]TextValue `json:"data"`
}

// TextValue absorbs the notebook format's habit of storing text either as a
// single string or as a list of line fragments.
type TextValue string

// UnmarshalJSON joins list-form text into one string, matching how the
// notebook format is consumed everywhere else.
func (t *TextValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = TextValue(s)
		return nil
	}

	var parts []interface{}
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("text value is neither string nor list: %s", string(data))
	}

	var b strings.Builder
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			b.WriteString(v)
		default:
			fmt.Fprintf(&b, "%v", v)
		}
	}
	*t = TextValue(b.String())
	return nil
}

// Load reads and decodes a notebook document from disk. A missing or
// undecodable notebook is the one fatal condition in the pipeline.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("notebook " + path)
		}
		return nil, errors.NewStorageError("failed to read notebook", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewParsingError("failed to decode notebook document", err)
	}
	return &doc, nil
}

// cell returns the cell at index, or nil when the index is out of range.
// Out-of-range indices are treated as "no data", never as an error.
func (d *Document) cell(index int) *Cell {
	if index < 0 || index >= len(d.Cells) {
		return nil
	}
	return &d.Cells[index]
}

// StreamText returns the concatenated console-stream text captured at the
// given cell index, with non-ASCII artifacts stripped. Returns empty text
// when the cell has no stream output.
func (d *Document) StreamText(index int) string {
	cell := d.cell(index)
	if cell == nil {
		return ""
	}

	var b strings.Builder
	for _, output := range cell.Outputs {
		if output.OutputType == "stream" {
			b.WriteString(string(output.Text))
		}
	}
	return normalizeText(b.String())
}

// FirstTextPlain returns the first inline text/plain rendering captured at
// the given cell index, or empty text when none exists.
func (d *Document) FirstTextPlain(index int) string {
	cell := d.cell(index)
	if cell == nil {
		return ""
	}

	for _, output := range cell.Outputs {
		if text, ok := output.Data["text/plain"]; ok {
			return normalizeText(string(text))
		}
	}
	return ""
}

// PNG returns the first embedded PNG payload captured at the given cell
// index, base64-decoded, or nil when the cell rendered no image.
func (d *Document) PNG(index int) []byte {
	cell := d.cell(index)
	if cell == nil {
		return nil
	}

	for _, output := range cell.Outputs {
		encoded, ok := output.Data["image/png"]
		if !ok {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\n", ""))
		if err != nil {
			continue
		}
		return raw
	}
	return nil
}

// normalizeText strips non-ASCII characters left behind by console rendering
func normalizeText(text string) string {
	return nonASCII.ReplaceAllString(text, "")
}
