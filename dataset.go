package pbidoc

import (
	"fmt"
	"strconv"
)

// Dataset names used by renderers to identify the three report sections.
const (
	DatasetPages   = "pages"
	DatasetVisuals = "visuals"
	DatasetColumns = "columns"
)

// Column describes one field of a Dataset.
type Column struct {
	// Key is the stable machine name (snake_case), used for storage.
	Key string `json:"key"`

	// Header is the human-readable label shown in rendered reports.
	Header string `json:"header"`
}

// Dataset is an ordered collection of records sharing the same columns.
// It is the interchange format between extractors and renderers.
type Dataset struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Append adds a row. The number of values must match the number of columns.
func (d *Dataset) Append(values ...any) error {
	if len(values) != len(d.Columns) {
		return Errorf(EINVALID, "dataset %s: row has %d values, want %d", d.Name, len(values), len(d.Columns))
	}
	d.Rows = append(d.Rows, values)
	return nil
}

// Headers returns the display header of every column.
func (d *Dataset) Headers() []string {
	headers := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		headers[i] = c.Header
	}
	return headers
}

// Strings returns every row with its values formatted by FormatValue.
func (d *Dataset) Strings() [][]string {
	out := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatValue(v)
		}
		out[i] = cells
	}
	return out
}

// FormatValue formats a dataset value for display.
// Booleans render as Yes/No and nil renders as an empty string.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// NewPageDataset builds the page list dataset.
func NewPageDataset(pages []PageRecord) *Dataset {
	d := &Dataset{
		Name:    DatasetPages,
		Title:   "Pages",
		Columns: []Column{{Key: "page_name", Header: "Page"}},
		Rows:    make([][]any, 0, len(pages)),
	}
	for _, p := range pages {
		d.Rows = append(d.Rows, []any{p.PageName})
	}
	return d
}

// NewVisualDataset builds the visual inventory dataset.
func NewVisualDataset(visuals []VisualRecord) *Dataset {
	d := &Dataset{
		Name:  DatasetVisuals,
		Title: "Visuals",
		Columns: []Column{
			{Key: "page_name", Header: "Page"},
			{Key: "x", Header: "X"},
			{Key: "y", Header: "Y"},
			{Key: "height", Header: "Height"},
			{Key: "width", Header: "Width"},
			{Key: "visual_type", Header: "Visual Type"},
			{Key: "measures_used", Header: "Measures Used"},
		},
		Rows: make([][]any, 0, len(visuals)),
	}
	for _, v := range visuals {
		d.Rows = append(d.Rows, []any{v.PageName, v.X, v.Y, v.Height, v.Width, v.VisualType, v.MeasuresUsed})
	}
	return d
}

// NewColumnDataset builds the table/column schema dataset.
func NewColumnDataset(columns []ColumnRecord) *Dataset {
	d := &Dataset{
		Name:  DatasetColumns,
		Title: "Tables",
		Columns: []Column{
			{Key: "table_name", Header: "Table"},
			{Key: "column_name", Header: "Column"},
			{Key: "data_type", Header: "Data Type"},
			{Key: "is_calculated", Header: "Calculated Column?"},
		},
		Rows: make([][]any, 0, len(columns)),
	}
	for _, c := range columns {
		d.Rows = append(d.Rows, []any{c.TableName, c.ColumnName, c.DataType, c.IsCalculated})
	}
	return d
}
