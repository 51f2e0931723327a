package pbidoc

import (
	"encoding/json"
	"strings"
)

// NoMeasuresUsed is reported in place of an empty measure list.
const NoMeasuresUsed = "no measures used"

// ReservedTablePrefixes name the auto-generated date tables that Power BI
// adds to a model. Tables whose name starts with one of them are not documented.
var ReservedTablePrefixes = []string{"DateTableTemplate", "LocalDateTable"}

// CalculatedColumnTypes are the column type markers of formula-derived columns.
var CalculatedColumnTypes = []string{"calculatedTableColumn", "calculated"}

// PageRecord describes one report page.
type PageRecord struct {
	PageName string `json:"page_name"`
}

// VisualRecord describes one visual placed on a report page.
type VisualRecord struct {
	PageName     string   `json:"page_name"`
	X            int      `json:"x"`
	Y            int      `json:"y"`
	Height       int      `json:"height"`
	Width        int      `json:"width"`
	VisualType   string   `json:"visual_type"`
	MeasuresUsed Measures `json:"measures_used"`
}

// Measures is the ordered list of query references bound to a visual.
// Duplicates are kept.
type Measures []string

// String joins the references, or returns NoMeasuresUsed when there are none.
func (m Measures) String() string {
	if len(m) == 0 {
		return NoMeasuresUsed
	}
	return strings.Join(m, ", ")
}

// MarshalJSON encodes an empty list as the NoMeasuresUsed sentinel.
func (m Measures) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return json.Marshal(NoMeasuresUsed)
	}
	return json.Marshal([]string(m))
}

// ColumnRecord describes one column of a data model table.
type ColumnRecord struct {
	TableName    string `json:"table_name"`
	ColumnName   string `json:"column_name"`
	DataType     string `json:"data_type"`
	IsCalculated bool   `json:"is_calculated"`
}

// IsReservedTable reports whether name belongs to an auto-generated date table.
// The match is a case-sensitive prefix match.
func IsReservedTable(name string) bool {
	for _, prefix := range ReservedTablePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// IsCalculatedColumnType reports whether a column type marks a calculated column.
func IsCalculatedColumnType(typ string) bool {
	for _, t := range CalculatedColumnTypes {
		if typ == t {
			return true
		}
	}
	return false
}
