package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/pbidoc"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// encodeMeasures stores measures as a JSON array. An empty list is stored
// as [] rather than the display sentinel.
func encodeMeasures(m pbidoc.Measures) (string, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(m))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeMeasures(s string) (pbidoc.Measures, error) {
	var m []string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("failed to parse measures_used: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return pbidoc.Measures(m), nil
}
