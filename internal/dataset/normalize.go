package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingColumnsError reports required columns absent after header rewrite.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Missing required columns: %v", e.Columns)
}

// NormalizeColumn rewrites a raw header cell: trim, lowercase, spaces to
// underscores. "State of Residence" becomes "state_of_residence".
func NormalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

// Normalize rewrites the header, verifies the required columns and coerces
// the births measure to numeric. Rows whose births cell fails to parse are
// dropped. Pure: the input table is left untouched.
func Normalize(raw *Table) (*Table, error) {
	columns := make([]string, len(raw.columns))
	for i, c := range raw.columns {
		columns[i] = NormalizeColumn(c)
	}

	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		seen[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !seen[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	t := New(columns, nil)
	birthsIdx := t.index[ColBirths]

	rows := make([][]string, 0, len(raw.rows))
	births := make([]float64, 0, len(raw.rows))
	for _, row := range raw.rows {
		if birthsIdx >= len(row) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[birthsIdx]), 64)
		if err != nil {
			continue
		}
		rows = append(rows, row)
		births = append(births, v)
	}

	t.rows = rows
	t.births = births
	return t, nil
}
