package dataset

import (
	"errors"
	"strings"
	"testing"
)

var rawHeader = []string{"State of Residence", "Month", "Month Code", "Year Code", "Sex of Infant", "Births"}

func rawRows() [][]string {
	return [][]string{
		{"CA", "January", "1", "2025", "M", "100"},
		{"CA", "January", "1", "2025", "F", "90"},
		{"TX", "February", "2", "2025", "M", "50"},
	}
}

func TestNormalizeColumn(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"State of Residence", "state_of_residence"},
		{"  Births ", "births"},
		{"MONTH CODE", "month_code"},
		{"month", "month"},
	}
	for _, tc := range cases {
		if got := NormalizeColumn(tc.in); got != tc.want {
			t.Errorf("NormalizeColumn(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRewritesHeaderAndParsesBirths(t *testing.T) {
	table, err := Normalize(New(rawHeader, rawRows()))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	for _, col := range RequiredColumns {
		if !table.HasColumn(col) {
			t.Errorf("normalized table missing column %q", col)
		}
	}
	if table.NumRows() != 3 {
		t.Fatalf("NumRows() = %d, want 3", table.NumRows())
	}

	v := table.All()
	for i := 0; i < v.Len(); i++ {
		if v.Births(i) < 0 {
			t.Errorf("row %d births = %f, want non-negative", i, v.Births(i))
		}
	}
	if got := v.Births(0); got != 100 {
		t.Errorf("Births(0) = %f, want 100", got)
	}
}

func TestNormalizeDropsUnparseableBirths(t *testing.T) {
	rows := append(rawRows(), []string{"NV", "March", "3", "2025", "F", "suppressed"})
	table, err := Normalize(New(rawHeader, rows))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if table.NumRows() != 3 {
		t.Fatalf("NumRows() = %d, want 3 (bad row dropped)", table.NumRows())
	}
	v := table.All()
	for i := 0; i < v.Len(); i++ {
		if v.Cell(i, ColState) == "NV" {
			t.Error("row with unparseable births survived normalization")
		}
	}
}

func TestNormalizeMissingColumns(t *testing.T) {
	header := []string{"State of Residence", "Month", "Births"}
	_, err := Normalize(New(header, nil))

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("Normalize() error = %v, want MissingColumnsError", err)
	}
	for _, want := range []string{ColMonthCode, ColYearCode, ColGender} {
		found := false
		for _, c := range missing.Columns {
			if c == want {
				found = true
			}
		}
		if !found {
			t.Errorf("MissingColumnsError.Columns = %v, want to include %q", missing.Columns, want)
		}
	}
	if !strings.Contains(err.Error(), "Missing required columns") {
		t.Errorf("error message = %q, want column listing", err.Error())
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := New(rawHeader, rawRows())
	if _, err := Normalize(raw); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if raw.columns[0] != "State of Residence" {
		t.Errorf("input header mutated: %q", raw.columns[0])
	}
}
