package query

import (
	"testing"

	"github.com/vitalstats/natalityd/internal/dataset"
)

// testTable builds the three-row fixture shared across the query tests:
// (CA, January, M, 100), (CA, January, F, 90), (TX, February, M, 50).
func testTable(t *testing.T) *dataset.Table {
	t.Helper()
	header := []string{"State of Residence", "Month", "Month Code", "Year Code", "Sex of Infant", "Births"}
	rows := [][]string{
		{"CA", "January", "1", "2025", "M", "100"},
		{"CA", "January", "1", "2025", "F", "90"},
		{"TX", "February", "2", "2025", "M", "50"},
	}
	table, err := dataset.Normalize(dataset.New(header, rows))
	if err != nil {
		t.Fatalf("fixture normalize: %v", err)
	}
	return table
}

func TestApplyAllIsIdentity(t *testing.T) {
	table := testTable(t)
	cases := []struct {
		name string
		sel  Selection
	}{
		{"explicit All everywhere", Selection{States: []string{All}, Genders: []string{All}, Months: []string{All}}},
		{"empty selection", Selection{}},
		{"All mixed with values", Selection{States: []string{All, "CA"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(table.All(), tc.sel)
			if got.Len() != table.NumRows() {
				t.Errorf("Apply() kept %d rows, want all %d", got.Len(), table.NumRows())
			}
		})
	}
}

func TestApplyStateFilter(t *testing.T) {
	table := testTable(t)
	got := Apply(table.All(), Selection{States: []string{"CA"}})

	if got.Len() != 2 {
		t.Fatalf("Apply() kept %d rows, want 2", got.Len())
	}
	for i := 0; i < got.Len(); i++ {
		if got.Cell(i, dataset.ColState) != "CA" {
			t.Errorf("row %d state = %q, want CA", i, got.Cell(i, dataset.ColState))
		}
	}
	if total := Total(got); total != 190 {
		t.Errorf("Total() = %f, want 190", total)
	}
}

func TestApplyDimensionsCombineWithAnd(t *testing.T) {
	table := testTable(t)
	got := Apply(table.All(), Selection{States: []string{"CA"}, Genders: []string{"M"}})

	if got.Len() != 1 {
		t.Fatalf("Apply() kept %d rows, want 1", got.Len())
	}
	if got.Births(0) != 100 {
		t.Errorf("Births(0) = %f, want 100", got.Births(0))
	}
}

func TestApplyValuesCombineWithOr(t *testing.T) {
	table := testTable(t)
	got := Apply(table.All(), Selection{States: []string{"CA", "TX"}})
	if got.Len() != 3 {
		t.Errorf("Apply() kept %d rows, want 3", got.Len())
	}
}

func TestApplyNoMatchYieldsEmptyView(t *testing.T) {
	table := testTable(t)
	got := Apply(table.All(), Selection{States: []string{"NV"}})
	if got.Len() != 0 {
		t.Errorf("Apply() kept %d rows, want 0", got.Len())
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	table := testTable(t)
	sel := Selection{States: []string{"CA"}, Genders: []string{"M", "F"}}

	once := Apply(table.All(), sel)
	twice := Apply(table.All(), sel)

	if once.Len() != twice.Len() {
		t.Fatalf("repeat Apply() lengths differ: %d vs %d", once.Len(), twice.Len())
	}
	for i := 0; i < once.Len(); i++ {
		if once.Cell(i, dataset.ColState) != twice.Cell(i, dataset.ColState) ||
			once.Births(i) != twice.Births(i) {
			t.Errorf("repeat Apply() row %d differs", i)
		}
	}
}

func TestApplyMonotonicUnderRestriction(t *testing.T) {
	table := testTable(t)
	full := Total(table.All())

	cases := []Selection{
		{},
		{States: []string{"CA"}},
		{States: []string{"TX"}, Genders: []string{"M"}},
		{Months: []string{"February"}},
		{States: []string{"NV"}},
	}
	for _, sel := range cases {
		filtered := Apply(table.All(), sel)
		if filtered.Len() > table.NumRows() {
			t.Errorf("filtered view has %d rows, more than full %d", filtered.Len(), table.NumRows())
		}
		if got := Total(filtered); got > full {
			t.Errorf("Total(filtered) = %f exceeds Total(full) = %f", got, full)
		}
	}
}

func TestRestricts(t *testing.T) {
	cases := []struct {
		values []string
		want   bool
	}{
		{nil, false},
		{[]string{}, false},
		{[]string{All}, false},
		{[]string{All, "CA"}, false},
		{[]string{"CA"}, true},
		{[]string{"CA", "TX"}, true},
	}
	for _, tc := range cases {
		if got := Restricts(tc.values); got != tc.want {
			t.Errorf("Restricts(%v) = %v, want %v", tc.values, got, tc.want)
		}
	}
}
