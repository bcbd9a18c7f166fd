package analyst

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vitalstats/natalityd/internal/dataset"
	"github.com/vitalstats/natalityd/internal/query"
)

func testView(t *testing.T, sel query.Selection) dataset.View {
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
	return query.Apply(table.All(), sel)
}

func TestBuildContextAggregates(t *testing.T) {
	dc := BuildContext(testView(t, query.Selection{}), query.Selection{})

	if dc.TotalBirths != 240 {
		t.Errorf("TotalBirths = %d, want 240", dc.TotalBirths)
	}
	if len(dc.StateTotals) != 2 || dc.StateTotals[0].Key != "CA" || dc.StateTotals[0].Value != 190 {
		t.Errorf("StateTotals = %v, want CA=190 first (descending)", dc.StateTotals)
	}
	if dc.StateTotals[1].Key != "TX" || dc.StateTotals[1].Value != 50 {
		t.Errorf("StateTotals = %v, want TX=50 second", dc.StateTotals)
	}
}

func TestBuildContextInternalConsistency(t *testing.T) {
	selections := []query.Selection{
		{},
		{States: []string{"CA"}},
		{Genders: []string{"M"}},
		{States: []string{"CA", "TX"}, Months: []string{"January", "February"}},
	}
	for _, sel := range selections {
		dc := BuildContext(testView(t, sel), sel)

		total := float64(dc.TotalBirths)
		if got := dc.StateTotals.Sum(); got != total {
			t.Errorf("sum(state_totals) = %f, want total %f", got, total)
		}
		if got := dc.GenderTotals.Sum(); got != total {
			t.Errorf("sum(gender_totals) = %f, want total %f", got, total)
		}
		if got := dc.MonthlyTotals.Sum(); got != total {
			t.Errorf("sum(monthly_totals) = %f, want total %f", got, total)
		}
	}
}

func TestBuildContextFiltersApplied(t *testing.T) {
	sel := query.Selection{States: []string{"CA"}}
	dc := BuildContext(testView(t, sel), sel)

	if len(dc.FiltersApplied.States) != 1 || dc.FiltersApplied.States[0] != "CA" {
		t.Errorf("FiltersApplied.States = %v, want [CA]", dc.FiltersApplied.States)
	}
	// Unrestricted dimensions surface the sentinel, not an empty list.
	if len(dc.FiltersApplied.Gender) != 1 || dc.FiltersApplied.Gender[0] != query.All {
		t.Errorf("FiltersApplied.Gender = %v, want [All]", dc.FiltersApplied.Gender)
	}
	if len(dc.FiltersApplied.Months) != 1 || dc.FiltersApplied.Months[0] != query.All {
		t.Errorf("FiltersApplied.Months = %v, want [All]", dc.FiltersApplied.Months)
	}
}

func TestTotalsMarshalPreservesOrder(t *testing.T) {
	totals := Totals{{Key: "CA", Value: 190}, {Key: "TX", Value: 50}}
	b, err := json.Marshal(totals)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(b), `{"CA":190,"TX":50}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	// Round-trips as a plain JSON object.
	var decoded map[string]float64
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["CA"] != 190 || decoded["TX"] != 50 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestRenderSystemPromptEmbedsContext(t *testing.T) {
	dc := BuildContext(testView(t, query.Selection{}), query.Selection{})

	prompt, err := RenderSystemPrompt(context.Background(), dc)
	if err != nil {
		t.Fatalf("RenderSystemPrompt() error = %v", err)
	}

	for _, want := range []string{
		"senior data analyst",
		"Do NOT fabricate numbers",
		`"total_births": 240`,
		`"CA": 190`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
