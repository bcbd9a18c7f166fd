// Package analyst packages the filtered aggregates into a model-facing
// context and asks a hosted chat model for an executive summary.
package analyst

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/vitalstats/natalityd/internal/dataset"
	"github.com/vitalstats/natalityd/internal/query"
)

// Totals is an ordered key→sum mapping. It marshals as a JSON object whose
// key order follows the slice, so "descending by value" survives
// serialization into the prompt.
type Totals []query.Entry

// MarshalJSON implements ordered object encoding.
func (t Totals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(e.Value, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Sum returns the total across all entries.
func (t Totals) Sum() float64 {
	var total float64
	for _, e := range t {
		total += e.Value
	}
	return total
}

// Filters echoes the active selection back to the model.
type Filters struct {
	States []string `json:"states"`
	Gender []string `json:"gender"`
	Months []string `json:"months"`
}

// Context is the JSON-serializable dataset summary embedded in the system
// prompt. Built fresh per chat submission, never stored.
type Context struct {
	TotalBirths    int64   `json:"total_births"`
	StateTotals    Totals  `json:"state_totals"`
	GenderTotals   Totals  `json:"gender_totals"`
	MonthlyTotals  Totals  `json:"monthly_totals"`
	FiltersApplied Filters `json:"filters_applied"`
}

// BuildContext computes the four aggregates over the filtered view and
// packages them with the active selection. State totals are ordered by
// descending births; gender and month totals keep appearance order.
func BuildContext(v dataset.View, sel query.Selection) Context {
	stateTotals := Totals(query.GroupSum(v, dataset.ColState))
	query.SortByValueDesc(stateTotals)

	return Context{
		TotalBirths:    int64(query.Total(v)),
		StateTotals:    stateTotals,
		GenderTotals:   Totals(query.GroupSum(v, dataset.ColGender)),
		MonthlyTotals:  Totals(query.GroupSum(v, dataset.ColMonth)),
		FiltersApplied: Filters{
			States: appliedValues(sel.States),
			Gender: appliedValues(sel.Genders),
			Months: appliedValues(sel.Months),
		},
	}
}

// appliedValues reports a dimension's selection the way the model should
// see it: the literal values, or the All sentinel when unrestricted.
func appliedValues(values []string) []string {
	if !query.Restricts(values) {
		return []string{query.All}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
