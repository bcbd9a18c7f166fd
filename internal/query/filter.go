package query

import (
	"github.com/vitalstats/natalityd/internal/dataset"
)

// All is the sentinel selection value meaning "no restriction".
const All = "All"

// Selection holds the user's chosen values per dimension. A dimension with
// an empty list, or one containing the All sentinel, is unrestricted.
type Selection struct {
	States  []string `json:"states"`
	Genders []string `json:"genders"`
	Months  []string `json:"months"`
}

// Restricts reports whether a dimension selection actually narrows rows.
func Restricts(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v == All {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Apply narrows a view to rows matching the selection. Dimensions compose
// by AND; values within one dimension by OR. A single pass checks every
// restricted dimension per row and returns an index view, no data copy.
func Apply(v dataset.View, sel Selection) dataset.View {
	type constraint struct {
		col string
		set map[string]bool
	}
	var constraints []constraint
	if Restricts(sel.States) {
		constraints = append(constraints, constraint{dataset.ColState, toSet(sel.States)})
	}
	if Restricts(sel.Genders) {
		constraints = append(constraints, constraint{dataset.ColGender, toSet(sel.Genders)})
	}
	if Restricts(sel.Months) {
		constraints = append(constraints, constraint{dataset.ColMonth, toSet(sel.Months)})
	}
	if len(constraints) == 0 {
		return v
	}

	keep := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		pass := true
		for _, c := range constraints {
			if !c.set[v.Cell(i, c.col)] {
				pass = false
				break
			}
		}
		if pass {
			keep = append(keep, i)
		}
	}
	return v.Narrow(keep)
}
