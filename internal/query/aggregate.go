package query

import (
	"sort"

	"github.com/vitalstats/natalityd/internal/dataset"
)

// Entry is one partition of a single-key aggregation: a categorical key and
// the summed births within it.
type Entry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// PairEntry is one partition of a two-key aggregation.
type PairEntry struct {
	KeyA  string  `json:"keyA"`
	KeyB  string  `json:"keyB"`
	Value float64 `json:"value"`
}

// Total sums the births measure over the whole view.
func Total(v dataset.View) float64 {
	var total float64
	for i := 0; i < v.Len(); i++ {
		total += v.Births(i)
	}
	return total
}

// GroupSum partitions the view by the distinct values of one column and sums
// births per partition. Partitions appear in first-appearance order.
func GroupSum(v dataset.View, col string) []Entry {
	sums := make(map[string]float64)
	var order []string
	for i := 0; i < v.Len(); i++ {
		key := v.Cell(i, col)
		if _, ok := sums[key]; !ok {
			order = append(order, key)
		}
		sums[key] += v.Births(i)
	}

	entries := make([]Entry, 0, len(order))
	for _, key := range order {
		entries = append(entries, Entry{Key: key, Value: sums[key]})
	}
	return entries
}

// GroupSumPair partitions the view by distinct (colA, colB) pairs and sums
// births per partition, in first-appearance order.
func GroupSumPair(v dataset.View, colA, colB string) []PairEntry {
	type pair struct{ a, b string }
	sums := make(map[pair]float64)
	var order []pair
	for i := 0; i < v.Len(); i++ {
		p := pair{v.Cell(i, colA), v.Cell(i, colB)}
		if _, ok := sums[p]; !ok {
			order = append(order, p)
		}
		sums[p] += v.Births(i)
	}

	entries := make([]PairEntry, 0, len(order))
	for _, p := range order {
		entries = append(entries, PairEntry{KeyA: p.a, KeyB: p.b, Value: sums[p]})
	}
	return entries
}

// SortByValueDesc orders entries by descending summed value, key ascending
// on ties so the order is deterministic.
func SortByValueDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Key < entries[j].Key
	})
}

// DistinctSorted returns the sorted distinct non-empty values of a column
// across the whole table. Used to build the filter controls.
func DistinctSorted(t *dataset.Table, col string) []string {
	v := t.All()
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < v.Len(); i++ {
		val := v.Cell(i, col)
		if val == "" || seen[val] {
			continue
		}
		seen[val] = true
		out = append(out, val)
	}
	sort.Strings(out)
	return out
}
