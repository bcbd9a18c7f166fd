// Package chart turns aggregations into render-ready chart configurations
// for the dashboard frontend.
package chart

import (
	"sort"

	"github.com/vitalstats/natalityd/internal/query"
)

// Config defines how to render a chart. The shape is frontend-agnostic:
// one series per split value, one point per category.
type Config struct {
	ChartType  string   `json:"chartType"`
	Title      string   `json:"title"`
	XAxis      string   `json:"xAxis"`
	YAxis      string   `json:"yAxis"`
	Series     []Series `json:"series"`
	ShowLegend bool     `json:"showLegend"`
	Margin     Margin   `json:"margin"`
}

// Series is a named data series.
type Series struct {
	Name string  `json:"name"`
	Data []Point `json:"data"`
}

// Point is a single labelled value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Margin mirrors the original dashboard's fixed plot margins.
type Margin struct {
	Left   int `json:"l"`
	Right  int `json:"r"`
	Top    int `json:"t"`
	Bottom int `json:"b"`
}

// BuildBirthsByStateGender renders the (state, gender) aggregation as a
// grouped bar chart: states on the category axis sorted alphabetically,
// one series per gender. States missing a gender get an explicit zero point
// so the groups stay aligned.
func BuildBirthsByStateGender(agg []query.PairEntry) *Config {
	var states, genders []string
	stateSeen := make(map[string]bool)
	genderSeen := make(map[string]bool)
	values := make(map[[2]string]float64, len(agg))

	for _, e := range agg {
		if !stateSeen[e.KeyA] {
			stateSeen[e.KeyA] = true
			states = append(states, e.KeyA)
		}
		if !genderSeen[e.KeyB] {
			genderSeen[e.KeyB] = true
			genders = append(genders, e.KeyB)
		}
		values[[2]string{e.KeyA, e.KeyB}] += e.Value
	}
	sort.Strings(states)
	sort.Strings(genders)

	series := make([]Series, 0, len(genders))
	for _, g := range genders {
		points := make([]Point, 0, len(states))
		for _, s := range states {
			points = append(points, Point{Label: s, Value: values[[2]string{s, g}]})
		}
		series = append(series, Series{Name: g, Data: points})
	}

	return &Config{
		ChartType:  "grouped_bar",
		Title:      "Total Births by State and Gender",
		XAxis:      "State",
		YAxis:      "Births",
		Series:     series,
		ShowLegend: true,
		Margin:     Margin{Left: 20, Right: 20, Top: 60, Bottom: 20},
	}
}
