package visualize

import (
	"sort"

	"titanic/domain/passenger"

	"github.com/montanaflynn/stats"
)

// FiveNumber is a box plot summary
type FiveNumber struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// FareSummary is the fare distribution of one class
type FareSummary struct {
	Class   passenger.Class `json:"class"`
	Count   int             `json:"count"`
	Summary FiveNumber      `json:"summary"`
}

// Summarize computes the five-number summary of values. Quartiles are the
// medians of the lower and upper halves, excluding the overall median when
// the count is odd. ok is false for empty input.
func Summarize(values []float64) (FiveNumber, bool) {
	switch len(values) {
	case 0:
		return FiveNumber{}, false
	case 1:
		v := values[0]
		return FiveNumber{Min: v, Q1: v, Median: v, Q3: v, Max: v}, true
	}

	data := stats.Float64Data(values)
	min, err := stats.Min(data)
	if err != nil {
		return FiveNumber{}, false
	}
	max, err := stats.Max(data)
	if err != nil {
		return FiveNumber{}, false
	}
	quartiles, err := stats.Quartile(data)
	if err != nil {
		return FiveNumber{}, false
	}

	return FiveNumber{
		Min:    min,
		Q1:     quartiles.Q1,
		Median: quartiles.Q2,
		Q3:     quartiles.Q3,
		Max:    max,
	}, true
}

// FareSummaries summarizes non-missing fares per class, ascending by
// class. Classes without any fare are left out.
func FareSummaries(t *passenger.Table) []FareSummary {
	fares := t.FaresByClass()
	classes := make([]passenger.Class, 0, len(fares))
	for class := range fares {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	var out []FareSummary
	for _, class := range classes {
		summary, ok := Summarize(fares[class])
		if !ok {
			continue
		}
		out = append(out, FareSummary{Class: class, Count: len(fares[class]), Summary: summary})
	}
	return out
}
