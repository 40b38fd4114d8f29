package visualize

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins is the number of age histogram bins.
const DefaultBins = 30

// Bin is one histogram bucket: [Min, Max), the last bucket closed.
type Bin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Histogram splits values into n equal-width bins spanning their observed
// range. No values gives no bins; a single distinct value gives one bin of
// width 1 centred on it.
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 || n < 1 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []Bin{{Min: lo - 0.5, Max: hi + 0.5, Count: len(sorted)}}
	}

	edges := floats.Span(make([]float64, n+1), lo, hi)

	// stat.Histogram wants the top divider strictly above the largest value;
	// nudging it by one ulp keeps the maximum in the last bin.
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Min: edges[i], Max: edges[i+1], Count: int(counts[i])}
	}
	return bins
}
