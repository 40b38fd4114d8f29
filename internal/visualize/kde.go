package visualize

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ScottBandwidth is the Gaussian kernel bandwidth from Scott's rule,
// sd * n^(-1/5). It reports false for fewer than two values or zero spread.
func ScottBandwidth(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	sd := stat.StdDev(values, nil)
	if sd == 0 || math.IsNaN(sd) {
		return 0, false
	}
	return sd * math.Pow(float64(len(values)), -0.2), true
}

// KDE returns a Gaussian kernel density estimate of values scaled to
// histogram counts for bins of binWidth, so the curve's area matches the
// bar area. ok is false when no bandwidth can be derived.
func KDE(values []float64, binWidth float64) (curve func(float64) float64, bandwidth float64, ok bool) {
	h, ok := ScottBandwidth(values)
	if !ok || binWidth <= 0 {
		return nil, 0, false
	}
	scale := binWidth / h
	curve = func(x float64) float64 {
		var sum float64
		for _, v := range values {
			sum += distuv.UnitNormal.Prob((x - v) / h)
		}
		return sum * scale
	}
	return curve, h, true
}
