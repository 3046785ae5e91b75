package goquad

import "math"

// ErrorMetric returns the normalized difference between a reference value and
// another value: |reference - value| / max(|reference|, 1).
//
// The same function scores accuracy against a known true result and decides
// convergence between successive iterates (newest iterate as reference).
// For |reference| < 1 the metric is an absolute difference.
func ErrorMetric(reference, value float64) float64 {
	return math.Abs(reference-value) / math.Max(math.Abs(reference), 1)
}
