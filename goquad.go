// Package goquad computes definite integrals of a one-variable function given
// as text.
//
// Methods:
//   - Composite Newton–Cotes: trapezoidal, Simpson 1/3, Simpson 3/8
//   - Romberg extrapolation with a convergence-checked triangular table
//   - Gauss–Legendre quadrature with nodes and weights solved by Newton iteration
//
// Every method scores its approximation against a caller-supplied true result
// with ErrorMetric, so the outputs can be compared side by side in a
// calculator front end. HandleToolCall exposes the methods as JSON tools.
package goquad

// Integrand is a real function of one real variable.
type Integrand interface {
	Eval(x float64) float64
}

// Func adapts an ordinary function to Integrand.
type Func func(float64) float64

func (f Func) Eval(x float64) float64 { return f(x) }

// ============================================================
// Results
// ============================================================

// IntegralResult is the output of a single-pass composite rule.
type IntegralResult struct {
	TrueResult float64 `json:"true_result"`
	Result     float64 `json:"result"`
	Error      float64 `json:"error"`
	// Segments is the partition actually used after rounding to the rule's step.
	Segments int `json:"segments"`
}

// RombergResult holds the extrapolation table. Result[k] has k+1 entries.
// Error mirrors Result (column 0 against the true result, other columns
// between neighbouring extrapolations) plus one final row holding the
// ErrorMetric of Estimate against the true result.
type RombergResult struct {
	TrueResult float64     `json:"true_result"`
	Result     [][]float64 `json:"result"`
	Error      [][]float64 `json:"error"`
	Estimate   float64     `json:"estimate"`
	Level      int         `json:"level"`
	Order      int         `json:"order"`
}

// FinalError returns the ErrorMetric of Estimate against TrueResult.
func (r *RombergResult) FinalError() float64 {
	last := r.Error[len(r.Error)-1]
	return last[len(last)-1]
}

// GaussIntegralResult is the output of Gauss–Legendre quadrature together with
// the nodes and weights on [-1, 1] that produced it.
type GaussIntegralResult struct {
	TrueResult float64   `json:"true_result"`
	Result     float64   `json:"result"`
	Error      float64   `json:"error"`
	Abscissas  []float64 `json:"abscissas"`
	Weight     []float64 `json:"weight"`
}
