package goquad

import (
	"fmt"
	"math"

	"github.com/njchilds90/goquad/internal/logging"
)

// legendrePair returns P_n(x) and P_{n-1}(x) from the three-term recurrence
// P_k = ((2k-1) x P_{k-1} - (k-1) P_{k-2}) / k. n must be at least 1.
func legendrePair(n int, x float64) (pn, pn1 float64) {
	pn1, pn = 1, x
	for k := 2; k <= n; k++ {
		pn1, pn = pn, (float64(2*k-1)*x*pn-float64(k-1)*pn1)/float64(k)
	}
	return pn, pn1
}

// LegendreP returns the Legendre polynomial P_n(x). n < 0 yields NaN.
func LegendreP(n int, x float64) float64 {
	switch {
	case n < 0:
		return math.NaN()
	case n == 0:
		return 1
	}
	pn, _ := legendrePair(n, x)
	return pn
}

// LegendrePDeriv returns P_n'(x) = n (P_{n-1}(x) - x P_n(x)) / (1 - x^2).
// The formula is singular at x = ±1, where a *DomainError is returned.
func LegendrePDeriv(n int, x float64) (float64, error) {
	switch {
	case n < 0:
		return math.NaN(), nil
	case n == 0:
		return 0, nil
	}
	denom := 1 - x*x
	if denom == 0 {
		return 0, &DomainError{Op: fmt.Sprintf("derivative of P_%d", n), X: x}
	}
	pn, pn1 := legendrePair(n, x)
	return float64(n) * (pn1 - x*pn) / denom, nil
}

// LegendreNodes returns the roots of P_points on (-1, 1), in descending order,
// and their Gauss–Legendre weights 2 / ((1 - x^2) P'(x)^2).
//
// Each root starts from the Chebyshev-style guess cos(pi (4i+3) / (4 points + 2))
// and is refined by Newton's method until the ErrorMetric between successive
// iterates drops below Config.Tolerance.
func (in *Integrator) LegendreNodes(points int) (abscissas, weights []float64, err error) {
	if points < 1 {
		return nil, nil, configErrorf("points", "must be at least 1, got %d", points)
	}

	abscissas = make([]float64, points)
	for i := range abscissas {
		guess := math.Cos(math.Pi * float64(4*i+3) / float64(4*points+2))
		x, err := in.newtonRoot(points, i, guess)
		if err != nil {
			return nil, nil, err
		}
		abscissas[i] = x
	}

	weights = make([]float64, points)
	for i, x := range abscissas {
		d, err := LegendrePDeriv(points, x)
		if err != nil {
			return nil, nil, err
		}
		weights[i] = 2 / ((1 - x*x) * d * d)
	}
	return abscissas, weights, nil
}

func (in *Integrator) newtonRoot(n, index int, x float64) (float64, error) {
	debug := logging.DebugEnabled()
	for iter := 1; iter <= in.cfg.MaxNewtonIterations; iter++ {
		d, err := LegendrePDeriv(n, x)
		if err != nil {
			return 0, err
		}
		next := x - LegendreP(n, x)/d
		delta := ErrorMetric(next, x)
		if debug {
			logging.Iteration("newton", iter, next, delta, "degree", n, "root", index)
		}
		if delta < in.cfg.Tolerance {
			return next, nil
		}
		x = next
	}
	return 0, &NonConvergenceError{
		Method:     fmt.Sprintf("newton refinement of root %d of P_%d", index, n),
		Iterations: in.cfg.MaxNewtonIterations,
		Last:       x,
	}
}

// LegendreNodes calls Integrator.LegendreNodes with DefaultConfig.
func LegendreNodes(points int) (abscissas, weights []float64, err error) {
	return defaultIntegrator.LegendreNodes(points)
}
