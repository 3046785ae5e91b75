package goquad

import "github.com/njchilds90/goquad/internal/logging"

// Romberg integrates equation over [a, b] by Richardson extrapolation of
// trapezoidal estimates with halving step sizes.
//
// Level k holds the trapezoid on 2^k panels followed by k extrapolations
// R[k][i] = (4^i R[k][i-1] - R[k-1][i-1]) / (4^i - 1). The first R[k][i] whose
// ErrorMetric against R[k][i-1] drops below Config.Tolerance is the estimate;
// the rest of that row is still filled in. If MaxRombergLevels is exhausted a
// *NonConvergenceError is returned.
func (in *Integrator) Romberg(equation string, a, b, trueResult float64) (*RombergResult, error) {
	eq, err := ParseEquation(equation)
	if err != nil {
		return nil, err
	}
	return in.RombergFunc(eq, a, b, trueResult)
}

func (in *Integrator) RombergFunc(f Integrand, a, b, trueResult float64) (*RombergResult, error) {
	if err := checkInterval(a, b); err != nil {
		return nil, err
	}

	result := [][]float64{{trapezoidRule.apply(f, a, b, 1)}}
	errs := [][]float64{{ErrorMetric(trueResult, result[0][0])}}

	for k := 1; k <= in.cfg.MaxRombergLevels; k++ {
		prev := result[k-1]
		row := make([]float64, k+1)
		errRow := make([]float64, k+1)

		row[0] = trapezoidRule.apply(f, a, b, 1<<k)
		errRow[0] = ErrorMetric(trueResult, row[0])

		converged := -1
		factor := 1.0
		for i := 1; i <= k; i++ {
			factor *= 4
			row[i] = (factor*row[i-1] - prev[i-1]) / (factor - 1)
			errRow[i] = ErrorMetric(row[i], row[i-1])
			if converged < 0 && errRow[i] < in.cfg.Tolerance {
				converged = i
			}
		}

		result = append(result, row)
		errs = append(errs, errRow)
		logging.Iteration("romberg", k, row[k], errRow[k])

		if converged >= 0 {
			estimate := row[converged]
			errs = append(errs, []float64{ErrorMetric(trueResult, estimate)})
			return &RombergResult{
				TrueResult: trueResult,
				Result:     result,
				Error:      errs,
				Estimate:   estimate,
				Level:      k,
				Order:      converged,
			}, nil
		}
	}

	last := result[len(result)-1]
	return nil, &NonConvergenceError{
		Method:     "romberg",
		Iterations: in.cfg.MaxRombergLevels,
		Last:       last[len(last)-1],
	}
}

// Romberg calls Integrator.Romberg with DefaultConfig.
func Romberg(equation string, a, b, trueResult float64) (*RombergResult, error) {
	return defaultIntegrator.Romberg(equation, a, b, trueResult)
}
