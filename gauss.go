package goquad

// GaussLegendre integrates equation over [a, b] with an n-point Gauss–Legendre
// rule, mapping the nodes from [-1, 1] by x = m + s t with m = (a+b)/2 and
// s = (b-a)/2. It is exact for polynomials of degree up to 2 points - 1.
func (in *Integrator) GaussLegendre(equation string, a, b, trueResult float64, points int) (*GaussIntegralResult, error) {
	eq, err := ParseEquation(equation)
	if err != nil {
		return nil, err
	}
	return in.GaussLegendreFunc(eq, a, b, trueResult, points)
}

func (in *Integrator) GaussLegendreFunc(f Integrand, a, b, trueResult float64, points int) (*GaussIntegralResult, error) {
	if err := checkInterval(a, b); err != nil {
		return nil, err
	}
	abscissas, weights, err := in.LegendreNodes(points)
	if err != nil {
		return nil, err
	}

	mid := (b + a) / 2
	half := (b - a) / 2
	sum := 0.0
	for i, t := range abscissas {
		sum += weights[i] * f.Eval(mid+half*t)
	}
	result := half * sum

	return &GaussIntegralResult{
		TrueResult: trueResult,
		Result:     result,
		Error:      ErrorMetric(trueResult, result),
		Abscissas:  abscissas,
		Weight:     weights,
	}, nil
}

// GaussLegendre calls Integrator.GaussLegendre with DefaultConfig.
func GaussLegendre(equation string, a, b, trueResult float64, points int) (*GaussIntegralResult, error) {
	return defaultIntegrator.GaussLegendre(equation, a, b, trueResult, points)
}
