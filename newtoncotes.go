package goquad

// rule is a composite Newton–Cotes formula over a uniform partition.
type rule struct {
	name string
	// step is the number of segments one application of the local formula
	// spans; the partition must be a multiple of it.
	step   int
	weight func(i, n int) float64
	scale  func(h float64) float64
}

var trapezoidRule = rule{
	name: "trapezoidal",
	step: 1,
	weight: func(i, n int) float64 {
		if i == 0 || i == n {
			return 1
		}
		return 2
	},
	scale: func(h float64) float64 { return h / 2 },
}

var simpson13Rule = rule{
	name: "simpson 1/3",
	step: 2,
	weight: func(i, n int) float64 {
		switch {
		case i == 0 || i == n:
			return 1
		case i%2 == 1:
			return 4
		}
		return 2
	},
	scale: func(h float64) float64 { return h / 3 },
}

var simpson38Rule = rule{
	name: "simpson 3/8",
	step: 3,
	weight: func(i, n int) float64 {
		switch {
		case i == 0 || i == n:
			return 1
		case i%3 == 0:
			return 2
		}
		return 3
	},
	scale: func(h float64) float64 { return 3 * h / 8 },
}

// segments returns the partition to use for a requested count n: n rounded up
// to a multiple of the rule's step, or a ConfigError in strict mode.
func (r rule) segments(n int, strict bool) (int, error) {
	if n < 1 {
		return 0, configErrorf("trapezoid_count", "must be at least 1, got %d", n)
	}
	if rem := n % r.step; rem != 0 {
		if strict {
			return 0, configErrorf("trapezoid_count", "%s needs a multiple of %d segments, got %d", r.name, r.step, n)
		}
		n += r.step - rem
	}
	return n, nil
}

// apply sums the weighted samples over n segments of [a, b].
func (r rule) apply(f Integrand, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := 0.0
	for i := 0; i <= n; i++ {
		x := a + float64(i)*h
		if i == n {
			x = b
		}
		sum += r.weight(i, n) * f.Eval(x)
	}
	return r.scale(h) * sum
}

func (in *Integrator) composite(r rule, f Integrand, a, b float64, n int, trueResult float64) (*IntegralResult, error) {
	if err := checkInterval(a, b); err != nil {
		return nil, err
	}
	n, err := r.segments(n, in.cfg.StrictPartition)
	if err != nil {
		return nil, err
	}
	result := r.apply(f, a, b, n)
	return &IntegralResult{
		TrueResult: trueResult,
		Result:     result,
		Error:      ErrorMetric(trueResult, result),
		Segments:   n,
	}, nil
}

func (in *Integrator) compositeText(r rule, equation string, a, b float64, n int, trueResult float64) (*IntegralResult, error) {
	eq, err := ParseEquation(equation)
	if err != nil {
		return nil, err
	}
	return in.composite(r, eq, a, b, n, trueResult)
}

// ============================================================
// Trapezoidal
// ============================================================

// Trapezoidal integrates equation over [a, b] with the composite trapezoidal
// rule on the given number of segments.
func (in *Integrator) Trapezoidal(equation string, a, b float64, segments int, trueResult float64) (*IntegralResult, error) {
	return in.compositeText(trapezoidRule, equation, a, b, segments, trueResult)
}

func (in *Integrator) TrapezoidalFunc(f Integrand, a, b float64, segments int, trueResult float64) (*IntegralResult, error) {
	return in.composite(trapezoidRule, f, a, b, segments, trueResult)
}

// ============================================================
// Simpson 1/3
// ============================================================

// Simpson13 integrates equation with the composite Simpson 1/3 rule. An odd
// segment count is rounded up to the next even number unless StrictPartition
// is set.
func (in *Integrator) Simpson13(equation string, a, b float64, segments int, trueResult float64) (*IntegralResult, error) {
	return in.compositeText(simpson13Rule, equation, a, b, segments, trueResult)
}

func (in *Integrator) Simpson13Func(f Integrand, a, b float64, segments int, trueResult float64) (*IntegralResult, error) {
	return in.composite(simpson13Rule, f, a, b, segments, trueResult)
}

// ============================================================
// Simpson 3/8
// ============================================================

// Simpson38 integrates equation with the composite Simpson 3/8 rule. The
// segment count is rounded up to a multiple of 3 unless StrictPartition is set.
func (in *Integrator) Simpson38(equation string, a, b float64, segments int, trueResult float64) (*IntegralResult, error) {
	return in.compositeText(simpson38Rule, equation, a, b, segments, trueResult)
}

func (in *Integrator) Simpson38Func(f Integrand, a, b float64, segments int, trueResult float64) (*IntegralResult, error) {
	return in.composite(simpson38Rule, f, a, b, segments, trueResult)
}

// Trapezoidal calls Integrator.Trapezoidal with DefaultConfig.
func Trapezoidal(equation string, a, b float64, segments int, trueResult float64) (*IntegralResult, error) {
	return defaultIntegrator.Trapezoidal(equation, a, b, segments, trueResult)
}

// Simpson13 calls Integrator.Simpson13 with DefaultConfig.
func Simpson13(equation string, a, b float64, segments int, trueResult float64) (*IntegralResult, error) {
	return defaultIntegrator.Simpson13(equation, a, b, segments, trueResult)
}

// Simpson38 calls Integrator.Simpson38 with DefaultConfig.
func Simpson38(equation string, a, b float64, segments int, trueResult float64) (*IntegralResult, error) {
	return defaultIntegrator.Simpson38(equation, a, b, segments, trueResult)
}
