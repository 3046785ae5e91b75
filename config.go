package goquad

import "math"

// Config controls the iterative engines and the partition policy.
type Config struct {
	// Tolerance is the ErrorMetric threshold for Romberg and Newton convergence.
	Tolerance float64 `json:"tolerance"`
	// MaxRombergLevels caps the number of step halvings.
	MaxRombergLevels int `json:"max_romberg_levels"`
	// MaxNewtonIterations caps the refinement of each Legendre root.
	MaxNewtonIterations int `json:"max_newton_iterations"`
	// StrictPartition rejects segment counts that do not fit a rule instead of
	// rounding them up.
	StrictPartition bool `json:"strict_partition"`
}

// DefaultConfig returns the settings used by the package-level functions.
func DefaultConfig() Config {
	return Config{
		Tolerance:           1e-12,
		MaxRombergLevels:    20,
		MaxNewtonIterations: 100,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return configErrorf("tolerance", "must be a positive finite number, got %g", c.Tolerance)
	}
	if c.MaxRombergLevels < 1 || c.MaxRombergLevels > 30 {
		return configErrorf("max_romberg_levels", "must be in 1..30, got %d", c.MaxRombergLevels)
	}
	if c.MaxNewtonIterations < 1 {
		return configErrorf("max_newton_iterations", "must be at least 1, got %d", c.MaxNewtonIterations)
	}
	return nil
}

// Integrator runs the quadrature methods with a fixed Config. It holds no
// mutable state and may be shared between goroutines.
type Integrator struct {
	cfg Config
}

// New returns an Integrator for cfg.
func New(cfg Config) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Integrator{cfg: cfg}, nil
}

// Config returns the Integrator's settings.
func (in *Integrator) Config() Config { return in.cfg }

var defaultIntegrator = &Integrator{cfg: DefaultConfig()}

func checkInterval(a, b float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return configErrorf("bound_least", "must be finite, got %g", a)
	}
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return configErrorf("bound_most", "must be finite, got %g", b)
	}
	return nil
}
