package goquad

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package unwraps to one of them.
var (
	// ErrInvalidEquation is returned when the equation text fails to parse.
	ErrInvalidEquation = errors.New("invalid function")
	// ErrConfig indicates an unusable resolution parameter, interval or Config.
	ErrConfig = errors.New("invalid configuration")
	// ErrNonConvergence indicates an iteration cap was reached before the tolerance was met.
	ErrNonConvergence = errors.New("did not converge")
	// ErrDomain indicates evaluation at a point where a formula is undefined.
	ErrDomain = errors.New("domain error")
)

// ParseError reports an equation that could not be parsed or bound.
type ParseError struct {
	Equation string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid function %q: %v", e.Equation, e.Err)
	}
	return fmt.Sprintf("invalid function %q", e.Equation)
}

func (e *ParseError) Unwrap() error { return ErrInvalidEquation }

// ConfigError reports a parameter that fails validation.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// NonConvergenceError reports an iterative method that hit its cap.
// Last is the most recent estimate, for diagnostics only.
type NonConvergenceError struct {
	Method     string
	Iterations int
	Last       float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations (last estimate %g)", e.Method, e.Iterations, e.Last)
}

func (e *NonConvergenceError) Unwrap() error { return ErrNonConvergence }

// DomainError reports evaluation of Op outside its domain.
type DomainError struct {
	Op string
	X  float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s undefined at x = %g", e.Op, e.X)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

func configErrorf(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
