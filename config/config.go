// Package config holds the solver and numerical-guard parameters shared by
// the curve, CDS valuation, and bootstrap packages. These were previously
// magic numbers scattered across the computation; grouping them here
// mirrors swap/config/config.go.
package config

// Config holds tolerances and iteration caps used by root finders and
// numerical guards throughout the core.
type Config struct {
	// BootstrapTolerance is the |MTM|/notional threshold for declaring a
	// bootstrapped hazard rate converged.
	BootstrapTolerance float64

	// HazardStepTolerance is the minimum hazard-rate change below which
	// the bootstrap solver also declares convergence.
	HazardStepTolerance float64

	// MaxBootstrapIterations caps the safeguarded solver per tenor.
	MaxBootstrapIterations int

	// MaxBracketExpansions caps how many times the bootstrap solver
	// doubles its bracket looking for a sign change before failing with
	// "non-convergent at tenor j".
	MaxBracketExpansions int

	// DerivativeFloor is the minimum |f'(x)| magnitude below which Newton
	// iteration halts rather than dividing by a near-zero derivative.
	DerivativeFloor float64

	// MinDiscountFactor floors discount factors and survival
	// probabilities to avoid dividing by (or taking the log of) zero.
	MinDiscountFactor float64

	// ForwardHazardDegeneracyEps is the ε used to detect the
	// (hazard + forward) -> 0 degeneracy in the protection-leg
	// closed-form integral.
	ForwardHazardDegeneracyEps float64
}

// DefaultConfig provides the tolerances used throughout the package (1e-12
// for par-spread re-pricing, 1e-14 for hazard-step/degeneracy detection).
var DefaultConfig = Config{
	BootstrapTolerance:         1e-12,
	HazardStepTolerance:        1e-14,
	MaxBootstrapIterations:     100,
	MaxBracketExpansions:       60,
	DerivativeFloor:            1e-15,
	MinDiscountFactor:          1e-12,
	ForwardHazardDegeneracyEps: 1e-14,
}

var active = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	active = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return active
}
