package curve

import (
	"math"

	"github.com/hwkim/isdacds/cdserrors"
)

// CompoundingBasis fixes how a rate and a year fraction map to a discount
// factor. The numeric value doubles as the number of compounding periods
// per year (continuous is the m=0 special case).
type CompoundingBasis int

const (
	Continuous CompoundingBasis = 0
	Annual     CompoundingBasis = 1
	SemiAnnual CompoundingBasis = 2
	Quarterly  CompoundingBasis = 4
	Monthly    CompoundingBasis = 12
)

func (b CompoundingBasis) String() string {
	switch b {
	case Continuous:
		return "Continuous"
	case Annual:
		return "Annual"
	case SemiAnnual:
		return "SemiAnnual"
	case Quarterly:
		return "Quarterly"
	case Monthly:
		return "Monthly"
	default:
		return "Unknown"
	}
}

// rateToDF converts a rate at year fraction t into a discount factor under
// basis b. t<=0 always yields a DF of 1, matching the base-date identity.
func rateToDF(rate float64, t float64, b CompoundingBasis) (float64, error) {
	if t <= 0 {
		return 1.0, nil
	}
	if b == Continuous {
		return math.Exp(-rate * t), nil
	}
	m := float64(b)
	base := 1.0 + rate/m
	if base <= 0 {
		return 0, cdserrors.New(cdserrors.NumericalError, "rateToDF", "1+r/m is non-positive")
	}
	return math.Pow(base, -m*t), nil
}

// dfToRate is the inverse of rateToDF.
func dfToRate(df float64, t float64, b CompoundingBasis) (float64, error) {
	if t <= 0 {
		return 0, nil
	}
	if df <= 0 {
		return 0, cdserrors.New(cdserrors.NumericalError, "dfToRate", "discount factor must be positive")
	}
	if b == Continuous {
		return -math.Log(df) / t, nil
	}
	m := float64(b)
	return m * (math.Pow(df, -1.0/(m*t)) - 1.0), nil
}
