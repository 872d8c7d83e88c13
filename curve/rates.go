package curve

import (
	"time"

	"github.com/hwkim/isdacds/cdserrors"
)

func errInvalidForwardWindow(op string) error {
	return cdserrors.New(cdserrors.InvalidInput, op, "dEnd must be strictly after dStart")
}

// DiscountFactor returns the curve's discount factor at targetDate under
// the given interpolation method. For a HazardCurve this is the survival
// probability to targetDate; for a RateCurve it is the ordinary discount
// factor. DiscountFactor(BaseDate) is always exactly 1.
func (c *Curve) DiscountFactor(targetDate time.Time, method InterpolationMethod) (float64, error) {
	return c.discountFactorAt(targetDate, method)
}

// ZeroRate returns the curve's zero rate (or hazard rate, for a
// HazardCurve) at targetDate under the given interpolation method, by
// inverting DiscountFactor through the curve's compounding basis.
func (c *Curve) ZeroRate(targetDate time.Time, method InterpolationMethod) (float64, error) {
	t := c.yearFraction(targetDate)
	df, err := c.discountFactorAtFrac(t, method)
	if err != nil {
		return 0, err
	}
	return dfToRate(df, t, c.compounding)
}

// ForwardRate returns the simply-compounded forward rate implied between
// dStart and dEnd, i.e. the rate r such that
// DF(dStart)/DF(dEnd) = 1 + r*YearFraction(dStart,dEnd). dEnd must be
// strictly after dStart.
func (c *Curve) ForwardRate(dStart, dEnd time.Time, method InterpolationMethod) (float64, error) {
	const op = "Curve.ForwardRate"
	if !dEnd.After(dStart) {
		return 0, errInvalidForwardWindow(op)
	}
	dfStart, err := c.discountFactorAt(dStart, method)
	if err != nil {
		return 0, err
	}
	dfEnd, err := c.discountFactorAt(dEnd, method)
	if err != nil {
		return 0, err
	}
	tau := c.yearFraction(dEnd) - c.yearFraction(dStart)
	if tau <= 0 {
		return 0, errInvalidForwardWindow(op)
	}
	return (dfStart/dfEnd - 1.0) / tau, nil
}

// SurvivalProbability is DiscountFactor's name on a HazardCurve; it is a
// thin alias kept for call-site clarity in the CDS valuation package.
func (c *Curve) SurvivalProbability(targetDate time.Time, method InterpolationMethod) (float64, error) {
	return c.DiscountFactor(targetDate, method)
}
