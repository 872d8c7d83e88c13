package curve

import (
	"math"
	"time"

	"github.com/hwkim/isdacds/config"
)

// InterpolationMethod selects how a Curve fills in dates between knots.
// All three methods extrapolate flat beyond the first and last knot.
type InterpolationMethod int

const (
	Linear        InterpolationMethod = 1
	FlatForward   InterpolationMethod = 2
	LinearForward InterpolationMethod = 3
)

func (m InterpolationMethod) String() string {
	switch m {
	case Linear:
		return "Linear"
	case FlatForward:
		return "FlatForward"
	case LinearForward:
		return "LinearForward"
	default:
		return "Unknown"
	}
}

// discountFactorAt returns DF(targetDate) under the given interpolation
// method. tTarget <= 0 (target on or before the base date) returns DF=1
// without even needing a bracket.
func (c *Curve) discountFactorAt(targetDate time.Time, method InterpolationMethod) (float64, error) {
	return c.discountFactorAtFrac(c.yearFraction(targetDate), method)
}

// discountFactorAtFrac is discountFactorAt's entry point for callers that
// already have a year fraction in hand (ZeroRate needs the same year
// fraction again to invert the DF and would otherwise recompute it).
func (c *Curve) discountFactorAtFrac(tTarget float64, method InterpolationMethod) (float64, error) {
	if tTarget <= 0 {
		return 1.0, nil
	}

	k, inSpan := c.bracket(tTarget)
	if !inSpan {
		// Flat extrapolation: reuse the boundary knot's own rate at the
		// *target's* year fraction, which is exactly what "flat" means
		// for a zero-rate term structure.
		df, err := rateToDF(c.points[k].Rate, tTarget, c.compounding)
		if err != nil {
			return 0, err
		}
		return clampDF(df), nil
	}

	var df float64
	var err error
	switch method {
	case Linear:
		df, err = c.linearRateDF(k, tTarget)
	case FlatForward:
		df, err = c.flatForwardDF(k, tTarget)
	case LinearForward:
		df, err = c.linearForwardDF(k, tTarget)
	default:
		df, err = c.flatForwardDF(k, tTarget)
	}
	if err != nil {
		return 0, err
	}
	return clampDF(df), nil
}

// clampDF floors a discount factor or survival probability at
// config.GetConfig().MinDiscountFactor so later divisions and logs never
// see a value indistinguishable from zero.
func clampDF(df float64) float64 {
	if floor := config.GetConfig().MinDiscountFactor; df < floor {
		return floor
	}
	return df
}

// linearRateDF interpolates the zero rate linearly between knots k and
// k+1 (on the year-fraction axis) and converts the result to a DF at
// tTarget under the curve's compounding basis.
func (c *Curve) linearRateDF(k int, tTarget float64) (float64, error) {
	tk, tk1 := c.t[k], c.t[k+1]
	rk, rk1 := c.points[k].Rate, c.points[k+1].Rate
	w := (tTarget - tk) / (tk1 - tk)
	r := rk + w*(rk1-rk)
	return rateToDF(r, tTarget, c.compounding)
}

// segmentForward returns the piecewise-constant instantaneous forward
// implied by knots k and k+1, i.e. -ln(DF_{k+1}/DF_k)/(t_{k+1}-t_k).
func (c *Curve) segmentForward(k int) (float64, error) {
	dfk, err := rateToDF(c.points[k].Rate, c.t[k], c.compounding)
	if err != nil {
		return 0, err
	}
	dfk1, err := rateToDF(c.points[k+1].Rate, c.t[k+1], c.compounding)
	if err != nil {
		return 0, err
	}
	return -math.Log(dfk1/dfk) / (c.t[k+1] - c.t[k]), nil
}

// flatForwardDF holds the instantaneous forward constant across segment k.
func (c *Curve) flatForwardDF(k int, tTarget float64) (float64, error) {
	dfk, err := rateToDF(c.points[k].Rate, c.t[k], c.compounding)
	if err != nil {
		return 0, err
	}
	f, err := c.segmentForward(k)
	if err != nil {
		return 0, err
	}
	return dfk * math.Exp(-f*(tTarget-c.t[k])), nil
}

// linearForwardDF implements the LinearForward method: each segment's
// flat forward is placed as a control point at the segment's midpoint
// on the year-fraction axis; the
// instantaneous forward is the piecewise-linear interpolation between
// consecutive control points (flat before the first / after the last),
// and the DF is obtained by analytically integrating that linear forward
// from the bracket's left knot to the target.
func (c *Curve) linearForwardDF(k int, tTarget float64) (float64, error) {
	n := len(c.t)
	dfk, err := rateToDF(c.points[k].Rate, c.t[k], c.compounding)
	if err != nil {
		return 0, err
	}

	fSeg := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		fSeg[i], err = c.segmentForward(i)
		if err != nil {
			return 0, err
		}
	}
	mid := func(i int) float64 { return (c.t[i] + c.t[i+1]) / 2 }

	leftT, leftF := c.t[k], fSeg[k]
	if k > 0 {
		leftT, leftF = mid(k-1), fSeg[k-1]
	}
	midT, midF := mid(k), fSeg[k]
	rightT, rightF := c.t[k+1], fSeg[k]
	if k+1 <= n-2 {
		rightT, rightF = mid(k+1), fSeg[k+1]
	}

	integral := integrateLinear(leftT, leftF, midT, midF, c.t[k], math.Min(tTarget, midT))
	if tTarget > midT {
		integral += integrateLinear(midT, midF, rightT, rightF, midT, tTarget)
	}
	return dfk * math.Exp(-integral), nil
}

// integrateLinear returns the definite integral from a to b of the line
// passing through (u0,v0) and (u1,v1), evaluated over [a,b] subseteq
// [u0,u1] (callers are responsible for a<=b and the containment).
func integrateLinear(u0, v0, u1, v1, a, b float64) float64 {
	if u1 == u0 {
		return v0 * (b - a)
	}
	slope := (v1 - v0) / (u1 - u0)
	// integral of v0 + slope*(u-u0) du from a to b
	return v0*(b-a) + slope*((b-u0)*(b-u0)-(a-u0)*(a-u0))/2
}
