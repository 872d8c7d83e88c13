// Package curve implements the term-structure engine: zero/discount curves
// and survival/hazard curves share the same mechanics (ordered knots,
// interpolation, rate<->discount-factor conversion) and differ only in how
// callers interpret the resulting discount factor.
package curve

import (
	"math"
	"sort"
	"time"

	"github.com/hwkim/isdacds/cdserrors"
	"github.com/hwkim/isdacds/daycount"
)

// Kind tags whether a Curve's discount factor should be read as a discount
// factor (Rate) or a survival probability (Hazard). It carries no behavior
// difference in this package, and no function in this module checks it: a
// hazard curve passed where a discount curve is expected is not rejected.
type Kind int

const (
	RateCurve   Kind = iota
	HazardCurve
)

// Point is a single (date, rate) knot.
type Point struct {
	Date time.Time
	Rate float64
}

// Curve is an ordered term structure anchored at BaseDate.
type Curve struct {
	baseDate    time.Time
	points      []Point
	dayCount    daycount.Convention
	compounding CompoundingBasis
	kind        Kind

	// t[i] = daycount.YearFraction(baseDate, points[i].Date, dayCount),
	// cached at construction since every operation needs it.
	t []float64
}

// New validates and constructs a Curve: points must be strictly
// increasing in date, every date >= baseDate, and every rate finite;
// otherwise construction fails with InvalidInput.
func New(baseDate time.Time, points []Point, dc daycount.Convention, basis CompoundingBasis, kind Kind) (*Curve, error) {
	const op = "curve.New"
	if len(points) < 1 {
		return nil, cdserrors.New(cdserrors.InvalidInput, op, "curve must have at least one point")
	}
	sorted := make([]Point, len(points))
	copy(sorted, points)

	for i, p := range sorted {
		if p.Date.Before(baseDate) {
			return nil, cdserrors.New(cdserrors.InvalidInput, op, "curve date is before base date")
		}
		if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
			return nil, cdserrors.New(cdserrors.InvalidInput, op, "curve rate is not finite")
		}
		if i > 0 && !sorted[i].Date.After(sorted[i-1].Date) {
			return nil, cdserrors.New(cdserrors.InvalidInput, op, "curve dates must be strictly increasing")
		}
	}

	c := &Curve{
		baseDate:    baseDate,
		points:      sorted,
		dayCount:    dc,
		compounding: basis,
		kind:        kind,
	}
	c.t = make([]float64, len(sorted))
	for i, p := range sorted {
		c.t[i] = daycount.YearFraction(baseDate, p.Date, dc)
	}
	return c, nil
}

// BaseDate returns the curve's valuation anchor.
func (c *Curve) BaseDate() time.Time { return c.baseDate }

// DayCount returns the curve's day-count convention.
func (c *Curve) DayCount() daycount.Convention { return c.dayCount }

// CompoundingBasis returns the curve's compounding basis.
func (c *Curve) CompoundingBasis() CompoundingBasis { return c.compounding }

// Kind reports whether this curve holds rates or hazard rates.
func (c *Curve) Kind() Kind { return c.kind }

// Points returns a defensive copy of the curve's knots.
func (c *Curve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// yearFraction is a shorthand for daycount.YearFraction under this curve's
// convention, anchored at the curve's base date.
func (c *Curve) yearFraction(target time.Time) float64 {
	return daycount.YearFraction(c.baseDate, target, c.dayCount)
}

// bracket returns the index k such that t[k] <= target <= t[k+1], plus a
// flag for whether target fell strictly within the curve's span. When it
// falls outside, ok is false and k indicates which boundary knot to use
// for flat extrapolation (0 for "before first", len-1 for "at or after
// last"). Uses the same sort.Search-based bracketing style as
// swap/curve/utils.go, generalized to year fractions instead of dates.
func (c *Curve) bracket(tTarget float64) (k int, ok bool) {
	n := len(c.t)
	if tTarget <= c.t[0] {
		return 0, false
	}
	if tTarget >= c.t[n-1] {
		return n - 1, false
	}
	idx := sort.Search(n, func(i int) bool { return c.t[i] >= tTarget })
	// c.t[idx-1] < tTarget < c.t[idx]
	return idx - 1, true
}
