// Package creditcurve bootstraps a piecewise-constant hazard-rate
// survival curve from a discount curve and a list of benchmark CDS
// tenors/spreads, one tenor at a time, the way swap/curve/curve.go's
// OIS bootstrap solves one pillar discount factor at a time using the
// already-solved pillars to its left.
package creditcurve

import (
	"fmt"
	"math"
	"time"

	"github.com/hwkim/isdacds/cds"
	"github.com/hwkim/isdacds/cdserrors"
	"github.com/hwkim/isdacds/config"
	"github.com/hwkim/isdacds/curve"
	"github.com/hwkim/isdacds/daycount"
)

// Tenor is one benchmark input to Bootstrap: a maturity expressed in
// years from the valuation date, quoted at a par spread.
type Tenor struct {
	Years  float64
	Spread float64
}

// standardDates derives the effective/step-in/settlement dates the
// bootstrapper assumes for every synthetic benchmark contract: effective
// and step-in one day after valuation, settlement three days after.
func standardDates(valuationDate, maturity time.Time) cds.Dates {
	return cds.Dates{
		TradeDate:      valuationDate,
		EffectiveDate:  valuationDate.AddDate(0, 0, 1),
		MaturityDate:   maturity,
		ValueDate:      valuationDate,
		SettlementDate: valuationDate.AddDate(0, 0, 3),
		StepInDate:     valuationDate.AddDate(0, 0, 1),
	}
}

// Bootstrap solves a hazard-rate survival curve so that each benchmark
// in tenors (ordered by strictly increasing Years) re-prices to zero
// MTM at its own quoted spread. coupon carries the shared
// frequency/day-count/business-day convention of the benchmark
// contracts; recovery is the assumed recovery rate for all benchmarks.
func Bootstrap(dCurve *curve.Curve, valuationDate time.Time, tenors []Tenor, recovery float64, coupon cds.CouponInfo) (*curve.Curve, error) {
	const op = "creditcurve.Bootstrap"
	if len(tenors) == 0 {
		return nil, cdserrors.New(cdserrors.InvalidInput, op, "tenors must be nonempty")
	}
	for i := 1; i < len(tenors); i++ {
		if tenors[i].Years <= tenors[i-1].Years {
			return nil, cdserrors.New(cdserrors.InvalidInput, op, "tenor years must be strictly increasing")
		}
	}
	if recovery < 0 || recovery >= 1 {
		return nil, cdserrors.New(cdserrors.InvalidInput, op, "recovery_rate must be in [0,1)")
	}

	cfg := config.GetConfig()
	points := make([]curve.Point, 0, len(tenors))

	for j, t := range tenors {
		maturity := daycount.AddMonths(valuationDate, int(math.Round(t.Years*12)))
		dates := standardDates(valuationDate, maturity)
		contractCoupon := coupon
		contractCoupon.CouponRate = t.Spread

		objective := func(h float64) (float64, error) {
			trial := append(append([]curve.Point{}, points...), curve.Point{Date: maturity, Rate: h})
			sCurve, err := curve.New(valuationDate, trial, daycount.ACT365F, curve.Continuous, curve.HazardCurve)
			if err != nil {
				return 0, err
			}
			contract := cds.Contract{
				Dates:           dates,
				Coupon:          contractCoupon,
				Notional:        1.0,
				RecoveryRate:    recovery,
				IncludeAccrued:  true,
				IsBuyProtection: true,
			}
			return cds.MTM(contract, dCurve, sCurve)
		}

		guess := t.Spread / (1 - recovery)
		h, err := solveHazard(guess, objective, cfg)
		if err != nil {
			return nil, cdserrors.Wrap(cdserrors.NumericalError, op, fmt.Sprintf("non-convergent at tenor %d", j+1), err)
		}
		points = append(points, curve.Point{Date: maturity, Rate: h})
	}

	return curve.New(valuationDate, points, daycount.ACT365F, curve.Continuous, curve.HazardCurve)
}
