package cds

import (
	"math"
	"time"

	"github.com/hwkim/isdacds/cdserrors"
	"github.com/hwkim/isdacds/config"
	"github.com/hwkim/isdacds/curve"
	"github.com/hwkim/isdacds/daycount"
	"github.com/hwkim/isdacds/schedule"
)

const pricerInterp = curve.FlatForward

// tau converts a calendar interval into the fixed quadrature clock unit
// (see quadratureClock).
func tau(a, b time.Time) float64 {
	return float64(daycount.Days(a, b)) / quadratureClock
}

// subIntensities returns the log-linear forward f and hazard h implied
// by dCurve and sCurve between ua and ub, plus the elapsed quadrature
// time delta. u_a must be strictly before u_b.
func subIntensities(dCurve, sCurve *curve.Curve, ua, ub time.Time) (f, h, delta float64, err error) {
	dfA, err := dCurve.DiscountFactor(ua, pricerInterp)
	if err != nil {
		return 0, 0, 0, err
	}
	dfB, err := dCurve.DiscountFactor(ub, pricerInterp)
	if err != nil {
		return 0, 0, 0, err
	}
	sA, err := sCurve.DiscountFactor(ua, pricerInterp)
	if err != nil {
		return 0, 0, 0, err
	}
	sB, err := sCurve.DiscountFactor(ub, pricerInterp)
	if err != nil {
		return 0, 0, 0, err
	}
	if dfA <= 0 || dfB <= 0 || sA <= 0 || sB <= 0 {
		return 0, 0, 0, cdserrors.New(cdserrors.NumericalError, "subIntensities", "non-positive discount factor or survival probability")
	}
	delta = tau(ua, ub)
	if delta <= 0 {
		return 0, 0, 0, nil
	}
	f = -math.Log(dfB/dfA) / delta
	h = -math.Log(sB/sA) / delta
	return f, h, delta, nil
}

// reanchor rescales a discount factor or survival probability quoted
// from curve's own base date so it is relative to valueDate instead:
// every leg is valued from the contract's value_date, not from each
// curve's own base_date, so when they differ we divide by the curve's
// own DF/S at value_date.
func reanchor(c *curve.Curve, valueDate, target time.Time) (float64, error) {
	atTarget, err := c.DiscountFactor(target, pricerInterp)
	if err != nil {
		return 0, err
	}
	atValue, err := c.DiscountFactor(valueDate, pricerInterp)
	if err != nil {
		return 0, err
	}
	if atValue <= 0 {
		return 0, cdserrors.New(cdserrors.NumericalError, "reanchor", "non-positive anchor discount factor")
	}
	return atTarget / atValue, nil
}

// schedulePeriods builds the contract's unadjusted accrual schedule.
func schedulePeriods(contract Contract) []schedule.Period {
	return schedule.Generate(
		contract.Dates.EffectiveDate,
		contract.Dates.MaturityDate,
		contract.Coupon.PaymentFrequency,
		contract.Coupon.BusinessDayConvention,
	)
}

// premiumLegPV computes the coupon leg's PV: periods ending on or
// before step_in contribute zero.
func premiumLegPV(contract Contract, dCurve, sCurve *curve.Curve) (float64, error) {
	const op = "cds.premiumLegPV"
	valueDate := contract.Dates.ValueDate
	total := 0.0
	for _, p := range schedulePeriods(contract) {
		if !p.AccrualEnd.After(contract.Dates.StepInDate) {
			continue
		}
		alpha := daycount.YearFraction(p.AccrualStart, p.AccrualEnd, contract.Coupon.DayCount)
		dfPay, err := reanchor(dCurve, valueDate, p.PayDate)
		if err != nil {
			return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "discounting pay date", err)
		}
		sEnd, err := reanchor(sCurve, valueDate, p.AccrualEnd)
		if err != nil {
			return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "survival at accrual end", err)
		}
		total += contract.Coupon.CouponRate * alpha * dfPay * sEnd
	}
	return total * contract.Notional, nil
}

// accruedPremiumPV computes accrued-on-default by quadrature over the
// merged knot set within each period, log-linear DF/S per subinterval.
func accruedPremiumPV(contract Contract, dCurve, sCurve *curve.Curve) (float64, error) {
	const op = "cds.accruedPremiumPV"
	if !contract.IncludeAccrued {
		return 0, nil
	}
	valueDate := contract.Dates.ValueDate
	stepIn := contract.Dates.StepInDate
	eps := config.GetConfig().ForwardHazardDegeneracyEps

	total := 0.0
	for _, p := range schedulePeriods(contract) {
		lo := p.AccrualStart
		if stepIn.After(lo) {
			lo = stepIn
		}
		if !p.AccrualEnd.After(lo) {
			continue
		}
		knots := mergedKnots(lo, p.AccrualEnd, dCurve, sCurve)
		for i := 0; i+1 < len(knots); i++ {
			ua, ub := knots[i], knots[i+1]
			f, h, delta, err := subIntensities(dCurve, sCurve, ua, ub)
			if err != nil {
				return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "subinterval intensities", err)
			}
			if delta <= 0 {
				continue
			}
			dfA, err := reanchor(dCurve, valueDate, ua)
			if err != nil {
				return 0, err
			}
			sA, err := reanchor(sCurve, valueDate, ua)
			if err != nil {
				return 0, err
			}
			alpha0 := daycount.YearFraction(p.AccrualStart, ua, contract.Coupon.DayCount)
			alphaB := daycount.YearFraction(p.AccrualStart, ub, contract.Coupon.DayCount)
			slope := (alphaB - alpha0) / delta
			integral := integrateWeightedSurvivalDrop(f, h, delta, alpha0, slope, eps)
			total += dfA * sA * integral
		}
	}
	return total * contract.Coupon.CouponRate * contract.Notional, nil
}

// protectionLegPV computes the contingent leg's PV by quadrature over
// the merged knot set within [value_date, maturity_date].
func protectionLegPV(contract Contract, dCurve, sCurve *curve.Curve) (float64, error) {
	const op = "cds.protectionLegPV"
	valueDate := contract.Dates.ValueDate
	maturity := contract.Dates.MaturityDate
	if !maturity.After(valueDate) {
		return 0, nil
	}
	eps := config.GetConfig().ForwardHazardDegeneracyEps

	knots := mergedKnots(valueDate, maturity, dCurve, sCurve)
	total := 0.0
	for i := 0; i+1 < len(knots); i++ {
		ua, ub := knots[i], knots[i+1]
		f, h, delta, err := subIntensities(dCurve, sCurve, ua, ub)
		if err != nil {
			return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "subinterval intensities", err)
		}
		if delta <= 0 {
			continue
		}
		dfA, err := reanchor(dCurve, valueDate, ua)
		if err != nil {
			return 0, err
		}
		sA, err := reanchor(sCurve, valueDate, ua)
		if err != nil {
			return 0, err
		}
		integral := integrateWeightedSurvivalDrop(f, h, delta, 1.0, 0.0, eps)
		total += dfA * sA * integral
	}
	return total * (1 - contract.RecoveryRate) * contract.Notional, nil
}
