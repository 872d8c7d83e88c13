package creditcurve_test

import (
	"math"
	"testing"
	"time"

	"github.com/hwkim/isdacds/calendar"
	"github.com/hwkim/isdacds/cds"
	"github.com/hwkim/isdacds/creditcurve"
	"github.com/hwkim/isdacds/curve"
	"github.com/hwkim/isdacds/daycount"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func discountCurve(t *testing.T) *curve.Curve {
	base := date(2025, 5, 5)
	points := []curve.Point{
		{Date: date(2025, 11, 5), Rate: 0.03},
		{Date: date(2026, 5, 5), Rate: 0.035},
		{Date: date(2027, 5, 5), Rate: 0.04},
		{Date: date(2030, 5, 5), Rate: 0.045},
	}
	c, err := curve.New(base, points, daycount.ACT365F, curve.Annual, curve.RateCurve)
	if err != nil {
		t.Fatalf("curve.New error: %v", err)
	}
	return c
}

func benchmarkTenors() []creditcurve.Tenor {
	return []creditcurve.Tenor{
		{Years: 1, Spread: 0.01},
		{Years: 2, Spread: 0.015},
		{Years: 3, Spread: 0.018},
		{Years: 5, Spread: 0.02},
	}
}

func benchmarkCoupon() cds.CouponInfo {
	return cds.CouponInfo{
		PaymentFrequency:      4,
		DayCount:              daycount.ACT360,
		BusinessDayConvention: calendar.ModifiedFollowing,
	}
}

func TestBootstrap_SurvivalCurveIsMonotonicallyDecreasing(t *testing.T) {
	t.Parallel()
	dCurve := discountCurve(t)
	valDate := date(2025, 5, 5)

	sCurve, err := creditcurve.Bootstrap(dCurve, valDate, benchmarkTenors(), 0.4, benchmarkCoupon())
	if err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}

	prev := 1.0
	for _, p := range sCurve.Points() {
		s, err := sCurve.SurvivalProbability(p.Date, curve.FlatForward)
		if err != nil {
			t.Fatalf("SurvivalProbability error: %v", err)
		}
		if s > prev {
			t.Fatalf("survival probability at %s (%v) exceeds an earlier value (%v)", p.Date.Format("2006-01-02"), s, prev)
		}
		if s <= 0 || s > 1 {
			t.Fatalf("survival probability at %s = %v, want in (0,1]", p.Date.Format("2006-01-02"), s)
		}
		prev = s
	}
}

func TestBootstrap_BenchmarksRepriceToNearZeroMTM(t *testing.T) {
	t.Parallel()
	dCurve := discountCurve(t)
	valDate := date(2025, 5, 5)
	tenors := benchmarkTenors()
	coupon := benchmarkCoupon()

	sCurve, err := creditcurve.Bootstrap(dCurve, valDate, tenors, 0.4, coupon)
	if err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}

	for _, tenor := range tenors {
		maturity := daycount.AddMonths(valDate, int(tenor.Years*12))
		contractCoupon := coupon
		contractCoupon.CouponRate = tenor.Spread
		contract := cds.Contract{
			Dates: cds.Dates{
				TradeDate:      valDate,
				EffectiveDate:  valDate.AddDate(0, 0, 1),
				MaturityDate:   maturity,
				ValueDate:      valDate,
				SettlementDate: valDate.AddDate(0, 0, 3),
				StepInDate:     valDate.AddDate(0, 0, 1),
			},
			Coupon:          contractCoupon,
			Notional:        1.0,
			RecoveryRate:    0.4,
			IncludeAccrued:  true,
			IsBuyProtection: true,
		}
		mtm, err := cds.MTM(contract, dCurve, sCurve)
		if err != nil {
			t.Fatalf("MTM error at tenor %v: %v", tenor.Years, err)
		}
		if math.Abs(mtm) > 1e-8 {
			t.Fatalf("benchmark tenor %v years: MTM = %v, want ~0 at quoted spread %v", tenor.Years, mtm, tenor.Spread)
		}
	}
}

func TestBootstrap_RejectsNonIncreasingTenorYears(t *testing.T) {
	t.Parallel()
	dCurve := discountCurve(t)
	valDate := date(2025, 5, 5)
	tenors := []creditcurve.Tenor{
		{Years: 2, Spread: 0.015},
		{Years: 1, Spread: 0.01},
	}
	if _, err := creditcurve.Bootstrap(dCurve, valDate, tenors, 0.4, benchmarkCoupon()); err == nil {
		t.Fatalf("expected error for non-increasing tenor years")
	}
}

func TestBootstrap_RejectsOutOfRangeRecovery(t *testing.T) {
	t.Parallel()
	dCurve := discountCurve(t)
	valDate := date(2025, 5, 5)
	if _, err := creditcurve.Bootstrap(dCurve, valDate, benchmarkTenors(), 1.0, benchmarkCoupon()); err == nil {
		t.Fatalf("expected error for recovery_rate == 1")
	}
	if _, err := creditcurve.Bootstrap(dCurve, valDate, benchmarkTenors(), -0.1, benchmarkCoupon()); err == nil {
		t.Fatalf("expected error for negative recovery_rate")
	}
}

func TestBootstrap_RejectsEmptyTenors(t *testing.T) {
	t.Parallel()
	dCurve := discountCurve(t)
	valDate := date(2025, 5, 5)
	if _, err := creditcurve.Bootstrap(dCurve, valDate, nil, 0.4, benchmarkCoupon()); err == nil {
		t.Fatalf("expected error for empty tenor list")
	}
}
