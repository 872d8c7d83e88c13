package cds_test

import (
	"math"
	"testing"
	"time"

	"github.com/hwkim/isdacds/calendar"
	"github.com/hwkim/isdacds/cds"
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
		t.Fatalf("discount curve.New error: %v", err)
	}
	return c
}

func survivalCurve(t *testing.T, base time.Time) *curve.Curve {
	points := []curve.Point{
		{Date: base.AddDate(1, 0, 0), Rate: 0.02},
		{Date: base.AddDate(5, 0, 0), Rate: 0.03},
	}
	c, err := curve.New(base, points, daycount.ACT365F, curve.Continuous, curve.HazardCurve)
	if err != nil {
		t.Fatalf("survival curve.New error: %v", err)
	}
	return c
}

func sampleContract(base time.Time) cds.Contract {
	return cds.Contract{
		Dates: cds.Dates{
			TradeDate:      base,
			EffectiveDate:  base.AddDate(0, 0, 1),
			MaturityDate:   base.AddDate(5, 0, 0),
			ValueDate:      base,
			SettlementDate: base.AddDate(0, 0, 3),
			StepInDate:     base.AddDate(0, 0, 1),
		},
		Coupon: cds.CouponInfo{
			PaymentFrequency:      4,
			DayCount:              daycount.ACT360,
			BusinessDayConvention: calendar.ModifiedFollowing,
			CouponRate:            0.01,
		},
		Notional:        1e7,
		RecoveryRate:    0.4,
		IncludeAccrued:  true,
		IsBuyProtection: true,
	}
}

func TestMTM_BuySellSymmetry(t *testing.T) {
	t.Parallel()
	base := date(2025, 5, 5)
	dCurve := discountCurve(t)
	sCurve := survivalCurve(t, base)

	buy := sampleContract(base)
	sell := buy
	sell.IsBuyProtection = false

	mtmBuy, err := cds.MTM(buy, dCurve, sCurve)
	if err != nil {
		t.Fatalf("MTM(buy) error: %v", err)
	}
	mtmSell, err := cds.MTM(sell, dCurve, sCurve)
	if err != nil {
		t.Fatalf("MTM(sell) error: %v", err)
	}
	if math.Abs(mtmBuy+mtmSell) > 1e-6 {
		t.Fatalf("MTM(buy)=%v, MTM(sell)=%v, want exact sign symmetry", mtmBuy, mtmSell)
	}
}

func TestMTM_LinearInCoupon(t *testing.T) {
	t.Parallel()
	base := date(2025, 5, 5)
	dCurve := discountCurve(t)
	sCurve := survivalCurve(t, base)

	c1 := sampleContract(base)
	c1.Coupon.CouponRate = 0.01
	c2 := c1
	c2.Coupon.CouponRate = 0.02

	mtm1, err := cds.MTM(c1, dCurve, sCurve)
	if err != nil {
		t.Fatalf("MTM error: %v", err)
	}
	mtm2, err := cds.MTM(c2, dCurve, sCurve)
	if err != nil {
		t.Fatalf("MTM error: %v", err)
	}

	c0 := c1
	c0.Coupon.CouponRate = 0
	mtm0, err := cds.MTM(c0, dCurve, sCurve)
	if err != nil {
		t.Fatalf("MTM error: %v", err)
	}

	slope1 := mtm1 - mtm0
	slope2 := (mtm2 - mtm0) / 2
	if math.Abs(slope1-slope2) > 1e-6*math.Abs(slope1) {
		t.Fatalf("MTM not linear in coupon: slope at c=0.01 is %v, implied slope from c=0.02 is %v", slope1, slope2)
	}
}

func TestParSpread_RepricesToZeroMTM(t *testing.T) {
	t.Parallel()
	base := date(2025, 5, 5)
	dCurve := discountCurve(t)
	sCurve := survivalCurve(t, base)
	contract := sampleContract(base)

	parSpread, err := cds.ParSpread(contract, dCurve, sCurve)
	if err != nil {
		t.Fatalf("ParSpread error: %v", err)
	}
	atPar := contract.WithCoupon(parSpread)
	mtm, err := cds.MTM(atPar, dCurve, sCurve)
	if err != nil {
		t.Fatalf("MTM error: %v", err)
	}
	if math.Abs(mtm)/contract.Notional > 1e-8 {
		t.Fatalf("MTM at par spread = %v (%.2e of notional), want ~0", mtm, mtm/contract.Notional)
	}
}

func TestUpfront_SignConsistentWithCouponVsParSpread(t *testing.T) {
	t.Parallel()
	base := date(2025, 5, 5)
	dCurve := discountCurve(t)
	sCurve := survivalCurve(t, base)
	contract := sampleContract(base)
	contract.Coupon.CouponRate = 0.05 // above par spread

	amount, fraction, err := cds.Upfront(contract, dCurve, sCurve)
	if err != nil {
		t.Fatalf("Upfront error: %v", err)
	}
	if amount >= 0 {
		t.Fatalf("expected negative upfront (protection seller pays buyer) when coupon > par spread, got %v", amount)
	}
	if fraction != amount/contract.Notional {
		t.Fatalf("fraction not consistent with amount/notional")
	}
}

func TestPremiumLegPV_ZeroForPeriodsBeforeStepIn(t *testing.T) {
	t.Parallel()
	base := date(2025, 5, 5)
	dCurve := discountCurve(t)
	sCurve := survivalCurve(t, base)
	contract := sampleContract(base)
	// step-in at maturity: every period ends on or before step-in.
	contract.Dates.StepInDate = contract.Dates.MaturityDate

	result, err := cds.Price(contract, dCurve, sCurve)
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	if result.PremiumLegPV != 0 {
		t.Fatalf("PremiumLegPV = %v, want 0 when step_in is at maturity", result.PremiumLegPV)
	}
}
