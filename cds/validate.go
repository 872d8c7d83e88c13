package cds

import (
	"math"

	"github.com/hwkim/isdacds/cdserrors"
)

// validate checks the contract's basic invariants: maturity after
// effective, positive notional, recovery in [0,1), a finite coupon
// rate, a recognized payment frequency.
func (c Contract) validate(op string) error {
	if !c.Dates.MaturityDate.After(c.Dates.EffectiveDate) {
		return cdserrors.New(cdserrors.InvalidInput, op, "maturity_date must be after effective_date")
	}
	if c.Notional <= 0 {
		return cdserrors.New(cdserrors.InvalidInput, op, "notional must be positive")
	}
	if c.RecoveryRate < 0 || c.RecoveryRate >= 1 {
		return cdserrors.New(cdserrors.InvalidInput, op, "recovery_rate must be in [0,1)")
	}
	if math.IsNaN(c.Coupon.CouponRate) || math.IsInf(c.Coupon.CouponRate, 0) {
		return cdserrors.New(cdserrors.InvalidInput, op, "coupon_rate must be finite")
	}
	switch c.Coupon.PaymentFrequency {
	case 1, 2, 4, 12:
	default:
		return cdserrors.New(cdserrors.InvalidInput, op, "payment_frequency must be one of 1, 2, 4, 12")
	}
	return nil
}
