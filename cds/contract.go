// Package cds values single-name Credit Default Swap contracts against a
// discount curve and a survival curve: premium-leg PV, protection-leg PV,
// accrued premium on default, mark-to-market, par spread, and upfront
// charge.
package cds

import (
	"time"

	"github.com/hwkim/isdacds/calendar"
	"github.com/hwkim/isdacds/daycount"
)

// Dates groups a contract's six reference dates, mirroring the grouping
// the ISDA model uses internally (trade/effective/maturity/value/
// settlement/step-in) rather than flattening them into Contract.
type Dates struct {
	TradeDate      time.Time
	EffectiveDate  time.Time
	MaturityDate   time.Time
	ValueDate      time.Time
	SettlementDate time.Time
	StepInDate     time.Time
}

// CouponInfo groups the accrual conventions shared by every period of a
// contract's premium leg.
type CouponInfo struct {
	PaymentFrequency      int // one of 1, 2, 4, 12
	DayCount              daycount.Convention
	BusinessDayConvention calendar.BusinessDayConvention
	CouponRate            float64 // decimal, e.g. 0.01 = 100bp
}

// Contract is an immutable single-name CDS contract.
type Contract struct {
	Dates           Dates
	Coupon          CouponInfo
	Notional        float64
	RecoveryRate    float64
	IncludeAccrued  bool
	IsBuyProtection bool
}

// WithCoupon returns a copy of the contract with its coupon rate replaced.
// Used by ParSpread to reuse the valuation machinery at a trial
// coupon without mutating the caller's contract.
func (c Contract) WithCoupon(rate float64) Contract {
	c.Coupon.CouponRate = rate
	return c
}
