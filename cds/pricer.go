package cds

import (
	"github.com/hwkim/isdacds/cdserrors"
	"github.com/hwkim/isdacds/curve"
)

// Result is the pricer's output object.
type Result struct {
	MarkToMarket     float64
	ParSpread        float64
	PremiumLegPV     float64
	ProtectionLegPV  float64
	AccruedPremiumPV float64
	UpfrontCharge    float64
}

// legPVs computes the three constituent PVs shared by MTM, ParSpread,
// and Upfront so each only runs the quadrature once.
func legPVs(contract Contract, dCurve, sCurve *curve.Curve) (prem, prot, aod float64, err error) {
	const op = "cds.legPVs"
	if err = contract.validate(op); err != nil {
		return 0, 0, 0, err
	}
	prem, err = premiumLegPV(contract, dCurve, sCurve)
	if err != nil {
		return 0, 0, 0, err
	}
	prot, err = protectionLegPV(contract, dCurve, sCurve)
	if err != nil {
		return 0, 0, 0, err
	}
	aod, err = accruedPremiumPV(contract, dCurve, sCurve)
	if err != nil {
		return 0, 0, 0, err
	}
	return prem, prot, aod, nil
}

// MTM computes the contract's mark-to-market: PV_prot minus the full
// premium leg (coupon plus accrued-on-default) for a
// protection buyer, sign-flipped for a protection seller, discounted
// from value_date to settlement_date.
func MTM(contract Contract, dCurve, sCurve *curve.Curve) (float64, error) {
	const op = "cds.MTM"
	prem, prot, aod, err := legPVs(contract, dCurve, sCurve)
	if err != nil {
		return 0, err
	}
	buyerMTM := prot - prem - aod
	if !contract.IsBuyProtection {
		buyerMTM = -buyerMTM
	}
	dfSettle, err := reanchor(dCurve, contract.Dates.ValueDate, contract.Dates.SettlementDate)
	if err != nil {
		return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "discounting to settlement", err)
	}
	if dfSettle <= 0 {
		return 0, cdserrors.New(cdserrors.NumericalError, op, "non-positive settlement discount factor")
	}
	return buyerMTM / dfSettle, nil
}

// ParSpread solves the coupon c* that sets PV_prem(c*)+AOD(c*) equal to
// PV_prot, exploiting linearity of both the coupon leg and the AOD term
// in c: c* = PV_prot / (per-unit-coupon premium+AOD PV).
func ParSpread(contract Contract, dCurve, sCurve *curve.Curve) (float64, error) {
	const op = "cds.ParSpread"
	unit := contract.WithCoupon(1.0)
	unit.IncludeAccrued = true
	premUnit, err := premiumLegPV(unit, dCurve, sCurve)
	if err != nil {
		return 0, err
	}
	aodUnit, err := accruedPremiumPV(unit, dCurve, sCurve)
	if err != nil {
		return 0, err
	}
	denom := premUnit + aodUnit
	if denom == 0 {
		return 0, cdserrors.New(cdserrors.NumericalError, op, "per-unit-coupon premium PV is zero")
	}
	prot, err := protectionLegPV(contract, dCurve, sCurve)
	if err != nil {
		return 0, err
	}
	return prot / denom, nil
}

// Upfront computes the post-2009 convention upfront charge: the contract's
// own MTM struck at its stated coupon, discounted to settlement, expressed
// both as an absolute cash amount and as a fraction of notional. Positive
// means the protection buyer pays the seller.
func Upfront(contract Contract, dCurve, sCurve *curve.Curve) (amount, fractionOfNotional float64, err error) {
	mtm, err := MTM(contract, dCurve, sCurve)
	if err != nil {
		return 0, 0, err
	}
	amount = mtm
	fractionOfNotional = amount / contract.Notional
	return amount, fractionOfNotional, nil
}

// Price composes MTM, ParSpread, and the constituent leg PVs into a
// Result.
func Price(contract Contract, dCurve, sCurve *curve.Curve) (Result, error) {
	prem, prot, aod, err := legPVs(contract, dCurve, sCurve)
	if err != nil {
		return Result{}, err
	}
	buyerMTM := prot - prem - aod
	signedMTM := buyerMTM
	if !contract.IsBuyProtection {
		signedMTM = -buyerMTM
	}
	dfSettle, err := reanchor(dCurve, contract.Dates.ValueDate, contract.Dates.SettlementDate)
	if err != nil {
		return Result{}, err
	}
	if dfSettle <= 0 {
		return Result{}, cdserrors.New(cdserrors.NumericalError, "cds.Price", "non-positive settlement discount factor")
	}
	mtm := signedMTM / dfSettle

	parSpread, err := ParSpread(contract, dCurve, sCurve)
	if err != nil {
		return Result{}, err
	}
	upfrontAmount, _, err := Upfront(contract, dCurve, sCurve)
	if err != nil {
		return Result{}, err
	}

	return Result{
		MarkToMarket:     mtm,
		ParSpread:        parSpread,
		PremiumLegPV:     prem,
		ProtectionLegPV:  prot,
		AccruedPremiumPV: aod,
		UpfrontCharge:    upfrontAmount,
	}, nil
}
