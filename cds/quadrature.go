package cds

import "math"

// quadratureClock is the day-count used to turn calendar time into the
// "tau" variable that the instantaneous forward f and hazard h decay
// against inside a subinterval. Using a single fixed clock for every
// subinterval (rather than each curve's own day count) keeps f and h
// directly comparable regardless of which day-count convention the
// discount and survival curves were built under; see DESIGN.md.
const quadratureClock = 365.0

// integrateWeightedSurvivalDrop evaluates
//   ∫_0^Δ (alpha0 + slope·tau)·h·exp(-(f+h)·tau) dtau
// in closed form. alpha0=1, slope=0 recovers the protection leg's
// integral; nonzero alpha0/slope is the accrued-on-default weighting by
// elapsed accrual fraction.
func integrateWeightedSurvivalDrop(f, h, delta, alpha0, slope, degeneracyEps float64) float64 {
	k := f + h
	if math.Abs(k) < degeneracyEps {
		// h+f ~ 0: exp(-k*tau) ~ 1 over the whole subinterval.
		return h * (alpha0*delta + slope*delta*delta/2)
	}
	e := math.Exp(-k * delta)
	i0 := (1 - e) / k
	i1 := (1 - e*(1+k*delta)) / (k * k)
	return h * (alpha0*i0 + slope*i1)
}
