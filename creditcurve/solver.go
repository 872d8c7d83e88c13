package creditcurve

import (
	"math"

	"github.com/hwkim/isdacds/cdserrors"
	"github.com/hwkim/isdacds/config"
)

// solveHazard finds h >= 0 such that objective(h) == 0, the per-tenor
// bootstrap root. It takes Newton steps using a
// central finite-difference derivative and falls back to bracket
// expansion plus bisection whenever a Newton step would leave the
// non-negative hazard domain or the derivative is too small to trust,
// mirroring the newton/bisect split in bisection-fallback root finders
// elsewhere in the pack (objective here has no analytic derivative, so
// Newton's derivative is estimated rather than computed in closed form).
func solveHazard(guess float64, objective func(float64) (float64, error), cfg config.Config) (float64, error) {
	const op = "creditcurve.solveHazard"
	if guess <= 0 {
		guess = 1e-4
	}

	h := guess
	prevH := h
	for iter := 0; iter < cfg.MaxBootstrapIterations; iter++ {
		fVal, err := objective(h)
		if err != nil {
			return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "objective evaluation failed", err)
		}
		if math.Abs(fVal) < cfg.BootstrapTolerance {
			return h, nil
		}
		if iter > 0 && math.Abs(h-prevH) < cfg.HazardStepTolerance {
			return h, nil
		}

		step := math.Max(1e-6, h*1e-4)
		fUp, errUp := objective(h + step)
		fDown, errDown := objective(h - step)
		if errUp == nil && errDown == nil && h-step > 0 {
			deriv := (fUp - fDown) / (2 * step)
			if math.Abs(deriv) >= cfg.DerivativeFloor {
				prevH = h
				next := h - fVal/deriv
				if next > 0 && !math.IsNaN(next) && !math.IsInf(next, 0) {
					h = next
					continue
				}
			}
		}

		// Newton step was untrustworthy or left the domain; fall back to
		// bisection with an expanding bracket around the current guess.
		root, err := bisectHazard(objective, h, cfg)
		if err != nil {
			return 0, err
		}
		return root, nil
	}
	return 0, cdserrors.New(cdserrors.NumericalError, op, "failed to converge within iteration cap")
}

// bisectHazard brackets a sign change around seed by doubling the search
// window outward, then bisects to the tolerance in cfg.
func bisectHazard(objective func(float64) (float64, error), seed float64, cfg config.Config) (float64, error) {
	const op = "creditcurve.bisectHazard"
	lo, hi := math.Max(seed*0.5, 1e-8), seed*1.5
	if hi <= lo {
		hi = lo + 1e-3
	}

	flo, err := objective(lo)
	if err != nil {
		return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "objective at lower bracket failed", err)
	}
	fhi, err := objective(hi)
	if err != nil {
		return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "objective at upper bracket failed", err)
	}

	expansions := 0
	for flo*fhi > 0 && expansions < cfg.MaxBracketExpansions {
		lo = math.Max(lo/2, 0)
		hi *= 2
		flo, err = objective(lo)
		if err != nil {
			return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "objective at lower bracket failed", err)
		}
		fhi, err = objective(hi)
		if err != nil {
			return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "objective at upper bracket failed", err)
		}
		expansions++
	}
	if flo*fhi > 0 {
		return 0, cdserrors.New(cdserrors.NumericalError, op, "non-convergent: failed to bracket a sign change")
	}

	for iter := 0; iter < cfg.MaxBootstrapIterations; iter++ {
		mid := (lo + hi) / 2
		fmid, err := objective(mid)
		if err != nil {
			return 0, cdserrors.Wrap(cdserrors.NumericalError, op, "objective at midpoint failed", err)
		}
		if math.Abs(fmid) < cfg.BootstrapTolerance || (hi-lo) < cfg.HazardStepTolerance {
			return mid, nil
		}
		if (flo < 0) == (fmid < 0) {
			lo, flo = mid, fmid
		} else {
			hi, fhi = mid, fmid
		}
	}
	return 0, cdserrors.New(cdserrors.NumericalError, op, "non-convergent: bisection failed to converge")
}
