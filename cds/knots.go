package cds

import (
	"sort"
	"time"

	"github.com/hwkim/isdacds/curve"
)

// mergedKnots returns the sorted, deduplicated union of lo, hi, and every
// knot date of dCurve and sCurve that falls strictly between them. Every
// leg integral is quadrature over this merged set so that DF and S are
// never assumed log-linear across a point where either curve actually
// bends.
func mergedKnots(lo, hi time.Time, dCurve, sCurve *curve.Curve) []time.Time {
	seen := map[int64]bool{lo.Unix(): true, hi.Unix(): true}
	out := []time.Time{lo, hi}
	add := func(t time.Time) {
		if t.After(lo) && t.Before(hi) && !seen[t.Unix()] {
			seen[t.Unix()] = true
			out = append(out, t)
		}
	}
	for _, p := range dCurve.Points() {
		add(p.Date)
	}
	for _, p := range sCurve.Points() {
		add(p.Date)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
