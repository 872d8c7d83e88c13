package curve_test

import (
	"math"
	"testing"
	"time"

	"github.com/hwkim/isdacds/curve"
	"github.com/hwkim/isdacds/daycount"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleCurve(t *testing.T) *curve.Curve {
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

func TestNew_RejectsNonIncreasingDates(t *testing.T) {
	t.Parallel()
	base := date(2025, 1, 1)
	points := []curve.Point{
		{Date: date(2026, 1, 1), Rate: 0.03},
		{Date: date(2026, 1, 1), Rate: 0.04}, // duplicate date
	}
	if _, err := curve.New(base, points, daycount.ACT365F, curve.Annual, curve.RateCurve); err == nil {
		t.Fatalf("expected error for duplicate curve dates")
	}
}

func TestNew_RejectsDateBeforeBase(t *testing.T) {
	t.Parallel()
	base := date(2025, 1, 1)
	points := []curve.Point{{Date: date(2024, 1, 1), Rate: 0.03}}
	if _, err := curve.New(base, points, daycount.ACT365F, curve.Annual, curve.RateCurve); err == nil {
		t.Fatalf("expected error for date before base_date")
	}
}

func TestNew_RejectsNonFiniteRate(t *testing.T) {
	t.Parallel()
	base := date(2025, 1, 1)
	points := []curve.Point{{Date: date(2026, 1, 1), Rate: math.NaN()}}
	if _, err := curve.New(base, points, daycount.ACT365F, curve.Annual, curve.RateCurve); err == nil {
		t.Fatalf("expected error for non-finite rate")
	}
}

func TestDiscountFactor_AtBaseDateIsOne(t *testing.T) {
	t.Parallel()
	c := sampleCurve(t)
	for _, method := range []curve.InterpolationMethod{curve.Linear, curve.FlatForward, curve.LinearForward} {
		df, err := c.DiscountFactor(c.BaseDate(), method)
		if err != nil {
			t.Fatalf("DiscountFactor error: %v", err)
		}
		if df != 1.0 {
			t.Fatalf("%s: DF(base_date) = %v, want exactly 1", method, df)
		}
	}
}

func TestDiscountFactor_BeforeBaseDateIsOne(t *testing.T) {
	t.Parallel()
	c := sampleCurve(t)
	before := c.BaseDate().AddDate(0, 0, -10)
	df, err := c.DiscountFactor(before, curve.FlatForward)
	if err != nil {
		t.Fatalf("DiscountFactor error: %v", err)
	}
	if df != 1.0 {
		t.Fatalf("DF(before base_date) = %v, want 1", df)
	}
}

func TestDiscountFactor_PlausibleRange(t *testing.T) {
	t.Parallel()
	c := sampleCurve(t)
	df, err := c.DiscountFactor(date(2026, 1, 5), curve.FlatForward)
	if err != nil {
		t.Fatalf("DiscountFactor error: %v", err)
	}
	if df <= 0.97 || df >= 0.99 {
		t.Fatalf("DF(2026-01-05) = %v, want roughly 0.98", df)
	}
}

func TestZeroRate_BetweenAdjacentKnots(t *testing.T) {
	t.Parallel()
	c := sampleCurve(t)
	r, err := c.ZeroRate(date(2028, 5, 5), curve.FlatForward)
	if err != nil {
		t.Fatalf("ZeroRate error: %v", err)
	}
	if r < 0.040 || r > 0.045 {
		t.Fatalf("ZeroRate(2028-05-05,FlatForward) = %v, want in [0.040,0.045]", r)
	}

	rLinear, err := c.ZeroRate(date(2028, 5, 5), curve.Linear)
	if err != nil {
		t.Fatalf("ZeroRate error: %v", err)
	}
	if rLinear <= 0.04 || rLinear >= 0.045 {
		t.Fatalf("ZeroRate(2028-05-05,Linear) = %v, want strictly between adjacent knot rates", rLinear)
	}
}

func TestForwardRate_MatchesSegmentFlatForward(t *testing.T) {
	t.Parallel()
	c := sampleCurve(t)
	dStart, dEnd := date(2026, 5, 5), date(2027, 5, 5)

	dfStart, err := c.DiscountFactor(dStart, curve.FlatForward)
	if err != nil {
		t.Fatalf("DiscountFactor error: %v", err)
	}
	dfEnd, err := c.DiscountFactor(dEnd, curve.FlatForward)
	if err != nil {
		t.Fatalf("DiscountFactor error: %v", err)
	}
	tau := daycount.YearFraction(dStart, dEnd, daycount.ACT365F)
	wantFwd := (dfStart/dfEnd - 1.0) / tau

	gotFwd, err := c.ForwardRate(dStart, dEnd, curve.FlatForward)
	if err != nil {
		t.Fatalf("ForwardRate error: %v", err)
	}
	if math.Abs(gotFwd-wantFwd) > 1e-10 {
		t.Fatalf("ForwardRate = %v, want %v", gotFwd, wantFwd)
	}
}

func TestZeroRateDiscountFactor_RoundTrip(t *testing.T) {
	t.Parallel()
	c := sampleCurve(t)
	target := date(2028, 9, 1)
	for _, method := range []curve.InterpolationMethod{curve.Linear, curve.FlatForward, curve.LinearForward} {
		df, err := c.DiscountFactor(target, method)
		if err != nil {
			t.Fatalf("DiscountFactor error: %v", err)
		}
		r, err := c.ZeroRate(target, method)
		if err != nil {
			t.Fatalf("ZeroRate error: %v", err)
		}
		tau := daycount.YearFraction(c.BaseDate(), target, daycount.ACT365F)
		roundTrip := math.Pow(1+r, -tau)
		if math.Abs(roundTrip-df) > 1e-12 {
			t.Fatalf("%s: round trip DF mismatch: got %v want %v", method, roundTrip, df)
		}
	}
}

func TestSingleKnotCurve_AllMethodsAgreeAndFlatExtrapolate(t *testing.T) {
	t.Parallel()
	base := date(2025, 1, 1)
	points := []curve.Point{{Date: date(2026, 1, 1), Rate: 0.05}}
	c, err := curve.New(base, points, daycount.ACT365F, curve.Continuous, curve.RateCurve)
	if err != nil {
		t.Fatalf("curve.New error: %v", err)
	}

	targets := []time.Time{date(2025, 6, 1), date(2026, 1, 1), date(2028, 1, 1)}
	for _, target := range targets {
		var got float64
		for i, method := range []curve.InterpolationMethod{curve.Linear, curve.FlatForward, curve.LinearForward} {
			df, err := c.DiscountFactor(target, method)
			if err != nil {
				t.Fatalf("DiscountFactor error: %v", err)
			}
			if i == 0 {
				got = df
			} else if math.Abs(df-got) > 1e-12 {
				t.Fatalf("%s at %s: DF = %v, want %v (single-knot methods must agree)", method, target.Format("2006-01-02"), df, got)
			}
		}
	}
}

func TestFlatForward_MatchesLinearForward_WhenOnlyOneSegment(t *testing.T) {
	t.Parallel()
	base := date(2025, 1, 1)
	points := []curve.Point{
		{Date: date(2026, 1, 1), Rate: 0.03},
		{Date: date(2027, 1, 1), Rate: 0.05},
	}
	c, err := curve.New(base, points, daycount.ACT365F, curve.Continuous, curve.RateCurve)
	if err != nil {
		t.Fatalf("curve.New error: %v", err)
	}
	target := date(2026, 6, 1)
	dfFlat, err := c.DiscountFactor(target, curve.FlatForward)
	if err != nil {
		t.Fatalf("DiscountFactor error: %v", err)
	}
	dfLinFwd, err := c.DiscountFactor(target, curve.LinearForward)
	if err != nil {
		t.Fatalf("DiscountFactor error: %v", err)
	}
	if math.Abs(dfFlat-dfLinFwd) > 1e-12 {
		t.Fatalf("two-knot curve: FlatForward = %v, LinearForward = %v, want equal", dfFlat, dfLinFwd)
	}
}
