// Package bootstrap implements the "bootstrap" subcommand: derive a
// hazard-rate survival curve from a discount curve and benchmark CDS
// tenor/spread quotes.
package bootstrap

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hwkim/isdacds/calendar"
	"github.com/hwkim/isdacds/cds"
	"github.com/hwkim/isdacds/creditcurve"
	"github.com/hwkim/isdacds/curve"
	"github.com/hwkim/isdacds/daycount"
)

// Input defines the JSON input schema. Discount curve rates and
// benchmark spreads are decimals.
type Input struct {
	ValuationDate       string    `json:"valuation_date"`
	DiscountDates       []string  `json:"discount_dates"`
	DiscountRates       []float64 `json:"discount_rates"`
	DiscountDayCount    string    `json:"discount_day_count_convention"`
	DiscountCompounding string    `json:"discount_compounding_basis"`

	TenorYears []float64 `json:"tenor_years"`
	Spreads    []float64 `json:"spreads"`
	Recovery   float64   `json:"recovery_rate"`

	PaymentFrequency      int    `json:"payment_frequency"`
	DayCountConvention    string `json:"day_count_convention"`
	BusinessDayConvention string `json:"business_day_convention"`
}

// Output is the JSON output schema: the bootstrapped curve as parallel
// date/hazard arrays.
type Output struct {
	HazardDates []string  `json:"hazard_dates"`
	HazardRates []float64 `json:"hazard_rates"`
	Error       string    `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bootstrap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "JSON input path (optional; if set, ignores stdin)")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		usage(stderr)
		return 0
	}

	inputBytes, err := readInput(stdin, strings.TrimSpace(*inputPath))
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to read input: %v", err))
	}

	var input Input
	if err := json.Unmarshal(inputBytes, &input); err != nil {
		return writeError(stdout, fmt.Sprintf("failed to parse JSON input: %v", err))
	}

	output, err := run(input)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cdscli bootstrap < input.json")
	fmt.Fprintln(w, "  cdscli bootstrap -input /path/to/input.json")
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func writeError(stdout io.Writer, msg string) int {
	outputBytes, _ := json.Marshal(Output{Error: msg})
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}

const dateLayout = "2006-01-02"

func run(input Input) (*Output, error) {
	valuationDate, err := time.Parse(dateLayout, input.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid valuation_date: %v", err)
	}
	if len(input.DiscountDates) != len(input.DiscountRates) {
		return nil, fmt.Errorf("discount_dates and discount_rates must have the same length")
	}
	if len(input.TenorYears) != len(input.Spreads) {
		return nil, fmt.Errorf("tenor_years and spreads must have the same length")
	}

	dPoints := make([]curve.Point, len(input.DiscountDates))
	for i, ds := range input.DiscountDates {
		d, err := time.Parse(dateLayout, ds)
		if err != nil {
			return nil, fmt.Errorf("invalid discount_dates[%d]: %v", i, err)
		}
		dPoints[i] = curve.Point{Date: d, Rate: input.DiscountRates[i]}
	}
	dDC, err := parseDayCount(input.DiscountDayCount)
	if err != nil {
		return nil, err
	}
	dBasis, err := parseCompounding(input.DiscountCompounding)
	if err != nil {
		return nil, err
	}
	dCurve, err := curve.New(valuationDate, dPoints, dDC, dBasis, curve.RateCurve)
	if err != nil {
		return nil, err
	}

	tenors := make([]creditcurve.Tenor, len(input.TenorYears))
	for i := range input.TenorYears {
		tenors[i] = creditcurve.Tenor{Years: input.TenorYears[i], Spread: input.Spreads[i]}
	}

	couponDC, err := parseDayCount(input.DayCountConvention)
	if err != nil {
		return nil, err
	}
	bdc, err := parseBusinessDayConvention(input.BusinessDayConvention)
	if err != nil {
		return nil, err
	}
	coupon := cds.CouponInfo{
		PaymentFrequency:      input.PaymentFrequency,
		DayCount:              couponDC,
		BusinessDayConvention: bdc,
	}

	sCurve, err := creditcurve.Bootstrap(dCurve, valuationDate, tenors, input.Recovery, coupon)
	if err != nil {
		return nil, err
	}

	points := sCurve.Points()
	out := &Output{
		HazardDates: make([]string, len(points)),
		HazardRates: make([]float64, len(points)),
	}
	for i, p := range points {
		out.HazardDates[i] = p.Date.Format(dateLayout)
		out.HazardRates[i] = p.Rate
	}
	return out, nil
}

func parseDayCount(s string) (daycount.Convention, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACT_365F":
		return daycount.ACT365F, nil
	case "ACT_360":
		return daycount.ACT360, nil
	case "THIRTY_360":
		return daycount.Thirty360, nil
	case "ACT_ACT_ISDA":
		return daycount.ActActISDA, nil
	default:
		return "", fmt.Errorf("unrecognized day count convention %q", s)
	}
}

func parseCompounding(s string) (curve.CompoundingBasis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CONTINUOUS":
		return curve.Continuous, nil
	case "ANNUAL":
		return curve.Annual, nil
	case "SEMIANNUAL", "SEMI_ANNUAL":
		return curve.SemiAnnual, nil
	case "QUARTERLY":
		return curve.Quarterly, nil
	case "MONTHLY":
		return curve.Monthly, nil
	default:
		return 0, fmt.Errorf("unrecognized compounding basis %q", s)
	}
}

func parseBusinessDayConvention(s string) (calendar.BusinessDayConvention, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return calendar.None, nil
	case "FOLLOW", "FOLLOWING":
		return calendar.Following, nil
	case "MODIFIED_FOLLOW", "MODIFIEDFOLLOWING":
		return calendar.ModifiedFollowing, nil
	case "PRECEDING":
		return calendar.Preceding, nil
	default:
		return "", fmt.Errorf("unrecognized business day convention %q", s)
	}
}
