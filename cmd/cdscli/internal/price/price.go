// Package price implements the "price" subcommand: value a CDS
// contract against an explicit discount curve and survival curve.
package price

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
	"github.com/hwkim/isdacds/curve"
	"github.com/hwkim/isdacds/daycount"
)

// Input defines the JSON input schema for the price subcommand.
type Input struct {
	DiscountBaseDate    string    `json:"discount_base_date"`
	DiscountDates       []string  `json:"discount_dates"`
	DiscountRates       []float64 `json:"discount_rates"`
	DiscountDayCount    string    `json:"discount_day_count_convention"`
	DiscountCompounding string    `json:"discount_compounding_basis"`

	SurvivalBaseDate string    `json:"survival_base_date"`
	SurvivalDates    []string  `json:"survival_dates"`
	HazardRates      []float64 `json:"hazard_rates"`

	TradeDate      string `json:"trade_date"`
	EffectiveDate  string `json:"effective_date"`
	MaturityDate   string `json:"maturity_date"`
	ValueDate      string `json:"value_date"`
	SettlementDate string `json:"settlement_date"`
	StepInDate     string `json:"step_in_date"`

	PaymentFrequency      int     `json:"payment_frequency"`
	DayCountConvention    string  `json:"day_count_convention"`
	BusinessDayConvention string  `json:"business_day_convention"`
	CouponRate            float64 `json:"coupon_rate"`

	Notional        float64 `json:"notional"`
	RecoveryRate    float64 `json:"recovery_rate"`
	IncludeAccrued  bool    `json:"include_accrued_premium"`
	IsBuyProtection bool    `json:"is_buy_protection"`
}

// Output mirrors cds.Result.
type Output struct {
	MarkToMarket     float64 `json:"mark_to_market"`
	ParSpread        float64 `json:"par_spread"`
	PremiumLegPV     float64 `json:"premium_leg_pv"`
	ProtectionLegPV  float64 `json:"protection_leg_pv"`
	AccruedPremiumPV float64 `json:"accrued_premium_pv"`
	UpfrontCharge    float64 `json:"upfront_charge"`
	Error            string  `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("price", flag.ContinueOnError)
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
	fmt.Fprintln(w, "  cdscli price < input.json")
	fmt.Fprintln(w, "  cdscli price -input /path/to/input.json")
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

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func run(input Input) (*Output, error) {
	dBase, err := parseDate(input.DiscountBaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid discount_base_date: %v", err)
	}
	if len(input.DiscountDates) != len(input.DiscountRates) {
		return nil, fmt.Errorf("discount_dates and discount_rates must have the same length")
	}
	dPoints := make([]curve.Point, len(input.DiscountDates))
	for i, ds := range input.DiscountDates {
		d, err := parseDate(ds)
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
	dCurve, err := curve.New(dBase, dPoints, dDC, dBasis, curve.RateCurve)
	if err != nil {
		return nil, err
	}

	sBase, err := parseDate(input.SurvivalBaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid survival_base_date: %v", err)
	}
	if len(input.SurvivalDates) != len(input.HazardRates) {
		return nil, fmt.Errorf("survival_dates and hazard_rates must have the same length")
	}
	sPoints := make([]curve.Point, len(input.SurvivalDates))
	for i, ds := range input.SurvivalDates {
		d, err := parseDate(ds)
		if err != nil {
			return nil, fmt.Errorf("invalid survival_dates[%d]: %v", i, err)
		}
		sPoints[i] = curve.Point{Date: d, Rate: input.HazardRates[i]}
	}
	sCurve, err := curve.New(sBase, sPoints, daycount.ACT365F, curve.Continuous, curve.HazardCurve)
	if err != nil {
		return nil, err
	}

	dates, err := parseDates(input)
	if err != nil {
		return nil, err
	}
	couponDC, err := parseDayCount(input.DayCountConvention)
	if err != nil {
		return nil, err
	}
	bdc, err := parseBusinessDayConvention(input.BusinessDayConvention)
	if err != nil {
		return nil, err
	}

	contract := cds.Contract{
		Dates: dates,
		Coupon: cds.CouponInfo{
			PaymentFrequency:      input.PaymentFrequency,
			DayCount:              couponDC,
			BusinessDayConvention: bdc,
			CouponRate:            input.CouponRate,
		},
		Notional:        input.Notional,
		RecoveryRate:    input.RecoveryRate,
		IncludeAccrued:  input.IncludeAccrued,
		IsBuyProtection: input.IsBuyProtection,
	}

	result, err := cds.Price(contract, dCurve, sCurve)
	if err != nil {
		return nil, err
	}
	return &Output{
		MarkToMarket:     result.MarkToMarket,
		ParSpread:        result.ParSpread,
		PremiumLegPV:     result.PremiumLegPV,
		ProtectionLegPV:  result.ProtectionLegPV,
		AccruedPremiumPV: result.AccruedPremiumPV,
		UpfrontCharge:    result.UpfrontCharge,
	}, nil
}

func parseDates(input Input) (cds.Dates, error) {
	var d cds.Dates
	var err error
	if d.TradeDate, err = parseDate(input.TradeDate); err != nil {
		return cds.Dates{}, fmt.Errorf("invalid trade_date: %v", err)
	}
	if d.EffectiveDate, err = parseDate(input.EffectiveDate); err != nil {
		return cds.Dates{}, fmt.Errorf("invalid effective_date: %v", err)
	}
	if d.MaturityDate, err = parseDate(input.MaturityDate); err != nil {
		return cds.Dates{}, fmt.Errorf("invalid maturity_date: %v", err)
	}
	if d.ValueDate, err = parseDate(input.ValueDate); err != nil {
		return cds.Dates{}, fmt.Errorf("invalid value_date: %v", err)
	}
	if d.SettlementDate, err = parseDate(input.SettlementDate); err != nil {
		return cds.Dates{}, fmt.Errorf("invalid settlement_date: %v", err)
	}
	if d.StepInDate, err = parseDate(input.StepInDate); err != nil {
		return cds.Dates{}, fmt.Errorf("invalid step_in_date: %v", err)
	}
	return d, nil
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
