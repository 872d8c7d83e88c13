// Package curveinfo implements the "curve" subcommand: build a zero
// curve from JSON and query discount factor / zero rate / forward rate
// against it.
package curveinfo

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hwkim/isdacds/curve"
	"github.com/hwkim/isdacds/daycount"
)

// Input defines the JSON input schema.
//
// Conventions:
// - rates are decimals (e.g., 0.035 means 3.5%)
// - interpolation is one of "Linear", "FlatForward", "LinearForward"
type Input struct {
	BaseDate           string    `json:"base_date"`
	Dates              []string  `json:"dates"`
	Rates              []float64 `json:"rates"`
	DayCountConvention string    `json:"day_count_convention"`
	CompoundingBasis   string    `json:"compounding_basis"`
	Interpolation      string    `json:"interpolation"`

	DiscountFactorDates []string    `json:"discount_factor_dates,omitempty"`
	ZeroRateDates       []string    `json:"zero_rate_dates,omitempty"`
	ForwardRateWindows  [][2]string `json:"forward_rate_windows,omitempty"`
}

// Output is the JSON output schema.
type Output struct {
	DiscountFactors map[string]float64 `json:"discount_factors,omitempty"`
	ZeroRates       map[string]float64 `json:"zero_rates,omitempty"`
	ForwardRates    []float64          `json:"forward_rates,omitempty"`
	Error           string             `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("curve", flag.ContinueOnError)
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

	output, err := query(input)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cdscli curve < input.json")
	fmt.Fprintln(w, "  cdscli curve -input /path/to/input.json")
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

func query(input Input) (*Output, error) {
	baseDate, err := parseDate(input.BaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid base_date: %v", err)
	}
	if len(input.Dates) != len(input.Rates) {
		return nil, fmt.Errorf("dates and rates must have the same length")
	}

	points := make([]curve.Point, len(input.Dates))
	for i, ds := range input.Dates {
		d, err := parseDate(ds)
		if err != nil {
			return nil, fmt.Errorf("invalid dates[%d]: %v", i, err)
		}
		points[i] = curve.Point{Date: d, Rate: input.Rates[i]}
	}

	dc, err := parseDayCount(input.DayCountConvention)
	if err != nil {
		return nil, err
	}
	basis, err := parseCompounding(input.CompoundingBasis)
	if err != nil {
		return nil, err
	}
	method, err := parseInterpolation(input.Interpolation)
	if err != nil {
		return nil, err
	}

	c, err := curve.New(baseDate, points, dc, basis, curve.RateCurve)
	if err != nil {
		return nil, err
	}

	out := &Output{}
	if len(input.DiscountFactorDates) > 0 {
		out.DiscountFactors = map[string]float64{}
		for _, ds := range input.DiscountFactorDates {
			d, err := parseDate(ds)
			if err != nil {
				return nil, fmt.Errorf("invalid discount_factor_dates entry: %v", err)
			}
			df, err := c.DiscountFactor(d, method)
			if err != nil {
				return nil, err
			}
			out.DiscountFactors[ds] = df
		}
	}
	if len(input.ZeroRateDates) > 0 {
		out.ZeroRates = map[string]float64{}
		for _, ds := range input.ZeroRateDates {
			d, err := parseDate(ds)
			if err != nil {
				return nil, fmt.Errorf("invalid zero_rate_dates entry: %v", err)
			}
			r, err := c.ZeroRate(d, method)
			if err != nil {
				return nil, err
			}
			out.ZeroRates[ds] = r
		}
	}
	for _, window := range input.ForwardRateWindows {
		dStart, err := parseDate(window[0])
		if err != nil {
			return nil, fmt.Errorf("invalid forward_rate_windows entry: %v", err)
		}
		dEnd, err := parseDate(window[1])
		if err != nil {
			return nil, fmt.Errorf("invalid forward_rate_windows entry: %v", err)
		}
		fwd, err := c.ForwardRate(dStart, dEnd, method)
		if err != nil {
			return nil, err
		}
		out.ForwardRates = append(out.ForwardRates, fwd)
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
		return "", fmt.Errorf("unrecognized day_count_convention %q", s)
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
		return 0, fmt.Errorf("unrecognized compounding_basis %q", s)
	}
}

func parseInterpolation(s string) (curve.InterpolationMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LINEAR":
		return curve.Linear, nil
	case "FLATFORWARD", "FLAT_FORWARD":
		return curve.FlatForward, nil
	case "LINEARFORWARD", "LINEAR_FORWARD":
		return curve.LinearForward, nil
	default:
		return 0, fmt.Errorf("unrecognized interpolation %q", s)
	}
}
