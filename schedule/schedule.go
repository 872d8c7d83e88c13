// Package schedule builds premium payment and accrual periods for a CDS
// contract, generating unadjusted accrual dates backward from maturity the
// way swap/basis/schedule.go builds reset/payment periods backward from a
// swap leg's maturity, then adjusting only the pay date.
package schedule

import (
	"time"

	"github.com/hwkim/isdacds/calendar"
	"github.com/hwkim/isdacds/daycount"
)

// Period is a single accrual/payment period. AccrualStart and AccrualEnd
// are unadjusted (used as-is for day-count measurement, ISDA-style
// "unadjusted accrual"); PayDate is AccrualEnd rolled forward under the
// contract's business-day convention.
type Period struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	PayDate      time.Time
}

// Generate builds the ordered accrual/payment schedule for a contract
// running from effective to maturity, paying every 12/frequency months.
// It walks backward from maturity in frequency-sized steps, producing
// unadjusted period-end dates until the previous end would fall on or
// before effective; the first period's start is then clamped to
// effective, creating a front stub when (maturity-effective) is not an
// integer number of coupon periods. A non-positive (maturity-effective)
// window yields an empty schedule.
func Generate(effective, maturity time.Time, frequency int, conv calendar.BusinessDayConvention) []Period {
	if !maturity.After(effective) {
		return nil
	}

	stepMonths := 12 / frequency

	// Each end is stepped back from maturity itself with day-of-month
	// clamping, so a month-end maturity never rolls into the next month.
	var ends []time.Time
	end := maturity
	for i := 1; end.After(effective); i++ {
		ends = append(ends, end)
		end = daycount.AddMonths(maturity, -stepMonths*i)
	}
	// ends holds period-end dates in reverse chronological order
	// (maturity first); reverse it into forward order.
	for i, j := 0, len(ends)-1; i < j; i, j = i+1, j-1 {
		ends[i], ends[j] = ends[j], ends[i]
	}

	periods := make([]Period, len(ends))
	start := effective
	for i, e := range ends {
		periods[i] = Period{
			AccrualStart: start,
			AccrualEnd:   e,
			PayDate:      calendar.Adjust(e, conv),
		}
		start = e
	}
	return periods
}
