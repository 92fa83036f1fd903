package forecast

import (
	"fmt"
	"time"

	"github.com/copperfin/runway/internal/model"
)

// WeekObligations is the recurring contribution to a single week: the
// signed sum of matched obligation amounts plus the matched names for
// traceability.
type WeekObligations struct {
	Total float64
	Names []string
}

// ExpandRecurring expands active monthly obligation templates over the
// horizon weeks. For each week, the occurrence date is computed in every
// calendar month the window touches, with the day of month clamped to
// that month's last valid day; a calendar-month occurrence lands in
// exactly the week whose date range contains it.
//
// Obligations with a day of month outside 1-31 produce a
// ConfigurationError warning and contribute nothing.
func ExpandRecurring(obligations []model.RecurringObligation, weeks []Week) ([]WeekObligations, []ConfigurationError) {
	out := make([]WeekObligations, len(weeks))
	var warnings []ConfigurationError

	for _, ob := range obligations {
		if !ob.Active {
			continue
		}
		if ob.DayOfMonth < 1 || ob.DayOfMonth > 31 {
			warnings = append(warnings, ConfigurationError{
				Subject: ob.Name,
				Reason:  fmt.Sprintf("day_of_month %d outside 1-31, skipped", ob.DayOfMonth),
			})
			continue
		}

		for i, w := range weeks {
			for _, d := range occurrenceDates(ob.DayOfMonth, w) {
				if w.Contains(d) {
					out[i].Total += ob.Amount
					out[i].Names = append(out[i].Names, ob.Name)
					break
				}
			}
		}
	}

	return out, warnings
}

// occurrenceDates returns the clamped occurrence in each calendar month
// the week window touches. A 7-day window spans at most two months.
func occurrenceDates(day int, w Week) []time.Time {
	dates := []time.Time{ClampDayToMonth(w.Start.Year(), w.Start.Month(), day)}
	if w.End.Month() != w.Start.Month() || w.End.Year() != w.Start.Year() {
		dates = append(dates, ClampDayToMonth(w.End.Year(), w.End.Month(), day))
	}
	return dates
}
