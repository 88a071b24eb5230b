package jobpost

import (
	"fmt"
	"strings"
	"time"

	"careshift/internal/pkg/errs"
)

// Frequency of a recurring job series. Weekly is the only supported cadence:
// the selected weekdays repeat every week until the end date.
type Frequency string

const (
	FrequencyWeekly Frequency = "weekly"
)

// weekdayNames maps accepted lowercase weekday names to time.Weekday.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday converts a weekday name to time.Weekday, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return wd, nil
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("weekday",
		fmt.Errorf("%q is not a weekday name", name))
}

// Recurrence is the descriptor stored on a parent/template job post: the
// cadence, the selected weekdays and the date the series ends on (inclusive).
type Recurrence struct {
	frequency Frequency
	weekdays  map[time.Weekday]bool
	endDate   time.Time
}

// NewRecurrence validates and creates a recurrence descriptor.
// endDate is the series end in civil form ("2006-01-02") and must not
// precede the seed date the caller will expand from.
func NewRecurrence(frequency string, weekdays []string, endDate string) (Recurrence, error) {
	if Frequency(strings.ToLower(strings.TrimSpace(frequency))) != FrequencyWeekly {
		return Recurrence{}, errs.NewValueIsInvalidErrorWithCause("frequency",
			fmt.Errorf("%q is not a supported frequency, only %q", frequency, FrequencyWeekly))
	}

	if len(weekdays) == 0 {
		return Recurrence{}, errs.NewValueIsRequiredError("weekdays")
	}

	selected := make(map[time.Weekday]bool, len(weekdays))
	for _, name := range weekdays {
		wd, err := ParseWeekday(name)
		if err != nil {
			return Recurrence{}, err
		}
		selected[wd] = true
	}

	end, err := time.ParseInLocation("2006-01-02", endDate, time.UTC)
	if err != nil {
		return Recurrence{}, errs.NewValueIsInvalidErrorWithCause("endDate", err)
	}

	return Recurrence{
		frequency: FrequencyWeekly,
		weekdays:  selected,
		endDate:   end,
	}, nil
}

// Frequency returns the series cadence.
func (r Recurrence) Frequency() Frequency {
	return r.frequency
}

// Weekdays returns the selected weekdays in Sunday-first order.
func (r Recurrence) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 0, len(r.weekdays))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if r.weekdays[wd] {
			out = append(out, wd)
		}
	}
	return out
}

// EndDate returns the inclusive series end date.
func (r Recurrence) EndDate() time.Time {
	return r.endDate
}

// ExpandDates walks every calendar day in (seed, endDate] and emits the dates
// whose weekday is among the selected set. The seed itself is never emitted:
// it is owned by the parent/template post.
func (r Recurrence) ExpandDates(seed time.Time) []time.Time {
	var dates []time.Time
	for d := seed.AddDate(0, 0, 1); !d.After(r.endDate); d = d.AddDate(0, 0, 1) {
		if r.weekdays[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}
