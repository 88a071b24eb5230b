package kernel

import (
	"fmt"
	"time"

	"careshift/internal/pkg/errs"
	"careshift/internal/pkg/guard"
)

// Layouts for the civil date and time-of-day strings jobs are posted with.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// timeLayouts lists accepted time-of-day forms, most common first.
var timeLayouts = []string{TimeLayout, "15:04:05"}

// ErrScheduleIsNotConstructed is returned when a zero-value Schedule is used.
var ErrScheduleIsNotConstructed = errs.NewValueIsRequiredError(
	"schedule must be created via NewSchedule")

// Schedule is the local civil datetime window of a shift: a calendar date
// plus start and end times of day, combined into absolute instants.
//
// Construction fails on any unparseable date or time so that conflict
// checking never has to silently skip a malformed window. A shift whose end
// time is not after its start time rolls over to the next day (overnight
// shifts). The window is half-open, [Start, End), so shifts that merely
// touch do not overlap.
type Schedule struct {
	date  time.Time
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewSchedule builds a Schedule from a civil date ("2006-01-02") and start
// and end times of day ("15:04" or "15:04:05").
func NewSchedule(date string, startTime string, endTime string) (Schedule, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return Schedule{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}

	start, err := parseTimeOfDay(startTime)
	if err != nil {
		return Schedule{}, errs.NewValueIsInvalidErrorWithCause("startTime", err)
	}

	end, err := parseTimeOfDay(endTime)
	if err != nil {
		return Schedule{}, errs.NewValueIsInvalidErrorWithCause("endTime", err)
	}

	startAt := day.Add(start)
	endAt := day.Add(end)
	if !endAt.After(startAt) {
		endAt = endAt.Add(24 * time.Hour)
	}

	return Schedule{
		date:  day,
		start: startAt,
		end:   endAt,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func parseTimeOfDay(s string) (time.Duration, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid time of day", s)
}

// Validate checks the Schedule was created via NewSchedule.
func (s Schedule) Validate() error {
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

// Date returns midnight of the civil date.
func (s Schedule) Date() time.Time {
	return s.date
}

// Start returns the absolute start instant of the window.
func (s Schedule) Start() time.Time {
	return s.start
}

// End returns the absolute end instant of the window (exclusive).
func (s Schedule) End() time.Time {
	return s.end
}

// Duration returns the length of the shift window.
func (s Schedule) Duration() time.Duration {
	return s.end.Sub(s.start)
}

// Overlaps reports whether two half-open windows intersect.
// Touching windows (one ends exactly when the other starts) do not overlap.
func (s Schedule) Overlaps(other Schedule) (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return s.start.Before(other.end) && s.end.After(other.start), nil
}

// DateHasPassed reports whether the civil date lies before now's civil date.
func (s Schedule) DateHasPassed(now time.Time) bool {
	return s.date.Before(civilDate(now))
}

// IsOnDate reports whether now falls on the schedule's civil date.
func (s Schedule) IsOnDate(now time.Time) bool {
	return s.date.Equal(civilDate(now))
}

// DateString returns the civil date in its wire form.
func (s Schedule) DateString() string {
	return s.date.Format(DateLayout)
}

// StartTimeString returns the start time of day in its wire form.
func (s Schedule) StartTimeString() string {
	return s.start.Format(TimeLayout)
}

// EndTimeString returns the end time of day in its wire form.
func (s Schedule) EndTimeString() string {
	return s.end.Format(TimeLayout)
}

func (s Schedule) String() string {
	return fmt.Sprintf("%s %s-%s", s.DateString(), s.StartTimeString(), s.EndTimeString())
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
