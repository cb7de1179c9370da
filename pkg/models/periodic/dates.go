package periodicmodel

import (
	"time"

	"github.com/classpad/classpad-server/pkg/config"
	"github.com/classpad/classpad-server/pkg/errcode"
)

// PeriodicRule is the recurrence rule of a series: a weekday set plus
// exactly one termination mode. Rate counts occurrences (1..50); EndTime is
// an inclusive calendar-day ceiling. Setting both or neither is invalid.
type PeriodicRule struct {
	Weeks   []time.Weekday
	Rate    int
	EndTime *time.Time
}

type DateRange struct {
	Begin time.Time
	End   time.Time
}

// Validate checks the rule in isolation: a non-empty set of distinct
// weekdays and exactly one termination mode within bounds.
func (p *PeriodicRule) Validate() error {
	if len(p.Weeks) == 0 || len(p.Weeks) > 7 {
		return errcode.New(errcode.ParamsCheckFailed)
	}
	seen := make(map[time.Weekday]bool, len(p.Weeks))
	for _, w := range p.Weeks {
		if w < time.Sunday || w > time.Saturday || seen[w] {
			return errcode.New(errcode.ParamsCheckFailed)
		}
		seen[w] = true
	}

	hasRate := p.Rate > 0
	hasEnd := p.EndTime != nil
	if hasRate == hasEnd {
		return errcode.New(errcode.ParamsCheckFailed)
	}
	if hasRate && p.Rate > config.MaxPeriodicRate {
		return errcode.New(errcode.ParamsCheckFailed)
	}
	return nil
}

// CalculatePeriodicDates expands a recurrence rule into the ordered set of
// occurrence windows. beginTime and endTime define the template session and
// must share a calendar day; the template day is always occurrence #1, even
// when its weekday is not part of the rule's weekday set. Walking forward
// one day at a time, every day whose weekday is in the set produces one
// occurrence carrying the template wall-clock times, until the rate is
// reached or the candidate day passes the calendar-day ceiling. Pure and
// deterministic: no clock reads beyond the supplied instants.
func CalculatePeriodicDates(beginTime, endTime time.Time, rule *PeriodicRule) ([]DateRange, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if !beginTime.Before(endTime) || !sameCalendarDay(beginTime, endTime) {
		return nil, errcode.New(errcode.ParamsCheckFailed)
	}
	if rule.EndTime != nil && calendarDaysApart(beginTime, *rule.EndTime) < 0 {
		return nil, errcode.New(errcode.ParamsCheckFailed)
	}

	weekset := make(map[time.Weekday]bool, len(rule.Weeks))
	for _, w := range rule.Weeks {
		weekset[w] = true
	}

	loc := beginTime.Location()
	dates := []DateRange{{Begin: beginTime, End: endTime}}

	day := beginTime
	for {
		if rule.Rate > 0 {
			if len(dates) >= rule.Rate {
				break
			}
		}

		day = day.AddDate(0, 0, 1)

		if rule.EndTime != nil && calendarDaysApart(day, *rule.EndTime) < 0 {
			break
		}
		if !weekset[day.Weekday()] {
			continue
		}

		dates = append(dates, DateRange{
			Begin: time.Date(day.Year(), day.Month(), day.Day(),
				beginTime.Hour(), beginTime.Minute(), beginTime.Second(), beginTime.Nanosecond(), loc),
			End: time.Date(day.Year(), day.Month(), day.Day(),
				endTime.Hour(), endTime.Minute(), endTime.Second(), endTime.Nanosecond(), loc),
		})
	}

	return dates, nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// calendarDaysApart reports the whole days from a's calendar day to b's,
// evaluated in a's location. Negative when b's day is before a's.
func calendarDaysApart(a, b time.Time) int {
	loc := a.Location()
	ay, am, ad := a.Date()
	by, bm, bd := b.In(loc).Date()
	am0 := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bm0 := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bm0.Sub(am0).Hours() / 24)
}
