package sysconfig

import "time"

const dateLayout = "2006-01-02"

// CalendarPolicy answers working-day questions for one year's configuration.
// It is pure: no storage access, no clock.
type CalendarPolicy struct {
	WorkingDaysPerWeek int
	Holidays           map[string]struct{}
}

// IsHoliday matches by calendar date only; the time component is ignored.
func (p CalendarPolicy) IsHoliday(d time.Time) bool {
	_, ok := p.Holidays[d.Format(dateLayout)]
	return ok
}

// isWeekend applies the working-week shape: a 5-day week rests Sat+Sun, a
// 4-day week rests Fri+Sat+Sun, a 6-day week rests Sun only.
func (p CalendarPolicy) isWeekend(d time.Time) bool {
	switch p.WorkingDaysPerWeek {
	case 4:
		wd := d.Weekday()
		return wd == time.Friday || wd == time.Saturday || wd == time.Sunday
	case 6:
		return d.Weekday() == time.Sunday
	default:
		wd := d.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	}
}

func (p CalendarPolicy) IsWorkingDay(d time.Time) bool {
	return !p.isWeekend(d) && !p.IsHoliday(d)
}

// CountWorkingDays walks every day from `from` through `to` inclusive and
// counts the working ones. Callers reject to < from before calling; a
// reversed range yields 0.
func (p CalendarPolicy) CountWorkingDays(from, to time.Time) int {
	from = truncateToDate(from)
	to = truncateToDate(to)

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if p.IsWorkingDay(d) {
			count++
		}
	}
	return count
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidWorkingDaysPerWeek reports whether n is a supported week shape.
func ValidWorkingDaysPerWeek(n int) bool {
	return n == 4 || n == 5 || n == 6
}
