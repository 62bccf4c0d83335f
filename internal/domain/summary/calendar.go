package summary

import "time"

const dateLayout = "2006-01-02"

// Calendar classifies single days against a summary.
type Calendar struct {
	holidays   map[string]string
	incomplete map[string]struct{}
	leave      map[string]struct{}
	home       map[string]struct{}
	office     map[string]struct{}
	firstWork  *time.Time
}

type CalendarDay struct {
	Date    string  `json:"date"`
	Type    DayType `json:"type"`
	Holiday string  `json:"holiday,omitempty"`
}

func NewCalendar(s AllTimeSummary) *Calendar {
	c := &Calendar{
		holidays:   make(map[string]string, len(s.PublicHolidaysDates)),
		incomplete: toSet(s.IncompleteRecordsDates),
		leave:      toSet(s.LeaveDates),
		home:       toSet(s.HomeWorkDates),
		office:     toSet(s.OfficeWorkDates),
	}
	for _, h := range s.PublicHolidaysDates {
		c.holidays[h.Date] = h.Name
	}
	if s.FirstWorkDate != nil {
		if t, err := time.Parse(dateLayout, *s.FirstWorkDate); err == nil {
			c.firstWork = &t
		}
	}
	return c
}

// DayType checks, in order: today, holiday, weekend, incomplete, leave, home, office.
// Unmatched days after today, or before a known first work date, are unknown; the rest are office days.
func (c *Calendar) DayType(date, today time.Time) DayType {
	day := truncateDay(date)
	now := truncateDay(today)
	key := day.Format(dateLayout)

	if day.Equal(now) {
		return DayToday
	}
	if _, ok := c.holidays[key]; ok {
		return DayHoliday
	}
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return DayWeekend
	}
	if _, ok := c.incomplete[key]; ok {
		return DayIncomplete
	}
	if _, ok := c.leave[key]; ok {
		return DayLeave
	}
	if _, ok := c.home[key]; ok {
		return DayHome
	}
	if _, ok := c.office[key]; ok {
		return DayOffice
	}
	if day.After(now) {
		return DayUnknown
	}
	if c.firstWork != nil && day.Before(*c.firstWork) {
		return DayUnknown
	}
	return DayOffice
}

// Month classifies every day of the month that contains month.
func (c *Calendar) Month(month, today time.Time) []CalendarDay {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := make([]CalendarDay, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		days = append(days, CalendarDay{
			Date:    key,
			Type:    c.DayType(d, today),
			Holiday: c.holidays[key],
		})
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
