package corebank

import "time"

// TermModel decides how a term expressed in months maps onto a calendar date.
type TermModel string

const (
	// TermCalendar adds whole calendar months, clamping to the last day of
	// the target month (Jan 31 + 1 month = Feb 28/29).
	TermCalendar TermModel = "calendar"
	// TermThirtyDay treats every month as 30 days.
	TermThirtyDay TermModel = "thirty_day"
)

func (m TermModel) Valid() bool {
	return m == TermCalendar || m == TermThirtyDay
}

// End returns the date that lies months after start.
func (m TermModel) End(start time.Time, months int) time.Time {
	start = DateOf(start)
	if m == TermThirtyDay {
		return start.AddDate(0, 0, 30*months)
	}
	return addMonths(start, months)
}

func addMonths(t time.Time, months int) time.Time {
	y, mo, d := t.Date()
	first := time.Date(y, mo+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Clock supplies the current time to the engines.
type Clock func() time.Time
