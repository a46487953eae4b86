// README: Calendar and night-window interval arithmetic over immutable timestamps.
package pricing

import "time"

const day = 24 * time.Hour

// calendarDate maps t's local date onto a UTC midnight so dates can be subtracted exactly.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// calendarDays is the number of date boundaries between a and b, both read in a's location.
func calendarDays(a, b time.Time) int {
	return int(calendarDate(b.In(a.Location())).Sub(calendarDate(a)) / day)
}

// calendarMonths counts month boundaries in a's location, ignoring the day of month.
func calendarMonths(a, b time.Time) int {
	b = b.In(a.Location())
	return (b.Year()*12 + int(b.Month())) - (a.Year()*12 + int(a.Month()))
}

// nightWindow returns the half-open window anchored on date (a calendar date from
// calendarDate), built as wall-clock times in loc.
func nightWindow(date time.Time, p NightPeriod, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, p.Start.Hour, p.Start.Minute, 0, 0, loc)
	endDay := d
	if p.CrossesMidnight() {
		endDay++
	}
	end := time.Date(y, m, endDay, p.End.Hour, p.End.Minute, 0, 0, loc)
	return start, end
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// nightDuration sums the stay's overlap with one night window per calendar date,
// from the entry date through the exit date. Windows of different dates never
// overlap, so the sum is exact.
func nightDuration(stay StayInterval, p NightPeriod) time.Duration {
	loc := stay.EntryAt.Location()
	first := calendarDate(stay.EntryAt)
	last := calendarDate(stay.ExitAt.In(loc))

	var total time.Duration
	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		start, end := nightWindow(date, p, loc)
		total += overlap(stay.EntryAt, stay.ExitAt, start, end)
	}
	return total
}
