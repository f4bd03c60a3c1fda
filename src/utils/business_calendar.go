package utils

import (
	"strings"
	"sync"
	"time"

	"github.com/scmhub/calendar"
)

// DefaultMIC is the exchange calendar used for reporting periods (NYSE).
const DefaultMIC = "xnys"

// BusinessCalendar counts business days using scmhub/calendar.
type BusinessCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location

	// year -> whether Calendar covers it
	years sync.Map
}

// -----------------------------------------------------------------------------

// NewBusinessCalendar loads the calendar for the given MIC (ISO 10383). Unknown
// codes fall back to xnys, and if that fails too a plain Mon-Fri calendar is used.
func NewBusinessCalendar(mic string) *BusinessCalendar {
	mic = strings.ToLower(strings.TrimSpace(mic))
	if mic == "" {
		mic = DefaultMIC
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar(DefaultMIC)
	}
	if cal == nil {
		return &BusinessCalendar{Fallback: true, Timezone: time.UTC}
	}
	return &BusinessCalendar{Calendar: cal, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

// IsBusinessDay uses the exchange calendar for the years it covers and plain
// Mon-Fri for every other year.
func (bc *BusinessCalendar) IsBusinessDay(date time.Time) bool {
	if bc.Fallback || !bc.covers(date.Year()) {
		return isWeekday(date)
	}
	// Library handles IsHoliday / IsBusinessDay
	return bc.Calendar.IsBusinessDay(date)
}

func isWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}

// -----------------------------------------------------------------------------

// covers reports whether the exchange calendar has data for year. The library
// panics outside its range, so each year is checked once and cached.
func (bc *BusinessCalendar) covers(year int) bool {
	if v, ok := bc.years.Load(year); ok {
		return v.(bool)
	}
	ok := bc.checkYear(year)
	bc.years.Store(year, ok)
	return ok
}

func (bc *BusinessCalendar) checkYear(year int) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	bc.Calendar.IsBusinessDay(time.Date(year, time.July, 1, 12, 0, 0, 0, bc.location()))
	return true
}

func (bc *BusinessCalendar) location() *time.Location {
	if bc.Timezone != nil {
		return bc.Timezone
	}
	return time.UTC
}

// -----------------------------------------------------------------------------

// BusinessDays counts business days in the inclusive date range [from, to].
// Only the calendar dates matter; times of day are ignored. It returns 0 when
// to is before from.
func (bc *BusinessCalendar) BusinessDays(from, to time.Time) int {
	start := bc.day(from)
	end := bc.day(to)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if bc.IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// -----------------------------------------------------------------------------

// day pins the calendar date of t to noon in the calendar's timezone.
func (bc *BusinessCalendar) day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, bc.location())
}
