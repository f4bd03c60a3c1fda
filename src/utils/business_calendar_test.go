package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFallbackCountsWeekdays(t *testing.T) {
	bc := &BusinessCalendar{Fallback: true, Timezone: time.UTC}

	// Mon 2024-03-04 .. Sun 2024-03-17
	assert.Equal(t, 10, bc.BusinessDays(date(2024, 3, 4), date(2024, 3, 17)))
	assert.Equal(t, 1, bc.BusinessDays(date(2024, 3, 4), date(2024, 3, 4)))
	assert.Equal(t, 0, bc.BusinessDays(date(2024, 3, 9), date(2024, 3, 10)))
	assert.Equal(t, 0, bc.BusinessDays(date(2024, 3, 10), date(2024, 3, 4)))
}

func TestExchangeCalendarSkipsHolidays(t *testing.T) {
	bc := NewBusinessCalendar("")
	if bc.Fallback {
		t.Skip("exchange calendar unavailable")
	}

	// Fri 2026-12-25 is Christmas Day.
	assert.False(t, bc.IsBusinessDay(time.Date(2026, 12, 25, 12, 0, 0, 0, bc.Timezone)))
	assert.Equal(t, 4, bc.BusinessDays(date(2026, 12, 21), date(2026, 12, 25)))
}

func TestUnknownMICFallsBackToDefault(t *testing.T) {
	bc := NewBusinessCalendar("not-a-mic")
	assert.NotNil(t, bc)
	assert.Equal(t, 5, bc.BusinessDays(date(2024, 3, 4), date(2024, 3, 8)))
}

func TestBusinessDaysAcrossCalendarEdge(t *testing.T) {
	bc := NewBusinessCalendar("")

	var got int
	assert.NotPanics(t, func() {
		got = bc.BusinessDays(date(2020, 12, 28), date(2021, 1, 5))
	})

	// 2020-12-28..31 are weekdays; 2021-01-01 is a holiday wherever the exchange calendar applies.
	want := 7
	if !bc.Fallback && bc.covers(2021) {
		want = 6
	}
	assert.Equal(t, want, got)
}

func TestYearsOutsideCalendarUseWeekdays(t *testing.T) {
	bc := NewBusinessCalendar("")

	assert.NotPanics(t, func() {
		// Mon 1990-01-01 .. Sun 1990-01-07
		assert.Equal(t, 5, bc.BusinessDays(date(1990, 1, 1), date(1990, 1, 7)))
		assert.Equal(t, 5, bc.BusinessDays(date(9999, 12, 20), date(9999, 12, 26)))
	})
}
