package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)

	tests := []struct {
		name string
		now  time.Time
		next bool
		want time.Time
	}{
		{"wednesday", time.Date(2026, 10, 14, 15, 30, 0, 0, loc), false, time.Date(2026, 10, 12, 0, 0, 0, 0, loc)},
		{"monday itself", time.Date(2026, 10, 12, 0, 0, 0, 0, loc), false, time.Date(2026, 10, 12, 0, 0, 0, 0, loc)},
		{"sunday belongs to previous week", time.Date(2026, 10, 18, 23, 59, 0, 0, loc), false, time.Date(2026, 10, 12, 0, 0, 0, 0, loc)},
		{"next week", time.Date(2026, 10, 14, 9, 0, 0, 0, loc), true, time.Date(2026, 10, 19, 0, 0, 0, 0, loc)},
		{"iso week crossing new year", time.Date(2027, 1, 1, 12, 0, 0, 0, loc), false, time.Date(2026, 12, 28, 0, 0, 0, 0, loc)},
		{"next week crossing new year", time.Date(2026, 12, 30, 12, 0, 0, 0, loc), true, time.Date(2027, 1, 4, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.now, tt.next)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Monday, got.Weekday())

			shifted := tt.now
			if tt.next {
				shifted = shifted.AddDate(0, 0, 7)
			}
			wantYear, wantWeek := shifted.ISOWeek()
			gotYear, gotWeek := got.ISOWeek()
			assert.Equal(t, wantYear, gotYear)
			assert.Equal(t, wantWeek, gotWeek)
		})
	}
}

func TestWeekDays_MondayToFriday(t *testing.T) {
	days := WeekDays(monday)

	assert.Len(t, days, WorkDays)
	for i, d := range days {
		assert.Equal(t, monday.AddDate(0, 0, i), d)
	}
	assert.Equal(t, time.Friday, days[4].Weekday())
}

func TestDoneSince_DayBeforeMonday(t *testing.T) {
	got := DoneSince(monday)
	assert.Equal(t, time.Sunday, got.Weekday())
	assert.Equal(t, time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), got)
}
