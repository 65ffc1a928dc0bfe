package scheduler

import "time"

// WorkDays is the number of days planned per week, Monday through Friday.
const WorkDays = 5

// WeekStart returns local midnight on the Monday of the ISO week containing
// now, or of the following week when next is set.
func WeekStart(now time.Time, next bool) time.Time {
	if next {
		now = now.AddDate(0, 0, 7)
	}
	offset := (int(now.Weekday()) + 6) % 7 // days since Monday
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

// WeekDays returns the WorkDays consecutive dates starting at first.
func WeekDays(first time.Time) []time.Time {
	days := make([]time.Time, WorkDays)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// DoneSince is the earliest status-change date a task search includes for
// the week starting at first: the Sunday before it.
func DoneSince(first time.Time) time.Time {
	return first.AddDate(0, 0, -1)
}
