package domain

import "time"

// Entry is one planned worklog row.
type Entry struct {
	Date     time.Time
	Task     Task
	Duration time.Duration
}

type DayPlan struct {
	Date    time.Time
	Entries []Entry
}

// Total returns the summed duration of the day's entries.
func (d DayPlan) Total() time.Duration {
	var total time.Duration
	for _, e := range d.Entries {
		total += e.Duration
	}
	return total
}

// WeekPlan holds the Monday-to-Friday day plans of one ISO week.
type WeekPlan struct {
	Start time.Time
	Days  []DayPlan
}

// Entries flattens the plan in day order, preserving per-day order.
func (w WeekPlan) Entries() []Entry {
	var out []Entry
	for _, d := range w.Days {
		out = append(out, d.Entries...)
	}
	return out
}

func (w WeekPlan) Len() int {
	n := 0
	for _, d := range w.Days {
		n += len(d.Entries)
	}
	return n
}

func (w WeekPlan) Total() time.Duration {
	var total time.Duration
	for _, d := range w.Days {
		total += d.Total()
	}
	return total
}
