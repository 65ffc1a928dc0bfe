package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
)

// FormatWeekPlan renders the planned entries of a week grouped by day, with
// a per-day total compared to target.
func FormatWeekPlan(plan domain.WeekPlan, target time.Duration) string {
	var b strings.Builder
	b.WriteString(Header(WeekLabel(plan.Start)))
	b.WriteString("\n\n")

	var rows [][]string
	for _, day := range plan.Days {
		for i, e := range day.Entries {
			label := ""
			if i == 0 {
				label = DayLabel(day.Date)
			}
			rows = append(rows, []string{label, e.Task.String(), FormatDuration(e.Duration)})
		}
		total := day.Total()
		rows = append(rows, []string{"", Dim("total"), TotalStyle(total >= target).Render(FormatDuration(total))})
	}
	b.WriteString(RenderTable([]string{"DAY", "TASK", "TIME"}, rows, 2))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s in %d entries\n", Bold("Week total:"), FormatDuration(plan.Total()), plan.Len())
	return b.String()
}

// FormatDayProgress is the one-line status shown while a day is being filled.
func FormatDayProgress(day time.Time, spent, target time.Duration) string {
	return fmt.Sprintf("%s %s / %s", StyleHeader.Render(DayLabel(day)),
		TotalStyle(spent >= target).Render(FormatDuration(spent)), FormatDuration(target))
}

// FormatJournal lists journaled uploads, one row per worklog.
func FormatJournal(records []*domain.JournalRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No uploads recorded for this week.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	var total time.Duration
	for _, r := range records {
		d := time.Duration(r.Seconds) * time.Second
		total += d
		rows = append(rows, []string{
			DayLabel(r.Date),
			r.TaskKey,
			FormatDuration(d),
			Dim(HumanTimestampFrom(r.CreatedAt, now)),
		})
	}
	var b strings.Builder
	b.WriteString(RenderTable([]string{"DAY", "TASK", "TIME", "UPLOADED"}, rows, 2))
	fmt.Fprintf(&b, "\n%s %s\n", Bold("Total:"), FormatDuration(total))
	return b.String()
}
