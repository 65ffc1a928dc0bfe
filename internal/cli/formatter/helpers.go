package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatDuration renders d in hours and minutes, e.g. "7h 30m", "45m", "8h".
// Seconds are truncated.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDuration(-d)
	}
	total := int(d / time.Minute)
	h, m := total/60, total%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// DayLabel returns a short weekday label such as "Mon 12 Oct".
func DayLabel(t time.Time) string {
	return t.Format("Mon 02 Jan")
}

// WeekLabel describes the Monday-to-Friday range starting at monday.
func WeekLabel(monday time.Time) string {
	friday := monday.AddDate(0, 0, 4)
	_, week := monday.ISOWeek()
	return fmt.Sprintf("Week %d: %s to %s", week, monday.Format("Jan 2"), friday.Format("Jan 2, 2006"))
}

// HumanTimestampFrom returns a relative timestamp such as "5m ago" measured
// from now, falling back to an absolute date after a day.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
