package testutil

import (
	"time"

	"github.com/alexanderramin/jt/internal/domain"
)

// Issue options
type IssueOption func(*domain.Issue)

func WithSummary(s string) IssueOption {
	return func(i *domain.Issue) {
		i.Fields["summary"] = s
	}
}

// WithField sets a top-level JSON field on the issue.
func WithField(name string, value any) IssueOption {
	return func(i *domain.Issue) {
		i.Fields[name] = value
	}
}

func NewTestIssue(key string, opts ...IssueOption) *domain.Issue {
	i := &domain.Issue{
		IssueKey: key,
		Fields:   map[string]any{},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Static task options
type StaticTaskOption func(*domain.StaticTask)

func WithAttribute(key, value string) StaticTaskOption {
	return func(s *domain.StaticTask) {
		s.Attributes = append(s.Attributes, domain.WorkAttribute{
			Key:   key,
			Name:  key,
			Value: value,
		})
	}
}

func NewStaticTask(key, description string, opts ...StaticTaskOption) *domain.StaticTask {
	s := &domain.StaticTask{
		TaskKey:     key,
		Description: description,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewEntry builds a plan entry of the given minutes.
func NewEntry(day time.Time, task domain.Task, minutes int) domain.Entry {
	return domain.Entry{
		Date:     day,
		Task:     task,
		Duration: time.Duration(minutes) * time.Minute,
	}
}

// NewWeekPlan builds a five-day plan starting at monday where each day holds
// the given per-day entries (task plus minutes).
func NewWeekPlan(monday time.Time, perDay func(day time.Time) []domain.Entry) domain.WeekPlan {
	plan := domain.WeekPlan{Start: monday}
	for i := 0; i < 5; i++ {
		day := monday.AddDate(0, 0, i)
		plan.Days = append(plan.Days, domain.DayPlan{Date: day, Entries: perDay(day)})
	}
	return plan
}
