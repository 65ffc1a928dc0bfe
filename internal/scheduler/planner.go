package scheduler

import (
	"context"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
	"github.com/cockroachdb/errors"
)

// PlanWeek allocates targetPerDay on each of the five days starting at
// first. Any failing day aborts the whole plan.
func PlanWeek(ctx context.Context, first time.Time, candidates []domain.Task, targetPerDay time.Duration, opts AllocateOptions) (domain.WeekPlan, error) {
	week := domain.WeekPlan{Start: first, Days: make([]domain.DayPlan, 0, WorkDays)}

	for _, day := range WeekDays(first) {
		if opts.OnDay != nil {
			opts.OnDay(day)
		}
		plan, err := AllocateDay(ctx, day, candidates, targetPerDay, opts)
		if err != nil {
			return domain.WeekPlan{}, errors.Wrapf(err, "planning %s", day.Format("Monday 2006-01-02"))
		}
		week.Days = append(week.Days, plan)
	}

	return week, nil
}
