package scheduler

import (
	"context"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
	"github.com/cockroachdb/errors"
)

var (
	// ErrNoCandidates indicates a day needs time logged but there are no tasks to pick from.
	ErrNoCandidates = errors.New("no candidate tasks to allocate time to")

	// ErrMissingDefaultDuration indicates random mode was requested without a default duration.
	ErrMissingDefaultDuration = errors.New("random allocation requires a default duration")

	// ErrMissingDurationSource indicates neither a default duration nor a duration source is available.
	ErrMissingDurationSource = errors.New("no duration source configured")

	// ErrInvalidDuration indicates a duration source produced a non-positive duration.
	ErrInvalidDuration = errors.New("duration must be positive")

	// ErrUnknownTask indicates a chooser returned a task that is not a candidate.
	ErrUnknownTask = errors.New("chosen task is not a candidate")
)

// Mode selects how tasks are picked.
type Mode string

const (
	ModeInteractive Mode = "interactive"
	ModeRandom      Mode = "random"
)

// TaskChooser picks the next task to log time against on day.
type TaskChooser interface {
	ChooseTask(ctx context.Context, day time.Time, candidates []domain.Task, spent, target time.Duration) (domain.Task, error)
}

// DurationSource supplies how long was spent on task when no default duration is set.
type DurationSource interface {
	ChooseDuration(ctx context.Context, day time.Time, task domain.Task, remaining time.Duration) (time.Duration, error)
}

// AllocateOptions configures AllocateDay and PlanWeek.
type AllocateOptions struct {
	Mode            Mode
	DefaultDuration time.Duration // zero means ask Durations
	Chooser         TaskChooser
	Durations       DurationSource

	OnDay   func(day time.Time)
	OnEntry func(entry domain.Entry, spent, target time.Duration)
}

func (o AllocateOptions) validate() error {
	if o.Chooser == nil {
		return errors.AssertionFailedf("allocation requires a task chooser")
	}
	if o.DefaultDuration < 0 {
		return errors.Wrapf(ErrInvalidDuration, "default duration %s", o.DefaultDuration)
	}
	if o.Mode == ModeRandom && o.DefaultDuration == 0 {
		return errors.WithHint(ErrMissingDefaultDuration,
			"set default_time_spent_minutes in the config file or run without --random")
	}
	if o.DefaultDuration == 0 && o.Durations == nil {
		return ErrMissingDurationSource
	}
	return nil
}

// AllocateDay picks tasks and durations for day until the logged total is at
// least target. The last entry may overshoot target; entries are never split.
func AllocateDay(ctx context.Context, day time.Time, candidates []domain.Task, target time.Duration, opts AllocateOptions) (domain.DayPlan, error) {
	plan := domain.DayPlan{Date: day}
	if target <= 0 {
		return plan, nil
	}
	if len(candidates) == 0 {
		return plan, ErrNoCandidates
	}
	if err := opts.validate(); err != nil {
		return plan, err
	}

	var spent time.Duration
	for spent < target {
		if err := ctx.Err(); err != nil {
			return plan, err
		}

		task, err := opts.Chooser.ChooseTask(ctx, day, candidates, spent, target)
		if err != nil {
			return plan, errors.Wrap(err, "choosing task")
		}
		if !isCandidate(task, candidates) {
			return plan, errors.Wrapf(ErrUnknownTask, "%v", task)
		}

		d := opts.DefaultDuration
		if d == 0 {
			d, err = opts.Durations.ChooseDuration(ctx, day, task, target-spent)
			if err != nil {
				return plan, errors.Wrapf(err, "choosing duration for %s", task.Key())
			}
			if d <= 0 {
				return plan, errors.Wrapf(ErrInvalidDuration, "got %s for %s", d, task.Key())
			}
		}

		entry := domain.Entry{Date: day, Task: task, Duration: d}
		plan.Entries = append(plan.Entries, entry)
		spent += d
		if opts.OnEntry != nil {
			opts.OnEntry(entry, spent, target)
		}
	}

	return plan, nil
}

func isCandidate(task domain.Task, candidates []domain.Task) bool {
	if task == nil {
		return false
	}
	for _, c := range candidates {
		if c == task {
			return true
		}
	}
	return false
}
