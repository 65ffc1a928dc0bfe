package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrNoReviewerConfigured indicates submission was requested without a reviewer.
var ErrNoReviewerConfigured = errors.New("no reviewer configured")

// ApprovalPeriodStart returns the approval period start for the week
// beginning at weekStart: the Saturday before it.
func ApprovalPeriodStart(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, -2)
}

// Submitter submits a filled week for approval.
type Submitter struct {
	api      ApprovalSubmitter
	dryRun   bool
	observer UseCaseObserver
}

func NewSubmitter(api ApprovalSubmitter, dryRun bool, observers ...UseCaseObserver) *Submitter {
	return &Submitter{api: api, dryRun: dryRun, observer: useCaseObserverOrNoop(observers)}
}

// Submit sends one approval request for the week starting at weekStart.
// Worklogs uploaded before a failure here stay in place.
func (s *Submitter) Submit(ctx context.Context, reviewer, worker string, weekStart time.Time) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "submit_week", started, err, map[string]any{
			"week":    weekStart.Format(time.DateOnly),
			"dry_run": s.dryRun,
		})
	}()

	if reviewer == "" {
		return errors.WithHint(ErrNoReviewerConfigured,
			"run `jt init` and enter a reviewer username, or drop --submit")
	}
	if worker == "" {
		return errors.WithHint(ErrMissingWorker, "set worker in jt.toml or run `jt init`")
	}
	if s.dryRun {
		return nil
	}
	period := ApprovalPeriodStart(weekStart)
	if err := s.api.SubmitForApproval(ctx, worker, reviewer, period); err != nil {
		return errors.Wrapf(err, "submitting week of %s for approval", weekStart.Format(time.DateOnly))
	}
	return nil
}
