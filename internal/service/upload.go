package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/jt/internal/attribute"
	"github.com/alexanderramin/jt/internal/domain"
	"github.com/alexanderramin/jt/internal/repository"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

var (
	// ErrMissingWorker indicates no worker key is available for the upload.
	ErrMissingWorker = errors.New("worker key is empty")

	// ErrInvalidEntry indicates a planned entry cannot become a worklog.
	ErrInvalidEntry = errors.New("invalid plan entry")
)

// UploadOptions configures an Uploader.
type UploadOptions struct {
	// DryRun resolves every worklog but sends nothing and journals nothing.
	DryRun bool

	// OnProgress is called after each entry with the count handled so far.
	OnProgress func(done, total int)

	Logger zerolog.Logger
}

// UploadResult summarises a finished upload.
type UploadResult struct {
	Worklogs []domain.Worklog
	Uploaded int
	DryRun   bool
}

// Total sums the durations of all resolved worklogs.
func (r UploadResult) Total() time.Duration {
	var total time.Duration
	for _, w := range r.Worklogs {
		total += w.Duration
	}
	return total
}

// UploadError reports the entry whose upload failed. Uploaded counts the
// worklogs the tracker accepted before it.
type UploadError struct {
	Index    int
	Entry    domain.Entry
	Uploaded int
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading entry %d (%s on %s): %v",
		e.Index+1, e.Entry.Task.Key(), e.Entry.Date.Format(time.DateOnly), e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Uploader turns a week plan into tracker worklogs.
type Uploader struct {
	creator  WorklogCreator
	journal  repository.JournalRepo
	opts     UploadOptions
	observer UseCaseObserver
}

// NewUploader creates an Uploader. journal may be nil.
func NewUploader(creator WorklogCreator, journal repository.JournalRepo, opts UploadOptions, observers ...UseCaseObserver) *Uploader {
	return &Uploader{
		creator:  creator,
		journal:  journal,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Prepare resolves every entry of plan into a worklog, in plan order.
// It performs no I/O.
func (u *Uploader) Prepare(plan domain.WeekPlan, worker string, dynamic, static []domain.WorkAttribute) ([]domain.Worklog, error) {
	if worker == "" {
		return nil, errors.WithHint(ErrMissingWorker, "set worker in jt.toml or run `jt init`")
	}

	entries := plan.Entries()
	worklogs := make([]domain.Worklog, 0, len(entries))
	for i, e := range entries {
		if e.Task == nil || e.Task.Key() == "" {
			return nil, errors.Wrapf(ErrInvalidEntry, "entry %d has no task key", i+1)
		}
		if e.Duration <= 0 {
			return nil, errors.Wrapf(ErrInvalidEntry, "entry %d (%s) has non-positive duration %s", i+1, e.Task.Key(), e.Duration)
		}
		attrs, err := attribute.ForTask(e.Task, dynamic, static)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving attributes for %s", e.Task.Key())
		}
		worklogs = append(worklogs, domain.Worklog{
			Worker:     worker,
			Date:       e.Date,
			TaskKey:    e.Task.Key(),
			Duration:   e.Duration,
			Attributes: attrs,
		})
	}
	return worklogs, nil
}

// Upload prepares every worklog and then creates them one at a time in plan
// order, stopping at the first failure. Nothing is sent if preparation fails.
func (u *Uploader) Upload(ctx context.Context, plan domain.WeekPlan, worker string, dynamic, static []domain.WorkAttribute) (result UploadResult, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, u.observer, "upload_week", started, err, map[string]any{
			"entries":  plan.Len(),
			"uploaded": result.Uploaded,
			"dry_run":  u.opts.DryRun,
		})
	}()

	worklogs, err := u.Prepare(plan, worker, dynamic, static)
	if err != nil {
		return UploadResult{}, err
	}

	result = UploadResult{Worklogs: worklogs, DryRun: u.opts.DryRun}
	entries := plan.Entries()
	for i, w := range worklogs {
		if err := ctx.Err(); err != nil {
			return result, &UploadError{Index: i, Entry: entries[i], Uploaded: result.Uploaded, Err: err}
		}

		if u.opts.DryRun {
			u.opts.Logger.Debug().Str("task", w.TaskKey).Time("date", w.Date).
				Dur("duration", w.Duration).Msg("dry run: worklog not sent")
		} else {
			if err := u.creator.CreateWorklog(ctx, w); err != nil {
				return result, &UploadError{Index: i, Entry: entries[i], Uploaded: result.Uploaded, Err: err}
			}
			if err := u.record(ctx, w); err != nil {
				// the tracker already accepted this one
				result.Uploaded++
				return result, &UploadError{Index: i, Entry: entries[i], Uploaded: result.Uploaded, Err: err}
			}
		}

		result.Uploaded++
		if u.opts.OnProgress != nil {
			u.opts.OnProgress(result.Uploaded, len(worklogs))
		}
	}
	return result, nil
}

func (u *Uploader) record(ctx context.Context, w domain.Worklog) error {
	if u.journal == nil {
		return nil
	}
	err := u.journal.Record(ctx, &domain.JournalRecord{
		Worker:  w.Worker,
		Date:    w.Date,
		TaskKey: w.TaskKey,
		Seconds: int64(w.Duration / time.Second),
	})
	return errors.Wrap(err, "journaling worklog")
}
