package service

import (
	"context"
	"net/url"
	"time"

	"github.com/alexanderramin/jt/internal/config"
	"github.com/cockroachdb/errors"
)

// DirectoryFactory builds a tracker directory client for base.
type DirectoryFactory func(base *url.URL) (Directory, error)

// InitAnswers holds what the user typed during `jt init`.
type InitAnswers struct {
	WorkerUsername     string
	ReviewerUsername   string
	DailyTargetMinutes int
	DefaultMinutes     int

	// Existing, when set, donates its static tasks and attributes.
	Existing *config.Config
}

// Bootstrap runs the first-time setup against the tracker.
type Bootstrap struct {
	newDirectory DirectoryFactory
	observer     UseCaseObserver
}

func NewBootstrap(factory DirectoryFactory, observers ...UseCaseObserver) *Bootstrap {
	return &Bootstrap{newDirectory: factory, observer: useCaseObserverOrNoop(observers)}
}

// Connect validates endpoint and checks the tracker answers with the
// current credentials.
func (b *Bootstrap) Connect(ctx context.Context, endpoint string) (_ *url.URL, _ Directory, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, b.observer, "bootstrap_connect", started, err, map[string]any{"endpoint": endpoint})
	}()

	base, err := config.ParseEndpoint(endpoint)
	if err != nil {
		return nil, nil, err
	}
	dir, err := b.newDirectory(base)
	if err != nil {
		return nil, nil, err
	}
	if err := dir.HealthCheck(ctx); err != nil {
		return nil, nil, errors.Wrapf(err, "connecting to %s", base)
	}
	return base, dir, nil
}

// Configure resolves account keys and assembles a validated configuration.
// Nothing is written to disk.
func (b *Bootstrap) Configure(ctx context.Context, dir Directory, base *url.URL, answers InitAnswers) (_ *config.Config, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, b.observer, "bootstrap_configure", started, err, nil)
	}()

	if answers.WorkerUsername == "" {
		return nil, errors.WithHint(ErrMissingWorker, "enter your tracker username")
	}
	worker, err := dir.ResolveUserKey(ctx, answers.WorkerUsername)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving worker %q", answers.WorkerUsername)
	}

	var reviewer string
	if answers.ReviewerUsername != "" {
		reviewer, err = dir.ResolveUserKey(ctx, answers.ReviewerUsername)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving reviewer %q", answers.ReviewerUsername)
		}
	}

	target := answers.DailyTargetMinutes
	if target == 0 {
		target = config.DefaultDailyTargetMinutes
	}

	cfg := &config.Config{
		APIEndpoint:                 base.String(),
		Worker:                      worker,
		Reviewer:                    reviewer,
		DailyTargetTimeSpentMinutes: target,
		DefaultTimeSpentMinutes:     answers.DefaultMinutes,
	}
	if prev := answers.Existing; prev != nil {
		cfg.StaticTasks = prev.StaticTasks
		cfg.StaticAttributes = prev.StaticAttributes
		cfg.DynamicAttributes = prev.DynamicAttributes
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
