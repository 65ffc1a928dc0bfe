package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
	"github.com/cockroachdb/errors"
)

// SubmitCall records one SubmitForApproval invocation.
type SubmitCall struct {
	Worker      string
	Reviewer    string
	PeriodStart time.Time
}

// FakeTracker is an in-memory tracker that records every call.
// Set the *Err fields to inject failures; FailCreateOn fails the Nth
// CreateWorklog call (1-based) with CreateErr.
type FakeTracker struct {
	mu sync.Mutex

	Issues   []*domain.Issue
	UserKeys map[string]string

	SearchErr    error
	CreateErr    error
	FailCreateOn int
	SubmitErr    error
	HealthErr    error

	SearchCalls []time.Time
	Worklogs    []domain.Worklog
	CreateCalls int
	Submits     []SubmitCall
	Lookups     []string
	HealthCalls int
}

// NewFakeTracker returns a tracker that serves issues and knows no users.
func NewFakeTracker(issues ...*domain.Issue) *FakeTracker {
	return &FakeTracker{Issues: issues, UserKeys: map[string]string{}}
}

func (f *FakeTracker) SearchAssignedIssues(_ context.Context, doneSince time.Time) ([]*domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SearchCalls = append(f.SearchCalls, doneSince)
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	return f.Issues, nil
}

func (f *FakeTracker) CreateWorklog(_ context.Context, w domain.Worklog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil && (f.FailCreateOn == 0 || f.CreateCalls == f.FailCreateOn) {
		return f.CreateErr
	}
	f.Worklogs = append(f.Worklogs, w)
	return nil
}

func (f *FakeTracker) SubmitForApproval(_ context.Context, worker, reviewer string, periodStart time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SubmitErr != nil {
		return f.SubmitErr
	}
	f.Submits = append(f.Submits, SubmitCall{Worker: worker, Reviewer: reviewer, PeriodStart: periodStart})
	return nil
}

func (f *FakeTracker) ResolveUserKey(_ context.Context, username string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lookups = append(f.Lookups, username)
	key, ok := f.UserKeys[username]
	if !ok {
		return "", ErrUnknownUser
	}
	return key, nil
}

func (f *FakeTracker) HealthCheck(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HealthCalls++
	return f.HealthErr
}

// ErrUnknownUser is returned by FakeTracker.ResolveUserKey for unmapped usernames.
var ErrUnknownUser = errors.New("fake tracker: unknown user")
