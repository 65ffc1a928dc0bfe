package service

import (
	"context"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
)

type IssueSearcher interface {
	SearchAssignedIssues(ctx context.Context, doneSince time.Time) ([]*domain.Issue, error)
}

type WorklogCreator interface {
	CreateWorklog(ctx context.Context, w domain.Worklog) error
}

type ApprovalSubmitter interface {
	SubmitForApproval(ctx context.Context, worker, reviewer string, periodStart time.Time) error
}

// Directory looks up account identifiers on the tracker.
type Directory interface {
	ResolveUserKey(ctx context.Context, username string) (string, error)
	HealthCheck(ctx context.Context) error
}

// Tracker is everything fill needs from the issue tracker.
type Tracker interface {
	IssueSearcher
	WorklogCreator
	ApprovalSubmitter
	Directory
}
