package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
)

// JournalRepo stores worklogs the tracker accepted.
type JournalRepo interface {
	Record(ctx context.Context, r *domain.JournalRecord) error
	ListBetween(ctx context.Context, worker string, from, to time.Time) ([]*domain.JournalRecord, error)
}
