package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/alexanderramin/jt/internal/db"
	"github.com/alexanderramin/jt/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// SQLiteJournalRepo implements JournalRepo using a SQLite database.
type SQLiteJournalRepo struct {
	db db.DBTX
}

// NewSQLiteJournalRepo creates a new SQLiteJournalRepo.
func NewSQLiteJournalRepo(conn db.DBTX) *SQLiteJournalRepo {
	return &SQLiteJournalRepo{db: conn}
}

// Record inserts r, assigning an ID and creation time when they are unset.
func (r *SQLiteJournalRepo) Record(ctx context.Context, rec *domain.JournalRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO worklog_journal (id, worker, work_date, task_key, seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Worker,
		rec.Date.Format(dateLayout),
		rec.TaskKey,
		rec.Seconds,
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.Wrap(err, "inserting journal record")
	}
	return nil
}

// ListBetween returns worker's records dated from..to inclusive, oldest first.
// Dates come back as midnight in from's location.
func (r *SQLiteJournalRepo) ListBetween(ctx context.Context, worker string, from, to time.Time) ([]*domain.JournalRecord, error) {
	query := `SELECT id, worker, work_date, task_key, seconds, created_at
		FROM worklog_journal
		WHERE worker = ? AND work_date >= ? AND work_date <= ?
		ORDER BY work_date, created_at`
	rows, err := r.db.QueryContext(ctx, query, worker, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, errors.Wrap(err, "listing journal records")
	}
	defer rows.Close()
	return scanRecords(rows, from.Location())
}

func scanRecords(rows *sql.Rows, loc *time.Location) ([]*domain.JournalRecord, error) {
	var records []*domain.JournalRecord
	for rows.Next() {
		var rec domain.JournalRecord
		var dateStr, createdStr string
		if err := rows.Scan(&rec.ID, &rec.Worker, &dateStr, &rec.TaskKey, &rec.Seconds, &createdStr); err != nil {
			return nil, errors.Wrap(err, "scanning journal row")
		}

		var err error
		if rec.Date, err = parseDateIn(dateStr, loc); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, errors.Wrap(err, "parsing created_at")
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating journal rows")
	}
	return records, nil
}
