package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/db"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/metrics"
)

// SQLiteLogRepo implements LogStore on the log_entries table.
type SQLiteLogRepo struct {
	db db.DBTX
}

func NewSQLiteLogRepo(db db.DBTX) *SQLiteLogRepo {
	return &SQLiteLogRepo{db: db}
}

var _ LogStore = (*SQLiteLogRepo)(nil)

// ListLogs returns logs for itemIDs dated on or after since, newest first.
// A zero since returns the full history.
func (r *SQLiteLogRepo) ListLogs(ctx context.Context, itemIDs []string, since time.Time) ([]domain.LogEntry, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	if err := ctxErr(ctx, metrics.OpListLogs); err != nil {
		return nil, err
	}
	defer observe(metrics.OpListLogs)()

	args := make([]any, 0, len(itemIDs)+1)
	for _, id := range itemIDs {
		args = append(args, id)
	}
	query := `SELECT tracked_item_id, log_date, source, created_at
		FROM log_entries
		WHERE tracked_item_id IN (` + placeholders(len(itemIDs)) + `)`
	if !since.IsZero() {
		query += ` AND log_date >= ?`
		args = append(args, domain.FormatDate(since))
	}
	query += ` ORDER BY log_date DESC, tracked_item_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(metrics.OpListLogs, err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		var logDate, source, createdAt string
		if err := rows.Scan(&e.TrackedItemID, &logDate, &source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}
		if e.Date, err = domain.ParseDate(logDate); err != nil {
			return nil, fmt.Errorf("parsing log_date: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		e.Source = domain.LogSource(source)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(metrics.OpListLogs, err)
	}
	return entries, nil
}

// InsertLog records a completion for itemID on date. A second insert for the
// same day is a no-op.
func (r *SQLiteLogRepo) InsertLog(ctx context.Context, itemID string, date time.Time) error {
	_, err := r.insert(ctx, metrics.OpInsertLog, domain.LogEntry{
		TrackedItemID: itemID,
		Date:          date,
		Source:        domain.SourceToggle,
	})
	return err
}

// InsertEntry stores a fully specified entry and reports whether a new row
// was written.
func (r *SQLiteLogRepo) InsertEntry(ctx context.Context, e domain.LogEntry) (bool, error) {
	return r.insert(ctx, metrics.OpBackfillLog, e)
}

func (r *SQLiteLogRepo) insert(ctx context.Context, op string, e domain.LogEntry) (bool, error) {
	if err := ctxErr(ctx, op); err != nil {
		return false, err
	}
	defer observe(op)()

	if e.Source == "" {
		e.Source = domain.SourceToggle
	}
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = nowUTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO log_entries (tracked_item_id, log_date, source, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tracked_item_id, log_date) DO NOTHING`,
		e.TrackedItemID,
		domain.FormatDate(e.Date),
		string(e.Source),
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, storeError(op, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// DeleteLog removes the completion for itemID on date. Deleting a missing
// entry is not an error.
func (r *SQLiteLogRepo) DeleteLog(ctx context.Context, itemID string, date time.Time) error {
	if err := ctxErr(ctx, metrics.OpDeleteLog); err != nil {
		return err
	}
	defer observe(metrics.OpDeleteLog)()

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM log_entries WHERE tracked_item_id = ? AND log_date = ?`,
		itemID, domain.FormatDate(date))
	if err != nil {
		return storeError(metrics.OpDeleteLog, err)
	}
	return nil
}
