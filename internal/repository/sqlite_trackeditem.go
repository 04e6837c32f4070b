package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/db"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/metrics"
)

const trackedItemColumns = `id, subject_id, category, title, cadence_kind, times_per_week, start_date, active, created_at`

// SQLiteTrackedItemRepo implements TrackedItemRepo using a SQLite database.
type SQLiteTrackedItemRepo struct {
	db db.DBTX
}

func NewSQLiteTrackedItemRepo(db db.DBTX) *SQLiteTrackedItemRepo {
	return &SQLiteTrackedItemRepo{db: db}
}

func (r *SQLiteTrackedItemRepo) Create(ctx context.Context, item *domain.TrackedItem) error {
	defer observe(metrics.OpCreateItem)()

	query := `INSERT INTO tracked_items (` + trackedItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.SubjectID,
		string(item.Category),
		item.Title,
		string(item.Cadence.Kind),
		item.Cadence.TimesPerWeek,
		domain.FormatDate(item.StartDate),
		boolToInt(item.Active),
		item.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return storeError(metrics.OpCreateItem, err)
	}
	return nil
}

func (r *SQLiteTrackedItemRepo) GetByID(ctx context.Context, id string) (*domain.TrackedItem, error) {
	defer observe(metrics.OpGetItem)()

	row := r.db.QueryRowContext(ctx, `SELECT `+trackedItemColumns+` FROM tracked_items WHERE id = ?`, id)
	item, err := scanTrackedItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tracked item %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeError(metrics.OpGetItem, err)
	}
	return item, nil
}

func (r *SQLiteTrackedItemRepo) ListBySubject(ctx context.Context, subjectID string, includeInactive bool) ([]*domain.TrackedItem, error) {
	defer observe(metrics.OpListItems)()

	query := `SELECT ` + trackedItemColumns + ` FROM tracked_items WHERE subject_id = ?`
	if !includeInactive {
		query += ` AND active = 1`
	}
	query += ` ORDER BY category, title, id`

	rows, err := r.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, storeError(metrics.OpListItems, err)
	}
	defer rows.Close()

	var items []*domain.TrackedItem
	for rows.Next() {
		item, err := scanTrackedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tracked item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(metrics.OpListItems, err)
	}
	return items, nil
}

// FindByIDPrefix returns items whose ID starts with prefix, so callers can
// accept the short IDs shown in listings.
func (r *SQLiteTrackedItemRepo) FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.TrackedItem, error) {
	defer observe(metrics.OpListItems)()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+trackedItemColumns+` FROM tracked_items WHERE substr(id, 1, length(?)) = ? ORDER BY id`,
		prefix, prefix)
	if err != nil {
		return nil, storeError(metrics.OpListItems, err)
	}
	defer rows.Close()

	var items []*domain.TrackedItem
	for rows.Next() {
		item, err := scanTrackedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tracked item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(metrics.OpListItems, err)
	}
	return items, nil
}

func (r *SQLiteTrackedItemRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tracked_items SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivating tracked item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tracked item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrackedItem(row rowScanner) (*domain.TrackedItem, error) {
	var item domain.TrackedItem
	var category, cadenceKind, startDate, createdAt string
	var active int

	err := row.Scan(
		&item.ID, &item.SubjectID, &category, &item.Title,
		&cadenceKind, &item.Cadence.TimesPerWeek, &startDate, &active, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	item.Category = domain.Category(category)
	item.Cadence.Kind = domain.CadenceKind(cadenceKind)
	item.Active = active != 0
	if item.StartDate, err = domain.ParseDate(startDate); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if item.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &item, nil
}
