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

// SQLiteSubjectRepo implements SubjectRepo using a SQLite database.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

func NewSQLiteSubjectRepo(db db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: db}
}

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	query := `INSERT INTO subjects (id, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	defer observe(metrics.OpGetSubject)()

	var s domain.Subject
	var createdAt string
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM subjects WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subject %s: %w", id, domain.ErrNotFound)
		}
		return nil, storeError(metrics.OpGetSubject, err)
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSubjectRepo) List(ctx context.Context) ([]*domain.Subject, error) {
	defer observe(metrics.OpListSubjects)()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM subjects ORDER BY name, id`)
	if err != nil {
		return nil, storeError(metrics.OpListSubjects, err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		var s domain.Subject
		var createdAt string
		if err := rows.Scan(&s.ID, &s.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning subject row: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		subjects = append(subjects, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(metrics.OpListSubjects, err)
	}
	return subjects, nil
}
