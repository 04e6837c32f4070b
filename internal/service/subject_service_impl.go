package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/repository"
)

type subjectService struct {
	subjects repository.SubjectRepo
	observer UseCaseObserver
}

func NewSubjectService(subjects repository.SubjectRepo, observers ...UseCaseObserver) SubjectService {
	return &subjectService{subjects: subjects, observer: useCaseObserverOrNoop(observers)}
}

func (s *subjectService) Create(ctx context.Context, name string) (subject *domain.Subject, err error) {
	defer track(ctx, s.observer, "create-subject", map[string]any{"name": name})(&err)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("subject name is required")
	}
	subject = &domain.Subject{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err = s.subjects.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("creating subject: %w", err)
	}
	return subject, nil
}

func (s *subjectService) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

func (s *subjectService) List(ctx context.Context) ([]*domain.Subject, error) {
	return s.subjects.List(ctx)
}
