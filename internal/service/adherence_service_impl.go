package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/horia913/daily-fitness-sub008/internal/adherence"
	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/metrics"
	"github.com/horia913/daily-fitness-sub008/internal/repository"
)

var (
	_ app.ComplianceUseCase     = (*adherenceService)(nil)
	_ app.StreakUseCase         = (*adherenceService)(nil)
	_ app.CompletionRateUseCase = (*adherenceService)(nil)
)

const defaultSummaryConcurrency = 4

type adherenceService struct {
	subjects    repository.SubjectRepo
	items       repository.TrackedItemRepo
	logs        repository.LogStore
	clock       Clock
	windowDays  int
	concurrency int
	observer    UseCaseObserver
}

type AdherenceOption func(*adherenceService)

// WithWindowDays sets the window used when a request leaves it at zero.
func WithWindowDays(n int) AdherenceOption {
	return func(s *adherenceService) {
		if n > 0 {
			s.windowDays = n
		}
	}
}

// WithSummaryConcurrency bounds how many subjects are loaded at once.
func WithSummaryConcurrency(n int) AdherenceOption {
	return func(s *adherenceService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithObserver(obs UseCaseObserver) AdherenceOption {
	return func(s *adherenceService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

func NewAdherenceService(
	subjects repository.SubjectRepo,
	items repository.TrackedItemRepo,
	logs repository.LogStore,
	clock Clock,
	opts ...AdherenceOption,
) AdherenceService {
	s := &adherenceService{
		subjects:    subjects,
		items:       items,
		logs:        logs,
		clock:       clock,
		windowDays:  adherence.DefaultWindowDays,
		concurrency: defaultSummaryConcurrency,
		observer:    NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *adherenceService) GetStreak(ctx context.Context, itemID string) (streak int, err error) {
	defer track(ctx, s.observer, "get-streak", map[string]any{"item_id": itemID})(&err)

	dates, err := s.itemDates(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return adherence.CurrentStreak(dates, s.clock.Today()), nil
}

func (s *adherenceService) GetCompletionRate(ctx context.Context, itemID string, windowDays int) (rate int, err error) {
	fields := map[string]any{"item_id": itemID, "window_days": windowDays}
	defer track(ctx, s.observer, "get-completion-rate", fields)(&err)

	window, err := s.resolveWindow(windowDays)
	if err != nil {
		return 0, err
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("tracked item %s: %w", itemID, err)
	}

	today := s.clock.Today()
	entries, err := s.logs.ListLogs(ctx, []string{itemID}, windowStart(today, window))
	if err != nil {
		return 0, fmt.Errorf("loading logs for %s: %w", itemID, err)
	}
	target := adherence.WindowTarget(item.Cadence, window)
	rate = adherence.CompletionRate(domain.DatesFor(entries, itemID), today, window, target)
	fields["rate"] = rate
	return rate, nil
}

// GetProgress returns per-item numbers for a subject's active items, in the
// order the store lists them.
func (s *adherenceService) GetProgress(ctx context.Context, req app.ProgressRequest) (out []app.ItemProgress, err error) {
	defer track(ctx, s.observer, "get-progress", map[string]any{"subject_id": req.SubjectID})(&err)

	window, err := s.resolveWindow(req.WindowDays)
	if err != nil {
		return nil, err
	}
	if _, err = s.subjects.GetByID(ctx, req.SubjectID); err != nil {
		return nil, fmt.Errorf("subject %s: %w", req.SubjectID, err)
	}
	items, err := s.items.ListBySubject(ctx, req.SubjectID, false)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	entries, err := s.logs.ListLogs(ctx, itemIDs(items), time.Time{})
	if err != nil {
		return nil, fmt.Errorf("loading logs: %w", err)
	}

	today := s.clock.todayAt(req.Now)
	out = make([]app.ItemProgress, 0, len(items))
	for _, item := range items {
		dates := domain.DatesFor(entries, item.ID)
		p := progressFor(item, dates, today, window)
		out = append(out, app.ItemProgress{
			Item:          item,
			Streak:        p.Streak,
			LongestStreak: adherence.LongestStreak(dates),
			Completed:     p.Completed,
			Target:        p.Target,
			Rate:          p.Rate,
			DoneToday:     hasDay(dates, today),
		})
	}
	return out, nil
}

func (s *adherenceService) GetComplianceSummary(ctx context.Context, req app.ComplianceRequest) (summary *app.ComplianceSummary, err error) {
	fields := map[string]any{"subjects_requested": len(req.SubjectIDs)}
	defer track(ctx, s.observer, "get-compliance-summary", fields)(&err)

	window, err := s.resolveWindow(req.WindowDays)
	if err != nil {
		return nil, err
	}
	today := s.clock.todayAt(req.Now)

	subjects, failures, err := s.resolveSubjects(ctx, req.SubjectIDs)
	if err != nil {
		return nil, err
	}

	outcomes := make([]subjectOutcome, len(subjects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, subj := range subjects {
		g.Go(func() error {
			outcomes[i] = s.scoreSubject(gctx, subj, today, window)
			return nil
		})
	}
	_ = g.Wait()
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	summary = &app.ComplianceSummary{
		GeneratedAt: s.clock.now().UTC(),
		Today:       today,
		WindowDays:  window,
		Unavailable: failures,
	}
	var scores []adherence.SubjectScore
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			summary.Unavailable = append(summary.Unavailable, app.SubjectFailure{
				SubjectID:   o.subject.ID,
				SubjectName: o.subject.Name,
				Err:         o.err,
			})
		case !o.scored:
			summary.Unscored = append(summary.Unscored, o.subject.ID)
		default:
			scores = append(scores, o.score)
			summary.Subjects = append(summary.Subjects, o.view)
		}
	}

	agg := adherence.AggregateCoach(scores)
	summary.Overall = agg.Overall
	summary.PerCategory = agg.PerCategory
	summary.BucketCounts = app.BucketCounts(agg.BucketCounts)
	sortSubjectViews(summary.Subjects)

	metrics.ComplianceSubjectsExcludedTotal.Add(float64(len(summary.Unavailable)))
	if agg.Scored > 0 {
		metrics.ComplianceOverall.Set(float64(agg.Overall))
	}
	fields["scored"] = agg.Scored
	fields["unavailable"] = len(summary.Unavailable)
	return summary, nil
}

type subjectOutcome struct {
	subject *domain.Subject
	score   adherence.SubjectScore
	view    app.SubjectCompliance
	scored  bool
	err     error
}

// scoreSubject never fails the batch; a store error is carried on the outcome.
func (s *adherenceService) scoreSubject(ctx context.Context, subj *domain.Subject, today time.Time, window int) subjectOutcome {
	out := subjectOutcome{subject: subj}

	items, err := s.items.ListBySubject(ctx, subj.ID, false)
	if err != nil {
		out.err = fmt.Errorf("loading items: %w", err)
		return out
	}
	if len(items) == 0 {
		return out
	}

	entries, err := s.logs.ListLogs(ctx, itemIDs(items), time.Time{})
	if err != nil {
		out.err = fmt.Errorf("loading logs: %w", err)
		return out
	}

	type tally struct{ completed, target int }
	byCat := make(map[domain.Category]*tally)
	views := make([]app.ItemCompliance, 0, len(items))
	for _, item := range items {
		p := progressFor(item, domain.DatesFor(entries, item.ID), today, window)
		views = append(views, app.ItemCompliance{
			ItemID:    item.ID,
			Title:     item.Title,
			Category:  item.Category,
			Cadence:   item.Cadence,
			Streak:    p.Streak,
			Completed: p.Completed,
			Target:    p.Target,
			Rate:      p.Rate,
		})

		t := byCat[item.Category]
		if t == nil {
			t = &tally{}
			byCat[item.Category] = t
		}
		// Over-delivery on one item must not hide a miss on another.
		t.completed += min(p.Completed, p.Target)
		t.target += p.Target
	}

	rates := make(map[domain.Category]int, len(byCat))
	for cat, t := range byCat {
		rates[cat] = adherence.RateFromCounts(t.completed, t.target)
	}

	score, ok := adherence.ScoreSubject(subj.ID, rates)
	if !ok {
		return out
	}
	out.scored = true
	out.score = score
	out.view = app.SubjectCompliance{
		SubjectID:   subj.ID,
		SubjectName: subj.Name,
		PerCategory: score.PerCategory,
		Overall:     score.Overall,
		Status:      score.Status,
		Bucket:      adherence.CoachBucketFor(score.Overall),
		Items:       views,
	}
	return out
}

// resolveSubjects loads the requested subjects. Unknown ids fail the request;
// store errors on individual lookups become Unavailable entries.
func (s *adherenceService) resolveSubjects(ctx context.Context, ids []string) ([]*domain.Subject, []app.SubjectFailure, error) {
	if len(ids) == 0 {
		all, err := s.subjects.List(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("loading subjects: %w", err)
		}
		return all, nil, nil
	}

	var (
		subjects []*domain.Subject
		failures []app.SubjectFailure
		seen     = make(map[string]bool, len(ids))
	)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		subj, err := s.subjects.GetByID(ctx, id)
		switch {
		case err == nil:
			subjects = append(subjects, subj)
		case errors.Is(err, domain.ErrNotFound):
			return nil, nil, &app.ComplianceError{
				Code:    app.ComplianceErrUnknownSubject,
				Message: fmt.Sprintf("subject %s does not exist", id),
			}
		default:
			failures = append(failures, app.SubjectFailure{SubjectID: id, Err: err})
		}
	}
	return subjects, failures, nil
}

func (s *adherenceService) resolveWindow(windowDays int) (int, error) {
	switch {
	case windowDays == 0:
		return s.windowDays, nil
	case windowDays < 0:
		return 0, &app.ComplianceError{
			Code:    app.ComplianceErrInvalidWindow,
			Message: fmt.Sprintf("window must be positive, got %d", windowDays),
		}
	default:
		return windowDays, nil
	}
}

func (s *adherenceService) itemDates(ctx context.Context, itemID string) ([]time.Time, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, fmt.Errorf("tracked item %s: %w", itemID, err)
	}
	entries, err := s.logs.ListLogs(ctx, []string{itemID}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("loading logs for %s: %w", itemID, err)
	}
	return domain.DatesFor(entries, itemID), nil
}

func sortSubjectViews(views []app.SubjectCompliance) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Overall != views[j].Overall {
			return views[i].Overall < views[j].Overall
		}
		return views[i].SubjectName < views[j].SubjectName
	})
}
