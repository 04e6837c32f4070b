package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// resolveSubject accepts a full ID, an ID prefix, or a case-insensitive name.
func resolveSubject(ctx context.Context, app *App, input string) (*domain.Subject, error) {
	if input == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if s, err := app.Subjects.GetByID(ctx, input); err == nil {
		return s, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	all, err := app.Subjects.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Subject
	for _, s := range all {
		if strings.HasPrefix(s.ID, input) || strings.EqualFold(s.Name, input) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("subject %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("subject %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveItem accepts a full tracked item ID or a unique ID prefix.
func resolveItem(ctx context.Context, app *App, input string) (*domain.TrackedItem, error) {
	if input == "" {
		return nil, fmt.Errorf("tracked item is required")
	}
	if item, err := app.Items.GetByID(ctx, input); err == nil {
		return item, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	matches, err := app.Items.FindByIDPrefix(ctx, input)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("tracked item %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("tracked item %q is ambiguous (%d matches)", input, len(matches))
	}
}
