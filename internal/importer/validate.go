package importer

import (
	"fmt"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// ValidateImportSchema checks the schema before conversion and returns every
// problem found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error
	if len(schema.Subjects) == 0 {
		errs = append(errs, fmt.Errorf("subjects: at least one subject is required"))
	}
	for i, s := range schema.Subjects {
		errs = append(errs, validateSubject(fmt.Sprintf("subjects[%d]", i), &s)...)
	}
	return errs
}

func validateSubject(prefix string, s *SubjectImport) []error {
	var errs []error
	if s.ID == "" && s.Name == "" {
		errs = append(errs, fmt.Errorf("%s: id or name is required", prefix))
	}
	for j, it := range s.Items {
		errs = append(errs, validateItem(fmt.Sprintf("%s.items[%d]", prefix, j), &it)...)
	}
	return errs
}

func validateItem(prefix string, it *ItemImport) []error {
	var errs []error

	if it.ID == "" {
		if it.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if it.Category == "" {
			errs = append(errs, fmt.Errorf("%s.category is required", prefix))
		} else if !domain.ValidCategories[it.Category] {
			errs = append(errs, fmt.Errorf("%s.category: invalid value %q", prefix, it.Category))
		}
		if it.Cadence != "" {
			if _, err := domain.ParseCadence(it.Cadence); err != nil {
				errs = append(errs, fmt.Errorf("%s.cadence: %w", prefix, err))
			}
		}
		if it.StartDate != "" {
			if _, err := domain.ParseDate(it.StartDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, it.StartDate))
			}
		}
	}

	for k, l := range it.Logs {
		if _, err := domain.ParseDate(l); err != nil {
			errs = append(errs, fmt.Errorf("%s.logs[%d]: invalid date format %q (expected YYYY-MM-DD)", prefix, k, l))
		}
	}
	return errs
}
