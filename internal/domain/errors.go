package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// InvalidDateOrderError is returned when a job ends before (or when) it starts.
type InvalidDateOrderError struct{}

func (e *InvalidDateOrderError) Error() string {
	return "start date should be before end date"
}

// InvalidCategoriesError is returned when the chosen subcategory does not
// belong to the chosen category. Parent is empty when the subcategory has no
// parent at all.
type InvalidCategoriesError struct {
	Parent string
	Child  string
}

func (e *InvalidCategoriesError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("subcategory %s has no parent category", e.Child)
	}
	return fmt.Sprintf("chosen categories do not belong together: %s, %s", e.Parent, e.Child)
}

// CategoryNotFoundError is returned when a category name matches no PostArea.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %s does not exist", e.Name)
}

// ValidationError carries per-field schema validation messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return strings.Join(parts, "; ")
}

// IsBusinessError reports whether err is a user correctable rejection of a job
// rather than an infrastructure failure.
func IsBusinessError(err error) bool {
	var (
		dateErr     *InvalidDateOrderError
		categoryErr *InvalidCategoriesError
		notFoundErr *CategoryNotFoundError
		validErr    *ValidationError
	)
	return errors.As(err, &dateErr) ||
		errors.As(err, &categoryErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &validErr)
}
