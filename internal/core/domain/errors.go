package domain

import (
	"errors"
	"regexp"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrHabitNameEmpty    = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong  = errors.New("habit name is too long (max 255 chars)")
	ErrInvalidFrequency  = errors.New("frequency must be at least 1 day")
	ErrInvalidDate       = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrHabitNotDue       = errors.New("habit is not due on this day")
	ErrDayOutOfWindow    = errors.New("day index is outside the current window")
	ErrInvalidAmount     = errors.New("amount must be a non-zero number")
	ErrUnknownCategory   = errors.New("category does not exist")
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrNegativeBudget    = errors.New("budget cannot be negative")
	ErrInvalidColor      = errors.New("invalid color format (must be #RRGGBB)")
	ErrNoteEmpty         = errors.New("note needs a title or content")
	ErrTaskTitleEmpty    = errors.New("task title cannot be empty")
	ErrTaskTextEmpty     = errors.New("task text cannot be empty")
	ErrInvalidQuadrant   = errors.New("invalid quadrant")
	ErrAchievementTitle  = errors.New("achievement title cannot be empty")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrThoughtEmpty      = errors.New("thought text cannot be empty")

	ErrInvalidThoughtCategory = errors.New("unknown thought category")

	ErrEntityNotFound = errors.New("entity not found")
	ErrConflict       = errors.New("entity already exists")
	ErrRemote         = errors.New("remote gateway call failed")
	ErrStoreClosed    = errors.New("store is closed")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// ValidationError is a local refusal raised before any remote call.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// Invalid wraps err as a validation refusal on field.
func Invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

func validColor(c string) bool {
	return c == "" || colorRegex.MatchString(c)
}
