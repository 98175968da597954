package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultFrequency = 1
	DefaultWindowLen = 7
	MaxNameLen       = 255
)

// Habit is the canonical in-memory shape of a tracked habit.
//
// CompletedByDate is authoritative wherever it holds a key. Completed is the
// positional projection of the currently selected window and always has one
// entry per day of that window.
type Habit struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	FrequencyDays   int             `json:"frequency_days"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedByDate map[string]bool `json:"completed_by_date"`
	Completed       []bool          `json:"completed"`
	Streak          int             `json:"streak"`
	Paused          bool            `json:"paused"`
}

func (h Habit) Clone() Habit {
	out := h
	out.CompletedByDate = make(map[string]bool, len(h.CompletedByDate))
	for k, v := range h.CompletedByDate {
		out.CompletedByDate[k] = v
	}
	out.Completed = append([]bool(nil), h.Completed...)
	return out
}

// HabitDocument is the remote representation of a habit.
type HabitDocument struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Frequency       int             `json:"frequency"`
	CreatedAt       string          `json:"created_at,omitempty"`
	CompletedByDate map[string]bool `json:"completed_by_date,omitempty"`
	Completed       []bool          `json:"completed,omitempty"`
	Paused          bool            `json:"paused"`
}

func (d HabitDocument) DocumentID() string { return d.ID }

func validateHabitName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Invalid("name", ErrHabitNameEmpty)
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLen {
		return Invalid("name", ErrHabitNameTooLong)
	}
	return nil
}

// NewHabitDraft builds the create payload for a habit anchored on today.
func NewHabitDraft(name string, frequency int, today time.Time) (HabitDocument, error) {
	if err := validateHabitName(name); err != nil {
		return HabitDocument{}, err
	}
	if frequency == 0 {
		frequency = DefaultFrequency
	}
	if frequency < 1 {
		return HabitDocument{}, Invalid("frequency", ErrInvalidFrequency)
	}

	return HabitDocument{
		Name:      strings.TrimSpace(name),
		Frequency: frequency,
		CreatedAt: DateKey(today),
	}, nil
}

func ValidateHabitDocument(d HabitDocument) error {
	if err := validateHabitName(d.Name); err != nil {
		return err
	}
	if d.Frequency < 1 {
		return Invalid("frequency", ErrInvalidFrequency)
	}
	if d.CreatedAt != "" {
		if _, err := ParseDate(d.CreatedAt); err != nil {
			return Invalid("created_at", ErrInvalidDate)
		}
	}
	return nil
}

// HabitPatch changes editable habit fields. CreatedAt is immutable.
type HabitPatch struct {
	Name      *string `json:"name,omitempty"`
	Frequency *int    `json:"frequency,omitempty"`
	Paused    *bool   `json:"paused,omitempty"`
}

func (p HabitPatch) Validate() error {
	if p.Name != nil {
		if err := validateHabitName(*p.Name); err != nil {
			return err
		}
	}
	if p.Frequency != nil && *p.Frequency < 1 {
		return Invalid("frequency", ErrInvalidFrequency)
	}
	return nil
}

func (p HabitPatch) Apply(h *Habit) {
	if p.Name != nil {
		h.Name = strings.TrimSpace(*p.Name)
	}
	if p.Frequency != nil {
		h.FrequencyDays = *p.Frequency
	}
	if p.Paused != nil {
		h.Paused = *p.Paused
	}
}
