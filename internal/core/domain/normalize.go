package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The Normalize* functions map a raw remote document to its canonical
// in-memory shape. now supplies fallbacks for missing dates.

func dateOr(s string, now time.Time) time.Time {
	if d, err := ParseDate(s); err == nil {
		return d
	}
	return Day(now)
}

func timestampOr(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	if d, err := ParseDate(s); err == nil {
		return d
	}
	return now.UTC()
}

func NormalizeHabit(d HabitDocument, now time.Time) Habit {
	freq := d.Frequency
	if freq < 1 {
		freq = DefaultFrequency
	}

	completed := append([]bool(nil), d.Completed...)
	if len(completed) == 0 {
		completed = make([]bool, DefaultWindowLen)
	}

	byDate := make(map[string]bool, len(d.CompletedByDate))
	for k, v := range d.CompletedByDate {
		if day, err := ParseDate(k); err == nil {
			byDate[DateKey(day)] = v
		}
	}

	return Habit{
		ID:              d.ID,
		Name:            d.Name,
		FrequencyDays:   freq,
		CreatedAt:       dateOr(d.CreatedAt, now),
		CompletedByDate: byDate,
		Completed:       completed,
		Paused:          d.Paused,
	}
}

func NormalizeExpense(d ExpenseDocument, now time.Time) Expense {
	ref := CategoryRef{ID: d.Category, Name: strings.TrimSpace(d.Title)}
	if ref.ID == "" && ref.Name == "" {
		ref.Name = DefaultCategoryName
	}
	return Expense{
		ID:          d.ID,
		Category:    ref,
		Amount:      d.Amount,
		Date:        dateOr(d.Date, now),
		Time:        d.Time,
		Description: d.Description,
		IsRecurring: d.IsRecurring,
	}
}

func normalizeCategory(scope CategoryScope, d CategoryDocument) Category {
	c := Category{
		ID:     d.ID,
		Scope:  scope,
		Name:   strings.TrimSpace(d.Name),
		Color:  d.Color,
		Budget: decimal.Zero,
	}
	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}
	if scope == ScopeFinance && d.Budget != nil && !d.Budget.IsNegative() {
		c.Budget = *d.Budget
	}
	return c
}

func NormalizeFinanceCategory(d CategoryDocument, _ time.Time) Category {
	return normalizeCategory(ScopeFinance, d)
}

func NormalizeTaskCategory(d CategoryDocument, _ time.Time) Category {
	return normalizeCategory(ScopeTask, d)
}

func NormalizeNote(d NoteDocument, now time.Time) Note {
	color := d.Color
	if color == "" {
		color = DefaultNoteColor
	}
	return Note{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		Color:     color,
		Pinned:    d.Pinned,
		CreatedAt: timestampOr(d.CreatedAt, now),
	}
}

func NormalizeTask(d TaskDocument, now time.Time) Task {
	return Task{
		ID:          d.ID,
		CategoryID:  d.Category,
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		CreatedAt:   timestampOr(d.CreatedAt, now),
	}
}

func NormalizeQuadrantTask(d QuadrantTaskDocument, now time.Time) QuadrantTask {
	t := QuadrantTask{
		ID:        d.ID,
		Text:      d.Text,
		Quadrant:  ParseQuadrant(d.Quadrant),
		Completed: d.Completed,
		CreatedAt: timestampOr(d.CreatedAt, now),
	}
	if d.Deadline != nil {
		t.Deadline = *d.Deadline
	}
	if d.Time != nil {
		t.Time = *d.Time
	}
	return t
}

func NormalizeAchievement(d AchievementDocument, now time.Time) Achievement {
	return Achievement{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		DateEarned:  dateOr(d.DateEarned, now),
	}
}

func NormalizeTimerSession(d TimerSessionDocument, now time.Time) TimerSession {
	label := strings.TrimSpace(d.TaskName)
	if label == "" {
		label = DefaultSessionLabel
	}
	return TimerSession{
		ID:        d.ID,
		Label:     label,
		Minutes:   d.Duration,
		StartedAt: timestampOr(d.CreatedAt, now),
	}
}

// NormalizeThought defaults a missing category to motivational and a
// missing active flag to true, as the backend model does.
func NormalizeThought(d ThoughtDocument, now time.Time) Thought {
	category := ThoughtCategory(d.Category)
	if !category.Valid() {
		category = ThoughtMotivational
	}
	active := true
	if d.IsActive != nil {
		active = *d.IsActive
	}
	return Thought{
		ID:        d.ID,
		Category:  category,
		Text:      strings.TrimSpace(d.Text),
		Active:    active,
		CreatedAt: timestampOr(d.CreatedAt, now),
	}
}
