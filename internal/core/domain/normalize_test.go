package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

var now = time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

func TestNormalizeHabit(t *testing.T) {
	t.Run("Legacy document gets defaults", func(t *testing.T) {
		h := domain.NormalizeHabit(domain.HabitDocument{ID: "1", Name: "Read"}, now)

		assert.Equal(t, domain.DefaultFrequency, h.FrequencyDays)
		assert.Equal(t, domain.Day(now), h.CreatedAt)
		assert.Len(t, h.Completed, domain.DefaultWindowLen)
		assert.NotNil(t, h.CompletedByDate)
	})

	t.Run("Ledger keys are canonicalised", func(t *testing.T) {
		h := domain.NormalizeHabit(domain.HabitDocument{
			Frequency: 2,
			CreatedAt: "2024-03-01T18:00:00Z",
			CompletedByDate: map[string]bool{
				"2024-03-02T00:00:00Z": true,
				"2024-03-04":           true,
				"garbage":              true,
			},
			Completed: []bool{true},
		}, now)

		assert.Equal(t, 2, h.FrequencyDays)
		assert.Equal(t, "2024-03-01", domain.DateKey(h.CreatedAt))
		assert.Equal(t, map[string]bool{"2024-03-02": true, "2024-03-04": true}, h.CompletedByDate)
		assert.Equal(t, []bool{true}, h.Completed, "positional array is kept for projection")
	})
}

func TestNormalizeExpense(t *testing.T) {
	e := domain.NormalizeExpense(domain.ExpenseDocument{
		ID:     "e1",
		Title:  " Food ",
		Amount: decimal.RequireFromString("-42.50"),
		Date:   "2024-03-05T12:00:00Z",
	}, now)

	assert.Equal(t, "Food", e.Category.Name)
	assert.Equal(t, "2024-03-05", domain.DateKey(e.Date))
	assert.False(t, e.IsIncome())

	orphan := domain.NormalizeExpense(domain.ExpenseDocument{Amount: decimal.NewFromInt(5)}, now)
	assert.Equal(t, domain.DefaultCategoryName, orphan.Category.Name)
	assert.Equal(t, domain.Day(now), orphan.Date)
	assert.True(t, orphan.IsIncome())
}

func TestNormalizeCategory(t *testing.T) {
	budget := decimal.NewFromInt(200)
	negative := decimal.NewFromInt(-1)

	f := domain.NormalizeFinanceCategory(domain.CategoryDocument{Name: "Food", Budget: &budget}, now)
	assert.Equal(t, domain.ScopeFinance, f.Scope)
	assert.True(t, f.Budget.Equal(budget))
	assert.Equal(t, domain.DefaultCategoryColor, f.Color)

	bad := domain.NormalizeFinanceCategory(domain.CategoryDocument{Name: "Food", Budget: &negative}, now)
	assert.True(t, bad.Budget.IsZero())

	task := domain.NormalizeTaskCategory(domain.CategoryDocument{Name: "Work", Budget: &budget}, now)
	assert.Equal(t, domain.ScopeTask, task.Scope)
	assert.True(t, task.Budget.IsZero(), "task categories carry no budget")
}

func TestNormalizeOthers(t *testing.T) {
	n := domain.NormalizeNote(domain.NoteDocument{Title: "x", CreatedAt: "2024-03-01T08:00:00+02:00"}, now)
	assert.Equal(t, domain.DefaultNoteColor, n.Color)
	assert.Equal(t, time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC), n.CreatedAt)

	q := domain.NormalizeQuadrantTask(domain.QuadrantTaskDocument{Text: "t", Quadrant: " Not_Urgent_Important "}, now)
	assert.Equal(t, domain.QuadrantNotUrgentImportant, q.Quadrant)
	assert.Equal(t, now, q.CreatedAt)

	s := domain.NormalizeTimerSession(domain.TimerSessionDocument{Duration: 25, TaskName: "  "}, now)
	assert.Equal(t, domain.DefaultSessionLabel, s.Label)
	assert.Equal(t, 25, s.Minutes)

	a := domain.NormalizeAchievement(domain.AchievementDocument{Title: "a", DateEarned: "2024-02-29"}, now)
	assert.Equal(t, "2024-02-29", domain.DateKey(a.DateEarned))
}

func TestExpenseSign(t *testing.T) {
	amount := decimal.RequireFromString("12.30")
	yes, no := true, false

	assert.True(t, domain.SignedAmount(amount.Neg(), true).Equal(amount))
	assert.True(t, domain.SignedAmount(amount, false).Equal(amount.Neg()))

	assert.True(t, domain.ExpenseDraft{Amount: amount.Neg()}.SignedAmount().Equal(amount.Neg()))
	assert.True(t, domain.ExpenseDraft{Amount: amount, IsIncome: &no}.SignedAmount().IsNegative())
	assert.True(t, domain.ExpenseDraft{Amount: amount.Neg(), IsIncome: &yes}.SignedAmount().IsPositive())
}

func TestCategoryRef(t *testing.T) {
	food := domain.Category{ID: "c1", Name: "Food"}

	assert.True(t, domain.CategoryRef{ID: "c1"}.Matches(food))
	assert.True(t, domain.CategoryRef{Name: " food"}.Matches(food))
	assert.False(t, domain.CategoryRef{ID: "c2", Name: "Rent"}.Matches(food))
	assert.Equal(t, "c9", domain.CategoryRef{ID: "c9"}.Label())
}

func TestValidateDocuments(t *testing.T) {
	deadline := "tomorrow"

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"note empty", domain.ValidateNoteDocument(domain.NoteDocument{}), domain.ErrNoteEmpty},
		{"note bad color", domain.ValidateNoteDocument(domain.NoteDocument{Title: "a", Color: "yellow"}), domain.ErrInvalidColor},
		{"task no title", domain.ValidateTaskDocument(domain.TaskDocument{Category: "c"}), domain.ErrTaskTitleEmpty},
		{"quadrant text", domain.ValidateQuadrantTaskDocument(domain.QuadrantTaskDocument{}), domain.ErrTaskTextEmpty},
		{"quadrant bucket", domain.ValidateQuadrantTaskDocument(domain.QuadrantTaskDocument{Text: "a", Quadrant: "x"}), domain.ErrInvalidQuadrant},
		{"quadrant deadline", domain.ValidateQuadrantTaskDocument(domain.QuadrantTaskDocument{Text: "a", Deadline: &deadline}), domain.ErrInvalidDate},
		{"achievement", domain.ValidateAchievementDocument(domain.AchievementDocument{}), domain.ErrAchievementTitle},
		{"timer", domain.ValidateTimerSessionDocument(domain.TimerSessionDocument{Duration: -5}), domain.ErrInvalidDuration},
		{"category", domain.ValidateCategoryDocument(domain.CategoryDocument{Name: " "}), domain.ErrCategoryNameEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.wantErr)
			assert.ErrorIs(t, tt.err, domain.ErrValidation)
		})
	}
}

func TestNormalizeThought(t *testing.T) {
	off := false
	th := domain.NormalizeThought(domain.ThoughtDocument{ID: "t1", Text: "  Breathe  ", Category: "mood"}, now)
	require.Equal(t, "t1", th.ID)
	assert.Equal(t, domain.ThoughtMotivational, th.Category)
	assert.Equal(t, "Breathe", th.Text)
	assert.True(t, th.Active)
	assert.Equal(t, now, th.CreatedAt)

	th = domain.NormalizeThought(domain.ThoughtDocument{Text: "x", Category: "calm", IsActive: &off}, now)
	assert.Equal(t, domain.ThoughtCalm, th.Category)
	assert.False(t, th.Active)
}

func TestValidateThought(t *testing.T) {
	assert.ErrorIs(t, domain.ValidateThoughtDocument(domain.ThoughtDocument{Text: " "}), domain.ErrThoughtEmpty)
	assert.ErrorIs(t, domain.ValidateThoughtDocument(domain.ThoughtDocument{Text: "ok", Category: "mood"}), domain.ErrInvalidThoughtCategory)
	assert.NoError(t, domain.ValidateThoughtDocument(domain.ThoughtDocument{Text: "ok", Category: "focus"}))

	bad := "mood"
	assert.ErrorIs(t, domain.ThoughtPatch{Category: &bad}.Validate(), domain.ErrValidation)
}
