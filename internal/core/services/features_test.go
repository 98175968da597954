package services_test

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/schedule"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/window"
)

func TestStore_ToggleHabit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Writes both representations and syncs", func(t *testing.T) {
		h := newHarness(t)
		habit, _ := h.store.AddHabit(ctx, services.CreateHabitInput{Name: "Read"})

		got, err := h.store.ToggleHabit(habit.ID, schedule.IndexKey(3), true)
		require.NoError(t, err)
		assert.True(t, got.CompletedByDate["2024-03-13"])
		assert.True(t, got.Completed[3])
		assert.Equal(t, domain.SyncPending, h.store.Habits.State(habit.ID))

		h.flush()

		server, _ := h.remote.habits.Get(habit.ID)
		assert.True(t, server.CompletedByDate["2024-03-13"])
		got, _ = h.store.Habits.Get(habit.ID)
		assert.True(t, got.Completed[3])
		assert.Equal(t, domain.SyncSynced, h.store.Habits.State(habit.ID))
	})

	t.Run("Success: Unchecking removes the date", func(t *testing.T) {
		h := newHarness(t)
		habit, _ := h.store.AddHabit(ctx, services.CreateHabitInput{Name: "Read"})
		_, _ = h.store.ToggleHabit(habit.ID, schedule.DateKey("2024-03-13"), true)
		h.flush()

		got, err := h.store.ToggleHabit(habit.ID, schedule.DateKey("2024-03-13"), false)
		require.NoError(t, err)
		assert.False(t, got.CompletedByDate["2024-03-13"])
		h.dispatcher.Wait()

		server, _ := h.remote.habits.Get(habit.ID)
		_, present := server.CompletedByDate["2024-03-13"]
		assert.False(t, present)
	})

	t.Run("Fail: A day that is not due is refused before any remote call", func(t *testing.T) {
		h := newHarness(t)
		habit, _ := h.store.AddHabit(ctx, services.CreateHabitInput{Name: "Every third day", Frequency: 3})

		_, err := h.store.ToggleHabit(habit.ID, schedule.DateKey("2024-03-14"), true)
		assert.ErrorIs(t, err, domain.ErrHabitNotDue)
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = h.store.ToggleHabit(habit.ID, schedule.DateKey("2024-03-12"), true)
		assert.ErrorIs(t, err, domain.ErrHabitNotDue, "days before creation are not due")

		h.flush()
		assert.Zero(t, h.remote.habits.toggles)
		assert.Equal(t, domain.SyncSynced, h.store.Habits.State(habit.ID))
	})

	t.Run("Fail: Index outside the window", func(t *testing.T) {
		h := newHarness(t)
		habit, _ := h.store.AddHabit(ctx, services.CreateHabitInput{Name: "Read"})

		_, err := h.store.ToggleHabit(habit.ID, schedule.IndexKey(7), true)
		assert.ErrorIs(t, err, domain.ErrDayOutOfWindow)
	})

	t.Run("Fail: Remote toggle failure keeps the mark", func(t *testing.T) {
		h := newHarness(t)
		habit, _ := h.store.AddHabit(ctx, services.CreateHabitInput{Name: "Read"})
		h.remote.habits.failToggle = errNetwork

		_, err := h.store.ToggleHabit(habit.ID, schedule.DateKey("2024-03-13"), true)
		require.NoError(t, err)
		h.flush()

		got, _ := h.store.Habits.Get(habit.ID)
		assert.True(t, got.CompletedByDate["2024-03-13"])
		assert.Equal(t, domain.SyncDiverged, h.store.Habits.State(habit.ID))
		require.Len(t, h.store.Divergences(), 1)
		assert.Equal(t, domain.OpToggle, h.store.Divergences()[0].Op)
	})
}

func TestStore_LogAllDue(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.remote.habits.Seed(domain.HabitDocument{Name: "Daily", Frequency: 1, CreatedAt: "2024-03-01"})
	h.remote.habits.Seed(domain.HabitDocument{Name: "Third", Frequency: 3, CreatedAt: "2024-03-01"})
	h.remote.habits.Seed(domain.HabitDocument{Name: "Paused", Frequency: 1, CreatedAt: "2024-03-01", Paused: true})
	h.remote.habits.Seed(domain.HabitDocument{
		Name: "Done", Frequency: 1, CreatedAt: "2024-03-01",
		CompletedByDate: map[string]bool{"2024-03-13": true},
	})
	require.NoError(t, h.store.Reload(ctx, domain.KindHabit))

	logged := h.store.LogAllDue()
	require.Len(t, logged, 2)
	assert.Equal(t, "Daily", logged[0].Name)
	assert.Equal(t, "Third", logged[1].Name, "2024-03-13 is 12 days after creation")

	h.flush()
	assert.Equal(t, 2, h.remote.habits.toggles)
	assert.Empty(t, h.store.LogAllDue(), "nothing left to log")
	assert.Len(t, h.store.HabitsDueToday(), 3)
}

func TestStore_LogAllDueLogsSkipped(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	h := newHarness(t)
	seeded := h.remote.habits.Seed(domain.HabitDocument{Name: "Daily", Frequency: 1, CreatedAt: "2024-03-01"})
	require.NoError(t, h.store.Reload(context.Background(), domain.KindHabit))
	h.store.Close()

	assert.Empty(t, h.store.LogAllDue())
	assert.Contains(t, buf.String(), "[STORE] log due habit "+seeded.ID)
	assert.Contains(t, buf.String(), domain.ErrStoreClosed.Error())
}

func TestStore_Expenses(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Creates the category once", func(t *testing.T) {
		h := newHarness(t)

		e1, err := h.store.AddExpense(ctx, domain.ExpenseDraft{Category: "Food", Amount: mustDecimal("-42.50"), Date: "2024-03-05"})
		require.NoError(t, err)
		e2, err := h.store.AddExpense(ctx, domain.ExpenseDraft{Category: "food", Amount: mustDecimal("8"), IsIncome: ptr(false), Date: "2024-03-06"})
		require.NoError(t, err)

		assert.Equal(t, 1, h.store.FinanceCategories.Len())
		creates, _, _, _ := h.remote.financeCategories.Calls()
		assert.Equal(t, 1, creates)

		assert.Equal(t, e1.Category.ID, e2.Category.ID)
		assert.Equal(t, "Food", e2.Category.Name)
		assert.True(t, e2.Amount.Equal(mustDecimal("-8")))
	})

	t.Run("Success: Income toggle makes the amount positive", func(t *testing.T) {
		h := newHarness(t)
		e, err := h.store.AddExpense(ctx, domain.ExpenseDraft{Category: "Salary", Amount: mustDecimal("-1500"), IsIncome: ptr(true), Date: "2024-03-01"})
		require.NoError(t, err)
		assert.True(t, e.IsIncome())
	})

	t.Run("Success: Empty category falls back to Other", func(t *testing.T) {
		h := newHarness(t)
		e, err := h.store.AddExpense(ctx, domain.ExpenseDraft{Amount: mustDecimal("-3"), Date: "2024-03-01"})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultCategoryName, e.Category.Name)
	})

	t.Run("Fail: Invalid draft creates nothing", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.store.AddExpense(ctx, domain.ExpenseDraft{Category: "Food", Amount: mustDecimal("0"), Date: "2024-03-01"})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		_, err = h.store.AddExpense(ctx, domain.ExpenseDraft{Category: "Food", Amount: mustDecimal("-1"), Date: "03/01/2024"})
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
		assert.Zero(t, h.store.FinanceCategories.Len())
	})

	t.Run("Fail: Update to an unknown category", func(t *testing.T) {
		h := newHarness(t)
		e, _ := h.store.AddExpense(ctx, domain.ExpenseDraft{Category: "Food", Amount: mustDecimal("-5"), Date: "2024-03-01"})

		_, err := h.store.UpdateExpense(e.ID, domain.ExpensePatch{Category: ptr("Travel")})
		assert.ErrorIs(t, err, domain.ErrUnknownCategory)
		assert.Equal(t, 1, h.store.FinanceCategories.Len())
	})

	t.Run("Success: Update to an existing category sends its id", func(t *testing.T) {
		h := newHarness(t)
		travel, err := h.store.AddCategory(ctx, domain.ScopeFinance, services.CreateCategoryInput{Name: "Travel"})
		require.NoError(t, err)
		e, _ := h.store.AddExpense(ctx, domain.ExpenseDraft{Category: "Food", Amount: mustDecimal("-5"), Date: "2024-03-01"})

		got, err := h.store.UpdateExpense(e.ID, domain.ExpensePatch{Category: ptr("travel")})
		require.NoError(t, err)
		assert.Equal(t, travel.ID, got.Category.ID)
		h.flush()

		server, _ := h.remote.expenses.Get(e.ID)
		assert.Equal(t, travel.ID, server.Category)
		assert.Equal(t, "Travel", server.Title)
	})

	t.Run("Scenario: A March expense leaves the month window in April", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.store.AddExpense(ctx, domain.ExpenseDraft{Category: "Food", Amount: mustDecimal("-42.50"), Date: "2024-03-05"})
		require.NoError(t, err)

		month := window.Query{Span: window.SpanMonth}
		assert.Len(t, h.store.ListExpenses(month), 1)

		h.clock.Set(time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC))
		assert.Empty(t, h.store.ListExpenses(month))
		assert.True(t, h.store.ExpenseSummary(month).Spending.IsZero())
		assert.Len(t, h.store.ListExpenses(window.Query{Span: window.SpanAll}), 1)
	})
}

func TestStore_Categories(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	food, err := h.store.AddCategory(ctx, domain.ScopeFinance, services.CreateCategoryInput{Name: "Food", Color: "#ff0000", Budget: mustDecimal("300")})
	require.NoError(t, err)
	assert.True(t, food.Budget.Equal(mustDecimal("300")))

	_, err = h.store.AddCategory(ctx, domain.ScopeFinance, services.CreateCategoryInput{Name: "FOOD"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCategory)

	_, err = h.store.AddCategory(ctx, domain.ScopeTask, services.CreateCategoryInput{Name: "Food"})
	assert.NoError(t, err, "names are unique per scope")

	_, err = h.store.AddCategory(ctx, domain.ScopeFinance, services.CreateCategoryInput{Name: "Bad", Color: "red"})
	assert.ErrorIs(t, err, domain.ErrInvalidColor)

	rent, _ := h.store.AddCategory(ctx, domain.ScopeFinance, services.CreateCategoryInput{Name: "Rent"})
	_, err = h.store.UpdateCategory(domain.ScopeFinance, rent.ID, domain.CategoryPatch{Name: ptr("food")})
	assert.ErrorIs(t, err, domain.ErrDuplicateCategory)
}

func TestStore_Tasks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.store.AddTask(ctx, domain.TaskDocument{Title: "Write report", Category: "Work"})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	work, err := h.store.AddCategory(ctx, domain.ScopeTask, services.CreateCategoryInput{Name: "Work"})
	require.NoError(t, err)

	task, err := h.store.AddTask(ctx, domain.TaskDocument{Title: "Write report", Category: "work"})
	require.NoError(t, err)
	assert.Equal(t, work.ID, task.CategoryID)

	grouped := h.store.TasksByCategory()
	assert.Len(t, grouped[work.ID], 1)
}

func TestStore_Notes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.store.AddNote(ctx, domain.NoteDocument{Title: "First"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultNoteColor, first.Color)

	h.clock.Set(time.Date(2024, 3, 13, 11, 0, 0, 0, time.UTC))
	second, _ := h.store.AddNote(ctx, domain.NoteDocument{Title: "Second"})
	h.clock.Set(time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC))
	third, _ := h.store.AddNote(ctx, domain.NoteDocument{Title: "Third"})

	_, err = h.store.AddNote(ctx, domain.NoteDocument{})
	assert.ErrorIs(t, err, domain.ErrNoteEmpty)

	_, err = h.store.TogglePin(first.ID)
	require.NoError(t, err)

	notes := h.store.ListNotes()
	require.Len(t, notes, 3)
	assert.Equal(t, []string{first.ID, third.ID, second.ID}, []string{notes[0].ID, notes[1].ID, notes[2].ID})

	h.flush()
	server, _ := h.remote.notes.Get(first.ID)
	assert.True(t, server.Pinned)
}

func TestStore_QuadrantTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Move sends the new bucket", func(t *testing.T) {
		h := newHarness(t)
		task, err := h.store.AddQuadrantTask(ctx, services.CreateQuadrantTaskInput{Text: "Pay taxes"})
		require.NoError(t, err)
		assert.Equal(t, domain.QuadrantUrgentImportant, task.Quadrant)

		moved, err := h.store.MoveQuadrantTask(task.ID, domain.QuadrantUrgentImportant, domain.QuadrantNotUrgentImportant)
		require.NoError(t, err)
		assert.Equal(t, domain.QuadrantNotUrgentImportant, moved.Quadrant)

		board := h.store.Board()
		assert.Empty(t, board[domain.QuadrantUrgentImportant])
		assert.Len(t, board[domain.QuadrantNotUrgentImportant], 1)

		h.flush()
		server, _ := h.remote.quadrantTasks.Get(task.ID)
		assert.Equal(t, string(domain.QuadrantNotUrgentImportant), server.Quadrant)
	})

	t.Run("Success: Moved task is appended to the target bucket", func(t *testing.T) {
		h := newHarness(t)
		a, _ := h.store.AddQuadrantTask(ctx, services.CreateQuadrantTaskInput{Text: "A"})
		b, _ := h.store.AddQuadrantTask(ctx, services.CreateQuadrantTaskInput{Text: "B", Quadrant: string(domain.QuadrantNotUrgentImportant)})

		_, err := h.store.MoveQuadrantTask(a.ID, domain.QuadrantUrgentImportant, domain.QuadrantNotUrgentImportant)
		require.NoError(t, err)

		bucket := h.store.Board()[domain.QuadrantNotUrgentImportant]
		require.Len(t, bucket, 2)
		assert.Equal(t, []string{b.ID, a.ID}, []string{bucket[0].ID, bucket[1].ID})

		h.flush()
		bucket = h.store.Board()[domain.QuadrantNotUrgentImportant]
		assert.Equal(t, a.ID, bucket[1].ID, "the response keeps the new position")
	})

	t.Run("Success: Same bucket sends nothing", func(t *testing.T) {
		h := newHarness(t)
		task, _ := h.store.AddQuadrantTask(ctx, services.CreateQuadrantTaskInput{Text: "Pay taxes"})

		_, err := h.store.MoveQuadrantTask(task.ID, domain.QuadrantUrgentImportant, domain.QuadrantUrgentImportant)
		require.NoError(t, err)
		h.flush()

		_, updates, _, _ := h.remote.quadrantTasks.Calls()
		assert.Zero(t, updates)
		assert.Equal(t, domain.SyncSynced, h.store.QuadrantTasks.State(task.ID))
	})

	t.Run("Fail: Wrong source bucket or unknown target", func(t *testing.T) {
		h := newHarness(t)
		task, _ := h.store.AddQuadrantTask(ctx, services.CreateQuadrantTaskInput{Text: "Pay taxes"})

		_, err := h.store.MoveQuadrantTask(task.ID, domain.QuadrantNotUrgentNotImportant, domain.QuadrantUrgentImportant)
		assert.ErrorIs(t, err, domain.ErrEntityNotFound)

		_, err = h.store.MoveQuadrantTask(task.ID, domain.QuadrantUrgentImportant, domain.Quadrant("someday"))
		assert.ErrorIs(t, err, domain.ErrInvalidQuadrant)
	})

	t.Run("Fail: Remote move failure is kept and diverged", func(t *testing.T) {
		h := newHarness(t)
		task, _ := h.store.AddQuadrantTask(ctx, services.CreateQuadrantTaskInput{Text: "Pay taxes"})
		h.remote.quadrantTasks.SetFail(nil, errNetwork, nil, nil)

		_, err := h.store.MoveQuadrantTask(task.ID, domain.QuadrantUrgentImportant, domain.QuadrantUrgentNotImportant)
		require.NoError(t, err)
		h.flush()

		got, _ := h.store.QuadrantTasks.Get(task.ID)
		assert.Equal(t, domain.QuadrantUrgentNotImportant, got.Quadrant)
		assert.Equal(t, domain.SyncDiverged, h.store.QuadrantTasks.State(task.ID))
		assert.Equal(t, domain.OpMove, h.store.Divergences()[0].Op)
	})

	t.Run("Success: Toggle completion inside a bucket", func(t *testing.T) {
		h := newHarness(t)
		task, _ := h.store.AddQuadrantTask(ctx, services.CreateQuadrantTaskInput{Text: "Pay taxes", Quadrant: string(domain.QuadrantUrgentNotImportant)})

		got, err := h.store.ToggleQuadrantComplete(domain.QuadrantUrgentNotImportant, task.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)

		_, err = h.store.ToggleQuadrantComplete(domain.QuadrantUrgentImportant, task.ID)
		assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	})
}

func TestStore_TimerAndAchievements(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.store.AddTimerSession(ctx, domain.TimerSessionDocument{Duration: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	s, err := h.store.AddTimerSession(ctx, domain.TimerSessionDocument{Duration: 50, TaskName: "Thesis"})
	require.NoError(t, err)
	assert.Equal(t, "Thesis", s.Label)
	_, _ = h.store.AddTimerSession(ctx, domain.TimerSessionDocument{Duration: 25, CreatedAt: "2024-03-01T09:00:00Z"})

	week := h.store.TimerStats(window.Query{Span: window.SpanWeek})
	assert.Equal(t, 50, week.TotalMinutes)
	assert.Equal(t, 1, week.TotalSessions)

	all := h.store.TimerStats(window.Query{Span: window.SpanAll})
	assert.Equal(t, 75, all.TotalMinutes)
	assert.Equal(t, 37.5, all.AvgSession)

	a, err := h.store.AddAchievement(ctx, domain.AchievementDocument{Title: "First marathon"})
	require.NoError(t, err)
	assert.Equal(t, day("2024-03-13"), a.DateEarned)
	_, _ = h.store.AddAchievement(ctx, domain.AchievementDocument{Title: "Old", DateEarned: "2023-12-31"})

	assert.Len(t, h.store.ListAchievements(window.Query{Span: window.SpanYear}), 1)
	assert.Len(t, h.store.ListAchievements(window.Query{Span: window.SpanAll}), 2)
}

func TestStore_TimerDailyGoal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.Equal(t, domain.DefaultDailyGoal, h.store.DailyGoal())
	assert.ErrorIs(t, h.store.SetDailyGoal(0), domain.ErrValidation)

	_, err := h.store.AddTimerSession(ctx, domain.TimerSessionDocument{Duration: 30})
	require.NoError(t, err)
	st := h.store.TimerStats(window.Query{Span: window.SpanWeek})
	assert.Equal(t, 25, st.GoalProgress)
	assert.False(t, st.GoalReached)

	require.NoError(t, h.store.SetDailyGoal(30))
	st = h.store.TimerStats(window.Query{Span: window.SpanWeek})
	assert.Equal(t, 30, st.DailyGoal)
	assert.Equal(t, 100, st.GoalProgress)
	assert.True(t, st.GoalReached)
}

func TestStore_Thoughts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Add defaults the category", func(t *testing.T) {
		h := newHarness(t)
		th, err := h.store.AddThought(ctx, services.CreateThoughtInput{Text: "One step at a time"})
		require.NoError(t, err)
		assert.Equal(t, domain.ThoughtMotivational, th.Category)
		assert.True(t, th.Active)

		server, ok := h.remote.thoughts.Get(th.ID)
		require.True(t, ok)
		assert.Equal(t, "motivational", server.Category)
	})

	t.Run("Fail: Validation happens before any remote call", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.store.AddThought(ctx, services.CreateThoughtInput{Text: "  "})
		assert.ErrorIs(t, err, domain.ErrThoughtEmpty)
		_, err = h.store.AddThought(ctx, services.CreateThoughtInput{Text: "x", Category: "mood"})
		assert.ErrorIs(t, err, domain.ErrInvalidThoughtCategory)

		creates, _, _, _ := h.remote.thoughts.Calls()
		assert.Zero(t, creates)
	})

	t.Run("Success: Filter by category and active flag", func(t *testing.T) {
		h := newHarness(t)
		calm, _ := h.store.AddThought(ctx, services.CreateThoughtInput{Text: "Breathe", Category: "calm"})
		focus, _ := h.store.AddThought(ctx, services.CreateThoughtInput{Text: "One thing", Category: "focus"})
		old, _ := h.store.AddThought(ctx, services.CreateThoughtInput{Text: "Slow down", Category: "calm"})

		_, err := h.store.Thoughts.Update(old.ID, domain.ThoughtPatch{IsActive: ptr(false)})
		require.NoError(t, err)

		assert.Len(t, h.store.ListThoughts(services.ThoughtFilter{}), 2)
		got := h.store.ListThoughts(services.ThoughtFilter{Category: domain.ThoughtCalm})
		require.Len(t, got, 1)
		assert.Equal(t, calm.ID, got[0].ID)
		assert.Len(t, h.store.ListThoughts(services.ThoughtFilter{Category: domain.ThoughtCalm, IncludeInactive: true}), 2)
		assert.Equal(t, []domain.Thought{}, h.store.ListThoughts(services.ThoughtFilter{Category: domain.ThoughtGratitude}))
		assert.Equal(t, focus.ID, h.store.ListThoughts(services.ThoughtFilter{Category: domain.ThoughtFocus})[0].ID)

		h.flush()
		server, _ := h.remote.thoughts.Get(old.ID)
		require.NotNil(t, server.IsActive)
		assert.False(t, *server.IsActive)
	})

	t.Run("Success: Rotation wraps and skips inactive", func(t *testing.T) {
		h := newHarness(t)
		a, _ := h.store.AddThought(ctx, services.CreateThoughtInput{Text: "A"})
		b, _ := h.store.AddThought(ctx, services.CreateThoughtInput{Text: "B"})
		c, _ := h.store.AddThought(ctx, services.CreateThoughtInput{Text: "C"})
		_, _ = h.store.Thoughts.Update(b.ID, domain.ThoughtPatch{IsActive: ptr(false)})

		first, ok := h.store.NextThought("", "")
		require.True(t, ok)
		assert.Equal(t, a.ID, first.ID)

		next, _ := h.store.NextThought("", a.ID)
		assert.Equal(t, c.ID, next.ID)
		next, _ = h.store.NextThought("", c.ID)
		assert.Equal(t, a.ID, next.ID)

		_, ok = h.store.NextThought(domain.ThoughtCalm, "")
		assert.False(t, ok)
	})
}
