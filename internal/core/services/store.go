package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/schedule"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/window"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/workers"
)

type (
	HabitCollection        = Collection[domain.Habit, domain.HabitDocument, domain.HabitPatch]
	ExpenseCollection      = Collection[domain.Expense, domain.ExpenseDocument, domain.ExpensePatch]
	CategoryCollection     = Collection[domain.Category, domain.CategoryDocument, domain.CategoryPatch]
	NoteCollection         = Collection[domain.Note, domain.NoteDocument, domain.NotePatch]
	TaskCollection         = Collection[domain.Task, domain.TaskDocument, domain.TaskPatch]
	QuadrantTaskCollection = Collection[domain.QuadrantTask, domain.QuadrantTaskDocument, domain.QuadrantTaskPatch]
	AchievementCollection  = Collection[domain.Achievement, domain.AchievementDocument, domain.AchievementPatch]
	TimerSessionCollection = Collection[domain.TimerSession, domain.TimerSessionDocument, domain.TimerSessionPatch]
	ThoughtCollection      = Collection[domain.Thought, domain.ThoughtDocument, domain.ThoughtPatch]
)

// Store owns the local collections of every entity kind. Build one with
// NewStore at startup and share it by reference.
type Store struct {
	rt     *syncRuntime
	habits domain.HabitGateway

	Habits            *HabitCollection
	Expenses          *ExpenseCollection
	FinanceCategories *CategoryCollection
	TaskCategories    *CategoryCollection
	Notes             *NoteCollection
	Tasks             *TaskCollection
	QuadrantTasks     *QuadrantTaskCollection
	Achievements      *AchievementCollection
	TimerSessions     *TimerSessionCollection
	Thoughts          *ThoughtCollection

	// The habit window is kept as span and offset and resolved against
	// "now" on every read; period caches the last resolution.
	winMu  sync.Mutex
	span   window.Span
	offset int
	period window.Period

	// catMu serialises implicit category creation.
	catMu sync.Mutex

	dailyGoal atomic.Int64
}

type Option func(*Store)

// WithClock overrides the source of "now".
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.rt.now = now
	}
}

// WithDailyGoal sets the daily focus goal in minutes.
func WithDailyGoal(minutes int) Option {
	return func(s *Store) {
		if minutes > 0 {
			s.dailyGoal.Store(int64(minutes))
		}
	}
}

func NewStore(gw domain.Gateways, dispatcher *workers.Dispatcher, opts ...Option) *Store {
	s := &Store{
		rt:     &syncRuntime{dispatcher: dispatcher, now: time.Now},
		habits: gw.Habits,
	}
	s.dailyGoal.Store(domain.DefaultDailyGoal)
	for _, opt := range opts {
		opt(s)
	}
	s.span = window.SpanWeek
	s.period = window.Resolve(s.span, 0, s.rt.now())

	s.Habits = newCollection(domain.KindHabit, domain.Gateway[domain.HabitDocument, domain.HabitPatch](gw.Habits),
		func(d domain.HabitDocument, now time.Time) domain.Habit {
			return schedule.Reproject(domain.NormalizeHabit(d, now), s.Window())
		},
		func(h domain.Habit) string { return h.ID },
		domain.ValidateHabitDocument, s.rt)
	s.Expenses = newCollection(domain.KindExpense, gw.Expenses, domain.NormalizeExpense,
		func(e domain.Expense) string { return e.ID }, domain.ValidateExpenseDocument, s.rt)
	s.FinanceCategories = newCollection(domain.KindFinanceCategory, gw.FinanceCategories, domain.NormalizeFinanceCategory,
		categoryID, domain.ValidateCategoryDocument, s.rt)
	s.TaskCategories = newCollection(domain.KindTaskCategory, gw.TaskCategories, domain.NormalizeTaskCategory,
		categoryID, domain.ValidateCategoryDocument, s.rt)
	s.Notes = newCollection(domain.KindNote, gw.Notes, domain.NormalizeNote,
		func(n domain.Note) string { return n.ID }, domain.ValidateNoteDocument, s.rt)
	s.Tasks = newCollection(domain.KindTask, gw.Tasks, domain.NormalizeTask,
		func(t domain.Task) string { return t.ID }, domain.ValidateTaskDocument, s.rt)
	s.QuadrantTasks = newCollection(domain.KindQuadrantTask, gw.QuadrantTasks, domain.NormalizeQuadrantTask,
		func(t domain.QuadrantTask) string { return t.ID }, domain.ValidateQuadrantTaskDocument, s.rt)
	s.Achievements = newCollection(domain.KindAchievement, gw.Achievements, domain.NormalizeAchievement,
		func(a domain.Achievement) string { return a.ID }, domain.ValidateAchievementDocument, s.rt)
	s.TimerSessions = newCollection(domain.KindTimerSession, gw.TimerSessions, domain.NormalizeTimerSession,
		func(t domain.TimerSession) string { return t.ID }, domain.ValidateTimerSessionDocument, s.rt)
	s.Thoughts = newCollection(domain.KindThought, gw.Thoughts, domain.NormalizeThought,
		func(t domain.Thought) string { return t.ID }, domain.ValidateThoughtDocument, s.rt)
	return s
}

func categoryID(c domain.Category) string { return c.ID }

func (s *Store) Now() time.Time { return s.rt.now() }

// ReloadResult is the outcome of reloading one kind.
type ReloadResult struct {
	Kind  domain.Kind `json:"kind"`
	Count int         `json:"count"`
	Err   error       `json:"-"`
	Error string      `json:"error,omitempty"`
}

type reloader interface {
	Reload(ctx context.Context) error
	Len() int
}

func (s *Store) reloaders() map[domain.Kind]reloader {
	return map[domain.Kind]reloader{
		domain.KindHabit:           s.Habits,
		domain.KindExpense:         s.Expenses,
		domain.KindFinanceCategory: s.FinanceCategories,
		domain.KindTaskCategory:    s.TaskCategories,
		domain.KindNote:            s.Notes,
		domain.KindTask:            s.Tasks,
		domain.KindQuadrantTask:    s.QuadrantTasks,
		domain.KindAchievement:     s.Achievements,
		domain.KindTimerSession:    s.TimerSessions,
		domain.KindThought:         s.Thoughts,
	}
}

// Reload refreshes a single kind.
func (s *Store) Reload(ctx context.Context, kind domain.Kind) error {
	r, ok := s.reloaders()[kind]
	if !ok {
		return fmt.Errorf("unknown kind %q", kind)
	}
	return r.Reload(ctx)
}

// ReloadAll fetches every kind in parallel. A failing kind keeps its
// previous collection and never stops the others; results come back in
// domain.Kinds order.
func (s *Store) ReloadAll(ctx context.Context) []ReloadResult {
	rs := s.reloaders()
	results := make([]ReloadResult, len(domain.Kinds))

	var g errgroup.Group
	for i, kind := range domain.Kinds {
		g.Go(func() error {
			r := rs[kind]
			err := r.Reload(ctx)
			results[i] = ReloadResult{Kind: kind, Count: r.Len(), Err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Printf("[STORE] reload finished: %d kinds, %d failed", len(results), failed)
	return results
}

// ReloadErrors joins the failures of a ReloadAll.
func ReloadErrors(results []ReloadResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// Close discards every response that arrives afterwards and refuses new
// mutations. It does not stop the dispatcher.
func (s *Store) Close() {
	if s.rt.closed.CompareAndSwap(false, true) {
		log.Println("[STORE] closed")
	}
}

func (s *Store) Closed() bool { return s.rt.closed.Load() }

// Reset empties every collection and the divergence log.
func (s *Store) Reset() {
	s.Habits.reset()
	s.Expenses.reset()
	s.FinanceCategories.reset()
	s.TaskCategories.reset()
	s.Notes.reset()
	s.Tasks.reset()
	s.QuadrantTasks.reset()
	s.Achievements.reset()
	s.TimerSessions.reset()
	s.Thoughts.reset()
	for _, k := range domain.Kinds {
		s.rt.clearDivergences(k)
	}
}

// Divergences lists remote writes that failed since the last reload of
// their kind, oldest first.
func (s *Store) Divergences() []domain.Divergence { return s.rt.snapshot() }

// SyncStates returns the non-synced ids per kind.
func (s *Store) SyncStates() map[domain.Kind]map[string]domain.SyncState {
	out := map[domain.Kind]map[string]domain.SyncState{
		domain.KindHabit:           s.Habits.States(),
		domain.KindExpense:         s.Expenses.States(),
		domain.KindFinanceCategory: s.FinanceCategories.States(),
		domain.KindTaskCategory:    s.TaskCategories.States(),
		domain.KindNote:            s.Notes.States(),
		domain.KindTask:            s.Tasks.States(),
		domain.KindQuadrantTask:    s.QuadrantTasks.States(),
		domain.KindAchievement:     s.Achievements.States(),
		domain.KindTimerSession:    s.TimerSessions.States(),
		domain.KindThought:         s.Thoughts.States(),
	}
	for k, m := range out {
		if len(m) == 0 {
			delete(out, k)
		}
	}
	return out
}

// Period resolves the selected habit window against the current time.
// When the days moved since the last resolution, every habit is
// reprojected onto the new window.
func (s *Store) Period() window.Period {
	now := s.rt.now()

	s.winMu.Lock()
	defer s.winMu.Unlock()
	p := window.Resolve(s.span, s.offset, now)
	if !slices.Equal(p.Days, s.period.Days) {
		log.Printf("[STORE] habit window moved to %s (%s..%s)", p.Label, p.Days[0], p.Days[len(p.Days)-1])
		s.rebase(p)
	} else {
		s.period = p
	}
	return p
}

// rebase projects every habit from the cached window onto p and caches p.
// s.winMu must be held.
func (s *Store) rebase(p window.Period) {
	from := s.period.Days
	s.Habits.transform(func(h domain.Habit) domain.Habit {
		return schedule.Rebase(h, from, p.Days)
	})
	s.period = p
}

// Window returns the day keys of the selected habit window.
func (s *Store) Window() []string {
	return s.Period().Days
}

// ListHabits returns the habits projected onto the current window.
func (s *Store) ListHabits() []domain.Habit {
	s.Period()
	return s.Habits.List()
}

// SetWindow selects the habit window and reprojects every habit's
// positional array onto it. Only week and month spans have windows.
func (s *Store) SetWindow(span window.Span, offset int) (window.Period, error) {
	if !span.Navigable() {
		return window.Period{}, domain.Invalid("span", fmt.Errorf("span %q has no day window", span))
	}
	p := window.Resolve(span, offset, s.rt.now())

	s.winMu.Lock()
	defer s.winMu.Unlock()
	s.span, s.offset = span, p.Offset
	s.rebase(p)
	return p, nil
}

// Dashboard is the cross-kind overview for one span.
type Dashboard struct {
	Span           window.Span           `json:"span"`
	Habits         int                   `json:"habits"`
	DueToday       int                   `json:"due_today"`
	CompletedToday int                   `json:"completed_today"`
	AvgStreak      int                   `json:"avg_streak"`
	Expenses       domain.ExpenseSummary `json:"expenses"`
	Timer          domain.TimerStats     `json:"timer"`
	OpenTasks      int                   `json:"open_tasks"`
	OpenQuadrant   int                   `json:"open_quadrant_tasks"`
	Notes          int                   `json:"notes"`
	Achievements   int                   `json:"achievements"`
	Pending        int                   `json:"pending"`
	Diverged       int                   `json:"diverged"`
}

func (s *Store) Dashboard(q window.Query) Dashboard {
	now := s.rt.now()
	habits := s.ListHabits()
	today := domain.DateKey(now)

	d := Dashboard{
		Span:      q.Span,
		Habits:    len(habits),
		AvgStreak: schedule.AverageStreak(habits),
		Expenses:  s.ExpenseSummary(q),
		Timer:     s.TimerStats(q),
		Notes:     len(s.Notes.List()),
	}
	for _, h := range schedule.DueOnDay(habits, now) {
		d.DueToday++
		if h.CompletedByDate[today] {
			d.CompletedToday++
		}
	}
	for _, t := range s.Tasks.List() {
		if !t.Completed {
			d.OpenTasks++
		}
	}
	for _, t := range s.QuadrantTasks.List() {
		if !t.Completed {
			d.OpenQuadrant++
		}
	}
	d.Achievements = len(window.Filter(s.Achievements.List(), q, now, window.AchievementDate))

	for _, states := range s.SyncStates() {
		for _, st := range states {
			switch st {
			case domain.SyncPending:
				d.Pending++
			case domain.SyncDiverged:
				d.Diverged++
			}
		}
	}
	return d
}

// sortedByDate returns items ordered newest first by dateOf.
func sortedByDate[T any](items []T, dateOf func(T) time.Time) []T {
	sort.SliceStable(items, func(i, j int) bool {
		return dateOf(items[i]).After(dateOf(items[j]))
	})
	return items
}
