package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// Tables maps every kind to its SQL table.
var Tables = map[domain.Kind]string{
	domain.KindHabit:           "habits",
	domain.KindExpense:         "expenses",
	domain.KindFinanceCategory: "finance_categories",
	domain.KindTaskCategory:    "task_categories",
	domain.KindNote:            "notes",
	domain.KindTask:            "tasks",
	domain.KindQuadrantTask:    "quadrant_tasks",
	domain.KindAchievement:     "achievements",
	domain.KindTimerSession:    "timer_sessions",
	domain.KindThought:         "thoughts",
}

func NewMemoryGateways() domain.Gateways {
	return domain.Gateways{
		Habits:            NewHabitGateway(NewMemoryGateway[domain.HabitDocument, domain.HabitPatch]()),
		Expenses:          NewMemoryGateway[domain.ExpenseDocument, domain.ExpensePatch](),
		FinanceCategories: NewMemoryGateway[domain.CategoryDocument, domain.CategoryPatch](),
		TaskCategories:    NewMemoryGateway[domain.CategoryDocument, domain.CategoryPatch](),
		Notes:             NewMemoryGateway[domain.NoteDocument, domain.NotePatch](),
		Tasks:             NewMemoryGateway[domain.TaskDocument, domain.TaskPatch](),
		QuadrantTasks:     NewMemoryGateway[domain.QuadrantTaskDocument, domain.QuadrantTaskPatch](),
		Achievements:      NewMemoryGateway[domain.AchievementDocument, domain.AchievementPatch](),
		TimerSessions:     NewMemoryGateway[domain.TimerSessionDocument, domain.TimerSessionPatch](),
		Thoughts:          NewMemoryGateway[domain.ThoughtDocument, domain.ThoughtPatch](),
	}
}

type migrator interface {
	Migrate(ctx context.Context) error
}

// NewSQLGateways builds one table-backed gateway per kind and creates the
// missing tables.
func NewSQLGateways(ctx context.Context, db *sqlx.DB) (domain.Gateways, error) {
	habits := NewSQLGateway[domain.HabitDocument, domain.HabitPatch](db, Tables[domain.KindHabit])
	expenses := NewSQLGateway[domain.ExpenseDocument, domain.ExpensePatch](db, Tables[domain.KindExpense])
	financeCategories := NewSQLGateway[domain.CategoryDocument, domain.CategoryPatch](db, Tables[domain.KindFinanceCategory])
	taskCategories := NewSQLGateway[domain.CategoryDocument, domain.CategoryPatch](db, Tables[domain.KindTaskCategory])
	notes := NewSQLGateway[domain.NoteDocument, domain.NotePatch](db, Tables[domain.KindNote])
	tasks := NewSQLGateway[domain.TaskDocument, domain.TaskPatch](db, Tables[domain.KindTask])
	quadrantTasks := NewSQLGateway[domain.QuadrantTaskDocument, domain.QuadrantTaskPatch](db, Tables[domain.KindQuadrantTask])
	achievements := NewSQLGateway[domain.AchievementDocument, domain.AchievementPatch](db, Tables[domain.KindAchievement])
	timerSessions := NewSQLGateway[domain.TimerSessionDocument, domain.TimerSessionPatch](db, Tables[domain.KindTimerSession])
	thoughts := NewSQLGateway[domain.ThoughtDocument, domain.ThoughtPatch](db, Tables[domain.KindThought])

	for _, m := range []migrator{habits, expenses, financeCategories, taskCategories, notes, tasks, quadrantTasks, achievements, timerSessions, thoughts} {
		if err := m.Migrate(ctx); err != nil {
			return domain.Gateways{}, err
		}
	}

	return domain.Gateways{
		Habits:            NewHabitGateway(habits),
		Expenses:          expenses,
		FinanceCategories: financeCategories,
		TaskCategories:    taskCategories,
		Notes:             notes,
		Tasks:             tasks,
		QuadrantTasks:     quadrantTasks,
		Achievements:      achievements,
		TimerSessions:     timerSessions,
		Thoughts:          thoughts,
	}, nil
}

// WithCache wraps every gateway of gw in a cache-aside decorator.
func WithCache(gw domain.Gateways, cache SnapshotCache, ttl time.Duration) domain.Gateways {
	return domain.Gateways{
		Habits:            NewCachedHabitGateway(gw.Habits, cache, ttl),
		Expenses:          NewCachedGateway(gw.Expenses, cache, domain.KindExpense, ttl),
		FinanceCategories: NewCachedGateway(gw.FinanceCategories, cache, domain.KindFinanceCategory, ttl),
		TaskCategories:    NewCachedGateway(gw.TaskCategories, cache, domain.KindTaskCategory, ttl),
		Notes:             NewCachedGateway(gw.Notes, cache, domain.KindNote, ttl),
		Tasks:             NewCachedGateway(gw.Tasks, cache, domain.KindTask, ttl),
		QuadrantTasks:     NewCachedGateway(gw.QuadrantTasks, cache, domain.KindQuadrantTask, ttl),
		Achievements:      NewCachedGateway(gw.Achievements, cache, domain.KindAchievement, ttl),
		TimerSessions:     NewCachedGateway(gw.TimerSessions, cache, domain.KindTimerSession, ttl),
		Thoughts:          NewCachedGateway(gw.Thoughts, cache, domain.KindThought, ttl),
	}
}
