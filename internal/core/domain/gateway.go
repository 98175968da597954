package domain

import "context"

// Gateway is the remote CRUD surface for one entity kind. Implementations
// own authentication and transport; every failure is returned as an error.
type Gateway[D Document, P any] interface {
	// List returns every document of the kind.
	List(ctx context.Context) ([]D, error)

	// Create persists a draft and returns the server-assigned document.
	Create(ctx context.Context, draft D) (D, error)

	// Update applies a partial change and returns the resulting document.
	Update(ctx context.Context, id string, patch P) (D, error)

	// Delete permanently removes the document.
	Delete(ctx context.Context, id string) error
}

type HabitGateway interface {
	Gateway[HabitDocument, HabitPatch]

	// Toggle sets completion for one calendar day. A false value removes
	// the day from the remote ledger.
	Toggle(ctx context.Context, id, day string, value bool) (HabitDocument, error)
}

type (
	ExpenseGateway      = Gateway[ExpenseDocument, ExpensePatch]
	CategoryGateway     = Gateway[CategoryDocument, CategoryPatch]
	NoteGateway         = Gateway[NoteDocument, NotePatch]
	TaskGateway         = Gateway[TaskDocument, TaskPatch]
	QuadrantTaskGateway = Gateway[QuadrantTaskDocument, QuadrantTaskPatch]
	AchievementGateway  = Gateway[AchievementDocument, AchievementPatch]
	TimerSessionGateway = Gateway[TimerSessionDocument, TimerSessionPatch]
	ThoughtGateway      = Gateway[ThoughtDocument, ThoughtPatch]
)

// Gateways bundles one gateway per kind.
type Gateways struct {
	Habits            HabitGateway
	Expenses          ExpenseGateway
	FinanceCategories CategoryGateway
	TaskCategories    CategoryGateway
	Notes             NoteGateway
	Tasks             TaskGateway
	QuadrantTasks     QuadrantTaskGateway
	Achievements      AchievementGateway
	TimerSessions     TimerSessionGateway
	Thoughts          ThoughtGateway
}
