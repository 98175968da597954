package domain

import "time"

// Kind names one remotely persisted entity collection.
type Kind string

const (
	KindHabit           Kind = "habit"
	KindExpense         Kind = "expense"
	KindFinanceCategory Kind = "financeCategory"
	KindTaskCategory    Kind = "taskCategory"
	KindNote            Kind = "note"
	KindTask            Kind = "task"
	KindQuadrantTask    Kind = "quadrantTask"
	KindAchievement     Kind = "achievement"
	KindTimerSession    Kind = "timerSession"
	KindThought         Kind = "thought"
)

// Kinds lists every collection in reload order.
var Kinds = []Kind{
	KindHabit,
	KindExpense,
	KindFinanceCategory,
	KindTaskCategory,
	KindNote,
	KindTask,
	KindQuadrantTask,
	KindAchievement,
	KindTimerSession,
	KindThought,
}

type SyncState string

const (
	SyncSynced   SyncState = "synced"
	SyncPending  SyncState = "pending"
	SyncDiverged SyncState = "diverged"
)

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpToggle Operation = "toggle"
	OpMove   Operation = "move"
	OpList   Operation = "list"
)

// Divergence records a remote write that failed after its optimistic local
// mutation was applied. The local state is kept until the next reload.
type Divergence struct {
	Kind Kind      `json:"kind"`
	ID   string    `json:"id"`
	Op   Operation `json:"op"`
	Err  string    `json:"error"`
	At   time.Time `json:"at"`
}

// Document is a raw record exchanged with the remote gateway.
type Document interface {
	DocumentID() string
}
