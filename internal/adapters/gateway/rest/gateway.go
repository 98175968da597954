package rest

import (
	"context"
	"net/http"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// Resources maps every kind to its path on the backend.
var Resources = map[domain.Kind]string{
	domain.KindHabit:           "habits",
	domain.KindExpense:         "expenses",
	domain.KindFinanceCategory: "finance-categories",
	domain.KindTaskCategory:    "task-categories",
	domain.KindNote:            "notes",
	domain.KindTask:            "tasks",
	domain.KindQuadrantTask:    "quadrant-tasks",
	domain.KindAchievement:     "achievements",
	domain.KindTimerSession:    "timer-sessions",
	domain.KindThought:         "thoughts",
}

type Gateway[D domain.Document, P any] struct {
	client   *Client
	resource string
}

func NewGateway[D domain.Document, P any](client *Client, resource string) *Gateway[D, P] {
	return &Gateway[D, P]{client: client, resource: resource}
}

func (g *Gateway[D, P]) collection() string { return g.resource + "/" }

func (g *Gateway[D, P]) item(id string) string { return g.resource + "/" + id + "/" }

func (g *Gateway[D, P]) List(ctx context.Context) ([]D, error) {
	var docs []D
	if err := g.client.do(ctx, http.MethodGet, g.collection(), nil, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []D{}
	}
	return docs, nil
}

func (g *Gateway[D, P]) Create(ctx context.Context, draft D) (D, error) {
	var doc D
	err := g.client.do(ctx, http.MethodPost, g.collection(), draft, &doc)
	return doc, err
}

func (g *Gateway[D, P]) Update(ctx context.Context, id string, patch P) (D, error) {
	var doc D
	err := g.client.do(ctx, http.MethodPatch, g.item(id), patch, &doc)
	return doc, err
}

func (g *Gateway[D, P]) Delete(ctx context.Context, id string) error {
	return g.client.do(ctx, http.MethodDelete, g.item(id), nil, nil)
}

var _ domain.HabitGateway = (*HabitGateway)(nil)

type HabitGateway struct {
	*Gateway[domain.HabitDocument, domain.HabitPatch]
}

type toggleRequest struct {
	Date  string `json:"date"`
	Value bool   `json:"value"`
}

// Toggle posts to habits/{id}/toggle/, which replies with the whole habit.
func (g *HabitGateway) Toggle(ctx context.Context, id, day string, value bool) (domain.HabitDocument, error) {
	var doc domain.HabitDocument
	err := g.client.do(ctx, http.MethodPost, g.item(id)+"toggle/", toggleRequest{Date: day, Value: value}, &doc)
	return doc, err
}

// NewGateways builds one REST gateway per kind on client.
func NewGateways(client *Client) domain.Gateways {
	return domain.Gateways{
		Habits:            &HabitGateway{NewGateway[domain.HabitDocument, domain.HabitPatch](client, Resources[domain.KindHabit])},
		Expenses:          NewGateway[domain.ExpenseDocument, domain.ExpensePatch](client, Resources[domain.KindExpense]),
		FinanceCategories: NewGateway[domain.CategoryDocument, domain.CategoryPatch](client, Resources[domain.KindFinanceCategory]),
		TaskCategories:    NewGateway[domain.CategoryDocument, domain.CategoryPatch](client, Resources[domain.KindTaskCategory]),
		Notes:             NewGateway[domain.NoteDocument, domain.NotePatch](client, Resources[domain.KindNote]),
		Tasks:             NewGateway[domain.TaskDocument, domain.TaskPatch](client, Resources[domain.KindTask]),
		QuadrantTasks:     NewGateway[domain.QuadrantTaskDocument, domain.QuadrantTaskPatch](client, Resources[domain.KindQuadrantTask]),
		Achievements:      NewGateway[domain.AchievementDocument, domain.AchievementPatch](client, Resources[domain.KindAchievement]),
		TimerSessions:     NewGateway[domain.TimerSessionDocument, domain.TimerSessionPatch](client, Resources[domain.KindTimerSession]),
		Thoughts:          NewGateway[domain.ThoughtDocument, domain.ThoughtPatch](client, Resources[domain.KindThought]),
	}
}
