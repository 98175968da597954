package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/schedule"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/services"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/workers"
)

var errNetwork = errors.New("connection reset by peer")

func ptr[T any](v T) *T {
	return &v
}

// FakeGateway is an in-memory remote that merges patches the way a JSON
// PATCH endpoint does.
type FakeGateway[D domain.Document, P any] struct {
	mu     sync.Mutex
	docs   []D
	nextID int
	prefix string

	failCreate error
	failUpdate error
	failDelete error
	failList   error

	// beforeRespond runs after the server applied an update, before the
	// response is returned. It may block.
	beforeRespond func(id string, patch P)

	creates, updates, deletes, lists int
}

func NewFakeGateway[D domain.Document, P any](prefix string) *FakeGateway[D, P] {
	return &FakeGateway[D, P]{prefix: prefix}
}

func remarshal[D any](src any, into D) D {
	b, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(b, &into); err != nil {
		panic(err)
	}
	return into
}

func withID[D any](d D, id string) D {
	m := remarshal(d, map[string]any{})
	m["id"] = id
	var out D
	return remarshal(m, out)
}

func (g *FakeGateway[D, P]) Seed(d D) D {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	d = withID(d, fmt.Sprintf("%s-%d", g.prefix, g.nextID))
	g.docs = append(g.docs, d)
	return d
}

func (g *FakeGateway[D, P]) List(ctx context.Context) ([]D, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lists++
	if g.failList != nil {
		return nil, g.failList
	}
	return append([]D(nil), g.docs...), nil
}

func (g *FakeGateway[D, P]) Create(ctx context.Context, draft D) (D, error) {
	g.mu.Lock()
	g.creates++
	fail := g.failCreate
	g.mu.Unlock()
	if fail != nil {
		var zero D
		return zero, fail
	}
	return g.Seed(draft), nil
}

func (g *FakeGateway[D, P]) Update(ctx context.Context, id string, patch P) (D, error) {
	g.mu.Lock()
	g.updates++
	if g.failUpdate != nil {
		g.mu.Unlock()
		var zero D
		return zero, g.failUpdate
	}
	var out D
	found := false
	for i, d := range g.docs {
		if d.DocumentID() == id {
			g.docs[i] = remarshal(patch, remarshal(d, *new(D)))
			out = g.docs[i]
			found = true
		}
	}
	hook := g.beforeRespond
	g.mu.Unlock()

	if !found {
		return out, domain.ErrEntityNotFound
	}
	if hook != nil {
		hook(id, patch)
	}
	return out, nil
}

func (g *FakeGateway[D, P]) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deletes++
	if g.failDelete != nil {
		return g.failDelete
	}
	for i, d := range g.docs {
		if d.DocumentID() == id {
			g.docs = append(g.docs[:i], g.docs[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntityNotFound
}

func (g *FakeGateway[D, P]) Get(id string) (D, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, d := range g.docs {
		if d.DocumentID() == id {
			return d, true
		}
	}
	var zero D
	return zero, false
}

func (g *FakeGateway[D, P]) SetFail(create, update, del, list error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failCreate, g.failUpdate, g.failDelete, g.failList = create, update, del, list
}

func (g *FakeGateway[D, P]) Calls() (creates, updates, deletes, lists int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.creates, g.updates, g.deletes, g.lists
}

type FakeHabitGateway struct {
	*FakeGateway[domain.HabitDocument, domain.HabitPatch]
	toggles    int
	failToggle error
}

func (g *FakeHabitGateway) Toggle(ctx context.Context, id, day string, value bool) (domain.HabitDocument, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.toggles++
	if g.failToggle != nil {
		return domain.HabitDocument{}, g.failToggle
	}
	for i, d := range g.docs {
		if d.ID != id {
			continue
		}
		ledger := make(map[string]bool, len(d.CompletedByDate)+1)
		for k, v := range d.CompletedByDate {
			ledger[k] = v
		}
		if value {
			ledger[day] = true
		} else {
			delete(ledger, day)
		}
		d.CompletedByDate = ledger
		g.docs[i] = d
		return d, nil
	}
	return domain.HabitDocument{}, domain.ErrEntityNotFound
}

type fakeRemote struct {
	habits            *FakeHabitGateway
	expenses          *FakeGateway[domain.ExpenseDocument, domain.ExpensePatch]
	financeCategories *FakeGateway[domain.CategoryDocument, domain.CategoryPatch]
	taskCategories    *FakeGateway[domain.CategoryDocument, domain.CategoryPatch]
	notes             *FakeGateway[domain.NoteDocument, domain.NotePatch]
	tasks             *FakeGateway[domain.TaskDocument, domain.TaskPatch]
	quadrantTasks     *FakeGateway[domain.QuadrantTaskDocument, domain.QuadrantTaskPatch]
	achievements      *FakeGateway[domain.AchievementDocument, domain.AchievementPatch]
	timerSessions     *FakeGateway[domain.TimerSessionDocument, domain.TimerSessionPatch]
	thoughts          *FakeGateway[domain.ThoughtDocument, domain.ThoughtPatch]
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		habits:            &FakeHabitGateway{FakeGateway: NewFakeGateway[domain.HabitDocument, domain.HabitPatch]("habit")},
		expenses:          NewFakeGateway[domain.ExpenseDocument, domain.ExpensePatch]("expense"),
		financeCategories: NewFakeGateway[domain.CategoryDocument, domain.CategoryPatch]("fcat"),
		taskCategories:    NewFakeGateway[domain.CategoryDocument, domain.CategoryPatch]("tcat"),
		notes:             NewFakeGateway[domain.NoteDocument, domain.NotePatch]("note"),
		tasks:             NewFakeGateway[domain.TaskDocument, domain.TaskPatch]("task"),
		quadrantTasks:     NewFakeGateway[domain.QuadrantTaskDocument, domain.QuadrantTaskPatch]("qt"),
		achievements:      NewFakeGateway[domain.AchievementDocument, domain.AchievementPatch]("ach"),
		timerSessions:     NewFakeGateway[domain.TimerSessionDocument, domain.TimerSessionPatch]("timer"),
		thoughts:          NewFakeGateway[domain.ThoughtDocument, domain.ThoughtPatch]("thought"),
	}
}

func (r *fakeRemote) gateways() domain.Gateways {
	return domain.Gateways{
		Habits:            r.habits,
		Expenses:          r.expenses,
		FinanceCategories: r.financeCategories,
		TaskCategories:    r.taskCategories,
		Notes:             r.notes,
		Tasks:             r.tasks,
		QuadrantTasks:     r.quadrantTasks,
		Achievements:      r.achievements,
		TimerSessions:     r.timerSessions,
		Thoughts:          r.thoughts,
	}
}

// clock is a settable "now".
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scheduleDate(s string) schedule.DayKey {
	return schedule.DateKey(s)
}

type harness struct {
	remote     *fakeRemote
	dispatcher *workers.Dispatcher
	clock      *clock
	store      *services.Store
}

// newHarness builds a store at 2024-03-13 (a Wednesday) whose dispatcher is
// not started, so optimistic state can be observed before any response.
func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		remote:     newFakeRemote(),
		dispatcher: workers.NewDispatcher(2, 64),
		clock:      &clock{now: time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)},
	}
	h.store = services.NewStore(h.remote.gateways(), h.dispatcher, services.WithClock(h.clock.Now))
	t.Cleanup(h.dispatcher.Stop)
	return h
}

// flush starts the dispatcher and waits for every queued remote call.
func (h *harness) flush() {
	h.dispatcher.Start(context.Background())
	h.dispatcher.Wait()
}
