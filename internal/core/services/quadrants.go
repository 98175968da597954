package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/quadrant"
)

// Board groups the quadrant tasks into their four buckets.
func (s *Store) Board() quadrant.Board {
	return quadrant.Group(s.QuadrantTasks.List())
}

type CreateQuadrantTaskInput struct {
	Text     string `json:"text"`
	Quadrant string `json:"quadrant"`
	Deadline string `json:"deadline"`
	Time     string `json:"time"`
}

func (s *Store) AddQuadrantTask(ctx context.Context, input CreateQuadrantTaskInput) (domain.QuadrantTask, error) {
	draft := domain.QuadrantTaskDocument{
		Text:      input.Text,
		Quadrant:  input.Quadrant,
		CreatedAt: s.rt.now().UTC().Format(time.RFC3339),
	}
	if draft.Quadrant == "" {
		draft.Quadrant = string(domain.QuadrantUrgentImportant)
	}
	if input.Deadline != "" {
		draft.Deadline = &input.Deadline
	}
	if input.Time != "" {
		draft.Time = &input.Time
	}
	return s.QuadrantTasks.Add(ctx, draft)
}

// MoveQuadrantTask moves a task from one bucket to the end of another. The
// task must currently be in from; moving to the same bucket changes nothing
// and sends nothing.
func (s *Store) MoveQuadrantTask(id string, from, to domain.Quadrant) (domain.QuadrantTask, error) {
	_, task, err := quadrant.Move(s.Board(), id, from, to)
	if err != nil || from == to {
		return task, err
	}

	target := string(to)
	patch := domain.QuadrantTaskPatch{Quadrant: &target}
	return s.QuadrantTasks.mutateToEnd(id, domain.OpMove, func(t domain.QuadrantTask) (domain.QuadrantTask, error) {
		if t.Quadrant != from {
			return t, domain.ErrEntityNotFound
		}
		patch.Apply(&t)
		return t, nil
	}, func(ctx context.Context) (domain.QuadrantTaskDocument, error) {
		return s.QuadrantTasks.gateway.Update(ctx, id, patch)
	})
}

// ToggleQuadrantComplete flips completion of a task inside bucket q.
func (s *Store) ToggleQuadrantComplete(q domain.Quadrant, id string) (domain.QuadrantTask, error) {
	_, toggled, err := quadrant.ToggleComplete(s.Board(), q, id)
	if err != nil {
		return domain.QuadrantTask{}, err
	}
	completed := toggled.Completed
	return s.QuadrantTasks.Update(id, domain.QuadrantTaskPatch{Completed: &completed})
}

func (s *Store) RemoveQuadrantTask(id string) error {
	return s.QuadrantTasks.Remove(id)
}
