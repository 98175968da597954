package quadrant

import (
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// Board holds the tasks of each of the four buckets. Every bucket key is
// always present, empty buckets as empty slices.
type Board map[domain.Quadrant][]domain.QuadrantTask

func emptyBoard() Board {
	b := make(Board, len(domain.Quadrants))
	for _, q := range domain.Quadrants {
		b[q] = []domain.QuadrantTask{}
	}
	return b
}

// Group partitions tasks into buckets, keeping input order inside a bucket.
// Tasks with an unknown quadrant land in urgent_important, and their
// Quadrant field is rewritten to match.
func Group(tasks []domain.QuadrantTask) Board {
	b := emptyBoard()
	for _, t := range tasks {
		if !t.Quadrant.IsValid() {
			t.Quadrant = domain.QuadrantUrgentImportant
		}
		b[t.Quadrant] = append(b[t.Quadrant], t)
	}
	return b
}

// Flatten lists the tasks bucket by bucket in display order.
func Flatten(b Board) []domain.QuadrantTask {
	var out []domain.QuadrantTask
	for _, q := range domain.Quadrants {
		out = append(out, b[q]...)
	}
	return out
}

func (b Board) clone() Board {
	out := make(Board, len(b))
	for q, tasks := range b {
		out[q] = append([]domain.QuadrantTask{}, tasks...)
	}
	return out
}

// Find locates a task by id.
func (b Board) Find(id string) (domain.QuadrantTask, domain.Quadrant, bool) {
	for _, q := range domain.Quadrants {
		for _, t := range b[q] {
			if t.ID == id {
				return t, q, true
			}
		}
	}
	return domain.QuadrantTask{}, "", false
}

func (b Board) Len() int {
	n := 0
	for _, q := range domain.Quadrants {
		n += len(b[q])
	}
	return n
}

func indexOf(tasks []domain.QuadrantTask, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Move takes the task out of from and appends it, with its quadrant
// updated, to to. The input board is not modified. Moving within the same
// bucket returns b unchanged.
func Move(b Board, id string, from, to domain.Quadrant) (Board, domain.QuadrantTask, error) {
	if !from.IsValid() || !to.IsValid() {
		return b, domain.QuadrantTask{}, domain.Invalid("quadrant", domain.ErrInvalidQuadrant)
	}
	i := indexOf(b[from], id)
	if i < 0 {
		return b, domain.QuadrantTask{}, domain.ErrEntityNotFound
	}
	if from == to {
		return b, b[from][i], nil
	}

	next := b.clone()
	task := next[from][i]
	next[from] = append(next[from][:i], next[from][i+1:]...)
	task.Quadrant = to
	next[to] = append(next[to], task)
	return next, task, nil
}

// ToggleComplete flips completion of the task in place inside bucket q.
func ToggleComplete(b Board, q domain.Quadrant, id string) (Board, domain.QuadrantTask, error) {
	i := indexOf(b[q], id)
	if i < 0 {
		return b, domain.QuadrantTask{}, domain.ErrEntityNotFound
	}
	next := b.clone()
	next[q][i].Completed = !next[q][i].Completed
	return next, next[q][i], nil
}
