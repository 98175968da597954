package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

type CreateThoughtInput struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (s *Store) AddThought(ctx context.Context, input CreateThoughtInput) (domain.Thought, error) {
	draft := domain.ThoughtDocument{
		Text:      input.Text,
		Category:  input.Category,
		CreatedAt: s.rt.now().UTC().Format(time.RFC3339),
	}
	if draft.Category == "" {
		draft.Category = string(domain.ThoughtMotivational)
	}
	return s.Thoughts.Add(ctx, draft)
}

// ThoughtFilter selects thoughts by category. The zero value lists every
// active thought.
type ThoughtFilter struct {
	Category        domain.ThoughtCategory
	IncludeInactive bool
}

func (f ThoughtFilter) match(t domain.Thought) bool {
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return t.Active || f.IncludeInactive
}

func (s *Store) ListThoughts(f ThoughtFilter) []domain.Thought {
	out := []domain.Thought{}
	for _, t := range s.Thoughts.List() {
		if f.match(t) {
			out = append(out, t)
		}
	}
	return out
}

// NextThought rotates through the active thoughts of category (all of them
// when empty): it returns the one after afterID, wrapping around, or the
// first when afterID is not in the pool. ok is false when the pool is empty.
func (s *Store) NextThought(category domain.ThoughtCategory, afterID string) (domain.Thought, bool) {
	pool := s.ListThoughts(ThoughtFilter{Category: category})
	if len(pool) == 0 {
		return domain.Thought{}, false
	}
	for i, t := range pool {
		if t.ID == afterID {
			return pool[(i+1)%len(pool)], true
		}
	}
	return pool[0], true
}
