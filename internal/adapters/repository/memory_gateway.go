package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// MemoryGateway keeps one kind's documents in process memory, in insertion
// order. It backs local runs and tests.
type MemoryGateway[D domain.Document, P any] struct {
	store map[string]D
	order []string

	mu sync.RWMutex
}

func NewMemoryGateway[D domain.Document, P any]() *MemoryGateway[D, P] {
	return &MemoryGateway[D, P]{
		store: make(map[string]D),
	}
}

func (r *MemoryGateway[D, P]) List(ctx context.Context) ([]D, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]D, 0, len(r.order))
	for _, id := range r.order {
		docs = append(docs, r.store[id])
	}
	return docs, nil
}

func (r *MemoryGateway[D, P]) Create(ctx context.Context, draft D) (D, error) {
	doc, err := assignID(draft)
	if err != nil {
		return doc, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := doc.DocumentID()
	if _, ok := r.store[id]; ok {
		return doc, fmt.Errorf("document %s: %w", id, domain.ErrConflict)
	}
	r.store[id] = doc
	r.order = append(r.order, id)
	return doc, nil
}

func (r *MemoryGateway[D, P]) Get(ctx context.Context, id string) (D, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.store[id]
	if !ok {
		return doc, domain.ErrEntityNotFound
	}
	return doc, nil
}

func (r *MemoryGateway[D, P]) Update(ctx context.Context, id string, patch P) (D, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.store[id]
	if !ok {
		return doc, domain.ErrEntityNotFound
	}
	next, err := mergePatch(doc, patch)
	if err != nil {
		return doc, err
	}
	r.store[id] = next
	return next, nil
}

func (r *MemoryGateway[D, P]) Put(ctx context.Context, doc D) (D, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := doc.DocumentID()
	if _, ok := r.store[id]; !ok {
		return doc, domain.ErrEntityNotFound
	}
	r.store[id] = doc
	return doc, nil
}

func (r *MemoryGateway[D, P]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrEntityNotFound
	}

	delete(r.store, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
