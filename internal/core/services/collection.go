package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
	"github.com/comitanigiacomo/kanso-lifesync/internal/core/workers"
)

// Patch is a partial change to an entity of type T.
type Patch[T any] interface {
	Validate() error
	Apply(*T)
}

// syncRuntime is the state shared by every collection of one Store.
type syncRuntime struct {
	dispatcher *workers.Dispatcher
	now        func() time.Time
	closed     atomic.Bool

	mu          sync.Mutex
	divergences []domain.Divergence
}

func (r *syncRuntime) diverge(kind domain.Kind, id string, op domain.Operation, err error) {
	log.Printf("[STORE] %s %s %s failed, local state kept: %v", op, kind, id, err)
	r.mu.Lock()
	r.divergences = append(r.divergences, domain.Divergence{
		Kind: kind,
		ID:   id,
		Op:   op,
		Err:  err.Error(),
		At:   r.now(),
	})
	r.mu.Unlock()
}

func (r *syncRuntime) clearDivergences(kind domain.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.divergences[:0]
	for _, d := range r.divergences {
		if d.Kind != kind {
			kept = append(kept, d)
		}
	}
	r.divergences = kept
}

func (r *syncRuntime) snapshot() []domain.Divergence {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Divergence(nil), r.divergences...)
}

// Collection is the local mirror of one remote entity kind. Mutations are
// applied locally first; the remote call runs on the dispatcher and its
// response is merged back only if no newer write was issued for the same
// id meanwhile.
type Collection[T any, D domain.Document, P Patch[T]] struct {
	kind      domain.Kind
	gateway   domain.Gateway[D, P]
	normalize func(D, time.Time) T
	idOf      func(T) string
	validate  func(D) error
	rt        *syncRuntime

	mu     sync.RWMutex
	items  []T
	states map[string]domain.SyncState
	seq    map[string]uint64
}

func newCollection[T any, D domain.Document, P Patch[T]](
	kind domain.Kind,
	gw domain.Gateway[D, P],
	normalize func(D, time.Time) T,
	idOf func(T) string,
	validate func(D) error,
	rt *syncRuntime,
) *Collection[T, D, P] {
	return &Collection[T, D, P]{
		kind:      kind,
		gateway:   gw,
		normalize: normalize,
		idOf:      idOf,
		validate:  validate,
		rt:        rt,
		states:    make(map[string]domain.SyncState),
		seq:       make(map[string]uint64),
	}
}

func (c *Collection[T, D, P]) Kind() domain.Kind { return c.kind }

// List returns a copy of the collection in insertion order.
func (c *Collection[T, D, P]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T, D, P]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T, D, P]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// State reports the sync state of id. Unknown ids are synced.
func (c *Collection[T, D, P]) State(id string) domain.SyncState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.states[id]; ok {
		return s
	}
	return domain.SyncSynced
}

// States returns every id that is not synced.
func (c *Collection[T, D, P]) States() map[string]domain.SyncState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]domain.SyncState, len(c.states))
	for id, s := range c.states {
		out[id] = s
	}
	return out
}

func (c *Collection[T, D, P]) indexOf(id string) int {
	for i, it := range c.items {
		if c.idOf(it) == id {
			return i
		}
	}
	return -1
}

// Add validates draft, creates it remotely and appends the server's
// document. Nothing is stored locally when the remote call fails.
func (c *Collection[T, D, P]) Add(ctx context.Context, draft D) (T, error) {
	var zero T
	if c.validate != nil {
		if err := c.validate(draft); err != nil {
			return zero, err
		}
	}
	if c.rt.closed.Load() {
		return zero, domain.ErrStoreClosed
	}

	doc, err := c.gateway.Create(ctx, draft)
	if err != nil {
		log.Printf("[STORE] create %s failed: %v", c.kind, err)
		return zero, fmt.Errorf("%w: create %s: %w", domain.ErrRemote, c.kind, err)
	}
	if c.rt.closed.Load() {
		log.Printf("[STORE] store closed, discarding created %s %s", c.kind, doc.DocumentID())
		return zero, domain.ErrStoreClosed
	}

	item := c.normalize(doc, c.rt.now())
	c.mu.Lock()
	c.items = append(c.items, item)
	delete(c.states, c.idOf(item))
	c.mu.Unlock()
	return item, nil
}

// Update merges patch locally and sends it remotely. A remote failure keeps
// the local merge and marks the id diverged.
func (c *Collection[T, D, P]) Update(id string, patch P) (T, error) {
	if err := patch.Validate(); err != nil {
		var zero T
		return zero, err
	}
	return c.mutate(id, domain.OpUpdate, func(t T) (T, error) {
		patch.Apply(&t)
		return t, nil
	}, func(ctx context.Context) (D, error) {
		return c.gateway.Update(ctx, id, patch)
	})
}

// mutate applies local to the entity, then dispatches remote. The returned
// value is the optimistic local state.
func (c *Collection[T, D, P]) mutate(
	id string,
	op domain.Operation,
	local func(T) (T, error),
	remote func(ctx context.Context) (D, error),
) (T, error) {
	return c.apply(id, op, false, local, remote)
}

// mutateToEnd is mutate that also moves the entity to the end of the
// collection.
func (c *Collection[T, D, P]) mutateToEnd(
	id string,
	op domain.Operation,
	local func(T) (T, error),
	remote func(ctx context.Context) (D, error),
) (T, error) {
	return c.apply(id, op, true, local, remote)
}

func (c *Collection[T, D, P]) apply(
	id string,
	op domain.Operation,
	toEnd bool,
	local func(T) (T, error),
	remote func(ctx context.Context) (D, error),
) (T, error) {
	var zero T
	if c.rt.closed.Load() {
		return zero, domain.ErrStoreClosed
	}

	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return zero, domain.ErrEntityNotFound
	}
	next, err := local(c.items[i])
	if err != nil {
		c.mu.Unlock()
		return zero, err
	}
	if toEnd {
		c.items = append(append(c.items[:i:i], c.items[i+1:]...), next)
	} else {
		c.items[i] = next
	}
	seq := c.begin(id)
	c.mu.Unlock()

	c.dispatch(id, op, func(ctx context.Context) error {
		doc, err := remote(ctx)
		if err != nil {
			return err
		}
		c.merge(id, seq, doc)
		return nil
	})
	return next, nil
}

// Remove drops the entity locally and deletes it remotely. The removal is
// not undone when the remote call fails.
func (c *Collection[T, D, P]) Remove(id string) error {
	if c.rt.closed.Load() {
		return domain.ErrStoreClosed
	}

	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return domain.ErrEntityNotFound
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	seq := c.begin(id)
	c.mu.Unlock()

	c.dispatch(id, domain.OpDelete, func(ctx context.Context) error {
		if err := c.gateway.Delete(ctx, id); err != nil {
			return err
		}
		c.mu.Lock()
		if c.seq[id] == seq {
			delete(c.states, id)
		}
		c.mu.Unlock()
		return nil
	})
	return nil
}

// begin takes the next sequence number for id. c.mu must be held.
func (c *Collection[T, D, P]) begin(id string) uint64 {
	c.seq[id]++
	c.states[id] = domain.SyncPending
	return c.seq[id]
}

func (c *Collection[T, D, P]) dispatch(id string, op domain.Operation, call func(ctx context.Context) error) {
	job := workers.Job{
		Kind: c.kind,
		ID:   id,
		Op:   op,
		Run: func(ctx context.Context) {
			if err := call(ctx); err != nil {
				c.fail(id, op, err)
			}
		},
	}
	if !c.rt.dispatcher.Enqueue(job) {
		c.fail(id, op, fmt.Errorf("dispatch queue refused %s", op))
	}
}

func (c *Collection[T, D, P]) fail(id string, op domain.Operation, err error) {
	if c.rt.closed.Load() {
		return
	}
	c.mu.Lock()
	c.states[id] = domain.SyncDiverged
	c.mu.Unlock()
	c.rt.diverge(c.kind, id, op, err)
}

// merge applies a successful response unless a newer write superseded it.
func (c *Collection[T, D, P]) merge(id string, seq uint64, doc D) {
	if c.rt.closed.Load() {
		log.Printf("[STORE] store closed, discarding response for %s %s", c.kind, id)
		return
	}
	item := c.normalize(doc, c.rt.now())

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[id] != seq {
		log.Printf("[STORE] stale response for %s %s (seq %d < %d), discarded", c.kind, id, seq, c.seq[id])
		return
	}
	if i := c.indexOf(id); i >= 0 {
		c.items[i] = item
	}
	if c.states[id] == domain.SyncPending {
		delete(c.states, id)
	}
}

// Reload replaces the collection with the remote list. Diverged marks are
// cleared; pending ids keep theirs. On failure the collection is left as is.
func (c *Collection[T, D, P]) Reload(ctx context.Context) error {
	docs, err := c.gateway.List(ctx)
	if err != nil {
		log.Printf("[STORE] reload %s failed: %v", c.kind, err)
		return fmt.Errorf("%w: list %s: %w", domain.ErrRemote, c.kind, err)
	}
	if c.rt.closed.Load() {
		return domain.ErrStoreClosed
	}

	now := c.rt.now()
	items := make([]T, 0, len(docs))
	for _, d := range docs {
		items = append(items, c.normalize(d, now))
	}

	c.mu.Lock()
	c.items = items
	for id, s := range c.states {
		if s == domain.SyncDiverged {
			delete(c.states, id)
		}
	}
	c.mu.Unlock()
	c.rt.clearDivergences(c.kind)
	return nil
}

// transform rewrites every entity locally without any remote call.
func (c *Collection[T, D, P]) transform(fn func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		c.items[i] = fn(it)
	}
}

// reset empties the collection. Sequence numbers are kept so responses to
// earlier writes remain stale.
func (c *Collection[T, D, P]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.states = make(map[string]domain.SyncState)
}
