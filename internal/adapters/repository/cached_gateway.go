package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// SnapshotCache stores serialized list snapshots by key.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const DefaultCacheTTL = 30 * time.Minute

// CachedGateway is a cache-aside decorator: List is served from the
// snapshot cache when possible, and every write invalidates it.
type CachedGateway[D domain.Document, P any] struct {
	next  domain.Gateway[D, P]
	cache SnapshotCache
	kind  domain.Kind
	ttl   time.Duration
}

func NewCachedGateway[D domain.Document, P any](next domain.Gateway[D, P], cache SnapshotCache, kind domain.Kind, ttl time.Duration) *CachedGateway[D, P] {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedGateway[D, P]{
		next:  next,
		cache: cache,
		kind:  kind,
		ttl:   ttl,
	}
}

func (r *CachedGateway[D, P]) cacheKey() string {
	return "snapshot:" + string(r.kind)
}

func (r *CachedGateway[D, P]) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, r.cacheKey()); err != nil {
		log.Printf("[CACHE] Failed to invalidate %s: %v", r.kind, err)
	}
}

func (r *CachedGateway[D, P]) List(ctx context.Context) ([]D, error) {
	key := r.cacheKey()

	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[CACHE] Read error for %s: %v", r.kind, err)
	} else if ok {
		var docs []D
		if err := json.Unmarshal(data, &docs); err == nil {
			return docs, nil
		}

		log.Printf("[CACHE] Corrupted snapshot for %s, cleaning up key", r.kind)
		r.invalidate(ctx)
	}

	docs, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(docs); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl); setErr != nil {
			log.Printf("[CACHE] Set error for %s: %v", r.kind, setErr)
		}
	}

	return docs, nil
}

func (r *CachedGateway[D, P]) Create(ctx context.Context, draft D) (D, error) {
	doc, err := r.next.Create(ctx, draft)
	if err != nil {
		return doc, err
	}
	r.invalidate(ctx)
	return doc, nil
}

func (r *CachedGateway[D, P]) Update(ctx context.Context, id string, patch P) (D, error) {
	doc, err := r.next.Update(ctx, id, patch)
	if err != nil {
		return doc, err
	}
	r.invalidate(ctx)
	return doc, nil
}

func (r *CachedGateway[D, P]) Delete(ctx context.Context, id string) error {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, id)
}

var _ domain.HabitGateway = (*CachedHabitGateway)(nil)

type CachedHabitGateway struct {
	*CachedGateway[domain.HabitDocument, domain.HabitPatch]
	toggler domain.HabitGateway
}

func NewCachedHabitGateway(next domain.HabitGateway, cache SnapshotCache, ttl time.Duration) *CachedHabitGateway {
	return &CachedHabitGateway{
		CachedGateway: NewCachedGateway[domain.HabitDocument, domain.HabitPatch](next, cache, domain.KindHabit, ttl),
		toggler:       next,
	}
}

func (r *CachedHabitGateway) Toggle(ctx context.Context, id, day string, value bool) (domain.HabitDocument, error) {
	doc, err := r.toggler.Toggle(ctx, id, day, value)
	if err != nil {
		return doc, err
	}
	r.invalidate(ctx)
	return doc, nil
}
