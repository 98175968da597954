package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

var _ domain.HabitGateway = (*HabitGateway)(nil)

// HabitGateway adds the per-day toggle endpoint on top of a habit document
// store. The toggle is a read-modify-write of the completion ledger.
type HabitGateway struct {
	DocumentStore[domain.HabitDocument, domain.HabitPatch]

	mu sync.Mutex
}

func NewHabitGateway(store DocumentStore[domain.HabitDocument, domain.HabitPatch]) *HabitGateway {
	return &HabitGateway{DocumentStore: store}
}

// Toggle marks day complete, or removes it from the ledger when value is
// false.
func (g *HabitGateway) Toggle(ctx context.Context, id, day string, value bool) (domain.HabitDocument, error) {
	d, err := domain.ParseDate(day)
	if err != nil {
		return domain.HabitDocument{}, domain.Invalid("date", domain.ErrInvalidDate)
	}
	key := domain.DateKey(d)

	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := g.Get(ctx, id)
	if err != nil {
		return doc, err
	}

	ledger := make(map[string]bool, len(doc.CompletedByDate)+1)
	for k, v := range doc.CompletedByDate {
		ledger[k] = v
	}
	if value {
		ledger[key] = true
	} else {
		delete(ledger, key)
	}
	doc.CompletedByDate = ledger

	return g.Put(ctx, doc)
}
