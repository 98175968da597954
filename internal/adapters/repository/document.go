package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

// DocumentStore is a Gateway that can also read and overwrite whole
// documents. Every gateway in this package implements it.
type DocumentStore[D domain.Document, P any] interface {
	domain.Gateway[D, P]
	Get(ctx context.Context, id string) (D, error)
	Put(ctx context.Context, doc D) (D, error)
}

// fields decodes v into its JSON object form. Numbers are kept as
// json.Number so amounts survive a round trip unchanged.
func fields(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	m := map[string]any{}
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func decode[D any](m map[string]any) (D, error) {
	var out D
	b, err := json.Marshal(m)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}

// assignID returns draft with a fresh uuid unless it already carries an id.
func assignID[D domain.Document](draft D) (D, error) {
	if draft.DocumentID() != "" {
		return draft, nil
	}
	m, err := fields(draft)
	if err != nil {
		return draft, fmt.Errorf("encode draft: %w", err)
	}
	m["id"] = uuid.New().String()
	return decode[D](m)
}

// mergePatch overlays the fields set in patch onto doc, the way a JSON
// PATCH endpoint would. The id is never changed.
func mergePatch[D domain.Document, P any](doc D, patch P) (D, error) {
	base, err := fields(doc)
	if err != nil {
		return doc, fmt.Errorf("encode document: %w", err)
	}
	changes, err := fields(patch)
	if err != nil {
		return doc, fmt.Errorf("encode patch: %w", err)
	}
	for k, v := range changes {
		if k == "id" {
			continue
		}
		base[k] = v
	}
	return decode[D](base)
}
