package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"pantrycore/internal/catalog"
	"pantrycore/internal/core"
)

// Repository adapts the document store to the controller's persistence
// contract. Loading auto-creates missing documents with their empty defaults
// before decoding, so a fresh data directory is usable immediately.
type Repository struct {
	store *Store
}

// NewRepository wraps a document store.
func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

var _ core.Repository = (*Repository)(nil)

// Load reads all five documents, creating any that are missing, and merges
// the three inventory partitions into the unified view.
func (r *Repository) Load(ctx context.Context) (core.State, error) {
	var state core.State

	partitions := map[Kind]catalog.Domain{
		KindPreppedInventory: catalog.DomainPrepared,
		KindRawInventory:     catalog.DomainRaw,
		KindPaperInventory:   catalog.DomainPaper,
	}
	decoded := map[catalog.Domain]map[string]core.Record{}
	for kind, domain := range partitions {
		raw, _, err := r.store.EnsureExists(ctx, kind, kind.DefaultContent())
		if err != nil {
			return state, fmt.Errorf("load %s: %w", kind, err)
		}
		records, err := core.DecodePartition(raw, domain)
		if err != nil {
			return state, fmt.Errorf("load %s: %w", kind, err)
		}
		decoded[domain] = records
	}
	state.Inventory = core.Merge(
		decoded[catalog.DomainPrepared],
		decoded[catalog.DomainRaw],
		decoded[catalog.DomainPaper],
	)

	rawItems, _, err := r.store.EnsureExists(ctx, KindCustomItems, KindCustomItems.DefaultContent())
	if err != nil {
		return state, fmt.Errorf("load %s: %w", KindCustomItems, err)
	}
	if err := json.Unmarshal(rawItems, &state.Items); err != nil {
		return state, fmt.Errorf("decode %s: %w", KindCustomItems, err)
	}
	state.Items = state.Items.Normalized()

	rawCats, _, err := r.store.EnsureExists(ctx, KindCategories, KindCategories.DefaultContent())
	if err != nil {
		return state, fmt.Errorf("load %s: %w", KindCategories, err)
	}
	if err := json.Unmarshal(rawCats, &state.Categories); err != nil {
		return state, fmt.Errorf("decode %s: %w", KindCategories, err)
	}
	state.Categories = state.Categories.Normalized()

	return state, nil
}

// SaveInventory persists the three partitions as separate documents.
func (r *Repository) SaveInventory(ctx context.Context, parts core.PartitionSet, actor string) error {
	docs := []struct {
		kind    Kind
		payload any
	}{
		{KindPreppedInventory, parts.Prepped},
		{KindRawInventory, parts.Raw},
		{KindPaperInventory, parts.Paper},
	}
	for _, doc := range docs {
		if err := r.writeJSON(ctx, doc.kind, doc.payload, actor); err != nil {
			return err
		}
	}
	return nil
}

// SaveCustomItems persists the custom item document.
func (r *Repository) SaveCustomItems(ctx context.Context, items core.CustomItems, actor string) error {
	return r.writeJSON(ctx, KindCustomItems, items.Normalized(), actor)
}

// SaveCategories persists the category document.
func (r *Repository) SaveCategories(ctx context.Context, cats core.CategorySet, actor string) error {
	return r.writeJSON(ctx, KindCategories, cats.Normalized(), actor)
}

func (r *Repository) writeJSON(ctx context.Context, kind Kind, payload any, actor string) error {
	content, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	if _, err := r.store.Write(ctx, kind, content, actor); err != nil {
		return fmt.Errorf("save %s: %w", kind, err)
	}
	return nil
}
