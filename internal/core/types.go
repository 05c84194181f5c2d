// Package core implements the unified inventory model: merging the three
// persisted partitions into one id-keyed view, classifying ids back into
// partitions on save, and the state controller that owns the in-memory view
// during a session.
package core

import (
	"fmt"

	"pantrycore/internal/catalog"
)

// Record is the unified in-memory inventory record for one item id. It
// carries the superset of all partition fields; partitioning on save strips
// the fields the target domain does not persist.
type Record struct {
	Count         float64 `json:"count"`
	NeedsPrep     bool    `json:"needsPrep"`
	PrepAmount    float64 `json:"prepAmount"`
	NeedsReorder  bool    `json:"needsReorder"`
	ReorderAmount float64 `json:"reorderAmount"`
}

// Unified is the merged inventory view keyed by item id.
type Unified map[string]Record

// Clone returns a deep copy.
func (u Unified) Clone() Unified {
	out := make(Unified, len(u))
	for id, rec := range u {
		out[id] = rec
	}
	return out
}

// PreppedRecord is the prepared-ingredient partition shape.
type PreppedRecord struct {
	Count      float64 `json:"count"`
	NeedsPrep  bool    `json:"needsPrep"`
	PrepAmount float64 `json:"prepAmount"`
}

// RawRecord is the raw-ingredient partition shape.
type RawRecord struct {
	Count         float64 `json:"count"`
	NeedsReorder  bool    `json:"needsReorder"`
	ReorderAmount float64 `json:"reorderAmount"`
}

// PaperRecord is the paper-goods partition shape.
type PaperRecord struct {
	Count float64 `json:"count"`
}

// PartitionSet holds the three output partitions produced on save.
type PartitionSet struct {
	Prepped map[string]PreppedRecord
	Raw     map[string]RawRecord
	Paper   map[string]PaperRecord
}

// CustomItems is the user-defined item document: one id→item mapping per
// domain. Ids shared with the catalog act as overrides and take precedence
// wherever the unified item view is constructed.
type CustomItems struct {
	Ingredients    map[string]catalog.Item `json:"ingredients"`
	RawIngredients map[string]catalog.Item `json:"rawIngredients"`
	PaperGoods     map[string]catalog.Item `json:"paperGoods"`
}

// Normalized fills nil domain mappings with empty ones.
func (c CustomItems) Normalized() CustomItems {
	if c.Ingredients == nil {
		c.Ingredients = map[string]catalog.Item{}
	}
	if c.RawIngredients == nil {
		c.RawIngredients = map[string]catalog.Item{}
	}
	if c.PaperGoods == nil {
		c.PaperGoods = map[string]catalog.Item{}
	}
	return c
}

// Clone returns a deep copy.
func (c CustomItems) Clone() CustomItems {
	out := CustomItems{
		Ingredients:    make(map[string]catalog.Item, len(c.Ingredients)),
		RawIngredients: make(map[string]catalog.Item, len(c.RawIngredients)),
		PaperGoods:     make(map[string]catalog.Item, len(c.PaperGoods)),
	}
	for id, it := range c.Ingredients {
		out.Ingredients[id] = it
	}
	for id, it := range c.RawIngredients {
		out.RawIngredients[id] = it
	}
	for id, it := range c.PaperGoods {
		out.PaperGoods[id] = it
	}
	return out
}

// Domain returns the custom item mapping for the given domain.
func (c CustomItems) Domain(d catalog.Domain) map[string]catalog.Item {
	switch d {
	case catalog.DomainPrepared:
		return c.Ingredients
	case catalog.DomainRaw:
		return c.RawIngredients
	case catalog.DomainPaper:
		return c.PaperGoods
	default:
		return nil
	}
}

// CategorySet is the user-defined category document: one name list per
// domain. Built-in categories are not persisted here.
type CategorySet struct {
	Ingredients    []string `json:"ingredients"`
	RawIngredients []string `json:"rawIngredients"`
	PaperGoods     []string `json:"paperGoods"`
}

// Normalized fills nil domain lists with empty ones, guaranteeing the
// document's structural shape is complete.
func (c CategorySet) Normalized() CategorySet {
	if c.Ingredients == nil {
		c.Ingredients = []string{}
	}
	if c.RawIngredients == nil {
		c.RawIngredients = []string{}
	}
	if c.PaperGoods == nil {
		c.PaperGoods = []string{}
	}
	return c
}

// Clone returns a deep copy.
func (c CategorySet) Clone() CategorySet {
	out := CategorySet{
		Ingredients:    append([]string(nil), c.Ingredients...),
		RawIngredients: append([]string(nil), c.RawIngredients...),
		PaperGoods:     append([]string(nil), c.PaperGoods...),
	}
	return out.Normalized()
}

// Domain returns the custom category list for the given domain.
func (c CategorySet) Domain(d catalog.Domain) []string {
	switch d {
	case catalog.DomainPrepared:
		return c.Ingredients
	case catalog.DomainRaw:
		return c.RawIngredients
	case catalog.DomainPaper:
		return c.PaperGoods
	default:
		return nil
	}
}

func (c *CategorySet) setDomain(d catalog.Domain, names []string) {
	switch d {
	case catalog.DomainPrepared:
		c.Ingredients = names
	case catalog.DomainRaw:
		c.RawIngredients = names
	case catalog.DomainPaper:
		c.PaperGoods = names
	}
}

// State bundles everything the controller holds in memory for a session.
type State struct {
	Inventory  Unified
	Items      CustomItems
	Categories CategorySet
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Entity, e.ID) }

// ValidationError reports client input that was rejected before any effect.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

func invalidf(format string, args ...any) ValidationError {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}
