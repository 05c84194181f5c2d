package core

import "pantrycore/internal/catalog"

// Classify resolves which domain an inventory id belongs to. Precedence is
// fixed: custom prepared, custom raw, custom paper, then the built-in catalog
// domains in the same order. Returns ok=false for an id no known item claims.
func Classify(id string, custom CustomItems) (catalog.Domain, bool) {
	for _, d := range catalog.Domains() {
		if _, ok := custom.Domain(d)[id]; ok {
			return d, true
		}
	}
	for _, d := range catalog.Domains() {
		if catalog.Contains(d, id) {
			return d, true
		}
	}
	return "", false
}

// ResolveItem returns the item definition governing id: a custom entry (or
// override) wins over the catalog. The same precedence order as Classify.
func ResolveItem(id string, custom CustomItems) (catalog.Item, catalog.Domain, bool) {
	for _, d := range catalog.Domains() {
		if item, ok := custom.Domain(d)[id]; ok {
			return item, d, true
		}
	}
	return catalog.Lookup(id)
}

// Partition routes every unified record into exactly one output partition
// based on Classify, applying the per-domain record shape. Ids matching no
// known item are dropped from all partitions; this prunes records orphaned by
// a custom item delete.
func Partition(unified Unified, custom CustomItems) PartitionSet {
	out := PartitionSet{
		Prepped: make(map[string]PreppedRecord),
		Raw:     make(map[string]RawRecord),
		Paper:   make(map[string]PaperRecord),
	}
	for id, rec := range unified {
		domain, ok := Classify(id, custom)
		if !ok {
			continue
		}
		switch domain {
		case catalog.DomainPrepared:
			out.Prepped[id] = PreppedRecord{Count: rec.Count, NeedsPrep: rec.NeedsPrep, PrepAmount: rec.PrepAmount}
		case catalog.DomainRaw:
			out.Raw[id] = RawRecord{Count: rec.Count, NeedsReorder: rec.NeedsReorder, ReorderAmount: rec.ReorderAmount}
		case catalog.DomainPaper:
			out.Paper[id] = PaperRecord{Count: rec.Count}
		}
	}
	return out
}

// MergedItems returns the full item view for a domain: catalog entries with
// custom entries layered on top (same-id custom overrides win).
func MergedItems(domain catalog.Domain, custom CustomItems) map[string]catalog.Item {
	builtIn := catalog.Items(domain)
	out := make(map[string]catalog.Item, len(builtIn)+len(custom.Domain(domain)))
	for id, item := range builtIn {
		out[id] = item
	}
	for id, item := range custom.Domain(domain) {
		out[id] = item
	}
	return out
}
