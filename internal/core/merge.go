package core

import (
	"encoding/json"
	"fmt"

	"pantrycore/internal/catalog"
)

// DecodePartition leniently decodes one partition document into unified
// records. Only the fields the domain persists are read; numeric fields
// default to 0 when absent or non-numeric and flags are coerced to booleans,
// matching how hand-edited documents are tolerated.
func DecodePartition(raw []byte, domain catalog.Domain) (map[string]Record, error) {
	if len(raw) == 0 {
		return map[string]Record{}, nil
	}
	var doc map[string]map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s partition: %w", domain, err)
	}
	out := make(map[string]Record, len(doc))
	for id, fields := range doc {
		rec := Record{Count: toNumber(fields["count"])}
		switch domain {
		case catalog.DomainPrepared:
			rec.NeedsPrep = toBool(fields["needsPrep"])
			rec.PrepAmount = toNumber(fields["prepAmount"])
		case catalog.DomainRaw:
			rec.NeedsReorder = toBool(fields["needsReorder"])
			rec.ReorderAmount = toNumber(fields["reorderAmount"])
		}
		out[id] = rec
	}
	return out, nil
}

// Merge combines the three partitions into one unified mapping. Partitions
// are applied in order prepped, raw, paper; an id present in more than one
// partition keeps the last-merged record wholesale (paper over raw over
// prepped). This should not happen in normal operation but is the documented
// tie-break.
func Merge(prepped, raw, paper map[string]Record) Unified {
	out := make(Unified, len(prepped)+len(raw)+len(paper))
	for _, part := range []map[string]Record{prepped, raw, paper} {
		for id, rec := range part {
			out[id] = rec
		}
	}
	return out
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return n
	case json.Number:
		f, err := n.Float64()
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}

// toBool coerces with JS truthiness: false, 0, "" and null are false,
// anything else is true. Documents edited by hand carry flags as 0/1 often
// enough that strict bool decoding would drop them.
func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != ""
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	case float64:
		return b != 0
	case nil:
		return false
	default:
		return true
	}
}
