// Package docstore persists the five inventory documents as pretty-printed
// JSON files, auto-creates them with domain-appropriate defaults on first
// run, and snapshots each document into a rotating per-kind backup set before
// every overwrite.
package docstore

import "encoding/json"

// Kind identifies one of the persisted documents.
type Kind string

const (
	// KindPreppedInventory is the prepared-ingredient count partition.
	KindPreppedInventory Kind = "prepped-inventory"
	// KindRawInventory is the raw-ingredient count partition.
	KindRawInventory Kind = "raw-inventory"
	// KindPaperInventory is the paper-goods count partition.
	KindPaperInventory Kind = "paper-inventory"
	// KindCustomItems is the user-defined item document.
	KindCustomItems Kind = "custom-items"
	// KindCategories is the user-defined category document.
	KindCategories Kind = "categories"
)

// Kinds lists all document kinds in canonical order.
func Kinds() []Kind {
	return []Kind{KindPreppedInventory, KindRawInventory, KindPaperInventory, KindCustomItems, KindCategories}
}

// Filename returns the document's on-disk name. Doubling as the allow-list
// for the create-if-absent endpoint.
func (k Kind) Filename() string { return string(k) + ".json" }

// KindForFilename resolves a requested filename against the allow-list.
func KindForFilename(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Filename() == name {
			return k, true
		}
	}
	return "", false
}

// BackupDir returns the per-kind backup subdirectory.
func (k Kind) BackupDir() string {
	switch k {
	case KindPreppedInventory:
		return "prepped"
	case KindRawInventory:
		return "raw"
	case KindPaperInventory:
		return "paper"
	default:
		return string(k)
	}
}

// BackupPrefix returns the filename prefix of backup snapshots for the kind.
func (k Kind) BackupPrefix() string {
	switch k {
	case KindPreppedInventory, KindRawInventory, KindPaperInventory:
		return "inventory"
	default:
		return string(k)
	}
}

// RetentionCap returns how many backup snapshots are kept for the kind.
func (k Kind) RetentionCap() int {
	switch k {
	case KindCustomItems, KindCategories:
		return 25
	default:
		return 50
	}
}

var (
	emptyMapping  = json.RawMessage("{}")
	emptyItemsDoc = json.RawMessage(`{"ingredients":{},"rawIngredients":{},"paperGoods":{}}`)
	emptyListsDoc = json.RawMessage(`{"ingredients":[],"rawIngredients":[],"paperGoods":[]}`)
)

// DefaultContent returns the document created when the kind is first
// initialized: an empty id mapping for inventory partitions, the
// three-domain empty structure otherwise.
func (k Kind) DefaultContent() json.RawMessage {
	switch k {
	case KindCustomItems:
		return append(json.RawMessage(nil), emptyItemsDoc...)
	case KindCategories:
		return append(json.RawMessage(nil), emptyListsDoc...)
	default:
		return append(json.RawMessage(nil), emptyMapping...)
	}
}
