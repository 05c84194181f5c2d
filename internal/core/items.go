package core

import (
	"strings"

	"pantrycore/internal/catalog"
)

const maxItemKeyLen = 20

// GenerateItemKey derives a stable id from a display name: lowercase,
// alphanumerics only, capped length. "San Marzano DOP Sauce" -> "sanmarzanodopsauce".
func GenerateItemKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() >= maxItemKeyLen {
			break
		}
	}
	return b.String()
}

// ValidateNewItem checks an item about to be added to the custom store for
// domain under id. The category must already exist (built-in or custom) for
// the domain, and the id must be free within the domain unless the item is an
// override of a built-in catalog entry.
func ValidateNewItem(id string, domain catalog.Domain, item catalog.Item, custom CustomItems, cats CategorySet) error {
	if strings.TrimSpace(id) == "" {
		return invalidf("item id is required")
	}
	if strings.TrimSpace(item.Name) == "" {
		return invalidf("item name is required")
	}
	if !CategoryExists(domain, item.Category, cats) {
		return invalidf("category %q does not exist for domain %s", item.Category, domain)
	}
	if _, exists := custom.Domain(domain)[id]; exists {
		return invalidf("item %q already exists", id)
	}
	return nil
}

// CategoryExists reports whether name is a known category (built-in or
// custom) of domain, case-insensitively.
func CategoryExists(domain catalog.Domain, name string, cats CategorySet) bool {
	if catalog.IsBuiltInCategory(domain, name) {
		return true
	}
	for _, c := range cats.Domain(domain) {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// withItem returns a copy of custom with id set in the given domain.
func withItem(custom CustomItems, domain catalog.Domain, id string, item catalog.Item) CustomItems {
	out := custom.Clone()
	out.Domain(domain)[id] = item
	return out
}

// withoutItem returns a copy of custom with id removed from the given domain.
func withoutItem(custom CustomItems, domain catalog.Domain, id string) CustomItems {
	out := custom.Clone()
	delete(out.Domain(domain), id)
	return out
}
