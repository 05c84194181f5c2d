package core

import (
	"sort"
	"strings"

	"pantrycore/internal/catalog"
)

const maxCategoryNameLen = 50

// ValidateCategoryName checks a new or renamed category name against the
// existing names of its domain: non-empty, length-capped, case-insensitively
// unique across built-in and custom categories. current is excluded from the
// uniqueness check during a rename.
func ValidateCategoryName(domain catalog.Domain, name, current string, cats CategorySet) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalidf("category name cannot be empty")
	}
	if len(trimmed) > maxCategoryNameLen {
		return invalidf("category name must be %d characters or less", maxCategoryNameLen)
	}
	all := append(catalog.BuiltInCategories(domain), cats.Domain(domain)...)
	for _, existing := range all {
		if existing == current {
			continue
		}
		if strings.EqualFold(existing, trimmed) {
			return invalidf("category %q already exists", trimmed)
		}
	}
	return nil
}

// AllCategories returns the built-in and custom category names of a domain,
// sorted, without duplicates.
func AllCategories(domain catalog.Domain, cats CategorySet) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, name := range append(catalog.BuiltInCategories(domain), cats.Domain(domain)...) {
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RenameCategory renames a custom category in place and re-points every
// custom item of the domain that carried the old name. Catalog items are
// compile-time fixed and are never re-pointed. Returns the updated category
// set and items.
func RenameCategory(domain catalog.Domain, oldName, newName string, cats CategorySet, custom CustomItems) (CategorySet, CustomItems, error) {
	if catalog.IsBuiltInCategory(domain, oldName) {
		return cats, custom, invalidf("built-in category %q cannot be renamed", oldName)
	}
	if err := ValidateCategoryName(domain, newName, oldName, cats); err != nil {
		return cats, custom, err
	}
	names := cats.Domain(domain)
	idx := -1
	for i, name := range names {
		if name == oldName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return cats, custom, NotFoundError{Entity: "category", ID: oldName}
	}

	outCats := cats.Clone()
	renamed := outCats.Domain(domain)
	renamed[idx] = strings.TrimSpace(newName)
	outCats.setDomain(domain, renamed)

	outItems := custom.Clone()
	for id, item := range outItems.Domain(domain) {
		if item.Category == oldName {
			item.Category = strings.TrimSpace(newName)
			outItems.Domain(domain)[id] = item
		}
	}
	return outCats, outItems, nil
}

// DeleteCategory removes a custom category and cascades: every custom item of
// the domain carrying it is deleted, and the ids of those items are returned
// so the caller can drop their inventory records. Built-in categories are
// rejected with no changes.
func DeleteCategory(domain catalog.Domain, name string, cats CategorySet, custom CustomItems) (CategorySet, CustomItems, []string, error) {
	if catalog.IsBuiltInCategory(domain, name) {
		return cats, custom, nil, invalidf("built-in category %q cannot be deleted", name)
	}
	names := cats.Domain(domain)
	idx := -1
	for i, existing := range names {
		if existing == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return cats, custom, nil, NotFoundError{Entity: "category", ID: name}
	}

	outCats := cats.Clone()
	remaining := outCats.Domain(domain)
	outCats.setDomain(domain, append(remaining[:idx:idx], remaining[idx+1:]...))

	outItems := custom.Clone()
	var deleted []string
	for id, item := range outItems.Domain(domain) {
		if item.Category == name {
			delete(outItems.Domain(domain), id)
			deleted = append(deleted, id)
		}
	}
	sort.Strings(deleted)
	return outCats, outItems, deleted, nil
}
