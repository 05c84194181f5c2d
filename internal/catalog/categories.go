package catalog

import "strings"

// Built-in category lists per domain. These are never persisted and can never
// be removed; user-defined categories extend them through the category store.

var builtInCategories = map[Domain][]string{
	DomainPrepared: {"Base", "Sauce", "Cheese", "Meat", "Vegetable", "Herb", "Seasoning", "Salad", "Dry Goods"},
	DomainRaw:      {"Flour", "Canned Goods", "Cheese", "Oil", "Sauce", "Herbs", "Aromatics", "Meat", "Produce", "Sauces", "Supplies"},
	DomainPaper:    {"Napkins", "Pizza Boxes", "To-Go Items", "Containers", "Service Items", "Retail Items"},
}

// BuiltInCategories returns a copy of the built-in category list for domain.
func BuiltInCategories(domain Domain) []string {
	src := builtInCategories[domain]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsBuiltInCategory reports whether name is a built-in category of domain.
// Matching is case-insensitive to mirror the uniqueness rule for custom
// categories.
func IsBuiltInCategory(domain Domain, name string) bool {
	for _, c := range builtInCategories[domain] {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
