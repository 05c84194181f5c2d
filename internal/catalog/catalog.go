// Package catalog holds the built-in item definitions and category lists for
// the three inventory domains. The catalog is compiled into the binary and is
// immutable at runtime; user-defined items and categories layer on top of it
// (see internal/core).
package catalog

// Domain identifies one of the three item kinds tracked by the system.
type Domain string

const (
	// DomainPrepared covers in-house prepared ingredients counted by the kitchen.
	DomainPrepared Domain = "prepared"
	// DomainRaw covers raw ingredients reordered from suppliers.
	DomainRaw Domain = "raw"
	// DomainPaper covers paper goods and other consumable supplies.
	DomainPaper Domain = "paper"
)

// Domains lists all domains in canonical order.
func Domains() []Domain {
	return []Domain{DomainPrepared, DomainRaw, DomainPaper}
}

// Item describes a single catalog or custom item. Unit is empty for prepared
// ingredients, which are counted in portions rather than supplier units.
type Item struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit,omitempty"`
}

// Items returns the built-in item set for the given domain, or nil for an
// unknown domain. The returned map is shared; callers must not mutate it.
func Items(domain Domain) map[string]Item {
	switch domain {
	case DomainPrepared:
		return preparedIngredients
	case DomainRaw:
		return rawIngredients
	case DomainPaper:
		return paperGoods
	default:
		return nil
	}
}

// Lookup finds a built-in item by id, searching domains in canonical order.
func Lookup(id string) (Item, Domain, bool) {
	for _, domain := range Domains() {
		if item, ok := Items(domain)[id]; ok {
			return item, domain, true
		}
	}
	return Item{}, "", false
}

// Contains reports whether id is a built-in item in the given domain.
func Contains(domain Domain, id string) bool {
	_, ok := Items(domain)[id]
	return ok
}
