package core

import (
	"strings"
	"testing"

	"pantrycore/internal/catalog"
)

func TestGenerateItemKey(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"San Marzano DOP Sauce", "sanmarzanodopsauce"},
		{"Hot Honey!", "hothoney"},
		{"  Basil  ", "basil"},
		{"1/4 Fold Napkin", "14foldnapkin"},
		{strings.Repeat("a", 30), strings.Repeat("a", 20)},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := GenerateItemKey(tc.name); got != tc.want {
			t.Errorf("GenerateItemKey(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestValidateNewItem(t *testing.T) {
	custom := CustomItems{
		Ingredients: map[string]catalog.Item{"taken": {Name: "Taken", Category: "Sauce"}},
	}.Normalized()
	cats := CategorySet{Ingredients: []string{"Specials"}}.Normalized()

	ok := catalog.Item{Name: "New Sauce", Category: "Sauce"}
	if err := ValidateNewItem("newsauce", catalog.DomainPrepared, ok, custom, cats); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}

	if err := ValidateNewItem("", catalog.DomainPrepared, ok, custom, cats); err == nil {
		t.Fatal("empty id accepted")
	}
	if err := ValidateNewItem("x", catalog.DomainPrepared, catalog.Item{Category: "Sauce"}, custom, cats); err == nil {
		t.Fatal("empty name accepted")
	}
	if err := ValidateNewItem("x", catalog.DomainPrepared, catalog.Item{Name: "X", Category: "Nowhere"}, custom, cats); err == nil {
		t.Fatal("unknown category accepted")
	}
	if err := ValidateNewItem("taken", catalog.DomainPrepared, ok, custom, cats); err == nil {
		t.Fatal("duplicate id accepted")
	}

	// Custom category names count, case-insensitively.
	if err := ValidateNewItem("y", catalog.DomainPrepared, catalog.Item{Name: "Y", Category: "specials"}, custom, cats); err != nil {
		t.Fatalf("custom category rejected: %v", err)
	}
}

func TestCategoryExists(t *testing.T) {
	cats := CategorySet{RawIngredients: []string{"Dry Storage"}}.Normalized()

	if !CategoryExists(catalog.DomainRaw, "flour", cats) {
		t.Fatal("built-in category lookup should be case-insensitive")
	}
	if !CategoryExists(catalog.DomainRaw, "DRY STORAGE", cats) {
		t.Fatal("custom category lookup should be case-insensitive")
	}
	if CategoryExists(catalog.DomainRaw, "Dessert", cats) {
		t.Fatal("unknown category reported as existing")
	}
}
