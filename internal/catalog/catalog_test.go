package catalog

import "testing"

func TestDomainsCanonicalOrder(t *testing.T) {
	got := Domains()
	want := []Domain{DomainPrepared, DomainRaw, DomainPaper}
	if len(got) != len(want) {
		t.Fatalf("got %d domains", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("domain %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookupSearchesDomainsInOrder(t *testing.T) {
	// sanMarzano is a prepared sauce; sanMarzanoTomatoes is the raw can.
	item, domain, ok := Lookup("sanMarzano")
	if !ok || domain != DomainPrepared || item.Name != "San Marzano DOP Sauce" {
		t.Fatalf("Lookup(sanMarzano) = %v %q %v", item, domain, ok)
	}

	item, domain, ok = Lookup("caputoPizzaria")
	if !ok || domain != DomainRaw || item.Unit != "kg" {
		t.Fatalf("Lookup(caputoPizzaria) = %v %q %v", item, domain, ok)
	}

	if _, _, ok := Lookup("unobtainium"); ok {
		t.Fatal("Lookup accepted an unknown id")
	}
}

func TestContains(t *testing.T) {
	if !Contains(DomainPrepared, "dough") {
		t.Fatal("dough missing from prepared domain")
	}
	if Contains(DomainRaw, "dough") {
		t.Fatal("dough leaked into raw domain")
	}
	if Contains(Domain("frozen"), "dough") {
		t.Fatal("unknown domain contains items")
	}
}

func TestItemsUnknownDomain(t *testing.T) {
	if Items(Domain("frozen")) != nil {
		t.Fatal("unknown domain returned an item set")
	}
}

func TestPreparedItemsHaveNoUnit(t *testing.T) {
	for id, item := range Items(DomainPrepared) {
		if item.Unit != "" {
			t.Errorf("prepared item %s carries unit %q", id, item.Unit)
		}
	}
	for id, item := range Items(DomainRaw) {
		if item.Unit == "" {
			t.Errorf("raw item %s has no unit", id)
		}
	}
}

func TestBuiltInCategoriesReturnsCopy(t *testing.T) {
	first := BuiltInCategories(DomainPaper)
	if len(first) == 0 {
		t.Fatal("paper domain has no categories")
	}
	first[0] = "Mutated"
	if BuiltInCategories(DomainPaper)[0] == "Mutated" {
		t.Fatal("caller mutation reached the built-in list")
	}
}

func TestIsBuiltInCategoryCaseInsensitive(t *testing.T) {
	if !IsBuiltInCategory(DomainPrepared, "sauce") {
		t.Fatal("lowercase match rejected")
	}
	if !IsBuiltInCategory(DomainRaw, "CANNED GOODS") {
		t.Fatal("uppercase match rejected")
	}
	if IsBuiltInCategory(DomainPrepared, "Napkins") {
		t.Fatal("paper category matched in prepared domain")
	}
}
