package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func fixtureProducts() []Product {
	return []Product{
		{ID: 1, Title: "Fjallraven Backpack", Description: "Fits 15in laptops", Price: decimal.RequireFromString("109.95"), Category: "men's clothing", Image: "https://img.test/1.jpg"},
		{ID: 2, Title: "Mens Casual T-Shirt", Description: "Slim fit", Price: decimal.RequireFromString("22.30"), Category: "men's clothing", Image: "https://img.test/2.jpg"},
		{ID: 3, Title: "Gold Chain Bracelet", Description: "Wedding jewellery", Price: decimal.RequireFromString("695.00"), Category: "jewelery", Image: "https://img.test/3.jpg"},
		{ID: 4, Title: "Portable SSD 1TB", Description: "USB 3.0 external drive", Price: decimal.RequireFromString("64.00"), Category: "electronics", Image: "https://img.test/4.jpg"},
	}
}

func TestFilterAllReturnsFullCatalogInOrder(t *testing.T) {
	cat := New(fixtureProducts())

	got := cat.Filter("", CategoryAll)
	if len(got) != 4 {
		t.Fatalf("expected 4 products, got %d", len(got))
	}
	for i, p := range got {
		if p.ID != i+1 {
			t.Fatalf("order not preserved at %d: got id %d", i, p.ID)
		}
	}
}

func TestFilterByQueryMatchesTitleOrDescription(t *testing.T) {
	cat := New(fixtureProducts())

	byTitle := cat.Filter("BACKPACK", CategoryAll)
	if len(byTitle) != 1 || byTitle[0].ID != 1 {
		t.Fatalf("title match failed: %v", byTitle)
	}

	byDescription := cat.Filter("usb", "")
	if len(byDescription) != 1 || byDescription[0].ID != 4 {
		t.Fatalf("description match failed: %v", byDescription)
	}

	if got := cat.Filter("plutonium", CategoryAll); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestFilterCombinesQueryAndCategory(t *testing.T) {
	cat := New(fixtureProducts())

	got := cat.Filter("slim", "men's clothing")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("combined filter failed: %v", got)
	}

	// Query matches but category does not.
	if got := cat.Filter("slim", "electronics"); len(got) != 0 {
		t.Fatalf("expected AND semantics, got %v", got)
	}
}

func TestFilterCategoryIsExactMatch(t *testing.T) {
	cat := New(fixtureProducts())

	if got := cat.Filter("", "jewelery"); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("exact category match failed: %v", got)
	}
	if got := cat.Filter("", "Jewelery"); len(got) != 0 {
		t.Fatalf("category match should be case sensitive, got %v", got)
	}
}

func TestFindByID(t *testing.T) {
	cat := New(fixtureProducts())

	p, ok := cat.FindByID(3)
	if !ok || p.Title != "Gold Chain Bracelet" {
		t.Fatalf("expected bracelet, got %v ok=%v", p, ok)
	}
	if _, ok := cat.FindByID(99); ok {
		t.Fatal("unknown id should not be found")
	}
}

func TestCategoriesDistinctInFeedOrder(t *testing.T) {
	cat := New(fixtureProducts())

	got := cat.Categories()
	want := []string{"men's clothing", "jewelery", "electronics"}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category %d: expected %q got %q", i, want[i], got[i])
		}
	}
}

func TestEmptyCatalog(t *testing.T) {
	cat := Empty()
	if cat.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d", cat.Len())
	}
	if got := cat.Filter("", CategoryAll); len(got) != 0 {
		t.Fatalf("expected no products, got %v", got)
	}
	if got := cat.Categories(); len(got) != 0 {
		t.Fatalf("expected no categories, got %v", got)
	}
}

func TestProductValidate(t *testing.T) {
	valid := fixtureProducts()[0]
	if err := valid.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := valid
	bad.ID = 0
	if err := bad.validate(); err == nil {
		t.Fatal("expected error for missing id")
	}

	bad = valid
	bad.Title = "  "
	if err := bad.validate(); err == nil {
		t.Fatal("expected error for blank title")
	}

	bad = valid
	bad.Price = decimal.NewFromInt(-5)
	if err := bad.validate(); err == nil {
		t.Fatal("expected error for negative price")
	}
}
