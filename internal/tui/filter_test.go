package tui

import "testing"

func TestCategoryBarToggle(t *testing.T) {
	bar := newCategoryBar(nil)

	if bar.selected() != nil {
		t.Errorf("expected no selection initially, got %v", bar.selected())
	}
	if bar.activeLabel() != "All" {
		t.Errorf("expected label All, got %q", bar.activeLabel())
	}

	bar.toggle("technology")
	bar.toggle("business")
	got := bar.selected()
	if len(got) != 2 || got[0] != "technology" || got[1] != "business" {
		t.Errorf("unexpected selection %v", got)
	}

	bar.toggle("technology")
	got = bar.selected()
	if len(got) != 1 || got[0] != "business" {
		t.Errorf("expected toggle off, got %v", got)
	}
}

func TestCategoryBarSelectedInCatalogOrder(t *testing.T) {
	bar := newCategoryBar(nil)
	bar.toggle("politics")
	bar.toggle("technology")

	got := bar.selected()
	if len(got) != 2 || got[0] != "technology" || got[1] != "politics" {
		t.Errorf("expected catalog order, got %v", got)
	}
}

func TestCategoryBarRestoresSavedSelection(t *testing.T) {
	bar := newCategoryBar([]string{"health", "bogus", "sports"})

	got := bar.selected()
	if len(got) != 2 {
		t.Fatalf("expected unknown ids dropped, got %v", got)
	}
	if got[0] != "health" || got[1] != "sports" {
		t.Errorf("unexpected restored selection %v", got)
	}
}

func TestCategoryBarClear(t *testing.T) {
	bar := newCategoryBar([]string{"health"})
	bar.clear()
	if bar.selected() != nil {
		t.Errorf("expected empty selection after clear, got %v", bar.selected())
	}
}

func TestCategoryBarActiveLabel(t *testing.T) {
	bar := newCategoryBar([]string{"world"})
	if bar.activeLabel() != "World News" {
		t.Errorf("expected display name in label, got %q", bar.activeLabel())
	}
}
