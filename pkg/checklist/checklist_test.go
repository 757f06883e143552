package checklist

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := New(store.NewMemory(), "t1")
	counter := 0
	s.NewID = func() string {
		counter++
		return fmt.Sprintf("c-%d", counter)
	}
	return s
}

func TestCategoryAndItemLifecycle(t *testing.T) {
	s := testStore(t)

	docs, err := s.AddCategory("Documents")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	passport, err := s.AddItem(docs.ID, "Passport")
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := s.AddItem(docs.ID, "JR Pass"); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := s.ToggleItem(passport.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	categories, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !categories[0].Items[0].Checked {
		t.Fatal("expected passport checked")
	}
	checked, total := Progress(categories)
	if checked != 1 || total != 2 {
		t.Fatalf("progress: expected 1/2, got %d/%d", checked, total)
	}

	if err := s.DeleteItem(passport.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if err := s.DeleteCategory(docs.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	categories, _ = s.Load()
	if len(categories) != 0 {
		t.Fatalf("expected empty checklist, got %+v", categories)
	}

	if err := s.ToggleItem("ghost"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestReorderCategoriesAndItems(t *testing.T) {
	s := testStore(t)

	var catIDs []string
	for _, title := range []string{"A", "B", "C"} {
		c, err := s.AddCategory(title)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		catIDs = append(catIDs, c.ID)
	}
	if err := s.ReorderCategories(catIDs[2], catIDs[0]); err != nil {
		t.Fatalf("reorder categories: %v", err)
	}
	categories, _ := s.Load()
	if categories[0].Title != "C" || categories[1].Title != "A" || categories[2].Title != "B" {
		t.Fatalf("unexpected category order %+v", categories)
	}

	var itemIDs []string
	for _, text := range []string{"one", "two", "three"} {
		item, err := s.AddItem(catIDs[0], text)
		if err != nil {
			t.Fatalf("add item: %v", err)
		}
		itemIDs = append(itemIDs, item.ID)
	}
	if err := s.ReorderItems(catIDs[0], itemIDs[0], itemIDs[2]); err != nil {
		t.Fatalf("reorder items: %v", err)
	}
	categories, _ = s.Load()
	items := categories[findTitle(t, categories, "A")].Items
	if items[0].Text != "two" || items[1].Text != "three" || items[2].Text != "one" {
		t.Fatalf("unexpected item order %+v", items)
	}
}

func TestToggleCollapse(t *testing.T) {
	s := testStore(t)
	c, err := s.AddCategory("Clothes")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.ToggleCollapse(c.ID); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	categories, _ := s.Load()
	if !categories[0].IsCollapsed {
		t.Fatal("expected category collapsed")
	}
}

func findTitle(t *testing.T, categories []trip.ChecklistCategory, title string) int {
	t.Helper()
	for i := range categories {
		if categories[i].Title == title {
			return i
		}
	}
	t.Fatalf("category %q not found", title)
	return -1
}
