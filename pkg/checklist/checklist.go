// Package checklist keeps a trip's packing list: ordered categories of
// ordered items, both independently reorderable.
package checklist

import (
	"errors"
	"strings"

	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

var (
	ErrCategoryNotFound = errors.New("checklist: category not found")
	ErrItemNotFound     = errors.New("checklist: item not found")
)

// Store reads and writes one trip's checklist slice.
type Store struct {
	KV     store.KV
	TripID string

	NewID func() string
}

// New creates a Store for the given trip.
func New(kv store.KV, tripID string) *Store {
	return &Store{KV: kv, TripID: tripID, NewID: itinerary.NewID}
}

func (s *Store) key() string {
	return store.TripKey(s.TripID, store.SliceChecklist)
}

// Load reads the checklist. A missing slice reads as empty.
func (s *Store) Load() ([]trip.ChecklistCategory, error) {
	var categories []trip.ChecklistCategory
	if err := store.ReadJSON(s.KV, s.key(), &categories); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []trip.ChecklistCategory{}, nil
		}
		return nil, err
	}
	return categories, nil
}

// Save persists the checklist as-is.
func (s *Store) Save(categories []trip.ChecklistCategory) error {
	return store.WriteJSON(s.KV, s.key(), categories)
}

// AddCategory appends a new empty category.
func (s *Store) AddCategory(title string) (trip.ChecklistCategory, error) {
	if strings.TrimSpace(title) == "" {
		return trip.ChecklistCategory{}, errors.New("checklist: category title required")
	}
	categories, err := s.Load()
	if err != nil {
		return trip.ChecklistCategory{}, err
	}
	c := trip.ChecklistCategory{ID: s.NewID(), Title: title, Items: []trip.ChecklistItem{}}
	categories = append(categories, c)
	if err := s.Save(categories); err != nil {
		return trip.ChecklistCategory{}, err
	}
	return c, nil
}

// DeleteCategory removes a category and all its items.
func (s *Store) DeleteCategory(id string) error {
	categories, err := s.Load()
	if err != nil {
		return err
	}
	idx := categoryIndex(categories, id)
	if idx < 0 {
		return ErrCategoryNotFound
	}
	categories = append(categories[:idx], categories[idx+1:]...)
	return s.Save(categories)
}

// ToggleCollapse flips a category's collapsed flag.
func (s *Store) ToggleCollapse(id string) error {
	categories, err := s.Load()
	if err != nil {
		return err
	}
	idx := categoryIndex(categories, id)
	if idx < 0 {
		return ErrCategoryNotFound
	}
	categories[idx].IsCollapsed = !categories[idx].IsCollapsed
	return s.Save(categories)
}

// AddItem appends an unchecked item to the category.
func (s *Store) AddItem(categoryID, text string) (trip.ChecklistItem, error) {
	if strings.TrimSpace(text) == "" {
		return trip.ChecklistItem{}, errors.New("checklist: item text required")
	}
	categories, err := s.Load()
	if err != nil {
		return trip.ChecklistItem{}, err
	}
	idx := categoryIndex(categories, categoryID)
	if idx < 0 {
		return trip.ChecklistItem{}, ErrCategoryNotFound
	}
	item := trip.ChecklistItem{ID: s.NewID(), Text: text}
	categories[idx].Items = append(categories[idx].Items, item)
	if err := s.Save(categories); err != nil {
		return trip.ChecklistItem{}, err
	}
	return item, nil
}

// ToggleItem flips an item's checked flag.
func (s *Store) ToggleItem(itemID string) error {
	categories, err := s.Load()
	if err != nil {
		return err
	}
	for ci := range categories {
		for ii := range categories[ci].Items {
			if categories[ci].Items[ii].ID == itemID {
				categories[ci].Items[ii].Checked = !categories[ci].Items[ii].Checked
				return s.Save(categories)
			}
		}
	}
	return ErrItemNotFound
}

// DeleteItem removes an item from whichever category holds it.
func (s *Store) DeleteItem(itemID string) error {
	categories, err := s.Load()
	if err != nil {
		return err
	}
	for ci := range categories {
		for ii := range categories[ci].Items {
			if categories[ci].Items[ii].ID == itemID {
				categories[ci].Items = append(categories[ci].Items[:ii], categories[ci].Items[ii+1:]...)
				return s.Save(categories)
			}
		}
	}
	return ErrItemNotFound
}

// ReorderCategories moves activeID to the position currently held by overID.
func (s *Store) ReorderCategories(activeID, overID string) error {
	categories, err := s.Load()
	if err != nil {
		return err
	}
	from := categoryIndex(categories, activeID)
	to := categoryIndex(categories, overID)
	if from < 0 || to < 0 {
		return ErrCategoryNotFound
	}
	if from == to {
		return nil
	}
	rest := make([]trip.ChecklistCategory, 0, len(categories)-1)
	rest = append(rest, categories[:from]...)
	rest = append(rest, categories[from+1:]...)
	moved := make([]trip.ChecklistCategory, 0, len(categories))
	moved = append(moved, rest[:to]...)
	moved = append(moved, categories[from])
	moved = append(moved, rest[to:]...)
	return s.Save(moved)
}

// ReorderItems moves an item within its category to the position currently
// held by the over item. Both must be in the same category.
func (s *Store) ReorderItems(categoryID, activeID, overID string) error {
	categories, err := s.Load()
	if err != nil {
		return err
	}
	ci := categoryIndex(categories, categoryID)
	if ci < 0 {
		return ErrCategoryNotFound
	}
	items := categories[ci].Items
	from, to := -1, -1
	for i := range items {
		if items[i].ID == activeID {
			from = i
		}
		if items[i].ID == overID {
			to = i
		}
	}
	if from < 0 || to < 0 {
		return ErrItemNotFound
	}
	if from == to {
		return nil
	}
	rest := make([]trip.ChecklistItem, 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)
	moved := make([]trip.ChecklistItem, 0, len(items))
	moved = append(moved, rest[:to]...)
	moved = append(moved, items[from])
	moved = append(moved, rest[to:]...)
	categories[ci].Items = moved
	return s.Save(categories)
}

// Progress counts checked items against the total.
func Progress(categories []trip.ChecklistCategory) (checked, total int) {
	for _, c := range categories {
		for _, item := range c.Items {
			total++
			if item.Checked {
				checked++
			}
		}
	}
	return checked, total
}

func categoryIndex(categories []trip.ChecklistCategory, id string) int {
	for i := range categories {
		if categories[i].ID == id {
			return i
		}
	}
	return -1
}
