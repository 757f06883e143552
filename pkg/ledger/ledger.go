// Package ledger keeps a trip's expense entries and their category
// aggregates. Entries are append/delete only.
package ledger

import (
	"errors"

	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// ErrExpenseNotFound is returned when no entry matches the requested id.
var ErrExpenseNotFound = errors.New("ledger: expense not found")

// Store reads and writes one trip's expense slice.
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
	return store.TripKey(s.TripID, store.SliceExpenses)
}

// Load reads the expense slice. A missing slice reads as empty.
func (s *Store) Load() ([]trip.Expense, error) {
	var expenses []trip.Expense
	if err := store.ReadJSON(s.KV, s.key(), &expenses); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []trip.Expense{}, nil
		}
		return nil, err
	}
	return expenses, nil
}

// Add appends one expense and persists the slice.
func (s *Store) Add(date, title string, amountJPY int, category trip.ExpenseCategory) (trip.Expense, error) {
	if amountJPY < 0 {
		return trip.Expense{}, errors.New("ledger: amount must not be negative")
	}
	expenses, err := s.Load()
	if err != nil {
		return trip.Expense{}, err
	}
	e := trip.Expense{
		ID:        s.NewID(),
		Date:      date,
		Title:     title,
		AmountJPY: amountJPY,
		Category:  category,
	}
	expenses = append(expenses, e)
	if err := store.WriteJSON(s.KV, s.key(), expenses); err != nil {
		return trip.Expense{}, err
	}
	return e, nil
}

// Delete removes the expense with the given id.
func (s *Store) Delete(id string) error {
	expenses, err := s.Load()
	if err != nil {
		return err
	}
	for i := range expenses {
		if expenses[i].ID == id {
			expenses = append(expenses[:i], expenses[i+1:]...)
			return store.WriteJSON(s.KV, s.key(), expenses)
		}
	}
	return ErrExpenseNotFound
}

// TotalJPY sums all entries.
func TotalJPY(expenses []trip.Expense) int {
	total := 0
	for _, e := range expenses {
		total += e.AmountJPY
	}
	return total
}

// TotalsByCategory sums entries per category.
func TotalsByCategory(expenses []trip.Expense) map[trip.ExpenseCategory]int {
	totals := make(map[trip.ExpenseCategory]int)
	for _, e := range expenses {
		totals[e.Category] += e.AmountJPY
	}
	return totals
}

// Remaining reports budget minus spend. The second return is false when the
// trip has no budget set.
func Remaining(settings trip.Settings, expenses []trip.Expense) (int, bool) {
	if settings.BudgetJPY <= 0 {
		return 0, false
	}
	return settings.BudgetJPY - TotalJPY(expenses), true
}
