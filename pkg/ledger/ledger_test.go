package ledger

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
		return fmt.Sprintf("e-%d", counter)
	}
	return s
}

func TestAddAndDelete(t *testing.T) {
	s := testStore(t)

	e, err := s.Add("04/01", "Ramen", 1200, trip.ExpenseFood)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add("04/01", "Metro", 280, trip.ExpenseTransport); err != nil {
		t.Fatalf("add: %v", err)
	}

	expenses, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(expenses))
	}

	if err := s.Delete(e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expenses, _ = s.Load()
	if len(expenses) != 1 || expenses[0].Title != "Metro" {
		t.Fatalf("unexpected ledger after delete: %+v", expenses)
	}

	if err := s.Delete("ghost"); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("expected ErrExpenseNotFound, got %v", err)
	}
}

func TestAddRejectsNegativeAmount(t *testing.T) {
	s := testStore(t)
	if _, err := s.Add("04/01", "Refund", -500, trip.ExpenseOther); err == nil {
		t.Fatal("expected error for negative amount")
	}
}

func TestAggregates(t *testing.T) {
	expenses := []trip.Expense{
		{ID: "1", AmountJPY: 1200, Category: trip.ExpenseFood},
		{ID: "2", AmountJPY: 800, Category: trip.ExpenseFood},
		{ID: "3", AmountJPY: 9800, Category: trip.ExpenseHotel},
	}

	if got := TotalJPY(expenses); got != 11800 {
		t.Fatalf("total: expected 11800, got %d", got)
	}
	totals := TotalsByCategory(expenses)
	if totals[trip.ExpenseFood] != 2000 || totals[trip.ExpenseHotel] != 9800 {
		t.Fatalf("unexpected totals %v", totals)
	}

	left, ok := Remaining(trip.Settings{BudgetJPY: 20000}, expenses)
	if !ok || left != 8200 {
		t.Fatalf("remaining: expected 8200, got %d (ok=%v)", left, ok)
	}
	if _, ok := Remaining(trip.Settings{}, expenses); ok {
		t.Fatal("no budget set must report ok=false")
	}
}
