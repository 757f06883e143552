// Package backup serializes a trip's four data slices into a
// self-describing bundle, encodes it as a compact copy-paste string or a
// JSON file, and restores bundles back into a trip, including legacy
// shapes from older exports.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// ErrMalformed is returned when input is neither raw JSON nor a compact
// encoding this package produced.
var ErrMalformed = errors.New("backup: malformed backup data")

// ErrInvalidBundle is returned when a decoded bundle is missing its
// settings or itinerary.
var ErrInvalidBundle = errors.New("backup: bundle missing settings or itinerary")

// Export reads all four of the trip's slices into a complete snapshot.
func Export(kv store.KV, tripID string, now time.Time) (trip.Bundle, error) {
	b := trip.Bundle{
		Itinerary: []trip.Day{},
		Expenses:  []trip.Expense{},
		Checklist: []trip.ChecklistCategory{},
		Version:   trip.BundleVersion,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
	if err := store.ReadJSON(kv, store.TripKey(tripID, store.SliceSettings), &b.Settings); err != nil {
		return trip.Bundle{}, fmt.Errorf("backup: export settings: %w", err)
	}
	if err := store.ReadJSON(kv, store.TripKey(tripID, store.SliceItinerary), &b.Itinerary); err != nil {
		return trip.Bundle{}, fmt.Errorf("backup: export itinerary: %w", err)
	}
	if err := readOptional(kv, store.TripKey(tripID, store.SliceExpenses), &b.Expenses); err != nil {
		return trip.Bundle{}, err
	}
	if err := readOptional(kv, store.TripKey(tripID, store.SliceChecklist), &b.Checklist); err != nil {
		return trip.Bundle{}, err
	}
	return b, nil
}

func readOptional(kv store.KV, key string, v interface{}) error {
	if err := store.ReadJSON(kv, key, v); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("backup: export %s: %w", key, err)
	}
	return nil
}

// Import overwrites all four of the destination trip's slices with the
// bundle's contents.
func Import(kv store.KV, tripID string, b trip.Bundle) error {
	if err := Validate(b); err != nil {
		return err
	}
	if b.Expenses == nil {
		b.Expenses = []trip.Expense{}
	}
	if b.Checklist == nil {
		b.Checklist = []trip.ChecklistCategory{}
	}
	if err := store.WriteJSON(kv, store.TripKey(tripID, store.SliceSettings), b.Settings); err != nil {
		return err
	}
	if err := store.WriteJSON(kv, store.TripKey(tripID, store.SliceItinerary), b.Itinerary); err != nil {
		return err
	}
	if err := store.WriteJSON(kv, store.TripKey(tripID, store.SliceExpenses), b.Expenses); err != nil {
		return err
	}
	return store.WriteJSON(kv, store.TripKey(tripID, store.SliceChecklist), b.Checklist)
}

// Validate performs the minimal structural check: a bundle must carry
// settings and an itinerary. It is not full schema validation.
func Validate(b trip.Bundle) error {
	if b.Settings.Name == "" && b.Settings.StartDate.IsZero() {
		return ErrInvalidBundle
	}
	if b.Itinerary == nil {
		return ErrInvalidBundle
	}
	return nil
}

// rawBundle defers slice decoding so legacy shapes can be absorbed.
type rawBundle struct {
	Settings  json.RawMessage `json:"tripSettings"`
	Itinerary json.RawMessage `json:"itineraryData"`
	Expenses  json.RawMessage `json:"expenses"`
	Checklist json.RawMessage `json:"checklist"`
	Version   int             `json:"version"`
	Timestamp string          `json:"timestamp"`
}

// UnmarshalBundle decodes bundle JSON, accepting the legacy flat checklist
// shape (a plain item list with a text field, no categories) by wrapping it
// in one synthesized category.
func UnmarshalBundle(data []byte) (trip.Bundle, error) {
	var raw rawBundle
	if err := json.Unmarshal(data, &raw); err != nil {
		return trip.Bundle{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(raw.Settings) == 0 || len(raw.Itinerary) == 0 {
		return trip.Bundle{}, ErrInvalidBundle
	}

	b := trip.Bundle{Version: raw.Version, Timestamp: raw.Timestamp}
	if err := json.Unmarshal(raw.Settings, &b.Settings); err != nil {
		return trip.Bundle{}, fmt.Errorf("%w: settings: %v", ErrMalformed, err)
	}
	if err := json.Unmarshal(raw.Itinerary, &b.Itinerary); err != nil {
		return trip.Bundle{}, fmt.Errorf("%w: itinerary: %v", ErrMalformed, err)
	}
	if len(raw.Expenses) > 0 {
		if err := json.Unmarshal(raw.Expenses, &b.Expenses); err != nil {
			return trip.Bundle{}, fmt.Errorf("%w: expenses: %v", ErrMalformed, err)
		}
	}
	checklist, err := decodeChecklist(raw.Checklist)
	if err != nil {
		return trip.Bundle{}, err
	}
	b.Checklist = checklist
	if b.Expenses == nil {
		b.Expenses = []trip.Expense{}
	}
	return b, nil
}

func decodeChecklist(raw json.RawMessage) ([]trip.ChecklistCategory, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []trip.ChecklistCategory{}, nil
	}

	// Probe the first element: legacy exports store a flat item list where
	// each element has text and no items.
	var probe []struct {
		Text  *string          `json:"text"`
		Items *json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: checklist: %v", ErrMalformed, err)
	}
	if len(probe) > 0 && probe[0].Text != nil && probe[0].Items == nil {
		var items []trip.ChecklistItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: legacy checklist: %v", ErrMalformed, err)
		}
		return []trip.ChecklistCategory{{
			ID:    "imported",
			Title: "Packing List",
			Items: items,
		}}, nil
	}

	var categories []trip.ChecklistCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("%w: checklist: %v", ErrMalformed, err)
	}
	return categories, nil
}
