package store

import "fmt"

// Slice names identify the four per-trip data slices.
const (
	SliceSettings  = "settings"
	SliceItinerary = "itinerary"
	SliceExpenses  = "expenses"
	SliceChecklist = "checklist"
)

// Registry-level keys.
const (
	KeyTrips     = "trips"
	KeyMigration = "migration"
)

// Legacy single-trip keys from before the multi-trip registry existed.
const (
	LegacySettings  = "tripSettings"
	LegacyItinerary = "itineraryData"
	LegacyExpenses  = "expenses"
	LegacyChecklist = "checklist"
)

// TripKey builds the storage key for one slice of one trip.
func TripKey(tripID, slice string) string {
	return fmt.Sprintf("trip-%s-%s", tripID, slice)
}

// TripSlices lists the slice names every trip owns.
func TripSlices() []string {
	return []string{SliceSettings, SliceItinerary, SliceExpenses, SliceChecklist}
}
