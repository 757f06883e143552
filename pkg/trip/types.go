// Package trip defines the entities a single trip is made of: the registry
// summary, per-trip settings, itinerary days with their events and alternate
// plans, expenses, and the packing checklist.
package trip

import (
	"fmt"
	"strings"
	"time"
)

// Season tags a trip for cover-image selection and display.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// AllSeasons returns the supported seasons.
func AllSeasons() []Season {
	return []Season{Spring, Summer, Autumn, Winter}
}

// ParseSeason converts a string to a Season. Empty input defaults to spring.
func ParseSeason(raw string) (Season, error) {
	s := Season(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return Spring, nil
	}
	for _, candidate := range AllSeasons() {
		if candidate == s {
			return candidate, nil
		}
	}
	return Spring, fmt.Errorf("trip: unknown season %q", raw)
}

// PlanID names one of the alternate schedules a day can hold.
type PlanID string

const (
	PlanA PlanID = "A"
	PlanB PlanID = "B"
	PlanC PlanID = "C"
)

// AllPlans returns the fixed set of plan slots.
func AllPlans() []PlanID {
	return []PlanID{PlanA, PlanB, PlanC}
}

// ParsePlan converts a string to a PlanID. Empty input defaults to plan A.
func ParsePlan(raw string) (PlanID, error) {
	p := PlanID(strings.ToUpper(strings.TrimSpace(raw)))
	if p == "" {
		return PlanA, nil
	}
	for _, candidate := range AllPlans() {
		if candidate == p {
			return candidate, nil
		}
	}
	return PlanA, fmt.Errorf("trip: unknown plan %q", raw)
}

// Summary is the registry's view of a trip. Name, start date, and season are
// duplicated into Settings; Registry.UpdateSettings writes both together.
type Summary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	Season       Season    `json:"season"`
	Days         int       `json:"days"`
	CoverImage   string    `json:"coverImage,omitempty"`
	LastAccessed time.Time `json:"lastAccessed,omitempty"`
}

// Settings is the per-trip configuration slice. It is authoritative for
// itinerary date recomputation.
type Settings struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	Season    Season    `json:"season"`
	BudgetJPY int       `json:"budgetJPY,omitempty"`
}

// Accommodation records where the traveler sleeps on a given day.
type Accommodation struct {
	Name    string `json:"name"`
	CheckIn string `json:"checkIn,omitempty"`
}

// PlanSnapshot holds the schedule of a non-active plan variant.
type PlanSnapshot struct {
	Title  string  `json:"title"`
	Desc   string  `json:"desc,omitempty"`
	Events []Event `json:"events"`
}

// Day is one calendar day of the itinerary. Num and Date are derived from
// the trip start date and the day's position; itinerary.Recompute refreshes
// them after any structural change. The visible Title, Desc, and Events
// always belong to ActivePlan; other variants live in SubPlans.
type Day struct {
	ID   string    `json:"id"`
	Num  int       `json:"num"`
	Date time.Time `json:"date"`

	Title       string         `json:"title"`
	Desc        string         `json:"desc,omitempty"`
	Location    string         `json:"location,omitempty"`
	WeatherIcon string         `json:"weatherIcon,omitempty"`
	Temp        string         `json:"temp,omitempty"`
	Tips        string         `json:"tips,omitempty"`
	Accom       *Accommodation `json:"accommodation,omitempty"`

	Pass             bool   `json:"pass,omitempty"`
	PassName         string `json:"passName,omitempty"`
	PassColor        string `json:"passColor,omitempty"`
	PassDurationDays int    `json:"passDurationDays,omitempty"`

	Events []Event `json:"events"`

	ActivePlan PlanID                  `json:"activePlanId,omitempty"`
	SubPlans   map[PlanID]PlanSnapshot `json:"subPlans,omitempty"`
}

// EventCategory classifies an itinerary event.
type EventCategory string

const (
	CategorySightseeing EventCategory = "sightseeing"
	CategoryFood        EventCategory = "food"
	CategoryTransport   EventCategory = "transport"
	CategoryShopping    EventCategory = "shopping"
	CategoryActivity    EventCategory = "activity"
	CategoryFlight      EventCategory = "flight"
	CategoryHotel       EventCategory = "hotel"
)

// AllEventCategories returns the supported event categories.
func AllEventCategories() []EventCategory {
	return []EventCategory{
		CategorySightseeing,
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryActivity,
		CategoryFlight,
		CategoryHotel,
	}
}

// ParseEventCategory converts a string to an EventCategory. Empty input
// defaults to sightseeing.
func ParseEventCategory(raw string) (EventCategory, error) {
	c := EventCategory(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CategorySightseeing, nil
	}
	for _, candidate := range AllEventCategories() {
		if candidate == c {
			return candidate, nil
		}
	}
	return CategorySightseeing, fmt.Errorf("trip: unknown event category %q", raw)
}

// Event is one timed item on a day's schedule. Events keep insertion order
// and are only sorted by time on explicit save.
type Event struct {
	ID        string        `json:"id,omitempty"`
	Time      string        `json:"time"`
	Title     string        `json:"title"`
	Desc      string        `json:"desc,omitempty"`
	Transport string        `json:"transport,omitempty"`
	Highlight bool          `json:"highlight,omitempty"`
	Category  EventCategory `json:"category,omitempty"`
	MapQuery  string        `json:"mapQuery,omitempty"`

	TicketURLs   []string `json:"ticketUrls,omitempty"`
	TicketImages []string `json:"ticketImages,omitempty"`
}

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	ExpenseFood      ExpenseCategory = "food"
	ExpenseShopping  ExpenseCategory = "shopping"
	ExpenseTransport ExpenseCategory = "transport"
	ExpenseHotel     ExpenseCategory = "hotel"
	ExpenseOther     ExpenseCategory = "other"
)

// AllExpenseCategories returns the supported expense categories.
func AllExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseFood,
		ExpenseShopping,
		ExpenseTransport,
		ExpenseHotel,
		ExpenseOther,
	}
}

// ParseExpenseCategory converts a string to an ExpenseCategory. Empty input
// defaults to other.
func ParseExpenseCategory(raw string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return ExpenseOther, nil
	}
	for _, candidate := range AllExpenseCategories() {
		if candidate == c {
			return candidate, nil
		}
	}
	return ExpenseOther, fmt.Errorf("trip: unknown expense category %q", raw)
}

// Expense is a single ledger entry. The collection is append/delete only.
type Expense struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Title     string          `json:"title"`
	AmountJPY int             `json:"amountJPY"`
	Category  ExpenseCategory `json:"category"`
}

// ChecklistItem is one packing item.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// ChecklistCategory groups packing items. Categories and items are both
// independently reorderable.
type ChecklistCategory struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Items       []ChecklistItem `json:"items"`
	IsCollapsed bool            `json:"isCollapsed,omitempty"`
}

// BundleVersion is the current backup format version. Bump it whenever a
// nested shape changes in a way Import cannot absorb transparently.
const BundleVersion = 2

// Bundle is the complete exportable snapshot of one trip's four data slices.
type Bundle struct {
	Settings  Settings            `json:"tripSettings"`
	Itinerary []Day               `json:"itineraryData"`
	Expenses  []Expense           `json:"expenses"`
	Checklist []ChecklistCategory `json:"checklist"`
	Version   int                 `json:"version"`
	Timestamp string              `json:"timestamp"`
}
