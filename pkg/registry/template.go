package registry

import (
	"time"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// templateBundle is the built-in sample trip cloned by CreateFromTemplate
// and seeded on first run when no data exists at all. Ids are assigned by
// the caller.
func templateBundle(now time.Time) trip.Bundle {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return trip.Bundle{
		Settings: trip.Settings{
			Name:      "Tokyo & Kyoto Sample",
			StartDate: start,
			Season:    trip.Spring,
			BudgetJPY: 200000,
		},
		Itinerary: []trip.Day{
			{
				Title:    "Arrival in Tokyo",
				Desc:     "Land at Haneda, check in, evening in Shinjuku.",
				Location: "Tokyo",
				Accom:    &trip.Accommodation{Name: "Shinjuku Granbell Hotel", CheckIn: "15:00"},
				Events: []trip.Event{
					{Time: "14:30", Title: "Arrive at Haneda Airport", Category: trip.CategoryFlight},
					{Time: "16:00", Title: "Hotel check-in", Category: trip.CategoryHotel},
					{Time: "18:30", Title: "Omoide Yokocho dinner", Category: trip.CategoryFood, Highlight: true},
				},
			},
			{
				Title:    "East Tokyo",
				Desc:     "Asakusa and the river side.",
				Location: "Tokyo",
				Tips:     "Get a Suica card at the station.",
				Events: []trip.Event{
					{Time: "09:00", Title: "Senso-ji Temple", Category: trip.CategorySightseeing, MapQuery: "Senso-ji"},
					{Time: "12:00", Title: "Tempura lunch", Category: trip.CategoryFood},
					{Time: "15:00", Title: "Tokyo Skytree", Category: trip.CategorySightseeing},
				},
			},
			{
				Title:            "Shinkansen to Kyoto",
				Desc:             "Ride west, first temples in the afternoon.",
				Location:         "Kyoto",
				Pass:             true,
				PassName:         "JR Pass",
				PassColor:        "#2e7d32",
				PassDurationDays: 7,
				Accom:            &trip.Accommodation{Name: "Kyoto Machiya Inn", CheckIn: "16:00"},
				Events: []trip.Event{
					{Time: "09:30", Title: "Nozomi to Kyoto", Category: trip.CategoryTransport, Transport: "Shinkansen"},
					{Time: "13:00", Title: "Nishiki Market", Category: trip.CategoryFood},
					{Time: "15:30", Title: "Kiyomizu-dera", Category: trip.CategorySightseeing, Highlight: true},
				},
			},
		},
		Expenses: []trip.Expense{},
		Checklist: []trip.ChecklistCategory{
			{
				Title: "Documents",
				Items: []trip.ChecklistItem{
					{Text: "Passport"},
					{Text: "JR Pass exchange order"},
					{Text: "Travel insurance"},
				},
			},
			{
				Title: "Electronics",
				Items: []trip.ChecklistItem{
					{Text: "Phone charger"},
					{Text: "Power bank"},
				},
			},
		},
		Version: trip.BundleVersion,
	}
}
