// Package draft is the boundary to the generative itinerary-drafting
// service. The core treats the generator as an opaque function and
// validates its output shape before anything is merged.
package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// ErrBadDraft is returned when the generator output does not line up with
// the trip it was asked to draft.
var ErrBadDraft = errors.New("draft: generated itinerary has the wrong shape")

// Request describes one drafting call. An empty DayID asks for a full
// itinerary covering every existing day; a set DayID asks for exactly that
// day.
type Request struct {
	TripName     string
	StartDate    time.Time
	ExistingDays []trip.Day
	Prompt       string
	DayID        string
	TargetPlan   trip.PlanID
}

// Generator produces day-shaped records for a request.
type Generator interface {
	Draft(ctx context.Context, req Request) ([]trip.Day, error)
}

// ValidateDays checks generator output against the request before any
// merge. Full drafts must cover exactly the current day count in order;
// single-day drafts must contain exactly one record for that day.
func ValidateDays(req Request, days []trip.Day) error {
	if req.DayID != "" {
		if len(days) != 1 {
			return fmt.Errorf("%w: expected 1 day, got %d", ErrBadDraft, len(days))
		}
		if days[0].ID != "" && days[0].ID != req.DayID {
			return fmt.Errorf("%w: drafted day %q does not match requested %q", ErrBadDraft, days[0].ID, req.DayID)
		}
		return nil
	}

	if len(days) != len(req.ExistingDays) {
		return fmt.Errorf("%w: expected %d days, got %d", ErrBadDraft, len(req.ExistingDays), len(days))
	}
	for i, d := range days {
		if d.Num != 0 && d.Num != i+1 {
			return fmt.Errorf("%w: day at position %d labeled %d", ErrBadDraft, i, d.Num)
		}
	}
	return nil
}

// Patches converts validated generator output into partial updates against
// the existing sequence: by position for full drafts, by id for single-day
// drafts. Only drafted content fields are patched; derived fields and plan
// snapshots stay untouched.
func Patches(req Request, days []trip.Day) ([]itinerary.Patch, error) {
	if err := ValidateDays(req, days); err != nil {
		return nil, err
	}

	if req.DayID != "" {
		return []itinerary.Patch{contentPatch(req.DayID, days[0])}, nil
	}

	patches := make([]itinerary.Patch, 0, len(days))
	for i, d := range days {
		patches = append(patches, contentPatch(req.ExistingDays[i].ID, d))
	}
	return patches, nil
}

func contentPatch(id string, d trip.Day) itinerary.Patch {
	p := itinerary.Patch{
		ID:     id,
		Title:  itinerary.String(d.Title),
		Events: itinerary.EventList(d.Events),
	}
	if d.Desc != "" {
		p.Desc = itinerary.String(d.Desc)
	}
	if d.Location != "" {
		p.Location = itinerary.String(d.Location)
	}
	if d.Tips != "" {
		p.Tips = itinerary.String(d.Tips)
	}
	return p
}
