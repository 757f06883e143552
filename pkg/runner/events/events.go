// Package events implements manual event editing on a day's schedule. Both
// verbs go through the same partial-update path as template and drafted
// content, so derived fields and plan snapshots stay untouched.
package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// ErrEventNotFound is returned when no event matches the requested id.
var ErrEventNotFound = errors.New("events: event not found")

// Add appends one event to a day's schedule. An empty event id gets a
// fresh one assigned.
type Add struct {
	Registry *registry.Registry
	KV       store.KV

	Trip  string
	Day   string
	Event trip.Event
}

func (a *Add) Do(ctx context.Context) error {
	if a.Registry == nil {
		return errors.New("can not add event, no registry")
	}
	found, err := a.Registry.Find(a.Trip)
	if err != nil {
		return err
	}
	it := itinerary.New(a.KV, found.ID)
	days, err := it.Load()
	if err != nil {
		return err
	}
	day := dayByID(days, a.Day)
	if day == nil {
		return itinerary.ErrDayNotFound
	}

	event := a.Event
	if event.ID == "" {
		event.ID = itinerary.NewID()
	}
	events := append(trip.CloneEvents(day.Events), event)
	if _, _, err := it.ApplyPatches(itinerary.Patch{
		ID:     day.ID,
		Events: itinerary.EventList(events),
	}); err != nil {
		return err
	}
	fmt.Printf("added %s (%s) to %s\n", event.Title, event.ID, day.Label())
	return nil
}

// Remove deletes one event from a day's schedule.
type Remove struct {
	Registry *registry.Registry
	KV       store.KV

	Trip  string
	Day   string
	Event string
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Registry == nil {
		return errors.New("can not remove event, no registry")
	}
	found, err := r.Registry.Find(r.Trip)
	if err != nil {
		return err
	}
	it := itinerary.New(r.KV, found.ID)
	days, err := it.Load()
	if err != nil {
		return err
	}
	day := dayByID(days, r.Day)
	if day == nil {
		return itinerary.ErrDayNotFound
	}

	kept := make([]trip.Event, 0, len(day.Events))
	title := ""
	removed := false
	for _, e := range day.Events {
		if e.ID == r.Event {
			title = e.Title
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return fmt.Errorf("%w: %s on %s", ErrEventNotFound, r.Event, day.Label())
	}
	if _, _, err := it.ApplyPatches(itinerary.Patch{
		ID:     day.ID,
		Events: itinerary.EventList(kept),
	}); err != nil {
		return err
	}
	fmt.Printf("removed %s from %s\n", title, day.Label())
	return nil
}

func dayByID(days []trip.Day, id string) *trip.Day {
	for i := range days {
		if days[i].ID == id {
			return &days[i]
		}
	}
	return nil
}
