// Package tickets implements the ticket-image attach verb.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chobits1012/japantriphelper/pkg/backup"
	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/ticket"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// Attach bounds and encodes an image file and stores it on one event.
// The attach is refused when it would push the bundle past the remote
// document ceiling.
type Attach struct {
	Registry *registry.Registry
	KV       store.KV

	Trip  string
	Day   string
	Event string
	Path  string
}

func (a *Attach) Do(ctx context.Context) error {
	if a.Registry == nil {
		return errors.New("can not attach, no registry")
	}
	found, err := a.Registry.Find(a.Trip)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(a.Path)
	if err != nil {
		return fmt.Errorf("can not read image: %w", err)
	}
	encoded, err := ticket.Encode(raw)
	if err != nil {
		return err
	}

	b, err := backup.Export(a.KV, found.ID, found.LastAccessed)
	if err != nil {
		return err
	}
	warn, remaining := ticket.CheckBudget(b, len(encoded))
	if remaining == 0 {
		return fmt.Errorf("ticket image would exceed the remote document limit")
	}
	if warn {
		fmt.Printf("warning: ticket images are close to the remote document limit (%d bytes left)\n", remaining)
	}

	it := itinerary.New(a.KV, found.ID)
	days, err := it.Load()
	if err != nil {
		return err
	}
	day, event := findEvent(days, a.Day, a.Event)
	if day == nil {
		return itinerary.ErrDayNotFound
	}
	if event == nil {
		return fmt.Errorf("event %s not found on day %s", a.Event, a.Day)
	}
	event.TicketImages = append(event.TicketImages, encoded)

	if _, _, err := it.ApplyPatches(itinerary.Patch{
		ID:     day.ID,
		Events: itinerary.EventList(day.Events),
	}); err != nil {
		return err
	}
	fmt.Printf("attached %s to %s (%d bytes encoded)\n", a.Path, event.Title, len(encoded))
	return nil
}

func findEvent(days []trip.Day, dayID, eventID string) (*trip.Day, *trip.Event) {
	for i := range days {
		if days[i].ID != dayID {
			continue
		}
		for j := range days[i].Events {
			if days[i].Events[j].ID == eventID {
				return &days[i], &days[i].Events[j]
			}
		}
		return &days[i], nil
	}
	return nil, nil
}
