// Package drafts implements the generative itinerary drafting verb.
package drafts

import (
	"context"
	"errors"

	"github.com/chobits1012/japantriphelper/pkg/draft"
	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/printers"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// Draft asks the generator for content and merges it into the itinerary
// through the same partial-update path as a manual edit. An empty Day
// drafts the whole trip; a set Day drafts only that day.
type Draft struct {
	Registry  *registry.Registry
	KV        store.KV
	Generator draft.Generator

	Trip   string
	Day    string
	Prompt string

	// Plan routes the drafted content into a specific plan slot. The
	// targeted days are switched there first, snapshotting whatever plan
	// was active. Empty drafts into each day's active plan.
	Plan trip.PlanID
}

func (d *Draft) Do(ctx context.Context) error {
	if d.Registry == nil {
		return errors.New("can not draft, no registry")
	}
	if d.Generator == nil {
		return errors.New("can not draft, no generator configured")
	}
	found, err := d.Registry.Find(d.Trip)
	if err != nil {
		return err
	}
	settings, err := d.Registry.Settings(found.ID)
	if err != nil {
		return err
	}
	it := itinerary.New(d.KV, found.ID)
	days, err := it.Load()
	if err != nil {
		return err
	}

	// Switch the targeted days onto the requested plan before drafting, so
	// the generator sees that plan's current content and the merge lands
	// there instead of clobbering the active plan.
	if d.Plan != "" {
		targeted := false
		switched := false
		for i := range days {
			if d.Day != "" && days[i].ID != d.Day {
				continue
			}
			targeted = true
			if itinerary.SwitchPlan(&days[i], d.Plan) {
				switched = true
			}
		}
		if !targeted {
			return itinerary.ErrDayNotFound
		}
		if switched {
			if err := it.Save(days); err != nil {
				return err
			}
		}
	}

	req := draft.Request{
		TripName:     settings.Name,
		StartDate:    settings.StartDate,
		ExistingDays: days,
		Prompt:       d.Prompt,
		DayID:        d.Day,
		TargetPlan:   d.Plan,
	}
	drafted, err := d.Generator.Draft(ctx, req)
	if err != nil {
		return err
	}
	patches, err := draft.Patches(req, drafted)
	if err != nil {
		return err
	}
	merged, _, err := it.ApplyPatches(patches...)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Days(merged...)
	return nil
}
