// Package trips implements the trip-level CLI verbs: listing, creating,
// renaming, reordering, and deleting trips.
package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/printers"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

type List struct {
	ShowID   bool
	Watch    bool
	Registry *registry.Registry
	Disk     *store.Disk
}

func (l *List) Do(ctx context.Context) error {
	if l.Registry == nil {
		return errors.New("can not list, no registry")
	}
	if err := l.print(); err != nil {
		return err
	}
	if !l.Watch {
		return nil
	}
	if l.Disk == nil {
		return errors.New("watch requires disk-backed storage")
	}

	events, err := l.Disk.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := l.print(); err != nil {
				return err
			}
		}
	}
}

func (l *List) print() error {
	summaries, err := l.Registry.List()
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID}
	pp.NewLine()
	pp.Trips(summaries...)
	return nil
}

type Add struct {
	Registry *registry.Registry

	Name   string
	Start  time.Time
	Days   int
	Season trip.Season
}

func (a *Add) Do(ctx context.Context) error {
	if a.Registry == nil {
		return errors.New("can not add, no registry")
	}
	id, err := a.Registry.Create(a.Name, a.Start, a.Days, a.Season)
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", id)
	return (&List{Registry: a.Registry}).print()
}

type Template struct {
	Registry *registry.Registry
}

func (t *Template) Do(ctx context.Context) error {
	if t.Registry == nil {
		return errors.New("can not add, no registry")
	}
	id, err := t.Registry.CreateFromTemplate()
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", id)
	return (&List{Registry: t.Registry}).print()
}

type Remove struct {
	Registry *registry.Registry
	Trip     string
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Registry == nil {
		return errors.New("can not remove, no registry")
	}
	s, err := r.Registry.Find(r.Trip)
	if err != nil {
		return err
	}
	if err := r.Registry.Delete(s.ID); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", s.Name)
	return (&List{Registry: r.Registry}).print()
}

// Set updates trip settings. Name, start date, and season flow through the
// registry so both persisted copies stay in step; a changed start date also
// recomputes every day's derived fields.
type Set struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string

	Name   *string
	Start  *time.Time
	Season *trip.Season
	Budget *int
}

func (s *Set) Do(ctx context.Context) error {
	if s.Registry == nil {
		return errors.New("can not set, no registry")
	}
	found, err := s.Registry.Find(s.Trip)
	if err != nil {
		return err
	}
	settings, err := s.Registry.Settings(found.ID)
	if err != nil {
		return err
	}

	startChanged := false
	if s.Name != nil {
		settings.Name = *s.Name
	}
	if s.Start != nil && !s.Start.Equal(settings.StartDate) {
		settings.StartDate = *s.Start
		startChanged = true
	}
	if s.Season != nil {
		settings.Season = *s.Season
	}
	if s.Budget != nil {
		settings.BudgetJPY = *s.Budget
	}

	if err := s.Registry.UpdateSettings(found.ID, settings); err != nil {
		return err
	}

	if startChanged {
		it := itinerary.New(s.KV, found.ID)
		days, err := it.Load()
		if err != nil {
			return err
		}
		itinerary.Recompute(days, settings.StartDate)
		if err := it.Save(days); err != nil {
			return err
		}
	}
	return (&List{Registry: s.Registry}).print()
}

type Reorder struct {
	Registry *registry.Registry
	Active   string
	Over     string
}

func (r *Reorder) Do(ctx context.Context) error {
	if r.Registry == nil {
		return errors.New("can not reorder, no registry")
	}
	active, err := r.Registry.Find(r.Active)
	if err != nil {
		return err
	}
	over, err := r.Registry.Find(r.Over)
	if err != nil {
		return err
	}
	if err := r.Registry.Reorder(active.ID, over.ID); err != nil {
		return err
	}
	return (&List{Registry: r.Registry}).print()
}
