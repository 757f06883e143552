// Package days implements the day-level CLI verbs over one trip's
// itinerary.
package days

import (
	"context"
	"errors"
	"fmt"

	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/printers"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
	"github.com/chobits1012/japantriphelper/pkg/weather"
)

// open wires an itinerary store so day-count changes flow back into the
// trip's registry summary.
func open(kv store.KV, reg *registry.Registry, tripID string) *itinerary.Store {
	it := itinerary.New(kv, tripID)
	it.OnLengthChange = func(n int) error {
		return reg.SetDayCount(tripID, n)
	}
	return it
}

type Show struct {
	ShowID   bool
	Registry *registry.Registry
	KV       store.KV
	Trip     string
}

func (s *Show) Do(ctx context.Context) error {
	if s.Registry == nil {
		return errors.New("can not show, no registry")
	}
	found, err := s.Registry.Find(s.Trip)
	if err != nil {
		return err
	}
	if err := s.Registry.Touch(found.ID); err != nil {
		return err
	}
	days, err := itinerary.New(s.KV, found.ID).Load()
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: s.ShowID}
	pp.NewLine()
	pp.Title(found.Name)
	pp.NewLine()
	pp.Days(days...)
	return nil
}

type Add struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
}

func (a *Add) Do(ctx context.Context) error {
	found, err := a.Registry.Find(a.Trip)
	if err != nil {
		return err
	}
	settings, err := a.Registry.Settings(found.ID)
	if err != nil {
		return err
	}
	days, err := open(a.KV, a.Registry, found.ID).Append(settings.StartDate)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Days(days...)
	return nil
}

type Remove struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Day      string
}

func (r *Remove) Do(ctx context.Context) error {
	found, err := r.Registry.Find(r.Trip)
	if err != nil {
		return err
	}
	settings, err := r.Registry.Settings(found.ID)
	if err != nil {
		return err
	}
	days, err := open(r.KV, r.Registry, found.ID).Remove(r.Day, settings.StartDate)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Days(days...)
	return nil
}

type Reorder struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Active   string
	Over     string
}

func (r *Reorder) Do(ctx context.Context) error {
	found, err := r.Registry.Find(r.Trip)
	if err != nil {
		return err
	}
	settings, err := r.Registry.Settings(found.ID)
	if err != nil {
		return err
	}
	days, err := itinerary.New(r.KV, found.ID).Reorder(r.Active, r.Over, settings.StartDate)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Days(days...)
	return nil
}

// Set applies a partial update to one day. Unset fields are untouched.
type Set struct {
	Registry *registry.Registry
	KV       store.KV
	Trip     string
	Patch    itinerary.Patch
}

func (s *Set) Do(ctx context.Context) error {
	found, err := s.Registry.Find(s.Trip)
	if err != nil {
		return err
	}
	days, applied, err := itinerary.New(s.KV, found.ID).ApplyPatches(s.Patch)
	if err != nil {
		return err
	}
	if applied == 0 {
		return itinerary.ErrDayNotFound
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Days(days...)
	return nil
}

// Weather fetches the forecast for one day's location and stores the icon
// and temperature on the day. Lookup failure leaves the day unchanged.
type Weather struct {
	Registry *registry.Registry
	KV       store.KV
	Client   *weather.Client
	Trip     string
	Day      string
}

func (w *Weather) Do(ctx context.Context) error {
	found, err := w.Registry.Find(w.Trip)
	if err != nil {
		return err
	}
	it := itinerary.New(w.KV, found.ID)
	days, err := it.Load()
	if err != nil {
		return err
	}

	var day *trip.Day
	for i := range days {
		if days[i].ID == w.Day {
			day = &days[i]
		}
	}
	if day == nil {
		return itinerary.ErrDayNotFound
	}
	if day.Location == "" {
		return fmt.Errorf("day %s has no location to look up", w.Day)
	}

	client := w.Client
	if client == nil {
		client = &weather.Client{}
	}
	report, err := client.Lookup(ctx, day.Location)
	if err != nil {
		return fmt.Errorf("weather lookup failed, day left unchanged: %w", err)
	}

	_, _, err = it.ApplyPatches(itinerary.Patch{
		ID:          day.ID,
		WeatherIcon: itinerary.String(weather.Icon(report.Current.Code)),
		Temp:        itinerary.String(fmt.Sprintf("%.0f°C", report.Current.Temp)),
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s %s %.0f°C\n", weather.Icon(report.Current.Code), report.Location, report.Current.Temp)
	for _, f := range report.Forecast {
		fmt.Printf("  %s %s %.0f/%.0f\n", f.Date, weather.Icon(f.Code), f.Max, f.Min)
	}
	return nil
}
