package registry

import (
	"errors"

	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// Migrate runs the one-time pass that moves legacy single-trip data into
// the multi-trip namespace, or seeds the sample trip when the install is
// brand new. A gate flag makes re-runs no-ops, so an interrupted first run
// cannot duplicate trips.
func (r *Registry) Migrate() error {
	if r.KV.Has(store.KeyMigration) {
		return nil
	}

	migrated, err := r.migrateLegacy()
	if err != nil {
		return err
	}

	if !migrated {
		summaries, err := r.load()
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			if _, err := r.createSeeded(templateBundle(r.Now())); err != nil {
				return err
			}
		}
	}

	return r.KV.Write(store.KeyMigration, []byte("1"))
}

// migrateLegacy synthesizes one trip from the pre-registry key set and
// prepends it to the catalog. Returns true when legacy data was found.
func (r *Registry) migrateLegacy() (bool, error) {
	if !r.KV.Has(store.LegacySettings) && !r.KV.Has(store.LegacyItinerary) {
		return false, nil
	}

	var settings trip.Settings
	if err := store.ReadJSON(r.KV, store.LegacySettings, &settings); err != nil && !errors.Is(err, store.ErrNotFound) {
		return false, err
	}
	if settings.Name == "" {
		settings.Name = "My Trip"
	}
	if settings.Season == "" {
		settings.Season = trip.Spring
	}

	var days []trip.Day
	if err := store.ReadJSON(r.KV, store.LegacyItinerary, &days); err != nil && !errors.Is(err, store.ErrNotFound) {
		return false, err
	}
	var expenses []trip.Expense
	if err := store.ReadJSON(r.KV, store.LegacyExpenses, &expenses); err != nil && !errors.Is(err, store.ErrNotFound) {
		return false, err
	}
	var checklist []trip.ChecklistCategory
	if err := store.ReadJSON(r.KV, store.LegacyChecklist, &checklist); err != nil && !errors.Is(err, store.ErrNotFound) {
		return false, err
	}
	if expenses == nil {
		expenses = []trip.Expense{}
	}
	if checklist == nil {
		checklist = []trip.ChecklistCategory{}
	}
	if len(days) == 0 {
		days = []trip.Day{{ID: r.newID(), Title: "New Day", Events: []trip.Event{}}}
	}

	id := r.newID()
	if err := r.writeSlices(id, settings, days, expenses, checklist); err != nil {
		return false, err
	}

	summaries, err := r.load()
	if err != nil {
		return false, err
	}
	migrated := trip.Summary{
		ID:           id,
		Name:         settings.Name,
		StartDate:    settings.StartDate,
		Season:       settings.Season,
		Days:         len(days),
		CoverImage:   r.pickCover(settings.Season),
		LastAccessed: r.Now(),
	}
	summaries = append([]trip.Summary{migrated}, summaries...)
	if err := r.save(summaries); err != nil {
		return false, err
	}
	return true, nil
}
