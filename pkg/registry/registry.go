// Package registry maintains the ordered list of trip summaries and owns
// trip lifecycle: creation, duplication from the built-in template,
// deletion with cascading removal of the trip's data slices, reordering,
// and the one-time legacy migration.
package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// ErrTripNotFound is returned when no summary matches the requested id.
var ErrTripNotFound = errors.New("registry: trip not found")

// Registry owns the trip catalog. Now and Rand are injectable so tests can
// pin timestamps, ids, and cover-image choices.
type Registry struct {
	KV   store.KV
	Now  func() time.Time
	Rand *rand.Rand

	// NewID generates trip ids; defaults to uuid without dashes.
	NewID func() string
}

// New creates a Registry over the given storage capability.
func New(kv store.KV) *Registry {
	return &Registry{
		KV:    kv,
		Now:   time.Now,
		Rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		NewID: itinerary.NewID,
	}
}

func (r *Registry) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (r *Registry) load() ([]trip.Summary, error) {
	var summaries []trip.Summary
	if err := store.ReadJSON(r.KV, store.KeyTrips, &summaries); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []trip.Summary{}, nil
		}
		return nil, err
	}
	return summaries, nil
}

func (r *Registry) save(summaries []trip.Summary) error {
	return store.WriteJSON(r.KV, store.KeyTrips, summaries)
}

// List returns trip summaries in display order, after repairing any broken
// cover images. The repair writes back only when something actually changed.
func (r *Registry) List() ([]trip.Summary, error) {
	summaries, err := r.load()
	if err != nil {
		return nil, err
	}
	if r.healCovers(summaries) {
		if err := r.save(summaries); err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

// Create makes a new trip with dayCount placeholder days and empty expense
// and checklist slices, and appends its summary to the catalog.
func (r *Registry) Create(name string, start time.Time, dayCount int, season trip.Season) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("registry: trip name required")
	}
	if dayCount < 1 {
		dayCount = 1
	}

	id := r.newID()
	days := make([]trip.Day, dayCount)
	for i := range days {
		days[i] = trip.Day{ID: r.newID(), Title: "New Day", Events: []trip.Event{}}
	}
	itinerary.Recompute(days, start)

	settings := trip.Settings{Name: name, StartDate: start, Season: season}
	if err := r.writeSlices(id, settings, days, []trip.Expense{}, []trip.ChecklistCategory{}); err != nil {
		return "", err
	}

	summaries, err := r.load()
	if err != nil {
		return "", err
	}
	summaries = append(summaries, trip.Summary{
		ID:           id,
		Name:         name,
		StartDate:    start,
		Season:       season,
		Days:         dayCount,
		CoverImage:   r.pickCover(season),
		LastAccessed: r.Now(),
	})
	if err := r.save(summaries); err != nil {
		return "", err
	}
	return id, nil
}

// CreateFromTemplate clones the built-in sample itinerary with fresh ids.
func (r *Registry) CreateFromTemplate() (string, error) {
	return r.createSeeded(templateBundle(r.Now()))
}

func (r *Registry) createSeeded(b trip.Bundle) (string, error) {
	id := r.newID()
	for i := range b.Itinerary {
		b.Itinerary[i].ID = r.newID()
		for j := range b.Itinerary[i].Events {
			b.Itinerary[i].Events[j].ID = r.newID()
		}
	}
	for i := range b.Checklist {
		b.Checklist[i].ID = r.newID()
		for j := range b.Checklist[i].Items {
			b.Checklist[i].Items[j].ID = r.newID()
		}
	}
	itinerary.Recompute(b.Itinerary, b.Settings.StartDate)

	if err := r.writeSlices(id, b.Settings, b.Itinerary, b.Expenses, b.Checklist); err != nil {
		return "", err
	}

	summaries, err := r.load()
	if err != nil {
		return "", err
	}
	summaries = append(summaries, trip.Summary{
		ID:           id,
		Name:         b.Settings.Name,
		StartDate:    b.Settings.StartDate,
		Season:       b.Settings.Season,
		Days:         len(b.Itinerary),
		CoverImage:   r.pickCover(b.Settings.Season),
		LastAccessed: r.Now(),
	})
	if err := r.save(summaries); err != nil {
		return "", err
	}
	return id, nil
}

func (r *Registry) writeSlices(id string, settings trip.Settings, days []trip.Day, expenses []trip.Expense, checklist []trip.ChecklistCategory) error {
	if err := store.WriteJSON(r.KV, store.TripKey(id, store.SliceSettings), settings); err != nil {
		return err
	}
	if err := store.WriteJSON(r.KV, store.TripKey(id, store.SliceItinerary), days); err != nil {
		return err
	}
	if err := store.WriteJSON(r.KV, store.TripKey(id, store.SliceExpenses), expenses); err != nil {
		return err
	}
	return store.WriteJSON(r.KV, store.TripKey(id, store.SliceChecklist), checklist)
}

// Delete removes the trip's summary and cascades deletion of its four
// storage slices.
func (r *Registry) Delete(id string) error {
	summaries, err := r.load()
	if err != nil {
		return err
	}
	idx := indexOf(summaries, id)
	if idx < 0 {
		return ErrTripNotFound
	}
	summaries = append(summaries[:idx], summaries[idx+1:]...)
	if err := r.save(summaries); err != nil {
		return err
	}
	for _, slice := range store.TripSlices() {
		if err := r.KV.Erase(store.TripKey(id, slice)); err != nil {
			return err
		}
	}
	return nil
}

// MetaPatch is a shallow partial update to one summary. Nil fields are left
// untouched.
type MetaPatch struct {
	Name       *string
	StartDate  *time.Time
	Season     *trip.Season
	CoverImage *string
	Days       *int
}

// PatchMeta shallow-merges the patch into the matching summary.
func (r *Registry) PatchMeta(id string, p MetaPatch) error {
	summaries, err := r.load()
	if err != nil {
		return err
	}
	idx := indexOf(summaries, id)
	if idx < 0 {
		return ErrTripNotFound
	}
	s := &summaries[idx]
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.Season != nil {
		s.Season = *p.Season
	}
	if p.CoverImage != nil {
		s.CoverImage = *p.CoverImage
	}
	if p.Days != nil {
		s.Days = *p.Days
	}
	return r.save(summaries)
}

// Reorder moves the trip activeID to the position currently held by overID,
// keeping all other trips in relative order.
func (r *Registry) Reorder(activeID, overID string) error {
	summaries, err := r.load()
	if err != nil {
		return err
	}
	from := indexOf(summaries, activeID)
	to := indexOf(summaries, overID)
	if from < 0 || to < 0 {
		return ErrTripNotFound
	}
	if from == to {
		return nil
	}
	rest := make([]trip.Summary, 0, len(summaries)-1)
	rest = append(rest, summaries[:from]...)
	rest = append(rest, summaries[from+1:]...)
	moved := make([]trip.Summary, 0, len(summaries))
	moved = append(moved, rest[:to]...)
	moved = append(moved, summaries[from])
	moved = append(moved, rest[to:]...)
	return r.save(moved)
}

// SetDayCount is the explicit length callback from the itinerary store; the
// summary's day count follows the sequence length through it.
func (r *Registry) SetDayCount(id string, n int) error {
	return r.PatchMeta(id, MetaPatch{Days: &n})
}

// Touch records the trip as last accessed now.
func (r *Registry) Touch(id string) error {
	summaries, err := r.load()
	if err != nil {
		return err
	}
	idx := indexOf(summaries, id)
	if idx < 0 {
		return ErrTripNotFound
	}
	summaries[idx].LastAccessed = r.Now()
	return r.save(summaries)
}

// Settings reads the trip's settings slice.
func (r *Registry) Settings(id string) (trip.Settings, error) {
	var settings trip.Settings
	if err := store.ReadJSON(r.KV, store.TripKey(id, store.SliceSettings), &settings); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return trip.Settings{}, fmt.Errorf("%w: %s", ErrTripNotFound, id)
		}
		return trip.Settings{}, err
	}
	return settings, nil
}

// UpdateSettings writes the settings slice and the duplicated summary fields
// through one call site, so the two copies cannot drift.
func (r *Registry) UpdateSettings(id string, settings trip.Settings) error {
	if err := store.WriteJSON(r.KV, store.TripKey(id, store.SliceSettings), settings); err != nil {
		return err
	}
	return r.PatchMeta(id, MetaPatch{
		Name:      &settings.Name,
		StartDate: &settings.StartDate,
		Season:    &settings.Season,
	})
}

func indexOf(summaries []trip.Summary, id string) int {
	for i := range summaries {
		if summaries[i].ID == id {
			return i
		}
	}
	return -1
}
