// Package itinerary owns the per-trip ordered day sequence: day lifecycle,
// derived date recomputation, partial updates, and the alternate-plan merge
// engine.
package itinerary

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// ErrLastDay is returned when removing the only remaining day of a trip.
var ErrLastDay = errors.New("itinerary: a trip must keep at least one day")

// ErrDayNotFound is returned when no day matches the requested id.
var ErrDayNotFound = errors.New("itinerary: day not found")

// Store reads and writes one trip's day sequence. OnLengthChange, when set,
// is called with the new day count after any change of sequence length so
// the registry summary can follow.
type Store struct {
	KV             store.KV
	TripID         string
	OnLengthChange func(n int) error

	// NewID generates day ids; defaults to uuid without dashes.
	NewID func() string
}

// New creates a Store for the given trip.
func New(kv store.KV, tripID string) *Store {
	return &Store{KV: kv, TripID: tripID, NewID: NewID}
}

// NewID returns a fresh dashless id usable as a storage key segment.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *Store) key() string {
	return store.TripKey(s.TripID, store.SliceItinerary)
}

// Load reads the day sequence. A missing slice reads as empty.
func (s *Store) Load() ([]trip.Day, error) {
	var days []trip.Day
	if err := store.ReadJSON(s.KV, s.key(), &days); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []trip.Day{}, nil
		}
		return nil, err
	}
	return days, nil
}

// Save persists the day sequence as-is.
func (s *Store) Save(days []trip.Day) error {
	return store.WriteJSON(s.KV, s.key(), days)
}

func (s *Store) saveWithLength(days []trip.Day) error {
	if err := s.Save(days); err != nil {
		return err
	}
	if s.OnLengthChange != nil {
		return s.OnLengthChange(len(days))
	}
	return nil
}

// Append adds a placeholder day at the end, recomputes derived fields from
// start, persists, and reports the new length upward.
func (s *Store) Append(start time.Time) ([]trip.Day, error) {
	days, err := s.Load()
	if err != nil {
		return nil, err
	}
	id := s.NewID
	if id == nil {
		id = NewID
	}
	days = append(days, trip.Day{
		ID:     id(),
		Title:  "New Day",
		Events: []trip.Event{},
	})
	Recompute(days, start)
	if err := s.saveWithLength(days); err != nil {
		return nil, err
	}
	return days, nil
}

// Remove deletes the day with the given id and recomputes the rest. The last
// remaining day cannot be removed; ErrLastDay is returned instead and the
// sequence is left untouched.
func (s *Store) Remove(id string, start time.Time) ([]trip.Day, error) {
	days, err := s.Load()
	if err != nil {
		return nil, err
	}
	if len(days) <= 1 {
		return days, ErrLastDay
	}
	idx := indexOf(days, id)
	if idx < 0 {
		return days, ErrDayNotFound
	}
	days = append(days[:idx], days[idx+1:]...)
	Recompute(days, start)
	if err := s.saveWithLength(days); err != nil {
		return nil, err
	}
	return days, nil
}

// Reorder moves the day activeID to the position currently held by overID,
// keeping all other days in relative order, then recomputes every day's
// derived fields.
func (s *Store) Reorder(activeID, overID string, start time.Time) ([]trip.Day, error) {
	days, err := s.Load()
	if err != nil {
		return nil, err
	}
	moved, ok := moveByID(days, activeID, overID)
	if !ok {
		return days, ErrDayNotFound
	}
	Recompute(moved, start)
	if err := s.Save(moved); err != nil {
		return nil, err
	}
	return moved, nil
}

// Recompute refreshes the derived fields of every day as a pure function of
// the trip start date and each day's position. It must run over the whole
// sequence after any structural change; positions may have shifted for every
// record.
func Recompute(days []trip.Day, start time.Time) {
	for i := range days {
		days[i].Num = i + 1
		days[i].Date = start.AddDate(0, 0, i)
	}
}

func indexOf(days []trip.Day, id string) int {
	for i := range days {
		if days[i].ID == id {
			return i
		}
	}
	return -1
}

// moveByID removes the active element and re-inserts it at the index the
// over element originally occupied.
func moveByID(days []trip.Day, activeID, overID string) ([]trip.Day, bool) {
	from := indexOf(days, activeID)
	to := indexOf(days, overID)
	if from < 0 || to < 0 {
		return days, false
	}
	if from == to {
		return days, true
	}
	rest := make([]trip.Day, 0, len(days)-1)
	rest = append(rest, days[:from]...)
	rest = append(rest, days[from+1:]...)
	moved := make([]trip.Day, 0, len(days))
	moved = append(moved, rest[:to]...)
	moved = append(moved, days[from])
	moved = append(moved, rest[to:]...)
	return moved, true
}
