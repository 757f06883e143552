package registry

import (
	"fmt"
	"strings"

	"github.com/chobits1012/japantriphelper/pkg/backup"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// Find resolves a trip by id, exact name, or unique name prefix, in that
// order. Matching is case-insensitive for names.
func (r *Registry) Find(q string) (trip.Summary, error) {
	summaries, err := r.load()
	if err != nil {
		return trip.Summary{}, err
	}

	for _, s := range summaries {
		if s.ID == q {
			return s, nil
		}
	}

	lower := strings.ToLower(strings.TrimSpace(q))
	for _, s := range summaries {
		if strings.ToLower(s.Name) == lower {
			return s, nil
		}
	}

	var matches []trip.Summary
	for _, s := range summaries {
		if strings.HasPrefix(strings.ToLower(s.Name), lower) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return trip.Summary{}, fmt.Errorf("%w: %q", ErrTripNotFound, q)
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Name)
		}
		return trip.Summary{}, fmt.Errorf("registry: %q is ambiguous, matches %s", q, strings.Join(names, ", "))
	}
}

// ImportBundle creates a new trip from a backup bundle. Day, event, and
// checklist ids are regenerated so imports never collide with existing
// trips.
func (r *Registry) ImportBundle(b trip.Bundle) (string, error) {
	return r.createSeeded(b)
}

// RestoreBundle overwrites an existing trip's data slices in place with the
// bundle's contents, then brings the duplicated summary fields and day
// count back in line. The trip keeps its id and catalog position.
func (r *Registry) RestoreBundle(id string, b trip.Bundle) error {
	summaries, err := r.load()
	if err != nil {
		return err
	}
	if indexOf(summaries, id) < 0 {
		return fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	if err := backup.Import(r.KV, id, b); err != nil {
		return err
	}
	if err := r.UpdateSettings(id, b.Settings); err != nil {
		return err
	}
	return r.SetDayCount(id, len(b.Itinerary))
}
