package itinerary

import "github.com/chobits1012/japantriphelper/pkg/trip"

// Patch is a partial update to one day, matched by ID. Nil fields are left
// untouched; set fields overwrite. Derived fields and the plan-variant
// snapshots are never patched directly.
type Patch struct {
	ID string

	Title       *string
	Desc        *string
	Location    *string
	WeatherIcon *string
	Temp        *string
	Tips        *string
	Accom       *trip.Accommodation
	ClearAccom  bool

	Pass             *bool
	PassName         *string
	PassColor        *string
	PassDurationDays *int

	Events *[]trip.Event
}

// Apply merges each patch into the day sequence by id. Unmatched ids are
// ignored. Days are modified in place and the number of applied patches is
// returned.
func Apply(days []trip.Day, patches ...Patch) int {
	applied := 0
	for _, p := range patches {
		idx := indexOf(days, p.ID)
		if idx < 0 {
			continue
		}
		applyOne(&days[idx], p)
		applied++
	}
	return applied
}

func applyOne(d *trip.Day, p Patch) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Desc != nil {
		d.Desc = *p.Desc
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.WeatherIcon != nil {
		d.WeatherIcon = *p.WeatherIcon
	}
	if p.Temp != nil {
		d.Temp = *p.Temp
	}
	if p.Tips != nil {
		d.Tips = *p.Tips
	}
	if p.ClearAccom {
		d.Accom = nil
	} else if p.Accom != nil {
		accom := *p.Accom
		d.Accom = &accom
	}
	if p.Pass != nil {
		d.Pass = *p.Pass
	}
	if p.PassName != nil {
		d.PassName = *p.PassName
	}
	if p.PassColor != nil {
		d.PassColor = *p.PassColor
	}
	if p.PassDurationDays != nil {
		d.PassDurationDays = *p.PassDurationDays
	}
	if p.Events != nil {
		d.Events = trip.CloneEvents(*p.Events)
	}
}

// ApplyPatches loads the sequence, applies the patches, and persists the
// result. The updated sequence and the count of matched patches are
// returned.
func (s *Store) ApplyPatches(patches ...Patch) ([]trip.Day, int, error) {
	days, err := s.Load()
	if err != nil {
		return nil, 0, err
	}
	applied := Apply(days, patches...)
	if applied == 0 {
		return days, 0, nil
	}
	if err := s.Save(days); err != nil {
		return nil, applied, err
	}
	return days, applied, nil
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building patches.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i, for building patches.
func Int(i int) *int { return &i }

// EventList returns a pointer to events, for building patches.
func EventList(events []trip.Event) *[]trip.Event { return &events }
