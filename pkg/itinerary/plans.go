package itinerary

import (
	"fmt"
	"regexp"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// SwitchPlan makes target the day's active plan. The outgoing plan's
// visible events, title, and desc are snapshotted into SubPlans; the
// incoming plan's snapshot is loaded if one exists, otherwise the plan is
// seeded with the day's current headline and an empty schedule. A no-op if
// target is already active.
func SwitchPlan(d *trip.Day, target trip.PlanID) bool {
	current := d.Active()
	if target == current {
		return false
	}

	if d.SubPlans == nil {
		d.SubPlans = make(map[trip.PlanID]trip.PlanSnapshot)
	}
	d.SubPlans[current] = trip.PlanSnapshot{
		Title:  d.Title,
		Desc:   d.Desc,
		Events: trip.CloneEvents(d.Events),
	}

	seed, ok := d.SubPlans[target]
	if !ok {
		// First visit: inherit the day's headline, start with an empty
		// schedule.
		seed = trip.PlanSnapshot{Title: d.Title, Desc: d.Desc, Events: []trip.Event{}}
	}
	delete(d.SubPlans, target)

	d.ActivePlan = target
	d.Title = seed.Title
	d.Desc = seed.Desc
	d.Events = trip.CloneEvents(seed.Events)
	if d.Events == nil {
		d.Events = []trip.Event{}
	}
	return true
}

var planSuffix = regexp.MustCompile(` \(Plan [A-C]\)$`)

// ClearPlan empties the active plan's schedule and resets its title to the
// day's base title annotated with the plan id, leaving the other plans'
// snapshots untouched. Desc and the rest of the day survive a clear.
func ClearPlan(d *trip.Day) {
	base := planSuffix.ReplaceAllString(d.Title, "")
	d.Title = fmt.Sprintf("%s (Plan %s)", base, d.Active())
	d.Events = []trip.Event{}
}

// SwitchPlanByID switches the plan on the day with the given id and
// persists the sequence. Callers holding an in-progress edit buffer apply
// SwitchPlan on the buffered day themselves and save later.
func (s *Store) SwitchPlanByID(dayID string, target trip.PlanID) ([]trip.Day, error) {
	days, err := s.Load()
	if err != nil {
		return nil, err
	}
	idx := indexOf(days, dayID)
	if idx < 0 {
		return days, ErrDayNotFound
	}
	if !SwitchPlan(&days[idx], target) {
		return days, nil
	}
	if err := s.Save(days); err != nil {
		return nil, err
	}
	return days, nil
}

// ClearPlanByID clears the active plan on the day with the given id and
// persists the sequence.
func (s *Store) ClearPlanByID(dayID string) ([]trip.Day, error) {
	days, err := s.Load()
	if err != nil {
		return nil, err
	}
	idx := indexOf(days, dayID)
	if idx < 0 {
		return days, ErrDayNotFound
	}
	ClearPlan(&days[idx])
	if err := s.Save(days); err != nil {
		return nil, err
	}
	return days, nil
}
