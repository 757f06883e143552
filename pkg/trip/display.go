package trip

import (
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(layoutISO, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(v time.Time) string {
	return v.Format(layoutISO)
}

// Label renders the positional day label, "Day 1" for the first day.
func (d *Day) Label() string {
	return fmt.Sprintf("Day %d", d.Num)
}

// MMDD renders the derived date in the compact MM/DD display form.
func (d *Day) MMDD() string {
	if d.Date.IsZero() {
		return ""
	}
	return d.Date.Format("01/02")
}

// WeekdayShort renders the derived date's weekday as a short name, "Mon".
func (d *Day) WeekdayShort() string {
	if d.Date.IsZero() {
		return ""
	}
	return d.Date.Format("Mon")
}

// Active returns the id of the plan currently shown on the day. Days written
// before plan variants existed carry no ActivePlan and default to plan A.
func (d *Day) Active() PlanID {
	if d.ActivePlan == "" {
		return PlanA
	}
	return d.ActivePlan
}

// PlanHasContent reports whether the given plan holds any events. An absent
// snapshot and an empty one are equivalent; only events count as content.
func (d *Day) PlanHasContent(id PlanID) bool {
	if id == d.Active() {
		return len(d.Events) > 0
	}
	snap, ok := d.SubPlans[id]
	return ok && len(snap.Events) > 0
}

// Clone returns a deep copy of the day.
func (d *Day) Clone() *Day {
	cp := *d
	if d.Accom != nil {
		accom := *d.Accom
		cp.Accom = &accom
	}
	cp.Events = CloneEvents(d.Events)
	if d.SubPlans != nil {
		cp.SubPlans = make(map[PlanID]PlanSnapshot, len(d.SubPlans))
		for id, snap := range d.SubPlans {
			snap.Events = CloneEvents(snap.Events)
			cp.SubPlans[id] = snap
		}
	}
	return &cp
}

// CloneEvents deep-copies an event slice.
func CloneEvents(events []Event) []Event {
	if events == nil {
		return nil
	}
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = e
		out[i].TicketURLs = append([]string(nil), e.TicketURLs...)
		out[i].TicketImages = append([]string(nil), e.TicketImages...)
	}
	return out
}
