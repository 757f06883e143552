package itinerary

import (
	"reflect"
	"testing"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func TestSwitchPlanRoundTrip(t *testing.T) {
	eventsA := []trip.Event{
		{Time: "09:00", Title: "Tsukiji market", Category: trip.CategoryFood},
		{Time: "14:00", Title: "teamLab", Category: trip.CategoryActivity},
	}
	d := trip.Day{
		ID:     "d1",
		Title:  "Tokyo day",
		Desc:   "Sunny plan",
		Events: trip.CloneEvents(eventsA),
	}

	// First visit to B: empty schedule, inherits the day's headline.
	if !SwitchPlan(&d, trip.PlanB) {
		t.Fatal("expected switch to apply")
	}
	if d.Active() != trip.PlanB {
		t.Fatalf("expected active plan B, got %s", d.Active())
	}
	if len(d.Events) != 0 {
		t.Fatalf("expected empty events on first visit, got %d", len(d.Events))
	}
	if d.Title != "Tokyo day" {
		t.Fatalf("expected inherited title, got %q", d.Title)
	}

	// Build out plan B, then switch back to A.
	eventsB := []trip.Event{{Time: "10:00", Title: "Museum", Category: trip.CategorySightseeing}}
	d.Events = trip.CloneEvents(eventsB)
	d.Title = "Rainy day"

	if !SwitchPlan(&d, trip.PlanA) {
		t.Fatal("expected switch back to apply")
	}
	if d.Title != "Tokyo day" || d.Desc != "Sunny plan" {
		t.Fatalf("plan A headline not restored: %q / %q", d.Title, d.Desc)
	}
	if !reflect.DeepEqual(d.Events, eventsA) {
		t.Fatalf("plan A events not restored: %+v", d.Events)
	}

	// And B again restores exactly what was left there.
	if !SwitchPlan(&d, trip.PlanB) {
		t.Fatal("expected switch to B to apply")
	}
	if d.Title != "Rainy day" {
		t.Fatalf("plan B title not restored: %q", d.Title)
	}
	if !reflect.DeepEqual(d.Events, eventsB) {
		t.Fatalf("plan B events not restored: %+v", d.Events)
	}
}

func TestSwitchPlanSameTargetIsNoOp(t *testing.T) {
	d := trip.Day{ID: "d1", Title: "A day", Events: []trip.Event{{Time: "09:00", Title: "x"}}}
	if SwitchPlan(&d, trip.PlanA) {
		t.Fatal("switching to the already-active plan must be a no-op")
	}
	if len(d.SubPlans) != 0 {
		t.Fatalf("no-op switch created snapshots: %v", d.SubPlans)
	}
}

func TestSwitchPlanRemovesIncomingSnapshot(t *testing.T) {
	d := trip.Day{
		ID:    "d1",
		Title: "A day",
		SubPlans: map[trip.PlanID]trip.PlanSnapshot{
			trip.PlanB: {Title: "B day", Events: []trip.Event{{Time: "10:00", Title: "x"}}},
		},
	}
	SwitchPlan(&d, trip.PlanB)

	if _, ok := d.SubPlans[trip.PlanB]; ok {
		t.Fatal("active plan must not keep a snapshot entry")
	}
	if _, ok := d.SubPlans[trip.PlanA]; !ok {
		t.Fatal("outgoing plan A must be snapshotted")
	}
}

func TestClearPlanAnnotatesTitle(t *testing.T) {
	d := trip.Day{
		ID:     "d1",
		Title:  "Osaka day",
		Desc:   "Castle and kushikatsu",
		Events: []trip.Event{{Time: "09:00", Title: "Castle"}},
		SubPlans: map[trip.PlanID]trip.PlanSnapshot{
			trip.PlanB: {Title: "Alt", Events: []trip.Event{{Time: "11:00", Title: "Aquarium"}}},
		},
	}
	ClearPlan(&d)

	if d.Title != "Osaka day (Plan A)" {
		t.Fatalf("unexpected cleared title %q", d.Title)
	}
	if len(d.Events) != 0 {
		t.Fatalf("expected empty events, got %d", len(d.Events))
	}
	if d.Desc != "Castle and kushikatsu" {
		t.Fatalf("clearing must only reset events and annotate the title, desc = %q", d.Desc)
	}
	if len(d.SubPlans[trip.PlanB].Events) != 1 {
		t.Fatal("clearing must not touch other plans' snapshots")
	}

	// Clearing twice does not stack annotations.
	ClearPlan(&d)
	if d.Title != "Osaka day (Plan A)" {
		t.Fatalf("annotation stacked: %q", d.Title)
	}
}

func TestPlanHasContentTreatsAbsentAndEmptyTheSame(t *testing.T) {
	d := trip.Day{
		ID:     "d1",
		Title:  "A day",
		Events: []trip.Event{{Time: "09:00", Title: "x"}},
		SubPlans: map[trip.PlanID]trip.PlanSnapshot{
			trip.PlanB: {Title: "empty", Events: []trip.Event{}},
		},
	}

	if !d.PlanHasContent(trip.PlanA) {
		t.Fatal("active plan with events must have content")
	}
	if d.PlanHasContent(trip.PlanB) {
		t.Fatal("empty snapshot must read as no content")
	}
	if d.PlanHasContent(trip.PlanC) {
		t.Fatal("absent snapshot must read as no content")
	}
}

func TestSwitchPlanByIDPersists(t *testing.T) {
	s := testStore(t, trip.Day{ID: "d1", Title: "A day", Events: []trip.Event{{Time: "09:00", Title: "x"}}})

	if _, err := s.SwitchPlanByID("d1", trip.PlanB); err != nil {
		t.Fatalf("switch: %v", err)
	}

	days, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if days[0].Active() != trip.PlanB {
		t.Fatalf("switch not persisted, active=%s", days[0].Active())
	}
	if len(days[0].SubPlans[trip.PlanA].Events) != 1 {
		t.Fatal("plan A snapshot not persisted")
	}
}
