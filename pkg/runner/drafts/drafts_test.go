package drafts

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/draft"
	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/registry"
	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func testRegistry(kv store.KV) *registry.Registry {
	r := registry.New(kv)
	r.Now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	r.Rand = rand.New(rand.NewSource(1))
	counter := 0
	r.NewID = func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}
	return r
}

type fakeGenerator struct {
	days []trip.Day
	req  draft.Request
}

func (f *fakeGenerator) Draft(ctx context.Context, req draft.Request) ([]trip.Day, error) {
	f.req = req
	return f.days, nil
}

func seedTrip(t *testing.T, kv store.KV, reg *registry.Registry) (string, string) {
	t.Helper()
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	tripID, err := reg.Create("Tokyo 2026", start, 1, trip.Spring)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	it := itinerary.New(kv, tripID)
	days, err := it.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	days[0].Title = "Sunny Tokyo"
	days[0].Events = []trip.Event{{ID: "e1", Time: "09:00", Title: "Tsukiji market"}}
	if err := it.Save(days); err != nil {
		t.Fatalf("save: %v", err)
	}
	return tripID, days[0].ID
}

func TestDraftIntoAlternatePlanSnapshotsActive(t *testing.T) {
	kv := store.NewMemory()
	reg := testRegistry(kv)
	tripID, dayID := seedTrip(t, kv, reg)

	gen := &fakeGenerator{days: []trip.Day{{
		ID:     dayID,
		Title:  "Rainy Tokyo",
		Events: []trip.Event{{Time: "10:00", Title: "Museum"}},
	}}}
	s := Draft{
		Registry:  reg,
		KV:        kv,
		Generator: gen,
		Trip:      "Tokyo 2026",
		Day:       dayID,
		Prompt:    "a rainy alternative",
		Plan:      trip.PlanB,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("draft: %v", err)
	}

	days, err := itinerary.New(kv, tripID).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := days[0]
	if d.Active() != trip.PlanB {
		t.Fatalf("expected plan B active after targeted draft, got %s", d.Active())
	}
	if d.Title != "Rainy Tokyo" || len(d.Events) != 1 || d.Events[0].Title != "Museum" {
		t.Fatalf("drafted content not on the visible plan: %q %+v", d.Title, d.Events)
	}
	snap, ok := d.SubPlans[trip.PlanA]
	if !ok {
		t.Fatal("plan A was not snapshotted before the draft landed")
	}
	if snap.Title != "Sunny Tokyo" || len(snap.Events) != 1 || snap.Events[0].Title != "Tsukiji market" {
		t.Fatalf("plan A snapshot lost content: %q %+v", snap.Title, snap.Events)
	}
	// The generator must see the plan it is drafting for, not the plan
	// that was active when the command started.
	if len(gen.req.ExistingDays) != 1 || gen.req.ExistingDays[0].Active() != trip.PlanB {
		t.Fatalf("generator saw pre-switch days: %+v", gen.req.ExistingDays)
	}
}

func TestDraftWithoutPlanStaysOnActive(t *testing.T) {
	kv := store.NewMemory()
	reg := testRegistry(kv)
	tripID, dayID := seedTrip(t, kv, reg)

	gen := &fakeGenerator{days: []trip.Day{{
		ID:     dayID,
		Title:  "Revised Tokyo",
		Events: []trip.Event{{Time: "11:00", Title: "Shibuya"}},
	}}}
	s := Draft{
		Registry:  reg,
		KV:        kv,
		Generator: gen,
		Trip:      "Tokyo 2026",
		Day:       dayID,
		Prompt:    "tighten the morning",
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("draft: %v", err)
	}

	days, err := itinerary.New(kv, tripID).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := days[0]
	if d.Active() != trip.PlanA {
		t.Fatalf("draft without a plan must not switch plans, got %s", d.Active())
	}
	if d.Title != "Revised Tokyo" {
		t.Fatalf("draft not merged: %q", d.Title)
	}
	if len(d.SubPlans) != 0 {
		t.Fatalf("draft without a plan created snapshots: %v", d.SubPlans)
	}
}

func TestDraftUnknownDayFails(t *testing.T) {
	kv := store.NewMemory()
	reg := testRegistry(kv)
	seedTrip(t, kv, reg)

	s := Draft{
		Registry:  reg,
		KV:        kv,
		Generator: &fakeGenerator{},
		Trip:      "Tokyo 2026",
		Day:       "no-such-day",
		Prompt:    "anything",
		Plan:      trip.PlanC,
	}
	if err := s.Do(context.Background()); err == nil {
		t.Fatal("expected an error for an unknown day id")
	}
}
