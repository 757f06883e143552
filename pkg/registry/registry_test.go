package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func testRegistry(kv store.KV) *Registry {
	r := New(kv)
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

func TestCreateSeedsSlicesAndSummary(t *testing.T) {
	kv := store.NewMemory()
	r := testRegistry(kv)
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	id, err := r.Create("Golden Week", start, 3, trip.Spring)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	summaries, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(summaries))
	}
	s := summaries[0]
	if s.ID != id || s.Name != "Golden Week" || s.Days != 3 || s.Season != trip.Spring {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.CoverImage == "" {
		t.Fatal("expected a cover image assigned")
	}

	var days []trip.Day
	if err := store.ReadJSON(kv, store.TripKey(id, store.SliceItinerary), &days); err != nil {
		t.Fatalf("read itinerary: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i, d := range days {
		if d.Num != i+1 {
			t.Fatalf("day %d not recomputed: num=%d", i, d.Num)
		}
		if want := start.AddDate(0, 0, i); !d.Date.Equal(want) {
			t.Fatalf("day %d date %v, want %v", i, d.Date, want)
		}
	}
	for _, slice := range []string{store.SliceSettings, store.SliceExpenses, store.SliceChecklist} {
		if !kv.Has(store.TripKey(id, slice)) {
			t.Fatalf("slice %s not written", slice)
		}
	}
}

func TestReorderMovesActiveToOver(t *testing.T) {
	kv := store.NewMemory()
	r := testRegistry(kv)
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for _, name := range []string{"A", "B", "C", "D"} {
		id, err := r.Create(name, start, 1, trip.Summer)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, id)
	}

	// Move C to where B is: [A,B,C,D] -> [A,C,B,D].
	if err := r.Reorder(ids[2], ids[1]); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	summaries, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for _, s := range summaries {
		got = append(got, s.Name)
	}
	want := []string{"A", "C", "B", "D"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestDeleteCascadesSlices(t *testing.T) {
	kv := store.NewMemory()
	r := testRegistry(kv)

	id, err := r.Create("Doomed", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 2, trip.Winter)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := r.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	summaries, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty registry, got %d", len(summaries))
	}
	for _, slice := range store.TripSlices() {
		if kv.Has(store.TripKey(id, slice)) {
			t.Fatalf("slice %s survived deletion", slice)
		}
	}

	if err := r.Delete(id); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestUpdateSettingsWritesBothCopies(t *testing.T) {
	kv := store.NewMemory()
	r := testRegistry(kv)

	id, err := r.Create("Before", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 1, trip.Spring)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	after := trip.Settings{
		Name:      "After",
		StartDate: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		Season:    trip.Autumn,
		BudgetJPY: 150000,
	}
	if err := r.UpdateSettings(id, after); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	settings, err := r.Settings(id)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.Name != "After" || settings.BudgetJPY != 150000 {
		t.Fatalf("settings slice not updated: %+v", settings)
	}

	summaries, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	s := summaries[0]
	if s.Name != "After" || s.Season != trip.Autumn || !s.StartDate.Equal(after.StartDate) {
		t.Fatalf("summary copy drifted: %+v", s)
	}
}

func TestListHealsBrokenCovers(t *testing.T) {
	kv := store.NewMemory()
	r := testRegistry(kv)

	id, err := r.Create("Trip", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 1, trip.Summer)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	broken := "https://source.unsplash.com/random/800x600"
	if err := r.PatchMeta(id, MetaPatch{CoverImage: &broken}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	summaries, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if summaries[0].CoverImage == broken || summaries[0].CoverImage == "" {
		t.Fatalf("cover not repaired: %q", summaries[0].CoverImage)
	}

	// A healthy catalog is not rewritten.
	raw, err := kv.Read(store.KeyTrips)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := r.List(); err != nil {
		t.Fatalf("second list: %v", err)
	}
	raw2, err := kv.Read(store.KeyTrips)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != string(raw2) {
		t.Fatal("clean list pass must not rewrite the catalog")
	}
}

func TestSetDayCountFollowsItinerary(t *testing.T) {
	kv := store.NewMemory()
	r := testRegistry(kv)

	id, err := r.Create("Trip", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 2, trip.Spring)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.SetDayCount(id, 5); err != nil {
		t.Fatalf("set day count: %v", err)
	}
	summaries, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if summaries[0].Days != 5 {
		t.Fatalf("expected 5 days, got %d", summaries[0].Days)
	}
}
