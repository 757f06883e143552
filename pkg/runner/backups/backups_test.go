package backups

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/backup"
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

func writeBackup(t *testing.T, name string, days int) string {
	t.Helper()
	b := trip.Bundle{
		Settings: trip.Settings{
			Name:      name,
			StartDate: time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
			Season:    trip.Autumn,
		},
		Itinerary: make([]trip.Day, days),
		Expenses:  []trip.Expense{},
		Checklist: []trip.ChecklistCategory{},
		Version:   trip.BundleVersion,
		Timestamp: "2026-11-01T00:00:00Z",
	}
	for i := range b.Itinerary {
		b.Itinerary[i] = trip.Day{
			ID:     fmt.Sprintf("bd%d", i+1),
			Title:  fmt.Sprintf("Kyoto day %d", i+1),
			Events: []trip.Event{},
		}
	}
	path := filepath.Join(t.TempDir(), backup.FileName(name))
	if err := backup.WriteFile(path, b); err != nil {
		t.Fatalf("write backup: %v", err)
	}
	return path
}

func TestImportCreatesNewTrip(t *testing.T) {
	kv := store.NewMemory()
	reg := testRegistry(kv)
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	if _, err := reg.Create("Tokyo 2026", start, 2, trip.Spring); err != nil {
		t.Fatalf("create: %v", err)
	}
	path := writeBackup(t, "Kyoto Redux", 3)

	s := Import{Registry: reg, Path: path}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("import: %v", err)
	}

	summaries, err := reg.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected a second trip, got %d", len(summaries))
	}
	if summaries[1].Name != "Kyoto Redux" || summaries[1].Days != 3 {
		t.Fatalf("unexpected imported summary %+v", summaries[1])
	}
}

func TestImportIntoOverwritesExistingTrip(t *testing.T) {
	kv := store.NewMemory()
	reg := testRegistry(kv)
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	tripID, err := reg.Create("Tokyo 2026", start, 2, trip.Spring)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	path := writeBackup(t, "Kyoto Redux", 3)

	s := Import{Registry: reg, Path: path, Into: "Tokyo 2026"}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("import into: %v", err)
	}

	summaries, err := reg.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("restore must not create a trip, got %d", len(summaries))
	}
	if summaries[0].ID != tripID {
		t.Fatalf("restored trip changed id: %s", summaries[0].ID)
	}
	if summaries[0].Name != "Kyoto Redux" || summaries[0].Days != 3 || summaries[0].Season != trip.Autumn {
		t.Fatalf("summary not synced after restore: %+v", summaries[0])
	}

	days, err := itinerary.New(kv, tripID).Load()
	if err != nil {
		t.Fatalf("load itinerary: %v", err)
	}
	if len(days) != 3 || days[0].Title != "Kyoto day 1" {
		t.Fatalf("itinerary not overwritten: %+v", days)
	}
	settings, err := reg.Settings(tripID)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.Name != "Kyoto Redux" {
		t.Fatalf("settings not overwritten: %+v", settings)
	}
}

func TestImportIntoUnknownTripFails(t *testing.T) {
	kv := store.NewMemory()
	reg := testRegistry(kv)
	path := writeBackup(t, "Kyoto Redux", 1)

	s := Import{Registry: reg, Path: path, Into: "no such trip"}
	if err := s.Do(context.Background()); err == nil {
		t.Fatal("expected an error for an unknown destination trip")
	}
}

func TestDecodeIntoOverwritesExistingTrip(t *testing.T) {
	kv := store.NewMemory()
	reg := testRegistry(kv)
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	tripID, err := reg.Create("Tokyo 2026", start, 1, trip.Spring)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b := trip.Bundle{
		Settings: trip.Settings{
			Name:      "Sapporo Swap",
			StartDate: time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC),
			Season:    trip.Winter,
		},
		Itinerary: []trip.Day{{ID: "bd1", Title: "Snow festival", Events: []trip.Event{}}},
		Expenses:  []trip.Expense{},
		Checklist: []trip.ChecklistCategory{},
		Version:   trip.BundleVersion,
	}
	encoded, err := backup.EncodeCompact(b)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	s := Decode{Registry: reg, Input: encoded, Into: tripID}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("decode into: %v", err)
	}

	summaries, err := reg.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Name != "Sapporo Swap" || summaries[0].Days != 1 {
		t.Fatalf("summary not synced after decode restore: %+v", summaries)
	}
	days, err := itinerary.New(kv, tripID).Load()
	if err != nil {
		t.Fatalf("load itinerary: %v", err)
	}
	if len(days) != 1 || days[0].Title != "Snow festival" {
		t.Fatalf("itinerary not overwritten: %+v", days)
	}
}
