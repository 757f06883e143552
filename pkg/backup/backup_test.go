package backup

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/store"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func seedTrip(t *testing.T, kv store.KV, tripID string) trip.Bundle {
	t.Helper()
	b := trip.Bundle{
		Settings: trip.Settings{
			Name:      "Kansai",
			StartDate: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
			Season:    trip.Autumn,
			BudgetJPY: 180000,
		},
		Itinerary: []trip.Day{
			{
				ID: "d1", Num: 1,
				Date:   time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
				Title:  "Osaka",
				Events: []trip.Event{{Time: "10:00", Title: "Dotonbori", Category: trip.CategoryFood}},
				SubPlans: map[trip.PlanID]trip.PlanSnapshot{
					trip.PlanB: {Title: "Rain plan", Events: []trip.Event{{Time: "11:00", Title: "Aquarium"}}},
				},
			},
			{
				ID: "d2", Num: 2,
				Date:  time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
				Title: "Nara",
				Events: []trip.Event{{
					Time: "09:30", Title: "Todai-ji", Category: trip.CategorySightseeing,
					TicketImages: []string{"dGlja2V0LWltYWdlLWJ5dGVz"},
				}},
			},
		},
		Expenses:  []trip.Expense{{ID: "e1", Date: "10/03", Title: "Takoyaki", AmountJPY: 600, Category: trip.ExpenseFood}},
		Checklist: []trip.ChecklistCategory{{ID: "c1", Title: "Documents", Items: []trip.ChecklistItem{{ID: "i1", Text: "Passport", Checked: true}}}},
		Version:   trip.BundleVersion,
	}
	if err := Import(kv, tripID, b); err != nil {
		t.Fatalf("seed import: %v", err)
	}
	return b
}

func bundleJSON(t *testing.T, b trip.Bundle) string {
	t.Helper()
	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestExportImportRoundTrip(t *testing.T) {
	kv := store.NewMemory()
	seedTrip(t, kv, "src")

	now := time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC)
	b, err := Export(kv, "src", now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if b.Version != trip.BundleVersion {
		t.Fatalf("expected version %d, got %d", trip.BundleVersion, b.Version)
	}
	if b.Timestamp != "2026-10-10T09:00:00Z" {
		t.Fatalf("unexpected timestamp %q", b.Timestamp)
	}

	if err := Import(kv, "dst", b); err != nil {
		t.Fatalf("import: %v", err)
	}
	b2, err := Export(kv, "dst", now)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}
	if bundleJSON(t, b) != bundleJSON(t, b2) {
		t.Fatal("import/export round trip changed the bundle")
	}
}

func TestCompactCodecRoundTrip(t *testing.T) {
	kv := store.NewMemory()
	seedTrip(t, kv, "src")
	b, err := Export(kv, "src", time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	encoded, err := EncodeCompact(b)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, forbidden := range []string{"+", "/", "=", " "} {
		if strings.Contains(encoded, forbidden) {
			t.Fatalf("encoding not URL-safe, contains %q", forbidden)
		}
	}

	decoded, err := DecodeCompact(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bundleJSON(t, b) != bundleJSON(t, decoded) {
		t.Fatal("compact codec round trip changed the bundle")
	}
}

func TestDecodeCompactAcceptsRawJSON(t *testing.T) {
	kv := store.NewMemory()
	b := seedTrip(t, kv, "src")

	decoded, err := DecodeCompact(bundleJSON(t, b))
	if err != nil {
		t.Fatalf("decode raw json: %v", err)
	}
	if decoded.Settings.Name != "Kansai" {
		t.Fatalf("unexpected decode %+v", decoded.Settings)
	}
}

func TestDecodeCompactRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "!!!not-base64!!!", "AAAA", `{"broken`} {
		if _, err := DecodeCompact(input); !errors.Is(err, ErrMalformed) {
			t.Fatalf("input %q: expected ErrMalformed, got %v", input, err)
		}
	}
}

func TestImportRejectsInvalidBundle(t *testing.T) {
	kv := store.NewMemory()
	err := Import(kv, "dst", trip.Bundle{Expenses: []trip.Expense{}})
	if !errors.Is(err, ErrInvalidBundle) {
		t.Fatalf("expected ErrInvalidBundle, got %v", err)
	}
	if kv.Has(store.TripKey("dst", store.SliceSettings)) {
		t.Fatal("invalid import must not write anything")
	}
}

func TestLegacyChecklistWrappedInOneCategory(t *testing.T) {
	legacy := `{
		"tripSettings": {"name": "Old Trip", "startDate": "2025-05-01T00:00:00Z", "season": "spring"},
		"itineraryData": [{"id": "d1", "title": "Day", "events": []}],
		"expenses": [],
		"checklist": [
			{"id": "i1", "text": "Passport", "checked": true},
			{"id": "i2", "text": "Charger", "checked": false}
		],
		"version": 1
	}`

	b, err := UnmarshalBundle([]byte(legacy))
	if err != nil {
		t.Fatalf("unmarshal legacy: %v", err)
	}
	if len(b.Checklist) != 1 {
		t.Fatalf("expected exactly one synthesized category, got %d", len(b.Checklist))
	}
	items := b.Checklist[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items preserved, got %d", len(items))
	}
	if !items[0].Checked || items[0].Text != "Passport" {
		t.Fatalf("checked state lost: %+v", items[0])
	}
	if items[1].Checked {
		t.Fatalf("checked state invented: %+v", items[1])
	}
}

func TestFileRoundTrip(t *testing.T) {
	kv := store.NewMemory()
	seedTrip(t, kv, "src")
	b, err := Export(kv, "src", time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	path := filepath.Join(t.TempDir(), FileName(b.Settings.Name))
	if err := WriteFile(path, b); err != nil {
		t.Fatalf("write file: %v", err)
	}
	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if bundleJSON(t, b) != bundleJSON(t, loaded) {
		t.Fatal("file round trip changed the bundle")
	}
}

func TestFileNameSanitizesTripName(t *testing.T) {
	cases := map[string]string{
		"Kansai Trip":    "Kansai-Trip-backup.json",
		"  ":             "trip-backup.json",
		"fall/winter 25": "fall-winter-25-backup.json",
	}
	for in, want := range cases {
		if got := FileName(in); got != want {
			t.Fatalf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}
