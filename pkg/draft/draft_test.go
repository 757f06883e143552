package draft

import (
	"errors"
	"testing"
	"time"

	"github.com/chobits1012/japantriphelper/pkg/itinerary"
	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func existingDays() []trip.Day {
	return []trip.Day{
		{ID: "d1", Num: 1, Title: "One", Events: []trip.Event{{Time: "09:00", Title: "old"}}},
		{ID: "d2", Num: 2, Title: "Two", Events: []trip.Event{}},
	}
}

func TestValidateFullDraftCountMismatch(t *testing.T) {
	req := Request{ExistingDays: existingDays()}

	err := ValidateDays(req, []trip.Day{{Title: "only one"}})
	if !errors.Is(err, ErrBadDraft) {
		t.Fatalf("expected ErrBadDraft, got %v", err)
	}

	if err := ValidateDays(req, []trip.Day{{Title: "a"}, {Title: "b"}}); err != nil {
		t.Fatalf("matching count must validate: %v", err)
	}
}

func TestValidateFullDraftRejectsOutOfOrderLabels(t *testing.T) {
	req := Request{ExistingDays: existingDays()}
	out := []trip.Day{{Num: 2, Title: "b"}, {Num: 1, Title: "a"}}
	if err := ValidateDays(req, out); !errors.Is(err, ErrBadDraft) {
		t.Fatalf("expected ErrBadDraft, got %v", err)
	}
}

func TestValidateSingleDayDraft(t *testing.T) {
	req := Request{ExistingDays: existingDays(), DayID: "d2"}

	if err := ValidateDays(req, []trip.Day{{ID: "d2", Title: "x"}}); err != nil {
		t.Fatalf("single matching day must validate: %v", err)
	}
	if err := ValidateDays(req, []trip.Day{{ID: "d1"}}); !errors.Is(err, ErrBadDraft) {
		t.Fatalf("expected ErrBadDraft on wrong day, got %v", err)
	}
	if err := ValidateDays(req, []trip.Day{{ID: "d2"}, {ID: "d2"}}); !errors.Is(err, ErrBadDraft) {
		t.Fatalf("expected ErrBadDraft on extra days, got %v", err)
	}
}

func TestPatchesPreserveDerivedFields(t *testing.T) {
	days := existingDays()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	itinerary.Recompute(days, start)

	req := Request{ExistingDays: days}
	out := []trip.Day{
		{Title: "Drafted one", Events: []trip.Event{{Time: "10:00", Title: "new"}}},
		{Title: "Drafted two", Events: []trip.Event{}},
	}
	patches, err := Patches(req, out)
	if err != nil {
		t.Fatalf("patches: %v", err)
	}

	applied := itinerary.Apply(days, patches...)
	if applied != 2 {
		t.Fatalf("expected 2 patches applied, got %d", applied)
	}
	if days[0].Title != "Drafted one" || len(days[0].Events) != 1 {
		t.Fatalf("content not merged: %+v", days[0])
	}
	// Derived fields survive the merge untouched.
	if days[0].Num != 1 || !days[0].Date.Equal(start) {
		t.Fatalf("derived fields clobbered: %+v", days[0])
	}
}
