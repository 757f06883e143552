package ticket

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeBoundsLargeImages(t *testing.T) {
	encoded, err := Encode(pngBytes(t, 3000, 1500))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(encoded, "data:image/jpeg;base64,") {
		t.Fatalf("missing data-url prefix: %.40q", encoded)
	}

	img, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		t.Errorf("image not bounded: %dx%d", b.Dx(), b.Dy())
	}
	// Aspect ratio survives the fit.
	if b.Dx() != MaxDimension || b.Dy() != MaxDimension/2 {
		t.Errorf("unexpected fit %dx%d, want %dx%d", b.Dx(), b.Dy(), MaxDimension, MaxDimension/2)
	}
}

func TestEncodeKeepsSmallImages(t *testing.T) {
	encoded, err := Encode(pngBytes(t, 200, 100))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("small image resized to %dx%d", b.Dx(), b.Dy())
	}
}

func TestEncodeRejectsGarbage(t *testing.T) {
	if _, err := Encode([]byte("not an image")); !errors.Is(err, ErrBadImage) {
		t.Fatalf("expected ErrBadImage, got %v", err)
	}
}

func TestBundleImageBytesCountsAllPlans(t *testing.T) {
	b := trip.Bundle{
		Itinerary: []trip.Day{
			{
				Events: []trip.Event{{TicketImages: []string{strings.Repeat("a", 100), strings.Repeat("b", 50)}}},
				SubPlans: map[trip.PlanID]trip.PlanSnapshot{
					trip.PlanB: {Events: []trip.Event{{TicketImages: []string{strings.Repeat("c", 25)}}}},
				},
			},
			{Events: []trip.Event{}},
		},
	}
	if got := BundleImageBytes(b); got != 175 {
		t.Fatalf("BundleImageBytes = %d, want 175", got)
	}
}

func TestCheckBudget(t *testing.T) {
	var empty trip.Bundle
	warn, remaining := CheckBudget(empty, 1000)
	if warn {
		t.Error("small image should not warn")
	}
	if remaining != DocumentCeiling-1000 {
		t.Errorf("remaining = %d", remaining)
	}

	big := trip.Bundle{Itinerary: []trip.Day{{
		Events: []trip.Event{{TicketImages: []string{strings.Repeat("x", WarnThreshold)}}},
	}}}
	warn, _ = CheckBudget(big, 1)
	if !warn {
		t.Error("expected warning near ceiling")
	}

	warn, remaining = CheckBudget(big, DocumentCeiling)
	if !warn || remaining != 0 {
		t.Errorf("over-ceiling: warn=%v remaining=%d", warn, remaining)
	}
}
