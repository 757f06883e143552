// Package ticket turns raw ticket photos into size-bounded strings that
// can live inside a trip bundle, and tracks how close a bundle is to the
// remote single-document ceiling.
package ticket

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// ErrBadImage is returned when the input cannot be decoded as an image.
var ErrBadImage = errors.New("ticket: unreadable image data")

const (
	// MaxDimension caps the longest side before re-encoding.
	MaxDimension = 1280
	jpegQuality  = 80

	// DocumentCeiling matches the remote store's per-document limit.
	DocumentCeiling = 1 << 20
	// WarnThreshold is where the UI starts warning before a push.
	WarnThreshold = DocumentCeiling * 85 / 100
)

// Encode bounds the image to MaxDimension on its longest side, re-encodes
// it as JPEG and returns it as a data URL string ready to store in an
// event's ticket list.
func Encode(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("ticket: encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode back into a decoded image, for display or
// re-export.
func Decode(encoded string) (image.Image, error) {
	const prefix = "data:image/jpeg;base64,"
	if len(encoded) > len(prefix) && encoded[:len(prefix)] == prefix {
		encoded = encoded[len(prefix):]
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	return img, nil
}

// BundleImageBytes sums the encoded ticket-image sizes across every event
// in the bundle, plan snapshots included.
func BundleImageBytes(b trip.Bundle) int {
	total := 0
	for _, d := range b.Itinerary {
		total += eventImageBytes(d.Events)
		for _, snap := range d.SubPlans {
			total += eventImageBytes(snap.Events)
		}
	}
	return total
}

func eventImageBytes(events []trip.Event) int {
	n := 0
	for _, e := range events {
		for _, img := range e.TicketImages {
			n += len(img)
		}
	}
	return n
}

// CheckBudget reports whether adding nextImage bytes of encoded image to
// the bundle would cross the warning threshold, and how many bytes remain
// under the hard ceiling.
func CheckBudget(b trip.Bundle, nextImage int) (warn bool, remaining int) {
	used := BundleImageBytes(b) + nextImage
	remaining = DocumentCeiling - used
	if remaining < 0 {
		remaining = 0
	}
	return used >= WarnThreshold, remaining
}
