package backup

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

// EncodeCompact serializes the bundle and compresses it into a URL-safe
// string suitable for copy-paste.
func EncodeCompact(b trip.Bundle) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("backup: encode bundle: %w", err)
	}
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("backup: init compressor: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("backup: compress bundle: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("backup: compress bundle: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeCompact reverses EncodeCompact. Input starting with '{' is treated
// as raw bundle JSON; anything else is decompressed first. Garbage input
// yields ErrMalformed.
func DecodeCompact(s string) (trip.Bundle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return trip.Bundle{}, ErrMalformed
	}
	if s[0] == '{' {
		return UnmarshalBundle([]byte(s))
	}

	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return trip.Bundle{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return trip.Bundle{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return UnmarshalBundle(data)
}
