package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chobits1012/japantriphelper/pkg/trip"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName derives a backup file name from the trip name.
func FileName(tripName string) string {
	name := unsafeFileChars.ReplaceAllString(strings.TrimSpace(tripName), "-")
	name = strings.Trim(name, "-")
	if name == "" {
		name = "trip"
	}
	return name + "-backup.json"
}

// WriteFile saves the bundle as pretty-printed JSON at path.
func WriteFile(path string, b trip.Bundle) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("backup: encode file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("backup: ensure directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads and validates a bundle from a JSON backup file.
func ReadFile(path string) (trip.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return trip.Bundle{}, fmt.Errorf("backup: read file: %w", err)
	}
	b, err := UnmarshalBundle(data)
	if err != nil {
		return trip.Bundle{}, err
	}
	if err := Validate(b); err != nil {
		return trip.Bundle{}, err
	}
	return b, nil
}
