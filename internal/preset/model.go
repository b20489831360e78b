package preset

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/genlab/internal/pattern"
)

// FormatVersion is written to every preset file and required on import.
const FormatVersion = "1.0"

// Preset is a named, immutable snapshot of one pattern's control values.
type Preset struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	GeneratorType string         `json:"generatorType"`
	Parameters    pattern.Values `json:"parameters"`
	CreatedAt     time.Time      `json:"createdAt"`
	ContentHash   string         `json:"contentHash"`
}

// File is the on-disk and export format.
type File struct {
	Version    string    `json:"version"`
	Presets    []Preset  `json:"presets"`
	ExportedAt time.Time `json:"exportedAt"`
}

var (
	ErrNotFound  = errors.New("preset not found")
	ErrMalformed = errors.New("malformed preset file")
	ErrDuplicate = errors.New("preset already saved")
	ErrEmptyName = errors.New("preset name is empty")
)

// ImportError names the preset and field that made an import fail. Index is
// -1 for file-level problems.
type ImportError struct {
	Index int
	Field string
	Err   error
}

func (e *ImportError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("import: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("import: preset %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// Skipped records an incoming preset that was already present.
type Skipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ImportResult summarises a committed import.
type ImportResult struct {
	Imported []Preset  `json:"imported"`
	Skipped  []Skipped `json:"skipped"`
	// Renamed maps the final name of an imported preset to the name it had
	// in the file.
	Renamed map[string]string `json:"renamed,omitempty"`
}
