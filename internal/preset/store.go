// Package preset persists named control-value snapshots and moves them in
// and out of the portable JSON preset format.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/pattern"
)

// Store is the saved preset list backed by a JSON file. It is safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	filePath string
	reg      *pattern.Registry
	presets  []Preset
	now      func() time.Time
}

// Open loads the store at filePath, or starts empty when the file does not
// exist. Parameters are validated against reg on save and import.
func Open(filePath string, reg *pattern.Registry) (*Store, error) {
	s := &Store{filePath: filePath, reg: reg, presets: []Preset{}, now: time.Now}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, filePath, err)
	}
	if f.Presets != nil {
		s.presets = f.Presets
	}
	logx.Logger().Debug("presets loaded", "path", filePath, "count", len(s.presets))
	return s, nil
}

// SetClock replaces the time source; tests use it for stable timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// List returns every preset in save order.
func (s *Store) List() []Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPresets(s.presets)
}

// ForPattern returns the presets saved for one generator.
func (s *Store) ForPattern(generatorType string) []Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Preset
	for _, p := range s.presets {
		if p.GeneratorType == generatorType {
			out = append(out, clonePreset(p))
		}
	}
	return out
}

func (s *Store) Get(id string) (Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.presets {
		if p.ID == id {
			return clonePreset(p), nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save records the current values of a pattern under name. Values are
// normalised so the stored record is complete. Saving content that already
// exists returns the existing preset and ErrDuplicate.
func (s *Store) Save(name, generatorType string, values pattern.Values) (Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Preset{}, ErrEmptyName
	}
	d, err := s.reg.Get(generatorType)
	if err != nil {
		return Preset{}, err
	}
	params, err := d.Normalize(values)
	if err != nil {
		return Preset{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash := ContentHash(name, generatorType, params)
	for _, p := range s.presets {
		if p.ContentHash == hash {
			return clonePreset(p), ErrDuplicate
		}
	}

	p := Preset{
		ID:            uuid.NewString(),
		Name:          name,
		GeneratorType: generatorType,
		Parameters:    params,
		CreatedAt:     s.now().UTC(),
		ContentHash:   hash,
	}
	next := append(copyPresets(s.presets), p)
	if err := s.writeAtomic(next); err != nil {
		return Preset{}, err
	}
	s.presets = next
	logx.Logger().Info("preset saved", "id", p.ID, "name", p.Name, "pattern", generatorType)
	return clonePreset(p), nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Preset, 0, len(s.presets))
	for _, p := range s.presets {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(s.presets) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.writeAtomic(next); err != nil {
		return err
	}
	s.presets = next
	return nil
}

// Clear removes every preset.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeAtomic([]Preset{}); err != nil {
		return err
	}
	s.presets = []Preset{}
	return nil
}

// writeAtomic writes to a temp file then renames it over filePath. Caller
// must hold s.mu.
func (s *Store) writeAtomic(presets []Preset) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f := File{Version: FormatVersion, Presets: presets, ExportedAt: s.now().UTC()}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

func clonePreset(p Preset) Preset {
	p.Parameters = p.Parameters.Clone()
	return p
}

func copyPresets(ps []Preset) []Preset {
	out := make([]Preset, len(ps))
	for i, p := range ps {
		out[i] = clonePreset(p)
	}
	return out
}
