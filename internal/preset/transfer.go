package preset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/pattern"
)

// BulkFilename is the suggested file name for exporting every preset.
func BulkFilename(at time.Time) string {
	return "presets_" + at.Format("20060102") + ".json"
}

// Encode renders presets in the portable file format.
func Encode(presets []Preset, at time.Time) ([]byte, error) {
	if presets == nil {
		presets = []Preset{}
	}
	return json.MarshalIndent(File{Version: FormatVersion, Presets: presets, ExportedAt: at.UTC()}, "", "  ")
}

// ExportOne encodes a single preset and returns its suggested file name.
func (s *Store) ExportOne(id string) (string, []byte, error) {
	p, err := s.Get(id)
	if err != nil {
		return "", nil, err
	}
	data, err := Encode([]Preset{p}, s.clock())
	if err != nil {
		return "", nil, err
	}
	return ExportFilename(p.Name), data, nil
}

// ExportAll encodes every preset and returns the bulk file name.
func (s *Store) ExportAll() (string, []byte, error) {
	now := s.clock()
	data, err := Encode(s.List(), now)
	if err != nil {
		return "", nil, err
	}
	return BulkFilename(now), data, nil
}

func (s *Store) clock() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

type incoming struct {
	name      string
	generator string
	params    pattern.Values
	createdAt time.Time
}

// Import validates every preset in data before touching the store. Any
// malformed entry aborts the whole import with an *ImportError and nothing
// is written. Presets whose content already exists are skipped; name
// collisions are resolved by appending " (n)".
func (s *Store) Import(data []byte) (ImportResult, error) {
	items, err := s.decode(data)
	if err != nil {
		return ImportResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyPresets(s.presets)
	hashes := make(map[string]bool, len(next))
	names := make(map[string]bool, len(next))
	for _, p := range next {
		hashes[p.ContentHash] = true
		names[p.Name] = true
	}

	res := ImportResult{Renamed: map[string]string{}}
	for _, in := range items {
		hash := ContentHash(in.name, in.generator, in.params)
		if hashes[hash] {
			res.Skipped = append(res.Skipped, Skipped{Name: in.name, Reason: "identical preset exists"})
			continue
		}
		if prior, ok := renamedCopy(next, in); ok {
			res.Skipped = append(res.Skipped, Skipped{Name: in.name, Reason: "already imported as " + prior})
			continue
		}

		name := in.name
		if names[name] {
			name = uniqueName(in.name, names)
			res.Renamed[name] = in.name
			hash = ContentHash(name, in.generator, in.params)
		}
		created := in.createdAt
		if created.IsZero() {
			created = s.now().UTC()
		}
		p := Preset{
			ID:            uuid.NewString(),
			Name:          name,
			GeneratorType: in.generator,
			Parameters:    in.params,
			CreatedAt:     created,
			ContentHash:   hash,
		}
		next = append(next, p)
		hashes[hash] = true
		names[name] = true
		res.Imported = append(res.Imported, clonePreset(p))
	}

	if len(res.Imported) > 0 {
		if err := s.writeAtomic(next); err != nil {
			return ImportResult{}, err
		}
		s.presets = next
	}
	logx.Logger().Info("presets imported", "imported", len(res.Imported), "skipped", len(res.Skipped))
	return res, nil
}

func (s *Store) decode(data []byte) ([]incoming, error) {
	var raw struct {
		Version *string `json:"version"`
		Presets []struct {
			Name          string         `json:"name"`
			GeneratorType string         `json:"generatorType"`
			Parameters    map[string]any `json:"parameters"`
			CreatedAt     time.Time      `json:"createdAt"`
		} `json:"presets"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, &ImportError{Index: -1, Field: "json", Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	if raw.Version == nil || *raw.Version != FormatVersion {
		got := "missing"
		if raw.Version != nil {
			got = *raw.Version
		}
		return nil, &ImportError{Index: -1, Field: "version", Err: fmt.Errorf("%w: unsupported version %s", ErrMalformed, got)}
	}
	if raw.Presets == nil {
		return nil, &ImportError{Index: -1, Field: "presets", Err: fmt.Errorf("%w: no presets array", ErrMalformed)}
	}

	items := make([]incoming, 0, len(raw.Presets))
	for i, rp := range raw.Presets {
		name := strings.TrimSpace(rp.Name)
		if name == "" {
			return nil, &ImportError{Index: i, Field: "name", Err: ErrEmptyName}
		}
		d, err := s.reg.Get(rp.GeneratorType)
		if err != nil {
			return nil, &ImportError{Index: i, Field: "generatorType", Err: err}
		}
		params, err := d.Normalize(rp.Parameters)
		if err != nil {
			field := "parameters"
			if errors.Is(err, pattern.ErrUnknownControl) || errors.Is(err, pattern.ErrInvalidValue) {
				field = "parameters." + badKey(d, rp.Parameters)
			}
			return nil, &ImportError{Index: i, Field: field, Err: err}
		}
		items = append(items, incoming{name: name, generator: rp.GeneratorType, params: params, createdAt: rp.CreatedAt})
	}
	return items, nil
}

// badKey finds the first parameter that fails coercion, for error messages.
func badKey(d *pattern.Descriptor, params map[string]any) string {
	for _, k := range pattern.Values(params).Keys() {
		c, ok := d.Control(k)
		if !ok || !c.HasValue() {
			return k
		}
		if _, err := c.Coerce(params[k]); err != nil {
			return k
		}
	}
	return "?"
}

// renamedCopy finds an existing preset with the same generator and
// parameters whose name is the incoming name or a collision rename of it.
func renamedCopy(existing []Preset, in incoming) (string, bool) {
	ph := paramsHash(in.generator, in.params)
	for _, p := range existing {
		if p.GeneratorType != in.generator || !isRenameOf(p.Name, in.name) {
			continue
		}
		if paramsHash(p.GeneratorType, p.Parameters) == ph {
			return p.Name, true
		}
	}
	return "", false
}

// uniqueName returns "base (n)" for the smallest n ≥ 2 not in taken.
func uniqueName(base string, taken map[string]bool) string {
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s (%d)", base, n)
		if !taken[name] {
			return name
		}
	}
}
