package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/preset"
)

// maxImportSize bounds uploaded preset files.
const maxImportSize = 4 << 20

func (h *handler) listPresets(w http.ResponseWriter, r *http.Request) {
	var ps []preset.Preset
	if id := r.URL.Query().Get("pattern"); id != "" {
		ps = h.store.ForPattern(id)
	} else {
		ps = h.store.List()
	}
	if ps == nil {
		ps = []preset.Preset{}
	}
	writeJSON(w, http.StatusOK, ps)
}

type saveRequest struct {
	Name          string         `json:"name"`
	GeneratorType string         `json:"generatorType"`
	Parameters    pattern.Values `json:"parameters"`
}

func (h *handler) savePreset(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	p, err := h.store.Save(req.Name, req.GeneratorType, req.Parameters)
	if errors.Is(err, preset.ErrDuplicate) {
		writeJSON(w, http.StatusConflict, p)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *handler) deletePreset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportPresets downloads every preset, or one when ?id= is given.
func (h *handler) exportPresets(w http.ResponseWriter, r *http.Request) {
	var (
		name string
		data []byte
		err  error
	)
	if id := r.URL.Query().Get("id"); id != "" {
		name, data, err = h.store.ExportOne(id)
	} else {
		name, data, err = h.store.ExportAll()
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(data)
}

func (h *handler) importPresets(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize+1))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if len(data) > maxImportSize {
		http.Error(w, "preset file too large", http.StatusRequestEntityTooLarge)
		return
	}
	res, err := h.store.Import(data)
	if err != nil {
		writeError(w, err)
		return
	}
	if res.Imported == nil {
		res.Imported = []preset.Preset{}
	}
	if res.Skipped == nil {
		res.Skipped = []preset.Skipped{}
	}
	writeJSON(w, http.StatusOK, res)
}
