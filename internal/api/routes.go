// Package api serves patterns, rendered frames, educational content and the
// preset store over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/san-kum/genlab/internal/content"
	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/preset"
)

// Limits applied to requested surfaces.
const (
	MaxSide     = 2048
	DefaultSide = 256
	MaxFPS      = 60
)

func RegisterRoutes(reg *pattern.Registry, store *preset.Store, lib *content.Library) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &handler{reg: reg, store: store, lib: lib}

	r.Get("/api/patterns", h.listPatterns)
	r.Get("/api/patterns/{id}", h.getPattern)
	r.Get("/api/patterns/{id}/frame.png", h.frame)
	r.Get("/api/patterns/{id}/ws", h.handleWS)

	r.Get("/api/content/{id}", h.getContent)

	r.Get("/api/presets", h.listPresets)
	r.Post("/api/presets", h.savePreset)
	r.Delete("/api/presets/{id}", h.deletePreset)
	r.Get("/api/presets/export", h.exportPresets)
	r.Post("/api/presets/import", h.importPresets)

	return r
}

type handler struct {
	reg   *pattern.Registry
	store *preset.Store
	lib   *content.Library
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Logger().Debug("response write failed", "err", err)
	}
}

// writeError maps package sentinels onto status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ie *preset.ImportError
	switch {
	case errors.As(err, &ie):
		status = http.StatusBadRequest
	case errors.Is(err, pattern.ErrUnknownPattern), errors.Is(err, preset.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, preset.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, preset.ErrMalformed),
		errors.Is(err, preset.ErrEmptyName),
		errors.Is(err, pattern.ErrUnknownControl),
		errors.Is(err, pattern.ErrInvalidValue),
		errors.Is(err, pattern.ErrNotAValue),
		errors.Is(err, pattern.ErrUnknownAction):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logx.Logger().Error("request failed", "err", err)
	}
	http.Error(w, err.Error(), status)
}
