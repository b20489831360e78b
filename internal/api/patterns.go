package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/san-kum/genlab/internal/export"
	"github.com/san-kum/genlab/internal/loop"
	"github.com/san-kum/genlab/internal/pattern"
)

type patternInfo struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Controls    []pattern.Control `json:"controls"`
	Defaults    pattern.Values    `json:"defaults,omitempty"`
}

func info(d *pattern.Descriptor, withDefaults bool) patternInfo {
	pi := patternInfo{ID: d.ID, Name: d.Name, Description: d.Description, Controls: d.Controls}
	if withDefaults {
		pi.Defaults = d.Defaults()
	}
	return pi
}

func (h *handler) listPatterns(w http.ResponseWriter, r *http.Request) {
	out := []patternInfo{}
	for _, d := range h.reg.List() {
		out = append(out, info(d, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getPattern(w http.ResponseWriter, r *http.Request) {
	d, err := h.reg.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info(d, true))
}

func (h *handler) getContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.reg.Get(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.lib.Load(id))
}

// frame renders one PNG at time t. Query keys other than t, w and h are
// control values in their string form.
func (h *handler) frame(w http.ResponseWriter, r *http.Request) {
	d, err := h.reg.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	width, err := intParam(q, "w", DefaultSide, 1, MaxSide)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := intParam(q, "h", DefaultSide, 1, MaxSide)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	at := 0.0
	if s := q.Get("t"); s != "" {
		if at, err = strconv.ParseFloat(s, 64); err != nil || at < 0 || at > 600 {
			http.Error(w, fmt.Sprintf("invalid t %q", s), http.StatusBadRequest)
			return
		}
	}

	values, err := queryValues(d, q)
	if err != nil {
		writeError(w, err)
		return
	}
	gen, _, err := d.Instantiate(values)
	if err != nil {
		writeError(w, err)
		return
	}
	img, err := loop.Snapshot(gen, width, height, 30, at)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := export.PNG(w, img); err != nil {
		writeError(w, err)
	}
}

var reservedParams = map[string]bool{"t": true, "w": true, "h": true, "fps": true}

func queryValues(d *pattern.Descriptor, q url.Values) (pattern.Values, error) {
	values := pattern.Values{}
	for key := range q {
		if reservedParams[key] {
			continue
		}
		c, ok := d.Control(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", pattern.ErrUnknownControl, key)
		}
		v, err := c.Parse(q.Get(key))
		if err != nil {
			return nil, err
		}
		values[key] = v
	}
	return values, nil
}

func intParam(q url.Values, key string, def, lo, hi int) (int, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s must be an integer in [%d, %d], got %q", key, lo, hi, s)
	}
	return n, nil
}
