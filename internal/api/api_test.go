package api_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/genlab/internal/api"
	"github.com/san-kum/genlab/internal/catalog"
	"github.com/san-kum/genlab/internal/content"
	"github.com/san-kum/genlab/internal/generators/automaton"
	"github.com/san-kum/genlab/internal/generators/pixelnoise"
	"github.com/san-kum/genlab/internal/preset"
)

func newTestServer(t *testing.T) (*httptest.Server, *preset.Store) {
	t.Helper()
	reg := catalog.New()
	store, err := preset.Open(filepath.Join(t.TempDir(), "presets.json"), reg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	srv := httptest.NewServer(api.RegisterRoutes(reg, store, content.Default()))
	t.Cleanup(srv.Close)
	return srv, store
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp.StatusCode
}

func TestListPatterns(t *testing.T) {
	srv, _ := newTestServer(t)
	var list []struct {
		ID       string `json:"id"`
		Controls []struct {
			ID      string `json:"id"`
			Type    string `json:"type"`
			Default any    `json:"defaultValue"`
		} `json:"controls"`
	}
	if code := getJSON(t, srv.URL+"/api/patterns", &list); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(list) != 7 || list[0].ID != automaton.ID {
		t.Fatalf("patterns = %+v", list)
	}
	if c := list[0].Controls[0]; c.ID != "rule" || c.Type != "range" || c.Default != 30.0 {
		t.Errorf("first control = %+v", c)
	}
}

func TestGetPattern(t *testing.T) {
	srv, _ := newTestServer(t)
	var p struct {
		Defaults map[string]any `json:"defaults"`
	}
	if code := getJSON(t, srv.URL+"/api/patterns/"+pixelnoise.ID, &p); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if p.Defaults["pixelSize"] != 8.0 || p.Defaults["enabled"] != true {
		t.Errorf("defaults = %v", p.Defaults)
	}
	if code := getJSON(t, srv.URL+"/api/patterns/nope", nil); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestFramePNG(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/patterns/" + automaton.ID + "/frame.png?w=40&h=30&t=0.5&rule=90&cellSize=2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("bounds = %v", b)
	}
}

func TestFrameBadInput(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, q := range []string{"w=0", "w=abc", "t=-1", "bogus=1", "rule=abc"} {
		resp, err := http.Get(srv.URL + "/api/patterns/" + automaton.ID + "/frame.png?" + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, resp.StatusCode)
		}
	}
}

func TestContent(t *testing.T) {
	srv, _ := newTestServer(t)
	var c content.Content
	if code := getJSON(t, srv.URL+"/api/content/quadtree", &c); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(c.Layers) != 3 || c.Layer(content.Technical).Missing {
		t.Errorf("content = %+v", c)
	}
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestSaveListDeletePreset(t *testing.T) {
	srv, _ := newTestServer(t)
	body := `{"name":"Chunky","generatorType":"pixelated-noise","parameters":{"pixelSize":32}}`

	resp := postJSON(t, srv.URL+"/api/presets", body)
	var saved preset.Preset
	json.NewDecoder(resp.Body).Decode(&saved)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated || saved.Parameters["pixelSize"] != 32.0 {
		t.Fatalf("status %d preset %+v", resp.StatusCode, saved)
	}

	resp = postJSON(t, srv.URL+"/api/presets", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate: expected 409, got %d", resp.StatusCode)
	}

	var list []preset.Preset
	getJSON(t, srv.URL+"/api/presets?pattern=pixelated-noise", &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(list))
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/presets/"+saved.ID, nil)
	dresp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	dresp.Body.Close()
	if dresp.StatusCode != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", dresp.StatusCode)
	}
	dresp, _ = http.DefaultClient.Do(req)
	dresp.Body.Close()
	if dresp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", dresp.StatusCode)
	}
}

func TestSavePresetBadInput(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, body := range []string{
		"not-json",
		`{"name":"","generatorType":"quadtree"}`,
		`{"name":"x","generatorType":"quadtree","parameters":{"nope":1}}`,
	} {
		resp := postJSON(t, srv.URL+"/api/presets", body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, resp.StatusCode)
		}
	}
	resp := postJSON(t, srv.URL+"/api/presets", `{"name":"x","generatorType":"nope"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown pattern: expected 404, got %d", resp.StatusCode)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	srv, store := newTestServer(t)
	if _, err := store.Save("Mine", "quadtree", nil); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/api/presets/export")
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(resp.Header.Get("Content-Disposition"), "presets_") {
		t.Errorf("disposition = %q", resp.Header.Get("Content-Disposition"))
	}

	other, otherStore := newTestServer(t)
	iresp := postJSON(t, other.URL+"/api/presets/import", string(data))
	var res preset.ImportResult
	json.NewDecoder(iresp.Body).Decode(&res)
	iresp.Body.Close()
	if iresp.StatusCode != http.StatusOK || len(res.Imported) != 1 {
		t.Fatalf("status %d result %+v", iresp.StatusCode, res)
	}
	if got := otherStore.List(); len(got) != 1 || got[0].Name != "Mine" {
		t.Errorf("imported = %+v", got)
	}

	iresp = postJSON(t, other.URL+"/api/presets/import", string(data))
	json.NewDecoder(iresp.Body).Decode(&res)
	iresp.Body.Close()
	if len(res.Imported) != 0 || len(res.Skipped) != 1 {
		t.Errorf("reimport = %+v", res)
	}
}

func TestImportMalformed(t *testing.T) {
	srv, store := newTestServer(t)
	for _, body := range []string{
		"{",
		`{"version":"1.0","presets":[{"name":"x","generatorType":"nope","parameters":{}}]}`,
	} {
		resp := postJSON(t, srv.URL+"/api/presets/import", body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, resp.StatusCode)
		}
	}
	if len(store.List()) != 0 {
		t.Error("store changed by a failed import")
	}
}

func dialWS(t *testing.T, srv *httptest.Server, path string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	return websocket.DefaultDialer.Dial(wsURL, nil)
}

func TestWSNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	_, resp, err := dialWS(t, srv, "/api/patterns/nope/ws")
	if err == nil {
		t.Fatal("expected error connecting to unknown pattern")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", resp)
	}
}

type wsEvent struct {
	Type   string         `json:"type"`
	Values map[string]any `json:"values"`
	Error  string         `json:"error"`
}

// readUntil returns the first text event of the given type, skipping frames.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) wsEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if mt != websocket.TextMessage {
			continue
		}
		var ev wsEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev.Type == typ {
			return ev
		}
	}
}

func TestWSStreamsFramesAndActions(t *testing.T) {
	srv, _ := newTestServer(t)
	conn, _, err := dialWS(t, srv, "/api/patterns/"+automaton.ID+"/ws?w=32&h=16&fps=30")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if ev := readUntil(t, conn, "values"); ev.Values["rule"] != 30.0 {
		t.Fatalf("initial values = %v", ev.Values)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if mt == websocket.BinaryMessage {
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil || img.Bounds().Dx() != 32 {
				t.Fatalf("frame: %v", err)
			}
			break
		}
	}

	if err := conn.WriteJSON(map[string]any{"type": "action", "action": "nextRule"}); err != nil {
		t.Fatal(err)
	}
	if ev := readUntil(t, conn, "values"); ev.Values["rule"] != 31.0 {
		t.Errorf("after nextRule = %v", ev.Values)
	}

	if err := conn.WriteJSON(map[string]any{"type": "configure", "values": map[string]any{"rule": 500}}); err != nil {
		t.Fatal(err)
	}
	if ev := readUntil(t, conn, "values"); ev.Values["rule"] != 255.0 {
		t.Errorf("clamped rule = %v", ev.Values)
	}

	if err := conn.WriteJSON(map[string]any{"type": "action", "action": "explode"}); err != nil {
		t.Fatal(err)
	}
	if ev := readUntil(t, conn, "error"); !strings.Contains(ev.Error, "unknown action") {
		t.Errorf("error = %q", ev.Error)
	}
}
