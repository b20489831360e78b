package export

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/genlab/internal/generators/attractor"
	"github.com/san-kum/genlab/internal/generators/quadtree"
	"github.com/san-kum/genlab/internal/loop"
	"github.com/san-kum/genlab/internal/pattern"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	pattern.Fill(img, c)
	return img
}

func TestPNGRoundTrip(t *testing.T) {
	src := solid(5, 3, color.RGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	if err := PNG(&buf, src); err != nil {
		t.Fatal(err)
	}
	got, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v", got.Bounds())
	}
	r, g, b, _ := got.At(2, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.png")
	if err := WritePNG(path, solid(2, 2, color.RGBA{A: 255})); err != nil {
		t.Fatal(err)
	}
	if err := WritePNG(filepath.Join(t.TempDir(), "missing", "f.png"), solid(1, 1, color.RGBA{})); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(25)
	if err := r.Encode(&bytes.Buffer{}); err == nil {
		t.Error("empty recording should fail")
	}
	img := solid(4, 4, color.RGBA{255, 0, 0, 255})
	r.Add(img)
	pattern.Fill(img, color.RGBA{0, 0, 255, 255})
	r.Add(img)

	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 2 || anim.Delay[0] != 4 {
		t.Fatalf("frames %d delay %v", len(anim.Image), anim.Delay)
	}
	if r0, _, b0, _ := anim.Image[0].At(1, 1).RGBA(); r0>>8 < 200 || b0>>8 > 50 {
		t.Error("first frame should stay red after the surface is reused")
	}
	r.Reset()
	if r.Len() != 0 {
		t.Error("reset should drop frames")
	}
}

func TestTrajectorySVG(t *testing.T) {
	svg := TrajectorySVG([]float64{0, 1, 2}, []float64{0, 1, 0}, 100, 50, color.RGBA{255, 0, 0, 255}, color.RGBA{A: 255})
	for _, want := range []string{`width="100"`, `stroke="#ff0000"`, `fill="#000000"`, " L"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if TrajectorySVG([]float64{1}, []float64{1}, 10, 10, color.RGBA{}, color.RGBA{}) != "" {
		t.Error("single point should give empty output")
	}
}

func TestAttractorSVG(t *testing.T) {
	g := attractor.NewGenerator()
	if err := loop.Offline(g, 64, 64, 30, 10, func(int, *image.RGBA) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if svg := AttractorSVG(g, 200, 200); !strings.Contains(svg, "<path") {
		t.Error("expected a path")
	}
}

func TestQuadtreeSVG(t *testing.T) {
	g := quadtree.New()
	g.Configure(pattern.Values{"maxDepth": 2.0, "subdivision": quadtree.Uniform, "outline": false})
	svg := QuadtreeSVG(g, 64, 64)
	if n := strings.Count(svg, "<rect x="); n != 16 {
		t.Errorf("rects = %d, want 16", n)
	}

	g.Configure(pattern.Values{"maxDepth": 1.0, "subdivision": quadtree.Uniform, "colorMode": quadtree.ColorHalfCircle, "outline": true})
	svg = QuadtreeSVG(g, 64, 64)
	if strings.Count(svg, "<path") != 4 || strings.Count(svg, "<rect x=") != 4 {
		t.Errorf("half circles svg = %s", svg)
	}
}

func TestSeriesCSVAndJSON(t *testing.T) {
	s := &Series{Pattern: "attractor", System: "lorenz", Dt: 0.5}
	s.Add(0.5, []float64{1, 2, 3})
	s.Add(1.0, []float64{4, 5, 6})
	if s.Steps != 2 {
		t.Fatalf("steps = %d", s.Steps)
	}

	var csvBuf bytes.Buffer
	if err := s.WriteCSV(&csvBuf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(csvBuf.String()), "\n")
	if len(lines) != 3 || lines[0] != "time,x0,x1,x2" || lines[2] != "1.000000,4.000000,5.000000,6.000000" {
		t.Errorf("csv = %q", lines)
	}

	path := filepath.Join(t.TempDir(), "s.json")
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back Series
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.System != "lorenz" || len(back.States) != 2 || back.States[1][2] != 6 {
		t.Errorf("round trip = %+v", back)
	}

	if err := (&Series{}).WriteCSV(&csvBuf); err == nil {
		t.Error("empty series should not export")
	}
}
