// Package export writes rendered frames to PNG and animated GIF, and vector
// patterns to SVG.
package export

import (
	"fmt"
	"image"
	stdpalette "image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
)

// PNG encodes img.
func PNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WritePNG writes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Recorder collects frames for an animated GIF. Frames are dithered onto the
// Plan 9 palette as they arrive, so the source surface may be reused.
type Recorder struct {
	anim  gif.GIF
	delay int
}

// NewRecorder returns a recorder whose frames last 1/fps seconds.
func NewRecorder(fps int) *Recorder {
	return &Recorder{delay: max(1, 100/max(1, fps))}
}

func (r *Recorder) Add(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), stdpalette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, b.Min)
	r.anim.Image = append(r.anim.Image, p)
	r.anim.Delay = append(r.anim.Delay, r.delay)
}

func (r *Recorder) Len() int { return len(r.anim.Image) }

func (r *Recorder) Encode(w io.Writer) error {
	if len(r.anim.Image) == 0 {
		return fmt.Errorf("no frames recorded")
	}
	if err := gif.EncodeAll(w, &r.anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	return nil
}

func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Reset drops recorded frames.
func (r *Recorder) Reset() { r.anim = gif.GIF{} }
