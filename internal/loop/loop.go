// Package loop drives a generator frame by frame, either against the wall
// clock or offline as fast as frames can be produced.
package loop

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/pattern"
)

// ErrNoSurface is returned by a Sink that cannot provide a surface right now.
// The loop skips the frame and tries again on the next tick.
var ErrNoSurface = errors.New("no drawing surface")

type Options struct {
	FPS       int
	MaxFrames int // 0 runs until the context is cancelled
}

func (o Options) validate() error {
	if o.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", o.FPS)
	}
	if o.MaxFrames < 0 {
		return fmt.Errorf("max frames must not be negative, got %d", o.MaxFrames)
	}
	return nil
}

// Sink supplies surfaces and receives drawn frames.
type Sink interface {
	Surface() (*image.RGBA, error)
	Present(frame int, img *image.RGBA) error
}

type Stats struct {
	Frames  int
	Skipped int
}

// Clock produces fixed-rate ticks. Elapsed is frame·dt, so a run is
// reproducible regardless of scheduling jitter.
type Clock struct {
	dt    float64
	frame int
}

func NewClock(fps int) *Clock {
	return &Clock{dt: 1 / float64(max(1, fps))}
}

// Next returns the tick for the next frame.
func (c *Clock) Next() pattern.Tick {
	t := pattern.Tick{Frame: c.frame, Elapsed: float64(c.frame) * c.dt, Dt: c.dt}
	c.frame++
	return t
}

func (c *Clock) Reset() { c.frame = 0 }

// Run ticks gen at opts.FPS until ctx is done or MaxFrames frames have been
// presented. Frames whose surface is unavailable are skipped; the first
// skip is logged.
func Run(ctx context.Context, gen pattern.Generator, opts Options, sink Sink) (Stats, error) {
	var st Stats
	if err := opts.validate(); err != nil {
		return st, err
	}

	clock := NewClock(opts.FPS)
	ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
	defer ticker.Stop()

	var lastW, lastH int
	warned := false
	for {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case <-ticker.C:
		}

		gen.Update(clock.Next())

		img, err := sink.Surface()
		if errors.Is(err, ErrNoSurface) {
			st.Skipped++
			if !warned {
				logx.Logger().Warn("surface unavailable, skipping frames")
				warned = true
			}
			continue
		}
		if err != nil {
			return st, err
		}

		if b := img.Bounds(); b.Dx() != lastW || b.Dy() != lastH {
			lastW, lastH = b.Dx(), b.Dy()
			if r, ok := gen.(pattern.Resizer); ok {
				r.Resize(lastW, lastH)
			}
		}
		gen.Draw(img)
		if err := sink.Present(st.Frames, img); err != nil {
			return st, err
		}
		st.Frames++
		if opts.MaxFrames > 0 && st.Frames >= opts.MaxFrames {
			return st, nil
		}
	}
}

// Offline renders frames frames into a width×height surface with a fixed
// time step and no waiting. The surface is reused; fn must copy it to keep
// a frame.
func Offline(gen pattern.Generator, width, height, fps, frames int, fn func(frame int, img *image.RGBA) error) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("surface must be positive, got %dx%d", width, height)
	}
	if r, ok := gen.(pattern.Resizer); ok {
		r.Resize(width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	clock := NewClock(fps)
	for i := 0; i < frames; i++ {
		gen.Update(clock.Next())
		gen.Draw(img)
		if err := fn(i, img); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot advances gen to time at and draws a single frame. Intermediate
// ticks only update; the surface is drawn once.
func Snapshot(gen pattern.Generator, width, height, fps int, at float64) (*image.RGBA, error) {
	if at < 0 || math.IsNaN(at) || math.IsInf(at, 0) {
		return nil, fmt.Errorf("snapshot time must be finite and not negative, got %v", at)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface must be positive, got %dx%d", width, height)
	}
	if r, ok := gen.(pattern.Resizer); ok {
		r.Resize(width, height)
	}
	clock := NewClock(fps)
	frames := int(at*float64(max(1, fps))) + 1
	for i := 0; i < frames; i++ {
		gen.Update(clock.Next())
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gen.Draw(img)
	return img, nil
}

// BufferSink is a Sink over one reusable surface that hands each frame to a
// callback.
type BufferSink struct {
	img     *image.RGBA
	present func(frame int, img *image.RGBA) error
}

func NewBufferSink(width, height int, present func(frame int, img *image.RGBA) error) *BufferSink {
	return &BufferSink{img: image.NewRGBA(image.Rect(0, 0, width, height)), present: present}
}

func (s *BufferSink) Surface() (*image.RGBA, error) {
	if s.img == nil || s.img.Bounds().Empty() {
		return nil, ErrNoSurface
	}
	return s.img, nil
}

func (s *BufferSink) Present(frame int, img *image.RGBA) error {
	return s.present(frame, img)
}

// Resize swaps in a new surface; a zero size makes the sink unavailable.
func (s *BufferSink) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		s.img = nil
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}
