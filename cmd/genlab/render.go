package main

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/genlab/internal/export"
	"github.com/san-kum/genlab/internal/generators/attractor"
	"github.com/san-kum/genlab/internal/generators/quadtree"
	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/loop"
	"github.com/san-kum/genlab/internal/pattern"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [pattern]",
		Short: "render one frame to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrame,
	}
	addFrameFlags(cmd)
	addValueFlags(cmd)
	cmd.Flags().Float64Var(&at, "at", 2, "time in seconds to render")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default genlab_<pattern>.png)")
	return cmd
}

func newAnimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animate [pattern]",
		Short: "render an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderAnimation,
	}
	addFrameFlags(cmd)
	addValueFlags(cmd)
	cmd.Flags().IntVar(&frames, "frames", 90, "number of frames")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default genlab_<pattern>.gif)")
	return cmd
}

func newSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svg [pattern]",
		Short: "export an attractor or quadtree as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSVG,
	}
	addFrameFlags(cmd)
	addValueFlags(cmd)
	cmd.Flags().IntVar(&frames, "frames", 120, "frames to simulate before export")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default genlab_<pattern>.svg)")
	return cmd
}

// instantiate resolves args and flags into a fresh generator.
func instantiate(args []string) (*pattern.Descriptor, pattern.Generator, error) {
	d, err := patternArg(args)
	if err != nil {
		return nil, nil, err
	}
	v, err := resolveValues(d)
	if err != nil {
		return nil, nil, err
	}
	g, _, err := d.Instantiate(v)
	if err != nil {
		return nil, nil, err
	}
	return d, g, nil
}

func outPath(id, ext string) string {
	if output != "" {
		return output
	}
	return "genlab_" + id + ext
}

func renderFrame(cmd *cobra.Command, args []string) error {
	d, g, err := instantiate(args)
	if err != nil {
		return err
	}
	if at < 0 {
		return fmt.Errorf("--at must not be negative, got %g", at)
	}
	w, h, f := frameSize()
	img, err := loop.Snapshot(g, w, h, f, at)
	if err != nil {
		return err
	}
	path := outPath(d.ID, ".png")
	if err := export.WritePNG(path, img); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("wrote "+path))
	return nil
}

func renderAnimation(cmd *cobra.Command, args []string) error {
	d, g, err := instantiate(args)
	if err != nil {
		return err
	}
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}
	w, h, f := frameSize()
	rec := export.NewRecorder(f)
	err = loop.Offline(g, w, h, f, frames, func(frame int, img *image.RGBA) error {
		rec.Add(img)
		logx.Logger().Debug("frame encoded", "frame", frame)
		return nil
	})
	if err != nil {
		return err
	}
	path := outPath(d.ID, ".gif")
	if err := rec.Save(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("wrote %s (%d frames)", path, rec.Len())))
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	d, g, err := instantiate(args)
	if err != nil {
		return err
	}
	w, h, f := frameSize()
	if err := loop.Offline(g, w, h, f, max(1, frames), func(int, *image.RGBA) error { return nil }); err != nil {
		return err
	}

	var svg string
	switch gen := g.(type) {
	case *attractor.Generator:
		svg = export.AttractorSVG(gen, w, h)
	case *quadtree.Generator:
		svg = export.QuadtreeSVG(gen, w, h)
	default:
		return fmt.Errorf("svg export supports %s and %s, not %s", attractor.ID, quadtree.ID, d.ID)
	}
	if svg == "" {
		return fmt.Errorf("%s produced nothing to export", d.ID)
	}
	path := outPath(d.ID, ".svg")
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("wrote "+path))
	return nil
}
