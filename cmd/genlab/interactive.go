package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/genlab/internal/api"
	"github.com/san-kum/genlab/internal/gui"
	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/session"
	"github.com/san-kum/genlab/internal/viz"
)

var (
	theme   string
	menu    bool
	scale   int
	addr    string
	outDir  string
	braille bool
)

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live [pattern]",
		Short: "run a pattern in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	cmd.Flags().IntVar(&fps, "fps", 0, "frame rate")
	addValueFlags(cmd)
	cmd.Flags().StringVar(&theme, "theme", "", "colour theme ("+fmt.Sprint(viz.ThemeNames())+")")
	cmd.Flags().IntVar(&scale, "scale", 2, "supersampling factor")
	cmd.Flags().BoolVar(&braille, "braille", false, "render with Braille dots")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for recorded GIFs")
	return cmd
}

func newWindowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window [pattern]",
		Short: "run a pattern in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWindow,
	}
	addValueFlags(cmd)
	cmd.Flags().BoolVar(&menu, "menu", false, "start at the pattern menu")
	cmd.Flags().IntVar(&scale, "scale", 2, "window pixels per surface pixel")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for screenshots and GIFs")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP and WebSocket API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func newSession(args []string) (*session.Session, error) {
	d, err := patternArg(args)
	if err != nil {
		return nil, err
	}
	v, err := resolveValues(d)
	if err != nil {
		return nil, err
	}
	_, _, f := frameSize()
	return session.New(reg, d.ID, v, f)
}

func runLive(cmd *cobra.Command, args []string) error {
	sess, err := newSession(args)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		logx.Logger().Warn("presets unavailable", "err", err)
		store = nil
	}
	_, _, f := frameSize()
	return viz.Run(sess, reg, viz.Options{
		Store:   store,
		Content: library(),
		FPS:     f,
		Scale:   scale,
		Theme:   theme,
		GIFDir:  outDir,
		Braille: braille,
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	sess, err := newSession(args)
	if err != nil {
		return err
	}
	return gui.Run(sess, reg, gui.Options{Scale: scale, Interactive: menu, OutDir: outDir})
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.RegisterRoutes(reg, store, library()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	fmt.Fprintf(cmd.OutOrStdout(), "genlab listening on %s\n", addr)
	logx.Logger().Info("server started", "addr", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logx.Logger().Info("server stopped")
	return nil
}
