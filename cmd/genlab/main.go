package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/genlab/internal/catalog"
	"github.com/san-kum/genlab/internal/config"
	"github.com/san-kum/genlab/internal/content"
	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/preset"
)

var (
	cfg *config.Config
	reg = catalog.New()

	configFile string
	logLevel   string
	dataDir    string
	contentDir string

	width     int
	height    int
	fps       int
	at        float64
	frames    int
	output    string
	setFlags  []string
	presetArg string
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "genlab",
		Short:             "generative pattern laboratory",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLevel, "log level (debug, info, warn, error, off)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir(), "data directory")
	pf.StringVar(&contentDir, "content", "", "directory of educational markdown (default: built in)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list patterns",
		Args:  cobra.NoArgs,
		RunE:  listPatterns,
	}

	controlsCmd := &cobra.Command{
		Use:   "controls [pattern]",
		Short: "describe a pattern's controls",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showControls,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [pattern]",
		Short: "list built-in presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listBuiltinPresets,
	}

	learnCmd := &cobra.Command{
		Use:   "learn [pattern]",
		Short: "print the educational content for a pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showContent,
	}
	learnCmd.Flags().String("level", "", "only this level (intuitive, conceptual, technical)")

	rootCmd.AddCommand(
		listCmd, controlsCmd, presetsCmd, learnCmd,
		newRenderCmd(), newAnimateCmd(), newSVGCmd(),
		newLiveCmd(), newWindowCmd(), newServeCmd(),
		newTraceCmd(), newPresetCmd(),
	)
	return rootCmd
}

// loadConfig reads the config file and lets explicitly set flags override it.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("content") {
		cfg.ContentDir = contentDir
	}
	logx.Setup(os.Stderr, cfg.LogLevel)
	logx.Logger().Debug("config loaded", "file", configFile, "data", cfg.DataDir)
	return nil
}

// addFrameFlags registers the surface flags; zero means "from config".
func addFrameFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 0, "surface width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "surface height in pixels")
	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second")
}

func addValueFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&setFlags, "set", nil, "control value as key=value (repeatable)")
	cmd.Flags().StringVar(&presetArg, "preset", "", "start from a built-in preset")
}

func frameSize() (int, int, int) {
	w, h, f := width, height, fps
	if w <= 0 {
		w = cfg.Width
	}
	if h <= 0 {
		h = cfg.Height
	}
	if f <= 0 {
		f = cfg.FPS
	}
	return w, h, f
}

// patternArg returns the descriptor named by args[0], or the configured
// default pattern.
func patternArg(args []string) (*pattern.Descriptor, error) {
	id := cfg.Pattern
	if len(args) > 0 {
		id = args[0]
	}
	return reg.Get(id)
}

// resolveValues layers config overrides, the built-in preset and --set flags.
func resolveValues(d *pattern.Descriptor) (pattern.Values, error) {
	v := pattern.Values{}
	for k, x := range cfg.PatternValues(d.ID) {
		v[k] = x
	}
	if presetArg != "" {
		p := config.GetPreset(d.ID, presetArg)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetArg, config.ListPresets(d.ID))
		}
		for k, x := range p {
			v[k] = x
		}
	}
	for _, kv := range setFlags {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected key=value", kv)
		}
		c, ok := d.Control(key)
		if !ok || !c.HasValue() {
			return nil, fmt.Errorf("%w: %s", pattern.ErrUnknownControl, key)
		}
		x, err := c.Parse(raw)
		if err != nil {
			return nil, err
		}
		v[key] = x
	}
	return d.Normalize(v)
}

func openStore() (*preset.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}
	return preset.Open(cfg.PresetFile(), reg)
}

func library() *content.Library {
	return content.FromDir(cfg.ContentDir)
}

func listPatterns(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCONTROLS\tDESCRIPTION")
	for _, d := range reg.List() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", d.ID, d.Name, len(d.Controls), d.Description)
	}
	return w.Flush()
}

func showControls(cmd *cobra.Command, args []string) error {
	d, err := patternArg(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(d.Name)+" "+mutedStyle.Render(d.ID))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tRANGE\tDEFAULT")
	for _, c := range d.Controls {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", c.ID, c.Type, controlRange(c), displayDefault(c))
	}
	return w.Flush()
}

func controlRange(c pattern.Control) string {
	switch {
	case c.Type == pattern.Range && c.Min != nil && c.Max != nil:
		step := 1.0
		if c.Step != nil {
			step = *c.Step
		}
		return fmt.Sprintf("%g..%g step %g", *c.Min, *c.Max, step)
	case len(c.Options) > 0:
		return strings.Join(c.Options, "|")
	}
	return "-"
}

func displayDefault(c pattern.Control) any {
	if !c.HasValue() {
		return "-"
	}
	return c.Default
}

func listBuiltinPresets(cmd *cobra.Command, args []string) error {
	ids := reg.IDs()
	if len(args) > 0 {
		d, err := reg.Get(args[0])
		if err != nil {
			return err
		}
		ids = []string{d.ID}
	}
	out := cmd.OutOrStdout()
	for _, id := range ids {
		names := config.ListPresets(id)
		if len(names) == 0 {
			fmt.Fprintf(out, "no presets for pattern: %s\n", id)
			continue
		}
		fmt.Fprintf(out, "presets for %s:\n", titleStyle.Render(id))
		for _, name := range names {
			p := config.GetPreset(id, name)
			keys := make([]string, 0, len(p))
			for k := range p {
				keys = append(keys, fmt.Sprintf("%s=%v", k, p[k]))
			}
			sort.Strings(keys)
			fmt.Fprintf(out, "  %-12s %s\n", name, mutedStyle.Render(strings.Join(keys, " ")))
		}
	}
	return nil
}

func showContent(cmd *cobra.Command, args []string) error {
	d, err := patternArg(args)
	if err != nil {
		return err
	}
	only, _ := cmd.Flags().GetString("level")
	c := library().Load(d.ID)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(d.Name))
	for _, l := range c.Layers {
		if only != "" && string(l.Level) != strings.ToLower(only) {
			continue
		}
		fmt.Fprintf(out, "\n%s %s\n\n%s\n", okStyle.Render("## "+l.Title), mutedStyle.Render("("+string(l.Level)+")"), l.Markdown)
	}
	return nil
}
