package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/genlab/internal/clip"
	"github.com/san-kum/genlab/internal/preset"
)

var (
	presetPattern string
	toClipboard   bool
	fromClipboard bool
)

func newPresetCmd() *cobra.Command {
	presetCmd := &cobra.Command{
		Use:   "preset",
		Short: "manage saved presets",
	}

	saveCmd := &cobra.Command{
		Use:   "save <name> [pattern]",
		Short: "save the current values as a preset",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  savePreset,
	}
	addValueFlags(saveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	listCmd.Flags().StringVar(&presetPattern, "pattern", "", "only presets for this pattern")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "print a preset's values",
		Args:  cobra.ExactArgs(1),
		RunE:  showPreset,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *preset.Store) error {
				if err := s.Delete(args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("deleted "+args[0]))
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "delete every preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *preset.Store) error { return s.Clear() })
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "export one preset, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportPresets,
	}
	exportCmd.Flags().StringVarP(&output, "out", "o", "", "output file, - for stdout (default: suggested name)")
	exportCmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy the JSON to the clipboard")

	importCmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "import presets from a file, stdin or the clipboard",
		Args:  cobra.MaximumNArgs(1),
		RunE:  importPresets,
	}
	importCmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "read the JSON from the clipboard")

	presetCmd.AddCommand(saveCmd, listCmd, showCmd, deleteCmd, clearCmd, exportCmd, importCmd)
	return presetCmd
}

func withStore(fn func(*preset.Store) error) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	return fn(s)
}

func savePreset(cmd *cobra.Command, args []string) error {
	d, err := patternArg(args[1:])
	if err != nil {
		return err
	}
	v, err := resolveValues(d)
	if err != nil {
		return err
	}
	return withStore(func(s *preset.Store) error {
		p, err := s.Save(args[0], d.ID, v)
		if errors.Is(err, preset.ErrDuplicate) {
			fmt.Fprintf(cmd.OutOrStdout(), "already saved as %q (%s)\n", p.Name, p.ID)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("saved %q (%s)", p.Name, p.ID)))
		return nil
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	return withStore(func(s *preset.Store) error {
		list := s.List()
		if presetPattern != "" {
			if _, err := reg.Get(presetPattern); err != nil {
				return err
			}
			list = s.ForPattern(presetPattern)
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("no presets"))
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPATTERN\tCREATED")
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.GeneratorType, p.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	})
}

func showPreset(cmd *cobra.Command, args []string) error {
	return withStore(func(s *preset.Store) error {
		p, err := s.Get(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", titleStyle.Render(p.Name), mutedStyle.Render(p.GeneratorType))
		fmt.Fprintf(out, "id:      %s\ncreated: %s\nhash:    %s\n", p.ID, p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), p.ContentHash)
		keys := p.Parameters.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %-20s %v\n", k, p.Parameters[k])
		}
		return nil
	})
}

func exportPresets(cmd *cobra.Command, args []string) error {
	return withStore(func(s *preset.Store) error {
		var (
			name string
			data []byte
			err  error
		)
		if len(args) == 1 {
			name, data, err = s.ExportOne(args[0])
		} else {
			name, data, err = s.ExportAll()
		}
		if err != nil {
			return err
		}

		if toClipboard {
			if err := clip.WriteText(string(data)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("copied to clipboard"))
			return nil
		}
		switch output {
		case "-":
			_, err := cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		case "":
		default:
			name = output
		}
		if err := os.WriteFile(name, data, 0644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("wrote "+name))
		return nil
	})
}

func importPresets(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	switch {
	case fromClipboard:
		var text string
		text, err = clip.ReadText()
		data = []byte(text)
	case len(args) == 0 || args[0] == "-":
		data, err = io.ReadAll(cmd.InOrStdin())
	default:
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	return withStore(func(s *preset.Store) error {
		res, err := s.Import(data)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("imported %d preset(s)", len(res.Imported))))
		for _, sk := range res.Skipped {
			fmt.Fprintf(out, "  skipped %s: %s\n", sk.Name, sk.Reason)
		}
		renamed := make([]string, 0, len(res.Renamed))
		for now, was := range res.Renamed {
			renamed = append(renamed, fmt.Sprintf("%s -> %s", was, now))
		}
		sort.Strings(renamed)
		if len(renamed) > 0 {
			fmt.Fprintf(out, "  renamed: %s\n", strings.Join(renamed, ", "))
		}
		return nil
	})
}
