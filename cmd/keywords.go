package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/fivemoreminix/moledit/pkg/config"
	"github.com/fivemoreminix/moledit/pkg/log"
	"github.com/fivemoreminix/moledit/pkg/render"
	"github.com/fivemoreminix/moledit/pkg/syntax"
)

var (
	styleColor  string
	styleBold   bool
	styleItalic bool
)

var keywordsCmd = &cobra.Command{
	Use:     "keywords",
	Aliases: []string{"kw"},
	Short:   "Manage keyword categories",
	Long: `Manage the keyword categories of the keyword file.

Categories are matched in order: when two keywords match the same text with
the same length, the earlier category wins. Patterns are plain text where
{c} stands for one or more repetitions of c and a backslash escapes the next
character.

Examples:
  moledit keywords list
  moledit keywords add loops 반복 --color '#FF00FF' --bold
  moledit keywords add-word variables 모{오}오올
  moledit keywords set io 루 아 --italic
  moledit keywords rm-word operators '...'
  moledit keywords reset`,
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in priority order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadOrDefault(settings.KeywordsPath())
		if err != nil {
			return err
		}
		return listCategories(cmd.OutOrStdout(), reg)
	},
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add NAME [PATTERN...]",
	Short: "Add a category with the lowest priority",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style := syntax.Style{Color: styleColor, Bold: styleBold, Italic: styleItalic}
		return mutateKeywords(cmd, func(reg *syntax.Registry) error {
			return reg.AddCategory(args[0], args[1:], style)
		})
	},
}

var keywordsSetCmd = &cobra.Command{
	Use:   "set NAME [PATTERN...]",
	Short: "Replace a category's patterns or style",
	Long: `Replace a category's patterns with the given ones, and its style with the
given style flags. Without patterns the patterns are kept; style flags that
are not given keep their current value.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		return mutateKeywords(cmd, func(reg *syntax.Registry) error {
			cat, ok := reg.Category(name)
			if !ok {
				return fmt.Errorf("category %q: %w", name, syntax.ErrNotFound)
			}

			var opts []syntax.UpdateOption
			if len(args) > 1 {
				opts = append(opts, syntax.WithPatterns(args[1:]...))
			}
			flags := cmd.Flags()
			if flags.Changed("color") || flags.Changed("bold") || flags.Changed("italic") {
				style := cat.Style
				if flags.Changed("color") {
					style.Color = styleColor
				}
				if flags.Changed("bold") {
					style.Bold = styleBold
				}
				if flags.Changed("italic") {
					style.Italic = styleItalic
				}
				opts = append(opts, syntax.WithStyle(style))
			}
			if len(opts) == 0 {
				return fmt.Errorf("nothing to change: give patterns or style flags")
			}
			return reg.UpdateCategory(name, opts...)
		})
	},
}

var keywordsRmCmd = &cobra.Command{
	Use:     "rm NAME",
	Aliases: []string{"remove"},
	Short:   "Remove a category",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateKeywords(cmd, func(reg *syntax.Registry) error {
			return reg.RemoveCategory(args[0])
		})
	},
}

var keywordsAddWordCmd = &cobra.Command{
	Use:   "add-word NAME PATTERN...",
	Short: "Add patterns to a category",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateKeywords(cmd, func(reg *syntax.Registry) error {
			for _, p := range args[1:] {
				if err := reg.AddKeyword(args[0], p); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var keywordsRmWordCmd = &cobra.Command{
	Use:   "rm-word NAME PATTERN...",
	Short: "Remove patterns from a category",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateKeywords(cmd, func(reg *syntax.Registry) error {
			for _, p := range args[1:] {
				if err := reg.RemoveKeyword(args[0], p); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var keywordsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in categories (the old file is kept as a backup)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settings.KeywordsPath()
		if backup, err := config.Backup(path); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "backed up %s to %s\n", path, backup)
		}
		return mutateKeywords(cmd, func(reg *syntax.Registry) error {
			reg.ResetToDefaults()
			return nil
		})
	},
}

var keywordsBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the keyword file to <file>.backup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := config.Backup(settings.KeywordsPath())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), backup)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{keywordsAddCmd, keywordsSetCmd} {
		c.Flags().StringVar(&styleColor, "color", "", "color as #RGB or #RRGGBB")
		c.Flags().BoolVar(&styleBold, "bold", false, "draw in bold")
		c.Flags().BoolVar(&styleItalic, "italic", false, "draw in italics")
	}

	keywordsCmd.AddCommand(
		keywordsListCmd,
		keywordsAddCmd,
		keywordsSetCmd,
		keywordsRmCmd,
		keywordsAddWordCmd,
		keywordsRmWordCmd,
		keywordsResetCmd,
		keywordsBackupCmd,
	)
	rootCmd.AddCommand(keywordsCmd)
}

// mutateKeywords loads the keyword file, applies fn and saves the result. A
// failing fn leaves the file untouched.
func mutateKeywords(cmd *cobra.Command, fn func(*syntax.Registry) error) error {
	path := settings.KeywordsPath()
	reg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		log.ErrorErr(log.CatCLI, "keyword change rejected", err, "command", cmd.Name())
		return err
	}
	if err := config.Save(reg, path); err != nil {
		return err
	}
	return listCategories(cmd.OutOrStdout(), reg)
}

// listCategories prints one category per line, each name in its own style.
func listCategories(w io.Writer, reg *syntax.Registry) error {
	r := render.NewRenderer(termenv.NewOutput(w).EnvColorProfile())
	for c := range reg.All() {
		style := describeStyle(c.Style)
		name := r.Style(c.Name, &c)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", name, style, strings.Join(c.Patterns, " ")); err != nil {
			return err
		}
	}
	return nil
}

func describeStyle(s syntax.Style) string {
	parts := []string{s.Color}
	if s.Color == "" {
		parts[0] = "-"
	}
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	return strings.Join(parts, ",")
}
