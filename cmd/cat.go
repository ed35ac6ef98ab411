package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/fivemoreminix/moledit/pkg/config"
	"github.com/fivemoreminix/moledit/pkg/render"
)

var catPlain bool

var catCmd = &cobra.Command{
	Use:   "cat [FILE...]",
	Short: "Print Mollang source with keywords highlighted",
	Long: `Print Mollang source to stdout with keywords highlighted in ANSI colors.
With no FILE, or when FILE is -, read standard input. Colors follow the
terminal's capabilities and the NO_COLOR / CLICOLOR_FORCE conventions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := config.LoadOrDefault(settings.KeywordsPath())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		profile := termenv.NewOutput(out).EnvColorProfile()
		if catPlain {
			profile = termenv.Ascii
		}
		r := render.NewRenderer(profile)

		if len(args) == 0 {
			args = []string{"-"}
		}
		for _, path := range args {
			text, err := readSource(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			if err := r.Write(out, text, reg.Matcher()); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	catCmd.Flags().BoolVar(&catPlain, "plain", false, "never emit colors")
	rootCmd.AddCommand(catCmd)
}

func readSource(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
