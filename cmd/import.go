package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fivemoreminix/moledit/pkg/config"
	"github.com/fivemoreminix/moledit/pkg/log"
)

var importCmd = &cobra.Command{
	Use:   "import LEGACY.json",
	Short: "Convert a keyword file of the earlier Mollang IDE",
	Long: `Convert the JSON keyword file written by the earlier Mollang IDE
({"name": {"words": [...], "color": "#RRGGBB"}}) into the keyword file.
The current keyword file, if any, is backed up first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		reg, err := config.ImportLegacy(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		path := settings.KeywordsPath()
		if backup, err := config.Backup(path); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "backed up %s to %s\n", path, backup)
		}
		if err := config.Save(reg, path); err != nil {
			return err
		}
		log.Info(log.CatCLI, "imported legacy keywords", "from", args[0], "to", path)
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d categories into %s\n", reg.Len(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
