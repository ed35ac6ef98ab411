// Package cmd implements the moledit command line: the editor itself and the
// subcommands that manage keyword files without opening it.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivemoreminix/moledit/pkg/config"
	"github.com/fivemoreminix/moledit/pkg/log"
)

var (
	version   = "dev"
	cfgFile   string
	settings  config.Settings
	configErr error // Problem reading the settings file, reported before any command runs
	debug     bool
	closeLog  func()
)

var rootCmd = &cobra.Command{
	Use:   "moledit [file]",
	Short: "A terminal editor for Mollang",
	Long: `moledit edits Mollang source with keyword highlighting.

Keywords are grouped into styled categories stored in a YAML keyword file
(default: ~/.config/moledit/keywords.yaml). Edit them with 'moledit keywords'
or reset them from inside the editor.

Keys:
  Ctrl+S  write file          Ctrl+K  save keywords
  Ctrl+L  reload keywords     Ctrl+R  reset keywords to defaults
  Ctrl+C  copy selection/line Ctrl+X  cut selection
  Ctrl+V  paste               Ctrl+G  go to line
  Ctrl+W  add the selection as a keyword of a category
  Ctrl+Q  quit`,
	Version:           version,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if closeLog != nil {
			closeLog()
			closeLog = nil
		}
	},
	RunE: runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.moledit.yaml or ~/.config/moledit/config.yaml)")
	rootCmd.PersistentFlags().StringP("keywords", "k", "",
		"keyword file (default: ~/.config/moledit/keywords.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log (also enabled by MOLEDIT_DEBUG)")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload keywords when the keyword file changes")

	_ = viper.BindPFlag("keywords_file", rootCmd.PersistentFlags().Lookup("keywords"))
}

func initConfig() {
	defaults := config.DefaultSettings()
	viper.SetDefault("keywords_file", defaults.KeywordsFile)
	viper.SetDefault("watch_keywords", defaults.WatchKeywords)
	viper.SetDefault("tab_size", defaults.TabSize)
	viper.SetDefault("hard_tabs", defaults.HardTabs)
	viper.SetDefault("line_numbers", defaults.LineNumbers)
	viper.SetDefault("clipboard", defaults.Clipboard)
	viper.SetDefault("log_file", defaults.LogFile)
	viper.SetDefault("log_level", defaults.LogLevel)

	viper.SetEnvPrefix("moledit")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .moledit.yaml (current directory)
		// 2. ~/.config/moledit/config.yaml (user config)
		if _, err := os.Stat(".moledit.yaml"); err == nil {
			viper.SetConfigFile(".moledit.yaml")
		} else {
			viper.AddConfigPath(config.ConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	configErr = nil
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}

	settings = defaults
	if err := viper.Unmarshal(&settings); err != nil && configErr == nil {
		configErr = fmt.Errorf("decoding config: %w", err)
	}
}

// setup reports settings problems and starts the debug log.
func setup(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if debug || os.Getenv("MOLEDIT_DEBUG") != "" {
		cleanup, err := log.Init(settings.LogFile)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		closeLog = cleanup
		log.SetMinLevel(log.ParseLevel(settings.LogLevel))
		log.Info(log.CatCLI, "starting", "command", cmd.CommandPath(), "version", version)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
