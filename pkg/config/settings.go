package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds the editor options read by viper from the settings file,
// environment and flags.
type Settings struct {
	KeywordsFile  string `mapstructure:"keywords_file"`  // Keyword record; empty means DefaultKeywordsPath()
	WatchKeywords bool   `mapstructure:"watch_keywords"` // Reload keywords when the file changes on disk
	TabSize       int    `mapstructure:"tab_size"`
	HardTabs      bool   `mapstructure:"hard_tabs"`
	LineNumbers   bool   `mapstructure:"line_numbers"`
	Clipboard     string `mapstructure:"clipboard"` // "external" (default) or "internal"
	LogFile       string `mapstructure:"log_file"`  // Debug log destination
	LogLevel      string `mapstructure:"log_level"`
}

// DefaultSettings returns Settings with sensible default values.
func DefaultSettings() Settings {
	return Settings{
		KeywordsFile:  "",
		WatchKeywords: true,
		TabSize:       4,
		HardTabs:      true,
		LineNumbers:   true,
		Clipboard:     "external",
		LogFile:       "moledit.log",
		LogLevel:      "debug",
	}
}

// Validate checks option values that would break the editor.
func (s Settings) Validate() error {
	if s.TabSize < 1 || s.TabSize > 16 {
		return fmt.Errorf("tab_size must be between 1 and 16, got %d", s.TabSize)
	}
	switch s.Clipboard {
	case "external", "internal":
	default:
		return fmt.Errorf("clipboard must be \"external\" or \"internal\", got %q", s.Clipboard)
	}
	return nil
}

// KeywordsPath returns the keyword record to use.
func (s Settings) KeywordsPath() string {
	if s.KeywordsFile != "" {
		return s.KeywordsFile
	}
	return DefaultKeywordsPath()
}

// ConfigDir returns ~/.config/moledit, or the working directory when the home
// directory is unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "moledit")
}

// DefaultKeywordsPath returns the keyword record inside ConfigDir.
func DefaultKeywordsPath() string {
	return filepath.Join(ConfigDir(), "keywords.yaml")
}
