// Package config handles configuration loading and validation for codeview.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	GitPath string       `yaml:"git_path"`
	TUI     TUIConfig    `yaml:"tui"`
	Tree    TreeConfig   `yaml:"tree"`
	Linter  LinterConfig `yaml:"linter"`
	DataDir string       `yaml:"-"` // set by caller, not from config file
}

// TUIConfig holds display settings for the browser.
type TUIConfig struct {
	Theme           string `yaml:"theme"`
	Icons           *bool  `yaml:"icons"`
	SyntaxHighlight *bool  `yaml:"syntax_highlight"`
	TreeWidth       int    `yaml:"tree_width"` // percent of the terminal width
	ShowSidePanel   *bool  `yaml:"show_side_panel"`
}

// IconsEnabled reports whether nerd-font icons are drawn in the tree.
func (t TUIConfig) IconsEnabled() bool { return t.Icons == nil || *t.Icons }

// HighlightEnabled reports whether the code view is syntax highlighted.
func (t TUIConfig) HighlightEnabled() bool { return t.SyntaxHighlight == nil || *t.SyntaxHighlight }

// SidePanelVisible reports whether the side panel starts visible.
func (t TUIConfig) SidePanelVisible() bool { return t.ShowSidePanel == nil || *t.ShowSidePanel }

// TreeConfig controls which files make up a version's tree.
type TreeConfig struct {
	Ignore      []string `yaml:"ignore"`       // doublestar globs removed from the tree
	DefaultFile string   `yaml:"default_file"` // preferred initial selection
}

// LinterConfig locates linter results. Both fields are optional; a result
// file wins over a command.
type LinterConfig struct {
	ResultFile string `yaml:"result_file"`
	Command    string `yaml:"command"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GitPath: "git",
		TUI: TUIConfig{
			Theme:     "tokyo-night",
			TreeWidth: 30,
		},
		Tree: TreeConfig{
			Ignore:      []string{},
			DefaultFile: "manifest.json",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.GitPath == "" {
		c.GitPath = defaults.GitPath
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.TreeWidth == 0 {
		c.TUI.TreeWidth = defaults.TUI.TreeWidth
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.TUI.TreeWidth < 10 || c.TUI.TreeWidth > 80 {
		return fmt.Errorf("tui.tree_width must be between 10 and 80, got %d", c.TUI.TreeWidth)
	}

	return nil
}
