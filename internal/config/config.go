package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/TimelordUK/least/internal/textutil"
)

// Config holds all application configuration
type Config struct {
	Theme       ThemeConfig      `toml:"theme"`
	Keybindings KeybindingConfig `toml:"keybindings"`
	Display     DisplayConfig    `toml:"display"`
	Log         LogConfig        `toml:"log"`
}

// ThemeConfig defines colors. An empty color keeps the terminal default.
type ThemeConfig struct {
	Bold          string `toml:"bold"`
	Underline     string `toml:"underline"`
	LineNumbers   string `toml:"line_numbers"`
	StatusBar     string `toml:"status_bar"`
	StatusBarText string `toml:"status_bar_text"`
}

// KeybindingConfig lists the keys for single-key actions. The gg and
// g<N><Enter> sequences are fixed.
type KeybindingConfig struct {
	Quit         []string `toml:"quit"`
	ScrollUp     []string `toml:"scroll_up"`
	ScrollDown   []string `toml:"scroll_down"`
	HalfPageUp   []string `toml:"half_page_up"`
	HalfPageDown []string `toml:"half_page_down"`
	PageUp       []string `toml:"page_up"`
	PageDown     []string `toml:"page_down"`
	Bottom       []string `toml:"bottom"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
	ShowStatusBar   bool `toml:"show_status_bar"`
	TabWidth        int  `toml:"tab_width"`
}

// LogConfig enables debug logging to a file.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			LineNumbers:   "240", // Dark gray
			StatusBar:     "236", // Darker gray background
			StatusBarText: "252", // Light gray text
		},
		Keybindings: KeybindingConfig{
			Quit:         []string{"q", "esc"},
			ScrollUp:     []string{"k"},
			ScrollDown:   []string{"j"},
			HalfPageUp:   []string{"u"},
			HalfPageDown: []string{"d"},
			PageUp:       []string{"b"},
			PageDown:     []string{"f"},
			Bottom:       []string{"G"},
		},
		Display: DisplayConfig{
			ShowLineNumbers: false,
			ShowStatusBar:   true,
			TabWidth:        textutil.DefaultTabWidth,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads config from the default path, falling back to defaults
func Load() (*Config, error) {
	configPath := getConfigPath()
	if configPath == "" {
		return DefaultConfig(), nil
	}

	cfg, err := LoadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile loads config from path over the defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Display.TabWidth < 0 {
		return fmt.Errorf("display.tab_width must not be negative, got %d", c.Display.TabWidth)
	}
	if c.Display.TabWidth == 0 {
		c.Display.TabWidth = textutil.DefaultTabWidth
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "least", "config.toml")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "least", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
