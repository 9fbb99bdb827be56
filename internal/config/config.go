// Package config provides application configuration for pomo. Timer
// durations live in the settings store, not here; this file carries the
// host-level preferences: data location, notification toggles, auto-start
// behavior, and theme colors.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the pomo application.
type Config struct {
	FirstRun      bool               `mapstructure:"first_run"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Timer         TimerConfig        `mapstructure:"timer"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// TimerConfig holds host-level timer behavior. The engine always halts at
// a transition boundary; these toggles make the TUI immediately restart
// the next interval.
type TimerConfig struct {
	AutoStartFocus  bool `mapstructure:"auto_start_focus"`
	AutoStartBreaks bool `mapstructure:"auto_start_breaks"`
}

// ThemeConfig holds theme customization settings.
type ThemeConfig struct {
	ColorFocus  string `mapstructure:"color_focus"`
	ColorBreak  string `mapstructure:"color_break"`
	ColorPaused string `mapstructure:"color_paused"`
	ColorTitle  string `mapstructure:"color_title"`
	ColorHelp   string `mapstructure:"color_help"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:  "#E0565B",
		ColorBreak:  "#4ECDC4",
		ColorPaused: "#6B7280",
		ColorTitle:  "#A0AEC0",
		ColorHelp:   "#95A5A6",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FirstRun: true,
		Storage: StorageConfig{
			DataDir: "~/.pomo",
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Timer: TimerConfig{
			AutoStartFocus:  false,
			AutoStartBreaks: false,
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")
	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Storage.DataDir == "~/.pomo" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".pomo")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("first_run", cfg.FirstRun)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("timer.auto_start_focus", cfg.Timer.AutoStartFocus)
	viper.Set("timer.auto_start_breaks", cfg.Timer.AutoStartBreaks)
	viper.Set("theme.color_focus", cfg.Theme.ColorFocus)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomo.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("first_run", true)
	viper.SetDefault("storage.data_dir", "~/.pomo")
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("timer.auto_start_focus", false)
	viper.SetDefault("timer.auto_start_breaks", false)

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_focus", defaults.ColorFocus)
	viper.SetDefault("theme.color_break", defaults.ColorBreak)
	viper.SetDefault("theme.color_paused", defaults.ColorPaused)
	viper.SetDefault("theme.color_title", defaults.ColorTitle)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
}
