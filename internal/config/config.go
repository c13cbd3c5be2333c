package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// RefreshInterval is how often the selected file's diff is recomputed.
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	// CacheTTL bounds how long git query results are reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// Watch enables the .git filesystem watcher.
	Watch bool `mapstructure:"watch"`
	// WatchDebounce coalesces bursts of filesystem events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// MouseWheel lets the wheel scroll the focused diff pane.
	MouseWheel bool `mapstructure:"mouse_wheel"`
	// TabWidth is the number of spaces a tab expands to in the diff pane.
	TabWidth int `mapstructure:"tab_width"`
	// LogFile receives structured logs. Empty disables logging.
	LogFile string `mapstructure:"log_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// Keys overrides the scroll bindings of the diff pane.
	Keys KeyBindings `mapstructure:"keys"`
}

// Load reads configuration from ~/.config/diffpane/config.yaml (or the
// explicit file when file is non-empty), then applies DIFFPANE_* env vars.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDirectory())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DIFFPANE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file means defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RefreshInterval)
	}
	if c.TabWidth < 1 {
		c.TabWidth = 1
	}
	if len(c.Keys.ScrollUp) == 0 || len(c.Keys.ScrollDown) == 0 {
		return errors.New("keys.scroll_up and keys.scroll_down must not be empty")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("refresh_interval", "1s")
	v.SetDefault("cache_ttl", "500ms")
	v.SetDefault("watch", true)
	v.SetDefault("watch_debounce", "300ms")
	v.SetDefault("mouse_wheel", true)
	v.SetDefault("tab_width", 4)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")

	keys := DefaultKeyBindings()
	v.SetDefault("keys.scroll_up", keys.ScrollUp)
	v.SetDefault("keys.scroll_down", keys.ScrollDown)
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffpane")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "diffpane")
}
