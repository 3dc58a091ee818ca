package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the demo's runtime configuration
// Sources in rising priority: defaults, config file, TERMDESK_* environment
type Config struct {
	Backend     string        `mapstructure:"backend"`
	ColorMode   string        `mapstructure:"color-mode"`
	Palette     string        `mapstructure:"palette"`
	PaletteFile string        `mapstructure:"palette-file"`
	PollTimeout time.Duration `mapstructure:"poll-timeout"`
	DoubleClick time.Duration `mapstructure:"double-click"`
	Mouse       bool          `mapstructure:"mouse"`
	Bell        string        `mapstructure:"bell"`
	LogFile     string        `mapstructure:"log-file"`
}

var configDefaults = map[string]any{
	"backend":      "ansi",
	"color-mode":   "auto",
	"palette":      "color",
	"palette-file": "",
	"poll-timeout": 100 * time.Millisecond,
	"double-click": 300 * time.Millisecond,
	"mouse":        true,
	"bell":         "terminal",
	"log-file":     "",
}

// loadConfig reads path (optional) and the environment
// A missing file is not an error
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TERMDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for k, d := range configDefaults {
		v.SetDefault(k, d)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case "ansi", "tcell":
	default:
		return fmt.Errorf("backend %q: want ansi or tcell", c.Backend)
	}
	switch c.Bell {
	case "off", "terminal", "audio":
	default:
		return fmt.Errorf("bell %q: want off, terminal or audio", c.Bell)
	}
	if c.PollTimeout <= 0 {
		return fmt.Errorf("poll-timeout must be positive, got %v", c.PollTimeout)
	}
	return nil
}
