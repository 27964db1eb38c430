// Package cmd implements the iohookdemo consumer: a small program that
// exercises the iohook library end to end (capture, dispatch, and both
// of its synthesis paths) from the command line.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the YAML-backed configuration for the demo consumer.
type Config struct {
	ToggleKey      string `mapstructure:"toggle_key"`
	EchoSuppressed bool   `mapstructure:"echo_suppressed_by_default"`
	Tray           struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"tray"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
}

var cfg Config

func defaultConfig() Config {
	var c Config
	c.ToggleKey = "VC_F9"
	c.EchoSuppressed = false
	c.Tray.Enabled = true
	c.Logging.Level = "info"
	return c
}

func loadConfig(configPath string) (Config, error) {
	c := defaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "iohookdemo"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("iohookdemo")
	}

	v.SetDefault("toggle_key", c.ToggleKey)
	v.SetDefault("echo_suppressed_by_default", c.EchoSuppressed)
	v.SetDefault("tray.enabled", c.Tray.Enabled)
	v.SetDefault("logging.level", c.Logging.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}
