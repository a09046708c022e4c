// Package config loads engine settings from a config file and the
// environment.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// DefaultDepth is the search depth used when the caller does not
	// pick one.
	DefaultDepth int
	// TablebaseWarmup lists configuration names to generate eagerly at
	// startup; empty means generate lazily on first probe.
	TablebaseWarmup []string
	// OpeningBookPath is the sqlite file of the opening frequency
	// table; empty disables the book.
	OpeningBookPath string
	// LogLevel is a zerolog level name (debug, info, warn, ...).
	LogLevel string
}

// Load reads hexchess.yaml from the working directory (if present) and
// HEXCHESS_* environment variables over the built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("default-depth", 4)
	v.SetDefault("tablebase-warmup", []string{})
	v.SetDefault("opening-book-path", "")
	v.SetDefault("log-level", "info")

	v.SetConfigName("hexchess")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("hexchess")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		DefaultDepth:    v.GetInt("default-depth"),
		TablebaseWarmup: v.GetStringSlice("tablebase-warmup"),
		OpeningBookPath: v.GetString("opening-book-path"),
		LogLevel:        v.GetString("log-level"),
	}, nil
}
