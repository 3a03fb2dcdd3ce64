// Package config loads ctx settings through viper: defaults, then an
// optional .ctx.yaml (project directory or home), then CTX_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the tunable settings commands read.
type Config struct {
	// Format is the default output format: human, json, or compact.
	Format string `mapstructure:"format"`

	Summarize SummarizeConfig `mapstructure:"summarize"`
	Search    SearchConfig    `mapstructure:"search"`
	Map       MapConfig       `mapstructure:"map"`
	Inject    InjectConfig    `mapstructure:"inject"`

	// TimeoutSeconds is accepted for CLI compatibility but not yet
	// consumed by the analysis core.
	TimeoutSeconds int `mapstructure:"timeout"`
}

// SummarizeConfig controls the summarize command.
type SummarizeConfig struct {
	// Depth is the default directory depth for directory summaries.
	Depth int `mapstructure:"depth"`
}

// SearchConfig controls the search command.
type SearchConfig struct {
	// ContextLines is how many surrounding lines results include.
	ContextLines int `mapstructure:"context_lines"`
}

// MapConfig controls the map command.
type MapConfig struct {
	// Depth is the default traversal depth for project maps.
	Depth int `mapstructure:"depth"`
}

// InjectConfig controls the inject and hook-inject commands.
type InjectConfig struct {
	// Budget is the default token budget for injected context.
	Budget int `mapstructure:"budget"`
}

// SetDefaults registers default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format", "human")
	v.SetDefault("summarize.depth", 1)
	v.SetDefault("search.context_lines", 2)
	v.SetDefault("map.depth", 3)
	v.SetDefault("inject.budget", 2000)
	v.SetDefault("timeout", 0)
}

// Keys lists the settable configuration keys in display order.
func Keys() []string {
	return []string{
		"format",
		"summarize.depth",
		"search.context_lines",
		"map.depth",
		"inject.budget",
		"timeout",
	}
}

// validKey reports whether key is one of the settable keys.
func validKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// parseValue coerces value to the key's type: format takes one of the
// output format names, every other key takes an integer.
func parseValue(key, value string) (interface{}, error) {
	if key == "format" {
		switch value {
		case "human", "json", "compact":
			return value, nil
		}
		return nil, fmt.Errorf("invalid format %q: use human, json, or compact", value)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %q is not a number", key, value)
	}
	return n, nil
}

// Set updates key in dir's .ctx.yaml, creating the file if needed.
// Settings outside the known key set are rejected.
func Set(dir, key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("unknown config key: %s", key)
	}
	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, ".ctx.yaml")
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return err
	}

	v.Set(key, parsed)
	return v.WriteConfigAs(path)
}

// Load reads configuration into a Config. A missing config file is not
// an error; defaults and environment variables still apply.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetConfigName(".ctx")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("CTX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
