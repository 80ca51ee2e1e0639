// Package config manages crossenv configuration from flags, environment and files.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	env "github.com/cross-org/env"
)

// Config holds crossenv configuration.
type Config struct {
	// File is the path of the .env file to load.
	File string `mapstructure:"file"`

	// AllowQuotes strips matching quotes around values.
	AllowQuotes bool `mapstructure:"allow_quotes"`

	// Expand substitutes $VAR references with earlier values.
	Expand bool `mapstructure:"expand"`

	// Strict turns unreadable files and failed validations into errors.
	Strict bool `mapstructure:"strict"`

	// Warnings logs problems that are not errors.
	Warnings bool `mapstructure:"warnings"`

	// Runtime selects the environment variables are applied to:
	// "process" or "memory" (isolated from the process environment).
	Runtime string `mapstructure:"runtime"`

	// LogLevel is the minimum level of log records written to stderr.
	LogLevel string `mapstructure:"log_level"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		File:        env.DefaultDotEnvPath,
		AllowQuotes: true,
		Expand:      true,
		Strict:      false,
		Warnings:    true,
		Runtime:     env.ProcessRuntime,
		LogLevel:    "warn",
	}
}

// flagKeys maps command line flags to configuration keys. Negative flags
// are inverted after unmarshalling.
var flagKeys = map[string]string{
	"file":      "file",
	"strict":    "strict",
	"runtime":   "runtime",
	"log-level": "log_level",
}

// Load reads configuration from flags, environment variables and file.
// Configuration is loaded from (in order of precedence):
//  1. Command line flags that were set
//  2. Environment variables (CROSSENV_*)
//  3. Config file ($XDG_CONFIG_HOME/crossenv/config.toml or ~/.config/crossenv/config.toml)
//  4. Default values
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("file", def.File)
	v.SetDefault("allow_quotes", def.AllowQuotes)
	v.SetDefault("expand", def.Expand)
	v.SetDefault("strict", def.Strict)
	v.SetDefault("warnings", def.Warnings)
	v.SetDefault("runtime", def.Runtime)
	v.SetDefault("log_level", def.LogLevel)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, dir := range configDirs() {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("CROSSENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for flag, key := range flagKeys {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if flags != nil {
		if changed(flags, "no-quotes") {
			cfg.AllowQuotes = false
		}
		if changed(flags, "no-expand") {
			cfg.Expand = false
		}
		if changed(flags, "quiet") {
			cfg.Warnings = false
		}
	}

	return cfg, nil
}

func changed(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed && f.Value.String() == "true"
}

func configDirs() []string {
	var dirs []string
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		dirs = append(dirs, filepath.Join(xdgConfig, "crossenv"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "crossenv"))
	}
	return dirs
}

// Options converts the configuration into options for env.Setup.
func (c *Config) Options() env.Options {
	opts := env.DefaultOptions()
	opts.ThrowErrors = c.Strict
	opts.LogWarnings = c.Warnings
	opts.DotEnv.Enabled = true
	opts.DotEnv.Path = c.File
	opts.DotEnv.AllowQuotes = c.AllowQuotes
	opts.DotEnv.EnableExpansion = c.Expand
	return opts
}
