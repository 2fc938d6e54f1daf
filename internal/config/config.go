// Package config loads fspec settings from .fspec.yaml, FSPEC_* environment
// variables and defaults.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the optional config file looked up in the working directory.
const FileName = ".fspec.yaml"

type Config struct {
	Dir          string `mapstructure:"dir"`
	Database     string `mapstructure:"database"`
	FenceTag     string `mapstructure:"fence_tag"`
	Pattern      string `mapstructure:"pattern"`
	TestsPattern string `mapstructure:"tests_pattern"`
	LogLevel     string `mapstructure:"log_level"`
}

func Default() *Config {
	return &Config{
		Dir:          "specs",
		Database:     filepath.Join("specs", "fspec.db"),
		FenceTag:     "gherkin",
		Pattern:      "*.md",
		TestsPattern: "*_test.go",
		LogLevel:     "warn",
	}
}

// Load reads the config file at path, or FileName in the working directory
// when path is empty. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FSPEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("config: dir is required")
	}
	if c.Database == "" {
		return fmt.Errorf("config: database is required")
	}
	if c.FenceTag == "" || strings.ContainsAny(c.FenceTag, " \t`") {
		return fmt.Errorf("config: invalid fence_tag %q", c.FenceTag)
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("config: invalid pattern %q: %w", c.Pattern, err)
	}
	if _, err := filepath.Match(c.TestsPattern, ""); err != nil {
		return fmt.Errorf("config: invalid tests_pattern %q: %w", c.TestsPattern, err)
	}
	return nil
}

// Documents returns the glob matching spec documents.
func (c *Config) Documents() string {
	return filepath.Join(c.Dir, c.Pattern)
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("dir", d.Dir)
	v.SetDefault("database", d.Database)
	v.SetDefault("fence_tag", d.FenceTag)
	v.SetDefault("pattern", d.Pattern)
	v.SetDefault("tests_pattern", d.TestsPattern)
	v.SetDefault("log_level", d.LogLevel)
}
