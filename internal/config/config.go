// Package config loads settings from defaults, an optional config file, a
// .env file and AULA_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "AULA"

type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Term    TermConfig    `mapstructure:"term"`
}

type DBConfig struct {
	// Path is a file path or ":memory:".
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CatalogConfig struct {
	// Path overrides the embedded catalog when set.
	Path string `mapstructure:"path"`
}

// TermConfig bounds a term's length in whole days, both ends inclusive.
type TermConfig struct {
	MinDays int `mapstructure:"min_days"`
	MaxDays int `mapstructure:"max_days"`
}

// DefaultDBPath returns ~/.aula/aula.db, falling back to the working
// directory when no home directory is known.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".aula", "aula.db")
	}
	return filepath.Join(home, ".aula", "aula.db")
}

// Load reads configuration. path names an explicit config file; when empty,
// aula.yaml is looked up in the working directory and ~/.aula, and its
// absence is not an error. envFile is loaded with godotenv when it exists.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("db.path", DefaultDBPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("catalog.path", "")
	v.SetDefault("term.min_days", 110)
	v.SetDefault("term.max_days", 130)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("aula")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".aula"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
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
	if c.DB.Path == "" {
		return fmt.Errorf("invalid config: db.path must not be empty")
	}
	if c.Term.MinDays <= 0 || c.Term.MaxDays <= 0 {
		return fmt.Errorf("invalid config: term.min_days and term.max_days must be positive")
	}
	if c.Term.MinDays > c.Term.MaxDays {
		return fmt.Errorf("invalid config: term.min_days (%d) exceeds term.max_days (%d)", c.Term.MinDays, c.Term.MaxDays)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid config: log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
