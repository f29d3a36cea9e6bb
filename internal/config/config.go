// Package config loads the runtime configuration of the schemaboot CLI.
//
// Values are layered lowest to highest: built-in defaults, an optional config
// file (YAML, JSON or TOML, picked by extension), SCHEMABOOT_* environment
// variables, then CLI flags the user explicitly set. A .env file in the
// working directory is read into the environment before any of that, without
// overriding variables that are already set.
//
// Example (YAML):
//
//	storage:
//	  kind: postgres
//	  dsn: postgresql://app@localhost:5432/app
//	catalog:
//	  path: entities.toml
//	timeout: 30s
//	log:
//	  level: debug
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SCHEMABOOT_STORAGE_DSN.
const EnvPrefix = "SCHEMABOOT"

// dotenvFile is read before the environment overlay when it exists.
var dotenvFile = ".env"

// Config is the top-level configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	// Timeout bounds one command run, connection included. Zero disables it.
	Timeout time.Duration `mapstructure:"timeout"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// StorageConfig selects the backend.
type StorageConfig struct {
	Kind string `mapstructure:"kind"`
	DSN  string `mapstructure:"dsn"`
}

// CatalogConfig points at the entity definitions file.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
	MaxFiles  int    `mapstructure:"max_files"`
}

// MetricsConfig selects where bootstrap metrics go. Backend is "none",
// "pushgateway" or "datadog".
type MetricsConfig struct {
	Backend        string `mapstructure:"backend"`
	Job            string `mapstructure:"job"`
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	DatadogAddr    string `mapstructure:"datadog_addr"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"storage-kind": "storage.kind",
	"dsn":          "storage.dsn",
	"catalog":      "catalog.path",
	"timeout":      "timeout",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.kind", "")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_files", 5)
	v.SetDefault("metrics.backend", "none")
	v.SetDefault("metrics.job", "schemaboot")
	v.SetDefault("metrics.pushgateway_url", "")
	v.SetDefault("metrics.datadog_addr", "127.0.0.1:8125")
}

// Load builds a Config. path may be empty; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Storage.Kind = strings.ToLower(strings.TrimSpace(cfg.Storage.Kind))
	cfg.Metrics.Backend = strings.ToLower(strings.TrimSpace(cfg.Metrics.Backend))
	return &cfg, nil
}

func loadDotenv() error {
	if _, err := os.Stat(dotenvFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", dotenvFile, err)
	}
	if err := godotenv.Load(dotenvFile); err != nil {
		return fmt.Errorf("load %s: %w", dotenvFile, err)
	}
	return nil
}
