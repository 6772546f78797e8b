package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"handsettle-server/internal/util"
)

// supported stores
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// Config provides configuration for the hand settlement server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Store          string `yaml:"store" envconfig:"store"`
	SQLitePath     string `yaml:"sqlitePath" envconfig:"sqlite_path"`
	HistoryLimit   int    `yaml:"historyLimit" envconfig:"history_limit"`
	Log            struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	cfg := Config{
		PGDSN:          "postgres://postgres@localhost:5432/hands?sslmode=disable",
		MigrationsPath: "./sql",
		Store:          StoreMemory,
		SQLitePath:     "hands.db",
		HistoryLimit:   100,
	}

	cfg.Log.Level = "info"
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file is optional, environment variables prefixed with HANDS_ take precedence
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HANDS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if file != nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("hands", &cfg); err != nil {
		return err
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	config = cfg
	config.loaded = true
	return nil
}

func (c Config) validate() error {
	switch c.Store {
	case StorePostgres, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q: expected one of postgres, sqlite, memory", c.Store)
	}

	if c.HistoryLimit < 1 {
		return fmt.Errorf("historyLimit must be positive: got %d", c.HistoryLimit)
	}

	return nil
}
