package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"simplepoker-server/internal/util"
)

// Config provides configuration for Simple Poker
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

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

// Load will load the configuration.
// The YAML file is optional; environment variables always win
func Load() error {
	config = Config{}

	configFile := util.Getenv("SP_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("sp", &config); err != nil {
		return err
	}

	if config.PGDSN == "" {
		config.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	}

	if config.MigrationsPath == "" {
		config.MigrationsPath = "./sql"
	}

	config.loaded = true
	return nil
}
