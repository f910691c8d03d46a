package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default file locations, relative to the working directory.
const (
	DefaultStoragePath = "data/animals.json"
	DefaultPointsPath  = "data/animalPoints.json"
)

// ID length bounds.
const (
	MinIDLength = 4
	MaxIDLength = 32
)

// Config holds the complete application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Points  PointsConfig  `mapstructure:"points"`
	ID      IDConfig      `mapstructure:"id"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig holds collection storage configuration.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`   // file and sqlite drivers
	DSN    string `mapstructure:"dsn"`    // postgres driver
	Atomic bool   `mapstructure:"atomic"` // file driver: write via temp file + rename
}

// PointsConfig holds reference table configuration.
type PointsConfig struct {
	Path   string `mapstructure:"path"`
	Strict bool   `mapstructure:"strict"` // reject names missing from the table
}

// IDConfig holds identifier generation configuration.
type IDConfig struct {
	Length int `mapstructure:"length"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", DefaultStoragePath)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.atomic", true)

	v.SetDefault("points.path", DefaultPointsPath)
	v.SetDefault("points.strict", false)

	v.SetDefault("id.length", MinIDLength)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var config Config

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s driver", c.Storage.Driver)
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of file, sqlite, postgres; got %q", c.Storage.Driver)
	}

	if c.Points.Path == "" {
		return errors.New("points.path is required")
	}

	if c.ID.Length < MinIDLength || c.ID.Length > MaxIDLength {
		return fmt.Errorf("id.length must be between %d and %d", MinIDLength, MaxIDLength)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("log.format must be json or text; got %q", c.Log.Format)
	}

	return nil
}
