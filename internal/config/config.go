// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// Bundle manifest settings
	ManifestPath  string `mapstructure:"manifest"`
	ServerRoot    string `mapstructure:"serverroot"`
	ProjectRoot   string `mapstructure:"root"`
	PushCacheSize int    `mapstructure:"pushcachesize"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		c, err := LoadConfig()
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = c
	})
	return cfg
}

// LoadConfig reads defaults and environment into a new Config without caching it.
func LoadConfig() (*Config, error) {
	v := viper.New()

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	v.SetDefault("appname", "bundlemanifest")
	v.SetDefault("appport", "3000")
	v.SetDefault("environment", Development)
	v.SetDefault("loglevel", string(LogLevelDebug))
	v.SetDefault("manifest", "dist/bundles.json")
	v.SetDefault("serverroot", "/")
	v.SetDefault("root", wd)
	v.SetDefault("pushcachesize", 256)
	v.SetDefault("logsdir", "logs")
	v.SetDefault("logsmaxsizeinmb", 20)
	v.SetDefault("logsmaxbackups", 10)
	v.SetDefault("logsmaxageindays", 30)

	v.BindEnv("appname", "BUNDLEMANIFEST_APP_NAME")
	v.BindEnv("appport", "BUNDLEMANIFEST_APP_PORT")
	v.BindEnv("environment", "BUNDLEMANIFEST_ENV")
	v.BindEnv("loglevel", "BUNDLEMANIFEST_LOG_LEVEL")
	v.BindEnv("manifest", "BUNDLEMANIFEST_MANIFEST")
	v.BindEnv("serverroot", "BUNDLEMANIFEST_SERVER_ROOT")
	v.BindEnv("root", "BUNDLEMANIFEST_ROOT")
	v.BindEnv("pushcachesize", "BUNDLEMANIFEST_PUSH_CACHE_SIZE")
	v.BindEnv("logsdir", "BUNDLEMANIFEST_LOGS_DIR")
	v.BindEnv("logsmaxsizeinmb", "BUNDLEMANIFEST_LOGS_MAX_SIZE_IN_MB")
	v.BindEnv("logsmaxbackups", "BUNDLEMANIFEST_LOGS_MAX_BACKUPS")
	v.BindEnv("logsmaxageindays", "BUNDLEMANIFEST_LOGS_MAX_AGE_IN_DAYS")

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return c, nil
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.ManifestPath == "" {
		return fmt.Errorf("manifest path cannot be empty")
	}
	if c.PushCacheSize < 0 {
		return fmt.Errorf("push cache size cannot be negative: %d", c.PushCacheSize)
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetPort returns the HTTP server port.
func (c *Config) GetPort() string {
	return c.AppPort
}

// GetLogLevel returns the log level as a string.
func (c *Config) GetLogLevel() string {
	return string(c.LogLevel)
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
