package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	ElasticPath ElasticPathConfig `mapstructure:"elasticpath"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	Environment  string `mapstructure:"environment"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

// ElasticPathConfig holds the catalog service connection settings
type ElasticPathConfig struct {
	Host         string        `mapstructure:"host"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// envBindings maps config keys to the environment variables that set them
var envBindings = map[string]string{
	"server.port":               "SERVER_PORT",
	"server.environment":        "SERVER_ENVIRONMENT",
	"server.max_body_bytes":     "SERVER_MAX_BODY_BYTES",
	"elasticpath.host":          "ELASTICPATH_HOST",
	"elasticpath.client_id":     "ELASTICPATH_CLIENT_ID",
	"elasticpath.client_secret": "ELASTICPATH_CLIENT_SECRET",
	"elasticpath.timeout":       "ELASTICPATH_TIMEOUT",
	"log.level":                 "LOG_LEVEL",
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/optionmap/")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_body_bytes", 10<<20)

	v.SetDefault("elasticpath.host", "https://api.moltin.com")
	v.SetDefault("elasticpath.timeout", "30s")

	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	host, err := url.Parse(config.ElasticPath.Host)
	if config.ElasticPath.Host == "" || err != nil || host.Scheme == "" || host.Host == "" {
		return fmt.Errorf("Elastic Path host must be an absolute URL (set ELASTICPATH_HOST), got: %q", config.ElasticPath.Host)
	}

	if config.ElasticPath.ClientID == "" {
		return fmt.Errorf("Elastic Path client id is required (set ELASTICPATH_CLIENT_ID)")
	}

	if config.ElasticPath.ClientSecret == "" {
		return fmt.Errorf("Elastic Path client secret is required (set ELASTICPATH_CLIENT_SECRET)")
	}

	if config.ElasticPath.Timeout <= 0 {
		return fmt.Errorf("Elastic Path timeout must be positive, got: %s", config.ElasticPath.Timeout)
	}

	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got: %d", config.Server.MaxBodyBytes)
	}

	return nil
}
