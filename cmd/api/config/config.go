package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is assembled from defaults, an optional yaml file, an
// optional local .env file and finally the process environment.
// The environment always wins.
type Config struct {
	IsProduction bool          `yaml:"is_production" envconfig:"IS_PRODUCTION"`
	LogLevel     zapcore.Level `yaml:"-" envconfig:"LOG_LEVEL"`

	// DatabaseURL selects the storage backend. A postgres:// URL picks
	// the server backend, a path (or empty) picks the local file-backed
	// database, and `memory:` picks the in-memory store.
	DatabaseURL    string `yaml:"database_url" envconfig:"DATABASE_URL"`
	MigrationsPath string `yaml:"migrations_path" envconfig:"DATABASE_MIGRATIONS_PATH"`

	Server        ServerConfig        `yaml:"server"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SERVER_SHUTDOWN_TIMEOUT"`
}

type NotificationsConfig struct {
	Enabled bool          `yaml:"enabled" envconfig:"NOTIFICATIONS_ENABLED"`
	BaseURL string        `yaml:"base_url" envconfig:"NOTIFICATIONS_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"NOTIFICATIONS_TIMEOUT"`
}

func defaults() *Config {
	return &Config{
		LogLevel: zapcore.InfoLevel,
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Notifications: NotificationsConfig{
			Timeout: 3 * time.Second,
		},
	}
}

// Load builds the application configuration. Both the yaml file and
// the .env file are optional, a missing one is not an error.
func Load(configFile string) (*Config, error) {
	cfg := defaults()

	if err := loadConfigFile(configFile, cfg); err != nil {
		return nil, err
	}

	if err := godotenv.Load("./.env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("loading configuration from environment: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configFile string, cfg *Config) error {
	file, err := os.Open(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening configuration file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("decoding configuration file: %w", err)
	}
	return nil
}
