// Package config arma la configuración del proceso: primero un YAML opcional
// (CONFIG_FILE) y encima las variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverHosted   = "hosted"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port string `yaml:"port"`

	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	Driver      string       `yaml:"driver"`
	SQLitePath  string       `yaml:"sqlite_path"`
	PostgresDSN string       `yaml:"postgres_dsn"`
	Hosted      HostedConfig `yaml:"hosted"`
}

type HostedConfig struct {
	URL     string        `yaml:"url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

func Default() Config {
	return Config{
		Port: "8080",
		Storage: StorageConfig{
			SQLitePath: "sheep_management.db",
			Hosted:     HostedConfig{Timeout: 10 * time.Second},
		},
		Log: LogConfig{Level: "info", Format: "text", App: "sheep-management"},
	}
}

// Load lee CONFIG_FILE (si está) y aplica el entorno encima.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("CONFIG_FILE"), os.LookupEnv)
}

// LoadFrom es Load con la ruta y el lookup de env inyectados (tests).
func LoadFrom(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	// sin driver explícito: DB_DSN implica postgres, si no in-memory
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverMemory
		if cfg.Storage.PostgresDSN != "" {
			cfg.Storage.Driver = DriverPostgres
		}
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("PORT", &cfg.Port)
	str("STORAGE_DRIVER", &cfg.Storage.Driver)
	str("SQLITE_PATH", &cfg.Storage.SQLitePath)
	str("DB_DSN", &cfg.Storage.PostgresDSN)
	str("HOSTED_URL", &cfg.Storage.Hosted.URL)
	str("HOSTED_API_KEY", &cfg.Storage.Hosted.APIKey)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("APP_NAME", &cfg.Log.App)

	if v, ok := lookup("HOSTED_TIMEOUT"); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: HOSTED_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		cfg.Storage.Hosted.Timeout = d
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("%w: sqlite_path is required", ErrInvalidConfig)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.PostgresDSN) == "" {
			return fmt.Errorf("%w: DB_DSN is required for postgres", ErrInvalidConfig)
		}
	case DriverHosted:
		if c.Storage.Hosted.URL == "" || c.Storage.Hosted.APIKey == "" {
			return fmt.Errorf("%w: HOSTED_URL and HOSTED_API_KEY are required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	return nil
}

// Addr devuelve la dirección de escucha (":8080").
func (c Config) Addr() string {
	p := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if p == "" {
		p = "8080"
	}
	return ":" + p
}
