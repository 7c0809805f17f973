package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/garyjia/bizdoc/internal/container"
)

// EnvPrefix prefixes every environment override, e.g. BIZDOC_SERVER_PORT
const EnvPrefix = "BIZDOC"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Export   ExportConfig   `mapstructure:"export"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

// StorageConfig selects the key-value backend behind the stores
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	// Path is the directory of the file backend
	Path string `mapstructure:"path"`
	// QuotaBytes caps the total stored bytes; 0 means unlimited
	QuotaBytes int64 `mapstructure:"quota_bytes"`
}

// DatabaseConfig holds database configuration for the sqlite backend
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ExportConfig holds register export configuration
type ExportConfig struct {
	OutputDir   string `mapstructure:"output_dir"`
	CompanyName string `mapstructure:"company_name"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables.
// A missing file leaves defaults and environment overrides in place.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_bytes", 5<<20)

	// Storage defaults
	v.SetDefault("storage.backend", container.BackendSQLite)
	v.SetDefault("storage.path", "data/store")
	v.SetDefault("storage.quota_bytes", 5<<20)

	// Database defaults
	v.SetDefault("database.path", "data/bizdoc.db")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Export defaults
	v.SetDefault("export.output_dir", "exports")
	v.SetDefault("export.company_name", "")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds the short environment names kept for deployment scripts
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("export.company_name", EnvPrefix+"_EXPORT_COMPANY_NAME", "COMPANY_NAME")
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch c.Storage.Backend {
	case container.BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite backend")
		}
	case container.BackendFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the file backend")
		}
	case container.BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be one of %s, %s, %s", container.BackendSQLite, container.BackendFile, container.BackendMemory)
	}

	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("storage.quota_bytes must not be negative")
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console")
	}

	return nil
}
