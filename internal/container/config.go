// Package container provides dependency injection and lifecycle management
// for the document generator following Clean Architecture principles.
package container

import (
	"fmt"
	"time"
)

// Storage backends understood by ProvideKeyValueStore
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds all configuration for the Container.
type Config struct {
	// Storage selects and sizes the key-value backend
	Storage StorageConfig

	// Database configuration for the sqlite backend
	Database DatabaseConfig

	// Export configuration
	Export ExportConfig

	// Server configuration
	Server ServerConfig
}

// StorageConfig holds key-value backend settings.
type StorageConfig struct {
	// Backend is one of sqlite, file or memory
	Backend string

	// Path is the directory used by the file backend
	Path string

	// QuotaBytes caps the total stored bytes; 0 means unlimited
	QuotaBytes int64
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Path to SQLite database file
	Path string

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime
	ConnMaxLifetime time.Duration
}

// ExportConfig holds register export settings.
type ExportConfig struct {
	// OutputDir receives register files written outside a request
	OutputDir string

	// CompanyName titles the register
	CompanyName string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
}

// DefaultConfig returns a configuration backed by memory storage.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:    BackendMemory,
			QuotaBytes: 5 << 20,
		},
		Database: DatabaseConfig{
			Path:            "data/bizdoc.db",
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Export: ExportConfig{
			OutputDir: "exports",
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxUploadBytes: 5 << 20,
		},
	}
}

// Validate checks that the configuration can build a container.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for the sqlite backend")
		}
	case BackendFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the file backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("storage quota must not be negative")
	}

	return nil
}
