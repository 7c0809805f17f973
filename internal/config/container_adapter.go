package config

import (
	"github.com/garyjia/bizdoc/internal/container"
)

// ToContainerConfig converts the application Config to a container.Config.
// This provides a bridge between the file-based config loaded by viper
// and the container's configuration structure.
func (c *Config) ToContainerConfig() *container.Config {
	return &container.Config{
		Storage: container.StorageConfig{
			Backend:    c.Storage.Backend,
			Path:       c.Storage.Path,
			QuotaBytes: c.Storage.QuotaBytes,
		},
		Database: container.DatabaseConfig{
			Path:            c.Database.Path,
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
		},
		Export: container.ExportConfig{
			OutputDir:   c.Export.OutputDir,
			CompanyName: c.Export.CompanyName,
		},
		Server: container.ServerConfig{
			Host:           c.Server.Host,
			Port:           c.Server.Port,
			ReadTimeout:    c.Server.ReadTimeout,
			WriteTimeout:   c.Server.WriteTimeout,
			MaxUploadBytes: c.Server.MaxUploadBytes,
		},
	}
}
