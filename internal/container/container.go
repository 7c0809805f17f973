package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// Container manages all application dependencies and lifecycle.
// Initialization is ordered and teardown runs in reverse.
type Container struct {
	config *Config
	logger *zap.Logger

	storage  *StorageBundle
	stores   *StoreBundle
	services *ServiceBundle

	mu     sync.RWMutex
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components in dependency order:
// 1. Key-value storage backend
// 2. Document, asset and preference stores
// 3. Application services
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization",
		zap.String("backend", c.config.Storage.Backend))

	storage, err := ProvideKeyValueStore(c.config, c.logger.Named("kv"))
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	c.storage = storage
	c.logger.Info("Storage initialized")

	stores, err := ProvideStores(storage.KV, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize stores: %w", err)
	}
	c.stores = stores
	c.logger.Info("Stores initialized")

	services, err := ProvideServices(c.config, stores, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.services = services
	c.logger.Info("Application services initialized")

	c.ready.Store(true)
	c.logger.Info("Container started successfully")
	return nil
}

// Close shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	// Services and stores hold no resources of their own
	c.services = nil
	c.stores = nil

	if c.storage != nil && c.storage.DB != nil {
		if err := c.storage.DB.Close(); err != nil {
			c.logger.Error("Failed to close database", zap.Error(err))
			errs = append(errs, fmt.Errorf("close database: %w", err))
		} else {
			c.logger.Info("Database closed")
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health(ctx context.Context) *HealthStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	if c.storage == nil {
		status.Components["storage"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	} else if _, _, err := c.storage.KV.Read(ctx, entity.PreferencesKey); err != nil {
		status.Components["storage"] = ComponentHealth{
			Healthy: false,
			Message: fmt.Sprintf("read failed: %v", err),
		}
		status.Overall = false
	} else {
		status.Components["storage"] = ComponentHealth{Healthy: true, Message: c.config.Storage.Backend}
	}

	if c.storage != nil && c.storage.DB != nil {
		if err := c.storage.DB.PingContext(ctx); err != nil {
			status.Components["database"] = ComponentHealth{
				Healthy: false,
				Message: fmt.Sprintf("ping failed: %v", err),
			}
			status.Overall = false
		} else {
			status.Components["database"] = ComponentHealth{Healthy: true}
		}
	}

	if c.services != nil {
		status.Components["services"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["services"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	return status
}

// Services returns the application services.
func (c *Container) Services() *ServiceBundle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.services
}

// KeyValueStore returns the storage backend.
func (c *Container) KeyValueStore() port.KeyValueStore {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.storage == nil {
		return nil
	}
	return c.storage.KV
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *Config {
	return c.config
}
