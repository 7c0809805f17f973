package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/application/service"
	"github.com/garyjia/bizdoc/internal/infrastructure/export"
	"github.com/garyjia/bizdoc/internal/infrastructure/kv"
	"github.com/garyjia/bizdoc/internal/infrastructure/persistence/repository"
	"github.com/garyjia/bizdoc/pkg/database"
)

// StorageBundle holds the key-value backend and, for sqlite, its connection.
type StorageBundle struct {
	KV port.KeyValueStore
	DB *database.DB
}

// StoreBundle groups the document, asset and preference stores.
type StoreBundle struct {
	Documents   *repository.DocumentStore
	Assets      *repository.AssetStore
	Preferences *repository.PreferenceStore
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Documents   service.DocumentService
	Assets      service.AssetService
	Preferences service.PreferenceService
	Export      service.ExportService
}

// ProvideKeyValueStore opens the configured storage backend.
func ProvideKeyValueStore(cfg *Config, logger *zap.Logger) (*StorageBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	switch cfg.Storage.Backend {
	case BackendSQLite:
		db, err := database.New(database.Config{
			Path:            cfg.Database.Path,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}, logger)
		if err != nil {
			return nil, err
		}
		store, err := kv.NewSQLiteStore(db, cfg.Storage.QuotaBytes, logger)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return &StorageBundle{KV: store, DB: db}, nil

	case BackendFile:
		store, err := kv.NewFileStore(cfg.Storage.Path, cfg.Storage.QuotaBytes, logger)
		if err != nil {
			return nil, err
		}
		return &StorageBundle{KV: store}, nil

	case BackendMemory:
		return &StorageBundle{KV: kv.NewMemoryStore(cfg.Storage.QuotaBytes)}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// ProvideStores creates the stores over one key-value backend.
func ProvideStores(store port.KeyValueStore, logger *zap.Logger) (*StoreBundle, error) {
	if store == nil {
		return nil, fmt.Errorf("key-value store is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &StoreBundle{
		Documents:   repository.NewDocumentStore(store, logger.Named("documents")),
		Assets:      repository.NewAssetStore(store, logger.Named("assets")),
		Preferences: repository.NewPreferenceStore(store, logger.Named("preferences")),
	}, nil
}

// ProvideServices creates all application services.
func ProvideServices(cfg *Config, stores *StoreBundle, logger *zap.Logger) (*ServiceBundle, error) {
	if stores == nil {
		return nil, fmt.Errorf("stores are required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	svcLogger := service.NewZapLogger(logger)
	documents := service.NewDocumentService(stores.Documents, stores.Preferences, svcLogger)
	register := export.NewRegisterWriter(cfg.Export.CompanyName, logger.Named("export"))

	var assetOpts []service.AssetOption
	if cfg.Server.MaxUploadBytes > 0 {
		assetOpts = append(assetOpts, service.WithMaxAssetSize(int(cfg.Server.MaxUploadBytes)))
	}

	return &ServiceBundle{
		Documents:   documents,
		Assets:      service.NewAssetService(stores.Assets, svcLogger, assetOpts...),
		Preferences: service.NewPreferenceService(stores.Preferences, svcLogger),
		Export:      service.NewExportService(documents, register, svcLogger),
	}, nil
}
