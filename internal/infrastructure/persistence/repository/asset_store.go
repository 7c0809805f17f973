package repository

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// AssetStore implements port.AssetStore
type AssetStore struct {
	assets collection[entity.Asset]
	logger *zap.Logger
}

// NewAssetStore creates an asset store over kv
func NewAssetStore(kv port.KeyValueStore, logger *zap.Logger) *AssetStore {
	return &AssetStore{
		assets: collection[entity.Asset]{kv: kv, key: entity.AssetsKey, logger: logger},
		logger: logger,
	}
}

// Load returns the whole library
func (s *AssetStore) Load(ctx context.Context) []entity.Asset {
	return s.assets.load(ctx)
}

// Add appends asset and persists the library
func (s *AssetStore) Add(ctx context.Context, asset entity.Asset) ([]entity.Asset, error) {
	prior := s.assets.load(ctx)
	updated := append(slices.Clone(prior), asset)

	if err := s.assets.save(ctx, updated); err != nil {
		s.logger.Error("Failed to save asset",
			zap.String("id", asset.ID),
			zap.String("name", asset.Name),
			zap.Int("data_size", len(asset.DataURL)),
			zap.Error(err))
		return prior, err
	}

	s.logger.Info("Asset added",
		zap.String("id", asset.ID),
		zap.String("type", string(asset.Type)))
	return updated, nil
}

// Delete removes the asset with id. Documents that copied its data keep it.
func (s *AssetStore) Delete(ctx context.Context, id string) []entity.Asset {
	assets := s.assets.load(ctx)
	filtered := slices.DeleteFunc(slices.Clone(assets), func(a entity.Asset) bool { return a.ID == id })
	if len(filtered) == len(assets) {
		return assets
	}

	if err := s.assets.save(ctx, filtered); err != nil {
		s.logger.Error("Failed to persist asset removal", zap.String("id", id), zap.Error(err))
	}
	return filtered
}

// Get returns the asset with id
func (s *AssetStore) Get(ctx context.Context, id string) (entity.Asset, bool) {
	for _, a := range s.assets.load(ctx) {
		if a.ID == id {
			return a, true
		}
	}
	return entity.Asset{}, false
}

// ListByType returns the assets of type t; an empty t returns all.
func (s *AssetStore) ListByType(ctx context.Context, t entity.AssetType) []entity.Asset {
	assets := s.assets.load(ctx)
	if t == "" {
		return assets
	}
	return slices.DeleteFunc(assets, func(a entity.Asset) bool { return a.Type != t })
}

var _ port.AssetStore = (*AssetStore)(nil)
