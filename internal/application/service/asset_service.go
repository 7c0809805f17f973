package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/document"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// UploadRequest carries one image for the asset library
type UploadRequest struct {
	Name string
	Type entity.AssetType
	Data []byte
}

// AssetService manages the reusable image library
type AssetService interface {
	Upload(ctx context.Context, req UploadRequest) (*entity.Asset, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*entity.Asset, error)
	List(ctx context.Context, t entity.AssetType) ([]entity.Asset, error)
}

type assetServiceImpl struct {
	assets  port.AssetStore
	logger  Logger
	now     func() time.Time
	newID   func() string
	maxSize int
}

// AssetOption customizes the asset service
type AssetOption func(*assetServiceImpl)

// WithAssetClock replaces time.Now for createdAt stamps
func WithAssetClock(now func() time.Time) AssetOption {
	return func(s *assetServiceImpl) { s.now = now }
}

// WithAssetIDs replaces the id generator
func WithAssetIDs(newID func() string) AssetOption {
	return func(s *assetServiceImpl) { s.newID = newID }
}

// WithMaxAssetSize rejects uploads larger than n bytes; n <= 0 disables the check
func WithMaxAssetSize(n int) AssetOption {
	return func(s *assetServiceImpl) { s.maxSize = n }
}

// NewAssetService creates a new AssetService
func NewAssetService(assets port.AssetStore, logger Logger, opts ...AssetOption) AssetService {
	s := &assetServiceImpl{
		assets: assets,
		logger: logger,
		now:    time.Now,
		newID:  document.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload sniffs the image type, encodes it as a data URL and adds it to the
// library. An unspecified type files the asset as a logo.
func (s *assetServiceImpl) Upload(ctx context.Context, req UploadRequest) (*entity.Asset, error) {
	if len(req.Data) == 0 {
		return nil, entity.ErrEmptyAsset
	}
	if s.maxSize > 0 && len(req.Data) > s.maxSize {
		return nil, entity.NewValidationError("file", fmt.Sprintf("file exceeds %d bytes", s.maxSize))
	}

	assetType := req.Type
	if assetType == "" {
		assetType = entity.AssetTypeLogo
	}
	if !assetType.Valid() {
		return nil, entity.ErrInvalidAssetType
	}

	mtype := mimetype.Detect(req.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		s.logger.Info("Asset rejected", "name", req.Name, "mime", mtype.String())
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedAsset, mtype.String())
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "asset" + mtype.Extension()
	}

	asset := entity.Asset{
		ID:        s.newID(),
		Name:      name,
		Type:      assetType,
		DataURL:   DataURL(mtype.String(), req.Data),
		CreatedAt: s.now().UnixMilli(),
	}
	if _, err := s.assets.Add(ctx, asset); err != nil {
		s.logger.Error("Failed to add asset", "error", err, "name", name, "size", len(req.Data))
		return nil, err
	}

	s.logger.Info("Asset uploaded", "id", asset.ID, "type", assetType, "mime", mtype.String())
	return &asset, nil
}

// Delete removes the asset with id. Documents already using it keep their copy.
func (s *assetServiceImpl) Delete(ctx context.Context, id string) error {
	if _, ok := s.assets.Get(ctx, id); !ok {
		return entity.ErrAssetNotFound
	}
	s.assets.Delete(ctx, id)
	s.logger.Info("Asset deleted", "id", id)
	return nil
}

// Get returns the asset with id
func (s *assetServiceImpl) Get(ctx context.Context, id string) (*entity.Asset, error) {
	asset, ok := s.assets.Get(ctx, id)
	if !ok {
		return nil, entity.ErrAssetNotFound
	}
	return &asset, nil
}

// List returns the library filtered by t; an empty t returns everything
func (s *assetServiceImpl) List(ctx context.Context, t entity.AssetType) ([]entity.Asset, error) {
	if t != "" && !t.Valid() {
		return nil, entity.ErrInvalidAssetType
	}
	return s.assets.ListByType(ctx, t), nil
}

// DataURL embeds data as a base64 data URL of the given MIME type
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
