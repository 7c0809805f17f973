package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/bizdoc/internal/domain/entity"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newTestAssetService(store *mockAssetStore, opts ...AssetOption) AssetService {
	base := []AssetOption{
		WithAssetClock(func() time.Time { return serviceNow }),
		WithAssetIDs(func() string { return "asset-1" }),
	}
	return NewAssetService(store, &mockLogger{}, append(base, opts...)...)
}

func TestAssetService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("png defaults to logo", func(t *testing.T) {
		store := &mockAssetStore{}
		svc := newTestAssetService(store)

		asset, err := svc.Upload(ctx, UploadRequest{Name: "brand.png", Data: pngBytes})
		require.NoError(t, err)
		assert.Equal(t, "asset-1", asset.ID)
		assert.Equal(t, entity.AssetTypeLogo, asset.Type)
		assert.Equal(t, "brand.png", asset.Name)
		assert.True(t, strings.HasPrefix(asset.DataURL, "data:image/png;base64,"))
		assert.Equal(t, serviceNow.UnixMilli(), asset.CreatedAt)
		require.Len(t, store.assets, 1)
		assert.Equal(t, *asset, store.assets[0])
	})

	t.Run("blank name gets extension", func(t *testing.T) {
		svc := newTestAssetService(&mockAssetStore{})
		asset, err := svc.Upload(ctx, UploadRequest{Type: entity.AssetTypeSignature, Data: pngBytes})
		require.NoError(t, err)
		assert.Equal(t, "asset.png", asset.Name)
		assert.Equal(t, entity.AssetTypeSignature, asset.Type)
	})

	tests := []struct {
		name    string
		req     UploadRequest
		opts    []AssetOption
		wantErr error
	}{
		{name: "empty data", req: UploadRequest{Name: "x.png"}, wantErr: entity.ErrEmptyAsset},
		{name: "unknown type", req: UploadRequest{Type: "BANNER", Data: pngBytes}, wantErr: entity.ErrInvalidAssetType},
		{name: "not an image", req: UploadRequest{Name: "notes.txt", Data: []byte("plain text notes")}, wantErr: entity.ErrUnsupportedAsset},
		{name: "too large", req: UploadRequest{Data: pngBytes}, opts: []AssetOption{WithMaxAssetSize(8)}, wantErr: entity.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockAssetStore{}
			svc := newTestAssetService(store, tt.opts...)

			_, err := svc.Upload(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.assets)
		})
	}

	t.Run("quota exceeded surfaces", func(t *testing.T) {
		store := &mockAssetStore{
			addFunc: func(ctx context.Context, asset entity.Asset) ([]entity.Asset, error) {
				return nil, fmt.Errorf("%w: full", entity.ErrStorageQuotaExceeded)
			},
		}
		svc := newTestAssetService(store)

		_, err := svc.Upload(ctx, UploadRequest{Data: pngBytes})
		assert.ErrorIs(t, err, entity.ErrStorageQuotaExceeded)
	})
}

func TestAssetService_GetDeleteList(t *testing.T) {
	ctx := context.Background()
	store := &mockAssetStore{assets: []entity.Asset{
		{ID: "a", Type: entity.AssetTypeLogo, DataURL: "data:image/png;base64,AA"},
		{ID: "b", Type: entity.AssetTypeProduct, DataURL: "data:image/png;base64,BB"},
	}}
	svc := newTestAssetService(store)

	asset, err := svc.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, entity.AssetTypeProduct, asset.Type)

	_, err = svc.Get(ctx, "zzz")
	assert.ErrorIs(t, err, entity.ErrAssetNotFound)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	logos, err := svc.List(ctx, entity.AssetTypeLogo)
	require.NoError(t, err)
	require.Len(t, logos, 1)
	assert.Equal(t, "a", logos[0].ID)

	_, err = svc.List(ctx, "BANNER")
	assert.ErrorIs(t, err, entity.ErrInvalidAssetType)

	require.NoError(t, svc.Delete(ctx, "a"))
	assert.Len(t, store.assets, 1)
	assert.ErrorIs(t, svc.Delete(ctx, "a"), entity.ErrAssetNotFound)
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,aGk=", DataURL("image/png", []byte("hi")))
}
