package container

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/service"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewContainer(DefaultConfig(), nil)
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Storage.Backend = "redis"
	_, err = NewContainer(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown storage backend")

	cfg = DefaultConfig()
	cfg.Storage.Backend = BackendFile
	_, err = NewContainer(cfg, zap.NewNop())
	assert.ErrorContains(t, err, "storage path")
}

func TestContainer_Lifecycle(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		config func() *Config
		wantDB bool
	}{
		{
			name:   "memory",
			config: DefaultConfig,
		},
		{
			name: "file",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Storage.Backend = BackendFile
				cfg.Storage.Path = filepath.Join(dir, "store")
				return cfg
			},
		},
		{
			name: "sqlite",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Storage.Backend = BackendSQLite
				cfg.Database.Path = filepath.Join(dir, "bizdoc.db")
				return cfg
			},
			wantDB: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			c, err := NewContainer(tt.config(), zap.NewNop())
			require.NoError(t, err)
			assert.False(t, c.Ready())

			require.NoError(t, c.Start(ctx))
			assert.True(t, c.Ready())
			assert.Error(t, c.Start(ctx), "second start is rejected")

			health := c.Health(ctx)
			assert.True(t, health.Overall)
			assert.True(t, health.Components["storage"].Healthy)
			_, hasDB := health.Components["database"]
			assert.Equal(t, tt.wantDB, hasDB)

			services := c.Services()
			require.NotNil(t, services)

			draft, err := services.Documents.NewDraft(ctx, entity.DocumentTypeChallan)
			require.NoError(t, err)
			draft.ClientName = "Karim"
			_, err = services.Documents.Save(ctx, draft)
			require.NoError(t, err)
			assert.Len(t, services.Documents.List(ctx, service.ListFilter{}), 1)

			raw, ok, err := c.KeyValueStore().Read(ctx, entity.DocumentsKey)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Contains(t, string(raw), "Karim")

			require.NoError(t, c.Close())
			assert.False(t, c.Ready())
			assert.Error(t, c.Close())
			assert.Error(t, c.Start(ctx))
		})
	}
}

func TestContainer_HealthBeforeStart(t *testing.T) {
	c, err := NewContainer(DefaultConfig(), zap.NewNop())
	require.NoError(t, err)

	health := c.Health(context.Background())
	assert.False(t, health.Overall)
	assert.False(t, health.Components["storage"].Healthy)
	assert.False(t, health.Components["services"].Healthy)
	assert.Nil(t, c.KeyValueStore())
}
