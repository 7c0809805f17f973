package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// Option customizes a store
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for timestamping
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// collection reads and writes one JSON array stored under a single key
type collection[T any] struct {
	kv     port.KeyValueStore
	key    string
	logger *zap.Logger
}

// load never fails: absent, unreadable or corrupt data is an empty collection
func (c collection[T]) load(ctx context.Context) []T {
	data, ok, err := c.kv.Read(ctx, c.key)
	if err != nil {
		c.logger.Warn("Failed to read collection, using empty",
			zap.String("key", c.key),
			zap.Error(err))
		return []T{}
	}
	if !ok || len(data) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("Corrupt collection, using empty",
			zap.String("key", c.key),
			zap.Error(fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// save rewrites the whole collection
func (c collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %v", entity.ErrStorageWriteFailure, c.key, err)
	}
	if err := c.kv.Write(ctx, c.key, data); err != nil {
		c.logger.Error("Failed to persist collection",
			zap.String("key", c.key),
			zap.Int("count", len(items)),
			zap.Int("size", len(data)),
			zap.Error(err))
		return entity.StorageWriteError(err)
	}
	return nil
}
