package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

const fileSuffix = ".json"

// FileStore keeps each key as a file under baseDir
type FileStore struct {
	baseDir string
	quota   int64
	logger  *zap.Logger
}

// NewFileStore creates a FileStore rooted at baseDir. quota <= 0 means unlimited.
func NewFileStore(baseDir string, quota int64, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{
		baseDir: baseDir,
		quota:   quota,
		logger:  logger,
	}, nil
}

// Read reads the file backing key
func (s *FileStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	fullPath, err := s.pathFor(key)
	if err != nil {
		return nil, false, err
	}

	content, err := os.ReadFile(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read file",
			zap.String("path", fullPath),
			zap.Error(err))
		return nil, false, fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}

	s.logger.Debug("File read successfully",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))
	return content, true, nil
}

// Write replaces the file backing key. The new content is written to a
// temporary file first so a failed write leaves the old value intact.
func (s *FileStore) Write(ctx context.Context, key string, value []byte) error {
	fullPath, err := s.pathFor(key)
	if err != nil {
		return entity.StorageWriteError(err)
	}

	if s.quota > 0 {
		others, err := s.usageExcluding(fullPath)
		if err != nil {
			return entity.StorageWriteError(err)
		}
		if used := others + int64(len(value)); used > s.quota {
			return fmt.Errorf("%w: %d of %d bytes", entity.ErrStorageQuotaExceeded, used, s.quota)
		}
	}

	tmp, err := os.CreateTemp(s.baseDir, ".tmp-*")
	if err != nil {
		s.logger.Error("Failed to create temp file", zap.String("dir", s.baseDir), zap.Error(err))
		return entity.StorageWriteError(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		s.logger.Error("Failed to write file", zap.String("path", fullPath), zap.Error(err))
		return entity.StorageWriteError(err)
	}
	if err := tmp.Close(); err != nil {
		return entity.StorageWriteError(err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		s.logger.Error("Failed to replace file", zap.String("path", fullPath), zap.Error(err))
		return entity.StorageWriteError(err)
	}

	s.logger.Debug("File saved successfully",
		zap.String("path", fullPath),
		zap.Int("size", len(value)))
	return nil
}

func (s *FileStore) pathFor(key string) (string, error) {
	fullPath := filepath.Join(s.baseDir, key+fileSuffix)
	if err := s.validatePath(fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

// validatePath checks that the path is safe and within baseDir
func (s *FileStore) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}
	return nil
}

func (s *FileStore) usageExcluding(skip string) (int64, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return 0, fmt.Errorf("failed to list storage directory: %w", err)
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		if filepath.Join(s.baseDir, e.Name()) == skip {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

var _ port.KeyValueStore = (*FileStore)(nil)
