package repository

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// DocumentStore implements port.DocumentStore
type DocumentStore struct {
	docs   collection[entity.BusinessDocument]
	opts   options
	logger *zap.Logger
}

// NewDocumentStore creates a document store over kv
func NewDocumentStore(kv port.KeyValueStore, logger *zap.Logger, opts ...Option) *DocumentStore {
	return &DocumentStore{
		docs:   collection[entity.BusinessDocument]{kv: kv, key: entity.DocumentsKey, logger: logger},
		opts:   buildOptions(opts),
		logger: logger,
	}
}

// Load returns all stored documents
func (s *DocumentStore) Load(ctx context.Context) []entity.BusinessDocument {
	return s.docs.load(ctx)
}

// Upsert replaces the document with the same id, stamping updatedAt, or
// appends it, stamping createdAt when unset.
func (s *DocumentStore) Upsert(ctx context.Context, doc entity.BusinessDocument) ([]entity.BusinessDocument, error) {
	prior := s.docs.load(ctx)
	nowMillis := s.opts.now().UnixMilli()

	updated := slices.Clone(prior)
	idx := slices.IndexFunc(updated, func(d entity.BusinessDocument) bool { return d.ID == doc.ID })
	if idx >= 0 {
		doc.UpdatedAt = &nowMillis
		updated[idx] = doc
	} else {
		if doc.CreatedAt == 0 {
			doc.CreatedAt = nowMillis
		}
		updated = append(updated, doc)
	}

	if err := s.docs.save(ctx, updated); err != nil {
		s.logger.Error("Failed to save document",
			zap.String("id", doc.ID),
			zap.String("doc_number", doc.DocNumber),
			zap.Error(err))
		return prior, err
	}

	s.logger.Info("Document saved",
		zap.String("id", doc.ID),
		zap.String("type", string(doc.Type)),
		zap.Bool("replaced", idx >= 0))
	return updated, nil
}

// Remove deletes the document with id. A missing id leaves the collection as is.
func (s *DocumentStore) Remove(ctx context.Context, id string) []entity.BusinessDocument {
	docs := s.docs.load(ctx)
	filtered := slices.DeleteFunc(slices.Clone(docs), func(d entity.BusinessDocument) bool { return d.ID == id })
	if len(filtered) == len(docs) {
		return docs
	}

	if err := s.docs.save(ctx, filtered); err != nil {
		s.logger.Error("Failed to persist document removal", zap.String("id", id), zap.Error(err))
	} else {
		s.logger.Info("Document removed", zap.String("id", id))
	}
	return filtered
}

var _ port.DocumentStore = (*DocumentStore)(nil)
