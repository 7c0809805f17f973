package port

import (
	"context"
	"io"

	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// DocumentStore persists the documents collection.
type DocumentStore interface {
	// Load returns all documents. Absent or corrupt data yields an empty slice.
	Load(ctx context.Context) []entity.BusinessDocument

	// Upsert replaces the document with doc.ID or appends it. On write
	// failure it returns the prior collection together with the error.
	Upsert(ctx context.Context, doc entity.BusinessDocument) ([]entity.BusinessDocument, error)

	// Remove drops the document with id and returns the remaining collection.
	Remove(ctx context.Context, id string) []entity.BusinessDocument
}

// AssetStore persists the image library.
type AssetStore interface {
	Load(ctx context.Context) []entity.Asset

	// Add appends asset. On write failure it returns the prior collection
	// together with the error.
	Add(ctx context.Context, asset entity.Asset) ([]entity.Asset, error)

	Delete(ctx context.Context, id string) []entity.Asset

	Get(ctx context.Context, id string) (entity.Asset, bool)

	// ListByType filters the library; an empty type returns every asset.
	ListByType(ctx context.Context, t entity.AssetType) []entity.Asset
}

// PreferenceStore remembers branding per document type.
type PreferenceStore interface {
	Get(ctx context.Context, t entity.DocumentType) (entity.LogoSettings, bool)

	// Set merges settings for t. Persist failures are logged, not returned.
	Set(ctx context.Context, t entity.DocumentType, settings entity.LogoSettings)
}

// RegisterRow is one document of the exported register with its derived totals.
type RegisterRow struct {
	Document  entity.BusinessDocument
	Subtotal  float64
	TotalPaid float64
	Balance   float64
}

// RegisterExporter renders the document register to w.
type RegisterExporter interface {
	WriteRegister(ctx context.Context, w io.Writer, rows []RegisterRow) error
}
