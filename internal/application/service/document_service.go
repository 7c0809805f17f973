package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/document"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// ListFilter narrows the document list. Zero values match everything.
type ListFilter struct {
	// Query is matched case-insensitively against clientName and docNumber
	Query string
	Type  entity.DocumentType
}

// TotalsView is the JSON-friendly form of document.Totals
type TotalsView struct {
	Subtotal      float64 `json:"subtotal"`
	TotalPaid     float64 `json:"totalPaid"`
	Balance       float64 `json:"balance"`
	HasFinancials bool    `json:"hasFinancials"`
}

// DocumentDetail is a stored document with its derived totals
type DocumentDetail struct {
	Document *entity.BusinessDocument `json:"document"`
	Totals   TotalsView               `json:"totals"`
	FileName string                   `json:"fileName"`
}

// Stats summarizes the stored documents for the dashboard
type Stats struct {
	TotalRecords int                         `json:"totalRecords"`
	TotalValue   float64                     `json:"totalValue"`
	ByType       map[entity.DocumentType]int `json:"byType"`
}

// DocumentService manages the document lifecycle
type DocumentService interface {
	NewDraft(ctx context.Context, t entity.DocumentType) (*entity.BusinessDocument, error)
	Save(ctx context.Context, draft *entity.BusinessDocument) (*entity.BusinessDocument, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*DocumentDetail, error)
	List(ctx context.Context, filter ListFilter) []entity.BusinessDocument
	Stats(ctx context.Context) Stats
	ToggleField(ctx context.Context, id, field string) (*entity.BusinessDocument, error)
}

type documentServiceImpl struct {
	docs    port.DocumentStore
	prefs   port.PreferenceStore
	logger  Logger
	options []document.Option
}

// NewDocumentService creates a new DocumentService. opts are passed to the
// draft builder.
func NewDocumentService(
	docs port.DocumentStore,
	prefs port.PreferenceStore,
	logger Logger,
	opts ...document.Option,
) DocumentService {
	return &documentServiceImpl{
		docs:    docs,
		prefs:   prefs,
		logger:  logger,
		options: opts,
	}
}

// NewDraft builds a draft of type t branded with the remembered settings
func (s *documentServiceImpl) NewDraft(ctx context.Context, t entity.DocumentType) (*entity.BusinessDocument, error) {
	if !t.Valid() {
		return nil, entity.ErrInvalidDocumentType
	}

	var branding *entity.LogoSettings
	if settings, ok := s.prefs.Get(ctx, t); ok {
		branding = &settings
	}
	return document.NewDraft(t, branding, s.options...)
}

// Save validates and finalizes the draft, remembers its branding and stores
// it. A draft that fails validation never reaches the stores. Re-saving keeps
// the stored type and createdAt.
func (s *documentServiceImpl) Save(ctx context.Context, draft *entity.BusinessDocument) (*entity.BusinessDocument, error) {
	if draft == nil {
		return nil, entity.NewValidationError("document", "document is required")
	}

	doc := draft.Clone()
	if stored, ok := s.find(ctx, doc.ID); ok {
		if stored.Type != doc.Type {
			return nil, entity.NewValidationError("type",
				fmt.Sprintf("cannot change %s to %s", stored.Type, doc.Type))
		}
		doc.CreatedAt = stored.CreatedAt
	}
	if err := document.Prepare(doc); err != nil {
		s.logger.Info("Document rejected", "id", doc.ID, "type", doc.Type, "reason", err.Error())
		return nil, err
	}

	s.prefs.Set(ctx, doc.Type, document.BrandingOf(doc))

	docs, err := s.docs.Upsert(ctx, *doc)
	if err != nil {
		s.logger.Error("Failed to save document", "error", err, "id", doc.ID)
		return nil, err
	}

	if idx := slices.IndexFunc(docs, func(d entity.BusinessDocument) bool { return d.ID == doc.ID }); idx >= 0 {
		doc = docs[idx].Clone()
	}
	s.logger.Info("Document saved", "id", doc.ID, "type", doc.Type, "doc_number", doc.DocNumber)
	return doc, nil
}

// Delete removes the document with id
func (s *documentServiceImpl) Delete(ctx context.Context, id string) error {
	if _, ok := s.find(ctx, id); !ok {
		return entity.ErrDocumentNotFound
	}
	s.docs.Remove(ctx, id)
	s.logger.Info("Document deleted", "id", id)
	return nil
}

// Get returns the document with id and its totals
func (s *documentServiceImpl) Get(ctx context.Context, id string) (*DocumentDetail, error) {
	doc, ok := s.find(ctx, id)
	if !ok {
		return nil, entity.ErrDocumentNotFound
	}
	return &DocumentDetail{
		Document: doc,
		Totals:   totalsView(document.ComputeTotals(doc)),
		FileName: document.ExportFileName(doc),
	}, nil
}

// List returns the matching documents, newest first
func (s *documentServiceImpl) List(ctx context.Context, filter ListFilter) []entity.BusinessDocument {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	docs := s.docs.Load(ctx)
	matched := make([]entity.BusinessDocument, 0, len(docs))
	for _, d := range docs {
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(d.ClientName), query) &&
			!strings.Contains(strings.ToLower(d.DocNumber), query) {
			continue
		}
		matched = append(matched, d)
	}

	slices.SortStableFunc(matched, func(a, b entity.BusinessDocument) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}
		return 0
	})
	return matched
}

// Stats counts the stored documents and sums their prices
func (s *documentServiceImpl) Stats(ctx context.Context) Stats {
	stats := Stats{ByType: make(map[entity.DocumentType]int, len(entity.AllDocumentTypes()))}
	for _, t := range entity.AllDocumentTypes() {
		stats.ByType[t] = 0
	}

	total := decimal.Zero
	for _, d := range s.docs.Load(ctx) {
		stats.TotalRecords++
		stats.ByType[d.Type]++
		total = total.Add(decimal.NewFromFloat(d.VehiclePrice))
	}
	stats.TotalValue = document.Float(total)
	return stats
}

// ToggleField flips the visibility of field on a stored document
func (s *documentServiceImpl) ToggleField(ctx context.Context, id, field string) (*entity.BusinessDocument, error) {
	if strings.TrimSpace(field) == "" {
		return nil, entity.NewValidationError("field", "field name is required")
	}
	doc, ok := s.find(ctx, id)
	if !ok {
		return nil, entity.ErrDocumentNotFound
	}

	document.ToggleHidden(doc, field)
	if _, err := s.docs.Upsert(ctx, *doc); err != nil {
		s.logger.Error("Failed to toggle field", "error", err, "id", id, "field", field)
		return nil, err
	}
	s.logger.Info("Field visibility toggled", "id", id, "field", field, "hidden", document.IsHidden(doc, field))
	return doc, nil
}

func (s *documentServiceImpl) find(ctx context.Context, id string) (*entity.BusinessDocument, bool) {
	for _, d := range s.docs.Load(ctx) {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return nil, false
}

func totalsView(t document.Totals) TotalsView {
	return TotalsView{
		Subtotal:      document.Float(t.Subtotal),
		TotalPaid:     document.Float(t.TotalPaid),
		Balance:       document.Float(t.Balance),
		HasFinancials: t.HasFinancials,
	}
}
