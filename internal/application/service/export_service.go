package service

import (
	"context"
	"io"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/document"
)

// ExportService produces downloadable artifacts for stored documents
type ExportService interface {
	// Register writes the spreadsheet register of the documents matching filter
	Register(ctx context.Context, w io.Writer, filter ListFilter) error

	// FileName returns the PDF name for the document with id
	FileName(ctx context.Context, id string) (string, error)
}

type exportServiceImpl struct {
	documents DocumentService
	exporter  port.RegisterExporter
	logger    Logger
}

// NewExportService creates a new ExportService
func NewExportService(documents DocumentService, exporter port.RegisterExporter, logger Logger) ExportService {
	return &exportServiceImpl{
		documents: documents,
		exporter:  exporter,
		logger:    logger,
	}
}

// Register writes one row per matching document with its derived totals
func (s *exportServiceImpl) Register(ctx context.Context, w io.Writer, filter ListFilter) error {
	docs := s.documents.List(ctx, filter)
	rows := make([]port.RegisterRow, 0, len(docs))
	for _, d := range docs {
		totals := document.ComputeTotals(&d)
		rows = append(rows, port.RegisterRow{
			Document:  d,
			Subtotal:  document.Float(totals.Subtotal),
			TotalPaid: document.Float(totals.TotalPaid),
			Balance:   document.Float(totals.Balance),
		})
	}

	if err := s.exporter.WriteRegister(ctx, w, rows); err != nil {
		s.logger.Error("Failed to export register", "error", err, "rows", len(rows))
		return err
	}
	s.logger.Info("Register exported", "rows", len(rows))
	return nil
}

// FileName returns {docNumber}_{clientName}.pdf for the document with id
func (s *exportServiceImpl) FileName(ctx context.Context, id string) (string, error) {
	detail, err := s.documents.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return detail.FileName, nil
}
