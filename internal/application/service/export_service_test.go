package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

func TestExportService_Register(t *testing.T) {
	ctx := context.Background()
	docs := &mockDocumentStore{docs: []entity.BusinessDocument{
		{ID: "1", Type: entity.DocumentTypeInvoice, ClientName: "Rahim", VehiclePrice: 1000, CreatedAt: 1,
			Payments: []entity.PaymentEntry{{ID: "p", Amount: 400}}},
		{ID: "2", Type: entity.DocumentTypeBill, ClientName: "Karim", VehiclePrice: 800, CreatedAt: 2,
			AdvancedPaidAmount: entity.FloatPtr(100), BankPaymentAmount: entity.FloatPtr(200)},
		{ID: "3", Type: entity.DocumentTypeChallan, ClientName: "Rahim", CreatedAt: 3},
	}}
	documents := newTestDocumentService(docs, newMockPreferenceStore())

	t.Run("rows carry derived totals", func(t *testing.T) {
		exporter := &mockExporter{}
		svc := NewExportService(documents, exporter, &mockLogger{})

		var buf bytes.Buffer
		require.NoError(t, svc.Register(ctx, &buf, ListFilter{}))
		assert.Equal(t, "xlsx", buf.String())

		require.Len(t, exporter.rows, 3)
		assert.Equal(t, "3", exporter.rows[0].Document.ID)
		assert.Zero(t, exporter.rows[0].Balance)

		assert.Equal(t, "2", exporter.rows[1].Document.ID)
		assert.Equal(t, 300.0, exporter.rows[1].TotalPaid)
		assert.Equal(t, 500.0, exporter.rows[1].Balance)

		assert.Equal(t, 1000.0, exporter.rows[2].Subtotal)
		assert.Equal(t, 600.0, exporter.rows[2].Balance)
	})

	t.Run("filter applies", func(t *testing.T) {
		exporter := &mockExporter{}
		svc := NewExportService(documents, exporter, &mockLogger{})

		require.NoError(t, svc.Register(ctx, io.Discard, ListFilter{Query: "rahim", Type: entity.DocumentTypeInvoice}))
		require.Len(t, exporter.rows, 1)
		assert.Equal(t, "1", exporter.rows[0].Document.ID)
	})

	t.Run("writer failure", func(t *testing.T) {
		boom := errors.New("disk full")
		exporter := &mockExporter{writeFunc: func(ctx context.Context, w io.Writer, rows []port.RegisterRow) error {
			return boom
		}}
		svc := NewExportService(documents, exporter, &mockLogger{})

		assert.ErrorIs(t, svc.Register(ctx, io.Discard, ListFilter{}), boom)
	})
}

func TestExportService_FileName(t *testing.T) {
	ctx := context.Background()
	docs := &mockDocumentStore{docs: []entity.BusinessDocument{
		{ID: "1", Type: entity.DocumentTypeInvoice, DocNumber: "INV-654321", ClientName: "Rahim"},
	}}
	svc := NewExportService(newTestDocumentService(docs, newMockPreferenceStore()), &mockExporter{}, &mockLogger{})

	name, err := svc.FileName(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "INV-654321_Rahim.pdf", name)

	_, err = svc.FileName(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrDocumentNotFound)
}
