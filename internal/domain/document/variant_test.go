package document

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/bizdoc/internal/domain/entity"
)

func validDoc(t entity.DocumentType) *entity.BusinessDocument {
	return &entity.BusinessDocument{
		ID:                "doc-1",
		Type:              t,
		DocNumber:         t.Prefix() + "-123456",
		Date:              "2024-03-01",
		ClientName:        "Rahim Uddin",
		LogoSize:          entity.IntPtr(entity.DefaultLogoSize),
		LogoPosition:      entity.IntPtr(0),
		VehicleTitleAlign: entity.AlignLeft,
		Quantity:          1,
		Payments:          []entity.PaymentEntry{},
	}
}

func TestOf(t *testing.T) {
	for _, dt := range entity.AllDocumentTypes() {
		t.Run(string(dt), func(t *testing.T) {
			v, err := Of(validDoc(dt))
			require.NoError(t, err)
			assert.Equal(t, dt, v.Type())
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, err := Of(&entity.BusinessDocument{ID: "x", Type: "RECEIPT"})
		assert.ErrorIs(t, err, entity.ErrInvalidDocumentType)
	})

	t.Run("nil document", func(t *testing.T) {
		_, err := Of(nil)
		assert.ErrorIs(t, err, entity.ErrValidation)
	})
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name        string
		doc         func() *entity.BusinessDocument
		wantSub     float64
		wantPaid    float64
		wantBalance float64
		wantFin     bool
	}{
		{
			name: "invoice balance after installments",
			doc: func() *entity.BusinessDocument {
				d := validDoc(entity.DocumentTypeInvoice)
				d.VehiclePrice = 1000
				d.Payments = []entity.PaymentEntry{
					{ID: "p1", Amount: 300, Note: "CASH"},
					{ID: "p2", Amount: 200, Note: "BANK"},
				}
				return d
			},
			wantSub: 1000, wantPaid: 500, wantBalance: 500, wantFin: true,
		},
		{
			name: "invoice overpaid goes negative",
			doc: func() *entity.BusinessDocument {
				d := validDoc(entity.DocumentTypeInvoice)
				d.VehiclePrice = 100
				d.Payments = []entity.PaymentEntry{{ID: "p1", Amount: 150}}
				return d
			},
			wantSub: 100, wantPaid: 150, wantBalance: -50, wantFin: true,
		},
		{
			name: "product invoice from items",
			doc: func() *entity.BusinessDocument {
				d := validDoc(entity.DocumentTypeProInvoice)
				d.Items = []entity.InvoiceItem{
					{ID: "i1", Quantity: 2, UnitPrice: 20},
					{ID: "i2", Quantity: 1, UnitPrice: 100},
				}
				return d
			},
			wantSub: 140, wantPaid: 0, wantBalance: 140, wantFin: true,
		},
		{
			name: "product invoice avoids float drift",
			doc: func() *entity.BusinessDocument {
				d := validDoc(entity.DocumentTypeProInvoice)
				d.Items = []entity.InvoiceItem{
					{ID: "i1", Quantity: 3, UnitPrice: 0.1},
				}
				d.Payments = []entity.PaymentEntry{{ID: "p1", Amount: 0.2}}
				return d
			},
			wantSub: 0.3, wantPaid: 0.2, wantBalance: 0.1, wantFin: true,
		},
		{
			name: "quotation ignores payments",
			doc: func() *entity.BusinessDocument {
				d := validDoc(entity.DocumentTypeQuotation)
				d.VehiclePrice = 3800000
				d.Payments = []entity.PaymentEntry{{ID: "p1", Amount: 10}}
				return d
			},
			wantSub: 3800000, wantPaid: 0, wantBalance: 3800000, wantFin: true,
		},
		{
			name: "bill paid by advance and bank",
			doc: func() *entity.BusinessDocument {
				d := validDoc(entity.DocumentTypeBill)
				d.VehiclePrice = 2000
				d.AdvancedPaidAmount = entity.FloatPtr(500)
				d.BankPaymentAmount = entity.FloatPtr(1000)
				return d
			},
			wantSub: 2000, wantPaid: 1500, wantBalance: 500, wantFin: true,
		},
		{
			name: "bill without amounts",
			doc: func() *entity.BusinessDocument {
				d := validDoc(entity.DocumentTypeBill)
				d.VehiclePrice = 2000
				return d
			},
			wantSub: 2000, wantPaid: 0, wantBalance: 2000, wantFin: true,
		},
		{
			name: "challan has no financials",
			doc: func() *entity.BusinessDocument {
				d := validDoc(entity.DocumentTypeChallan)
				d.VehiclePrice = 999
				return d
			},
			wantFin: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.doc())
			assert.Equal(t, tt.wantFin, totals.HasFinancials)
			assert.Equal(t, tt.wantSub, Float(totals.Subtotal))
			assert.Equal(t, tt.wantPaid, Float(totals.TotalPaid))
			assert.Equal(t, tt.wantBalance, Float(totals.Balance))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		docType   entity.DocumentType
		mutate    func(d *entity.BusinessDocument)
		wantField string
	}{
		{name: "valid invoice", docType: entity.DocumentTypeInvoice, mutate: func(d *entity.BusinessDocument) {}},
		{
			name:      "invoice requires client name",
			docType:   entity.DocumentTypeInvoice,
			mutate:    func(d *entity.BusinessDocument) { d.ClientName = "   " },
			wantField: "clientName",
		},
		{
			name:      "challan requires client name",
			docType:   entity.DocumentTypeChallan,
			mutate:    func(d *entity.BusinessDocument) { d.ClientName = "" },
			wantField: "clientName",
		},
		{
			name:    "quotation accepts blank client name",
			docType: entity.DocumentTypeQuotation,
			mutate:  func(d *entity.BusinessDocument) { d.ClientName = ""; d.ACName = "Registrar" },
		},
		{
			name:    "bill accepts blank client name",
			docType: entity.DocumentTypeBill,
			mutate:  func(d *entity.BusinessDocument) { d.ClientName = "" },
		},
		{
			name:    "product invoice accepts blank client name",
			docType: entity.DocumentTypeProInvoice,
			mutate:  func(d *entity.BusinessDocument) { d.ClientName = "" },
		},
		{
			name:      "id required",
			docType:   entity.DocumentTypeBill,
			mutate:    func(d *entity.BusinessDocument) { d.ID = "" },
			wantField: "id",
		},
		{
			name:      "logo too small",
			docType:   entity.DocumentTypeInvoice,
			mutate:    func(d *entity.BusinessDocument) { d.LogoSize = entity.IntPtr(49) },
			wantField: "logoSize",
		},
		{
			name:    "logo at bounds",
			docType: entity.DocumentTypeInvoice,
			mutate: func(d *entity.BusinessDocument) {
				d.LogoSize = entity.IntPtr(500)
				d.LogoPosition = entity.IntPtr(500)
			},
		},
		{
			name:      "logo position beyond range",
			docType:   entity.DocumentTypeInvoice,
			mutate:    func(d *entity.BusinessDocument) { d.LogoPosition = entity.IntPtr(501) },
			wantField: "logoPosition",
		},
		{
			name:      "unknown alignment",
			docType:   entity.DocumentTypeInvoice,
			mutate:    func(d *entity.BusinessDocument) { d.VehicleTitleAlign = "middle" },
			wantField: "vehicleTitleAlign",
		},
		{
			name:      "negative price",
			docType:   entity.DocumentTypeQuotation,
			mutate:    func(d *entity.BusinessDocument) { d.VehiclePrice = -1 },
			wantField: "vehiclePrice",
		},
		{
			name:      "negative payment",
			docType:   entity.DocumentTypeInvoice,
			mutate:    func(d *entity.BusinessDocument) { d.Payments = []entity.PaymentEntry{{ID: "p", Amount: -5}} },
			wantField: "payments[0].amount",
		},
		{
			name:      "negative bank payment",
			docType:   entity.DocumentTypeBill,
			mutate:    func(d *entity.BusinessDocument) { d.BankPaymentAmount = entity.FloatPtr(-1) },
			wantField: "bankPaymentAmount",
		},
		{
			name:    "item quantity zero",
			docType: entity.DocumentTypeProInvoice,
			mutate: func(d *entity.BusinessDocument) {
				d.Items = []entity.InvoiceItem{{ID: "i", Quantity: 0, UnitPrice: 1}}
			},
			wantField: "items[0].quantity",
		},
		{
			name:    "item image size",
			docType: entity.DocumentTypeProInvoice,
			mutate: func(d *entity.BusinessDocument) {
				d.Items = []entity.InvoiceItem{{ID: "i", Quantity: 1, ImageSize: "huge"}}
			},
			wantField: "items[0].imageSize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDoc(tt.docType)
			tt.mutate(d)

			v, err := Of(d)
			require.NoError(t, err)
			err = v.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, entity.ErrValidation)
			var verr *entity.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestPrepare(t *testing.T) {
	t.Run("product invoice price derived from items", func(t *testing.T) {
		d := validDoc(entity.DocumentTypeProInvoice)
		d.VehiclePrice = 5
		d.Items = []entity.InvoiceItem{
			{ID: "i1", Quantity: 2, UnitPrice: 20},
			{ID: "i2", Quantity: 1, UnitPrice: 100},
		}

		require.NoError(t, Prepare(d))
		assert.Equal(t, 140.0, d.VehiclePrice)
	})

	t.Run("product invoice without items has zero price", func(t *testing.T) {
		d := validDoc(entity.DocumentTypeProInvoice)
		d.VehiclePrice = 50

		require.NoError(t, Prepare(d))
		assert.Zero(t, d.VehiclePrice)
	})

	t.Run("product invoice totals match stored price", func(t *testing.T) {
		d := validDoc(entity.DocumentTypeProInvoice)
		d.Items = []entity.InvoiceItem{{ID: "i1", Quantity: 1, UnitPrice: 0.125}}

		require.NoError(t, Prepare(d))
		assert.Equal(t, 0.13, d.VehiclePrice)

		totals := ComputeTotals(d)
		assert.Equal(t, d.VehiclePrice, Float(totals.Subtotal))
		assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("0.13")))
		assert.True(t, totals.Balance.Equal(decimal.RequireFromString("0.13")))
	})

	t.Run("invoice price kept as entered", func(t *testing.T) {
		d := validDoc(entity.DocumentTypeInvoice)
		d.VehiclePrice = 1000

		require.NoError(t, Prepare(d))
		assert.Equal(t, 1000.0, d.VehiclePrice)
	})

	t.Run("rejected document untouched", func(t *testing.T) {
		d := validDoc(entity.DocumentTypeProInvoice)
		d.VehiclePrice = 7
		d.Items = []entity.InvoiceItem{{ID: "i1", Quantity: 0, UnitPrice: 20}}

		assert.ErrorIs(t, Prepare(d), entity.ErrValidation)
		assert.Equal(t, 7.0, d.VehiclePrice)
	})
}
