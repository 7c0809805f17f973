// Package document holds the per-type rules of a BusinessDocument: which
// fields are required, which totals are derived and how drafts are built.
package document

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// Variant is the type-specific view of a stored document. The persisted
// record stays flat; Of selects the rule set for its type.
type Variant interface {
	Type() entity.DocumentType
	Document() *entity.BusinessDocument
	Validate() error
	// Finalize applies derived fields before the document is stored.
	Finalize()
	Totals() Totals
}

// Of returns the variant for doc.Type.
func Of(doc *entity.BusinessDocument) (Variant, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", entity.ErrValidation)
	}
	b := base{doc: doc}
	switch doc.Type {
	case entity.DocumentTypeInvoice:
		return Invoice{b}, nil
	case entity.DocumentTypeQuotation:
		return Quotation{b}, nil
	case entity.DocumentTypeBill:
		return Bill{b}, nil
	case entity.DocumentTypeChallan:
		return Challan{b}, nil
	case entity.DocumentTypeProInvoice:
		return ProInvoice{b}, nil
	default:
		return nil, entity.ErrInvalidDocumentType
	}
}

// ComputeTotals is a shortcut for Of(doc).Totals(). Unknown types have no financials.
func ComputeTotals(doc *entity.BusinessDocument) Totals {
	v, err := Of(doc)
	if err != nil {
		return Totals{}
	}
	return v.Totals()
}

type base struct {
	doc *entity.BusinessDocument
}

func (b base) Document() *entity.BusinessDocument { return b.doc }

func (b base) Finalize() {}

func (b base) validateCommon() error {
	d := b.doc
	if strings.TrimSpace(d.ID) == "" {
		return entity.NewValidationError("id", "is required")
	}
	if d.LogoSize != nil && (*d.LogoSize < entity.MinLogoSize || *d.LogoSize > entity.MaxLogoSize) {
		return entity.NewValidationError("logoSize",
			fmt.Sprintf("must be between %d and %d", entity.MinLogoSize, entity.MaxLogoSize))
	}
	if d.LogoPosition != nil && (*d.LogoPosition < entity.MinLogoPosition || *d.LogoPosition > entity.MaxLogoPosition) {
		return entity.NewValidationError("logoPosition",
			fmt.Sprintf("must be between %d and %d", entity.MinLogoPosition, entity.MaxLogoPosition))
	}
	if d.VehicleTitleAlign != "" && !d.VehicleTitleAlign.Valid() {
		return entity.NewValidationError("vehicleTitleAlign", "must be left, center, right or justify")
	}
	if d.VehiclePrice < 0 {
		return entity.NewValidationError("vehiclePrice", "must not be negative")
	}
	if d.Quantity < 0 {
		return entity.NewValidationError("quantity", "must not be negative")
	}
	if d.AdvancedPaidAmount != nil && *d.AdvancedPaidAmount < 0 {
		return entity.NewValidationError("advancedPaidAmount", "must not be negative")
	}
	if d.BankPaymentAmount != nil && *d.BankPaymentAmount < 0 {
		return entity.NewValidationError("bankPaymentAmount", "must not be negative")
	}
	for i, p := range d.Payments {
		if p.Amount < 0 {
			return entity.NewValidationError(fmt.Sprintf("payments[%d].amount", i), "must not be negative")
		}
	}
	for i, item := range d.Items {
		if item.Quantity < 1 {
			return entity.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
		if item.UnitPrice < 0 {
			return entity.NewValidationError(fmt.Sprintf("items[%d].unitPrice", i), "must not be negative")
		}
		if item.ImageSize != "" && !item.ImageSize.Valid() {
			return entity.NewValidationError(fmt.Sprintf("items[%d].imageSize", i), "must be small, medium or large")
		}
	}
	return nil
}

func (b base) requireClientName() error {
	if strings.TrimSpace(b.doc.ClientName) == "" {
		return entity.NewValidationError("clientName", "buyer's name is required")
	}
	return nil
}

// Invoice is a car sale invoice with an installment history.
type Invoice struct{ base }

func (Invoice) Type() entity.DocumentType { return entity.DocumentTypeInvoice }

func (v Invoice) Validate() error {
	if err := v.requireClientName(); err != nil {
		return err
	}
	return v.validateCommon()
}

func (v Invoice) Totals() Totals {
	return balanceTotals(decimal.NewFromFloat(v.doc.VehiclePrice), PaymentsTotal(v.doc.Payments))
}

// Quotation is addressed to an institution; acName/clientOffice stand in for clientName.
type Quotation struct{ base }

func (Quotation) Type() entity.DocumentType { return entity.DocumentTypeQuotation }

func (v Quotation) Validate() error { return v.validateCommon() }

func (v Quotation) Totals() Totals {
	return balanceTotals(decimal.NewFromFloat(v.doc.VehiclePrice), decimal.Zero)
}

// Bill is a purchase bill settled by an advance plus a bank payment.
type Bill struct{ base }

func (Bill) Type() entity.DocumentType { return entity.DocumentTypeBill }

func (v Bill) Validate() error { return v.validateCommon() }

func (v Bill) Totals() Totals {
	paid := optionalAmount(v.doc.AdvancedPaidAmount).Add(optionalAmount(v.doc.BankPaymentAmount))
	return balanceTotals(decimal.NewFromFloat(v.doc.VehiclePrice), paid)
}

// Challan is a delivery note with no financial section.
type Challan struct{ base }

func (Challan) Type() entity.DocumentType { return entity.DocumentTypeChallan }

func (v Challan) Validate() error {
	if err := v.requireClientName(); err != nil {
		return err
	}
	return v.validateCommon()
}

func (Challan) Totals() Totals { return Totals{} }

// ProInvoice is an itemized product invoice; its vehiclePrice is derived.
type ProInvoice struct{ base }

func (ProInvoice) Type() entity.DocumentType { return entity.DocumentTypeProInvoice }

func (v ProInvoice) Validate() error { return v.validateCommon() }

// Finalize overwrites vehiclePrice with the items subtotal.
func (v ProInvoice) Finalize() {
	v.doc.VehiclePrice = Float(v.subtotal())
}

func (v ProInvoice) Totals() Totals {
	return balanceTotals(v.subtotal(), PaymentsTotal(v.doc.Payments))
}

// subtotal is rounded to cents so it always equals the stored vehiclePrice.
func (v ProInvoice) subtotal() decimal.Decimal {
	return ItemsSubtotal(v.doc.Items).Round(2)
}

var (
	_ Variant = Invoice{}
	_ Variant = Quotation{}
	_ Variant = Bill{}
	_ Variant = Challan{}
	_ Variant = ProInvoice{}
)

// Prepare validates doc and applies its derived fields. doc is left
// untouched when validation fails.
func Prepare(doc *entity.BusinessDocument) error {
	v, err := Of(doc)
	if err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	v.Finalize()
	return nil
}
