package document

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// Builder defaults
const (
	DefaultTitleSize     = 18
	DefaultBillTitleSize = 20
	DefaultQuantity      = 1
	DefaultPaymentNote   = "CASH"
	DefaultItemName      = "Tissu Box"
	DefaultItemPrice     = 20
	proNumberRange       = 100000
)

// Options controls the non-deterministic inputs of the builder.
type Options struct {
	Now    func() time.Time
	RandIn func(n int) int
	NewID  func() string
}

// Option customizes Options.
type Option func(*Options)

// WithClock fixes the time source.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}

// WithRand fixes the random source used for PRO_INVOICE numbers.
func WithRand(randIn func(n int) int) Option {
	return func(o *Options) { o.RandIn = randIn }
}

// WithIDs fixes the id generator.
func WithIDs(newID func() string) Option {
	return func(o *Options) { o.NewID = newID }
}

func buildOptions(opts []Option) Options {
	o := Options{
		Now:    time.Now,
		RandIn: rand.Intn,
		NewID:  NewID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewID returns an opaque unique identifier.
func NewID() string {
	return uuid.NewString()
}

// NowMillis returns t as epoch milliseconds.
func NowMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// NewDocNumber generates the default human-facing reference for t.
// Uniqueness is best effort.
func NewDocNumber(t entity.DocumentType, opts ...Option) string {
	o := buildOptions(opts)
	if t == entity.DocumentTypeProInvoice {
		return fmt.Sprintf("PRO-%d", o.RandIn(proNumberRange))
	}
	ms := strconv.FormatInt(o.Now().UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return t.Prefix() + "-" + ms
}

// NewDraft builds a new document of type t with every field set to its
// default. Remembered branding in prefs wins over the built-in defaults.
func NewDraft(t entity.DocumentType, prefs *entity.LogoSettings, opts ...Option) (*entity.BusinessDocument, error) {
	if !t.Valid() {
		return nil, entity.ErrInvalidDocumentType
	}
	o := buildOptions(opts)
	now := o.Now()

	titleSize := DefaultTitleSize
	if t == entity.DocumentTypeBill {
		titleSize = DefaultBillTitleSize
	}

	doc := &entity.BusinessDocument{
		ID:                 o.NewID(),
		Type:               t,
		DocNumber:          NewDocNumber(t, opts...),
		Date:               now.Format(entity.DateLayout),
		LogoURL:            "",
		LogoSize:           entity.IntPtr(entity.DefaultLogoSize),
		LogoPosition:       entity.IntPtr(entity.DefaultLogoPosition),
		VehicleTitleSize:   entity.IntPtr(titleSize),
		VehicleTitleAlign:  entity.AlignLeft,
		VehiclePrice:       0,
		Payments:           []entity.PaymentEntry{},
		AdvancedPaidAmount: entity.FloatPtr(0),
		BankPaymentAmount:  entity.FloatPtr(0),
		Quantity:           DefaultQuantity,
		HiddenFields:       []string{},
		CreatedAt:          now.UnixMilli(),
	}
	applyBranding(doc, prefs)

	if t == entity.DocumentTypeProInvoice {
		doc.Items = []entity.InvoiceItem{{
			ID:          o.NewID(),
			Description: DefaultItemName,
			Quantity:    1,
			UnitPrice:   DefaultItemPrice,
			ImageSize:   entity.ImageSizeMedium,
		}}
		doc.Payments = []entity.PaymentEntry{NewPayment(now, opts...)}
	}
	return doc, nil
}

func applyBranding(doc *entity.BusinessDocument, prefs *entity.LogoSettings) {
	if prefs == nil {
		return
	}
	if prefs.LogoURL != "" {
		doc.LogoURL = prefs.LogoURL
	}
	// zero means "unset" in remembered settings
	if prefs.LogoSize != nil && *prefs.LogoSize != 0 {
		doc.LogoSize = entity.IntPtr(*prefs.LogoSize)
	}
	if prefs.LogoPosition != nil && *prefs.LogoPosition != 0 {
		doc.LogoPosition = entity.IntPtr(*prefs.LogoPosition)
	}
}

// NewPayment returns an empty cash installment dated t.
func NewPayment(t time.Time, opts ...Option) entity.PaymentEntry {
	o := buildOptions(opts)
	return entity.PaymentEntry{
		ID:     o.NewID(),
		Date:   t.Format(entity.DateLayout),
		Amount: 0,
		Note:   DefaultPaymentNote,
	}
}

// NewItem returns a blank product line.
func NewItem(opts ...Option) entity.InvoiceItem {
	o := buildOptions(opts)
	return entity.InvoiceItem{
		ID:        o.NewID(),
		Quantity:  1,
		UnitPrice: 0,
		ImageSize: entity.ImageSizeMedium,
	}
}

// BrandingOf extracts the settings remembered for the document's type.
func BrandingOf(doc *entity.BusinessDocument) entity.LogoSettings {
	s := entity.LogoSettings{LogoURL: doc.LogoURL}
	if doc.LogoSize != nil {
		s.LogoSize = entity.IntPtr(*doc.LogoSize)
	}
	if doc.LogoPosition != nil {
		s.LogoPosition = entity.IntPtr(*doc.LogoPosition)
	}
	return s
}
