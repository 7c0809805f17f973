package entity

// DocumentType classifies a BusinessDocument. Fixed at creation.
type DocumentType string

const (
	DocumentTypeInvoice    DocumentType = "INVOICE"
	DocumentTypeQuotation  DocumentType = "QUOTATION"
	DocumentTypeBill       DocumentType = "BILL"
	DocumentTypeChallan    DocumentType = "CHALLAN"
	DocumentTypeProInvoice DocumentType = "PRO_INVOICE"
)

var documentTypeInfo = map[DocumentType]struct {
	prefix string
	label  string
}{
	DocumentTypeInvoice:    {"INV", "CAR SALE INVOICE"},
	DocumentTypeQuotation:  {"QTN", "QUOTATION"},
	DocumentTypeBill:       {"BIL", "Purchase Bill"},
	DocumentTypeChallan:    {"CHL", "Delivery Challan"},
	DocumentTypeProInvoice: {"PRO", "PRODUCT Invoice"},
}

// AllDocumentTypes returns the document types in menu order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeInvoice,
		DocumentTypeQuotation,
		DocumentTypeBill,
		DocumentTypeChallan,
		DocumentTypeProInvoice,
	}
}

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	_, ok := documentTypeInfo[t]
	return ok
}

// Prefix returns the docNumber prefix, e.g. "INV".
func (t DocumentType) Prefix() string {
	return documentTypeInfo[t].prefix
}

// Label returns the human-facing heading for the type.
func (t DocumentType) Label() string {
	return documentTypeInfo[t].label
}

// ParseDocumentType validates a raw type name.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if !t.Valid() {
		return "", ErrInvalidDocumentType
	}
	return t, nil
}

// TitleAlign controls vehicleTitle presentation.
type TitleAlign string

const (
	AlignLeft    TitleAlign = "left"
	AlignCenter  TitleAlign = "center"
	AlignRight   TitleAlign = "right"
	AlignJustify TitleAlign = "justify"
)

// Valid reports whether a is one of the supported alignments.
func (a TitleAlign) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}

// ImageSize is the rendered size of an item image.
type ImageSize string

const (
	ImageSizeSmall  ImageSize = "small"
	ImageSizeMedium ImageSize = "medium"
	ImageSizeLarge  ImageSize = "large"
)

// Valid reports whether s is a supported image size.
func (s ImageSize) Valid() bool {
	switch s {
	case ImageSizeSmall, ImageSizeMedium, ImageSizeLarge:
		return true
	}
	return false
}

// Branding ranges, in pixels
const (
	MinLogoSize     = 50
	MaxLogoSize     = 500
	MinLogoPosition = 0
	MaxLogoPosition = 500

	DefaultLogoSize     = 220
	DefaultLogoPosition = 0
)

// Persisted collection keys
const (
	DocumentsKey   = "bizdoc_pro_data"
	AssetsKey      = "bizdoc_pro_assets"
	PreferencesKey = "bizdoc_pro_prefs"
)

// DateLayout is the ISO calendar date format used for document and payment dates.
const DateLayout = "2006-01-02"
