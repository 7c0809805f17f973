package entity

// BusinessDocument is one invoice, quotation, bill, challan or product invoice.
// JSON field names match the persisted documents collection.
type BusinessDocument struct {
	ID        string       `json:"id"`
	Type      DocumentType `json:"type"`
	DocNumber string       `json:"docNumber"`
	Date      string       `json:"date"`

	// Branding
	LogoURL      string `json:"logoUrl,omitempty"`
	LogoSize     *int   `json:"logoSize,omitempty"`
	LogoPosition *int   `json:"logoPosition,omitempty"`

	// Party
	ClientName        string `json:"clientName"`
	ClientDesignation string `json:"clientDesignation,omitempty"`
	ClientOffice      string `json:"clientOffice,omitempty"`
	ClientAddress     string `json:"clientAddress"`
	ClientPhone       string `json:"clientPhone,omitempty"`
	ACName            string `json:"acName,omitempty"`

	// Vehicle / item description
	VehicleTitle      string     `json:"vehicleTitle,omitempty"`
	VehicleTitleSize  *int       `json:"vehicleTitleSize,omitempty"`
	VehicleTitleAlign TitleAlign `json:"vehicleTitleAlign,omitempty"`
	Brand             string     `json:"brand,omitempty"`
	Model             string     `json:"model,omitempty"`
	YearModel         string     `json:"yearModel,omitempty"`
	Color             string     `json:"color,omitempty"`
	ChassisNumber     string     `json:"chassisNumber,omitempty"`
	EngineNumber      string     `json:"engineNumber,omitempty"`
	AuctionPoint      string     `json:"auctionPoint,omitempty"`
	CC                string     `json:"cc,omitempty"`
	Fuel              string     `json:"fuel,omitempty"`
	Transmission      string     `json:"transmission,omitempty"`
	ProductImageURL   string     `json:"productImageUrl,omitempty"`

	// Financials
	VehiclePrice       float64        `json:"vehiclePrice"`
	PriceInWords       string         `json:"priceInWords,omitempty"`
	Payments           []PaymentEntry `json:"payments"`
	AdvancedPaidAmount *float64       `json:"advancedPaidAmount,omitempty"`
	BankPaymentAmount  *float64       `json:"bankPaymentAmount,omitempty"`
	BankName           string         `json:"bankName,omitempty"`
	Quantity           int            `json:"quantity"`
	TaxRate            float64        `json:"taxRate"`
	BankDetails        string         `json:"bankDetails,omitempty"`
	ValidUntil         string         `json:"validUntil,omitempty"`

	Notes        string        `json:"notes,omitempty"`
	HiddenFields []string      `json:"hiddenFields"`
	Items        []InvoiceItem `json:"items"`

	// Epoch milliseconds
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt *int64 `json:"updatedAt,omitempty"`
}

// InvoiceItem is a line of a PRO_INVOICE document.
type InvoiceItem struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	ImageSize   ImageSize `json:"imageSize"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
}

// PaymentEntry is one installment recorded against a document.
type PaymentEntry struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

// Clone returns a deep copy so callers can mutate a draft without touching
// the stored collection.
func (d *BusinessDocument) Clone() *BusinessDocument {
	if d == nil {
		return nil
	}
	c := *d
	c.LogoSize = cloneInt(d.LogoSize)
	c.LogoPosition = cloneInt(d.LogoPosition)
	c.VehicleTitleSize = cloneInt(d.VehicleTitleSize)
	c.AdvancedPaidAmount = cloneFloat(d.AdvancedPaidAmount)
	c.BankPaymentAmount = cloneFloat(d.BankPaymentAmount)
	if d.UpdatedAt != nil {
		v := *d.UpdatedAt
		c.UpdatedAt = &v
	}
	if d.Payments != nil {
		c.Payments = append([]PaymentEntry(nil), d.Payments...)
	}
	if d.Items != nil {
		c.Items = append([]InvoiceItem(nil), d.Items...)
	}
	if d.HiddenFields != nil {
		c.HiddenFields = append([]string(nil), d.HiddenFields...)
	}
	return &c
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IntPtr is a convenience for optional integer fields.
func IntPtr(v int) *int { return &v }

// FloatPtr is a convenience for optional amount fields.
func FloatPtr(v float64) *float64 { return &v }
