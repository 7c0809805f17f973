package entity

// AssetType categorizes an uploaded image in the library.
type AssetType string

const (
	AssetTypeLogo      AssetType = "LOGO"
	AssetTypeIcon      AssetType = "ICON"
	AssetTypeSignature AssetType = "SIGNATURE"
	AssetTypeProduct   AssetType = "PRODUCT"
)

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeLogo, AssetTypeIcon, AssetTypeSignature, AssetTypeProduct:
		return true
	}
	return false
}

// Asset is a reusable uploaded image. Documents copy DataURL by value, so
// deleting an asset never changes documents that already use it.
type Asset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      AssetType `json:"type"`
	DataURL   string    `json:"dataUrl"`
	CreatedAt int64     `json:"createdAt"`
}

// LogoSettings is the last-used branding for a document type.
type LogoSettings struct {
	LogoURL      string `json:"logoUrl,omitempty"`
	LogoSize     *int   `json:"logoSize,omitempty"`
	LogoPosition *int   `json:"logoPosition,omitempty"`
}

// UserPreferences is the persisted preferences value.
type UserPreferences struct {
	TypeSettings map[DocumentType]LogoSettings `json:"typeSettings"`
}
