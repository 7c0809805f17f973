package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garyjia/bizdoc/internal/domain/entity"
)

func TestToggleHidden(t *testing.T) {
	doc := &entity.BusinessDocument{ID: "d1", VehiclePrice: 1000, ClientPhone: "01700000000"}

	ToggleHidden(doc, "clientPhone")
	assert.True(t, IsHidden(doc, "clientPhone"))
	assert.Equal(t, "01700000000", doc.ClientPhone)

	ToggleHidden(doc, FieldItemImageColumn)
	assert.Equal(t, []string{"clientPhone", FieldItemImageColumn}, doc.HiddenFields)

	ToggleHidden(doc, "clientPhone")
	assert.False(t, IsHidden(doc, "clientPhone"))
	assert.Equal(t, []string{FieldItemImageColumn}, doc.HiddenFields)
	assert.Equal(t, "01700000000", doc.ClientPhone)
	assert.Equal(t, 1000.0, doc.VehiclePrice)
}

func TestToggleHidden_DoesNotAliasClone(t *testing.T) {
	original := &entity.BusinessDocument{ID: "d1", HiddenFields: make([]string, 0, 4)}
	original.HiddenFields = append(original.HiddenFields, "notes")

	copied := original.Clone()
	ToggleHidden(copied, "bankName")

	assert.Equal(t, []string{"notes"}, original.HiddenFields)
	assert.Equal(t, []string{"notes", "bankName"}, copied.HiddenFields)
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		name       string
		docNumber  string
		clientName string
		want       string
	}{
		{name: "plain", docNumber: "INV-123456", clientName: "Rahim Uddin", want: "INV-123456_Rahim Uddin.pdf"},
		{name: "path separators", docNumber: "BIL-000001", clientName: `M/s Karim\Sons`, want: "BIL-000001_M-s Karim-Sons.pdf"},
		{name: "reserved characters", docNumber: "CHL-1", clientName: `A:B*C?"D"<E>|F`, want: "CHL-1_A-B-C--D--E--F.pdf"},
		{name: "parent directory", docNumber: "QTN-1", clientName: "..", want: "QTN-1.pdf"},
		{name: "blank client", docNumber: "QTN-654321", clientName: "   ", want: "QTN-654321.pdf"},
		{name: "control characters", docNumber: "INV-1", clientName: "Ra\nhim", want: "INV-1_Rahim.pdf"},
		{name: "nothing to name", want: "document.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &entity.BusinessDocument{DocNumber: tt.docNumber, ClientName: tt.clientName}
			got := ExportFileName(doc)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, `\`)
		})
	}
}
