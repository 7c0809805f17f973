package document

import (
	"slices"
	"strings"

	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// FieldItemImageColumn hides the image column of a product invoice.
const FieldItemImageColumn = "itemImageColumn"

// Exported PDF geometry. The rasterizer renders at ExportScale × the on-screen
// preview and places the image on one A4 portrait page.
const (
	A4WidthMM   = 210
	A4HeightMM  = 297
	ExportScale = 3
)

// IsHidden reports whether field is suppressed from the rendered view.
func IsHidden(doc *entity.BusinessDocument, field string) bool {
	return slices.Contains(doc.HiddenFields, field)
}

// ToggleHidden flips field in or out of hiddenFields. Field values are never touched.
func ToggleHidden(doc *entity.BusinessDocument, field string) {
	if IsHidden(doc, field) {
		doc.HiddenFields = slices.DeleteFunc(slices.Clone(doc.HiddenFields), func(f string) bool {
			return f == field
		})
		return
	}
	doc.HiddenFields = append(slices.Clone(doc.HiddenFields), field)
}

// ExportFileName names the PDF produced for doc as {docNumber}_{clientName}.pdf.
// Path separators and other characters unsafe in file names become '-'; a
// blank part is dropped along with its underscore.
func ExportFileName(doc *entity.BusinessDocument) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{doc.DocNumber, doc.ClientName} {
		if p = sanitizeFileNamePart(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "document.pdf"
	}
	return strings.Join(parts, "_") + ".pdf"
}

func sanitizeFileNamePart(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '-'
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if strings.Trim(s, ".") == "" {
		return ""
	}
	return s
}
