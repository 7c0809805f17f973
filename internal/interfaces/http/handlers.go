package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/bizdoc/internal/application/service"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers contains all HTTP request handlers
type Handlers struct {
	services       Services
	maxUploadBytes int64
	logger         Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, maxUploadBytes int64, logger Logger) *Handlers {
	return &Handlers{
		services:       services,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListDocumentsRequest represents query parameters for listing documents
type ListDocumentsRequest struct {
	Query string `form:"q"`
	Type  string `form:"type"`
}

// ToggleFieldResponse reports the visibility of a field after toggling
type ToggleFieldResponse struct {
	Field    string                   `json:"field"`
	Hidden   bool                     `json:"hidden"`
	Document *entity.BusinessDocument `json:"document"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// ListDocuments handles GET /api/v1/documents
func (h *Handlers) ListDocuments(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.services.Documents.List(c.Request.Context(), filter),
	})
}

// DocumentStats handles GET /api/v1/documents/stats
func (h *Handlers) DocumentStats(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.services.Documents.Stats(c.Request.Context()),
	})
}

// ExportRegister handles GET /api/v1/documents/export.xlsx
func (h *Handlers) ExportRegister(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.services.Export.Register(c.Request.Context(), &buf, filter); err != nil {
		h.writeError(c, err)
		return
	}

	fileName := fmt.Sprintf("register_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// NewDraft handles POST /api/v1/documents/drafts/:type
func (h *Handlers) NewDraft(c *gin.Context) {
	docType, err := entity.ParseDocumentType(c.Param("type"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	draft, err := h.services.Documents.NewDraft(c.Request.Context(), docType)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: draft})
}

// SaveDocument handles POST /api/v1/documents
func (h *Handlers) SaveDocument(c *gin.Context) {
	var doc entity.BusinessDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.logger.Error("Invalid document body", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid document body",
		})
		return
	}

	saved, err := h.services.Documents.Save(c.Request.Context(), &doc)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: saved})
}

// GetDocument handles GET /api/v1/documents/:id
func (h *Handlers) GetDocument(c *gin.Context) {
	detail, err := h.services.Documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: detail})
}

// DeleteDocument handles DELETE /api/v1/documents/:id
func (h *Handlers) DeleteDocument(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Documents.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"id": id}})
}

// ToggleField handles POST /api/v1/documents/:id/hidden/:field
func (h *Handlers) ToggleField(c *gin.Context) {
	field := c.Param("field")
	doc, err := h.services.Documents.ToggleField(c.Request.Context(), c.Param("id"), field)
	if err != nil {
		h.writeError(c, err)
		return
	}

	hidden := false
	for _, f := range doc.HiddenFields {
		if f == field {
			hidden = true
			break
		}
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    ToggleFieldResponse{Field: field, Hidden: hidden, Document: doc},
	})
}

// ListAssets handles GET /api/v1/assets
func (h *Handlers) ListAssets(c *gin.Context) {
	assets, err := h.services.Assets.List(c.Request.Context(), entity.AssetType(c.Query("type")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: assets})
}

// UploadAsset handles POST /api/v1/assets (multipart: file, type, name)
func (h *Handlers) UploadAsset(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "file is required",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open upload", "error", err, "filename", header.Filename)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "failed to read upload",
		})
		return
	}
	defer file.Close()

	var reader io.Reader = file
	if h.maxUploadBytes > 0 {
		reader = io.LimitReader(file, h.maxUploadBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		h.logger.Error("Failed to read upload", "error", err, "filename", header.Filename)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "failed to read upload",
		})
		return
	}
	if h.maxUploadBytes > 0 && int64(len(data)) > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   fmt.Sprintf("file exceeds %d bytes", h.maxUploadBytes),
		})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	asset, err := h.services.Assets.Upload(c.Request.Context(), service.UploadRequest{
		Name: name,
		Type: entity.AssetType(c.PostForm("type")),
		Data: data,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: asset})
}

// GetAsset handles GET /api/v1/assets/:id
func (h *Handlers) GetAsset(c *gin.Context) {
	asset, err := h.services.Assets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: asset})
}

// DeleteAsset handles DELETE /api/v1/assets/:id
func (h *Handlers) DeleteAsset(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Assets.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"id": id}})
}

// GetPreferences handles GET /api/v1/preferences/:type
func (h *Handlers) GetPreferences(c *gin.Context) {
	settings, err := h.services.Preferences.Get(c.Request.Context(), entity.DocumentType(c.Param("type")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: settings})
}

// SetPreferences handles PUT /api/v1/preferences/:type
func (h *Handlers) SetPreferences(c *gin.Context) {
	var settings entity.LogoSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid preferences body",
		})
		return
	}

	docType := entity.DocumentType(c.Param("type"))
	if err := h.services.Preferences.Set(c.Request.Context(), docType, settings); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: settings})
}

func (h *Handlers) bindFilter(c *gin.Context) (service.ListFilter, bool) {
	var req ListDocumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return service.ListFilter{}, false
	}

	filter := service.ListFilter{Query: req.Query}
	if req.Type != "" {
		docType, err := entity.ParseDocumentType(req.Type)
		if err != nil {
			h.writeError(c, err)
			return service.ListFilter{}, false
		}
		filter.Type = docType
	}
	return filter, true
}

// writeError maps domain errors onto HTTP status codes
func (h *Handlers) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path, "status", status)
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrInvalidDocumentType),
		errors.Is(err, entity.ErrInvalidAssetType),
		errors.Is(err, entity.ErrEmptyAsset):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnsupportedAsset):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, entity.ErrDocumentNotFound),
		errors.Is(err, entity.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrStorageQuotaExceeded):
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}
