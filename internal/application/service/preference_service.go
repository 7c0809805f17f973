package service

import (
	"context"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// PreferenceService exposes the branding remembered per document type
type PreferenceService interface {
	Get(ctx context.Context, t entity.DocumentType) (entity.LogoSettings, error)
	Set(ctx context.Context, t entity.DocumentType, settings entity.LogoSettings) error
}

type preferenceServiceImpl struct {
	prefs  port.PreferenceStore
	logger Logger
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(prefs port.PreferenceStore, logger Logger) PreferenceService {
	return &preferenceServiceImpl{prefs: prefs, logger: logger}
}

// Get returns the settings for t, zero when nothing is remembered
func (s *preferenceServiceImpl) Get(ctx context.Context, t entity.DocumentType) (entity.LogoSettings, error) {
	if !t.Valid() {
		return entity.LogoSettings{}, entity.ErrInvalidDocumentType
	}
	settings, _ := s.prefs.Get(ctx, t)
	return settings, nil
}

// Set remembers settings for t after range-checking the logo geometry
func (s *preferenceServiceImpl) Set(ctx context.Context, t entity.DocumentType, settings entity.LogoSettings) error {
	if !t.Valid() {
		return entity.ErrInvalidDocumentType
	}
	if p := settings.LogoSize; p != nil && (*p < entity.MinLogoSize || *p > entity.MaxLogoSize) {
		return entity.NewValidationError("logoSize", "logo size out of range")
	}
	if p := settings.LogoPosition; p != nil && (*p < entity.MinLogoPosition || *p > entity.MaxLogoPosition) {
		return entity.NewValidationError("logoPosition", "logo position out of range")
	}

	s.prefs.Set(ctx, t, settings)
	s.logger.Info("Branding remembered", "type", t)
	return nil
}
