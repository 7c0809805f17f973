package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// PreferenceStore implements port.PreferenceStore. Preferences are a
// convenience: every failure degrades to "nothing remembered".
type PreferenceStore struct {
	kv     port.KeyValueStore
	logger *zap.Logger
}

// NewPreferenceStore creates a preference store over kv
func NewPreferenceStore(kv port.KeyValueStore, logger *zap.Logger) *PreferenceStore {
	return &PreferenceStore{kv: kv, logger: logger}
}

// Load returns the persisted preferences, empty when absent or corrupt
func (s *PreferenceStore) Load(ctx context.Context) entity.UserPreferences {
	prefs := entity.UserPreferences{TypeSettings: map[entity.DocumentType]entity.LogoSettings{}}

	data, ok, err := s.kv.Read(ctx, entity.PreferencesKey)
	if err != nil {
		s.logger.Warn("Failed to read preferences", zap.Error(err))
		return prefs
	}
	if !ok || len(data) == 0 {
		return prefs
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		s.logger.Warn("Corrupt preferences, using defaults", zap.Error(err))
		return entity.UserPreferences{TypeSettings: map[entity.DocumentType]entity.LogoSettings{}}
	}
	if prefs.TypeSettings == nil {
		prefs.TypeSettings = map[entity.DocumentType]entity.LogoSettings{}
	}
	return prefs
}

// Get returns the remembered branding for t
func (s *PreferenceStore) Get(ctx context.Context, t entity.DocumentType) (entity.LogoSettings, bool) {
	settings, ok := s.Load(ctx).TypeSettings[t]
	return settings, ok
}

// Set remembers settings for t, last write wins
func (s *PreferenceStore) Set(ctx context.Context, t entity.DocumentType, settings entity.LogoSettings) {
	prefs := s.Load(ctx)
	prefs.TypeSettings[t] = settings

	data, err := json.Marshal(prefs)
	if err != nil {
		s.logger.Error("Failed to encode preferences", zap.String("type", string(t)), zap.Error(err))
		return
	}
	if err := s.kv.Write(ctx, entity.PreferencesKey, data); err != nil {
		s.logger.Error("Failed to save preferences", zap.String("type", string(t)), zap.Error(err))
		return
	}
	s.logger.Debug("Preferences saved", zap.String("type", string(t)))
}

var _ port.PreferenceStore = (*PreferenceStore)(nil)
