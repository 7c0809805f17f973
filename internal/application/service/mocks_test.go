package service

import (
	"context"
	"io"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

// mockDocumentStore keeps documents in a slice; func fields override behavior
type mockDocumentStore struct {
	docs        []entity.BusinessDocument
	upsertFunc  func(ctx context.Context, doc entity.BusinessDocument) ([]entity.BusinessDocument, error)
	upsertCalls int
	removeCalls int
}

func (m *mockDocumentStore) Load(ctx context.Context) []entity.BusinessDocument {
	return append([]entity.BusinessDocument{}, m.docs...)
}

func (m *mockDocumentStore) Upsert(ctx context.Context, doc entity.BusinessDocument) ([]entity.BusinessDocument, error) {
	m.upsertCalls++
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, doc)
	}
	for i := range m.docs {
		if m.docs[i].ID == doc.ID {
			m.docs[i] = doc
			return m.Load(ctx), nil
		}
	}
	m.docs = append(m.docs, doc)
	return m.Load(ctx), nil
}

func (m *mockDocumentStore) Remove(ctx context.Context, id string) []entity.BusinessDocument {
	m.removeCalls++
	kept := m.docs[:0]
	for _, d := range m.docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	m.docs = kept
	return m.Load(ctx)
}

type mockPreferenceStore struct {
	settings map[entity.DocumentType]entity.LogoSettings
	setCalls int
}

func newMockPreferenceStore() *mockPreferenceStore {
	return &mockPreferenceStore{settings: map[entity.DocumentType]entity.LogoSettings{}}
}

func (m *mockPreferenceStore) Get(ctx context.Context, t entity.DocumentType) (entity.LogoSettings, bool) {
	s, ok := m.settings[t]
	return s, ok
}

func (m *mockPreferenceStore) Set(ctx context.Context, t entity.DocumentType, settings entity.LogoSettings) {
	m.setCalls++
	m.settings[t] = settings
}

type mockAssetStore struct {
	assets  []entity.Asset
	addFunc func(ctx context.Context, asset entity.Asset) ([]entity.Asset, error)
}

func (m *mockAssetStore) Load(ctx context.Context) []entity.Asset {
	return append([]entity.Asset{}, m.assets...)
}

func (m *mockAssetStore) Add(ctx context.Context, asset entity.Asset) ([]entity.Asset, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, asset)
	}
	m.assets = append(m.assets, asset)
	return m.Load(ctx), nil
}

func (m *mockAssetStore) Delete(ctx context.Context, id string) []entity.Asset {
	kept := []entity.Asset{}
	for _, a := range m.assets {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	m.assets = kept
	return m.Load(ctx)
}

func (m *mockAssetStore) Get(ctx context.Context, id string) (entity.Asset, bool) {
	for _, a := range m.assets {
		if a.ID == id {
			return a, true
		}
	}
	return entity.Asset{}, false
}

func (m *mockAssetStore) ListByType(ctx context.Context, t entity.AssetType) []entity.Asset {
	out := []entity.Asset{}
	for _, a := range m.assets {
		if t == "" || a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

type mockExporter struct {
	rows      []port.RegisterRow
	writeFunc func(ctx context.Context, w io.Writer, rows []port.RegisterRow) error
}

func (m *mockExporter) WriteRegister(ctx context.Context, w io.Writer, rows []port.RegisterRow) error {
	m.rows = rows
	if m.writeFunc != nil {
		return m.writeFunc(ctx, w, rows)
	}
	_, err := io.WriteString(w, "xlsx")
	return err
}

var (
	_ port.DocumentStore    = (*mockDocumentStore)(nil)
	_ port.PreferenceStore  = (*mockPreferenceStore)(nil)
	_ port.AssetStore       = (*mockAssetStore)(nil)
	_ port.RegisterExporter = (*mockExporter)(nil)
)
