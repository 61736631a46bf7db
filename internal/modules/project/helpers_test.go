package project

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/auto-explainer/core/internal/models"
	"github.com/auto-explainer/core/internal/modules/processing/extract"
	"github.com/auto-explainer/core/internal/modules/processing/generate"
	"github.com/auto-explainer/core/internal/modules/storage/file"
	"github.com/auto-explainer/core/internal/pkg/apperrors"
)

func sampleProject() *models.Project {
	facts := extract.Extract("Project: Marina Heights\nLocation: Downtown\npool and gym, payment plan")
	return &models.Project{
		Title:      facts.Project,
		SourceType: models.SourceURL,
		SourceURL:  "https://example.com/marina",
		Tone:       models.TonePremium,
		Extracted:  facts,
		Outputs:    generate.BuildOutputs(facts, models.TonePremium, models.SupportedLanguages),
	}
}

type memStore struct {
	mu      sync.Mutex
	seq     int
	items   map[string]models.Project
	order   []string
	failErr error
}

func newMemStore() *memStore {
	return &memStore{items: map[string]models.Project{}}
}

func (m *memStore) Create(_ context.Context, p *models.Project) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return "", m.failErr
	}
	m.seq++
	p.ID = fmt.Sprintf("%024x", m.seq)
	p.CreatedAt = time.Now().UTC()
	m.items[p.ID] = *p
	m.order = append(m.order, p.ID)
	return p.ID, nil
}

func (m *memStore) Get(_ context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) List(_ context.Context, limit int64) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Project
	for _, id := range m.order {
		if limit > 0 && int64(len(out)) == limit {
			break
		}
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *memStore) UpdateOutputs(_ context.Context, id string, outputs models.Outputs) error {
	return m.update(id, func(p *models.Project) { p.Outputs = outputs })
}

func (m *memStore) UpdateAfterRegenerate(_ context.Context, id string, tone models.Tone, outputs models.Outputs) error {
	return m.update(id, func(p *models.Project) {
		p.Tone = tone
		p.Outputs = outputs
	})
}

func (m *memStore) update(id string, fn func(*models.Project)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	fn(&p)
	now := time.Now().UTC()
	p.UpdatedAt = &now
	m.items[id] = p
	return nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type stubFetcher struct {
	text string
	err  error
}

func (s stubFetcher) Fetch(context.Context, string) (string, error) {
	return s.text, s.err
}

type stubSaver struct {
	calls int
	err   error
}

func (s *stubSaver) Save(_ context.Context, name string, _ []byte) (file.Saved, error) {
	s.calls++
	if s.err != nil {
		return file.Saved{}, s.err
	}
	return file.Saved{Path: "uploads/0123456789abcdef0123456789abcdef.pdf"}, nil
}

var errStoreDown = errors.New("store down")
