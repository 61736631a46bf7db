package project

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/auto-explainer/core/internal/models"
	"github.com/auto-explainer/core/internal/modules/processing/extract"
	"github.com/auto-explainer/core/internal/modules/processing/generate"
	"github.com/auto-explainer/core/internal/modules/storage/file"
	"github.com/auto-explainer/core/internal/pkg/apperrors"
	"go.uber.org/zap"
)

// FileSaver persists uploaded source files.
type FileSaver interface {
	Save(ctx context.Context, originalName string, payload []byte) (file.Saved, error)
}

type Service struct {
	store   Store
	fetcher Fetcher
	files   FileSaver
	logger  *zap.Logger
}

func NewService(store Store, fetcher Fetcher, files FileSaver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, fetcher: fetcher, files: files, logger: logger}
}

// ProcessURL fetches rawURL, extracts facts from the body and stores a new
// record with outputs for the requested languages.
func (s *Service) ProcessURL(ctx context.Context, rawURL string, tone string, languages []string) (*models.Project, error) {
	langs, err := parseLanguages(languages)
	if err != nil {
		return nil, err
	}

	text, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, apperrors.Client("Failed to fetch", err)
	}

	facts := extract.Extract(text)
	t := normalizeTone(tone)
	p := &models.Project{
		Title:      firstNonEmpty(facts.Project, rawURL),
		SourceType: models.SourceURL,
		SourceURL:  rawURL,
		Tone:       t,
		Extracted:  facts,
		Outputs:    generate.BuildOutputs(facts, t, langs),
	}
	if _, err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project created from url", zap.String("id", p.ID), zap.String("url", rawURL))
	return p, nil
}

// ProcessUpload saves the uploaded file and stores a new record. Only the
// file name feeds extraction; outputs cover every supported language.
func (s *Service) ProcessUpload(ctx context.Context, filename string, payload []byte, tone string) (*models.Project, error) {
	if _, ok := file.NormalizeExtension(filename); !ok {
		return nil, apperrors.Client("Unsupported file type", nil)
	}

	saved, err := s.files.Save(ctx, filename, payload)
	if err != nil {
		return nil, err
	}

	facts := extract.Extract(filename)
	t := normalizeTone(tone)
	p := &models.Project{
		Title:      firstNonEmpty(facts.Project, filepath.Base(filename)),
		SourceType: models.SourceUpload,
		FilePath:   saved.Path,
		StorageURL: saved.StorageURL,
		Tone:       t,
		Extracted:  facts,
		Outputs:    generate.BuildOutputs(facts, t, models.SupportedLanguages),
	}
	if _, err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project created from upload", zap.String("id", p.ID), zap.String("file", saved.Path))
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int64) ([]models.Project, error) {
	items, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Project{}
	}
	return items, nil
}

// UpdateOutputs replaces the stored outputs verbatim.
func (s *Service) UpdateOutputs(ctx context.Context, id string, outputs models.Outputs) error {
	return s.store.UpdateOutputs(ctx, id, outputs)
}

// Regenerate rebuilds outputs from the stored facts with a new tone. The
// previous outputs are discarded, including languages not requested.
func (s *Service) Regenerate(ctx context.Context, id string, tone string, languages []string) error {
	langs, err := parseLanguages(languages)
	if err != nil {
		return err
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	t := normalizeTone(tone)
	if err := s.store.UpdateAfterRegenerate(ctx, id, t, generate.BuildOutputs(p.Extracted, t, langs)); err != nil {
		return err
	}
	s.logger.Info("project regenerated", zap.String("id", id), zap.String("tone", string(t)))
	return nil
}

// Export renders the record in format. The json format returns the record
// itself in Export.Project.
func (s *Service) Export(ctx context.Context, id string, format string) (*Export, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildExport(p, format)
}

// parseLanguages validates requested language codes. A nil list means every
// supported language; an explicit empty list yields no outputs.
func parseLanguages(raw []string) ([]models.Language, error) {
	if raw == nil {
		return append([]models.Language(nil), models.SupportedLanguages...), nil
	}
	out := make([]models.Language, 0, len(raw))
	for _, code := range raw {
		lang := models.Language(strings.ToLower(strings.TrimSpace(code)))
		if !lang.IsSupported() {
			return nil, apperrors.Client(fmt.Sprintf("Unsupported language: %s", code), nil)
		}
		out = append(out, lang)
	}
	return out, nil
}

func normalizeTone(tone string) models.Tone {
	tone = strings.TrimSpace(tone)
	if tone == "" {
		return models.TonePremium
	}
	return models.Tone(tone)
}

func firstNonEmpty(primary, fallback string) string {
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	return fallback
}
