package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AllowedExtensions are the upload types accepted as source material.
var AllowedExtensions = []string{".pdf", ".png", ".jpg", ".jpeg"}

// Saved describes where an upload was written.
type Saved struct {
	Path       string
	StorageURL string
}

// Mirror copies saved payloads to remote storage.
type Mirror interface {
	Upload(ctx context.Context, objectKey string, payload []byte, contentType string) (string, error)
}

// Store writes uploaded source files under a local directory and optionally
// mirrors them to remote storage.
type Store struct {
	dir    string
	mirror Mirror
	prefix string
	logger *zap.Logger
}

// NewStore creates dir if it does not exist. mirror may be nil.
func NewStore(dir string, mirror Mirror, prefix string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, mirror: mirror, prefix: strings.Trim(prefix, "/"), logger: logger}, nil
}

// Dir returns the local upload directory.
func (s *Store) Dir() string { return s.dir }

// NormalizeExtension returns the lower-cased extension of name and whether it
// is one of AllowedExtensions.
func NormalizeExtension(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return ext, true
		}
	}
	return ext, false
}

// Save writes payload to <dir>/<random hex id><ext>. A mirror failure is
// logged and does not fail the save.
func (s *Store) Save(ctx context.Context, originalName string, payload []byte) (Saved, error) {
	ext, _ := NormalizeExtension(originalName)
	filename := buildFileName(ext)
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return Saved{}, fmt.Errorf("write upload: %w", err)
	}
	saved := Saved{Path: path}

	if s.mirror != nil {
		key := filename
		if s.prefix != "" {
			key = s.prefix + "/" + filename
		}
		url, err := s.mirror.Upload(ctx, key, payload, detectContentType(originalName, payload))
		if err != nil {
			s.logger.Warn("mirror upload failed", zap.String("key", key), zap.Error(err))
		} else {
			saved.StorageURL = url
		}
	}
	return saved, nil
}

// buildFileName generates a collision-resistant name keeping the extension.
func buildFileName(ext string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}
