// Package screenshots stores captured page screenshots on disk.
package screenshots

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/ports"
)

// MaxImageBytes caps a decoded screenshot
const MaxImageBytes = 10 << 20

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// FileStore writes screenshots into one directory and serves them under a base URL
type FileStore struct {
	baseURL string
	dir     string
}

// Verify interface compliance at compile time
var _ ports.ScreenshotStore = (*FileStore)(nil)

// NewFileStore creates a new FileStore
func NewFileStore(dir, baseURL string) *FileStore {
	return &FileStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		dir:     dir,
	}
}

// Dir returns the directory screenshots are written to
func (s *FileStore) Dir() string {
	return s.dir
}

// Save implements ports.ScreenshotStore
func (s *FileStore) Save(ctx context.Context, dataURL string) (string, error) {
	mediaType, payload, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}
	ext, ok := extensions[mediaType]
	if !ok {
		return "", domain.NewValidationError("screenshot_data", fmt.Sprintf("unsupported image type %q", mediaType))
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes {
		return "", domain.NewValidationError("screenshot_data", "image is too large")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.NewValidationError("screenshot_data", "invalid base64 payload")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshots directory: %w", err)
	}
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}

	logging.Logger.Debug("Screenshot stored", "file", name, "bytes", len(data))
	return s.baseURL + "/" + name, nil
}

// Remove implements ports.ScreenshotStore. Removing a missing file is not an error.
func (s *FileStore) Remove(ctx context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || name == "" || name != filepath.Base(name) {
		return domain.NewValidationError("screenshot_url", "is not a stored screenshot")
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove screenshot: %w", err)
	}
	logging.Logger.Debug("Screenshot removed", "file", name)
	return nil
}

// RemoveAll implements ports.ScreenshotStore
func (s *FileStore) RemoveAll(ctx context.Context) error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", s.dir, err)
	}
	logging.Logger.Info("Screenshots removed", "dir", s.dir)
	return nil
}

// parseDataURL splits "data:<type>;base64,<payload>"
func parseDataURL(dataURL string) (string, string, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURL), "data:")
	if !ok {
		return "", "", domain.NewValidationError("screenshot_data", "must be a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", domain.NewValidationError("screenshot_data", "must be a data URL")
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", "", domain.NewValidationError("screenshot_data", "must be base64 encoded")
	}
	return strings.ToLower(mediaType), payload, nil
}
