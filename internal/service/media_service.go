package service

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/google/uuid"
)

// ErrUnsupportedType marks uploads that are not png or jpeg. Callers treat
// such a file as if none was supplied at all.
var ErrUnsupportedType = errors.New("unsupported file type")

const defaultMaxUploadBytes = 10 * 1024 * 1024

// MediaService stores and removes uploaded image files.
type MediaService struct {
	uploadDir string
	maxBytes  int64
}

// NewMediaService returns a MediaService writing under uploadDir.
func NewMediaService(uploadDir string) *MediaService {
	return &MediaService{uploadDir: uploadDir, maxBytes: defaultMaxUploadBytes}
}

// Store writes an uploaded image and returns its public path. The content is
// sniffed rather than trusting the client's declared type; anything that is
// not png or jpeg yields ErrUnsupportedType.
func (s *MediaService) Store(filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file content")
	}
	if int64(len(content)) > s.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	if !isAllowedImageMIME(http.DetectContentType(content)) {
		return "", ErrUnsupportedType
	}

	name := uuid.New().String() + "-" + sanitizeFilename(filename)
	abs := filepath.Join(s.uploadDir, name)
	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(abs, content, 0o600); err != nil {
		return "", models.NewInternalError(err)
	}

	return filepath.ToSlash(filepath.Join(s.uploadDir, name)), nil
}

// Clear removes a previously stored file, best-effort. Paths outside the
// upload directory are ignored.
func (s *MediaService) Clear(path string) {
	clean := filepath.Clean(filepath.FromSlash(path))
	dir := filepath.Clean(s.uploadDir)
	if clean == dir || !strings.HasPrefix(clean, dir+string(filepath.Separator)) {
		return
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		middleware.Logger.Warn("failed to remove stored file", "path", clean, "error", err)
	}
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/png", "image/jpeg", "image/jpg":
		return true
	default:
		return false
	}
}

// sanitizeFilename strips any path components and characters that do not
// belong in a stored file name.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filepath.FromSlash(filename))
	if base == "." || base == string(filepath.Separator) {
		return "upload"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
