package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/infrastructure/imaging"
)

// ObjectStorage stores uploaded files and exposes their public URLs
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	PublicURL(storageKey string) string
}

// UploadInput is a single incoming multipart file
type UploadInput struct {
	Filename string
	Data     []byte
}

// UploadedFile describes a stored file
type UploadedFile struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	MimeType string `json:"mime_type"`
	Size     int    `json:"size"`
}

// UploadService runs uploaded images through the background-removal
// pipeline and stores the result. Non-image files pass through untouched.
type UploadService struct {
	storage ObjectStorage
	remover imaging.BackgroundRemover
	logger  *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(storage ObjectStorage, remover imaging.BackgroundRemover, logger *zap.Logger) *UploadService {
	return &UploadService{
		storage: storage,
		remover: remover,
		logger:  logger,
	}
}

// Upload processes and stores the given files in order. The first storage
// failure aborts the batch; image processing never fails a file, it falls
// back to the original bytes.
func (s *UploadService) Upload(ctx context.Context, files []UploadInput) ([]UploadedFile, error) {
	uploaded := make([]UploadedFile, 0, len(files))

	for _, file := range files {
		processed := s.remover.Process(ctx, file.Filename, file.Data)

		key := storageKey(processed.Filename)
		if err := s.storage.Upload(ctx, key, processed.Data, processed.ContentType); err != nil {
			return nil, fmt.Errorf("upload %s: %w", processed.Filename, err)
		}

		uploaded = append(uploaded, UploadedFile{
			URL:      s.storage.PublicURL(key),
			Key:      key,
			MimeType: processed.ContentType,
			Size:     len(processed.Data),
		})
	}

	s.logger.Info("Files uploaded", zap.Int("count", len(uploaded)))
	return uploaded, nil
}

// storageKey prefixes the sanitized filename with a random id so uploads
// with the same name never collide.
func storageKey(filename string) string {
	name := sanitizeFilename(path.Base(filename))
	return "uploads/" + uuid.New().String() + "-" + name
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
