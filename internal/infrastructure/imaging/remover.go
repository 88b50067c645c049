package imaging

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// processableExtensions lists the upload types sent through background removal.
// Everything else is stored untouched.
var processableExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ProcessedImage is the result of running an upload through the pipeline
type ProcessedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BackgroundRemover turns a product photo into a white-background JPEG.
// Implementations fall back to the original bytes when processing fails;
// an upload must never be lost to a cosmetic step.
type BackgroundRemover interface {
	Process(ctx context.Context, filename string, data []byte) ProcessedImage
}

// HTTPRemover implements BackgroundRemover against an HTTP removal service
// that accepts a multipart image and responds with a transparent PNG.
type HTTPRemover struct {
	client *resty.Client
	logger *zap.Logger
}

// NewHTTPRemover creates a remover calling the configured service
func NewHTTPRemover(cfg config.ImagingConfig, logger *zap.Logger) *HTTPRemover {
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(cfg.Timeout)

	return &HTTPRemover{
		client: client,
		logger: logger,
	}
}

// Process removes the background from a product photo and flattens the
// result onto white as a JPEG. The stored filename swaps the extension to
// ".jpg". Unsupported types and any processing failure return the original
// upload unchanged.
func (r *HTTPRemover) Process(ctx context.Context, filename string, data []byte) ProcessedImage {
	original := ProcessedImage{
		Filename:    filename,
		ContentType: contentTypeFor(filename),
		Data:        data,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !processableExtensions[ext] {
		return original
	}

	cutout, err := r.removeBackground(ctx, filename, data)
	if err != nil {
		r.logger.Warn("background removal failed, storing original upload",
			zap.String("filename", filename),
			zap.Error(err))
		return original
	}

	flattened, err := FlattenToJPEG(cutout)
	if err != nil {
		r.logger.Warn("image flattening failed, storing original upload",
			zap.String("filename", filename),
			zap.Error(err))
		return original
	}

	return ProcessedImage{
		Filename:    strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg",
		ContentType: "image/jpeg",
		Data:        flattened,
	}
}

// removeBackground calls the removal service and returns the transparent PNG
func (r *HTTPRemover) removeBackground(ctx context.Context, filename string, data []byte) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", writer.FormDataContentType()).
		SetBody(body.Bytes()).
		Post("/remove")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("removal service returned status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}

// NopRemover is used when no removal service is configured.
// Uploads pass through untouched.
type NopRemover struct{}

// Process returns the original upload
func (NopRemover) Process(ctx context.Context, filename string, data []byte) ProcessedImage {
	return ProcessedImage{
		Filename:    filename,
		ContentType: contentTypeFor(filename),
		Data:        data,
	}
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}

var (
	_ BackgroundRemover = (*HTTPRemover)(nil)
	_ BackgroundRemover = NopRemover{}
)
