package handler

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"go.uber.org/zap"
)

// UploadHandler exposes the media upload endpoint
type UploadHandler struct {
	BaseHandler
	service *appcatalog.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service *appcatalog.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterAdminRoutes mounts the upload route
func (h *UploadHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.Upload)
}

// Upload handles POST /admin/uploads. Accepts multipart form data under
// the "files" field; image files get their background removed before
// they are stored.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Invalid multipart form", err)
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		h.BadRequest(c, "No files provided", nil)
		return
	}

	inputs := make([]appcatalog.UploadInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		data, err := readMultipartFile(fh)
		if err != nil {
			h.BadRequest(c, "Failed to read uploaded file", err)
			return
		}
		inputs = append(inputs, appcatalog.UploadInput{
			Filename: fh.Filename,
			Data:     data,
		})
	}

	uploaded, err := h.service.Upload(c.Request.Context(), inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{"files": uploaded})
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
