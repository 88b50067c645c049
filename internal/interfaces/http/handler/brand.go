package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// BrandHandler exposes brand management and the public brand listing
type BrandHandler struct {
	BaseHandler
	service *appcatalog.BrandService
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(service *appcatalog.BrandService, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterAdminRoutes mounts the brand management routes
func (h *BrandHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/brands", h.List)
	rg.GET("/brands/:id", h.Get)
	rg.POST("/brands", h.Create)
	rg.POST("/brands/:id", h.Update)
	rg.DELETE("/brands/:id", h.Delete)
}

// RegisterPublicRoutes mounts the public brand listing
func (h *BrandHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/store/brands", h.List)
}

// List handles brand listing for both the admin and the storefront.
// Supports limit, offset and an exact handle filter.
func (h *BrandHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := shared.Filter{
		Limit:  limit,
		Offset: offset,
	}
	if handle := c.Query("handle"); handle != "" {
		filter.Filters = map[string]interface{}{"handle": handle}
	}
	filter = appcatalog.NormalizeBrandFilter(filter)

	brands, count, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{
		"brands": dto.NewBrandResources(brands),
		"count":  count,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// Get handles GET /admin/brands/:id
func (h *BrandHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand id", err)
		return
	}

	brand, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{"brand": dto.NewBrandResource(brand)})
}

// Create handles POST /admin/brands
func (h *BrandHandler) Create(c *gin.Context) {
	var req dto.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid brand payload", err)
		return
	}

	brand, err := h.service.Create(c.Request.Context(), appcatalog.CreateBrandInput{
		Name:        req.Name,
		Handle:      req.Handle,
		LogoURL:     req.LogoURL,
		Description: req.Description,
	})
	if err != nil {
		h.handleBrandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Ok(map[string]interface{}{
		"brand": dto.NewBrandResource(brand),
	}))
}

// Update handles POST /admin/brands/:id
func (h *BrandHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand id", err)
		return
	}

	var req dto.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid brand payload", err)
		return
	}

	brand, err := h.service.Update(c.Request.Context(), id, catalog.UpdateBrandInput{
		Name:        req.Name,
		Handle:      req.Handle,
		LogoURL:     req.LogoURL,
		Description: req.Description,
	})
	if err != nil {
		h.handleBrandError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{"brand": dto.NewBrandResource(brand)})
}

// Delete handles POST /admin/brands/:id/delete
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid brand id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{"id": id.String(), "deleted": true})
}

func (h *BrandHandler) handleBrandError(c *gin.Context, err error) {
	if errors.Is(err, shared.ErrDuplicateHandle) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("A brand with this handle already exists", shared.ErrDuplicateHandle.Code))
		return
	}
	h.HandleError(c, err)
}
