package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// ProductHandler exposes the marketplace product listings and the
// seller-facing product management routes.
type ProductHandler struct {
	BaseHandler
	service *appcatalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *appcatalog.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterPublicRoutes mounts the storefront product routes
func (h *ProductHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/store/allproducts", h.ListAll)
	rg.GET("/store/:storeId/products", h.ListByStore)
	rg.GET("/store/product-store/:productId", h.GetProductStore)
}

// RegisterAdminRoutes mounts the seller product management routes
func (h *ProductHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.Create)
	rg.GET("/products/:id/brand", h.GetBrand)
	rg.POST("/products/:id/brand", h.SetBrand)
	rg.DELETE("/products/:id/brand/:brandId", h.RemoveBrand)
}

func parseProductFilter(c *gin.Context) catalog.ProductFilter {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := catalog.ProductFilter{
		Search: c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}

	if raw := c.QueryArray("id"); len(raw) > 0 {
		for _, v := range raw {
			if id, err := uuid.Parse(v); err == nil {
				filter.IDs = append(filter.IDs, id)
			}
		}
	}
	if raw := c.Query("collection_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CollectionIDs = []uuid.UUID{id}
		}
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CategoryIDs = []uuid.UUID{id}
		}
	}
	if raw := c.Query("brand_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.BrandIDs = []uuid.UUID{id}
		}
	}
	if raw := c.Query("order"); raw != "" {
		if field, ok := strings.CutPrefix(raw, "-"); ok {
			filter.OrderBy = field
			filter.OrderDir = "desc"
		} else {
			filter.OrderBy = raw
			filter.OrderDir = "asc"
		}
	}

	return filter
}

// ListAll handles GET /store/allproducts. Every product is returned with
// its owning store joined in so the storefront can render seller info.
func (h *ProductHandler) ListAll(c *gin.Context) {
	filter := appcatalog.NormalizeProductFilter(parseProductFilter(c))

	listings, count, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{
		"products": dto.NewProductListingResources(listings),
		"count":    count,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// ListByStore handles GET /store/:storeId/products
func (h *ProductHandler) ListByStore(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		h.BadRequest(c, "Invalid store id", err)
		return
	}

	filter := parseProductFilter(c)
	filter.StoreID = &storeID
	filter = appcatalog.NormalizeProductFilter(filter)

	listings, count, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{
		"products": dto.NewProductListingResources(listings),
		"count":    count,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// GetProductStore handles GET /store/product-store/:productId. Returns
// the store owning the product, or null when the product is unlinked.
func (h *ProductHandler) GetProductStore(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product id", err)
		return
	}

	owner, err := h.service.GetOwningStore(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var resource interface{}
	if owner != nil {
		resource = dto.NewStoreResource(owner)
	}
	h.Ok(c, map[string]interface{}{"store": resource})
}

// Create handles POST /admin/products. The product is linked to the
// authenticated seller's store.
func (h *ProductHandler) Create(c *gin.Context) {
	storeID, err := middleware.CurrentStoreID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid product payload", err)
		return
	}

	input := appcatalog.CreateProductInput{
		Title:       req.Title,
		Handle:      req.Handle,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Images:      req.Images,
	}
	if req.CollectionID != "" {
		id, err := uuid.Parse(req.CollectionID)
		if err != nil {
			h.BadRequest(c, "Invalid collection id", err)
			return
		}
		input.CollectionID = &id
	}
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category id", err)
			return
		}
		input.CategoryID = &id
	}

	product, err := h.service.Create(c.Request.Context(), storeID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Ok(map[string]interface{}{
		"product": dto.NewProductResource(product),
	}))
}

// GetBrand handles GET /admin/products/:id/brand. Returns null when the
// product carries no brand tag.
func (h *ProductHandler) GetBrand(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product id", err)
		return
	}

	brand, err := h.service.GetProductBrand(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var resource interface{}
	if brand != nil {
		resource = dto.NewBrandResource(brand)
	}
	h.Ok(c, map[string]interface{}{"brand": resource})
}

// SetBrand handles POST /admin/products/:id/brand. A product carries at
// most one brand; assigning a new one replaces the previous tag.
func (h *ProductHandler) SetBrand(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product id", err)
		return
	}

	var req dto.SetProductBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid brand payload", err)
		return
	}
	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		h.BadRequest(c, "Invalid brand id", err)
		return
	}

	if err := h.service.SetProductBrand(c.Request.Context(), productID, brandID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{
		"product_id": productID.String(),
		"brand_id":   brandID.String(),
	})
}

// RemoveBrand handles DELETE /admin/products/:id/brand/:brandId
func (h *ProductHandler) RemoveBrand(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product id", err)
		return
	}
	brandID, err := uuid.Parse(c.Param("brandId"))
	if err != nil {
		h.BadRequest(c, "Invalid brand id", err)
		return
	}

	if err := h.service.RemoveProductBrand(c.Request.Context(), productID, brandID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{
		"product_id": productID.String(),
		"brand_id":   brandID.String(),
		"deleted":    true,
	})
}
