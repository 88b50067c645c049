package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appstore "github.com/marketplace/backend/internal/application/store"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// StoreHandler exposes store listings, addresses and logos
type StoreHandler struct {
	BaseHandler
	service *appstore.Service
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(service *appstore.Service, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterPublicRoutes mounts the public store routes
func (h *StoreHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/stores/all", h.ListAll)
	rg.GET("/store/store-address/:storeId", h.GetAddressByStore)
}

// RegisterAdminRoutes mounts the seller store routes
func (h *StoreHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/store-address", h.GetOwnAddress)
	rg.POST("/store-address", h.UpsertAddress)
	rg.GET("/store-logo", h.GetLogo)
	rg.POST("/store-logo", h.SetLogo)
}

// ListAll handles GET /stores/all
func (h *StoreHandler) ListAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := shared.Filter{
		Limit:  limit,
		Offset: offset,
		Search: c.Query("q"),
	}
	if raw := c.QueryArray("id"); len(raw) > 0 {
		ids := make([]uuid.UUID, 0, len(raw))
		for _, v := range raw {
			if id, err := uuid.Parse(v); err == nil {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			filter.Filters = map[string]interface{}{"ids": ids}
		}
	}
	filter = appstore.NormalizeStoreFilter(filter)

	stores, count, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resources := make([]dto.StoreResource, len(stores))
	for i := range stores {
		resources[i] = dto.NewStoreResource(&stores[i])
	}

	h.Ok(c, map[string]interface{}{
		"stores": resources,
		"count":  count,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// GetAddressByStore handles GET /store/store-address/:storeId. Returns a
// null address when the store has not set one.
func (h *StoreHandler) GetAddressByStore(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		h.BadRequest(c, "Invalid store id", err)
		return
	}

	h.respondAddress(c, storeID)
}

// GetOwnAddress handles GET /admin/store-address for the authenticated seller
func (h *StoreHandler) GetOwnAddress(c *gin.Context) {
	storeID, err := middleware.CurrentStoreID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.respondAddress(c, storeID)
}

func (h *StoreHandler) respondAddress(c *gin.Context, storeID uuid.UUID) {
	address, err := h.service.GetAddress(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var resource interface{}
	if address != nil {
		resource = dto.NewStoreAddressResource(address)
	}
	h.Ok(c, map[string]interface{}{"store_address": resource})
}

// UpsertAddress handles POST /admin/store-address. Creating a new
// address returns 201, updating the existing one returns 200.
func (h *StoreHandler) UpsertAddress(c *gin.Context) {
	storeID, err := middleware.CurrentStoreID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var input store.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid address payload", err)
		return
	}

	address, created, err := h.service.UpsertAddress(c.Request.Context(), storeID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.Ok(map[string]interface{}{
		"store_address": dto.NewStoreAddressResource(address),
	}))
}

// GetLogo handles GET /admin/store-logo
func (h *StoreHandler) GetLogo(c *gin.Context) {
	storeID, err := middleware.CurrentStoreID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logoURL, err := h.service.GetLogo(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{"logo_url": logoURL})
}

// SetLogo handles POST /admin/store-logo
func (h *StoreHandler) SetLogo(c *gin.Context) {
	storeID, err := middleware.CurrentStoreID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req dto.SetStoreLogoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid logo payload", err)
		return
	}

	updated, err := h.service.SetLogo(c.Request.Context(), storeID, req.LogoURL)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{
		"store":    dto.NewStoreResource(updated),
		"logo_url": updated.LogoURL(),
	})
}
