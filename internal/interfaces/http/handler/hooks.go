package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// HooksHandler receives commerce platform webhooks and republishes them
// as domain events.
type HooksHandler struct {
	BaseHandler
	publisher shared.EventPublisher
}

// NewHooksHandler creates a new hooks handler
func NewHooksHandler(publisher shared.EventPublisher, logger *zap.Logger) *HooksHandler {
	return &HooksHandler{
		BaseHandler: NewBaseHandler(logger),
		publisher:   publisher,
	}
}

// RegisterPublicRoutes mounts the webhook routes
func (h *HooksHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/hooks/order-placed", h.OrderPlaced)
}

// OrderPlaced handles POST /hooks/order-placed. The commission pipeline
// runs asynchronously off the published event, so redelivered hooks are
// safe to accept.
func (h *HooksHandler) OrderPlaced(c *gin.Context) {
	var req dto.OrderPlacedHookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid hook payload", err)
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.BadRequest(c, "Invalid order id", err)
		return
	}

	event := ordering.NewOrderPlacedEvent(orderID)
	if err := h.publisher.Publish(c.Request.Context(), event); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Ok(c, map[string]interface{}{"order_id": orderID.String()})
}
