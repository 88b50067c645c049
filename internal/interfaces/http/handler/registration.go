package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/registration"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RegistrationHandler exposes the seller onboarding endpoint
type RegistrationHandler struct {
	BaseHandler
	service *registration.Service
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(service *registration.Service, logger *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterPublicRoutes mounts the registration routes
func (h *RegistrationHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/stores/regular", h.Register)
}

// Register handles POST /stores/regular. It creates the auth identity,
// user and store atomically; a failure in any step rolls back the
// previous ones.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req dto.RegisterStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid registration payload", err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), registration.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		StoreName:        req.StoreName,
		RegistrationCode: req.RegistrationCode,
		Address:          req.Address,
	})
	if err != nil {
		h.rejectRegistration(c, err)
		return
	}

	fields := map[string]interface{}{
		"user":  dto.NewUserResource(result.User),
		"store": dto.NewStoreResource(result.Store),
	}
	if result.Token != "" {
		fields["token"] = result.Token
	}
	h.Ok(c, fields)
}

// rejectRegistration keeps this endpoint's two-outcome error contract:
// a bad registration code is 401, every other saga failure is 422
// regardless of the domain code behind it (duplicate email included).
func (h *RegistrationHandler) rejectRegistration(c *gin.Context, err error) {
	if errors.Is(err, registration.ErrInvalidRegistrationCode) {
		h.HandleError(c, err)
		return
	}

	message := "Store registration failed"
	detail := err.Error()
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
		detail = domainErr.Code
	}
	c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(message, detail))
}
