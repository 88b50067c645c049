package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// BaseHandler provides common response helpers for all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// Ok sends a 200 response with the standard envelope
func (h *BaseHandler) Ok(c *gin.Context, fields map[string]interface{}) {
	c.JSON(http.StatusOK, dto.Ok(fields))
}

// Created sends a 201 response with the standard envelope
func (h *BaseHandler) Created(c *gin.Context, fields map[string]interface{}) {
	c.JSON(http.StatusCreated, dto.Ok(fields))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message, detail))
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(message, ""))
}

// HandleError maps an error to an HTTP response. Domain errors are
// translated through their code; everything else becomes a 422 so
// callers can surface the failure to the user.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Message, domainErr.Code))
		return
	}

	if h.logger != nil {
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(err.Error(), ""))
}
