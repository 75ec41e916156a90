package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slipdesk/backend/internal/application/slips"
	"github.com/slipdesk/backend/internal/domain/shared"
	"github.com/slipdesk/backend/internal/infrastructure/ingest"
	"github.com/slipdesk/backend/internal/interfaces/http/dto"
)

// BaseHandler supplies the response helpers shared by all handlers
type BaseHandler struct{}

// getRequestID reads the ID set by the RequestID middleware, falling
// back to the request header
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return ""
}

// Success writes a 200 with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created writes a 201 with the standard envelope
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a bare 204
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error envelope with an explicit status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// ErrorWithCode writes an error envelope, deriving the status from the code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest writes a 400 error envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound writes a 404 error envelope
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError writes a 500 error envelope
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps an error to a response: domain errors keep their code
// and message, pipeline and parser failures become 4xx file errors, and
// anything else becomes an opaque 500
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	// Every row skipped: the counters tell the caller why
	var noOrders *slips.NoValidOrdersError
	if errors.As(err, &noOrders) {
		c.JSON(dto.GetHTTPStatus(dto.ErrCodeNoValidOrders), dto.NewErrorResponseWithDetails(
			dto.ErrCodeNoValidOrders,
			noOrders.Error(),
			requestID,
			noOrders.Stats,
		))
		return
	}

	if errors.Is(err, slips.ErrEmptyInput) ||
		errors.Is(err, ingest.ErrEmptyFile) ||
		errors.Is(err, ingest.ErrInvalidEncoding) ||
		errors.Is(err, ingest.ErrMissingHeader) ||
		errors.Is(err, ingest.ErrUnsupportedFormat) {
		h.ErrorWithCode(c, dto.ErrCodeInvalidFile, err.Error())
		return
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}
