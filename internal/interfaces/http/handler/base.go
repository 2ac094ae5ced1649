package handler

import (
	"net/http"

	"github.com/aokpower/ari-cart/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the header carrying the request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDKey); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// Failed sends an error response that keeps data, deriving status from err
func (h *BaseHandler) Failed(c *gin.Context, data any, err error) {
	code := dto.ErrorCodeFor(err)
	c.JSON(dto.GetHTTPStatus(code), dto.NewFailedResponse(data, code, err.Error(), getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// HandleError writes err using the add-to-cart error classification
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	code := dto.ErrorCodeFor(err)
	h.Error(c, dto.GetHTTPStatus(code), code, err.Error())
}
