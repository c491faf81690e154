package handler

import (
	"errors"
	"net/http"

	"presignup-linker/internal/auth"
	"presignup-linker/internal/directory"
	"presignup-linker/internal/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/hooks/pre-signup", h.preSignUp)

	for _, route := range r.Routes() {
		logger.Debug("route registered", map[string]any{
			"method": route.Method,
			"path":   route.Path,
		})
	}
}

func (h *Handler) preSignUp(c *gin.Context) {
	var event events.CognitoEventUserPoolsPreSignup
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	out, err := h.PreSignUp(c.Request.Context(), event)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrMalformedUsername),
		errors.Is(err, ErrMissingEmail):
		return http.StatusBadRequest
	case directory.IsRetryable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
