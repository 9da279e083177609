package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/robux-must-flow/internal/common"
)

// APIError is the body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeInternal     = "internal_error"
	ErrCodeNoData       = "no_data"
)

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, APIError{Code: code, Message: message})
}

func badRequest(c *gin.Context, message string) {
	abortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// loadError maps a session load failure to a response.
func loadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrIdentityUnresolved):
		abortWithError(c, http.StatusUnauthorized, ErrCodeUnauthorized, common.UserMessage(err))
	default:
		abortWithError(c, http.StatusBadGateway, ErrCodeInternal, "could not load purchase history")
	}
}
