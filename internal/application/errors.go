package application

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("permission denied")
)

// requestContext returns the context of the HTTP request behind c.
func requestContext(c *gin.Context) context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}
