package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estately/estately/internal/objects"
)

// AbortWithError stops the handler chain with a JSON error body. The error
// is also recorded on the gin context so the access log reports it.
func AbortWithError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: err.Error(),
		},
	})
}
