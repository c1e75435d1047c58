package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estately/estately/internal/log"
	"github.com/estately/estately/internal/objects"
	"github.com/estately/estately/internal/server/biz"
)

// JSONError returns a JSON error response and adds the error to gin context for access logging.
func JSONError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: err.Error(),
		},
	})
}

// RespondError maps the service error taxonomy onto HTTP statuses.
// Unclassified errors become opaque 500s so internals never leak.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, biz.ErrInvalidInput):
		JSONError(c, http.StatusBadRequest, err)
	case errors.Is(err, biz.ErrInvalidJWT), errors.Is(err, biz.ErrInvalidPassword):
		JSONError(c, http.StatusUnauthorized, err)
	case errors.Is(err, biz.ErrPermissionDenied):
		JSONError(c, http.StatusForbidden, err)
	case errors.Is(err, biz.ErrNotFound):
		JSONError(c, http.StatusNotFound, err)
	case errors.Is(err, biz.ErrConflict):
		JSONError(c, http.StatusConflict, err)
	default:
		log.Error(c.Request.Context(), "unhandled service error", log.Cause(err))
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
	}
}
