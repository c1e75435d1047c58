package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/estately/estately/internal/objects"
	"github.com/estately/estately/internal/server/biz"
)

type FavoriteHandlersParams struct {
	fx.In

	FavoriteService *biz.FavoriteService
}

func NewFavoriteHandlers(params FavoriteHandlersParams) *FavoriteHandlers {
	return &FavoriteHandlers{
		FavoriteService: params.FavoriteService,
	}
}

type FavoriteHandlers struct {
	FavoriteService *biz.FavoriteService
}

type FavoriteRequest struct {
	Property uint `json:"property"`
}

// List returns the caller's favorites.
func (h *FavoriteHandlers) List(c *gin.Context) {
	favorites, err := h.FavoriteService.List(c.Request.Context(), mustActor(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}

// Add favorites a property. Adding an existing favorite answers 200 with
// the stored row; a fresh one answers 201.
func (h *FavoriteHandlers) Add(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Property == 0 {
		JSONError(c, http.StatusBadRequest, errors.New("property ID is required"))
		return
	}

	favorite, created, err := h.FavoriteService.Add(c.Request.Context(), mustActor(c), req.Property)
	if err != nil {
		RespondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, favorite)
}

// Remove unfavorites a property; a missing pair is 404.
func (h *FavoriteHandlers) Remove(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Property == 0 {
		JSONError(c, http.StatusBadRequest, errors.New("property ID is required"))
		return
	}

	if err := h.FavoriteService.Remove(c.Request.Context(), mustActor(c), req.Property); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{Message: "removed from favorites"})
}
