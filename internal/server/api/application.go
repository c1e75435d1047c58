package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/estately/estately/internal/server/biz"
)

type ApplicationHandlersParams struct {
	fx.In

	ApplicationService *biz.ApplicationService
}

func NewApplicationHandlers(params ApplicationHandlersParams) *ApplicationHandlers {
	return &ApplicationHandlers{
		ApplicationService: params.ApplicationService,
	}
}

type ApplicationHandlers struct {
	ApplicationService *biz.ApplicationService
}

// Submit files the caller's seller application.
func (h *ApplicationHandlers) Submit(c *gin.Context) {
	var req biz.SubmitApplicationInput

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	application, err := h.ApplicationService.Submit(c.Request.Context(), mustActor(c), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// List returns all applications for admins, the caller's own otherwise.
func (h *ApplicationHandlers) List(c *gin.Context) {
	applications, err := h.ApplicationService.List(c.Request.Context(), mustActor(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

type ReviewRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// Review approves or rejects a pending application; admin only.
func (h *ApplicationHandlers) Review(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		JSONError(c, http.StatusBadRequest, err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	application, err := h.ApplicationService.Review(c.Request.Context(), mustActor(c), id, *req.Approve)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}
