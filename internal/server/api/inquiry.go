package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/estately/estately/internal/server/biz"
)

type InquiryHandlersParams struct {
	fx.In

	InquiryService *biz.InquiryService
}

func NewInquiryHandlers(params InquiryHandlersParams) *InquiryHandlers {
	return &InquiryHandlers{
		InquiryService: params.InquiryService,
	}
}

type InquiryHandlers struct {
	InquiryService *biz.InquiryService
}

// Create files an inquiry about a property.
func (h *InquiryHandlers) Create(c *gin.Context) {
	var req biz.CreateInquiryInput

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	inquiry, err := h.InquiryService.Create(c.Request.Context(), mustActor(c), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inquiry)
}

// List returns the inquiries visible to the caller's role.
func (h *InquiryHandlers) List(c *gin.Context) {
	inquiries, err := h.InquiryService.List(c.Request.Context(), mustActor(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, inquiries)
}
