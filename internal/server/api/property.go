package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/estately/estately/internal/server/biz"
)

type PropertyHandlersParams struct {
	fx.In

	PropertyService *biz.PropertyService
}

func NewPropertyHandlers(params PropertyHandlersParams) *PropertyHandlers {
	return &PropertyHandlers{
		PropertyService: params.PropertyService,
	}
}

type PropertyHandlers struct {
	PropertyService *biz.PropertyService
}

// List is the public property feed with optional filters.
func (h *PropertyHandlers) List(c *gin.Context) {
	filter := biz.ListFilter{
		Location:     c.Query("location"),
		PropertyType: c.Query("property_type"),
		Purpose:      c.Query("purpose"),
		Search:       c.Query("search"),
	}

	if v, ok := parseUintQuery(c, "bedrooms"); ok {
		filter.Bedrooms = &v
	}

	if v, ok := parseUintQuery(c, "bathrooms"); ok {
		filter.Bathrooms = &v
	}

	if raw := c.Query("is_published"); raw != "" {
		published := raw == "true" || raw == "1"
		filter.IsPublished = &published
	}

	properties, err := h.PropertyService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

// Create stores a listing from a multipart request: a propertyData JSON
// part plus zero or more images parts.
func (h *PropertyHandlers) Create(c *gin.Context) {
	raw := c.PostForm("propertyData")

	var input biz.CreatePropertyInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid JSON in propertyData"))
		return
	}

	var uploads []biz.ImageUpload

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, header := range form.File["images"] {
			file, err := header.Open()
			if err != nil {
				JSONError(c, http.StatusBadRequest, errors.New("unreadable image upload"))
				return
			}
			defer file.Close()

			uploads = append(uploads, biz.ImageUpload{Filename: header.Filename, Content: file})
		}
	}

	property, err := h.PropertyService.Create(c.Request.Context(), mustActor(c), input, uploads)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// Mine lists the caller's own listings, any status.
func (h *PropertyHandlers) Mine(c *gin.Context) {
	properties, err := h.PropertyService.Mine(c.Request.Context(), mustActor(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

// Get returns one listing, honoring the visibility policy.
func (h *PropertyHandlers) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		JSONError(c, http.StatusBadRequest, err)
		return
	}

	property, err := h.PropertyService.Get(c.Request.Context(), optionalActor(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Update edits a listing; owner or admin.
func (h *PropertyHandlers) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		JSONError(c, http.StatusBadRequest, err)
		return
	}

	var input biz.UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	property, err := h.PropertyService.Update(c.Request.Context(), mustActor(c), id, input)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// Delete removes a listing; owner or admin.
func (h *PropertyHandlers) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		JSONError(c, http.StatusBadRequest, err)
		return
	}

	if err := h.PropertyService.Delete(c.Request.Context(), mustActor(c), id); err != nil {
		RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Review moves a pending listing to Approved or Rejected; admin only.
func (h *PropertyHandlers) Review(c *gin.Context) {
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

	property, err := h.PropertyService.Review(c.Request.Context(), mustActor(c), id, *req.Approve)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

type PublishRequest struct {
	Published *bool `json:"is_published" binding:"required"`
}

// Publish toggles the published flag; publishing needs an approved listing.
func (h *PropertyHandlers) Publish(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		JSONError(c, http.StatusBadRequest, err)
		return
	}

	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	property, err := h.PropertyService.SetPublished(c.Request.Context(), mustActor(c), id, *req.Published)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	return uint(v), true
}
