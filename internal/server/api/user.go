package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/estately/estately/internal/model"
	"github.com/estately/estately/internal/objects"
	"github.com/estately/estately/internal/server/biz"
)

type UserHandlersParams struct {
	fx.In

	UserService *biz.UserService
}

func NewUserHandlers(params UserHandlersParams) *UserHandlers {
	return &UserHandlers{
		UserService: params.UserService,
	}
}

type UserHandlers struct {
	UserService *biz.UserService
}

// Register creates a new account. The requested payload can never carry a
// role; registration always assigns the configured default.
func (h *UserHandlers) Register(c *gin.Context) {
	var req biz.CreateUserInput

	err := c.ShouldBindJSON(&req)
	if err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	user, err := h.UserService.CreateUser(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, biz.ConvertUserToUserInfo(user))
}

// List returns all accounts; admin only.
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.UserService.ListUsers(c.Request.Context(), mustActor(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	infos := lo.Map(users, func(user model.User, _ int) *objects.UserInfo {
		return biz.ConvertUserToUserInfo(&user)
	})

	c.JSON(http.StatusOK, infos)
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeRole moves an account to a new role; superadmin only, and a
// superadmin target is locked for everyone.
func (h *UserHandlers) ChangeRole(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		JSONError(c, http.StatusBadRequest, err)
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	newRole, err := h.UserService.ChangeRole(c.Request.Context(), mustActor(c), id, req.Role)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, objects.MessageResponse{
		Message: fmt.Sprintf("user's role successfully updated to %q", newRole),
	})
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}

	return uint(id), nil
}
