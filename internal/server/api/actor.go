package api

import (
	"github.com/gin-gonic/gin"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/contexts"
)

// mustActor returns the authenticated actor. Handlers behind WithJWTAuth
// can rely on the user being present.
func mustActor(c *gin.Context) authz.Actor {
	return contexts.MustGetUser(c.Request.Context()).Actor()
}

// optionalActor returns the actor when the request was authenticated.
func optionalActor(c *gin.Context) *authz.Actor {
	user, ok := contexts.GetUser(c.Request.Context())
	if !ok {
		return nil
	}

	actor := user.Actor()

	return &actor
}
