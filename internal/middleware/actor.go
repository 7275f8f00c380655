package middleware

import (
	"net/http"
	"strings"

	"istorepro/internal/apierror"
	"istorepro/internal/checkout"

	"github.com/gin-gonic/gin"
)

const (
	ActorKey        = "actor"
	UserIDHeader    = "X-User-ID"
	UserNameHeader  = "X-User-Name"
	anonymousUserID = "anonimo"
)

// Actor reads the operator identity sent by the front end. Write routes
// reject requests without X-User-ID; read routes fall back to an anonymous actor.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(UserIDHeader))
		name := strings.TrimSpace(c.GetHeader(UserNameHeader))
		if id == "" {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Informe o usuário da operação no cabeçalho X-User-ID."))
				return
			}
			id = anonymousUserID
		}
		if name == "" {
			name = id
		}
		c.Set(ActorKey, checkout.Actor{ID: id, Name: name})
		c.Next()
	}
}

// GetActor returns the actor stored by Actor, or an anonymous one.
func GetActor(c *gin.Context) checkout.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if a, ok := v.(checkout.Actor); ok {
			return a
		}
	}
	return checkout.Actor{ID: anonymousUserID, Name: anonymousUserID}
}
