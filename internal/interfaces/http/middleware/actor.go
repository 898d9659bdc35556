package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefix/internal/domain/workflow"
	"storefix/internal/shared/constants"
	"storefix/internal/shared/utils"
)

// Actor reads the authenticated caller from the gateway-injected headers
// and stores it on the request context. Identity itself is established
// upstream; this service only needs who is acting and in which role.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader(constants.HeaderXUserID)
		if rawID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
			c.Abort()
			return
		}

		actorID, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil || actorID == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
			c.Abort()
			return
		}

		role := workflow.NormalizeRole(c.GetHeader(constants.HeaderXUserRole))
		if !role.IsValid() {
			utils.ErrorResponse(c, http.StatusForbidden, constants.ErrMsgForbidden)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyActorID, uint(actorID))
		c.Set(constants.ContextKeyActorRole, role.String())

		c.Next()
	}
}

// ActorID returns the caller id set by Actor.
func ActorID(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyActorID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// ActorRole returns the caller role set by Actor.
func ActorRole(c *gin.Context) string {
	return c.GetString(constants.ContextKeyActorRole)
}
