package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
	"github.com/vamsi1219/task-flow-manager-duo/internal/services"
	"github.com/vamsi1219/task-flow-manager-duo/internal/utils"
)

const userContextKey = "auth_user"

// BearerAuth resolves the Authorization header to a user and stores it in
// the gin context. A missing or invalid token always short-circuits with
// UNAUTHENTICATED before any role logic runs.
func BearerAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			utils.RespondError(c, utils.Unauthenticated("missing token"))
			c.Abort()
			return
		}

		user, err := auth.Resolve(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin gates a route to admin callers. Runs after BearerAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.RespondError(c, utils.Unauthenticated("missing token"))
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			utils.RespondError(c, utils.Forbidden("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity resolved by BearerAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
