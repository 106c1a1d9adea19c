package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"services-api-server/store"
	"services-api-server/types"
	"services-api-server/utils"
)

// AuthMiddleware validates the bearer token and sets the user in the context
func AuthMiddleware(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, types.Failure(types.CodeUnauthorized, "Authorization header required"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, types.Failure(types.CodeUnauthorized, "Token must be in format: Bearer <token>"))
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, types.Failure(types.CodeUnauthorized, "Token is invalid or expired"))
			c.Abort()
			return
		}

		user, err := st.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, types.Failure(types.CodeUnauthorized, "User associated with token not found"))
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, types.Failure(types.CodeUnauthorized, "User account is deactivated"))
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", string(user.Role))

		c.Next()
	}
}
