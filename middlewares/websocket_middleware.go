package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/dinesuite/dinesuite/utils"
)

// WebSocketAuthMiddleware authenticates event-feed connections. Browsers
// cannot set headers on WebSocket upgrades, so the token travels as a query
// parameter.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)
		c.Set("branch_id", claims.BranchID)

		c.Next()
	}
}
