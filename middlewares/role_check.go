package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinesuite/dinesuite/models"
	"github.com/dinesuite/dinesuite/utils"
)

// RequireRoles rejects requests whose session role is not in the allowed
// set. Owners pass every check.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		role, ok := userRole.(string)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("invalid role"))
			c.Abort()
			return
		}

		if role == models.RoleOwner {
			c.Next()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%s access required", roles[0]))
		c.Abort()
	}
}
