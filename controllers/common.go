package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dinesuite/dinesuite/models"
)

// staffBranchID resolves which branch a staff request targets. Owners may
// pick any branch with the branch_id query parameter; everyone else is
// pinned to the branch on their token.
func staffBranchID(c *gin.Context) uint {
	if c.GetString("role") == models.RoleOwner {
		if raw := c.Query("branch_id"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
				return uint(id)
			}
		}
		return 0
	}
	return c.GetUint("branch_id")
}
