package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-order-engine/utils"
)

// RequireRoles menolak request yang rolenya tidak ada di daftar.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, _ := c.Get("role")
		role, _ := roleInterface.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, errors.New("tidak memiliki izin"))
		c.Abort()
	}
}
