package middleware

import (
	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/utils"
)

// AuditAction logs the outcome of a staff action once the handler has run.
func AuditAction(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		detail := c.GetString("audit_detail")
		utils.LogAction(c, action, status >= 200 && status < 300, detail)
	}
}
