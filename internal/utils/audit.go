package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

// Audited actions on the staff terminals.
const (
	ACTION_CASH_SCAN        = "CASH_SCAN"
	ACTION_CASH_CONFIRM     = "CASH_CONFIRM"
	ACTION_CASH_DISMISS     = "CASH_DISMISS"
	ACTION_EXIT_WEIGHT      = "EXIT_WEIGHT"
	ACTION_EXIT_VERIFY      = "EXIT_VERIFY"
	ACTION_EXIT_NEXT        = "EXIT_NEXT"
	ACTION_SESSION_CHECKOUT = "SESSION_CHECKOUT"
)

// LogAction writes one audit line. There is no durable audit store.
func LogAction(c *gin.Context, action string, success bool, detail string) {
	email := c.GetString("email")
	role := c.GetString("role")
	status := "✅"
	if !success {
		status = "❌"
	}
	log.Printf("📋 audit %s %s by %s (%s) from %s %s", status, action, email, role, c.ClientIP(), detail)
}
