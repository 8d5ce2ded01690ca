package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/cache"
	"scanpay_back_end/internal/catalog"
	"scanpay_back_end/internal/checkout"
	"scanpay_back_end/internal/config"
	"scanpay_back_end/internal/prefs"
	"scanpay_back_end/internal/receipt"
	"scanpay_back_end/internal/session"
	"scanpay_back_end/internal/utils"
)

// Handler carries what the HTTP layer needs. Everything is injected by main.
type Handler struct {
	Config   config.Config
	Redis    *redis.Client
	Catalog  *catalog.Catalog
	Checkout *checkout.Service
	Sessions *session.Registry
	Ledger   *receipt.Ledger
	History  *receipt.History
	Prefs    *prefs.Store
	Stats    *cache.Stats
	Notifier utils.ReceiptNotifier
}

func (h *Handler) Health(c *gin.Context) {
	status := "ok"
	if err := h.Redis.Ping(c.Request.Context()).Err(); err != nil {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "sessions": h.Sessions.Len()})
}

// respondError maps an error to its HTTP status and message.
func respondError(c *gin.Context, err error) {
	respondErrorWith(c, err, nil)
}

// respondErrorWith also returns the workflow state so the client can redraw.
func respondErrorWith(c *gin.Context, err error, state any) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	body := gin.H{"error": apperr.Message(err), "code": apperr.KindOf(err).String()}
	if state != nil {
		body["state"] = state
	}
	c.JSON(status, body)
}
