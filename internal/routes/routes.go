package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/handlers"
	"scanpay_back_end/internal/middleware"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/utils"
)

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// Setup registers every route on r.
func Setup(r *gin.Engine, h *handlers.Handler) {
	r.Use(cors.New(corsConfig(h.Config.CORSOrigins)))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/login", middleware.LoginRateLimit(h.Redis), h.Login)
	api.GET("/products", middleware.LookupRateLimit(h.Redis, h.Config.LookupRateLimit), h.LookupProduct)
	api.GET("/catalog", h.SearchCatalog)
	api.POST("/checkout", h.MockCheckout)

	authed := api.Group("", middleware.SessionRequired(h.Config.JWTSecret, h.Sessions))
	authed.POST("/logout", h.Logout)
	authed.GET("/receipts/:id", h.GetReceipt)
	authed.GET("/receipts/:id/qr", h.ReceiptQR)
	authed.GET("/receipts/:id/invoice.pdf", h.ReceiptInvoice)

	scanner := authed.Group("/scanner", middleware.ScannerRateLimit(h.Redis))
	scanner.POST("/decode", h.ScannerDecode)
	scanner.POST("/error", h.ScannerError)
	scanner.GET("/ws", h.ScannerWebSocket)

	customer := authed.Group("", middleware.RequireRole(models.RoleCustomer))
	{
		customer.GET("/cart", h.GetCart)
		customer.POST("/cart/items", h.AddCartItem)
		customer.PATCH("/cart/items/:id", h.UpdateCartItem)
		customer.DELETE("/cart/items/:id", h.RemoveCartItem)
		customer.DELETE("/cart", h.ClearCart)
		customer.GET("/cart/ws", h.CartWebSocket)
		customer.POST("/cart/checkout", middleware.AuditAction(utils.ACTION_SESSION_CHECKOUT), h.SessionCheckout)

		customer.GET("/scan", h.ScanState)
		customer.POST("/scan/confirm", h.ScanConfirm)
		customer.POST("/scan/cancel", h.ScanCancel)
		customer.POST("/scan/manual/open", h.ScanManualOpen)
		customer.POST("/scan/manual/close", h.ScanManualClose)
		customer.POST("/scan/manual", middleware.LookupRateLimit(h.Redis, h.Config.LookupRateLimit), h.ScanManualSubmit)
		customer.POST("/scan/camera/retry", h.ScanRetryCamera)

		customer.GET("/history", h.OrderHistory)
		customer.GET("/exit-pass", h.ExitPass)

		customer.GET("/profile", h.GetProfile)
		customer.PATCH("/profile", h.UpdateProfile)
		customer.GET("/settings", h.GetSettings)
		customer.PATCH("/settings", h.UpdateSettings)
		customer.POST("/settings/:key/toggle", h.ToggleSetting)
	}

	admin := authed.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/cash", h.CashState)
		admin.POST("/cash/open", h.CashOpenScanner)
		admin.POST("/cash/close", h.CashCloseScanner)
		admin.POST("/cash/scan", middleware.AuditAction(utils.ACTION_CASH_SCAN), h.CashScan)
		admin.POST("/cash/confirm", middleware.AuditAction(utils.ACTION_CASH_CONFIRM), h.CashConfirm)
		admin.POST("/cash/dismiss", middleware.AuditAction(utils.ACTION_CASH_DISMISS), h.CashDismiss)
		admin.GET("/dashboard", h.Dashboard)
	}

	security := authed.Group("/security", middleware.RequireRole(models.RoleSecurity))
	{
		security.GET("", h.SecurityState)
		security.POST("/scan", h.SecurityScan)
		security.POST("/weight", middleware.AuditAction(utils.ACTION_EXIT_WEIGHT), h.SecurityWeight)
		security.POST("/verify", middleware.AuditAction(utils.ACTION_EXIT_VERIFY), h.SecurityVerify)
		security.POST("/next", middleware.AuditAction(utils.ACTION_EXIT_NEXT), h.SecurityNext)
	}
}
