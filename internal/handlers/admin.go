package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/middleware"
	"scanpay_back_end/internal/workflow/cash"
)

type customerCodeInput struct {
	Code string `json:"code" binding:"required"`
}

// GET /api/admin/cash
func (h *Handler) CashState(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentSession(c).Cash().Snapshot())
}

// POST /api/admin/cash/open
func (h *Handler) CashOpenScanner(c *gin.Context) {
	wf := middleware.CurrentSession(c).Cash()
	if err := wf.OpenScanner(); err != nil {
		respondErrorWith(c, err, wf.Snapshot())
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

// POST /api/admin/cash/close
func (h *Handler) CashCloseScanner(c *gin.Context) {
	wf := middleware.CurrentSession(c).Cash()
	wf.CloseScanner()
	c.JSON(http.StatusOK, wf.Snapshot())
}

// POST /api/admin/cash/scan: a customer code typed in or simulated from the terminal.
func (h *Handler) CashScan(c *gin.Context) {
	var input customerCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}
	wf := middleware.CurrentSession(c).Cash()
	if err := wf.Decode(input.Code); err != nil {
		respondErrorWith(c, err, wf.Snapshot())
		return
	}
	c.Set("audit_detail", input.Code)
	c.JSON(http.StatusOK, wf.Snapshot())
}

// POST /api/admin/cash/confirm
func (h *Handler) CashConfirm(c *gin.Context) {
	wf := middleware.CurrentSession(c).Cash()
	if err := wf.ConfirmCash(); err != nil {
		respondErrorWith(c, err, wf.Snapshot())
		return
	}
	snap := wf.Snapshot()
	if snap.Order != nil {
		c.Set("audit_detail", snap.Order.CustomerID)
	}
	c.JSON(http.StatusOK, snap)
}

// POST /api/admin/cash/dismiss
func (h *Handler) CashDismiss(c *gin.Context) {
	wf := middleware.CurrentSession(c).Cash()
	wf.Dismiss()
	c.JSON(http.StatusOK, wf.Snapshot())
}

// GET /api/admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.Stats.Today(c.Request.Context())
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindInternalFault, apperr.MsgInternal, err))
		return
	}
	snap := middleware.CurrentSession(c).Cash().Snapshot()
	if snap.Order != nil && (snap.State == cash.StatePendingCash || snap.State == cash.StateProcessing) {
		stats.PendingCash = int64(snap.Order.Total)
	}
	c.JSON(http.StatusOK, stats)
}
