package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/middleware"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/receipt"
	"scanpay_back_end/internal/session"
	"scanpay_back_end/internal/utils"
)

func (h *Handler) loadReceipt(c *gin.Context) (models.Receipt, bool) {
	issued, ok, err := h.Ledger.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindInternalFault, apperr.MsgInternal, err))
		return models.Receipt{}, false
	}
	// Someone else's receipt answers like an unknown one.
	if !ok || !canReadReceipt(middleware.CurrentSession(c), issued) {
		c.JSON(http.StatusNotFound, gin.H{"error": apperr.MsgReceiptUnknown})
		return models.Receipt{}, false
	}
	return issued.Receipt, true
}

// canReadReceipt lets the customer who paid and the exit guards see a receipt.
func canReadReceipt(sess *session.Session, issued receipt.Issued) bool {
	return sess.Role == models.RoleSecurity || sess.Email == issued.Owner
}

// GET /api/receipts/:id
func (h *Handler) GetReceipt(c *gin.Context) {
	if rec, ok := h.loadReceipt(c); ok {
		c.JSON(http.StatusOK, rec)
	}
}

// GET /api/receipts/:id/qr
func (h *Handler) ReceiptQR(c *gin.Context) {
	rec, ok := h.loadReceipt(c)
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	if size < 64 || size > 1024 {
		size = 256
	}
	png, err := utils.ExitPassQR(rec.ReceiptID, size)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindInternalFault, apperr.MsgInternal, err))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// GET /api/receipts/:id/invoice.pdf
func (h *Handler) ReceiptInvoice(c *gin.Context) {
	rec, ok := h.loadReceipt(c)
	if !ok {
		return
	}
	pdf, err := utils.RenderInvoicePDF(h.Config.Shop, rec)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindInternalFault, apperr.MsgInternal, err))
		return
	}
	c.Header("Content-Disposition", "attachment; filename=invoice-"+rec.ReceiptID+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/history
func (h *Handler) OrderHistory(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, err := h.History.List(c.Request.Context(), sess.Email, limit)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindInternalFault, apperr.MsgInternal, err))
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/exit-pass: the code to show at the gate, from the latest order.
func (h *Handler) ExitPass(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	latest, ok, err := h.History.Latest(c.Request.Context(), sess.Email)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindInternalFault, apperr.MsgInternal, err))
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No completed order yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"receiptId": latest.ReceiptID,
		"total":     latest.Total,
		"timestamp": latest.Timestamp,
		"qr":        "/api/receipts/" + latest.ReceiptID + "/qr",
	})
}
