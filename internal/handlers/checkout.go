package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/checkout"
	"scanpay_back_end/internal/middleware"
	"scanpay_back_end/internal/models"
)

// POST /api/checkout: stateless mock: the transaction is logged and discarded.
func (h *Handler) MockCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperr.MsgInternal})
		return
	}
	rec, err := h.Checkout.Submit(req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /api/cart/checkout: pays the session cart and issues a stored receipt.
func (h *Handler) SessionCheckout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	// The cart is emptied before anything else: a second checkout of the same
	// session finds it empty and cannot issue a receipt for the same lines.
	lines := sess.Cart.Drain()
	rec, err := h.Checkout.Submit(checkout.RequestFromLines(lines))
	if err != nil {
		sess.Cart.Restore(lines)
		respondError(c, err)
		return
	}
	if err := h.Ledger.Save(ctx, sess.Email, rec); err != nil {
		sess.Cart.Restore(lines)
		respondError(c, apperr.Wrap(apperr.KindInternalFault, apperr.MsgInternal, err))
		return
	}

	if err := h.History.Append(ctx, sess.Email, rec); err != nil {
		log.Printf("⚠️ history append for %s: %v", sess.Email, err)
	}
	if err := h.Stats.RecordSale(ctx, rec.Summary()); err != nil {
		log.Printf("⚠️ dashboard stats: %v", err)
	}
	h.afterOrder(ctx, sess.Email, rec)

	c.Set("audit_detail", rec.ReceiptID)
	c.JSON(http.StatusOK, rec)
}

// afterOrder updates the profile counters and e-mails the receipt when the customer opted in.
func (h *Handler) afterOrder(ctx context.Context, owner string, rec models.Receipt) {
	if _, err := h.Prefs.RecordOrder(ctx, owner, 0); err != nil {
		log.Printf("⚠️ profile order counter for %s: %v", owner, err)
	}
	p, err := h.Prefs.Get(ctx, owner)
	if err != nil {
		log.Printf("⚠️ preferences of %s: %v", owner, err)
		return
	}
	if p.Settings.EmailNotifications && h.Notifier != nil {
		h.Notifier.NotifyReceipt(p.Profile.Email, rec)
	}
}
