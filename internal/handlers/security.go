package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/middleware"
)

type weightInput struct {
	Grams *int `json:"grams" binding:"required"`
}

type receiptCodeInput struct {
	ReceiptID string `json:"receiptId" binding:"required"`
}

// GET /api/security
func (h *Handler) SecurityState(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentSession(c).Exit().Snapshot())
}

// POST /api/security/scan: receipt id typed in by the guard.
func (h *Handler) SecurityScan(c *gin.Context) {
	var input receiptCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiptId is required"})
		return
	}
	wf := middleware.CurrentSession(c).Exit()
	if err := wf.Decode(input.ReceiptID); err != nil {
		respondErrorWith(c, err, wf.Snapshot())
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

// POST /api/security/weight
func (h *Handler) SecurityWeight(c *gin.Context) {
	var input weightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grams is required"})
		return
	}
	wf := middleware.CurrentSession(c).Exit()
	if err := wf.SetObservedWeight(*input.Grams); err != nil {
		respondErrorWith(c, err, wf.Snapshot())
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

// POST /api/security/verify
func (h *Handler) SecurityVerify(c *gin.Context) {
	wf := middleware.CurrentSession(c).Exit()
	if err := wf.Verify(); err != nil {
		respondErrorWith(c, err, wf.Snapshot())
		return
	}
	snap := wf.Snapshot()
	if snap.Receipt != nil {
		c.Set("audit_detail", snap.Receipt.ReceiptID)
	}
	c.JSON(http.StatusAccepted, snap)
}

// POST /api/security/next
func (h *Handler) SecurityNext(c *gin.Context) {
	wf := middleware.CurrentSession(c).Exit()
	wf.Next()
	c.JSON(http.StatusOK, wf.Snapshot())
}
