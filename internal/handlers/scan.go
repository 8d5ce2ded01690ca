package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scanpay_back_end/internal/middleware"
)

type manualInput struct {
	Barcode string `json:"barcode"`
}

// GET /api/scan
func (h *Handler) ScanState(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentSession(c).Scan().Snapshot())
}

// POST /api/scan/confirm
func (h *Handler) ScanConfirm(c *gin.Context) {
	wf := middleware.CurrentSession(c).Scan()
	product, err := wf.Confirm()
	if err != nil {
		respondErrorWith(c, err, wf.Snapshot())
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": product, "state": wf.Snapshot()})
}

// POST /api/scan/cancel
func (h *Handler) ScanCancel(c *gin.Context) {
	wf := middleware.CurrentSession(c).Scan()
	wf.Cancel()
	c.JSON(http.StatusOK, wf.Snapshot())
}

// POST /api/scan/manual/open
func (h *Handler) ScanManualOpen(c *gin.Context) {
	wf := middleware.CurrentSession(c).Scan()
	wf.OpenManual()
	c.JSON(http.StatusOK, wf.Snapshot())
}

// POST /api/scan/manual/close
func (h *Handler) ScanManualClose(c *gin.Context) {
	wf := middleware.CurrentSession(c).Scan()
	wf.CloseManual()
	c.JSON(http.StatusOK, wf.Snapshot())
}

// POST /api/scan/manual
func (h *Handler) ScanManualSubmit(c *gin.Context) {
	var input manualInput
	_ = c.ShouldBindJSON(&input)

	wf := middleware.CurrentSession(c).Scan()
	if err := wf.SubmitManual(input.Barcode); err != nil {
		respondErrorWith(c, err, wf.Snapshot())
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

// POST /api/scan/camera/retry
func (h *Handler) ScanRetryCamera(c *gin.Context) {
	wf := middleware.CurrentSession(c).Scan()
	wf.RetryCamera()
	c.JSON(http.StatusOK, wf.Snapshot())
}
