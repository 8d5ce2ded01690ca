package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/middleware"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/session"
)

type decodeInput struct {
	Text string `json:"text" binding:"required"`
}

type deviceErrorInput struct {
	Error string `json:"error"`
}

// deviceMessage is what the camera device sends over the scanner socket.
type deviceMessage struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// deviceStatus tells the device whether to keep its camera open.
type deviceStatus struct {
	Type      string `json:"type"`
	Accepted  *bool  `json:"accepted,omitempty"`
	Capturing bool   `json:"capturing"`
	Facing    string `json:"facing,omitempty"`
	State     any    `json:"state"`
}

// workflowState returns the snapshot of the workflow the session's role drives,
// creating the workflow on first use so that the camera is claimed.
func workflowState(sess *session.Session) any {
	switch sess.Role {
	case models.RoleAdmin:
		return sess.Cash().Snapshot()
	case models.RoleSecurity:
		return sess.Exit().Snapshot()
	default:
		return sess.Scan().Snapshot()
	}
}

func status(sess *session.Session, kind string, accepted *bool) deviceStatus {
	st := workflowState(sess)
	return deviceStatus{
		Type:      kind,
		Accepted:  accepted,
		Capturing: sess.Feed.Running(),
		Facing:    string(sess.Feed.Facing()),
		State:     st,
	}
}

// POST /api/scanner/decode
func (h *Handler) ScannerDecode(c *gin.Context) {
	var input decodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	sess := middleware.CurrentSession(c)
	workflowState(sess)
	accepted := sess.Feed.Push(input.Text)
	c.JSON(http.StatusOK, status(sess, "decoded", &accepted))
}

// POST /api/scanner/error: the device could not open its camera. A report that reached
// a running capture answers 503 with the resulting state.
func (h *Handler) ScannerError(c *gin.Context) {
	var input deviceErrorInput
	_ = c.ShouldBindJSON(&input)
	if input.Error == "" {
		input.Error = "camera unavailable"
	}
	sess := middleware.CurrentSession(c)
	workflowState(sess)
	cause := errors.New(input.Error)
	accepted := sess.Feed.Fail(cause)
	if !accepted {
		c.JSON(http.StatusOK, status(sess, "error", &accepted))
		return
	}
	err := apperr.Wrap(apperr.KindCameraUnavailable, apperr.MsgCameraDenied, cause)
	respondErrorWith(c, err, status(sess, "error", &accepted))
}

const scannerStatusInterval = time.Second

// GET /api/scanner/ws: device link. Incoming decode/error messages drive the session's
// feed; the server answers with the capture status after each one and once a second.
func (h *Handler) ScannerWebSocket(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ scanner websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	replies := make(chan deviceStatus, 8)
	closed := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(closed)
		for {
			var msg deviceMessage
			if err := conn.ReadJSON(&msg); err != nil {
				var closeErr *websocket.CloseError
				if !errors.As(err, &closeErr) {
					log.Printf("⚠️ scanner websocket read (%s): %v", sess.ID, err)
				}
				return
			}
			var accepted bool
			switch msg.Type {
			case "decode":
				accepted = sess.Feed.Push(msg.Text)
			case "error":
				accepted = sess.Feed.Fail(errors.New(msg.Error))
			default:
				continue
			}
			select {
			case replies <- status(sess, msg.Type, &accepted):
			case <-done:
				return
			}
		}
	}()

	if err := conn.WriteJSON(status(sess, "connected", nil)); err != nil {
		return
	}

	ticker := time.NewTicker(scannerStatusInterval)
	defer ticker.Stop()
	for {
		select {
		case reply := <-replies:
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteJSON(status(sess, "status", nil)); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
