package cash

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/scanner"
	"scanpay_back_end/internal/workflow"
)

type State string

const (
	StateIdle        State = "IDLE"
	StateScanning    State = "SCANNING"
	StatePendingCash State = "PENDING_CASH"
	StateProcessing  State = "PROCESSING"
	StateSuccess     State = "SUCCESS"
)

const DefaultSettleDelay = 1500 * time.Millisecond

// OrderSource turns a scanned customer code into the order to collect cash for.
type OrderSource interface {
	OrderFor(customerCode string) (models.CashOrder, error)
}

type Snapshot struct {
	State        State             `json:"state"`
	Order        *models.CashOrder `json:"order,omitempty"`
	Error        string            `json:"error,omitempty"`
	ErrorCode    string            `json:"errorCode,omitempty"`
	CameraActive bool              `json:"cameraActive"`
}

type Options struct {
	Camera      scanner.Camera
	Orders      OrderSource
	Scheduler   workflow.Scheduler
	SettleDelay time.Duration
	// ErrorTTL is how long an unknown customer code stays on screen.
	ErrorTTL time.Duration
	// OnSettled runs after an order reaches SUCCESS, outside the workflow lock.
	OnSettled func(models.CashOrder)
}

// Workflow is the cashier's flow: scan the customer, show the order, take cash.
type Workflow struct {
	mu          sync.Mutex
	cam         scanner.Camera
	orders      OrderSource
	sched       workflow.Scheduler
	settleDelay time.Duration
	onSettled   func(models.CashOrder)
	state       State
	order       *models.CashOrder
	alert       *workflow.Alert
	capturing   bool
	settle      workflow.Timer
	claiming    atomic.Bool
}

func New(opts Options) *Workflow {
	if opts.Scheduler == nil {
		opts.Scheduler = workflow.RealScheduler{}
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	w := &Workflow{
		cam:         opts.Camera,
		orders:      opts.Orders,
		sched:       opts.Scheduler,
		settleDelay: opts.SettleDelay,
		onSettled:   opts.OnSettled,
		state:       StateIdle,
	}
	w.alert = workflow.NewAlert(&w.mu, opts.Scheduler, opts.ErrorTTL)
	return w
}

// OpenScanner starts looking for a customer QR code.
func (w *Workflow) OpenScanner() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateIdle {
		return apperr.Newf(apperr.KindInvalidTransition, "cannot open scanner from %s", w.state)
	}
	w.state = StateScanning
	w.alert.Clear()
	if err := w.cam.Start(scanner.FacingEnvironment, w.handleDecode, w.handleCameraError); err != nil {
		log.Printf("❌ admin scanner start failed: %v", err)
		w.alert.Show(apperr.Wrap(apperr.KindCameraUnavailable, apperr.MsgCameraDenied, err))
		return nil
	}
	w.capturing = true
	return nil
}

// CloseScanner abandons scanning.
func (w *Workflow) CloseScanner() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateScanning {
		return
	}
	w.releaseCamera()
	w.state = StateIdle
	w.alert.Clear()
}

// Decode handles a customer code, whether it comes from the camera or the simulate button.
func (w *Workflow) Decode(code string) error {
	if !w.claiming.CompareAndSwap(false, true) {
		return apperr.New(apperr.KindInvalidTransition, "scan already being processed")
	}
	defer w.claiming.Store(false)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateScanning {
		return apperr.Newf(apperr.KindInvalidTransition, "not scanning (state %s)", w.state)
	}
	order, err := w.orders.OrderFor(code)
	if err != nil {
		w.alert.Show(err)
		return err
	}
	order.Status = models.OrderPendingCash
	w.order = &order
	w.state = StatePendingCash
	w.alert.Clear()
	w.releaseCamera()
	log.Printf("💵 customer %s scanned, %d due", order.CustomerID, order.Total)
	return nil
}

// ConfirmCash starts the simulated settlement.
func (w *Workflow) ConfirmCash() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StatePendingCash {
		return apperr.Newf(apperr.KindInvalidTransition, "no order awaiting cash (state %s)", w.state)
	}
	w.state = StateProcessing
	var t workflow.Timer
	t = w.sched.AfterFunc(w.settleDelay, func() { w.finishSettlement(t) })
	w.settle = t
	return nil
}

// Dismiss returns to IDLE from any state, abandoning an unfinished settlement.
func (w *Workflow) Dismiss() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.settle != nil {
		w.settle.Stop()
		w.settle = nil
	}
	w.releaseCamera()
	w.order = nil
	w.alert.Clear()
	w.state = StateIdle
}

// Close releases the camera on teardown.
func (w *Workflow) Close() {
	w.Dismiss()
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap := Snapshot{
		State:        w.state,
		Error:        w.alert.Message(),
		ErrorCode:    w.alert.Code(),
		CameraActive: w.capturing,
	}
	if w.order != nil {
		o := *w.order
		o.Items = append([]models.OrderItem(nil), w.order.Items...)
		snap.Order = &o
	}
	return snap
}

func (w *Workflow) finishSettlement(t workflow.Timer) {
	w.mu.Lock()
	if w.settle != t || w.state != StateProcessing || w.order == nil {
		w.mu.Unlock()
		return
	}
	w.settle = nil
	w.state = StateSuccess
	w.order.Status = models.OrderSuccess
	settled := *w.order
	hook := w.onSettled
	w.mu.Unlock()

	log.Printf("✅ cash received from %s (%d)", settled.CustomerID, settled.Total)
	if hook != nil {
		hook(settled)
	}
}

func (w *Workflow) handleDecode(text string) {
	if err := w.Decode(text); err != nil && apperr.KindOf(err) != apperr.KindInvalidTransition {
		log.Printf("⚠️ admin scan %q rejected: %v", text, err)
	}
}

func (w *Workflow) handleCameraError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	log.Printf("❌ admin scanner error: %v", err)
	w.capturing = false
	w.alert.Show(apperr.Wrap(apperr.KindCameraUnavailable, apperr.MsgCameraDenied, err))
}

func (w *Workflow) releaseCamera() {
	if !w.capturing {
		return
	}
	w.capturing = false
	if err := w.cam.Stop(); err != nil {
		log.Printf("⚠️ admin scanner stop: %v", err)
	}
}
