package scan

import (
	"log"
	"sync"
	"time"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/cart"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/scanner"
	"scanpay_back_end/internal/workflow"
)

type State string

const (
	StateScanning     State = "SCANNING"
	StateProductFound State = "PRODUCT_FOUND"
)

const DefaultErrorTTL = 3 * time.Second

// Catalog resolves decoded barcodes.
type Catalog interface {
	Lookup(barcode string) (models.Product, bool)
}

type Snapshot struct {
	State           State           `json:"state"`
	Manual          bool            `json:"manual"`
	Product         *models.Product `json:"product,omitempty"`
	Error           string          `json:"error,omitempty"`
	ErrorCode       string          `json:"errorCode,omitempty"`
	CameraError     string          `json:"cameraError,omitempty"`
	CameraErrorCode string          `json:"cameraErrorCode,omitempty"`
	CameraActive    bool            `json:"cameraActive"`
	CartCount       int             `json:"cartCount"`
}

type Options struct {
	Camera    scanner.Camera
	Catalog   Catalog
	Cart      *cart.Store
	Scheduler workflow.Scheduler
	// ErrorTTL is how long a lookup miss stays on screen.
	ErrorTTL time.Duration
}

// Workflow drives the customer's scanner: decodes are looked up in the catalog,
// found products wait for confirmation before landing in the cart.
type Workflow struct {
	mu        sync.Mutex
	cam       scanner.Camera
	catalog   Catalog
	cart      *cart.Store
	state     State
	manual    bool
	product   *models.Product
	notice    *workflow.Alert
	camAlert  *workflow.Alert
	capturing bool
	closed    bool
}

func New(opts Options) *Workflow {
	if opts.Scheduler == nil {
		opts.Scheduler = workflow.RealScheduler{}
	}
	if opts.ErrorTTL <= 0 {
		opts.ErrorTTL = DefaultErrorTTL
	}
	w := &Workflow{
		cam:     opts.Camera,
		catalog: opts.Catalog,
		cart:    opts.Cart,
		state:   StateScanning,
	}
	w.notice = workflow.NewAlert(&w.mu, opts.Scheduler, opts.ErrorTTL)
	w.camAlert = workflow.NewAlert(&w.mu, opts.Scheduler, opts.ErrorTTL)
	return w
}

// Start opens the camera if the workflow is waiting for a scan.
func (w *Workflow) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = false
	w.syncCapture()
}

// Close releases the camera and cancels pending timers.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.releaseCamera()
	w.notice.Clear()
}

// Confirm adds the found product to the cart and resumes scanning.
func (w *Workflow) Confirm() (models.Product, error) {
	w.mu.Lock()
	if w.state != StateProductFound || w.product == nil {
		w.mu.Unlock()
		return models.Product{}, apperr.New(apperr.KindInvalidTransition, apperr.MsgNoProductSelected)
	}
	p := *w.product
	w.product = nil
	w.state = StateScanning
	w.syncCapture()
	w.mu.Unlock()

	// Outside the lock: cart observers may read the workflow.
	w.cart.Add(p)
	log.Printf("🛒 %s added to cart", p.Name)
	return p, nil
}

// Cancel drops the found product without touching the cart.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.product = nil
	w.state = StateScanning
	w.syncCapture()
}

func (w *Workflow) OpenManual() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.manual = true
	w.syncCapture()
}

func (w *Workflow) CloseManual() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.manual = false
	w.syncCapture()
}

// SubmitManual looks up a typed barcode and closes the manual panel.
func (w *Workflow) SubmitManual(barcode string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if barcode == "" {
		return apperr.New(apperr.KindInvalidInput, apperr.MsgBarcodeRequired)
	}
	w.manual = false
	err := w.lookup(barcode)
	w.syncCapture()
	return err
}

// RetryCamera clears a camera failure and tries to capture again.
func (w *Workflow) RetryCamera() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.camAlert.Clear()
	w.syncCapture()
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	snap := Snapshot{
		State:           w.state,
		Manual:          w.manual,
		Error:           w.notice.Message(),
		ErrorCode:       w.notice.Code(),
		CameraError:     w.camAlert.Message(),
		CameraErrorCode: w.camAlert.Code(),
		CameraActive:    w.capturing,
	}
	if w.product != nil {
		p := *w.product
		snap.Product = &p
	}
	w.mu.Unlock()
	snap.CartCount = w.cart.Count()
	return snap
}

func (w *Workflow) handleDecode(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateScanning || w.manual || !w.capturing {
		return
	}
	_ = w.lookup(text)
}

func (w *Workflow) handleCameraError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	log.Printf("❌ scanner error: %v", err)
	w.capturing = false
	w.camAlert.Show(apperr.Wrap(apperr.KindCameraUnavailable, apperr.MsgCameraDenied, err))
}

func (w *Workflow) lookup(barcode string) error {
	p, ok := w.catalog.Lookup(barcode)
	if !ok {
		err := apperr.New(apperr.KindLookupNotFound, apperr.MsgProductNotFound)
		w.notice.Show(err)
		return err
	}
	w.notice.Clear()
	w.product = &p
	w.state = StateProductFound
	w.releaseCamera()
	return nil
}

// syncCapture acquires or releases the camera to match the current state.
func (w *Workflow) syncCapture() {
	want := !w.closed && w.state == StateScanning && !w.manual && !w.camAlert.Active()
	if want && !w.capturing {
		if err := w.cam.Start(scanner.FacingEnvironment, w.handleDecode, w.handleCameraError); err != nil {
			log.Printf("❌ scanner start failed: %v", err)
			w.camAlert.Show(apperr.Wrap(apperr.KindCameraUnavailable, apperr.MsgCameraDenied, err))
			return
		}
		w.capturing = true
	} else if !want {
		w.releaseCamera()
	}
}

func (w *Workflow) releaseCamera() {
	if !w.capturing {
		return
	}
	w.capturing = false
	if err := w.cam.Stop(); err != nil {
		log.Printf("⚠️ scanner stop: %v", err)
	}
}
