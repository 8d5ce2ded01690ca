package exitcheck

import (
	"log"
	"sync"
	"time"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/scanner"
	"scanpay_back_end/internal/workflow"
)

type Step string

const (
	StepScan   Step = "SCAN"
	StepWeight Step = "WEIGHT"
	StepResult Step = "RESULT"
)

const (
	DefaultTolerance   = 50
	DefaultVerifyDelay = 1500 * time.Millisecond
)

// ExpectationSource resolves a scanned receipt id into what should be in the bag.
type ExpectationSource interface {
	Expect(receiptID string) (models.Expectation, error)
}

type Snapshot struct {
	Step           Step                `json:"step"`
	Receipt        *models.Expectation `json:"receipt,omitempty"`
	ObservedWeight int                 `json:"observedWeight"`
	Verifying      bool                `json:"verifying"`
	Verdict        *models.Verdict     `json:"verdict,omitempty"`
	Error          string              `json:"error,omitempty"`
	ErrorCode      string              `json:"errorCode,omitempty"`
	CameraActive   bool                `json:"cameraActive"`
}

type Options struct {
	Camera      scanner.Camera
	Receipts    ExpectationSource
	Scheduler   workflow.Scheduler
	Tolerance   int
	VerifyDelay time.Duration
	// ErrorTTL is how long an unrecognized receipt stays on screen.
	ErrorTTL time.Duration
	// OnVerdict runs once per customer when the result is known, outside the lock.
	OnVerdict func(models.Expectation, models.Verdict)
}

// Workflow is the exit gate: scan the receipt, weigh the bag, show the verdict.
type Workflow struct {
	mu          sync.Mutex
	cam         scanner.Camera
	receipts    ExpectationSource
	sched       workflow.Scheduler
	tolerance   int
	verifyDelay time.Duration
	onVerdict   func(models.Expectation, models.Verdict)
	step        Step
	receipt     *models.Expectation
	observed    int
	verifying   bool
	verdict     *models.Verdict
	alert       *workflow.Alert
	capturing   bool
	timer       workflow.Timer
	closed      bool
}

func New(opts Options) *Workflow {
	if opts.Scheduler == nil {
		opts.Scheduler = workflow.RealScheduler{}
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.VerifyDelay <= 0 {
		opts.VerifyDelay = DefaultVerifyDelay
	}
	w := &Workflow{
		cam:         opts.Camera,
		receipts:    opts.Receipts,
		sched:       opts.Scheduler,
		tolerance:   opts.Tolerance,
		verifyDelay: opts.VerifyDelay,
		onVerdict:   opts.OnVerdict,
		step:        StepScan,
	}
	w.alert = workflow.NewAlert(&w.mu, opts.Scheduler, opts.ErrorTTL)
	return w
}

// Start acquires the camera when waiting for a receipt.
func (w *Workflow) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = false
	w.startCapture()
}

func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.releaseCamera()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.alert.Clear()
}

// Decode handles a scanned receipt id.
func (w *Workflow) Decode(receiptID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepScan {
		return apperr.Newf(apperr.KindInvalidTransition, "not scanning (step %s)", w.step)
	}
	exp, err := w.receipts.Expect(receiptID)
	if err != nil {
		w.alert.Show(err)
		return err
	}
	w.receipt = &exp
	w.alert.Clear()
	w.step = StepWeight
	w.releaseCamera()
	log.Printf("🛂 receipt %s scanned, expecting %dg", exp.ReceiptID, exp.ExpectedWeight)
	return nil
}

// SetObservedWeight records the scale reading in grams.
func (w *Workflow) SetObservedWeight(grams int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepWeight || w.verifying {
		return apperr.Newf(apperr.KindInvalidTransition, "weight not expected (step %s)", w.step)
	}
	if grams < 0 {
		return apperr.New(apperr.KindInvalidInput, "weight cannot be negative")
	}
	w.observed = grams
	return nil
}

// Verify starts the simulated weighing; the verdict lands after the delay.
func (w *Workflow) Verify() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepWeight || w.verifying {
		return apperr.Newf(apperr.KindInvalidTransition, "nothing to verify (step %s)", w.step)
	}
	w.verifying = true
	var t workflow.Timer
	t = w.sched.AfterFunc(w.verifyDelay, func() { w.finishVerify(t) })
	w.timer = t
	return nil
}

// Next resets the gate for the next customer.
func (w *Workflow) Next() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.step = StepScan
	w.receipt = nil
	w.observed = 0
	w.verifying = false
	w.verdict = nil
	w.alert.Clear()
	w.startCapture()
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap := Snapshot{
		Step:           w.step,
		ObservedWeight: w.observed,
		Verifying:      w.verifying,
		Error:          w.alert.Message(),
		ErrorCode:      w.alert.Code(),
		CameraActive:   w.capturing,
	}
	if w.receipt != nil {
		r := *w.receipt
		snap.Receipt = &r
	}
	if w.verdict != nil {
		v := *w.verdict
		snap.Verdict = &v
	}
	return snap
}

// Evaluate compares the observed weight with the expected one.
func Evaluate(expected, observed, tolerance int) models.Verdict {
	variance := observed - expected
	if variance < 0 {
		variance = -variance
	}
	v := models.Verdict{
		ExpectedWeight: expected,
		ObservedWeight: observed,
		Variance:       variance,
		Tolerance:      tolerance,
		Mismatch:       variance > tolerance,
		Result:         models.VerdictPass,
	}
	if v.Mismatch {
		v.Result = models.VerdictFail
	}
	return v
}

func (w *Workflow) finishVerify(t workflow.Timer) {
	w.mu.Lock()
	if w.timer != t || w.step != StepWeight || w.receipt == nil {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	v := Evaluate(w.receipt.ExpectedWeight, w.observed, w.tolerance)
	w.verdict = &v
	w.verifying = false
	w.step = StepResult
	exp := *w.receipt
	hook := w.onVerdict
	w.mu.Unlock()

	log.Printf("🛂 receipt %s: %s (variance %dg)", exp.ReceiptID, v.Result, v.Variance)
	if hook != nil {
		hook(exp, v)
	}
}

func (w *Workflow) handleDecode(text string) {
	if err := w.Decode(text); err != nil && apperr.KindOf(err) != apperr.KindInvalidTransition {
		log.Printf("⚠️ receipt scan %q rejected: %v", text, err)
	}
}

func (w *Workflow) handleCameraError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	log.Printf("❌ security scanner error: %v", err)
	w.capturing = false
	w.alert.Show(apperr.Wrap(apperr.KindCameraUnavailable, apperr.MsgCameraRequired, err))
}

func (w *Workflow) startCapture() {
	if w.closed || w.step != StepScan || w.capturing {
		return
	}
	if err := w.cam.Start(scanner.FacingEnvironment, w.handleDecode, w.handleCameraError); err != nil {
		log.Printf("❌ security scanner start failed: %v", err)
		w.alert.Show(apperr.Wrap(apperr.KindCameraUnavailable, apperr.MsgCameraRequired, err))
		return
	}
	w.capturing = true
}

func (w *Workflow) releaseCamera() {
	if !w.capturing {
		return
	}
	w.capturing = false
	if err := w.cam.Stop(); err != nil {
		log.Printf("⚠️ security scanner stop: %v", err)
	}
}
