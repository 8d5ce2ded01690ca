package scan

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/cart"
	"scanpay_back_end/internal/catalog"
	"scanpay_back_end/internal/scanner"
	"scanpay_back_end/internal/workflow"
)

const (
	chocolateBarcode = "8901234567890"
	teaBarcode       = "8901234567891"
)

type fixture struct {
	wf    *Workflow
	feed  *scanner.Feed
	cart  *cart.Store
	sched *workflow.ManualScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		feed:  scanner.NewFeed(),
		cart:  cart.NewStore(),
		sched: workflow.NewManualScheduler(),
	}
	f.wf = New(Options{
		Camera:    f.feed,
		Catalog:   catalog.Default(),
		Cart:      f.cart,
		Scheduler: f.sched,
	})
	f.wf.Start()
	t.Cleanup(f.wf.Close)
	return f
}

func TestStartAcquiresCamera(t *testing.T) {
	f := newFixture(t)
	snap := f.wf.Snapshot()

	assert.Equal(t, StateScanning, snap.State)
	assert.True(t, snap.CameraActive)
	assert.True(t, f.feed.Running())
	assert.Equal(t, scanner.FacingEnvironment, f.feed.Facing())
}

func TestDecodeFoundStopsCameraAndConfirmAdds(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.feed.Push(chocolateBarcode))
	snap := f.wf.Snapshot()
	assert.Equal(t, StateProductFound, snap.State)
	require.NotNil(t, snap.Product)
	assert.Equal(t, "Classic Milk Chocolate", snap.Product.Name)
	assert.False(t, f.feed.Running(), "capture stops once a product is found")
	assert.Zero(t, f.cart.Count(), "nothing added before confirmation")

	p, err := f.wf.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, 1, f.cart.Count())

	snap = f.wf.Snapshot()
	assert.Equal(t, StateScanning, snap.State)
	assert.Nil(t, snap.Product)
	assert.True(t, f.feed.Running(), "capture resumes after confirmation")
	assert.Equal(t, 2, f.feed.Starts())
}

func TestCancelLeavesCartUntouched(t *testing.T) {
	f := newFixture(t)
	f.feed.Push(teaBarcode)

	f.wf.Cancel()

	snap := f.wf.Snapshot()
	assert.Equal(t, StateScanning, snap.State)
	assert.Nil(t, snap.Product)
	assert.Zero(t, f.cart.Count())
	assert.True(t, f.feed.Running())
}

func TestNotFoundShowsTransientError(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.feed.Push("0000"))

	snap := f.wf.Snapshot()
	assert.Equal(t, StateScanning, snap.State)
	assert.Equal(t, apperr.MsgProductNotFound, snap.Error)
	assert.Equal(t, "LOOKUP_NOT_FOUND", snap.ErrorCode)
	assert.True(t, f.feed.Running(), "keeps scanning after a miss")

	f.sched.Advance(2 * time.Second)
	assert.Equal(t, apperr.MsgProductNotFound, f.wf.Snapshot().Error)

	f.sched.Advance(time.Second)
	assert.Empty(t, f.wf.Snapshot().Error)
}

func TestRepeatedMissRestartsErrorTimer(t *testing.T) {
	f := newFixture(t)

	f.feed.Push("bad-1")
	f.sched.Advance(2 * time.Second)
	f.feed.Push("bad-2")
	f.sched.Advance(2 * time.Second)
	assert.NotEmpty(t, f.wf.Snapshot().Error, "second miss keeps the message for a full period")

	f.sched.Advance(time.Second)
	assert.Empty(t, f.wf.Snapshot().Error)
}

func TestHitClearsPreviousError(t *testing.T) {
	f := newFixture(t)
	f.feed.Push("bad")
	f.feed.Push(teaBarcode)

	assert.Empty(t, f.wf.Snapshot().Error)
	assert.Zero(t, f.sched.Pending())
}

func TestDecodesIgnoredWhileProductShown(t *testing.T) {
	f := newFixture(t)
	f.feed.Push(chocolateBarcode)

	// Late callback from the device before it honoured the stop.
	f.wf.handleDecode(teaBarcode)

	snap := f.wf.Snapshot()
	require.NotNil(t, snap.Product)
	assert.Equal(t, "Classic Milk Chocolate", snap.Product.Name)
}

func TestManualEntrySuspendsCamera(t *testing.T) {
	f := newFixture(t)

	f.wf.OpenManual()
	assert.False(t, f.feed.Running())
	assert.True(t, f.wf.Snapshot().Manual)

	f.wf.CloseManual()
	assert.True(t, f.feed.Running())
}

func TestManualSubmitFound(t *testing.T) {
	f := newFixture(t)
	f.wf.OpenManual()

	require.NoError(t, f.wf.SubmitManual(teaBarcode))

	snap := f.wf.Snapshot()
	assert.False(t, snap.Manual)
	assert.Equal(t, StateProductFound, snap.State)
	assert.False(t, f.feed.Running())
}

func TestManualSubmitNotFoundResumesCamera(t *testing.T) {
	f := newFixture(t)
	f.wf.OpenManual()

	err := f.wf.SubmitManual("nope")
	assert.Equal(t, apperr.KindLookupNotFound, apperr.KindOf(err))

	snap := f.wf.Snapshot()
	assert.Equal(t, StateScanning, snap.State)
	assert.Equal(t, apperr.MsgProductNotFound, snap.Error)
	assert.True(t, f.feed.Running())
}

func TestManualSubmitEmpty(t *testing.T) {
	f := newFixture(t)
	f.wf.OpenManual()

	err := f.wf.SubmitManual("")
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	assert.True(t, f.wf.Snapshot().Manual)
}

func TestConfirmWithoutProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.wf.Confirm()
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestCameraErrorIsPersistentUntilRetry(t *testing.T) {
	f := newFixture(t)

	f.feed.Fail(errors.New("NotAllowedError"))
	snap := f.wf.Snapshot()
	assert.Equal(t, apperr.MsgCameraDenied, snap.CameraError)
	assert.Equal(t, "CAMERA_UNAVAILABLE", snap.CameraErrorCode)
	assert.False(t, snap.CameraActive)

	f.sched.Advance(time.Minute)
	f.wf.Cancel()
	assert.Equal(t, apperr.MsgCameraDenied, f.wf.Snapshot().CameraError, "not retried automatically")
	assert.False(t, f.feed.Running())

	f.wf.RetryCamera()
	snap = f.wf.Snapshot()
	assert.Empty(t, snap.CameraError)
	assert.Empty(t, snap.CameraErrorCode)
	assert.True(t, snap.CameraActive)
}

func TestManualLookupWorksWithoutCamera(t *testing.T) {
	f := newFixture(t)
	f.feed.Fail(errors.New("no camera"))

	f.wf.OpenManual()
	require.NoError(t, f.wf.SubmitManual(chocolateBarcode))
	_, err := f.wf.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 1, f.cart.Count())
}

func TestCloseReleasesCamera(t *testing.T) {
	f := newFixture(t)
	f.feed.Push("bad")

	f.wf.Close()
	assert.False(t, f.feed.Running())
	assert.Zero(t, f.sched.Pending())
}

type failingCamera struct{}

func (failingCamera) Start(scanner.Facing, func(string), func(error)) error {
	return errors.New("device busy")
}
func (failingCamera) Stop() error { return scanner.ErrNotRunning }

func TestStartFailureReportsCameraError(t *testing.T) {
	wf := New(Options{Camera: failingCamera{}, Catalog: catalog.Default(), Cart: cart.NewStore()})
	wf.Start()
	defer wf.Close()

	snap := wf.Snapshot()
	assert.Equal(t, apperr.MsgCameraDenied, snap.CameraError)
	assert.Equal(t, "CAMERA_UNAVAILABLE", snap.CameraErrorCode)
	assert.False(t, snap.CameraActive)
}
