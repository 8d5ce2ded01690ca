package cash

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/scanner"
	"scanpay_back_end/internal/workflow"
)

type fixture struct {
	wf      *Workflow
	feed    *scanner.Feed
	sched   *workflow.ManualScheduler
	settled []models.CashOrder
}

func newFixture(t *testing.T, orders OrderSource) *fixture {
	t.Helper()
	f := &fixture{feed: scanner.NewFeed(), sched: workflow.NewManualScheduler()}
	f.wf = New(Options{
		Camera:    f.feed,
		Orders:    orders,
		Scheduler: f.sched,
		OnSettled: func(o models.CashOrder) { f.settled = append(f.settled, o) },
	})
	t.Cleanup(f.wf.Close)
	return f
}

func TestCashHappyPath(t *testing.T) {
	f := newFixture(t, MockOrders{})
	assert.Equal(t, StateIdle, f.wf.Snapshot().State)

	require.NoError(t, f.wf.OpenScanner())
	assert.Equal(t, StateScanning, f.wf.Snapshot().State)
	assert.True(t, f.feed.Running())

	require.True(t, f.feed.Push("CUST-8A2F"))
	snap := f.wf.Snapshot()
	assert.Equal(t, StatePendingCash, snap.State)
	require.NotNil(t, snap.Order)
	assert.Equal(t, "CUST-8A2F", snap.Order.CustomerID)
	assert.Equal(t, 340, snap.Order.Total)
	assert.Len(t, snap.Order.Items, 2)
	assert.False(t, f.feed.Running(), "camera stops once the customer is identified")

	require.NoError(t, f.wf.ConfirmCash())
	assert.Equal(t, StateProcessing, f.wf.Snapshot().State)

	f.sched.Advance(time.Second)
	assert.Equal(t, StateProcessing, f.wf.Snapshot().State)
	assert.Empty(t, f.settled)

	f.sched.Advance(500 * time.Millisecond)
	snap = f.wf.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Equal(t, models.OrderSuccess, snap.Order.Status)
	require.Len(t, f.settled, 1)
	assert.Equal(t, 340, f.settled[0].Total)

	f.wf.Dismiss()
	snap = f.wf.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Order)
}

func TestSecondDecodeIgnoredAfterTransition(t *testing.T) {
	f := newFixture(t, MockOrders{})
	require.NoError(t, f.wf.OpenScanner())
	require.NoError(t, f.wf.Decode("CUST-8A2F"))

	err := f.wf.Decode("CUST-OTHER")
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
	assert.Equal(t, "CUST-8A2F", f.wf.Snapshot().Order.CustomerID)
}

type blockingOrders struct {
	entered chan struct{}
	release chan struct{}
	mu      sync.Mutex
	calls   int
}

func (b *blockingOrders) OrderFor(code string) (models.CashOrder, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	close(b.entered)
	<-b.release
	return MockOrders{}.OrderFor(code)
}

func TestReentrantDecodeIsDropped(t *testing.T) {
	orders := &blockingOrders{entered: make(chan struct{}), release: make(chan struct{})}
	f := newFixture(t, orders)
	require.NoError(t, f.wf.OpenScanner())

	done := make(chan error, 1)
	go func() { done <- f.wf.Decode("CUST-8A2F") }()
	<-orders.entered

	err := f.wf.Decode("CUST-8A2F")
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	close(orders.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, orders.calls)
	assert.Equal(t, StatePendingCash, f.wf.Snapshot().State)
}

func TestConfirmCashRequiresPendingOrder(t *testing.T) {
	f := newFixture(t, MockOrders{})
	err := f.wf.ConfirmCash()
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	require.NoError(t, f.wf.OpenScanner())
	require.NoError(t, f.wf.Decode("CUST-1"))
	require.NoError(t, f.wf.ConfirmCash())
	err = f.wf.ConfirmCash()
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err), "double confirmation")
	assert.Equal(t, 1, f.sched.Pending())
}

func TestDismissDuringProcessingCancelsSettlement(t *testing.T) {
	f := newFixture(t, MockOrders{})
	require.NoError(t, f.wf.OpenScanner())
	require.NoError(t, f.wf.Decode("CUST-1"))
	require.NoError(t, f.wf.ConfirmCash())

	f.wf.Dismiss()
	f.sched.Advance(time.Minute)

	assert.Equal(t, StateIdle, f.wf.Snapshot().State)
	assert.Empty(t, f.settled)
}

func TestStaleSettlementAfterNewOrderIsIgnored(t *testing.T) {
	f := newFixture(t, MockOrders{})
	require.NoError(t, f.wf.OpenScanner())
	require.NoError(t, f.wf.Decode("CUST-1"))
	require.NoError(t, f.wf.ConfirmCash())
	f.wf.Dismiss()

	require.NoError(t, f.wf.OpenScanner())
	require.NoError(t, f.wf.Decode("CUST-2"))
	f.sched.Advance(time.Minute)

	assert.Equal(t, StatePendingCash, f.wf.Snapshot().State)
	assert.Empty(t, f.settled)
}

func TestCloseScannerReturnsToIdle(t *testing.T) {
	f := newFixture(t, MockOrders{})
	require.NoError(t, f.wf.OpenScanner())

	f.wf.CloseScanner()
	assert.Equal(t, StateIdle, f.wf.Snapshot().State)
	assert.False(t, f.feed.Running())
	assert.False(t, f.feed.Push("CUST-1"))
}

func TestOpenScannerTwice(t *testing.T) {
	f := newFixture(t, MockOrders{})
	require.NoError(t, f.wf.OpenScanner())
	err := f.wf.OpenScanner()
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestCameraFailureReported(t *testing.T) {
	f := newFixture(t, MockOrders{})
	require.NoError(t, f.wf.OpenScanner())

	f.feed.Fail(errors.New("NotAllowedError"))
	snap := f.wf.Snapshot()
	assert.Equal(t, StateScanning, snap.State)
	assert.Equal(t, apperr.MsgCameraDenied, snap.Error)
	assert.Equal(t, "CAMERA_UNAVAILABLE", snap.ErrorCode)
	assert.False(t, snap.CameraActive)

	f.sched.Advance(time.Minute)
	assert.Equal(t, apperr.MsgCameraDenied, f.wf.Snapshot().Error, "camera errors do not clear by themselves")

	require.NoError(t, f.wf.Decode("CUST-8A2F"), "simulated scan still works")
	assert.Equal(t, StatePendingCash, f.wf.Snapshot().State)
}

func TestEmptyCodeRejected(t *testing.T) {
	f := newFixture(t, MockOrders{})
	require.NoError(t, f.wf.OpenScanner())

	err := f.wf.Decode("  ")
	assert.Equal(t, apperr.KindLookupNotFound, apperr.KindOf(err))
	snap := f.wf.Snapshot()
	assert.Equal(t, StateScanning, snap.State)
	assert.NotEmpty(t, snap.Error)
	assert.Equal(t, "LOOKUP_NOT_FOUND", snap.ErrorCode)

	f.sched.Advance(workflow.DefaultAlertTTL)
	snap = f.wf.Snapshot()
	assert.Empty(t, snap.Error, "unknown codes clear by themselves")
	assert.Empty(t, snap.ErrorCode)
	assert.Zero(t, f.sched.Pending())
}
