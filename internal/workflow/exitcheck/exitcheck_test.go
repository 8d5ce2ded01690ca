package exitcheck

import (
	"errors"
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
	wf       *Workflow
	feed     *scanner.Feed
	sched    *workflow.ManualScheduler
	verdicts []models.Verdict
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{feed: scanner.NewFeed(), sched: workflow.NewManualScheduler()}
	f.wf = New(Options{
		Camera:    f.feed,
		Receipts:  MockExpectations{},
		Scheduler: f.sched,
		OnVerdict: func(_ models.Expectation, v models.Verdict) { f.verdicts = append(f.verdicts, v) },
	})
	f.wf.Start()
	t.Cleanup(f.wf.Close)
	return f
}

func (f *fixture) weigh(t *testing.T, grams int) Snapshot {
	t.Helper()
	require.True(t, f.feed.Push("REC-7F3A9C21"))
	require.NoError(t, f.wf.SetObservedWeight(grams))
	require.NoError(t, f.wf.Verify())
	assert.True(t, f.wf.Snapshot().Verifying)
	f.sched.Advance(DefaultVerifyDelay)
	return f.wf.Snapshot()
}

func TestWithinTolerancePasses(t *testing.T) {
	f := newFixture(t)
	snap := f.weigh(t, 460)

	assert.Equal(t, StepResult, snap.Step)
	require.NotNil(t, snap.Verdict)
	assert.Equal(t, 10, snap.Verdict.Variance)
	assert.False(t, snap.Verdict.Mismatch)
	assert.Equal(t, models.VerdictPass, snap.Verdict.Result)
	assert.Len(t, f.verdicts, 1)
}

func TestOverweightFails(t *testing.T) {
	f := newFixture(t)
	snap := f.weigh(t, 600)

	require.NotNil(t, snap.Verdict)
	assert.Equal(t, 150, snap.Verdict.Variance)
	assert.True(t, snap.Verdict.Mismatch)
	assert.Equal(t, models.VerdictFail, snap.Verdict.Result)
}

func TestEvaluateBoundary(t *testing.T) {
	assert.False(t, Evaluate(450, 500, 50).Mismatch)
	assert.False(t, Evaluate(450, 400, 50).Mismatch)
	assert.True(t, Evaluate(450, 501, 50).Mismatch)
	assert.True(t, Evaluate(450, 399, 50).Mismatch)
}

func TestReceiptScanStopsCamera(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.feed.Running())

	f.feed.Push("REC-1")
	snap := f.wf.Snapshot()
	assert.Equal(t, StepWeight, snap.Step)
	require.NotNil(t, snap.Receipt)
	assert.Equal(t, 450, snap.Receipt.ExpectedWeight)
	assert.False(t, f.feed.Running())
}

func TestVerdictNotBeforeDelay(t *testing.T) {
	f := newFixture(t)
	f.feed.Push("REC-1")
	require.NoError(t, f.wf.SetObservedWeight(450))
	require.NoError(t, f.wf.Verify())

	f.sched.Advance(time.Second)
	assert.Equal(t, StepWeight, f.wf.Snapshot().Step)
	assert.Nil(t, f.wf.Snapshot().Verdict)

	err := f.wf.Verify()
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestNextResetsAndRestartsCamera(t *testing.T) {
	f := newFixture(t)
	f.weigh(t, 460)

	f.wf.Next()
	snap := f.wf.Snapshot()
	assert.Equal(t, StepScan, snap.Step)
	assert.Nil(t, snap.Receipt)
	assert.Nil(t, snap.Verdict)
	assert.Zero(t, snap.ObservedWeight)
	assert.True(t, f.feed.Running())
	assert.Equal(t, 2, f.feed.Starts())
}

func TestNextDuringVerifyDropsVerdict(t *testing.T) {
	f := newFixture(t)
	f.feed.Push("REC-1")
	require.NoError(t, f.wf.Verify())

	f.wf.Next()
	f.sched.Advance(DefaultVerifyDelay)
	assert.Equal(t, StepScan, f.wf.Snapshot().Step)
	assert.Empty(t, f.verdicts)
}

func TestWeightRejectedOutsideWeighStep(t *testing.T) {
	f := newFixture(t)
	err := f.wf.SetObservedWeight(100)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	f.feed.Push("REC-1")
	err = f.wf.SetObservedWeight(-1)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestCameraFailureShowsMessage(t *testing.T) {
	f := newFixture(t)
	f.feed.Fail(errors.New("NotAllowedError"))

	snap := f.wf.Snapshot()
	assert.Equal(t, apperr.MsgCameraRequired, snap.Error)
	assert.Equal(t, "CAMERA_UNAVAILABLE", snap.ErrorCode)
	assert.False(t, snap.CameraActive)

	f.sched.Advance(time.Minute)
	assert.Equal(t, apperr.MsgCameraRequired, f.wf.Snapshot().Error)

	f.wf.Next()
	snap = f.wf.Snapshot()
	assert.Empty(t, snap.ErrorCode)
	assert.True(t, snap.CameraActive)
}

type strictSource struct{}

func (strictSource) Expect(string) (models.Expectation, error) {
	return models.Expectation{}, apperr.New(apperr.KindLookupNotFound, apperr.MsgReceiptUnknown)
}

func TestUnknownReceiptStaysOnScan(t *testing.T) {
	feed := scanner.NewFeed()
	sched := workflow.NewManualScheduler()
	wf := New(Options{Camera: feed, Receipts: strictSource{}, Scheduler: sched, ErrorTTL: 3 * time.Second})
	wf.Start()
	defer wf.Close()

	err := wf.Decode("REC-DEADBEEF")
	assert.Equal(t, apperr.KindLookupNotFound, apperr.KindOf(err))
	snap := wf.Snapshot()
	assert.Equal(t, StepScan, snap.Step)
	assert.Equal(t, apperr.MsgReceiptUnknown, snap.Error)
	assert.Equal(t, "LOOKUP_NOT_FOUND", snap.ErrorCode)
	assert.True(t, feed.Running())

	sched.Advance(2 * time.Second)
	assert.NotEmpty(t, wf.Snapshot().Error)
	sched.Advance(time.Second)
	assert.Empty(t, wf.Snapshot().Error, "unrecognized receipts clear by themselves")
	assert.Zero(t, sched.Pending())
}
