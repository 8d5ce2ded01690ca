package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedDeliversOnlyWhileRunning(t *testing.T) {
	f := NewFeed()
	var got []string

	assert.False(t, f.Push("early"))

	require.NoError(t, f.Start(FacingEnvironment, func(s string) { got = append(got, s) }, func(error) {}))
	assert.True(t, f.Running())
	assert.Equal(t, FacingEnvironment, f.Facing())
	assert.True(t, f.Push("a"))
	assert.True(t, f.Push("b"))

	require.NoError(t, f.Stop())
	assert.False(t, f.Push("late"))
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFeedStartTwice(t *testing.T) {
	f := NewFeed()
	require.NoError(t, f.Start(FacingUser, func(string) {}, func(error) {}))
	assert.ErrorIs(t, f.Start(FacingUser, func(string) {}, func(error) {}), ErrAlreadyRunning)
	assert.Equal(t, 1, f.Starts())
}

func TestFeedStopIdle(t *testing.T) {
	assert.ErrorIs(t, NewFeed().Stop(), ErrNotRunning)
}

func TestFeedFailEndsCapture(t *testing.T) {
	f := NewFeed()
	var reported error
	require.NoError(t, f.Start(FacingEnvironment, func(string) {}, func(err error) { reported = err }))

	denied := errors.New("NotAllowedError")
	assert.True(t, f.Fail(denied))
	assert.Equal(t, denied, reported)
	assert.False(t, f.Running())
	assert.False(t, f.Fail(denied), "no listener after failure")
}

func TestFeedCallbackMayStop(t *testing.T) {
	f := NewFeed()
	require.NoError(t, f.Start(FacingEnvironment, func(string) {
		assert.NoError(t, f.Stop())
	}, func(error) {}))

	assert.True(t, f.Push("x"))
	assert.False(t, f.Running())
}

func TestFeedStartRunsNoCallback(t *testing.T) {
	f := NewFeed()
	assert.False(t, f.Fail(errors.New("NotAllowedError")), "nothing to fail before capture")

	calls := 0
	require.NoError(t, f.Start(FacingUser, func(string) { calls++ }, func(error) { calls++ }))
	assert.Zero(t, calls)
	assert.True(t, f.Running())
}
