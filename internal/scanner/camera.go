package scanner

import "errors"

// Facing selects the camera on devices that have more than one.
type Facing string

const (
	FacingEnvironment Facing = "environment"
	FacingUser        Facing = "user"
)

var (
	ErrAlreadyRunning = errors.New("scanner: capture already running")
	ErrNotRunning     = errors.New("scanner: capture not running")
)

// Camera is a capture device that reports decoded strings asynchronously.
// Callbacks may run on any goroutine but never before Start has returned: callers
// acquire the camera while holding their own lock. A failure detected inside Start
// is returned from it instead of going through onError.
type Camera interface {
	Start(facing Facing, onDecode func(text string), onError func(err error)) error
	Stop() error
}
