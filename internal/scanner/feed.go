package scanner

import (
	"sync"
)

// Feed is a Camera driven from outside: the physical device decodes codes itself and
// pushes the results (or its failures) to the server.
type Feed struct {
	mu       sync.Mutex
	running  bool
	facing   Facing
	onDecode func(string)
	onError  func(error)
	starts   int
}

func NewFeed() *Feed {
	return &Feed{}
}

func (f *Feed) Start(facing Facing, onDecode func(string), onError func(error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		return ErrAlreadyRunning
	}
	f.running = true
	f.facing = facing
	f.onDecode = onDecode
	f.onError = onError
	f.starts++
	return nil
}

func (f *Feed) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return ErrNotRunning
	}
	f.running = false
	f.onDecode = nil
	f.onError = nil
	return nil
}

// Push delivers a decoded string. It reports false when nobody is capturing.
func (f *Feed) Push(text string) bool {
	f.mu.Lock()
	fn := f.onDecode
	running := f.running
	f.mu.Unlock()

	if !running || fn == nil {
		return false
	}
	fn(text)
	return true
}

// Fail reports a device failure (permission denied, no camera). Capture ends.
func (f *Feed) Fail(err error) bool {
	f.mu.Lock()
	fn := f.onError
	running := f.running
	f.running = false
	f.onDecode = nil
	f.onError = nil
	f.mu.Unlock()

	if !running || fn == nil {
		return false
	}
	fn(err)
	return true
}

func (f *Feed) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *Feed) Facing() Facing {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.facing
}

// Starts counts how many times capture was acquired.
func (f *Feed) Starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}
