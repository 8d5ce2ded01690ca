package workflow

import (
	"errors"
	"sync"
	"time"

	"scanpay_back_end/internal/apperr"
)

// DefaultAlertTTL is how long a transient message stays on screen.
const DefaultAlertTTL = 3 * time.Second

// Alert is the inline error of a workflow. Errors of a transient kind dismiss
// themselves after the TTL; the others stay until cleared.
// The owning workflow guards it with its own lock, which the dismissal also takes.
type Alert struct {
	lock  sync.Locker
	sched Scheduler
	ttl   time.Duration
	err   *apperr.Error
	timer Timer
}

func NewAlert(lock sync.Locker, sched Scheduler, ttl time.Duration) *Alert {
	if sched == nil {
		sched = RealScheduler{}
	}
	if ttl <= 0 {
		ttl = DefaultAlertTTL
	}
	return &Alert{lock: lock, sched: sched, ttl: ttl}
}

// Show replaces the current message. Errors without a kind show as internal faults.
func (a *Alert) Show(err error) {
	a.stopTimer()
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Wrap(apperr.KindInternalFault, apperr.MsgInternal, err)
	}
	a.err = e
	if !e.Kind.Transient() {
		return
	}
	var t Timer
	t = a.sched.AfterFunc(a.ttl, func() {
		a.lock.Lock()
		defer a.lock.Unlock()
		if a.timer == t {
			a.err = nil
			a.timer = nil
		}
	})
	a.timer = t
}

func (a *Alert) Clear() {
	a.stopTimer()
	a.err = nil
}

func (a *Alert) Active() bool {
	return a.err != nil
}

func (a *Alert) Kind() apperr.Kind {
	if a.err == nil {
		return apperr.KindUnknown
	}
	return a.err.Kind
}

func (a *Alert) Message() string {
	if a.err == nil {
		return ""
	}
	return a.err.Message
}

// Code is the kind name sent to clients, empty when nothing is shown.
func (a *Alert) Code() string {
	if a.err == nil {
		return ""
	}
	return a.err.Kind.String()
}

func (a *Alert) stopTimer() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
