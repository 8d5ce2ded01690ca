package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"scanpay_back_end/internal/cart"
	"scanpay_back_end/internal/models"
	"scanpay_back_end/internal/scanner"
	"scanpay_back_end/internal/workflow"
	"scanpay_back_end/internal/workflow/cash"
	"scanpay_back_end/internal/workflow/exitcheck"
	"scanpay_back_end/internal/workflow/scan"
)

// Deps is what every session's workflows are built from.
type Deps struct {
	Catalog      scan.Catalog
	Orders       cash.OrderSource
	Expectations exitcheck.ExpectationSource
	Scheduler    workflow.Scheduler
	Notifier     *cart.RedisNotifier
	ErrorTTL     time.Duration
	SettleDelay  time.Duration
	VerifyDelay  time.Duration
	Tolerance    int
	OnSettled    func(models.CashOrder)
	OnVerdict    func(models.Expectation, models.Verdict)
}

// Session is one logged-in browser or terminal. It owns its cart, the camera feed of its
// device and the workflow matching its role.
type Session struct {
	ID        string
	Email     string
	Role      string
	CreatedAt time.Time
	Cart      *cart.Store
	Feed      *scanner.Feed

	deps     *Deps
	mu       sync.Mutex
	lastSeen time.Time
	scan     *scan.Workflow
	cash     *cash.Workflow
	exit     *exitcheck.Workflow
	detach   func()
	closed   bool
}

func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Scan returns the customer's scan workflow, starting the camera on first use.
func (s *Session) Scan() *scan.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scan == nil {
		s.scan = scan.New(scan.Options{
			Camera:    s.Feed,
			Catalog:   s.deps.Catalog,
			Cart:      s.Cart,
			Scheduler: s.deps.Scheduler,
			ErrorTTL:  s.deps.ErrorTTL,
		})
		s.scan.Start()
	}
	return s.scan
}

// Cash returns the admin cash workflow, idle until the scanner is opened.
func (s *Session) Cash() *cash.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cash == nil {
		s.cash = cash.New(cash.Options{
			Camera:      s.Feed,
			Orders:      s.deps.Orders,
			Scheduler:   s.deps.Scheduler,
			SettleDelay: s.deps.SettleDelay,
			ErrorTTL:    s.deps.ErrorTTL,
			OnSettled:   s.deps.OnSettled,
		})
	}
	return s.cash
}

// Exit returns the security verification workflow, scanning from the start.
func (s *Session) Exit() *exitcheck.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exit == nil {
		s.exit = exitcheck.New(exitcheck.Options{
			Camera:      s.Feed,
			Receipts:    s.deps.Expectations,
			Scheduler:   s.deps.Scheduler,
			Tolerance:   s.deps.Tolerance,
			VerifyDelay: s.deps.VerifyDelay,
			ErrorTTL:    s.deps.ErrorTTL,
			OnVerdict:   s.deps.OnVerdict,
		})
		s.exit.Start()
	}
	return s.exit
}

// Close clears the cart and releases the camera of every workflow.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	sc, ca, ex, detach := s.scan, s.cash, s.exit, s.detach
	s.mu.Unlock()

	if sc != nil {
		sc.Close()
	}
	if ca != nil {
		ca.Close()
	}
	if ex != nil {
		ex.Close()
	}
	s.Cart.Clear()
	if detach != nil {
		detach()
	}
}

// Registry holds the live sessions of the process.
type Registry struct {
	deps     Deps
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(deps Deps) *Registry {
	if deps.Scheduler == nil {
		deps.Scheduler = workflow.RealScheduler{}
	}
	return &Registry{deps: deps, sessions: make(map[string]*Session)}
}

func (r *Registry) Create(email, role string) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		CreatedAt: now,
		Cart:      cart.NewStore(),
		Feed:      scanner.NewFeed(),
		deps:      &r.deps,
		lastSeen:  now,
	}
	if r.deps.Notifier != nil {
		s.detach = r.deps.Notifier.Attach(s.ID, s.Cart)
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	log.Printf("✅ session %s opened for %s (%s)", s.ID, email, role)
	return s
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove closes and forgets a session. It reports whether the session existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return false
	}
	s.Close()
	log.Printf("👋 session %s closed", id)
	return true
}

// Sweep removes sessions idle for longer than maxIdle and returns how many went.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	var stale []string
	r.mu.RLock()
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	n := 0
	for _, id := range stale {
		if r.Remove(id) {
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
