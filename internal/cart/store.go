package cart

import (
	"sync"

	"scanpay_back_end/internal/models"
)

// Event types published after a mutation.
const (
	EventUpdated = "updated"
	EventCleared = "cleared"
)

type Event struct {
	Type string          `json:"type"`
	Cart models.CartView `json:"cart"`
}

// Store is the cart of one browsing session. Lines keep insertion order and there is
// at most one line per product id, always with a positive quantity.
type Store struct {
	mu        sync.Mutex
	lines     []models.CartLine
	observers map[int]func(Event)
	nextObs   int
}

func NewStore() *Store {
	return &Store{observers: make(map[int]func(Event))}
}

// Add puts one unit of product in the cart.
func (s *Store) Add(product models.Product) {
	s.mu.Lock()
	if i := s.indexOf(product.ID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, models.CartLine{Product: product, Quantity: 1})
	}
	s.mu.Unlock()
	s.emit(EventUpdated)
}

// UpdateQuantity shifts a line's quantity by delta. A line that reaches zero is removed.
// Unknown product ids are ignored.
func (s *Store) UpdateQuantity(productID string, delta int) {
	s.mu.Lock()
	i := s.indexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	qty := s.lines[i].Quantity + delta
	if qty <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	} else {
		s.lines[i].Quantity = qty
	}
	s.mu.Unlock()
	s.emit(EventUpdated)
}

func (s *Store) Remove(productID string) {
	s.mu.Lock()
	i := s.indexOf(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.mu.Unlock()
	s.emit(EventUpdated)
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
	s.emit(EventCleared)
}

// Drain empties the cart and returns what it held, under one lock, so that two
// checkouts of the same cart cannot both see its lines.
func (s *Store) Drain() []models.CartLine {
	s.mu.Lock()
	lines := s.lines
	s.lines = nil
	s.mu.Unlock()
	if len(lines) > 0 {
		s.emit(EventCleared)
	}
	return lines
}

// Restore puts drained lines back after a failed checkout. Lines added in the meantime
// are kept and quantities of the same product are summed.
func (s *Store) Restore(lines []models.CartLine) {
	if len(lines) == 0 {
		return
	}
	s.mu.Lock()
	merged := make([]models.CartLine, 0, len(lines)+len(s.lines))
	merged = append(merged, lines...)
	for _, l := range s.lines {
		found := false
		for i := range merged {
			if merged[i].ID == l.ID {
				merged[i].Quantity += l.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, l)
		}
	}
	s.lines = merged
	s.mu.Unlock()
	s.emit(EventUpdated)
}

// Lines returns a copy of the cart lines in display order.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLines()
}

func (s *Store) TotalPrice() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

func (s *Store) TotalWeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.LineWeight()
	}
	return total
}

// Count is the number of units in the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// View snapshots lines and totals under a single lock.
func (s *Store) View() models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Subscribe registers fn to be called after every mutation.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) emit(kind string) {
	s.mu.Lock()
	ev := Event{Type: kind, Cart: s.view()}
	fns := make([]func(Event), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Store) view() models.CartView {
	v := models.CartView{Items: s.copyLines()}
	for _, l := range s.lines {
		v.TotalPrice += l.Subtotal()
		v.TotalWeight += l.LineWeight()
		v.Count += l.Quantity
	}
	return v
}

func (s *Store) copyLines() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) indexOf(productID string) int {
	for i := range s.lines {
		if s.lines[i].ID == productID {
			return i
		}
	}
	return -1
}
