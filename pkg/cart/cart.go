// Package cart implements the persistent shopping cart: an insertion-ordered
// list of line items with derived aggregates and write-behind durable
// persistence.
//
// Mutations are synchronous and atomic with respect to each other. Each
// mutation schedules a persistence write that the caller never waits for;
// a single writer goroutine applies snapshots in order so the last mutation
// always wins on disk. Storage failures are logged and swallowed: the cart
// trades durability for availability and keeps serving from memory.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petalworks/shopfront/pkg/catalog"
	"github.com/petalworks/shopfront/pkg/logging"
	"github.com/petalworks/shopfront/pkg/storage"
)

// DefaultKey is the storage record key the cart persists under.
const DefaultKey = "cart"

// LineItem is one product's entry in the cart.
//
// Price is captured at add time on purpose: a monetary total must stay
// computable without re-joining against the live catalog.
type LineItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"` // always >= 1
}

// Store owns the cart line items for the process. It is safe for concurrent
// use; all consumers share one instance.
type Store struct {
	mu    sync.Mutex
	items []LineItem

	store  storage.Store
	key    string
	logger *zerolog.Logger

	writes chan []LineItem // pending snapshot, coalesced to the latest
	done   chan struct{}
	closed bool
}

// Option configures a cart Store.
type Option func(*Store)

// WithKey overrides the storage record key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger overrides the logger used for persistence failures.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a cart hydrated from durable storage. A failed or missing
// read starts an empty cart; the failure is logged, never returned.
func New(store storage.Store, opts ...Option) *Store {
	s := &Store{
		store:  store,
		key:    DefaultKey,
		logger: logging.Default(),
		writes: make(chan []LineItem, 1),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.hydrate()
	go s.writer()

	return s
}

// hydrate loads the persisted line items, if any.
func (s *Store) hydrate() {
	data, ok, err := s.store.Read(s.key)
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).
			Msg("cart hydration failed, starting empty")
		return
	}
	if !ok {
		return
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).
			Msg("cart record corrupt, starting empty")
		return
	}
	s.items = items
}

// Add puts quantity units of the product in the cart. An existing line item
// for the same product id is incremented in place; otherwise a new line item
// is appended, capturing the product's name, price, and first image.
// Quantity must be positive; enforcing an upper bound is the caller's job.
func (s *Store) Add(p catalog.Product, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity += quantity
			s.schedulePersist()
			return
		}
	}

	s.items = append(s.items, LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Image:    p.FirstImage(),
		Price:    p.Price,
		Quantity: quantity,
	})
	s.schedulePersist()
}

// Remove deletes the line item for the given product id. Removing an absent
// id is a no-op, not an error.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *Store) removeLocked(id int64) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.schedulePersist()
			return
		}
	}
}

// UpdateQuantity sets the line item's quantity exactly. A non-positive
// quantity is an implicit removal request, not a validation error. Absent
// ids are a no-op.
func (s *Store) UpdateQuantity(id int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
		return
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.schedulePersist()
			return
		}
	}
}

// Clear empties the cart and erases the durable record.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.schedulePersist()
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the sum of all line item quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of price times quantity over all line items.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// schedulePersist queues the current items for the writer goroutine.
// Only the newest snapshot matters, so a pending one is replaced rather
// than queued behind. Callers must hold s.mu.
func (s *Store) schedulePersist() {
	if s.closed {
		return
	}

	snapshot := make([]LineItem, len(s.items))
	copy(snapshot, s.items)

	select {
	case s.writes <- snapshot:
	default:
		// Drop the stale pending snapshot. Producers are serialized by
		// s.mu and the writer only consumes, so this send cannot block.
		select {
		case <-s.writes:
		default:
		}
		s.writes <- snapshot
	}
}

// writer is the single persistence goroutine. It applies snapshots in the
// order mutations produced them; an empty cart erases the record so storage
// never holds a stale list.
func (s *Store) writer() {
	defer close(s.done)
	for snapshot := range s.writes {
		s.persist(snapshot)
	}
}

func (s *Store) persist(snapshot []LineItem) {
	if len(snapshot) == 0 {
		if err := s.store.Erase(s.key); err != nil {
			s.logger.Error().Err(err).Str("key", s.key).
				Msg("cart erase failed, continuing in memory")
		}
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).
			Msg("cart encode failed, continuing in memory")
		return
	}
	if err := s.store.Write(s.key, data); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).
			Msg("cart write failed, continuing in memory")
	}
}

// Close flushes any pending persistence write and stops the writer.
// The underlying storage is owned by the caller and is not closed here.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.writes)
	s.mu.Unlock()

	<-s.done
}
