package cartsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/okuafopa/order-core/internal/dal/interfaces/ikvrepo"
	"github.com/okuafopa/order-core/internal/service/models/cartline"
)

// storageKey is the fixed key the cart is persisted under.
const storageKey = "cart_items"

var (
	ErrDuplicateItem      = errors.New("item is already in the cart")
	ErrQuantityOutOfRange = errors.New("quantity out of range")
	ErrProductNotInCart   = errors.New("product is not in the cart")
)

// CartService maintains the buyer's pre-checkout selection with durable
// persistence. Every mutation is written to storage before the in-memory
// state is committed.
type CartService struct {
	mu     sync.Mutex
	lines  []cartline.CartLine
	kvRepo ikvrepo.IKVRepository
}

// option is a function that configures the CartService.
type option func(*CartService)

// MustNewCartService creates a new CartService.
func MustNewCartService(opts ...option) *CartService {
	s := &CartService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.kvRepo == nil {
		panic("cartsvc: kv repository is required")
	}

	return s
}

// WithKVRepository sets the durable storage for the CartService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithKVRepository(kvRepo ikvrepo.IKVRepository) option {
	return func(s *CartService) {
		s.kvRepo = kvRepo
	}
}

// Load restores the cart from durable storage. A missing or corrupt
// persisted value yields an empty cart, never an error.
func (s *CartService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kvRepo.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, ikvrepo.ErrNotFound) {
			slog.Warn("Failed to load cart, starting empty", "error", err)
		}
		s.lines = nil

		return
	}

	var lines []cartline.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		slog.Warn("Corrupt persisted cart, starting empty", "error", err)
		s.lines = nil

		return
	}

	s.lines = lines
}

// persist writes lines to durable storage. Called before any in-memory
// commit; when it fails the cart is left unchanged.
func (s *CartService) persist(ctx context.Context, lines []cartline.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := s.kvRepo.Set(ctx, storageKey, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}

// Add inserts a new line with selected quantity 1 and returns the updated
// cart. Adding a product already in the cart fails with ErrDuplicateItem
// rather than incrementing its quantity.
func (s *CartService) Add(ctx context.Context, line cartline.CartLine) ([]cartline.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == line.ProductID {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, line.ProductID)
		}
	}

	if line.AvailableQuantity < 1 {
		return nil, fmt.Errorf("%w: product %s is out of stock", ErrQuantityOutOfRange, line.ProductID)
	}

	line.SelectedQuantity = 1
	updated := append(append([]cartline.CartLine(nil), s.lines...), line)

	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}
	s.lines = updated

	return append([]cartline.CartLine(nil), s.lines...), nil
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op, not an error.
func (s *CartService) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]cartline.CartLine, 0, len(s.lines))
	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			updated = append(updated, s.lines[i])
		}
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	s.lines = updated

	return nil
}

// UpdateQuantity sets the selected quantity for productID, bounded by
// 1..availableQuantity.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, newQuantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			idx = i

			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrProductNotInCart, productID)
	}

	if newQuantity < 1 || newQuantity > s.lines[idx].AvailableQuantity {
		return fmt.Errorf("%w: %d not in 1..%d", ErrQuantityOutOfRange, newQuantity, s.lines[idx].AvailableQuantity)
	}

	updated := append([]cartline.CartLine(nil), s.lines...)
	updated[idx].SelectedQuantity = newQuantity

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	s.lines = updated

	return nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, []cartline.CartLine{}); err != nil {
		return err
	}
	s.lines = nil

	return nil
}

// Lines returns a copy of the current cart in insertion order.
func (s *CartService) Lines() []cartline.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]cartline.CartLine(nil), s.lines...)
}

// TotalCents is the sum of unit price times selected quantity over all lines.
func (s *CartService) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for i := range s.lines {
		total += s.lines[i].SubtotalCents()
	}

	return total
}

// Count is the sum of selected quantities, used for the cart badge.
func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for i := range s.lines {
		count += s.lines[i].SelectedQuantity
	}

	return count
}
