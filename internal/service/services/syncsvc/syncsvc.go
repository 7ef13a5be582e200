package syncsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/okuafopa/order-core/internal/dal/interfaces/iorderapi"
	"github.com/okuafopa/order-core/internal/service/models/order"
	"github.com/okuafopa/order-core/internal/service/models/status"
	"go.opentelemetry.io/otel"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrSubOrderNotFound = errors.New("sub-order not found")
	ErrItemNotFound     = errors.New("order item not found")
)

// SyncService owns the client-side view of orders: it fetches server truth,
// applies optimistic mutations with rollback on remote failure, and merges
// realtime partial updates. State lives in memory only and is replaced
// wholesale on every LoadAll.
//
// Callers must not issue concurrent mutations for the same
// (order, sub-order, item) tuple; the engine does not queue or coalesce
// them. The internal mutex only keeps the in-memory view consistent while
// realtime patches interleave with mutations.
type SyncService struct {
	mu       sync.Mutex
	orders   []order.Order
	orderAPI iorderapi.IOrderAPI
}

// option is a function that configures the SyncService.
type option func(*SyncService)

// MustNewSyncService creates a new SyncService.
func MustNewSyncService(opts ...option) *SyncService {
	s := &SyncService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderAPI == nil {
		panic("syncsvc: order api is required")
	}

	return s
}

// WithOrderAPI sets the remote order service client for the SyncService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderAPI(orderAPI iorderapi.IOrderAPI) option {
	return func(s *SyncService) {
		s.orderAPI = orderAPI
	}
}

// LoadAll replaces the in-memory order list with the server's view.
// iorderapi.ErrUnauthorized is passed through so the caller can invalidate
// the session.
func (s *SyncService) LoadAll(ctx context.Context, query order.QueryOrdersModel) ([]order.Order, error) {
	ctx, span := otel.Tracer("syncsvc").Start(ctx, "SyncService.LoadAll")
	defer span.End()

	orders, err := s.orderAPI.ListOrders(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()

	return s.Orders(), nil
}

// Orders returns a deep copy of the held orders.
func (s *SyncService) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]order.Order, len(s.orders))
	for i := range s.orders {
		out[i] = s.orders[i].Clone()
	}

	return out
}

// Counts buckets the held orders by simple status for the filter bar.
func (s *SyncService) Counts() map[status.SimpleStatus]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[status.SimpleStatus]int, 4)
	for i := range s.orders {
		counts[s.orders[i].Simple()]++
	}

	return counts
}

// locate returns the index of the order with id, or -1. Callers must hold mu.
func (s *SyncService) locate(orderID string) int {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			return i
		}
	}

	return -1
}

// restore puts a pre-mutation snapshot back, matching by id so an
// interleaved LoadAll cannot be clobbered at the wrong index. Callers must
// hold mu.
func (s *SyncService) restore(snapshot order.Order) {
	if idx := s.locate(snapshot.ID); idx >= 0 {
		s.orders[idx] = snapshot
	}
}

// ApplyItemStatus optimistically moves one item to newStatus. Illegal
// transitions fail with status.ErrInvalidTransition before any network call.
// On remote failure the pre-mutation snapshot is restored; on success the
// optimistic value is kept as authoritative without a refetch.
func (s *SyncService) ApplyItemStatus(ctx context.Context, orderID, subOrderID, itemID string, newStatus status.ItemStatus) error {
	ctx, span := otel.Tracer("syncsvc").Start(ctx, "SyncService.ApplyItemStatus")
	defer span.End()

	s.mu.Lock()

	idx := s.locate(orderID)
	if idx < 0 {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	var item *order.OrderItem
	for i := range s.orders[idx].SubOrders {
		if s.orders[idx].SubOrders[i].ID != subOrderID {
			continue
		}
		for j := range s.orders[idx].SubOrders[i].Items {
			if s.orders[idx].SubOrders[i].Items[j].ID == itemID {
				item = &s.orders[idx].SubOrders[i].Items[j]

				break
			}
		}

		break
	}
	if item == nil {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s/%s", ErrItemNotFound, subOrderID, itemID)
	}

	if !item.ItemStatus.CanTransitionTo(newStatus) {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s -> %s", status.ErrInvalidTransition, item.ItemStatus, newStatus)
	}

	snapshot := s.orders[idx].Clone()
	item.ItemStatus = newStatus
	s.mu.Unlock()

	if err := s.orderAPI.UpdateItemStatus(ctx, orderID, subOrderID, itemID, newStatus); err != nil {
		s.mu.Lock()
		s.restore(snapshot)
		s.mu.Unlock()

		slog.Error("Item status update rolled back", "order_id", orderID, "item_id", itemID, "error", err)

		return fmt.Errorf("failed to update item status: %w", err)
	}

	return nil
}

// ApplySubOrderStatus optimistically moves a sub-order to newStatus,
// additionally setting every item to cascadeItemsTo when provided. Cascade
// writes are server-directed bulk sets and bypass per-item transition
// checks. Destructive transitions (rejected, cancelled) are expected to be
// confirmed by the user before this is invoked; the engine itself is
// transition-agnostic.
func (s *SyncService) ApplySubOrderStatus(ctx context.Context, orderID, subOrderID string, newStatus status.SubOrderStatus, cascadeItemsTo *status.ItemStatus) error {
	ctx, span := otel.Tracer("syncsvc").Start(ctx, "SyncService.ApplySubOrderStatus")
	defer span.End()

	s.mu.Lock()

	idx := s.locate(orderID)
	if idx < 0 {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	var subOrder *order.SubOrder
	for i := range s.orders[idx].SubOrders {
		if s.orders[idx].SubOrders[i].ID == subOrderID {
			subOrder = &s.orders[idx].SubOrders[i]

			break
		}
	}
	if subOrder == nil {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s", ErrSubOrderNotFound, subOrderID)
	}

	if !subOrder.Status.CanTransitionTo(newStatus) {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s -> %s", status.ErrInvalidTransition, subOrder.Status, newStatus)
	}

	snapshot := s.orders[idx].Clone()
	subOrder.Status = newStatus
	if cascadeItemsTo != nil {
		for i := range subOrder.Items {
			subOrder.Items[i].ItemStatus = *cascadeItemsTo
		}
	}
	s.mu.Unlock()

	if err := s.orderAPI.UpdateSubOrderStatus(ctx, orderID, subOrderID, newStatus, cascadeItemsTo); err != nil {
		s.mu.Lock()
		s.restore(snapshot)
		s.mu.Unlock()

		slog.Error("Sub-order status update rolled back", "order_id", orderID, "sub_order_id", subOrderID, "error", err)

		return fmt.Errorf("failed to update sub-order status: %w", err)
	}

	return nil
}

// ApplyRemotePatch merges a partial sub-order update pushed over the
// realtime channel. Patches for orders not currently loaded are silently
// dropped; that is expected, not an error.
func (s *SyncService) ApplyRemotePatch(orderID, subOrderID string, patch order.SubOrderPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.locate(orderID)
	if idx < 0 {
		return
	}

	for i := range s.orders[idx].SubOrders {
		if s.orders[idx].SubOrders[i].ID == subOrderID {
			patch.ApplyTo(&s.orders[idx].SubOrders[i])

			return
		}
	}
}
