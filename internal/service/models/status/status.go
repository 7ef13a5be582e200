package status

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("invalid status")
)

// ItemStatus is the state of a single line item within a sub-order.
type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemAccepted  ItemStatus = "accepted"
	ItemReady     ItemStatus = "ready"
	ItemInTransit ItemStatus = "in_transit"
	ItemDelivered ItemStatus = "delivered"
	ItemRejected  ItemStatus = "rejected"
	ItemCancelled ItemStatus = "cancelled"
)

// itemTransitions holds the legal moves. delivered, rejected and cancelled
// have no outgoing edges.
var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemPending:   {ItemAccepted, ItemRejected},
	ItemAccepted:  {ItemReady, ItemRejected, ItemCancelled},
	ItemReady:     {ItemInTransit},
	ItemInTransit: {ItemDelivered},
}

func (s ItemStatus) String() string {
	return string(s)
}

// Terminal reports whether no further transition is permitted from s.
func (s ItemStatus) Terminal() bool {
	switch s {
	case ItemDelivered, ItemRejected, ItemCancelled:
		return true
	}

	return false
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	for _, allowed := range itemTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(s) {
	case ItemPending, ItemAccepted, ItemReady, ItemInTransit, ItemDelivered, ItemRejected, ItemCancelled:
		return ItemStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// SubOrderStatus is the supplier-level aggregate state. It mirrors the item
// state set but is maintained independently of the items by the server, so
// only terminal states are guarded client-side.
type SubOrderStatus string

const (
	SubOrderPending   SubOrderStatus = "pending"
	SubOrderAccepted  SubOrderStatus = "accepted"
	SubOrderReady     SubOrderStatus = "ready"
	SubOrderInTransit SubOrderStatus = "in_transit"
	SubOrderDelivered SubOrderStatus = "delivered"
	SubOrderRejected  SubOrderStatus = "rejected"
	SubOrderCancelled SubOrderStatus = "cancelled"
)

func (s SubOrderStatus) String() string {
	return string(s)
}

// Terminal reports whether no further transition is permitted from s.
func (s SubOrderStatus) Terminal() bool {
	switch s {
	case SubOrderDelivered, SubOrderRejected, SubOrderCancelled:
		return true
	}

	return false
}

// CanTransitionTo reports whether moving from s to next is permitted. Any
// move out of a non-terminal state is allowed, supplier flows may skip
// intermediate states and re-assert the current one.
func (s SubOrderStatus) CanTransitionTo(next SubOrderStatus) bool {
	return !s.Terminal()
}

func ParseSubOrderStatus(s string) (SubOrderStatus, error) {
	switch SubOrderStatus(s) {
	case SubOrderPending, SubOrderAccepted, SubOrderReady, SubOrderInTransit, SubOrderDelivered, SubOrderRejected, SubOrderCancelled:
		return SubOrderStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// OrderStatus is the order-level aggregate state set by the server.
type OrderStatus string

const (
	OrderPending            OrderStatus = "pending"
	OrderInProgress         OrderStatus = "in_progress"
	OrderPartiallyDelivered OrderStatus = "partially_delivered"
	OrderDelivered          OrderStatus = "delivered"
	OrderCancelled          OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// SimpleStatus is the coarse four-bucket classification used for filtering.
type SimpleStatus string

const (
	SimplePending    SimpleStatus = "pending"
	SimpleInProgress SimpleStatus = "in_progress"
	SimpleDelivered  SimpleStatus = "delivered"
	SimpleCancelled  SimpleStatus = "cancelled"
)

func (s SimpleStatus) String() string {
	return string(s)
}

// Simplify maps an order's status to a simple bucket. A precomputed simple
// status from the server wins; unknown or empty statuses map to pending.
// Total over arbitrary input, never fails.
func Simplify(explicit string, orderStatus string) SimpleStatus {
	switch SimpleStatus(explicit) {
	case SimplePending, SimpleInProgress, SimpleDelivered, SimpleCancelled:
		return SimpleStatus(explicit)
	}

	switch OrderStatus(orderStatus) {
	case OrderDelivered:
		return SimpleDelivered
	case OrderCancelled:
		return SimpleCancelled
	case OrderPartiallyDelivered, OrderInProgress:
		return SimpleInProgress
	default:
		return SimplePending
	}
}
