package realtime

import "github.com/okuafopa/order-core/internal/service/models/order"

// Event types delivered over the realtime channel.
const (
	EventSubOrderUpdate = "suborder:update"
	EventOrderUpdate    = "order:update"
)

// Event is one message from the realtime subscription. A suborder:update
// carries a partial sub-order; an order:update carries no payload and means
// the full order list must be refetched.
type Event struct {
	Type       string               `json:"type"`
	OrderID    string               `json:"orderId,omitempty"`
	SubOrderID string               `json:"subOrderId,omitempty"`
	SubOrder   *order.SubOrderPatch `json:"subOrder,omitempty"`
}
