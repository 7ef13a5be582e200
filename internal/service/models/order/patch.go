package order

import "github.com/okuafopa/order-core/internal/service/models/status"

// SubOrderPatch is a partial field set pushed over the realtime channel.
// Nil fields are left untouched on merge; Items, when present, replaces the
// sub-order's item list wholesale.
type SubOrderPatch struct {
	Status         *status.SubOrderStatus `json:"status,omitempty"`
	DeliveryMethod *DeliveryMethod        `json:"deliveryMethod,omitempty"`
	SubtotalCents  *int64                 `json:"subtotalCents,omitempty"`
	Items          []OrderItem            `json:"items,omitempty"`
}

// ApplyTo merges the patch into the sub-order. Idempotent: applying the same
// patch twice changes nothing beyond the first application.
func (p *SubOrderPatch) ApplyTo(so *SubOrder) {
	if p.Status != nil {
		so.Status = *p.Status
	}
	if p.DeliveryMethod != nil {
		so.DeliveryMethod = *p.DeliveryMethod
	}
	if p.SubtotalCents != nil {
		so.SubtotalCents = *p.SubtotalCents
	}
	if p.Items != nil {
		so.Items = append([]OrderItem(nil), p.Items...)
	}
}
