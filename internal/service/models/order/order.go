package order

import (
	"time"

	"github.com/okuafopa/order-core/internal/service/models/currency"
	"github.com/okuafopa/order-core/internal/service/models/status"
)

// DeliveryMethod is how a sub-order reaches the buyer.
type DeliveryMethod string

const (
	DeliveryPickup     DeliveryMethod = "pickup"
	DeliveryThirdParty DeliveryMethod = "thirdParty"
)

// Supplier is the seller side of a sub-order.
type Supplier struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// ProductRef is a point-in-time product snapshot denormalized into an
// order item.
type ProductRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Category string `json:"category,omitempty"`
}

// OrderItem is a single line within a sub-order. PriceAtOrderCents is a
// snapshot, never re-derived from the current product price.
type OrderItem struct {
	ID                string            `json:"id"`
	Product           ProductRef        `json:"product"`
	Quantity          int               `json:"quantity"`
	PriceAtOrderCents int64             `json:"priceAtOrderCents"`
	PriceCurrency     currency.Currency `json:"priceCurrency"`
	ItemStatus        status.ItemStatus `json:"itemStatus"`
}

// SubOrder is the portion of a multi-supplier order belonging to one supplier.
type SubOrder struct {
	ID             string                `json:"id"`
	Supplier       Supplier              `json:"supplier"`
	DeliveryMethod DeliveryMethod        `json:"deliveryMethod"`
	Status         status.SubOrderStatus `json:"status"`
	SubtotalCents  int64                 `json:"subtotalCents"`
	Items          []OrderItem           `json:"items"`
}

// ComputedSubtotalCents recomputes the subtotal from the items.
func (s *SubOrder) ComputedSubtotalCents() int64 {
	var total int64
	for i := range s.Items {
		total += s.Items[i].PriceAtOrderCents * int64(s.Items[i].Quantity)
	}

	return total
}

// Order is the backend-owned aggregate; the client holds a cache of it.
type Order struct {
	ID              string             `json:"id"`
	Status          status.OrderStatus `json:"status"`
	SimpleStatus    string             `json:"simpleStatus,omitempty"`
	GrandTotalCents int64              `json:"grandTotalCents"`
	Currency        currency.Currency  `json:"currency"`
	CreatedAt       time.Time          `json:"createdAt"`
	SubOrders       []SubOrder         `json:"subOrders"`
}

// ComputedGrandTotalCents recomputes the grand total from the sub-orders.
func (o *Order) ComputedGrandTotalCents() int64 {
	var total int64
	for i := range o.SubOrders {
		total += o.SubOrders[i].SubtotalCents
	}

	return total
}

// Simple classifies the order into a coarse filtering bucket.
func (o *Order) Simple() status.SimpleStatus {
	return status.Simplify(o.SimpleStatus, o.Status.String())
}

// Clone returns a deep copy, used for optimistic-mutation snapshots.
func (o *Order) Clone() Order {
	cp := *o
	cp.SubOrders = make([]SubOrder, len(o.SubOrders))
	for i := range o.SubOrders {
		so := o.SubOrders[i]
		so.Items = append([]OrderItem(nil), o.SubOrders[i].Items...)
		cp.SubOrders[i] = so
	}

	return cp
}
