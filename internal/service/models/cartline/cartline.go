package cartline

import (
	"github.com/okuafopa/order-core/internal/service/models/currency"
)

// CartLine is one purchasable unit selected by the buyer before checkout.
// At most one line per product may exist in a cart.
type CartLine struct {
	ProductID         string            `json:"productId"`
	SupplierID        string            `json:"supplierId"`
	DisplayName       string            `json:"displayName"`
	PriceCents        int64             `json:"priceCents"`
	PriceCurrency     currency.Currency `json:"priceCurrency"`
	AvailableQuantity int               `json:"availableQuantity"`
	SelectedQuantity  int               `json:"selectedQuantity"`
	ImageRefs         []string          `json:"imageRefs,omitempty"`
}

// SubtotalCents is the line's contribution to the cart total.
func (l *CartLine) SubtotalCents() int64 {
	return l.PriceCents * int64(l.SelectedQuantity)
}
