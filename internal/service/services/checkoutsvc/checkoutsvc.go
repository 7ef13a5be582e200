package checkoutsvc

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/okuafopa/order-core/internal/service/models/billing"
	"github.com/okuafopa/order-core/internal/service/models/cartline"
	"github.com/okuafopa/order-core/internal/service/models/checkout"
	"github.com/okuafopa/order-core/internal/service/models/order"
)

// ErrEmptyCart is returned when a submission is built from an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// GroupBySupplier partitions cart lines into one draft per distinct
// supplier. Draft ordering follows the first occurrence of each supplier in
// the cart. Delivery method defaults to pickup unless overridden per
// supplier.
func GroupBySupplier(lines []cartline.CartLine, deliveryOverrides map[string]order.DeliveryMethod) []checkout.SubOrderDraft {
	drafts := make([]checkout.SubOrderDraft, 0)
	index := make(map[string]int)

	for i := range lines {
		supplierID := lines[i].SupplierID

		pos, ok := index[supplierID]
		if !ok {
			method := order.DeliveryPickup
			if override, ok := deliveryOverrides[supplierID]; ok {
				method = override
			}

			pos = len(drafts)
			index[supplierID] = pos
			drafts = append(drafts, checkout.SubOrderDraft{
				SupplierID:     supplierID,
				DeliveryMethod: method,
			})
		}

		drafts[pos].Items = append(drafts[pos].Items, checkout.LineRef{
			ProductID: lines[i].ProductID,
			Quantity:  lines[i].SelectedQuantity,
		})
	}

	return drafts
}

// BuildOrderRequest validates the billing form and assembles the submission
// payload. Pure transformation: no network I/O happens here. Validation
// failures enumerate every missing or malformed field.
func BuildOrderRequest(lines []cartline.CartLine, info billing.Info) (*checkout.SubmissionPayload, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("invalid billing info: %w", err)
	}

	return &checkout.SubmissionPayload{
		ClientReference: uuid.NewString(),
		SubOrders:       GroupBySupplier(lines, nil),
		Billing:         info,
	}, nil
}
